package main

import (
	"archive/tar"
	"fmt"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/buildio/pkg/buildio"
	"github.com/arthur-debert/buildio/pkg/buildio/osfs"
)

func newUnpackCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unpack <archive> <dest>",
		Short: "Unpack a package tarball into a directory",
		Long: `Unpack extracts a gzip- or zstd-compressed tar archive into the given
destination directory. The compression is chosen from the archive suffix
(.tar.gz, .tgz, .tar.zst).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(args[0], args[1])
		},
	}
}

func runUnpack(archivePath, dest string) error {
	fs := osfs.New()
	log := newLogger()

	reader, err := fs.Reader(archivePath)
	if err != nil {
		return err
	}
	defer func() { _ = reader.Close() }()

	var archive *tar.Reader
	switch {
	case strings.HasSuffix(archivePath, ".tar.gz"), strings.HasSuffix(archivePath, ".tgz"):
		archive = tar.NewReader(buildio.LazyGzipReader(reader))
	case strings.HasSuffix(archivePath, ".tar.zst"):
		zr, err := zstd.NewReader(reader)
		if err != nil {
			return buildio.NewReadError(buildio.KindFile, archivePath, err)
		}
		defer zr.Close()
		archive = tar.NewReader(zr.IOReadCloser())
	default:
		return fmt.Errorf("unsupported archive suffix: %s", archivePath)
	}

	return buildio.Unpack(log, fs, dest, archive)
}
