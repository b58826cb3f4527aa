package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/buildio/pkg/buildio/fetch"
	"github.com/arthur-debert/buildio/pkg/buildio/httpc"
	"github.com/arthur-debert/buildio/pkg/buildio/osfs"
)

func newFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <manifest.json> <dest>",
		Short: "Fetch and unpack the packages named by a manifest",
		Long: `Fetch reads a JSON manifest of packages, downloads each package tarball,
and unpacks them into the destination directory in dependency order.
Packages already present under the destination are skipped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args[0], args[1])
		},
	}
}

func runFetch(cmd *cobra.Command, manifestPath, dest string) error {
	file, err := os.Open(manifestPath)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	manifest, err := fetch.ParseManifest(file)
	if err != nil {
		return err
	}

	fs := osfs.New()
	fetcher := fetch.New(httpc.New(), fs, fs, newLogger())
	return fetcher.Fetch(cmd.Context(), manifest, dest)
}
