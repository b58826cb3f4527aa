// Package fetch downloads package tarballs over a buildio.HTTPClient and
// unpacks them into a build directory in dependency order.
package fetch

import (
	"archive/tar"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/arthur-debert/buildio/pkg/buildio"
)

// downloadLimit bounds concurrent tarball downloads.
const downloadLimit = 4

// Fetcher downloads and unpacks the packages named by a manifest. Downloads
// run concurrently; unpacking runs sequentially in dependency order so a
// package never lands before its requirements.
type Fetcher struct {
	client   buildio.HTTPClient
	fs       buildio.FileSystemIO
	unpacker buildio.TarUnpacker
	log      zerolog.Logger
}

// New creates a Fetcher. fs is consulted to skip packages already unpacked
// under the destination directory, and every downloaded tarball is staged
// through its writer.
func New(client buildio.HTTPClient, fs buildio.FileSystemIO, unpacker buildio.TarUnpacker, log zerolog.Logger) *Fetcher {
	return &Fetcher{client: client, fs: fs, unpacker: unpacker, log: log}
}

// Fetch downloads every missing package in the manifest and unpacks each
// into destDir/<name>-<version>, requirements first.
func (f *Fetcher) Fetch(ctx context.Context, m *Manifest, destDir string) error {
	ordered, err := Order(m)
	if err != nil {
		return err
	}

	missing := make([]Package, 0, len(ordered))
	for _, pkg := range ordered {
		target := filepath.Join(destDir, pkg.Dir())
		if f.fs.IsDirectory(target) {
			f.log.Debug().Str("package", pkg.Name).Str("path", target).Msg("package already fetched")
			continue
		}
		missing = append(missing, pkg)
	}

	tarballs, err := f.download(ctx, missing, destDir)
	if err != nil {
		return err
	}

	for _, pkg := range missing {
		target := filepath.Join(destDir, pkg.Dir())
		archive, done, err := tarReader(pkg.URL, tarballs[pkg.Name])
		if err != nil {
			return err
		}
		err = buildio.Unpack(f.log, f.unpacker, target, archive)
		done()
		if err != nil {
			return err
		}
		f.log.Info().Str("package", pkg.Name).Str("version", pkg.Version).Msg("package unpacked")
	}
	return nil
}

// download fetches every package tarball concurrently, staging each through
// the filesystem writer next to its package directory. The returned map
// keys the raw bytes by package name for the unpack pass.
func (f *Fetcher) download(ctx context.Context, pkgs []Package, destDir string) (map[string][]byte, error) {
	var mu sync.Mutex
	tarballs := make(map[string][]byte, len(pkgs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadLimit)
	for _, pkg := range pkgs {
		g.Go(func() error {
			f.log.Debug().Str("package", pkg.Name).Str("url", pkg.URL).Msg("downloading package")
			data, err := f.fetchTarball(ctx, pkg.URL)
			if err != nil {
				return err
			}
			if err := f.stage(pkg, destDir, data); err != nil {
				return err
			}
			mu.Lock()
			tarballs[pkg.Name] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tarballs, nil
}

// stage writes a downloaded tarball to destDir/<name>-<version>.<suffix>
// through the filesystem writer.
func (f *Fetcher) stage(pkg Package, destDir string, data []byte) error {
	suffix, err := archiveSuffix(pkg.URL)
	if err != nil {
		return err
	}
	w, err := f.fs.Writer(filepath.Join(destDir, pkg.Dir()+suffix))
	if err != nil {
		return err
	}
	if err := w.WriteBytes(data); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func (f *Fetcher) fetchTarball(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, buildio.NewReadError(buildio.KindFile, url, err)
	}
	resp, err := f.client.Send(ctx, req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, buildio.NewReadError(buildio.KindFile, url,
			fmt.Errorf("unexpected status %s", resp.Status))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, buildio.NewReadError(buildio.KindFile, url, err)
	}
	return data, nil
}

// archiveSuffix maps a tarball URL to its recognised archive suffix.
func archiveSuffix(url string) (string, error) {
	for _, suffix := range []string{".tar.gz", ".tgz", ".tar.zst"} {
		if strings.HasSuffix(url, suffix) {
			return suffix, nil
		}
	}
	return "", buildio.NewReadError(buildio.KindFile, url,
		fmt.Errorf("unsupported archive suffix"))
}

// tarReader stacks a tar reader over the decompression stage the tarball's
// suffix calls for, over a WrappedReader attributed to the URL. Both
// decompressors decode lazily, so stream corruption surfaces from the tar
// loop and is attributed to the unpack target. The done func releases the
// decompressor once unpacking finishes.
func tarReader(url string, data []byte) (*tar.Reader, func(), error) {
	suffix, err := archiveSuffix(url)
	if err != nil {
		return nil, nil, err
	}
	wrapped := buildio.NewReader(url, bytes.NewReader(data))
	switch suffix {
	case ".tar.gz", ".tgz":
		return tar.NewReader(buildio.LazyGzipReader(wrapped)), func() {}, nil
	default:
		zr, err := zstd.NewReader(wrapped)
		if err != nil {
			return nil, nil, buildio.NewReadError(buildio.KindFile, url, err)
		}
		return tar.NewReader(zr.IOReadCloser()), zr.Close, nil
	}
}
