// Package osfs implements the buildio capability interfaces on top of the
// operating system's filesystem.
package osfs

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/buildio/pkg/buildio"
)

// DefaultSourceExtension is the file extension SourceFiles matches when no
// override is configured.
const DefaultSourceExtension = ".glm"

// FS implements buildio.FileSystemIO and buildio.TarUnpacker over the real
// filesystem.
type FS struct {
	sourceExt string
}

var (
	_ buildio.FileSystemIO = (*FS)(nil)
	_ buildio.TarUnpacker  = (*FS)(nil)
)

// Option configures an FS.
type Option func(*FS)

// WithSourceExtension overrides the extension SourceFiles matches.
func WithSourceExtension(ext string) Option {
	return func(f *FS) {
		f.sourceExt = ext
	}
}

// New creates an OS-backed filesystem.
func New(opts ...Option) *FS {
	f := &FS{sourceExt: DefaultSourceExtension}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SourceFiles walks dir lazily, yielding every file with the configured
// source extension. Unreadable subtrees are skipped rather than reported;
// enumeration has no error path.
func (f *FS) SourceFiles(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(path, f.sourceExt) {
				return nil
			}
			if !yield(path) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

// ReadFileString returns the full contents of path as text. Contents that
// are not valid UTF-8 fail with a read error rather than being substituted
// or truncated.
func (f *FS) ReadFileString(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", buildio.NewReadError(buildio.KindFile, path, err)
	}
	if !utf8.Valid(raw) {
		return "", buildio.NewReadError(buildio.KindFile, path, errors.New("file contents are not valid UTF-8"))
	}
	return string(raw), nil
}

// Reader opens path for streaming reads.
func (f *FS) Reader(path string) (*buildio.WrappedReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, buildio.NewReadError(buildio.KindFile, path, err)
	}
	return buildio.NewReader(path, file), nil
}

// Writer opens path for streaming writes, creating parent directories as
// needed.
func (f *FS) Writer(path string) (*buildio.WrappedWriter, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, buildio.NewWriteError(buildio.KindDirectory, dir, err)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, buildio.NewWriteError(buildio.KindFile, path, err)
	}
	return buildio.NewWriter(path, file), nil
}

// IsFile reports whether path exists and is a regular file.
func (f *FS) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsDirectory reports whether path exists and is a directory.
func (f *FS) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
