package buildio

import (
	"archive/tar"
	"compress/gzip"
	"io"

	"github.com/rs/zerolog"
)

// TarUnpacker extracts tar archives into a target directory. Implementations
// supply only the mechanical IOUnpack step; Unpack layers tracing and error
// conversion on top, once, for every backend.
type TarUnpacker interface {
	// IOUnpack extracts archive into dir, returning the backend's native
	// low-level error.
	IOUnpack(dir string, archive *tar.Reader) error
}

// Unpack extracts archive into dir. The archive is expected to be a tar
// stream stacked over a decompressing reader over a WrappedReader. Any
// failure from the unpacker is converted into a write error on the target
// directory, with the native error's description as cause.
func Unpack(log zerolog.Logger, u TarUnpacker, dir string, archive *tar.Reader) error {
	log.Trace().Str("path", dir).Msg("unpacking tar archive")
	if err := u.IOUnpack(dir, archive); err != nil {
		return NewWriteError(KindDirectory, dir, err)
	}
	return nil
}

// LazyGzipReader returns a reader that parses the gzip header on the first
// Read rather than at construction. Stacked under a tar reader this keeps
// every stream failure, header corruption included, inside the tar loop
// where Unpack attributes it to the target directory.
func LazyGzipReader(r io.Reader) io.Reader {
	return &lazyGzipReader{src: r}
}

type lazyGzipReader struct {
	src io.Reader
	gz  *gzip.Reader
}

func (l *lazyGzipReader) Read(p []byte) (int, error) {
	if l.gz == nil {
		gz, err := gzip.NewReader(l.src)
		if err != nil {
			return 0, err
		}
		l.gz = gz
	}
	return l.gz.Read(p)
}
