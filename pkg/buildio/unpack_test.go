package buildio

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUnpacker records the call and returns a fixed error.
type stubUnpacker struct {
	dir string
	err error
}

func (s *stubUnpacker) IOUnpack(dir string, archive *tar.Reader) error {
	s.dir = dir
	return s.err
}

func TestUnpack_Success(t *testing.T) {
	u := &stubUnpacker{}
	archive := tar.NewReader(bytes.NewReader(nil))

	err := Unpack(zerolog.Nop(), u, "/build/packages/stdlib", archive)
	require.NoError(t, err)
	assert.Equal(t, "/build/packages/stdlib", u.dir)
}

func TestUnpack_ConvertsNativeError(t *testing.T) {
	u := &stubUnpacker{err: errors.New("unexpected EOF")}
	archive := tar.NewReader(bytes.NewReader(nil))

	err := Unpack(zerolog.Nop(), u, "/build/packages/stdlib", archive)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, ActionWriteTo, ioErr.Action)
	assert.Equal(t, KindDirectory, ioErr.Kind)
	assert.Equal(t, "/build/packages/stdlib", ioErr.Path)
	assert.Equal(t, "unexpected EOF", ioErr.Cause())
}

func TestLazyGzipReader_RoundTrip(t *testing.T) {
	var compressed bytes.Buffer
	gw := gzip.NewWriter(&compressed)
	_, err := gw.Write([]byte("pub fn main() {}"))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	got, err := io.ReadAll(LazyGzipReader(&compressed))
	require.NoError(t, err)
	assert.Equal(t, "pub fn main() {}", string(got))
}

func TestLazyGzipReader_HeaderErrorSurfacesOnRead(t *testing.T) {
	r := LazyGzipReader(bytes.NewReader([]byte("not a gzip stream")))

	_, err := io.ReadAll(r)
	assert.ErrorIs(t, err, gzip.ErrHeader)
}

func TestUnpack_TracesTarget(t *testing.T) {
	var out bytes.Buffer
	log := zerolog.New(&out).Level(zerolog.TraceLevel)

	err := Unpack(log, &stubUnpacker{}, "/tmp/target", tar.NewReader(bytes.NewReader(nil)))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "unpacking tar archive")
	assert.Contains(t, out.String(), "/tmp/target")
}
