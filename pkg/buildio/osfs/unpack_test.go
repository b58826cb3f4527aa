package osfs

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/buildio/pkg/buildio"
)

// createTestTarGz builds a gzip-compressed tar archive in memory.
func createTestTarGz(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer

	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	for path, content := range files {
		dir := filepath.Dir(path)
		if dir != "." && dir != "/" {
			header := &tar.Header{
				Name:     dir + "/",
				Mode:     0755,
				Typeflag: tar.TypeDir,
			}
			require.NoError(t, tw.WriteHeader(header))
		}

		header := &tar.Header{
			Name: path,
			Mode: 0644,
			Size: int64(len(content)),
		}
		require.NoError(t, tw.WriteHeader(header))
		_, err := tw.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

// gzipTarReader stacks a tar reader over a gzip stage over a WrappedReader,
// the same shape real unpack call sites use.
func gzipTarReader(t *testing.T, name string, data []byte) *tar.Reader {
	t.Helper()
	wrapped := buildio.NewReader(name, bytes.NewReader(data))
	gz, err := gzip.NewReader(wrapped)
	require.NoError(t, err)
	return tar.NewReader(gz)
}

func TestUnpack_ExtractsArchive(t *testing.T) {
	data := createTestTarGz(t, map[string][]byte{
		"pkg/src/main.glm": []byte("pub fn main() {}"),
		"pkg/README.md":    []byte("hello"),
	})
	dest := t.TempDir()
	fs := New()

	err := buildio.Unpack(zerolog.Nop(), fs, dest, gzipTarReader(t, "pkg.tar.gz", data))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dest, "pkg", "src", "main.glm"))
	require.NoError(t, err)
	assert.Equal(t, "pub fn main() {}", string(got))
	assert.True(t, fs.IsFile(filepath.Join(dest, "pkg", "README.md")))
	assert.True(t, fs.IsDirectory(filepath.Join(dest, "pkg", "src")))
}

func TestUnpack_CorruptStream(t *testing.T) {
	dest := t.TempDir()
	// Not a tar stream at all.
	archive := tar.NewReader(bytes.NewReader([]byte("this is not a tarball")))

	err := buildio.Unpack(zerolog.Nop(), New(), dest, archive)

	var ioErr *buildio.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, buildio.ActionWriteTo, ioErr.Action)
	assert.Equal(t, buildio.KindDirectory, ioErr.Kind)
	assert.Equal(t, dest, ioErr.Path)
	assert.NotEmpty(t, ioErr.Cause())
}

func TestUnpack_RejectsEscapingEntries(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "../escape.txt",
		Mode: 0644,
		Size: 4,
	}))
	_, err := tw.Write([]byte("evil"))
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())

	dest := t.TempDir()
	err = buildio.Unpack(zerolog.Nop(), New(), dest, gzipTarReader(t, "evil.tar.gz", buf.Bytes()))

	var ioErr *buildio.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Contains(t, ioErr.Cause(), "escapes target directory")
	assert.NoFileExists(t, filepath.Join(filepath.Dir(dest), "escape.txt"))
}
