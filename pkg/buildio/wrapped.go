package buildio

import "io"

// WrappedReader pairs an opaque byte stream with the path it was opened
// from. The path exists purely so that callers converting read failures into
// IOError values can attribute them to the right resource; Read itself
// delegates raw and leaves low-level errors untranslated.
type WrappedReader struct {
	path  string
	inner io.Reader
}

// NewReader wraps inner as a reader opened from path.
func NewReader(path string, inner io.Reader) *WrappedReader {
	return &WrappedReader{path: path, inner: inner}
}

// Path returns the path this reader was opened from.
func (r *WrappedReader) Path() string {
	return r.path
}

// Read delegates to the underlying stream. Failures propagate as the
// stream's own errors; conversion into IOError is a caller concern at this
// level.
func (r *WrappedReader) Read(p []byte) (int, error) {
	return r.inner.Read(p)
}

// Close closes the underlying stream when it supports closing.
func (r *WrappedReader) Close() error {
	if c, ok := r.inner.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return NewReadError(KindFile, r.path, err)
		}
	}
	return nil
}

// WrappedWriter pairs an opaque writable stream with the path it was opened
// from. Every failure raised through the converted facets carries this
// handle's own path, never the caller's.
type WrappedWriter struct {
	path  string
	inner io.Writer
}

var (
	_ Writer          = (*WrappedWriter)(nil)
	_ io.StringWriter = (*WrappedWriter)(nil)
)

// NewWriter wraps inner as a writer opened from path.
func NewWriter(path string, inner io.Writer) *WrappedWriter {
	return &WrappedWriter{path: path, inner: inner}
}

// Path returns the path this writer was opened from.
func (w *WrappedWriter) Path() string {
	return w.path
}

// Write delegates raw to the underlying stream, satisfying io.Writer.
func (w *WrappedWriter) Write(p []byte) (int, error) {
	return w.inner.Write(p)
}

// WriteString delegates raw to the underlying stream, satisfying
// io.StringWriter.
func (w *WrappedWriter) WriteString(s string) (int, error) {
	return io.WriteString(w.inner, s)
}

// WriteBytes appends p, converting any failure into a write error on this
// handle's path.
func (w *WrappedWriter) WriteBytes(p []byte) error {
	_, err := w.inner.Write(p)
	return convertWrite(w.path, err)
}

// WriteText appends the UTF-8 bytes of s, converting any failure into a
// write error on this handle's path.
func (w *WrappedWriter) WriteText(s string) error {
	_, err := io.WriteString(w.inner, s)
	return convertWrite(w.path, err)
}

// Close closes the underlying stream when it supports closing.
func (w *WrappedWriter) Close() error {
	if c, ok := w.inner.(io.Closer); ok {
		return convertWrite(w.path, c.Close())
	}
	return nil
}
