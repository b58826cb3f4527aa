package buildio

import (
	"bytes"
	"io"
)

// inMemoryPath is the path attached to write failures raised by resources
// that have no backing path, such as plain in-memory buffers.
const inMemoryPath = "<in memory>"

// TextWriter appends UTF-8 text to an underlying resource, reporting any
// failure as an *IOError that names the resource.
type TextWriter interface {
	WriteText(s string) error
}

// ByteWriter appends raw bytes to an underlying resource, reporting any
// failure as an *IOError that names the resource.
type ByteWriter interface {
	WriteBytes(p []byte) error
}

// Writer is the full write contract: the raw io.Writer facet plus the
// converted-error text and byte facets. Whichever facet is used, the same
// bytes reach the underlying resource in call order.
type Writer interface {
	io.Writer
	TextWriter
	ByteWriter
}

// Buffer is an in-memory Writer. Failures, were the underlying buffer ever
// to produce one, are attributed to the in-memory sentinel path rather than
// a filesystem location.
type Buffer struct {
	buf bytes.Buffer
}

// Write appends p to the buffer.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.buf.Write(p)
}

// WriteText appends s to the buffer.
func (b *Buffer) WriteText(s string) error {
	_, err := b.buf.WriteString(s)
	return convertWrite(inMemoryPath, err)
}

// WriteBytes appends p to the buffer.
func (b *Buffer) WriteBytes(p []byte) error {
	_, err := b.buf.Write(p)
	return convertWrite(inMemoryPath, err)
}

// String returns the accumulated contents as text.
func (b *Buffer) String() string {
	return b.buf.String()
}

// Bytes returns the accumulated contents.
func (b *Buffer) Bytes() []byte {
	return b.buf.Bytes()
}
