// Package memfs is the in-memory backend used to make a caller's file
// output observable in tests without touching a real disk. It is a
// write-only backend: written files are captured, in order, on a channel
// the test drains afterwards.
package memfs

import (
	"bytes"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/buildio/pkg/buildio"
)

// inMemoryTestPath is the path attached to write failures raised by
// in-memory test files.
const inMemoryTestPath = "<in memory test file>"

// ErrShared is returned by IntoContents when more than one owner still
// holds the file's buffer.
var ErrShared = errors.New("memfs: file buffer is still shared")

// File is an in-memory file with shared-ownership byte storage. Clones
// share the same buffer; the writer handle and the captured channel entry
// are the two expected owners. The buffer can be reclaimed only once every
// other owner has released it.
type File struct {
	state  *fileState
	owners *atomic.Int32
}

type fileState struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

var _ buildio.Writer = File{}

// NewFile creates an empty file with a single owner.
func NewFile() File {
	owners := &atomic.Int32{}
	owners.Store(1)
	return File{state: &fileState{}, owners: owners}
}

// Clone returns a new owner of the same underlying buffer.
func (f File) Clone() File {
	f.owners.Add(1)
	return f
}

// Close releases this owner's hold on the buffer. A WrappedWriter built
// over the file releases it this way when closed.
func (f File) Close() error {
	f.owners.Add(-1)
	return nil
}

// Discard releases this owner's hold without reading the contents.
func (f File) Discard() {
	f.owners.Add(-1)
}

// IntoContents reclaims the buffer, consuming this final owner. It fails
// with ErrShared while any other owner remains.
func (f File) IntoContents() ([]byte, error) {
	if !f.owners.CompareAndSwap(1, 0) {
		return nil, ErrShared
	}
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	return f.state.buf.Bytes(), nil
}

// Write appends p to the shared buffer.
func (f File) Write(p []byte) (int, error) {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	return f.state.buf.Write(p)
}

// WriteString appends s to the shared buffer.
func (f File) WriteString(s string) (int, error) {
	f.state.mu.Lock()
	defer f.state.mu.Unlock()
	return f.state.buf.WriteString(s)
}

// WriteText appends s, converting any failure into a write error on the
// in-memory sentinel path.
func (f File) WriteText(s string) error {
	_, err := f.WriteString(s)
	if err != nil {
		return buildio.NewWriteError(buildio.KindFile, inMemoryTestPath, err)
	}
	return nil
}

// WriteBytes appends p, converting any failure into a write error on the
// in-memory sentinel path.
func (f File) WriteBytes(p []byte) error {
	_, err := f.Write(p)
	if err != nil {
		return buildio.NewWriteError(buildio.KindFile, inMemoryTestPath, err)
	}
	return nil
}
