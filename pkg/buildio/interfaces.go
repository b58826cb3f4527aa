// Package buildio decouples build tooling from concrete I/O backends. It
// defines narrow capability interfaces for reading and writing files,
// sending HTTP requests, and unpacking compressed archives, along with the
// uniform error conversion every backend applies at its boundary. The real
// filesystem backend lives in osfs, the in-memory test double in memfs.
package buildio

import (
	"context"
	"iter"
	"net/http"
)

// OutputFile is a fully materialized artifact destined for a backend
// writer.
type OutputFile struct {
	Path string
	Text string
}

// FileSystemReader is the read-direction capability. Typically backed by
// the real filesystem, but tests and other callers may substitute any
// implementation.
type FileSystemReader interface {
	// SourceFiles returns a lazy, finite sequence of the source files under
	// dir. What counts as a source file is owned by the backend; each match
	// is yielded once and the sequence always terminates.
	SourceFiles(dir string) iter.Seq[string]

	// ReadFileString returns the full text contents of the file at path.
	// Contents that are not valid UTF-8 produce a read error, never partial
	// text.
	ReadFileString(path string) (string, error)

	// Reader opens path for streaming reads.
	Reader(path string) (*WrappedReader, error)

	// IsFile reports whether path exists and is a regular file. Nonexistent
	// paths report false, not an error.
	IsFile(path string) bool

	// IsDirectory reports whether path exists and is a directory.
	// Nonexistent paths report false, not an error.
	IsDirectory(path string) bool
}

// FileSystemWriter is the write-direction capability.
type FileSystemWriter interface {
	// Writer opens path for streaming writes, creating it as needed.
	Writer(path string) (*WrappedWriter, error)
}

// FileSystemIO combines both directions. Callers needing only one
// direction should depend on the narrower interface.
type FileSystemIO interface {
	FileSystemReader
	FileSystemWriter
}

// HTTPClient sends a single HTTP request and produces its response, or an
// *IOError. This is the one blocking seam in the package: the call may wait
// on network I/O, and cancellation or deadlines are imposed through ctx by
// the caller. No retry policy exists at this layer.
type HTTPClient interface {
	Send(ctx context.Context, req *http.Request) (*http.Response, error)
}
