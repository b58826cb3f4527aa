package memfs

import (
	"errors"
	"fmt"
	"iter"
	"unicode/utf8"

	"github.com/arthur-debert/buildio/pkg/buildio"
)

// channelDepth bounds the capture channel. Sends beyond it are dropped,
// matching the best-effort contract of Writer.
const channelDepth = 1024

// ErrChannelClosed is returned by ReceiveUTF8Files when the capture channel
// was closed before the drain finished.
var ErrChannelClosed = errors.New("memfs: files channel closed during drain")

// Entry associates a written path with the file captured for it. The file
// still shares its buffer with the writer handle until that handle is
// closed.
type Entry struct {
	Path string
	File File
}

// FilesChannel implements buildio.FileSystemIO by capturing every opened
// writer on a channel. Each Writer call sends one entry immediately, before
// any writing happens, so the association between path and buffer is
// observable while the file is still being written. The read-direction
// methods panic: the double is write-only, and calling them is a mistake in
// test setup.
type FilesChannel struct {
	ch chan Entry
}

var _ buildio.FileSystemIO = (*FilesChannel)(nil)

// NewFilesChannel creates a channel-backed writer and the receiver a test
// drains with ReceiveUTF8Files.
func NewFilesChannel() (*FilesChannel, <-chan Entry) {
	ch := make(chan Entry, channelDepth)
	return &FilesChannel{ch: ch}, ch
}

// Writer opens path for writing. A clone of the fresh file is sent on the
// capture channel best-effort: when nothing can accept it the send is
// silently dropped, not an error.
func (c *FilesChannel) Writer(path string) (*buildio.WrappedWriter, error) {
	file := NewFile()
	clone := file.Clone()
	select {
	case c.ch <- Entry{Path: path, File: clone}:
	default:
		clone.Discard()
	}
	return buildio.NewWriter(path, file), nil
}

// SourceFiles panics: the files channel is write-only.
func (c *FilesChannel) SourceFiles(dir string) iter.Seq[string] {
	panic("memfs: SourceFiles called on the write-only files channel")
}

// ReadFileString panics: the files channel is write-only.
func (c *FilesChannel) ReadFileString(path string) (string, error) {
	panic("memfs: ReadFileString called on the write-only files channel")
}

// Reader panics: the files channel is write-only.
func (c *FilesChannel) Reader(path string) (*buildio.WrappedReader, error) {
	panic("memfs: Reader called on the write-only files channel")
}

// IsFile panics: the files channel is write-only.
func (c *FilesChannel) IsFile(path string) bool {
	panic("memfs: IsFile called on the write-only files channel")
}

// IsDirectory panics: the files channel is write-only.
func (c *FilesChannel) IsDirectory(path string) bool {
	panic("memfs: IsDirectory called on the write-only files channel")
}

// ReceiveUTF8Files drains every entry currently queued on receiver and
// decodes each buffer as UTF-8, in send order. It does not wait for entries
// sent after the drain begins. The corresponding writer handles must have
// been closed first; a still-shared buffer, a closed channel, or invalid
// UTF-8 fails the whole collection.
func ReceiveUTF8Files(receiver <-chan Entry) ([]buildio.OutputFile, error) {
	var files []buildio.OutputFile
	for {
		select {
		case entry, ok := <-receiver:
			if !ok {
				return nil, ErrChannelClosed
			}
			raw, err := entry.File.IntoContents()
			if err != nil {
				return nil, fmt.Errorf("%w (path %s)", err, entry.Path)
			}
			if !utf8.Valid(raw) {
				return nil, fmt.Errorf("memfs: file %s is not valid UTF-8", entry.Path)
			}
			files = append(files, buildio.OutputFile{Path: entry.Path, Text: string(raw)})
		default:
			return files, nil
		}
	}
}
