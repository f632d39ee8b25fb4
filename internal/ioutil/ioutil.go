// Package ioutil provides the minimal random-access file abstraction the
// row-group orchestrator reads column chunks through: a thin
// io.ReaderAt-based adapter, not a pluggable storage layer.
package ioutil

import (
	"fmt"
	"io"
)

// File is a random-access byte source with a known length, the shape every
// execution mode in the row-group orchestrator reads column chunks through.
type File interface {
	io.ReaderAt
	// Len returns the total size of the file in bytes.
	Len() int64
}

// localFile adapts an io.ReaderAt of known size to File.
type localFile struct {
	r    io.ReaderAt
	size int64
}

// NewFile wraps r, whose total length is size, as a File.
func NewFile(r io.ReaderAt, size int64) File {
	return &localFile{r: r, size: size}
}

func (f *localFile) ReadAt(b []byte, off int64) (int, error) { return f.r.ReadAt(b, off) }
func (f *localFile) Len() int64                              { return f.size }

// ReadRange reads the byte range [offset, offset+length) of f in one call,
// returning an error that wraps io.ErrUnexpectedEOF if f is shorter than the
// requested range).
func ReadRange(f File, offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > f.Len() {
		return nil, fmt.Errorf("ioutil: range [%d, %d) is out of bounds for a %d byte file: %w", offset, offset+length, f.Len(), io.ErrUnexpectedEOF)
	}
	buf := make([]byte, length)
	if _, err := f.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("ioutil: reading range [%d, %d): %w", offset, offset+length, err)
	}
	return buf, nil
}

// Range is a single [Offset, Offset+Length) byte range of a File, as planned
// by the row-group orchestrator for one column chunk.
type Range struct {
	Offset int64
	Length int64
}

// ReadRanges reads every range of f, independently, returning one buffer per
// range in the same order. Each read runs synchronously; callers wanting
// parallel I/O across ranges call
// ReadRange themselves from their own goroutines instead.
func ReadRanges(f File, ranges []Range) ([][]byte, error) {
	out := make([][]byte, len(ranges))
	for i, r := range ranges {
		buf, err := ReadRange(f, r.Offset, r.Length)
		if err != nil {
			return nil, err
		}
		out[i] = buf
	}
	return out, nil
}
