// Package parquet is the top-level entry point of the column-chunk decode
// pipeline: it opens a Parquet file's footer metadata and schema (File),
// then reads its row groups as Apache Arrow record batches (Reader), by
// driving the columnchunk, assemble and rowgroup packages that implement
// the pipeline's core components.
package parquet

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/arrowparquet/parquet-arrow/format"
	"github.com/arrowparquet/parquet-arrow/internal/ioutil"
	"github.com/arrowparquet/parquet-arrow/schema"
)

const (
	magic            = "PAR1"
	footerLengthSize = 4
	minFileSize      = len(magic)*2 + footerLengthSize
)

// ErrMissingRootColumn reports a file footer whose schema element list is
// empty: there is no root to build a schema tree from.
var ErrMissingRootColumn = errors.New("parquet: file has no root column")

// File holds a Parquet file's footer metadata and reconstructed schema
// tree. Both are read once, in OpenFile, and are read-only for the
// remainder of the File's lifetime: the only per-reader mutable state the
// core specifies, so a *File is safe to share across
// goroutines reading different row groups concurrently.
type File struct {
	file     ioutil.File
	metadata *format.FileMetaData
	root     *schema.Node
}

// OpenFile validates the leading and trailing "PAR1" magic of a size-byte
// Parquet file accessed through r, decodes its Thrift-encoded footer, and
// reconstructs the schema tree. Only the magic bytes and the footer
// are read; column chunk bytes are left untouched until a row group is
// read through a Reader.
func OpenFile(r io.ReaderAt, size int64) (*File, error) {
	if size < int64(minFileSize) {
		return nil, fmt.Errorf("parquet: %w: file is %d bytes, the minimum valid size is %d", format.ErrTruncatedFile, size, minFileSize)
	}
	f := ioutil.NewFile(r, size)

	head, err := ioutil.ReadRange(f, 0, int64(len(magic)))
	if err != nil {
		return nil, fmt.Errorf("parquet: reading magic header: %w", err)
	}
	if string(head) != magic {
		return nil, fmt.Errorf("parquet: %w: invalid magic header %q", format.ErrTruncatedFile, head)
	}

	trailerSize := int64(footerLengthSize + len(magic))
	tail, err := ioutil.ReadRange(f, size-trailerSize, trailerSize)
	if err != nil {
		return nil, fmt.Errorf("parquet: reading magic footer: %w", err)
	}
	if string(tail[footerLengthSize:]) != magic {
		return nil, fmt.Errorf("parquet: %w: invalid magic footer %q", format.ErrTruncatedFile, tail[footerLengthSize:])
	}

	footerLength := int64(binary.LittleEndian.Uint32(tail[:footerLengthSize]))
	if footerLength <= 0 || footerLength > size-trailerSize {
		return nil, fmt.Errorf("parquet: %w: footer length %d", format.ErrInvalidFooter, footerLength)
	}

	footer, err := ioutil.ReadRange(f, size-trailerSize-footerLength, footerLength)
	if err != nil {
		return nil, fmt.Errorf("parquet: reading footer: %w", err)
	}

	metadata, err := format.ReadFileMetaData(footer)
	if err != nil {
		return nil, fmt.Errorf("parquet: decoding file metadata: %w", err)
	}
	if len(metadata.Schema) == 0 {
		return nil, ErrMissingRootColumn
	}

	root, err := schema.FromElements(metadata.Schema)
	if err != nil {
		return nil, fmt.Errorf("parquet: building schema tree: %w", err)
	}

	return &File{file: f, metadata: metadata, root: root}, nil
}

// Metadata returns the file's decoded footer. Callers must not mutate the
// returned value: it is shared by every Reader built over this File.
func (f *File) Metadata() *format.FileMetaData { return f.metadata }

// Schema returns the root of the reconstructed schema tree.
func (f *File) Schema() *schema.Node { return f.root }

// NumRows returns the total row count across every row group.
func (f *File) NumRows() int64 { return f.metadata.NumRows }

// NumRowGroups returns the number of row groups in the file.
func (f *File) NumRowGroups() int { return len(f.metadata.RowGroups) }

// RowGroup returns the footer record of row group i.
func (f *File) RowGroup(i int) (*format.RowGroup, error) {
	if i < 0 || i >= len(f.metadata.RowGroups) {
		return nil, fmt.Errorf("parquet: row group %d: %w", i, format.ErrArgumentOutOfRange)
	}
	return &f.metadata.RowGroups[i], nil
}
