package parquet

import (
	"context"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/memory"

	"github.com/arrowparquet/parquet-arrow/rowgroup"
)

// Reader reads row groups of a File as Arrow record batches. It is the
// caller-facing half of the row-group orchestrator: column
// selection, range planning and execution-mode scheduling live in the
// rowgroup package, which Reader drives with its configured options.
type Reader struct {
	file   *File
	mem    memory.Allocator
	config *ReaderConfig
}

// NewReader constructs a Reader over f. mem is used for every Arrow
// allocation the reader performs; a nil mem uses memory.DefaultAllocator.
func NewReader(f *File, mem memory.Allocator, options ...ReaderOption) *Reader {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	config := DefaultReaderConfig()
	for _, opt := range options {
		opt.ConfigureReader(config)
	}
	return &Reader{file: f, mem: mem, config: config}
}

// ReadRowGroup reads row group i, reconstructing struct/list/map structure
// from the decoded column chunks into one Arrow array per selected
// top-level field.
func (r *Reader) ReadRowGroup(ctx context.Context, i int) (arrow.Record, error) {
	rg, err := r.file.RowGroup(i)
	if err != nil {
		return nil, err
	}
	return rowgroup.ReadNested(ctx, r.mem, r.file.file, r.file.root, rg, r.config.Columns, r.config.Mode, r.config.Concurrency)
}

// ReadRowGroupFlat reads row group i with no nested assembly: every
// selected column becomes one flat Arrow array. A selected column that
// resolves to a repeated leaf fails with rowgroup.ErrRepeatedColumnFlat.
func (r *Reader) ReadRowGroupFlat(ctx context.Context, i int) (arrow.Record, error) {
	rg, err := r.file.RowGroup(i)
	if err != nil {
		return nil, err
	}
	return rowgroup.ReadFlat(ctx, r.mem, r.file.file, r.file.root, rg, r.config.Columns, r.config.Mode, r.config.Concurrency)
}

// File returns the Reader's underlying File.
func (r *Reader) File() *File { return r.file }
