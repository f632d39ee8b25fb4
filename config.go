package parquet

import "github.com/arrowparquet/parquet-arrow/rowgroup"

// ReaderConfig carries the row-group orchestrator knobs a Reader applies to
// every ReadRowGroup/ReadRowGroupFlat call: which columns to decode, which
// of the four execution modes to schedule them with, and how much
// concurrency the parallel modes may use.
type ReaderConfig struct {
	// Columns restricts which columns are read. ReadRowGroup treats these
	// as top-level field names; ReadRowGroupFlat treats them as dotted leaf
	// paths. A nil slice selects every top-level field for ReadRowGroup and
	// every non-repeated leaf for ReadRowGroupFlat.
	Columns []string
	// Mode selects the execution mode; the zero value is
	// ReadAllThenDecodeSequential.
	Mode rowgroup.ExecutionMode
	// Concurrency bounds column chunk reads/decodes under the two parallel
	// execution modes. Zero means the available hardware parallelism.
	Concurrency int
}

// DefaultReaderConfig returns the default configuration: every column, read
// entirely then decoded sequentially.
func DefaultReaderConfig() *ReaderConfig {
	return &ReaderConfig{Mode: rowgroup.ReadAllThenDecodeSequential}
}

// ReaderOption configures a ReaderConfig.
type ReaderOption interface {
	ConfigureReader(*ReaderConfig)
}

type readerOptionFunc func(*ReaderConfig)

func (f readerOptionFunc) ConfigureReader(c *ReaderConfig) { f(c) }

// WithColumns restricts the columns a Reader decodes.
func WithColumns(columns ...string) ReaderOption {
	return readerOptionFunc(func(c *ReaderConfig) { c.Columns = columns })
}

// WithExecutionMode selects one of the orchestrator's four execution
// modes.
func WithExecutionMode(mode rowgroup.ExecutionMode) ReaderOption {
	return readerOptionFunc(func(c *ReaderConfig) { c.Mode = mode })
}

// WithConcurrency bounds concurrent column chunk reads/decodes under the
// parallel execution modes.
func WithConcurrency(n int) ReaderOption {
	return readerOptionFunc(func(c *ReaderConfig) { c.Concurrency = n })
}
