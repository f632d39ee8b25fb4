// Package rowgroup implements the row-group orchestrator: it
// resolves which columns to decode, plans the byte range of each selected
// column chunk, drives the column-chunk decoder (and, for nested schemas,
// the assemble package) across one of four execution modes, and packages
// the result as an arrow.Record.
//
// The package itself holds no state; every call is a self-contained read of
// one row group. Concurrency, where used, is bounded by an errgroup limit
// rather than an unbounded fan-out, so a wide schema cannot spawn more
// decode goroutines than the hardware can run.
package rowgroup

import (
	"context"
	"encoding/base64"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/memory"
	"golang.org/x/sync/errgroup"

	"github.com/arrowparquet/parquet-arrow/arrowtype"
	"github.com/arrowparquet/parquet-arrow/assemble"
	"github.com/arrowparquet/parquet-arrow/columnchunk"
	"github.com/arrowparquet/parquet-arrow/format"
	"github.com/arrowparquet/parquet-arrow/internal/ioutil"
	"github.com/arrowparquet/parquet-arrow/schema"
)

// ExecutionMode selects one of the four column-chunk read/decode schedules
// the orchestrator offers. All four must be correct; they differ
// only in how reads and decodes are interleaved and parallelized.
type ExecutionMode int

const (
	// ReadAllThenDecodeSequential reads every selected column chunk's bytes
	// up front, then decodes them one at a time.
	ReadAllThenDecodeSequential ExecutionMode = iota
	// PerColumnReadThenDecode reads and decodes one column chunk at a time,
	// bounding peak memory to a single chunk's bytes instead of all of them.
	PerColumnReadThenDecode
	// ReadAllThenDecodeParallel reads every column chunk's bytes up front,
	// then decodes them concurrently, bounded by Concurrency.
	ReadAllThenDecodeParallel
	// PerColumnParallel reads and decodes each column chunk concurrently,
	// bounded by Concurrency.
	PerColumnParallel
)

func (m ExecutionMode) String() string {
	switch m {
	case ReadAllThenDecodeSequential:
		return "read-all-then-decode-sequential"
	case PerColumnReadThenDecode:
		return "per-column-read-then-decode"
	case ReadAllThenDecodeParallel:
		return "read-all-then-decode-parallel"
	case PerColumnParallel:
		return "per-column-parallel"
	default:
		return fmt.Sprintf("ExecutionMode(%d)", int(m))
	}
}

// ErrRepeatedColumnFlat is returned by ReadFlat when a requested column
// path resolves to a repeated leaf: the flat API has no nested assembler to
// reconstruct list/map structure around it.
var ErrRepeatedColumnFlat = fmt.Errorf("rowgroup: repeated column requires nested assembly: %w", format.ErrUnsupportedEncoding)

// task is one column chunk's planned decode: the leaf it belongs to, its
// metadata, the byte range to read, and whether its decoded levels must be
// retained for nested assembly.
type task struct {
	leaf       *schema.Node
	meta       *format.ColumnMetaData
	rng        ioutil.Range
	keepLevels bool
}

// ReadFlat decodes row group rg of file f, rooted at schema root, into one
// flat Arrow array per selected column with no nested assembly: paths is a
// list of dotted leaf paths, or nil to select every non-repeated leaf.
func ReadFlat(ctx context.Context, mem memory.Allocator, f ioutil.File, root *schema.Node, rg *format.RowGroup, paths []string, mode ExecutionMode, concurrency int) (arrow.Record, error) {
	leaves, err := selectFlatLeaves(root, paths)
	if err != nil {
		return nil, err
	}
	idx := columnIndex(rg)
	tasks, err := planTasks(leaves, idx, func(*schema.Node) bool { return false })
	if err != nil {
		return nil, err
	}

	results, err := execute(ctx, mem, f, tasks, mode, concurrency)
	if err != nil {
		return nil, err
	}

	fields := make([]arrow.Field, len(leaves))
	cols := make([]arrow.Array, len(leaves))
	for i, leaf := range leaves {
		cols[i] = results[i].Array
		fields[i] = arrow.Field{
			Name:     strings.Join(leaf.Path, "."),
			Type:     cols[i].DataType(),
			Nullable: leaf.RepetitionType == format.Optional,
			Metadata: statisticsMetadata(tasks[i].meta.Statistics),
		}
	}
	return newRecord(fields, cols, rg.NumRows), nil
}

// statisticsMetadata surfaces a column chunk's optional min/max/null/
// distinct statistics as Arrow field metadata, letting a predicate
// pushdown caller decide whether to skip this row group without decoding
// it. Binary min/max values are base64-encoded since arrow.Metadata values
// are strings; absent fields (nil slice, zero count) are omitted.
func statisticsMetadata(stats format.Statistics) arrow.Metadata {
	var keys, values []string
	add := func(key, value string) {
		keys = append(keys, key)
		values = append(values, value)
	}
	if min := stats.MinValue; len(min) > 0 {
		add("parquet.min_value", base64.StdEncoding.EncodeToString(min))
	} else if len(stats.Min) > 0 {
		add("parquet.min", base64.StdEncoding.EncodeToString(stats.Min))
	}
	if max := stats.MaxValue; len(max) > 0 {
		add("parquet.max_value", base64.StdEncoding.EncodeToString(max))
	} else if len(stats.Max) > 0 {
		add("parquet.max", base64.StdEncoding.EncodeToString(stats.Max))
	}
	if stats.NullCount > 0 {
		add("parquet.null_count", strconv.FormatInt(stats.NullCount, 10))
	}
	if stats.DistinctCount > 0 {
		add("parquet.distinct_count", strconv.FormatInt(stats.DistinctCount, 10))
	}
	if len(keys) == 0 {
		return arrow.Metadata{}
	}
	return arrow.NewMetadata(keys, values)
}

// ReadNested decodes row group rg of file f, rooted at schema root, into
// one Arrow array per selected top-level field, reconstructing struct/list/
// map structure from the decoded definition/repetition levels:
// fieldNames names top-level root children, or nil to select all of them.
func ReadNested(ctx context.Context, mem memory.Allocator, f ioutil.File, root *schema.Node, rg *format.RowGroup, fieldNames []string, mode ExecutionMode, concurrency int) (arrow.Record, error) {
	children, err := selectRootChildren(root, fieldNames)
	if err != nil {
		return nil, err
	}
	leaves := leavesUnder(children)

	idx := columnIndex(rg)
	tasks, err := planTasks(leaves, idx, func(n *schema.Node) bool { return needsLevels(root, n) })
	if err != nil {
		return nil, err
	}

	results, err := execute(ctx, mem, f, tasks, mode, concurrency)
	if err != nil {
		return nil, err
	}

	leavesByPath := make(assemble.Leaves, len(leaves))
	for i, leaf := range leaves {
		leavesByPath[assemble.Path(leaf)] = results[i]
	}
	// The assembler copies what it needs out of the decoded leaf arrays;
	// they are not retained by the record built below.
	defer func() {
		for _, r := range results {
			if r != nil && r.Array != nil {
				r.Array.Release()
			}
		}
	}()

	fields := make([]arrow.Field, len(children))
	cols := make([]arrow.Array, len(children))
	for i, c := range children {
		a, berr := assemble.Build(mem, c, leavesByPath)
		if berr != nil {
			releaseArrays(cols[:i])
			return nil, berr
		}
		cols[i] = a
		fields[i] = arrow.Field{Name: c.Name, Type: a.DataType(), Nullable: c.RepetitionType != format.Required}
	}
	return newRecord(fields, cols, rg.NumRows), nil
}

// newRecord builds an arrow.Record from fields/cols and releases the
// caller's references to cols, since array.NewRecord retains its own.
func newRecord(fields []arrow.Field, cols []arrow.Array, numRows int64) arrow.Record {
	rec := array.NewRecord(arrow.NewSchema(fields, nil), cols, numRows)
	releaseArrays(cols)
	return rec
}

func releaseArrays(arrays []arrow.Array) {
	for _, a := range arrays {
		if a != nil {
			a.Release()
		}
	}
}

// columnIndex keys rg's column chunk metadata by dotted schema path, the
// same key schema.Node.Path / assemble.Path produce for a leaf.
func columnIndex(rg *format.RowGroup) map[string]*format.ColumnMetaData {
	idx := make(map[string]*format.ColumnMetaData, len(rg.Columns))
	for i := range rg.Columns {
		c := &rg.Columns[i]
		idx[strings.Join(c.MetaData.PathInSchema, ".")] = &c.MetaData
	}
	return idx
}

// chunkRange plans the byte range of one column chunk: the earlier of its dictionary and data page offsets (the
// dictionary page, when present, always precedes the data pages) through
// its total compressed size. A dictionary_page_offset of 0 is the legacy
// writer sentinel for "no dictionary" and is ignored here exactly as
// it is in the column-chunk decoder.
func chunkRange(meta *format.ColumnMetaData) ioutil.Range {
	start := meta.DataPageOffset
	if meta.DictionaryPageOffset > 0 {
		start = meta.DictionaryPageOffset
	}
	return ioutil.Range{Offset: start, Length: meta.TotalCompressedSize}
}

// planTasks resolves each leaf's column chunk metadata from idx and plans
// its byte range, tagging it with whether its levels must be retained for
// the caller's assembly step.
func planTasks(leaves []*schema.Node, idx map[string]*format.ColumnMetaData, keepLevels func(*schema.Node) bool) ([]task, error) {
	tasks := make([]task, len(leaves))
	for i, leaf := range leaves {
		path := strings.Join(leaf.Path, ".")
		meta, ok := idx[path]
		if !ok {
			return nil, fmt.Errorf("rowgroup: %s: %w", path, format.ErrColumnNotFound)
		}
		tasks[i] = task{leaf: leaf, meta: meta, rng: chunkRange(meta), keepLevels: keepLevels(leaf)}
	}
	return tasks, nil
}

// selectFlatLeaves resolves the flat API's column selection: every
// non-repeated leaf by default, or the leaves named by paths, failing if
// any of them is repeated.
func selectFlatLeaves(root *schema.Node, paths []string) ([]*schema.Node, error) {
	if len(paths) == 0 {
		var out []*schema.Node
		for _, leaf := range root.Leaves() {
			if leaf.MaxRepetitionLevel == 0 {
				out = append(out, leaf)
			}
		}
		return out, nil
	}

	out := make([]*schema.Node, 0, len(paths))
	for _, p := range paths {
		n := root.At(strings.Split(p, ".")...)
		if n == nil || !n.IsLeaf() {
			return nil, fmt.Errorf("rowgroup: %s: %w", p, format.ErrColumnNotFound)
		}
		if n.MaxRepetitionLevel > 0 {
			return nil, fmt.Errorf("rowgroup: %s: %w", p, ErrRepeatedColumnFlat)
		}
		out = append(out, n)
	}
	return out, nil
}

// selectRootChildren resolves the nested API's column selection: every
// top-level field by default, or the named ones.
func selectRootChildren(root *schema.Node, names []string) ([]*schema.Node, error) {
	if len(names) == 0 {
		return root.Children, nil
	}
	out := make([]*schema.Node, 0, len(names))
	for _, name := range names {
		var found *schema.Node
		for _, c := range root.Children {
			if c.Name == name {
				found = c
				break
			}
		}
		if found == nil {
			return nil, fmt.Errorf("rowgroup: %s: %w", name, format.ErrColumnNotFound)
		}
		out = append(out, found)
	}
	return out, nil
}

func leavesUnder(nodes []*schema.Node) []*schema.Node {
	var out []*schema.Node
	for _, n := range nodes {
		out = append(out, n.Leaves()...)
	}
	return out
}

// needsLevels reports whether leaf's decoded levels must be retained for
// the nested assembler: it is needed whenever leaf sits under some group
// other than the schema root, or is itself a bare repeated column directly
// under the root, since both cases route through assemble.Build's
// struct/list/map paths rather than its flat buildLeaf shortcut.
func needsLevels(root, leaf *schema.Node) bool {
	return leaf.Parent() != root || leaf.RepetitionType == format.Repeated
}

// decodeLeaf runs the column-chunk decoder for one task's leaf over
// its already-read chunk bytes.
func decodeLeaf(mem memory.Allocator, t task, chunk []byte) (*columnchunk.Result, error) {
	dtype, err := arrowtype.FromNode(t.leaf)
	if err != nil {
		return nil, fmt.Errorf("rowgroup: %s: %w", strings.Join(t.leaf.Path, "."), err)
	}
	res, err := columnchunk.Decode(mem, t.leaf, t.meta, dtype, chunk, t.keepLevels)
	if err != nil {
		return nil, fmt.Errorf("rowgroup: %s: %w", strings.Join(t.leaf.Path, "."), err)
	}
	return res, nil
}

// concurrencyLimit resolves Concurrency to the available hardware
// parallelism when unset.
func concurrencyLimit(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// execute runs tasks through one of the four execution modes, returning one
// Result per task in task order. On any error, every Result already built
// is released before returning, since the record-batch result is not
// produced if any column decode fails.
func execute(ctx context.Context, mem memory.Allocator, f ioutil.File, tasks []task, mode ExecutionMode, concurrency int) ([]*columnchunk.Result, error) {
	results := make([]*columnchunk.Result, len(tasks))

	release := func() {
		for _, r := range results {
			if r != nil && r.Array != nil {
				r.Array.Release()
			}
		}
	}

	switch mode {
	case ReadAllThenDecodeSequential:
		bufs, err := readAll(ctx, f, tasks)
		if err != nil {
			return nil, err
		}
		for i, t := range tasks {
			r, derr := decodeLeaf(mem, t, bufs[i])
			if derr != nil {
				release()
				return nil, derr
			}
			results[i] = r
			bufs[i] = nil
		}

	case PerColumnReadThenDecode:
		for i, t := range tasks {
			if err := ctx.Err(); err != nil {
				release()
				return nil, err
			}
			buf, err := ioutil.ReadRange(f, t.rng.Offset, t.rng.Length)
			if err != nil {
				release()
				return nil, err
			}
			r, derr := decodeLeaf(mem, t, buf)
			if derr != nil {
				release()
				return nil, derr
			}
			results[i] = r
		}

	case ReadAllThenDecodeParallel:
		bufs, err := readAll(ctx, f, tasks)
		if err != nil {
			return nil, err
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrencyLimit(concurrency))
		for i := range tasks {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				r, derr := decodeLeaf(mem, tasks[i], bufs[i])
				if derr != nil {
					return derr
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			release()
			return nil, err
		}

	case PerColumnParallel:
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrencyLimit(concurrency))
		for i := range tasks {
			i := i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				buf, err := ioutil.ReadRange(f, tasks[i].rng.Offset, tasks[i].rng.Length)
				if err != nil {
					return err
				}
				r, derr := decodeLeaf(mem, tasks[i], buf)
				if derr != nil {
					return derr
				}
				results[i] = r
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			release()
			return nil, err
		}

	default:
		return nil, fmt.Errorf("rowgroup: %v: unknown execution mode", mode)
	}

	return results, nil
}

// readAll reads every task's byte range up front, in task order, honoring
// ctx cancellation between reads, the reader's only suspension point:
// decoders themselves never block.
func readAll(ctx context.Context, f ioutil.File, tasks []task) ([][]byte, error) {
	bufs := make([][]byte, len(tasks))
	for i, t := range tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		buf, err := ioutil.ReadRange(f, t.rng.Offset, t.rng.Length)
		if err != nil {
			return nil, err
		}
		bufs[i] = buf
	}
	return bufs, nil
}
