// Package assemble reconstructs struct, list and map structure around the
// flat, dense column-chunk arrays decoded by the columnchunk package,
// following the Dremel repetition/definition-level walk. It never
// touches raw Arrow buffers directly: every array it produces is built
// through the ordinary array.Builder API, recursing down to whatever nested
// shape the schema describes.
package assemble

import (
	"fmt"
	"strings"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/memory"

	"github.com/arrowparquet/parquet-arrow/columnchunk"
	"github.com/arrowparquet/parquet-arrow/format"
	"github.com/arrowparquet/parquet-arrow/schema"
)

// Leaves maps a primitive schema leaf's dotted path (see Path) to its
// decoded column-chunk result. Every leaf reachable from the node passed to
// Build or Root must have an entry, with DefLevels/RepLevels populated
// whenever the leaf has any optional or repeated ancestor.
type Leaves map[string]*columnchunk.Result

// Path returns the dotted schema path used as a Leaves key.
func Path(n *schema.Node) string { return strings.Join(n.Path, ".") }

// Root assembles every top-level field of the schema into one Arrow array
// each, positionally matching root.Children, for the row-group orchestrator
// to combine into a record batch.
func Root(mem memory.Allocator, root *schema.Node, leaves Leaves) ([]arrow.Array, []arrow.Field, error) {
	return buildFieldArrays(mem, root.Children, leaves)
}

// Build reconstructs the Arrow array for node, which may be a primitive
// leaf, a struct group, a list (2-level bare-repeated or 3-level
// LIST-annotated), or a map.
func Build(mem memory.Allocator, node *schema.Node, leaves Leaves) (arrow.Array, error) {
	switch {
	case node.Kind == schema.Map:
		return buildMap(mem, node, leaves)
	case node.RepetitionType == format.Repeated || node.Kind == schema.Repeated:
		return buildList(mem, node, leaves)
	case node.IsLeaf():
		return buildLeaf(node, leaves)
	default:
		return buildStruct(mem, node, leaves)
	}
}

// buildLeaf returns its own reference to the decoded leaf array, so callers
// own every array Build hands back regardless of which path produced it.
func buildLeaf(node *schema.Node, leaves Leaves) (arrow.Array, error) {
	res, ok := leaves[Path(node)]
	if !ok {
		return nil, fmt.Errorf("assemble: %s: %w", Path(node), format.ErrColumnNotFound)
	}
	res.Array.Retain()
	return res.Array, nil
}

// buildStruct assembles an Optional or Required group, deriving its own
// validity bitmap (for Optional groups) from the accumulated definition
// level of an arbitrary descendant leaf: any descendant's def level is
// equally valid for this purpose since a struct's absence depresses every
// descendant's def level below its own.
func buildStruct(mem memory.Allocator, node *schema.Node, leaves Leaves) (arrow.Array, error) {
	fieldArrays, fields, err := buildFieldArrays(mem, node.Children, leaves)
	if err != nil {
		return nil, err
	}

	n := 0
	if len(fieldArrays) > 0 {
		n = fieldArrays[0].Len()
	}

	var validity []bool
	if node.RepetitionType == format.Optional {
		descendants := node.Leaves()
		if len(descendants) == 0 {
			return nil, fmt.Errorf("assemble: %s: %w: optional group has no leaves", Path(node), format.ErrParquetFormat)
		}
		res, ok := leaves[Path(descendants[0])]
		if !ok {
			return nil, fmt.Errorf("assemble: %s: %w", Path(descendants[0]), format.ErrColumnNotFound)
		}
		d := node.MaxDefinitionLevel
		validity = make([]bool, len(res.DefLevels))
		for i, lvl := range res.DefLevels {
			validity[i] = lvl >= d
		}
		n = len(validity)
	}

	sb := array.NewStructBuilder(mem, arrow.StructOf(fields...))
	defer sb.Release()
	appendStructRows(sb, fieldArrays, n, validity)
	releaseArrays(fieldArrays)
	return sb.NewArray(), nil
}

// buildStructFields assembles a struct from fields with no validity bitmap
// of its own (every row present), used for a repeated group's element when
// it has more than one child field (a repeated group with multiple
// children boxes as a list of structs).
func buildStructFields(mem memory.Allocator, fields []*schema.Node, leaves Leaves) (arrow.Array, error) {
	fieldArrays, arrowFields, err := buildFieldArrays(mem, fields, leaves)
	if err != nil {
		return nil, err
	}
	n := 0
	if len(fieldArrays) > 0 {
		n = fieldArrays[0].Len()
	}
	sb := array.NewStructBuilder(mem, arrow.StructOf(arrowFields...))
	defer sb.Release()
	appendStructRows(sb, fieldArrays, n, nil)
	releaseArrays(fieldArrays)
	return sb.NewArray(), nil
}

func buildFieldArrays(mem memory.Allocator, children []*schema.Node, leaves Leaves) ([]arrow.Array, []arrow.Field, error) {
	arrays := make([]arrow.Array, len(children))
	fields := make([]arrow.Field, len(children))
	for i, c := range children {
		a, err := Build(mem, c, leaves)
		if err != nil {
			return nil, nil, err
		}
		arrays[i] = a
		fields[i] = arrow.Field{Name: c.Name, Type: a.DataType(), Nullable: c.RepetitionType != format.Required}
	}
	return arrays, fields, nil
}

func appendStructRows(sb *array.StructBuilder, fieldArrays []arrow.Array, n int, validity []bool) {
	for row := 0; row < n; row++ {
		sb.Append(validity == nil || validity[row])
		for i, a := range fieldArrays {
			copyValue(sb.FieldBuilder(i), a, row)
		}
	}
}

// listRepeatedChild finds the repeated level R of a list or map node: node
// itself, for a bare 2-level repeated leaf/group with no LIST/MAP wrapper,
// or the single repeated child found among node's children, for a 3-level
// wrapper.
func listRepeatedChild(node *schema.Node) *schema.Node {
	if node.RepetitionType == format.Repeated {
		return node
	}
	for _, c := range node.Children {
		if c.RepetitionType == format.Repeated {
			return c
		}
	}
	return nil
}

// listContainerDefLevel returns the definition level below which the list
// itself (not merely one of its elements) is absent.
func listContainerDefLevel(node, r *schema.Node) int32 {
	if r == node {
		return node.Parent().MaxDefinitionLevel
	}
	return node.MaxDefinitionLevel
}

// buildList assembles a list (or map, via buildMap) by walking the
// definition/repetition levels of the repeated level's first descendant
// leaf.
func buildList(mem memory.Allocator, node *schema.Node, leaves Leaves) (arrow.Array, error) {
	r := listRepeatedChild(node)
	if r == nil {
		return nil, fmt.Errorf("assemble: %s: %w: no repeated child found for list", Path(node), format.ErrParquetFormat)
	}

	driver, err := repeatedDriver(r, leaves)
	if err != nil {
		return nil, fmt.Errorf("assemble: %s: %w", Path(node), err)
	}

	dList := listContainerDefLevel(node, r)
	dElem := r.MaxDefinitionLevel
	rList := r.MaxRepetitionLevel
	offsets, validity, keep, _ := listOffsets(driver.DefLevels, driver.RepLevels, dList, dElem, rList)

	var elementArray arrow.Array
	switch {
	case r.IsLeaf():
		elementArray = filterResult(mem, driver, keep).Array
	case len(r.Children) == 1:
		filtered := filterUnder(mem, r, leaves, keep)
		elementArray, err = Build(mem, r.Children[0], filtered)
		releaseLeaves(filtered)
	default:
		filtered := filterUnder(mem, r, leaves, keep)
		elementArray, err = buildStructFields(mem, r.Children, filtered)
		releaseLeaves(filtered)
	}
	if err != nil {
		return nil, err
	}
	defer elementArray.Release()

	lb := array.NewListBuilder(mem, elementArray.DataType())
	defer lb.Release()
	vb := lb.ValueBuilder()
	for slot := range validity {
		lb.Append(validity[slot])
		for j := offsets[slot]; j < offsets[slot+1]; j++ {
			copyValue(vb, elementArray, int(j))
		}
	}
	return lb.NewArray(), nil
}

// buildMap assembles a map exactly like a list whose repeated child is the
// key_value group, then boxes its (key, value) struct element as a MapArray
// instead of a ListArray.
func buildMap(mem memory.Allocator, node *schema.Node, leaves Leaves) (arrow.Array, error) {
	r := listRepeatedChild(node)
	if r == nil || len(r.Children) == 0 {
		return nil, fmt.Errorf("assemble: %s: %w: map has no key_value child", Path(node), format.ErrParquetFormat)
	}

	driver, err := repeatedDriver(r, leaves)
	if err != nil {
		return nil, fmt.Errorf("assemble: %s: %w", Path(node), err)
	}

	dList := listContainerDefLevel(node, r)
	dElem := r.MaxDefinitionLevel
	rList := r.MaxRepetitionLevel
	offsets, validity, keep, _ := listOffsets(driver.DefLevels, driver.RepLevels, dList, dElem, rList)

	filtered := filterUnder(mem, r, leaves, keep)
	pairArray, err := buildStructFields(mem, r.Children, filtered)
	releaseLeaves(filtered)
	if err != nil {
		return nil, err
	}
	defer pairArray.Release()
	pairStruct, ok := pairArray.(*array.Struct)
	if !ok || pairStruct.NumField() < 2 {
		return nil, fmt.Errorf("assemble: %s: %w: map key_value must assemble to a (key, value) struct", Path(node), format.ErrParquetFormat)
	}

	mb := array.NewMapBuilder(mem, pairStruct.Field(0).DataType(), pairStruct.Field(1).DataType(), false)
	defer mb.Release()
	kb, vb := mb.KeyBuilder(), mb.ItemBuilder()
	for slot := range validity {
		mb.Append(validity[slot])
		for j := offsets[slot]; j < offsets[slot+1]; j++ {
			copyValue(kb, pairStruct.Field(0), int(j))
			copyValue(vb, pairStruct.Field(1), int(j))
		}
	}
	return mb.NewArray(), nil
}

// repeatedDriver returns the column-chunk result of r's first descendant
// leaf (or r itself, if it is a leaf): the level stream that drives the
// offset/validity walk for the list or map whose repeated level is r.
func repeatedDriver(r *schema.Node, leaves Leaves) (*columnchunk.Result, error) {
	driverLeaf := r
	if !r.IsLeaf() {
		descendants := r.Leaves()
		if len(descendants) == 0 {
			return nil, fmt.Errorf("%w: repeated group has no leaves", format.ErrParquetFormat)
		}
		driverLeaf = descendants[0]
	}
	res, ok := leaves[Path(driverLeaf)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", Path(driverLeaf), format.ErrColumnNotFound)
	}
	return res, nil
}

// listOffsets walks a repeated level's definition/repetition streams and
// produces the parent-slot offsets, validity bitmap, and a per-position
// keep mask selecting which physical positions are real elements belonging
// to this list (as opposed to null/empty-list markers).
func listOffsets(def, rep []int32, dList, dElem, rList int32) (offsets []int32, validity, keep []bool, elementCount int32) {
	keep = make([]bool, len(def))
	offsets = make([]int32, 0, len(def)/2+1)
	validity = make([]bool, 0, len(def)/2+1)

	var elementOffset int32
	for i := range def {
		newSlot := rep[i] < rList
		if newSlot {
			offsets = append(offsets, elementOffset)
		}
		switch {
		case rep[i] < rList && def[i] < dList:
			if newSlot {
				validity = append(validity, false)
			}
		case rep[i] < rList && def[i] < dElem:
			if newSlot {
				validity = append(validity, true)
			}
		default:
			if newSlot {
				validity = append(validity, true)
			}
			keep[i] = true
			if rep[i] <= rList {
				elementOffset++
			}
		}
	}
	offsets = append(offsets, elementOffset)
	return offsets, validity, keep, elementOffset
}

// filterResult compacts res down to the physical positions where keep is
// true: the dense leaf array loses its phantom null/empty-list-marker
// positions, becoming the element array (or part of one) for the list or
// map whose walk produced keep.
func filterResult(mem memory.Allocator, res *columnchunk.Result, keep []bool) *columnchunk.Result {
	b := array.NewBuilder(mem, res.Array.DataType())
	defer b.Release()
	for i := 0; i < res.Array.Len(); i++ {
		if keep[i] {
			copyValue(b, res.Array, i)
		}
	}

	filtered := &columnchunk.Result{Array: b.NewArray()}
	if res.DefLevels != nil {
		filtered.DefLevels = compact(res.DefLevels, keep)
	}
	if res.RepLevels != nil {
		filtered.RepLevels = compact(res.RepLevels, keep)
	}
	return filtered
}

func releaseArrays(arrays []arrow.Array) {
	for _, a := range arrays {
		if a != nil {
			a.Release()
		}
	}
}

// releaseLeaves drops the references a filterUnder result holds once the
// element subtree built from it is complete.
func releaseLeaves(leaves Leaves) {
	for _, res := range leaves {
		if res != nil && res.Array != nil {
			res.Array.Release()
		}
	}
}

func compact(levels []int32, keep []bool) []int32 {
	out := make([]int32, 0, len(levels))
	for i, k := range keep {
		if k {
			out = append(out, levels[i])
		}
	}
	return out
}

// filterUnder compacts every descendant leaf of r by keep, producing the
// Leaves map used to recurse into r's element subtree.
func filterUnder(mem memory.Allocator, r *schema.Node, leaves Leaves, keep []bool) Leaves {
	descendants := r.Leaves()
	out := make(Leaves, len(descendants))
	for _, leaf := range descendants {
		if res, ok := leaves[Path(leaf)]; ok {
			out[Path(leaf)] = filterResult(mem, res, keep)
		}
	}
	return out
}

// copyValue appends the value (or null) at index i of a to builder b. It
// holds the per-type dispatch over concrete Arrow array/builder types,
// used both to compact dense leaf arrays by a keep mask and to copy
// composite (struct/list/map) element values one row at a time while
// boxing them into their parent builder.
func copyValue(b array.Builder, a arrow.Array, i int) {
	if a.IsNull(i) {
		b.AppendNull()
		return
	}
	switch src := a.(type) {
	case *array.Boolean:
		b.(*array.BooleanBuilder).Append(src.Value(i))
	case *array.Int8:
		b.(*array.Int8Builder).Append(src.Value(i))
	case *array.Int16:
		b.(*array.Int16Builder).Append(src.Value(i))
	case *array.Int32:
		b.(*array.Int32Builder).Append(src.Value(i))
	case *array.Int64:
		b.(*array.Int64Builder).Append(src.Value(i))
	case *array.Uint8:
		b.(*array.Uint8Builder).Append(src.Value(i))
	case *array.Uint16:
		b.(*array.Uint16Builder).Append(src.Value(i))
	case *array.Uint32:
		b.(*array.Uint32Builder).Append(src.Value(i))
	case *array.Uint64:
		b.(*array.Uint64Builder).Append(src.Value(i))
	case *array.Float32:
		b.(*array.Float32Builder).Append(src.Value(i))
	case *array.Float64:
		b.(*array.Float64Builder).Append(src.Value(i))
	case *array.Binary:
		b.(*array.BinaryBuilder).Append(src.Value(i))
	case *array.String:
		b.(*array.StringBuilder).Append(src.Value(i))
	case *array.FixedSizeBinary:
		b.(*array.FixedSizeBinaryBuilder).Append(src.Value(i))
	case *array.Timestamp:
		b.(*array.TimestampBuilder).Append(src.Value(i))
	case *array.Date32:
		b.(*array.Date32Builder).Append(src.Value(i))
	case *array.Time32:
		b.(*array.Time32Builder).Append(src.Value(i))
	case *array.Time64:
		b.(*array.Time64Builder).Append(src.Value(i))
	case *array.Struct:
		sb := b.(*array.StructBuilder)
		sb.Append(true)
		for f := 0; f < src.NumField(); f++ {
			copyValue(sb.FieldBuilder(f), src.Field(f), i)
		}
	case *array.List:
		lb := b.(*array.ListBuilder)
		lb.Append(true)
		listOffsets := src.Offsets()
		start, end := int64(listOffsets[i]), int64(listOffsets[i+1])
		values := src.ListValues()
		vb := lb.ValueBuilder()
		for j := start; j < end; j++ {
			copyValue(vb, values, int(j))
		}
	case *array.Map:
		mb := b.(*array.MapBuilder)
		mb.Append(true)
		mapOffsets := src.Offsets()
		start, end := int64(mapOffsets[i]), int64(mapOffsets[i+1])
		pairs, ok := src.ListValues().(*array.Struct)
		kb, vb := mb.KeyBuilder(), mb.ItemBuilder()
		for j := start; ok && j < end; j++ {
			copyValue(kb, pairs.Field(0), int(j))
			copyValue(vb, pairs.Field(1), int(j))
		}
	default:
		panic(fmt.Sprintf("assemble: unsupported element type %T", a))
	}
}
