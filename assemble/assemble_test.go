package assemble_test

import (
	"testing"

	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/memory"

	"github.com/arrowparquet/parquet-arrow/assemble"
	"github.com/arrowparquet/parquet-arrow/columnchunk"
	"github.com/arrowparquet/parquet-arrow/format"
	"github.com/arrowparquet/parquet-arrow/schema"
)

// listSchema builds the same tree schema_test.go uses:
//
//	message row {
//	  required int32 id;
//	  optional group list_col (LIST) {
//	    repeated group list {
//	      optional int32 element;
//	    }
//	  }
//	}
func listSchema(t *testing.T) *schema.Node {
	t.Helper()
	root, err := schema.FromElements([]format.SchemaElement{
		{Name: "row", NumChildren: 2},
		{Name: "id", Type: format.Int32, RepetitionType: format.Required},
		{
			Name: "list_col", RepetitionType: format.Optional, NumChildren: 1,
			ConvertedType: format.List, HasConvertedType: true,
		},
		{Name: "list", RepetitionType: format.Repeated, NumChildren: 1},
		{Name: "element", Type: format.Int32, RepetitionType: format.Optional},
	})
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func int32Array(mem memory.Allocator, values []int32, valid []bool) *array.Int32 {
	b := array.NewInt32Builder(mem)
	defer b.Release()
	b.AppendValues(values, valid)
	return b.NewInt32Array()
}

// TestBuildList reconstructs list_col for three rows:
//
//	row 0: list_col absent (null)
//	row 1: list_col = [] (present, empty)
//	row 2: list_col = [10, null, 12]
func TestBuildList(t *testing.T) {
	mem := memory.NewGoAllocator()

	// Physical values at the element leaf, one per decoded position. Rows
	// 0 and 1 each contribute one phantom position (the absent-list_col and
	// empty-list markers); row 2 contributes its three elements, the
	// middle one null.
	values := int32Array(mem,
		[]int32{0, 0, 10, 0, 12},
		[]bool{false, false, true, false, true},
	)
	defer values.Release()

	// def levels, one per physical position:
	//   row 0: list_col absent          -> def 0 (below list_col's def level 1)
	//   row 1: list_col present, empty  -> def 1 (list_col present, no repetition)
	//   row 2: element present -> def 3, element null -> def 2, element present -> def 3
	defLevels := []int32{0, 1, 3, 2, 3}
	// rep levels: 0 starts a new row, 1 continues the same list.
	repLevels := []int32{0, 0, 0, 1, 1}

	leaf := &columnchunk.Result{Array: values, DefLevels: defLevels, RepLevels: repLevels}

	root := listSchema(t)
	listCol := root.At("list_col")
	leaves := assemble.Leaves{assemble.Path(root.At("list_col", "list", "element")): leaf}

	got, err := assemble.Build(mem, listCol, leaves)
	if err != nil {
		t.Fatal(err)
	}
	defer got.Release()

	list, ok := got.(*array.List)
	if !ok {
		t.Fatalf("got %T, want *array.List", got)
	}
	if list.Len() != 3 {
		t.Fatalf("list.Len() = %d, want 3", list.Len())
	}
	if !list.IsNull(0) {
		t.Error("row 0 should be null")
	}
	if list.IsNull(1) {
		t.Error("row 1 should be present (empty list)")
	}
	listOffsets := list.Offsets()
	start, end := int64(listOffsets[1]), int64(listOffsets[2])
	if end-start != 0 {
		t.Errorf("row 1 length = %d, want 0", end-start)
	}
	if list.IsNull(2) {
		t.Error("row 2 should be present")
	}
	start, end = int64(listOffsets[2]), int64(listOffsets[3])
	if end-start != 3 {
		t.Fatalf("row 2 length = %d, want 3", end-start)
	}
	elems := list.ListValues().(*array.Int32)
	if elems.Value(int(start)) != 10 {
		t.Errorf("row 2 element 0 = %d, want 10", elems.Value(int(start)))
	}
	if !elems.IsNull(int(start + 1)) {
		t.Error("row 2 element 1 should be null")
	}
	if elems.Value(int(start+2)) != 12 {
		t.Errorf("row 2 element 2 = %d, want 12", elems.Value(int(start+2)))
	}
}

// TestBuildLeaf exercises the flat shortcut for a required leaf directly
// under the schema root, with no levels at all.
func TestBuildLeaf(t *testing.T) {
	mem := memory.NewGoAllocator()
	root := listSchema(t)
	id := root.At("id")

	values := int32Array(mem, []int32{1, 2, 3}, nil)
	defer values.Release()
	leaves := assemble.Leaves{assemble.Path(id): {Array: values}}

	got, err := assemble.Build(mem, id, leaves)
	if err != nil {
		t.Fatal(err)
	}

	ints, ok := got.(*array.Int32)
	if !ok {
		t.Fatalf("got %T, want *array.Int32", got)
	}
	if ints.Len() != 3 || ints.Value(0) != 1 {
		t.Errorf("unexpected array contents: %v", ints)
	}
}
