package schema_test

import (
	"testing"

	"github.com/arrowparquet/parquet-arrow/format"
	"github.com/arrowparquet/parquet-arrow/schema"
)

// flat builds the pre-order SchemaElement list parquet-cpp would emit for:
//
//	message row {
//	  required int32 id;
//	  optional group list_col (LIST) {
//	    repeated group list {
//	      optional int32 element;
//	    }
//	  }
//	}
func flat() []format.SchemaElement {
	return []format.SchemaElement{
		{Name: "row", NumChildren: 2},
		{Name: "id", Type: format.Int32, RepetitionType: format.Required},
		{
			Name: "list_col", RepetitionType: format.Optional, NumChildren: 1,
			ConvertedType: format.List, HasConvertedType: true,
		},
		{Name: "list", RepetitionType: format.Repeated, NumChildren: 1},
		{Name: "element", Type: format.Int32, RepetitionType: format.Optional},
	}
}

func TestFromElements(t *testing.T) {
	root, err := schema.FromElements(flat())
	if err != nil {
		t.Fatal(err)
	}
	if !root.Root {
		t.Fatal("root.Root = false")
	}

	id := root.At("id")
	if id == nil {
		t.Fatal("id not found")
	}
	if id.MaxDefinitionLevel != 0 || id.MaxRepetitionLevel != 0 {
		t.Errorf("id levels = (%d,%d), want (0,0)", id.MaxDefinitionLevel, id.MaxRepetitionLevel)
	}

	listCol := root.At("list_col")
	if listCol == nil || listCol.Kind != schema.Repeated {
		t.Fatalf("list_col = %#v, want Kind=Repeated", listCol)
	}

	element := root.At("list_col", "list", "element")
	if element == nil {
		t.Fatal("list_col.list.element not found")
	}
	if element.MaxDefinitionLevel != 3 {
		t.Errorf("element.MaxDefinitionLevel = %d, want 3", element.MaxDefinitionLevel)
	}
	if element.MaxRepetitionLevel != 1 {
		t.Errorf("element.MaxRepetitionLevel = %d, want 1", element.MaxRepetitionLevel)
	}
	if len(element.Path) != 3 || element.Path[0] != "list_col" || element.Path[2] != "element" {
		t.Errorf("element.Path = %v", element.Path)
	}
}

func TestFromElementsLeaves(t *testing.T) {
	root, err := schema.FromElements(flat())
	if err != nil {
		t.Fatal(err)
	}
	leaves := root.Leaves()
	if len(leaves) != 2 {
		t.Fatalf("len(leaves) = %d, want 2", len(leaves))
	}
	if leaves[0].Name != "id" || leaves[1].Name != "element" {
		t.Errorf("leaves = [%s, %s], want [id, element]", leaves[0].Name, leaves[1].Name)
	}
}

func TestFromElementsEmpty(t *testing.T) {
	if _, err := schema.FromElements(nil); err == nil {
		t.Fatal("expected an error for an empty element list")
	}
}
