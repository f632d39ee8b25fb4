package buildstate

import (
	"testing"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/memory"

	"github.com/arrowparquet/parquet-arrow/format"
)

func TestAppendInt32Scatter(t *testing.T) {
	mem := memory.NewGoAllocator()
	s := New(mem, format.Int32, arrow.PrimitiveTypes.Int32)

	// Dense non-null values scattered across def levels [1,0,1,1,0].
	err := s.AppendInt32([]int32{7, 8, 9}, []int32{1, 0, 1, 1, 0}, 1)
	if err != nil {
		t.Fatal(err)
	}
	a := s.NewArray().(*array.Int32)
	defer a.Release()

	if a.Len() != 5 {
		t.Fatalf("Len = %d, want 5", a.Len())
	}
	if a.NullN() != 2 {
		t.Errorf("NullN = %d, want 2", a.NullN())
	}
	want := []struct {
		null  bool
		value int32
	}{{false, 7}, {true, 0}, {false, 8}, {false, 9}, {true, 0}}
	for i, w := range want {
		if a.IsNull(i) != w.null {
			t.Errorf("row %d: IsNull = %v, want %v", i, a.IsNull(i), w.null)
		}
		if !w.null && a.Value(i) != w.value {
			t.Errorf("row %d: Value = %d, want %d", i, a.Value(i), w.value)
		}
	}
}

func TestAppendInt32Narrowed(t *testing.T) {
	mem := memory.NewGoAllocator()
	s := New(mem, format.Int32, arrow.PrimitiveTypes.Int16)

	if err := s.AppendInt32([]int32{-300, 300}, nil, 0); err != nil {
		t.Fatal(err)
	}
	a := s.NewArray().(*array.Int16)
	defer a.Release()
	if a.Value(0) != -300 || a.Value(1) != 300 {
		t.Errorf("values = [%d, %d], want [-300, 300]", a.Value(0), a.Value(1))
	}
}

func TestAppendInt32NarrowedOverflow(t *testing.T) {
	mem := memory.NewGoAllocator()
	s := New(mem, format.Int32, arrow.PrimitiveTypes.Int8)
	defer s.Release()

	if err := s.AppendInt32([]int32{1000}, nil, 0); err == nil {
		t.Fatal("expected an overflow error narrowing 1000 to INT8")
	}
}

func TestAppendBooleanBits(t *testing.T) {
	mem := memory.NewGoAllocator()
	s := New(mem, format.Boolean, arrow.FixedWidthTypes.Boolean)

	// Bit-packed [true, false, true] scattered across one null at row 2.
	if err := s.AppendBoolean([]byte{0b101}, 3, []int32{1, 1, 0, 1}, 1); err != nil {
		t.Fatal(err)
	}
	a := s.NewArray().(*array.Boolean)
	defer a.Release()

	if a.Len() != 4 || a.NullN() != 1 {
		t.Fatalf("Len = %d NullN = %d, want 4 and 1", a.Len(), a.NullN())
	}
	if !a.Value(0) || a.Value(1) || !a.IsNull(2) || !a.Value(3) {
		t.Errorf("unexpected contents: [%v %v null=%v %v]", a.Value(0), a.Value(1), a.IsNull(2), a.Value(3))
	}
}

func TestAppendByteArray(t *testing.T) {
	mem := memory.NewGoAllocator()
	s := New(mem, format.ByteArray, arrow.BinaryTypes.Binary)

	entries := [][]byte{[]byte("ab"), nil, []byte("xyz")}
	err := s.AppendByteArray(func(i int) []byte { return entries[i] }, 3, []int32{2, 2, 1, 2}, 2)
	if err != nil {
		t.Fatal(err)
	}
	a := s.NewArray().(*array.Binary)
	defer a.Release()

	if a.Len() != 4 {
		t.Fatalf("Len = %d, want 4", a.Len())
	}
	if string(a.Value(0)) != "ab" || len(a.Value(1)) != 0 || !a.IsNull(2) || string(a.Value(3)) != "xyz" {
		t.Errorf("unexpected contents: %q %q null=%v %q", a.Value(0), a.Value(1), a.IsNull(2), a.Value(3))
	}
}

func TestAppendNulls(t *testing.T) {
	mem := memory.NewGoAllocator()
	s := New(mem, format.Double, arrow.PrimitiveTypes.Float64)

	s.AppendNulls(3)
	a := s.NewArray()
	defer a.Release()
	if a.Len() != 3 || a.NullN() != 3 {
		t.Errorf("Len = %d NullN = %d, want 3 and 3", a.Len(), a.NullN())
	}
}
