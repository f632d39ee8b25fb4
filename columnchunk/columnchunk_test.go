package columnchunk_test

import (
	"context"
	"testing"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/memory"
	"github.com/apache/thrift/lib/go/thrift"

	"github.com/arrowparquet/parquet-arrow/columnchunk"
	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/encoding/plain"
	"github.com/arrowparquet/parquet-arrow/encoding/rle"
	"github.com/arrowparquet/parquet-arrow/format"
	"github.com/arrowparquet/parquet-arrow/schema"
)

// pageWriter hand-encodes page headers onto the compact protocol, the same
// framing the column chunk decoder reads back; the module has no writer of
// its own, so tests assemble chunk bytes this way.
type pageWriter struct {
	t     *testing.T
	chunk []byte
}

func (w *pageWriter) must(err error) {
	w.t.Helper()
	if err != nil {
		w.t.Fatal(err)
	}
}

func (w *pageWriter) writeHeader(write func(oprot thrift.TProtocol)) {
	buf := thrift.NewTMemoryBuffer()
	write(thrift.NewTCompactProtocol(buf))
	w.chunk = append(w.chunk, buf.Bytes()...)
}

// appendDataPageV1 appends a DATA_PAGE header and its (uncompressed)
// payload to the chunk.
func (w *pageWriter) appendDataPageV1(numValues int32, enc format.Encoding, payload []byte) {
	ctx := context.Background()
	w.writeHeader(func(oprot thrift.TProtocol) {
		w.must(oprot.WriteStructBegin(ctx, "PageHeader"))

		w.must(oprot.WriteFieldBegin(ctx, "type", thrift.I32, 1))
		w.must(oprot.WriteI32(ctx, int32(format.DataPage)))
		w.must(oprot.WriteFieldEnd(ctx))

		w.must(oprot.WriteFieldBegin(ctx, "uncompressed_page_size", thrift.I32, 2))
		w.must(oprot.WriteI32(ctx, int32(len(payload))))
		w.must(oprot.WriteFieldEnd(ctx))

		w.must(oprot.WriteFieldBegin(ctx, "compressed_page_size", thrift.I32, 3))
		w.must(oprot.WriteI32(ctx, int32(len(payload))))
		w.must(oprot.WriteFieldEnd(ctx))

		w.must(oprot.WriteFieldBegin(ctx, "data_page_header", thrift.STRUCT, 5))
		w.must(oprot.WriteStructBegin(ctx, "DataPageHeader"))
		w.must(oprot.WriteFieldBegin(ctx, "num_values", thrift.I32, 1))
		w.must(oprot.WriteI32(ctx, numValues))
		w.must(oprot.WriteFieldEnd(ctx))
		w.must(oprot.WriteFieldBegin(ctx, "encoding", thrift.I32, 2))
		w.must(oprot.WriteI32(ctx, int32(enc)))
		w.must(oprot.WriteFieldEnd(ctx))
		w.must(oprot.WriteFieldBegin(ctx, "definition_level_encoding", thrift.I32, 3))
		w.must(oprot.WriteI32(ctx, int32(format.RLE)))
		w.must(oprot.WriteFieldEnd(ctx))
		w.must(oprot.WriteFieldBegin(ctx, "repetition_level_encoding", thrift.I32, 4))
		w.must(oprot.WriteI32(ctx, int32(format.RLE)))
		w.must(oprot.WriteFieldEnd(ctx))
		w.must(oprot.WriteFieldStop(ctx))
		w.must(oprot.WriteStructEnd(ctx))
		w.must(oprot.WriteFieldEnd(ctx))

		w.must(oprot.WriteFieldStop(ctx))
		w.must(oprot.WriteStructEnd(ctx))
	})
	w.chunk = append(w.chunk, payload...)
}

// appendDictionaryPage appends a DICTIONARY_PAGE header and its PLAIN
// payload to the chunk.
func (w *pageWriter) appendDictionaryPage(numValues int32, payload []byte) {
	ctx := context.Background()
	w.writeHeader(func(oprot thrift.TProtocol) {
		w.must(oprot.WriteStructBegin(ctx, "PageHeader"))

		w.must(oprot.WriteFieldBegin(ctx, "type", thrift.I32, 1))
		w.must(oprot.WriteI32(ctx, int32(format.DictionaryPage)))
		w.must(oprot.WriteFieldEnd(ctx))

		w.must(oprot.WriteFieldBegin(ctx, "uncompressed_page_size", thrift.I32, 2))
		w.must(oprot.WriteI32(ctx, int32(len(payload))))
		w.must(oprot.WriteFieldEnd(ctx))

		w.must(oprot.WriteFieldBegin(ctx, "compressed_page_size", thrift.I32, 3))
		w.must(oprot.WriteI32(ctx, int32(len(payload))))
		w.must(oprot.WriteFieldEnd(ctx))

		w.must(oprot.WriteFieldBegin(ctx, "dictionary_page_header", thrift.STRUCT, 7))
		w.must(oprot.WriteStructBegin(ctx, "DictionaryPageHeader"))
		w.must(oprot.WriteFieldBegin(ctx, "num_values", thrift.I32, 1))
		w.must(oprot.WriteI32(ctx, numValues))
		w.must(oprot.WriteFieldEnd(ctx))
		w.must(oprot.WriteFieldBegin(ctx, "encoding", thrift.I32, 2))
		w.must(oprot.WriteI32(ctx, int32(format.Plain)))
		w.must(oprot.WriteFieldEnd(ctx))
		w.must(oprot.WriteFieldStop(ctx))
		w.must(oprot.WriteStructEnd(ctx))
		w.must(oprot.WriteFieldEnd(ctx))

		w.must(oprot.WriteFieldStop(ctx))
		w.must(oprot.WriteStructEnd(ctx))
	})
	w.chunk = append(w.chunk, payload...)
}

func leafNode(t *testing.T, el format.SchemaElement) *schema.Node {
	t.Helper()
	root, err := schema.FromElements([]format.SchemaElement{
		{Name: "row", NumChildren: 1},
		el,
	})
	if err != nil {
		t.Fatal(err)
	}
	return root.Children[0]
}

// TestDecodePlainInt32 decodes a one-page chunk of a required INT32 column
// holding [1, 2, 3].
func TestDecodePlainInt32(t *testing.T) {
	w := &pageWriter{t: t}
	w.appendDataPageV1(3, format.Plain, []byte{
		0x01, 0x00, 0x00, 0x00,
		0x02, 0x00, 0x00, 0x00,
		0x03, 0x00, 0x00, 0x00,
	})

	node := leafNode(t, format.SchemaElement{Name: "id", Type: format.Int32, RepetitionType: format.Required})
	meta := &format.ColumnMetaData{Type: format.Int32, Codec: format.Uncompressed, NumValues: 3}

	res, err := columnchunk.Decode(memory.NewGoAllocator(), node, meta, arrow.PrimitiveTypes.Int32, w.chunk, false)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Array.Release()

	ints, ok := res.Array.(*array.Int32)
	if !ok {
		t.Fatalf("got %T, want *array.Int32", res.Array)
	}
	if ints.Len() != 3 || ints.NullN() != 0 {
		t.Fatalf("Len = %d NullN = %d, want 3 and 0", ints.Len(), ints.NullN())
	}
	for i, want := range []int32{1, 2, 3} {
		if ints.Value(i) != want {
			t.Errorf("value %d: got %d, want %d", i, ints.Value(i), want)
		}
	}
	if res.DefLevels != nil || res.RepLevels != nil {
		t.Error("levels should not be retained for a flat decode")
	}
}

// TestDecodeOptionalBoolean decodes an optional BOOLEAN column of 4 rows
// with one null: definition levels [1,1,0,1] and bit-packed values
// [true, false, true].
func TestDecodeOptionalBoolean(t *testing.T) {
	payload := []byte{
		0x02, 0x00, 0x00, 0x00, // definition level length prefix
		0x03, // bit-packed, 1 group of 8
		0x0B, // levels 1,1,0,1 (+ padding)
		0x05, // values: true, false, true
	}
	w := &pageWriter{t: t}
	w.appendDataPageV1(4, format.Plain, payload)

	node := leafNode(t, format.SchemaElement{Name: "flag", Type: format.Boolean, RepetitionType: format.Optional})
	meta := &format.ColumnMetaData{Type: format.Boolean, Codec: format.Uncompressed, NumValues: 4}

	res, err := columnchunk.Decode(memory.NewGoAllocator(), node, meta, arrow.FixedWidthTypes.Boolean, w.chunk, false)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Array.Release()

	bools, ok := res.Array.(*array.Boolean)
	if !ok {
		t.Fatalf("got %T, want *array.Boolean", res.Array)
	}
	if bools.Len() != 4 || bools.NullN() != 1 {
		t.Fatalf("Len = %d NullN = %d, want 4 and 1", bools.Len(), bools.NullN())
	}
	if !bools.Value(0) || bools.Value(1) || !bools.IsNull(2) || !bools.Value(3) {
		t.Errorf("unexpected contents: [%v %v null=%v %v]", bools.Value(0), bools.Value(1), bools.IsNull(2), bools.Value(3))
	}
}

// TestDecodeDictionaryInt32 decodes a dictionary page of [10, 20, 30]
// followed by an RLE_DICTIONARY data page of indexes [0, 1, 2, 1].
func TestDecodeDictionaryInt32(t *testing.T) {
	var enc plain.Encoding
	dictPayload, err := enc.EncodeInt32(nil, encoding.Int32Values([]int32{10, 20, 30}))
	if err != nil {
		t.Fatal(err)
	}

	var dictEnc rle.DictionaryEncoding
	indexes, err := dictEnc.EncodeInt32(nil, []int32{0, 1, 2, 1})
	if err != nil {
		t.Fatal(err)
	}

	w := &pageWriter{t: t}
	w.appendDictionaryPage(3, dictPayload)
	w.appendDataPageV1(4, format.RLEDictionary, indexes)

	node := leafNode(t, format.SchemaElement{Name: "code", Type: format.Int32, RepetitionType: format.Required})
	meta := &format.ColumnMetaData{Type: format.Int32, Codec: format.Uncompressed, NumValues: 4}

	res, err := columnchunk.Decode(memory.NewGoAllocator(), node, meta, arrow.PrimitiveTypes.Int32, w.chunk, false)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Array.Release()

	ints := res.Array.(*array.Int32)
	for i, want := range []int32{10, 20, 30, 20} {
		if ints.Value(i) != want {
			t.Errorf("value %d: got %d, want %d", i, ints.Value(i), want)
		}
	}
}

// TestDecodeMissingDictionary checks that a dictionary-encoded data page
// with no preceding dictionary page fails the chunk.
func TestDecodeMissingDictionary(t *testing.T) {
	var dictEnc rle.DictionaryEncoding
	indexes, err := dictEnc.EncodeInt32(nil, []int32{0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}

	w := &pageWriter{t: t}
	w.appendDataPageV1(3, format.RLEDictionary, indexes)

	node := leafNode(t, format.SchemaElement{Name: "code", Type: format.Int32, RepetitionType: format.Required})
	meta := &format.ColumnMetaData{Type: format.Int32, Codec: format.Uncompressed, NumValues: 3}

	_, err = columnchunk.Decode(memory.NewGoAllocator(), node, meta, arrow.PrimitiveTypes.Int32, w.chunk, false)
	if err == nil {
		t.Fatal("expected a missing-dictionary error")
	}
}
