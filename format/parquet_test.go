package format_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/apache/thrift/lib/go/thrift"
	"github.com/arrowparquet/parquet-arrow/format"
)

// writeFileMetaData hand-encodes a FileMetaData onto the compact protocol
// transport, mirroring the field IDs format.FileMetaData.Read expects. There
// is no Write side in this module (it only decodes footers), so tests build
// fixture bytes this way instead of round-tripping through a marshaler.
func writeFileMetaData(t *testing.T, oprot thrift.TProtocol, version int32, schema []format.SchemaElement, numRows int64) {
	t.Helper()
	ctx := context.Background()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	must(oprot.WriteStructBegin(ctx, "FileMetaData"))

	must(oprot.WriteFieldBegin(ctx, "version", thrift.I32, 1))
	must(oprot.WriteI32(ctx, version))
	must(oprot.WriteFieldEnd(ctx))

	must(oprot.WriteFieldBegin(ctx, "schema", thrift.LIST, 2))
	must(oprot.WriteListBegin(ctx, thrift.STRUCT, len(schema)))
	for _, s := range schema {
		must(oprot.WriteStructBegin(ctx, "SchemaElement"))
		must(oprot.WriteFieldBegin(ctx, "name", thrift.STRING, 4))
		must(oprot.WriteString(ctx, s.Name))
		must(oprot.WriteFieldEnd(ctx))
		must(oprot.WriteFieldStop(ctx))
		must(oprot.WriteStructEnd(ctx))
	}
	must(oprot.WriteListEnd(ctx))
	must(oprot.WriteFieldEnd(ctx))

	must(oprot.WriteFieldBegin(ctx, "num_rows", thrift.I64, 3))
	must(oprot.WriteI64(ctx, numRows))
	must(oprot.WriteFieldEnd(ctx))

	must(oprot.WriteFieldBegin(ctx, "row_groups", thrift.LIST, 4))
	must(oprot.WriteListBegin(ctx, thrift.STRUCT, 0))
	must(oprot.WriteListEnd(ctx))
	must(oprot.WriteFieldEnd(ctx))

	must(oprot.WriteFieldStop(ctx))
	must(oprot.WriteStructEnd(ctx))
}

func TestFileMetaDataRead(t *testing.T) {
	buf := thrift.NewTMemoryBuffer()
	oprot := thrift.NewTCompactProtocol(buf)

	writeFileMetaData(t, oprot, 1, []format.SchemaElement{{Name: "hello"}}, 42)

	iprot := thrift.NewTCompactProtocol(buf)
	decoded := &format.FileMetaData{}
	if err := decoded.Read(iprot); err != nil {
		t.Fatal(err)
	}

	if decoded.Version != 1 {
		t.Errorf("Version: got %d, want 1", decoded.Version)
	}
	if decoded.NumRows != 42 {
		t.Errorf("NumRows: got %d, want 42", decoded.NumRows)
	}
	if len(decoded.Schema) != 1 || decoded.Schema[0].Name != "hello" {
		t.Errorf("Schema: got %#v", decoded.Schema)
	}
	if len(decoded.RowGroups) != 0 {
		t.Errorf("RowGroups: got %#v, want empty", decoded.RowGroups)
	}
	if decoded.HasCreatedBy {
		t.Errorf("HasCreatedBy: got true, CreatedBy was never written")
	}
}

func TestFileMetaDataReadTruncated(t *testing.T) {
	buf := thrift.NewTMemoryBuffer()
	oprot := thrift.NewTCompactProtocol(buf)
	writeFileMetaData(t, oprot, 1, nil, 0)

	full := buf.Bytes()
	truncated := bytes.NewBuffer(full[:len(full)/2])
	tbuf := thrift.NewStreamTransportR(truncated)
	iprot := thrift.NewTCompactProtocol(tbuf)

	decoded := &format.FileMetaData{}
	if err := decoded.Read(iprot); err == nil {
		t.Fatal("expected an error decoding a truncated FileMetaData")
	}
}

// writePageHeader hand-encodes a minimal DATA_PAGE header the way
// format.PageHeader.Read expects its fields.
func writePageHeader(t *testing.T, oprot thrift.TProtocol, numValues, compressedSize int32) {
	t.Helper()
	ctx := context.Background()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	must(oprot.WriteStructBegin(ctx, "PageHeader"))

	must(oprot.WriteFieldBegin(ctx, "type", thrift.I32, 1))
	must(oprot.WriteI32(ctx, int32(format.DataPage)))
	must(oprot.WriteFieldEnd(ctx))

	must(oprot.WriteFieldBegin(ctx, "uncompressed_page_size", thrift.I32, 2))
	must(oprot.WriteI32(ctx, compressedSize))
	must(oprot.WriteFieldEnd(ctx))

	must(oprot.WriteFieldBegin(ctx, "compressed_page_size", thrift.I32, 3))
	must(oprot.WriteI32(ctx, compressedSize))
	must(oprot.WriteFieldEnd(ctx))

	must(oprot.WriteFieldBegin(ctx, "data_page_header", thrift.STRUCT, 5))
	must(oprot.WriteStructBegin(ctx, "DataPageHeader"))
	must(oprot.WriteFieldBegin(ctx, "num_values", thrift.I32, 1))
	must(oprot.WriteI32(ctx, numValues))
	must(oprot.WriteFieldEnd(ctx))
	must(oprot.WriteFieldBegin(ctx, "encoding", thrift.I32, 2))
	must(oprot.WriteI32(ctx, int32(format.Plain)))
	must(oprot.WriteFieldEnd(ctx))
	must(oprot.WriteFieldStop(ctx))
	must(oprot.WriteStructEnd(ctx))
	must(oprot.WriteFieldEnd(ctx))

	must(oprot.WriteFieldStop(ctx))
	must(oprot.WriteStructEnd(ctx))
}

// TestReadPageHeaderConsumed checks that ReadPageHeader reports exactly how
// many bytes the header occupied: the column chunk decoder relies on that
// count to find the page payload that follows it.
func TestReadPageHeaderConsumed(t *testing.T) {
	buf := thrift.NewTMemoryBuffer()
	oprot := thrift.NewTCompactProtocol(buf)
	writePageHeader(t, oprot, 3, 12)
	headerLen := buf.Len()

	payload := append(buf.Bytes(), []byte{0xDE, 0xAD, 0xBE, 0xEF}...)
	h, n, err := format.ReadPageHeader(payload)
	if err != nil {
		t.Fatal(err)
	}
	if n != headerLen {
		t.Fatalf("consumed %d bytes, want %d", n, headerLen)
	}
	if h.Type != format.DataPage {
		t.Errorf("Type = %s, want DATA_PAGE", h.Type)
	}
	if h.DataPageHeader == nil || h.DataPageHeader.NumValues != 3 {
		t.Errorf("DataPageHeader = %#v, want NumValues 3", h.DataPageHeader)
	}
	if h.CompressedPageSize != 12 {
		t.Errorf("CompressedPageSize = %d, want 12", h.CompressedPageSize)
	}
}
