package bytestreamsplit_test

import (
	"bytes"
	"testing"

	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/encoding/bytestreamsplit"
)

func TestEncodeFloat(t *testing.T) {
	enc := new(bytestreamsplit.Encoding)
	src := []float32{1.0, 2.0, -1.0, 0, 3.14159}

	buf, err := enc.EncodeFloat(nil, encoding.FloatValues(src))
	if err != nil {
		t.Fatal(err)
	}
	values, err := enc.DecodeFloat(encoding.Values{}, buf)
	if err != nil {
		t.Fatal(err)
	}
	got := values.Float()
	for i, want := range src {
		if got[i] != want {
			t.Fatalf("value %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestEncodeDouble(t *testing.T) {
	enc := new(bytestreamsplit.Encoding)
	src := []float64{1.0, 2.0, -1.0, 0, 3.14159265358979}

	buf, err := enc.EncodeDouble(nil, encoding.DoubleValues(src))
	if err != nil {
		t.Fatal(err)
	}
	values, err := enc.DecodeDouble(encoding.Values{}, buf)
	if err != nil {
		t.Fatal(err)
	}
	got := values.Double()
	for i, want := range src {
		if got[i] != want {
			t.Fatalf("value %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestEncodeInt32(t *testing.T) {
	enc := new(bytestreamsplit.Encoding)
	src := []int32{0, 1, -1, 1 << 20, -(1 << 20)}

	buf, err := enc.EncodeInt32(nil, encoding.Int32Values(src))
	if err != nil {
		t.Fatal(err)
	}
	values, err := enc.DecodeInt32(encoding.Values{}, buf)
	if err != nil {
		t.Fatal(err)
	}
	got := values.Int32()
	for i, want := range src {
		if got[i] != want {
			t.Fatalf("value %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestEncodeInt64(t *testing.T) {
	enc := new(bytestreamsplit.Encoding)
	src := []int64{0, 1, -1, 1 << 40, -(1 << 40)}

	buf, err := enc.EncodeInt64(nil, encoding.Int64Values(src))
	if err != nil {
		t.Fatal(err)
	}
	values, err := enc.DecodeInt64(encoding.Values{}, buf)
	if err != nil {
		t.Fatal(err)
	}
	got := values.Int64()
	for i, want := range src {
		if got[i] != want {
			t.Fatalf("value %d: got %v, want %v", i, got[i], want)
		}
	}
}

func TestEncodeFixedLenByteArray(t *testing.T) {
	enc := new(bytestreamsplit.Encoding)
	const size = 10
	src := bytes.Repeat([]byte("0123456789"), 3)

	buf, err := enc.EncodeFixedLenByteArray(nil, encoding.FixedLenByteArrayValues(src, size), size)
	if err != nil {
		t.Fatal(err)
	}
	values, err := enc.DecodeFixedLenByteArray(encoding.Values{}, buf, size)
	if err != nil {
		t.Fatal(err)
	}
	got, gotSize := values.FixedLenByteArray()
	if gotSize != size {
		t.Fatalf("size: got %d, want %d", gotSize, size)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("decoded output does not match the original input")
	}
}
