package delta_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/encoding/delta"
	"github.com/arrowparquet/parquet-arrow/encoding/plain"
	"github.com/arrowparquet/parquet-arrow/internal/unsafecast"
)

func TestEncodeInt32(t *testing.T) {
	enc := new(delta.BinaryPackedEncoding)
	for _, n := range []int{0, 1, 2, 31, 32, 33, 127, 128, 129, 500} {
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			src := make([]int32, n)
			for i := range src {
				v := int32(i * 7)
				if i%3 == 0 {
					v = -v
				}
				src[i] = v
			}

			buf, err := enc.EncodeInt32(nil, unsafecast.Int32ToBytes(src))
			if err != nil {
				t.Fatal(err)
			}
			out, err := enc.DecodeInt32(nil, buf)
			if err != nil {
				t.Fatal(err)
			}
			got := unsafecast.BytesToInt32(out)
			if len(got) != len(src) {
				t.Fatalf("length mismatch: got %d, want %d", len(got), len(src))
			}
			for i := range src {
				if got[i] != src[i] {
					t.Fatalf("value %d: got %d, want %d", i, got[i], src[i])
				}
			}
		})
	}
}

func TestEncodeInt64(t *testing.T) {
	enc := new(delta.BinaryPackedEncoding)
	for _, n := range []int{0, 1, 2, 127, 128, 129, 500} {
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			src := make([]int64, n)
			for i := range src {
				v := int64(i) * 1000003
				if i%3 == 0 {
					v = -v
				}
				src[i] = v
			}

			buf, err := enc.EncodeInt64(nil, unsafecast.Int64ToBytes(src))
			if err != nil {
				t.Fatal(err)
			}
			out, err := enc.DecodeInt64(nil, buf)
			if err != nil {
				t.Fatal(err)
			}
			got := unsafecast.BytesToInt64(out)
			if len(got) != len(src) {
				t.Fatalf("length mismatch: got %d, want %d", len(got), len(src))
			}
			for i := range src {
				if got[i] != src[i] {
					t.Fatalf("value %d: got %d, want %d", i, got[i], src[i])
				}
			}
		})
	}
}

func TestEncodeLengthByteArray(t *testing.T) {
	enc := new(delta.LengthByteArrayEncoding)
	src := [][]byte{[]byte("apple"), []byte(""), []byte("applied"), []byte("x")}
	plainSrc := plain.JoinByteArrayList(src)

	buf, err := enc.EncodeByteArray(nil, encoding.ByteArrayValues(plainSrc, nil))
	if err != nil {
		t.Fatal(err)
	}
	values, err := enc.DecodeByteArray(encoding.Values{}, buf)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := values.ByteArray()
	var got [][]byte
	if err := plain.RangeByteArray(data, func(v []byte) error {
		got = append(got, append([]byte(nil), v...))
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(src) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(src))
	}
	for i := range src {
		if !bytes.Equal(got[i], src[i]) {
			t.Fatalf("value %d: got %q, want %q", i, got[i], src[i])
		}
	}
}

func TestEncodeDeltaByteArray(t *testing.T) {
	enc := new(delta.ByteArrayEncoding)
	src := [][]byte{[]byte("apple"), []byte("apply"), []byte("applied")}
	plainSrc := plain.JoinByteArrayList(src)

	buf, err := enc.EncodeByteArray(nil, plainSrc)
	if err != nil {
		t.Fatal(err)
	}
	out, err := enc.DecodeByteArray(nil, buf)
	if err != nil {
		t.Fatal(err)
	}
	var got [][]byte
	if err := plain.RangeByteArray(out, func(v []byte) error {
		got = append(got, append([]byte(nil), v...))
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if len(got) != len(src) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(src))
	}
	for i := range src {
		if !bytes.Equal(got[i], src[i]) {
			t.Fatalf("value %d: got %q, want %q", i, got[i], src[i])
		}
	}
}

func TestEncodeDeltaFixedLenByteArray(t *testing.T) {
	enc := new(delta.ByteArrayEncoding)
	const size = 4
	src := []byte{
		0, 0, 0, 1,
		0, 0, 0, 2,
		0, 0, 1, 0,
	}

	buf, err := enc.EncodeFixedLenByteArray(nil, src, size)
	if err != nil {
		t.Fatal(err)
	}
	out, err := enc.DecodeFixedLenByteArray(nil, buf, size)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, src) {
		t.Fatalf("decoded output does not match the original input")
	}
}
