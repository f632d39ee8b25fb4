package delta

import (
	"testing"

	"github.com/arrowparquet/parquet-arrow/internal/unsafecast"
)

// TestDecodeInt32Literal decodes a hand-assembled DELTA_BINARY_PACKED stream:
// block size 128, 4 miniblocks, 5 values, first value 10, one block with
// min delta 2 and miniblock bit widths [1,0,0,0] packing the offset deltas
// [0,1,0,1].
func TestDecodeInt32Literal(t *testing.T) {
	src := []byte{
		0x80, 0x01, // block size = 128
		0x04,                   // miniblocks = 4
		0x05,                   // total values = 5
		0x14,                   // first value = zigzag(10)
		0x04,                   // min delta = zigzag(2)
		0x01, 0x00, 0x00, 0x00, // miniblock bit widths
		0x0A, 0x00, 0x00, 0x00, // 32 deltas at width 1; only 4 used
	}
	var enc BinaryPackedEncoding
	out, err := enc.DecodeInt32(nil, src)
	if err != nil {
		t.Fatal(err)
	}
	got := unsafecast.BytesToInt32(out)
	want := []int32{10, 12, 15, 17, 20}
	if len(got) != len(want) {
		t.Fatalf("decoded %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestDecodeInt32SingleValue(t *testing.T) {
	var enc BinaryPackedEncoding
	buf, err := enc.EncodeInt32(nil, unsafecast.Int32ToBytes([]int32{42}))
	if err != nil {
		t.Fatal(err)
	}
	out, err := enc.DecodeInt32(nil, buf)
	if err != nil {
		t.Fatal(err)
	}
	if got := unsafecast.BytesToInt32(out); len(got) != 1 || got[0] != 42 {
		t.Fatalf("got %v, want [42]", got)
	}
}

// TestEncodeInt32Overflow checks the wrap-on-overflow delta arithmetic: a
// jump from the maximum to the minimum int32 must survive the round trip.
func TestEncodeInt32Overflow(t *testing.T) {
	src := []int32{1<<31 - 1, -1 << 31, 1<<31 - 1, 0, -1 << 31}
	var enc BinaryPackedEncoding
	buf, err := enc.EncodeInt32(nil, unsafecast.Int32ToBytes(src))
	if err != nil {
		t.Fatal(err)
	}
	out, err := enc.DecodeInt32(nil, buf)
	if err != nil {
		t.Fatal(err)
	}
	got := unsafecast.BytesToInt32(out)
	for i := range src {
		if got[i] != src[i] {
			t.Errorf("value %d: got %d, want %d", i, got[i], src[i])
		}
	}
}

func TestDecodeInt64Truncated(t *testing.T) {
	src := make([]int64, 300)
	for i := range src {
		src[i] = int64(i * i)
	}
	var enc BinaryPackedEncoding
	buf, err := enc.EncodeInt64(nil, unsafecast.Int64ToBytes(src))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := enc.DecodeInt64(nil, buf[:len(buf)/2]); err == nil {
		t.Fatal("expected an error decoding a truncated stream")
	}
}

func TestDecodeInt64WideDeltas(t *testing.T) {
	src := []int64{0, 1 << 62, -(1 << 62), 1, -1, 1 << 60}
	var enc BinaryPackedEncoding
	buf, err := enc.EncodeInt64(nil, unsafecast.Int64ToBytes(src))
	if err != nil {
		t.Fatal(err)
	}
	out, err := enc.DecodeInt64(nil, buf)
	if err != nil {
		t.Fatal(err)
	}
	got := unsafecast.BytesToInt64(out)
	for i := range src {
		if got[i] != src[i] {
			t.Errorf("value %d: got %d, want %d", i, got[i], src[i])
		}
	}
}
