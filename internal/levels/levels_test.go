package levels

import (
	"reflect"
	"testing"
)

func TestBitWidth(t *testing.T) {
	for _, tc := range []struct {
		maxLevel int
		want     uint
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{7, 3},
		{8, 4},
	} {
		if got := BitWidth(tc.maxLevel); got != tc.want {
			t.Errorf("BitWidth(%d) = %d, want %d", tc.maxLevel, got, tc.want)
		}
	}
}

// TestDecodeV1BitPacked decodes the definition levels of a 4-row optional
// column with one null: a 4-byte length prefix, a bit-packed run header for
// one group of 8, and the byte 0b00001011 holding levels [1,1,0,1] plus the
// group's 4 padding values, which must not leak into the output.
func TestDecodeV1BitPacked(t *testing.T) {
	src := []byte{
		0x02, 0x00, 0x00, 0x00, // length prefix
		0x03, // bit-packed, 1 group of 8
		0x0B, // levels 1,1,0,1 + padding
	}
	got, consumed, err := DecodeV1(nil, src, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != len(src) {
		t.Errorf("consumed %d bytes, want %d", consumed, len(src))
	}
	if want := []int32{1, 1, 0, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("levels = %v, want %v", got, want)
	}
}

// TestDecodeV1RunLength decodes an all-present stream written as a single
// run-length block.
func TestDecodeV1RunLength(t *testing.T) {
	src := []byte{
		0x02, 0x00, 0x00, 0x00, // length prefix
		0x08, // run of 4
		0x01, // value 1
	}
	got, consumed, err := DecodeV1(nil, src, 4, 1)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != 6 {
		t.Errorf("consumed %d bytes, want 6", consumed)
	}
	if want := []int32{1, 1, 1, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("levels = %v, want %v", got, want)
	}
}

// TestDecodeV1MaxLevelZero covers a required column: no length prefix on
// the wire, all levels implicitly zero.
func TestDecodeV1MaxLevelZero(t *testing.T) {
	got, consumed, err := DecodeV1(nil, []byte{0xFF, 0xFF}, 3, 0)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != 0 {
		t.Errorf("consumed %d bytes, want 0", consumed)
	}
	if want := []int32{0, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Errorf("levels = %v, want %v", got, want)
	}
}

func TestDecodeV2(t *testing.T) {
	// Raw stream with no length prefix: a run of 3 at level 2, then one
	// group of 8 bit-packed levels at width 2 of which one is used.
	src := []byte{
		0x06, 0x02, // run of 3, value 2
		0x03, 0x01, 0x00, // 1 group of 8 at width 2: first value 1
	}
	got, err := DecodeV2(nil, src, 4, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int32{2, 2, 2, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("levels = %v, want %v", got, want)
	}
}

func TestDecodeV1Truncated(t *testing.T) {
	src := []byte{0x08, 0x00, 0x00, 0x00, 0x08} // prefix claims 8 bytes, only 1 present
	if _, _, err := DecodeV1(nil, src, 4, 1); err == nil {
		t.Fatal("expected an error decoding a truncated level stream")
	}
}
