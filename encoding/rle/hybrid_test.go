package rle

import (
	"reflect"
	"testing"
)

func TestEncodeHybridRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		name     string
		values   []int64
		bitWidth uint
	}{
		{"all zero", make([]int64, 20), 0},
		{"single run", []int64{3, 3, 3, 3, 3, 3, 3, 3, 3, 3}, 2},
		{"needs bit-pack", []int64{0, 1, 2, 3, 4, 5, 6, 7, 0, 1}, 3},
		{"mixed", append(append([]int64{9, 9, 9, 9, 9, 9, 9, 9, 9}, 1, 2, 3, 4, 5, 6, 7), 9, 9, 9, 9, 9, 9, 9, 9, 9, 9), 4},
		{"short tail", []int64{1, 2, 3}, 2},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			encoded := encodeHybrid(nil, tc.values, tc.bitWidth)

			var dec HybridDecoder
			dec.Reset(encoded, tc.bitWidth)
			got, err := dec.DecodeRemaining(nil)
			if err != nil {
				t.Fatalf("DecodeRemaining: %v", err)
			}
			if !reflect.DeepEqual(got, tc.values) {
				t.Fatalf("got %v, want %v", got, tc.values)
			}
		})
	}
}

func TestHybridDecoderReadBatchAcrossRuns(t *testing.T) {
	values := []int64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 1, 2, 3, 4, 5, 6, 7, 0}
	encoded := encodeHybrid(nil, values, 4)

	var dec HybridDecoder
	dec.Reset(encoded, 4)

	got := make([]int64, 0, len(values))
	buf := make([]int64, 3)
	for len(got) < len(values) {
		n, err := dec.ReadBatch(buf)
		got = append(got, buf[:n]...)
		if err != nil {
			t.Fatalf("ReadBatch: %v", err)
		}
	}
	if !reflect.DeepEqual(got, values) {
		t.Fatalf("got %v, want %v", got, values)
	}
}

func TestHybridDecoderTruncated(t *testing.T) {
	encoded := encodeHybrid(nil, []int64{1, 1, 1, 1, 1, 1, 1, 1, 1}, 2)
	var dec HybridDecoder
	dec.Reset(encoded[:len(encoded)-1], 2)
	if _, err := dec.ReadBatch(make([]int64, 9)); err == nil {
		t.Fatal("expected truncated-stream error, got nil")
	}
}

func TestUnpackBitsRoundTrip(t *testing.T) {
	values := []int64{0, 1, 2, 3, 4, 5, 6, 7}
	var packed []byte
	packed = packBits(packed, values, 3)

	got, consumed, err := unpackBits(nil, packed, 3, len(values))
	if err != nil {
		t.Fatalf("unpackBits: %v", err)
	}
	if consumed != len(packed) {
		t.Fatalf("consumed %d bytes, want %d", consumed, len(packed))
	}
	if !reflect.DeepEqual(got, values) {
		t.Fatalf("got %v, want %v", got, values)
	}
}

func TestEncodingInt32RoundTrip(t *testing.T) {
	e := &Encoding{BitWidth: 5}
	src := []int32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10}
	encoded, err := e.EncodeInt32(nil, src)
	if err != nil {
		t.Fatalf("EncodeInt32: %v", err)
	}
	dec, err := e.DecodeInt32(nil, encoded)
	if err != nil {
		t.Fatalf("DecodeInt32: %v", err)
	}
	if !reflect.DeepEqual(dec, src) {
		t.Fatalf("got %v, want %v", dec, src)
	}
}

func TestEncodingBooleanRoundTrip(t *testing.T) {
	e := &Encoding{}
	src := []bool{true, false, false, true, true, true, true, true, true, false}
	encoded, err := e.EncodeBoolean(nil, src)
	if err != nil {
		t.Fatalf("EncodeBoolean: %v", err)
	}
	dec, err := e.DecodeBoolean(nil, encoded)
	if err != nil {
		t.Fatalf("DecodeBoolean: %v", err)
	}
	if !reflect.DeepEqual(dec, src) {
		t.Fatalf("got %v, want %v", dec, src)
	}
}

func TestDictionaryEncodingRoundTrip(t *testing.T) {
	var e DictionaryEncoding
	src := []int32{0, 1, 2, 3, 0, 0, 0, 0, 0, 0, 2, 2, 1}
	encoded, err := e.EncodeInt32(nil, src)
	if err != nil {
		t.Fatalf("EncodeInt32: %v", err)
	}
	dec, err := e.DecodeInt32(nil, encoded)
	if err != nil {
		t.Fatalf("DecodeInt32: %v", err)
	}
	if !reflect.DeepEqual(dec, src) {
		t.Fatalf("got %v, want %v", dec, src)
	}
}

func TestDictionaryEncodingAllZero(t *testing.T) {
	var e DictionaryEncoding
	src := []int32{0, 0, 0, 0, 0}
	encoded, err := e.EncodeInt32(nil, src)
	if err != nil {
		t.Fatalf("EncodeInt32: %v", err)
	}
	dec, err := e.DecodeInt32(nil, encoded)
	if err != nil {
		t.Fatalf("DecodeInt32: %v", err)
	}
	if !reflect.DeepEqual(dec, src) {
		t.Fatalf("got %v, want %v", dec, src)
	}
}
