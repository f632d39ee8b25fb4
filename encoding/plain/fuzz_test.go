//go:build go1.18
// +build go1.18

package plain_test

import (
	"testing"

	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/encoding/plain"
	"github.com/arrowparquet/parquet-arrow/internal/fuzzing"
)

// FuzzInt32RoundTrip feeds arbitrary seed bytes through fuzzing.MakeRandInt32
// to build a column of values, then checks that encoding and decoding them
// with PLAIN reproduces the same sequence.
func FuzzInt32RoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0, 1, 2, 3, 4, 5, 6, 7})
	f.Fuzz(func(t *testing.T, seed []byte) {
		values := fuzzing.MakeRandInt32(seed, 1+len(seed))

		var enc plain.Encoding
		buf, err := enc.EncodeInt32(nil, encoding.Int32Values(values))
		if err != nil {
			t.Fatal(err)
		}

		out, err := enc.DecodeInt32(encoding.Values{}, buf)
		if err != nil {
			t.Fatal(err)
		}
		got := out.Int32()
		if len(got) != len(values) {
			t.Fatalf("length mismatch: got %d, want %d", len(got), len(values))
		}
		for i := range values {
			if got[i] != values[i] {
				t.Fatalf("value %d: got %d, want %d", i, got[i], values[i])
			}
		}
	})
}

// FuzzDoubleRoundTrip mirrors FuzzInt32RoundTrip for DOUBLE, exercising
// fuzzing.MakeRandDouble.
func FuzzDoubleRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{9, 9, 9, 9, 9, 9, 9, 9})
	f.Fuzz(func(t *testing.T, seed []byte) {
		values := fuzzing.MakeRandDouble(seed, 1+len(seed))

		var enc plain.Encoding
		buf, err := enc.EncodeDouble(nil, encoding.DoubleValues(values))
		if err != nil {
			t.Fatal(err)
		}

		out, err := enc.DecodeDouble(encoding.Values{}, buf)
		if err != nil {
			t.Fatal(err)
		}
		got := out.Double()
		if len(got) != len(values) {
			t.Fatalf("length mismatch: got %d, want %d", len(got), len(values))
		}
		for i := range values {
			if got[i] != values[i] {
				t.Fatalf("value %d: got %v, want %v", i, got[i], values[i])
			}
		}
	})
}
