// Package rle implements the hybrid RLE/Bit-Packed encoding employed in
// repetition and definition levels, dictionary indexed data pages, and
// RLE-encoded boolean values.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#run-length-encoding--bit-packing-hybrid-rle--3
package rle

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/format"
)

// Encoding implements the plain (non-dictionary) uses of the hybrid
// RLE/bit-packed stream: levels (via internal/levels) and RLE-encoded
// boolean values. BitWidth must be set before any Encode/Decode call other
// than EncodeBoolean and DecodeBoolean, which always use a bit width of 1.
type Encoding struct {
	BitWidth int
}

func (e *Encoding) Encoding() format.Encoding { return format.RLE }
func (e *Encoding) String() string            { return "RLE" }

// EncodeBoolean writes src as a 4-byte little-endian length prefix
// followed by the bit_width=1 hybrid encoding of the values, the shape the
// format uses for RLE-encoded boolean value pages.
func (e *Encoding) EncodeBoolean(dst []byte, src []bool) ([]byte, error) {
	dst = append(dst[:0], 0, 0, 0, 0)
	dst = encodeHybrid(dst, boolsToInt64(src), 1)
	binary.LittleEndian.PutUint32(dst, uint32(len(dst))-4)
	return dst, nil
}

// DecodeBoolean is the inverse of EncodeBoolean.
func (e *Encoding) DecodeBoolean(dst []bool, src []byte) ([]bool, error) {
	if len(src) < 4 {
		return dst[:0], e.wrap(fmt.Errorf("input shorter than 4 bytes: %w", io.ErrUnexpectedEOF))
	}
	n := int(binary.LittleEndian.Uint32(src))
	src = src[4:]
	if n > len(src) {
		return dst[:0], e.wrap(fmt.Errorf("input shorter than length prefix: %d < %d: %w", len(src), n, io.ErrUnexpectedEOF))
	}
	if n == 0 {
		return dst[:0], nil
	}

	values, err := decodeAll(src[:n], 1)
	if err != nil {
		return dst[:0], e.wrap(err)
	}
	dst = dst[:0]
	for _, v := range values {
		dst = append(dst, v != 0)
	}
	return dst, nil
}

// EncodeInt8 writes src bit-packed/run-length encoded at e.BitWidth, used
// internally for the single-byte boolean word path; bit widths above 8 are
// rejected.
func (e *Encoding) EncodeInt8(dst []byte, src []int8) ([]byte, error) {
	bitWidth := uint(e.BitWidth)
	if bitWidth > 8 {
		return dst, e.wrap(errInvalidBitWidth("encode", "INT8", bitWidth))
	}
	values := make([]int64, len(src))
	for i, v := range src {
		values[i] = int64(v)
	}
	if bitWidth == 0 && !allZero(values) {
		return dst, e.wrap(errInvalidBitWidth("encode", "INT8", bitWidth))
	}
	return encodeHybrid(dst[:0], values, bitWidth), nil
}

// DecodeInt8 is the inverse of EncodeInt8.
func (e *Encoding) DecodeInt8(dst []int8, src []byte) ([]int8, error) {
	bitWidth := uint(e.BitWidth)
	if bitWidth > 8 {
		return dst, e.wrap(errInvalidBitWidth("decode", "INT8", bitWidth))
	}
	values, err := decodeAll(src, bitWidth)
	if err != nil {
		return dst, e.wrap(err)
	}
	dst = dst[:0]
	for _, v := range values {
		dst = append(dst, int8(v))
	}
	return dst, nil
}

// EncodeInt32 writes src bit-packed/run-length encoded at e.BitWidth, the
// shape used by level streams (internal/levels).
func (e *Encoding) EncodeInt32(dst []byte, src []int32) ([]byte, error) {
	bitWidth := uint(e.BitWidth)
	if bitWidth > 32 {
		return dst, e.wrap(errInvalidBitWidth("encode", "INT32", bitWidth))
	}
	values := make([]int64, len(src))
	for i, v := range src {
		values[i] = int64(v)
	}
	if bitWidth == 0 && !allZero(values) {
		return dst, e.wrap(errInvalidBitWidth("encode", "INT32", bitWidth))
	}
	return encodeHybrid(dst[:0], values, bitWidth), nil
}

// DecodeInt32 is the inverse of EncodeInt32.
func (e *Encoding) DecodeInt32(dst []int32, src []byte) ([]int32, error) {
	bitWidth := uint(e.BitWidth)
	if bitWidth > 32 {
		return dst, e.wrap(errInvalidBitWidth("decode", "INT32", bitWidth))
	}
	values, err := decodeAll(src, bitWidth)
	if err != nil {
		return dst, e.wrap(err)
	}
	dst = dst[:0]
	for _, v := range values {
		dst = append(dst, int32(v))
	}
	return dst, nil
}

func (e *Encoding) wrap(err error) error {
	if err != nil {
		err = encoding.Error(e, err)
	}
	return err
}

// decodeAll drains a HybridDecoder over src until its data is exhausted,
// growing the result as it goes; used where the wire format gives no
// explicit value count (the caller learns "how many" from how far the
// stream runs, e.g. a whole RLE-encoded boolean page).
func decodeAll(src []byte, bitWidth uint) ([]int64, error) {
	var dec HybridDecoder
	dec.Reset(src, bitWidth)
	return dec.DecodeRemaining(nil)
}

func boolsToInt64(src []bool) []int64 {
	values := make([]int64, len(src))
	for i, v := range src {
		if v {
			values[i] = 1
		}
	}
	return values
}

func errInvalidBitWidth(op, typ string, bitWidth uint) error {
	return fmt.Errorf("cannot %s %s with invalid bit-width=%d", op, typ, bitWidth)
}
