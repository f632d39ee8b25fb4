// Package levels decodes the repetition and definition level streams that
// Dremel-style column-shredded pages use to reconstruct the nesting
// structure of optional and repeated fields.
package levels

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/arrowparquet/parquet-arrow/encoding/rle"
)

// BitWidth returns the number of bits needed to represent level values in
// [0, maxLevel], i.e. ceil(log2(maxLevel+1)).
func BitWidth(maxLevel int) uint {
	if maxLevel <= 0 {
		return 0
	}
	return uint(bits.Len(uint(maxLevel)))
}

// DecodeV1 decodes a length-prefixed RLE/bit-packed level stream as found in
// a DATA_PAGE (v1): a 4-byte little-endian length followed by that many
// bytes of hybrid-encoded levels. numValues is the number of level values
// to decode; maxLevel bounds the bit-width used by the hybrid encoding.
//
// It returns the decoded levels, appended to dst, and the number of bytes of
// src consumed (the 4-byte length prefix plus the encoded payload).
func DecodeV1(dst []int32, src []byte, numValues, maxLevel int) ([]int32, int, error) {
	if maxLevel == 0 {
		dst = appendZeros(dst, numValues)
		return dst, 0, nil
	}
	if len(src) < 4 {
		return dst, 0, fmt.Errorf("levels: truncated length prefix: %d bytes available", len(src))
	}
	n := int(binary.LittleEndian.Uint32(src))
	if n < 0 || n > len(src)-4 {
		return dst, 0, fmt.Errorf("levels: length prefix %d exceeds available %d bytes", n, len(src)-4)
	}
	payload := src[4 : 4+n]
	bitWidth := BitWidth(maxLevel)
	enc := rle.Encoding{BitWidth: int(bitWidth)}
	decoded, err := decodeExactly(&enc, dst, payload, numValues)
	if err != nil {
		return dst, 0, fmt.Errorf("levels: decoding V1 stream: %w", err)
	}
	return decoded, 4 + n, nil
}

// DecodeV2 decodes a raw (non-length-prefixed) RLE/bit-packed level stream
// as found in a DATA_PAGE_V2, whose byte length is already known from the
// page header's *LevelsByteLength field.
func DecodeV2(dst []int32, src []byte, numValues, maxLevel int) ([]int32, error) {
	if maxLevel == 0 {
		return appendZeros(dst, numValues), nil
	}
	bitWidth := BitWidth(maxLevel)
	enc := rle.Encoding{BitWidth: int(bitWidth)}
	return decodeExactly(&enc, dst, src, numValues)
}

func decodeExactly(enc *rle.Encoding, dst []int32, src []byte, numValues int) ([]int32, error) {
	base := len(dst)
	dst = growInt32(dst, base+numValues)
	decoded, err := enc.DecodeInt32(dst[base:base], src)
	if err != nil {
		return dst[:base], err
	}
	if len(decoded) < numValues {
		return dst[:base], fmt.Errorf("levels: expected %d values, decoded %d", numValues, len(decoded))
	}
	// Bit-packed runs are padded to groups of 8 on the wire, so the stream
	// may decode past numValues; the padding levels are not real.
	return append(dst[:base], decoded[:numValues]...), nil
}

func appendZeros(dst []int32, n int) []int32 {
	base := len(dst)
	dst = growInt32(dst, base+n)
	for i := base; i < base+n; i++ {
		dst[i] = 0
	}
	return dst[:base+n]
}

func growInt32(dst []int32, n int) []int32 {
	if cap(dst) >= n {
		return dst[:n]
	}
	grown := make([]int32, n)
	copy(grown, dst)
	return grown
}
