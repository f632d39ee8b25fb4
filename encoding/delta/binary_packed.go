package delta

import (
	"encoding/binary"
	"fmt"

	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/format"
	"github.com/arrowparquet/parquet-arrow/internal/bits"
	"github.com/arrowparquet/parquet-arrow/internal/unsafecast"
)

// Blocks are fixed at 128 values of 4 miniblocks each, the layout every
// mainstream writer produces. Decoding accepts any header whose block size
// is at most maxSupportedBlock and a positive multiple of its miniblock
// count, with each miniblock holding a multiple of 8 values.
const (
	blockSize          = 128
	numMiniBlocks      = 4
	miniBlockSize      = blockSize / numMiniBlocks
	maxSupportedBlock  = 1 << 20
	headerBufferLength = 4 * binary.MaxVarintLen64
)

// BinaryPackedEncoding implements DELTA_BINARY_PACKED for INT32 and INT64
// columns: a varint header (block size, miniblock count, total value count,
// first value), then per-block zigzag min-deltas and bit-packed delta
// miniblocks.
type BinaryPackedEncoding struct {
}

func (e *BinaryPackedEncoding) String() string {
	return "DELTA_BINARY_PACKED"
}

func (e *BinaryPackedEncoding) Encoding() format.Encoding {
	return format.DeltaBinaryPacked
}

func (e *BinaryPackedEncoding) EncodeInt32(dst, src []byte) ([]byte, error) {
	if (len(src) % 4) != 0 {
		return dst[:0], encoding.ErrEncodeInvalidInputSize(e, "INT32", len(src))
	}
	return encodeInt32(dst[:0], unsafecast.BytesToInt32(src)), nil
}

func (e *BinaryPackedEncoding) EncodeInt64(dst, src []byte) ([]byte, error) {
	if (len(src) % 8) != 0 {
		return dst[:0], encoding.ErrEncodeInvalidInputSize(e, "INT64", len(src))
	}
	return encodeInt64(dst[:0], unsafecast.BytesToInt64(src)), nil
}

func (e *BinaryPackedEncoding) DecodeInt32(dst, src []byte) ([]byte, error) {
	values, _, err := decodeInt32(unsafecast.BytesToInt32(dst)[:0], src)
	if err != nil {
		err = encoding.Error(e, err)
	}
	return unsafecast.Int32ToBytes(values), err
}

func (e *BinaryPackedEncoding) DecodeInt64(dst, src []byte) ([]byte, error) {
	values, _, err := decodeInt64(unsafecast.BytesToInt64(dst)[:0], src)
	if err != nil {
		err = encoding.Error(e, err)
	}
	return unsafecast.Int64ToBytes(values), err
}

func encodeInt32(dst []byte, src []int32) []byte {
	var firstValue int32
	if len(src) > 0 {
		firstValue = src[0]
	}
	dst = appendBinaryPackedHeader(dst, blockSize, numMiniBlocks, len(src), int64(firstValue))
	if len(src) <= 1 {
		return dst
	}

	// Per-position deltas; int32 subtraction wraps on overflow, which the
	// matching truncation on decode undoes.
	deltas := make([]int32, len(src)-1)
	for i := range deltas {
		deltas[i] = src[i+1] - src[i]
	}

	block := make([]int64, blockSize)
	for len(deltas) > 0 {
		n := len(deltas)
		if n > blockSize {
			n = blockSize
		}
		minDelta := bits.MinInt32(deltas[:n])
		for i := 0; i < blockSize; i++ {
			if i < n {
				block[i] = int64(uint32(deltas[i] - minDelta))
			} else {
				block[i] = 0
			}
		}
		dst = appendBinaryPackedBlock(dst, block, n, int64(minDelta))
		deltas = deltas[n:]
	}
	return dst
}

func encodeInt64(dst []byte, src []int64) []byte {
	var firstValue int64
	if len(src) > 0 {
		firstValue = src[0]
	}
	dst = appendBinaryPackedHeader(dst, blockSize, numMiniBlocks, len(src), firstValue)
	if len(src) <= 1 {
		return dst
	}

	deltas := make([]int64, len(src)-1)
	for i := range deltas {
		deltas[i] = src[i+1] - src[i]
	}

	block := make([]int64, blockSize)
	for len(deltas) > 0 {
		n := len(deltas)
		if n > blockSize {
			n = blockSize
		}
		minDelta := bits.MinInt64(deltas[:n])
		for i := 0; i < blockSize; i++ {
			if i < n {
				block[i] = int64(uint64(deltas[i]) - uint64(minDelta))
			} else {
				block[i] = 0
			}
		}
		dst = appendBinaryPackedBlock(dst, block, n, minDelta)
		deltas = deltas[n:]
	}
	return dst
}

func appendBinaryPackedHeader(dst []byte, blockSize, numMiniBlocks, totalValues int, firstValue int64) []byte {
	buf := make([]byte, headerBufferLength)
	n := 0
	n += binary.PutUvarint(buf[n:], uint64(blockSize))
	n += binary.PutUvarint(buf[n:], uint64(numMiniBlocks))
	n += binary.PutUvarint(buf[n:], uint64(totalValues))
	n += binary.PutVarint(buf[n:], firstValue)
	return append(dst, buf[:n]...)
}

// appendBinaryPackedBlock writes one block: the zigzag min-delta, the
// miniblock bit widths, then the bit-packed miniblocks. block holds the
// deltas already offset by minDelta, zero-padded to blockSize; only the
// first n are meaningful. Trailing miniblocks with no values at all are
// declared at width zero and contribute no bytes.
func appendBinaryPackedBlock(dst []byte, block []int64, n int, minDelta int64) []byte {
	var varint [binary.MaxVarintLen64]byte
	dst = append(dst, varint[:binary.PutVarint(varint[:], minDelta)]...)

	var widths [numMiniBlocks]byte
	for i := range widths {
		lo := i * miniBlockSize
		if lo < n {
			widths[i] = byte(bits.MaxLen64(block[lo : lo+miniBlockSize]))
		}
	}
	dst = append(dst, widths[:]...)

	for i, width := range widths {
		if width == 0 {
			continue
		}
		lo := i * miniBlockSize
		dst = packMiniBlock(dst, block[lo:lo+miniBlockSize], uint(width))
		if lo+miniBlockSize >= n {
			break
		}
	}
	return dst
}

// packMiniBlock appends values bit-packed LSB-first at the given width.
// len(values) is always miniBlockSize, a multiple of 8, so the output is
// whole bytes.
func packMiniBlock(dst []byte, values []int64, width uint) []byte {
	var bitBuf uint64
	bitLen := uint(0)
	mask := uint64(1)<<width - 1
	for _, v := range values {
		u := uint64(v) & mask
		// bitBuf may still hold up to 7 pending bits, so a value is fed in
		// pieces of at most 32 bits to keep every shift within 64 bits.
		for rest := width; rest > 0; {
			take := rest
			if take > 32 {
				take = 32
			}
			bitBuf |= (u & (uint64(1)<<take - 1)) << bitLen
			u >>= take
			bitLen += take
			rest -= take
			for bitLen >= 8 {
				dst = append(dst, byte(bitBuf))
				bitBuf >>= 8
				bitLen -= 8
			}
		}
	}
	if bitLen > 0 {
		dst = append(dst, byte(bitBuf))
	}
	return dst
}

func decodeInt32(dst []int32, src []byte) ([]int32, []byte, error) {
	remain, err := decodeBinaryPacked(src, func(v int64) {
		dst = append(dst, int32(v))
	})
	return dst, remain, err
}

func decodeInt64(dst []int64, src []byte) ([]int64, []byte, error) {
	remain, err := decodeBinaryPacked(src, func(v int64) {
		dst = append(dst, v)
	})
	return dst, remain, err
}

// decodeBinaryPacked drives one DELTA_BINARY_PACKED stream from the front of
// src, emitting each reconstructed value through observe and returning the
// unconsumed tail. Values are accumulated in 64 bits; 32-bit callers
// truncate, which matches the wrap-on-overflow arithmetic of the encoder.
func decodeBinaryPacked(src []byte, observe func(int64)) ([]byte, error) {
	blockLen, miniBlocks, totalValues, firstValue, src, err := decodeBinaryPackedHeader(src)
	if err != nil {
		return src, err
	}
	if totalValues == 0 {
		return src, nil
	}

	observe(firstValue)
	remaining := totalValues - 1
	lastValue := firstValue
	valuesPerMiniBlock := blockLen / miniBlocks

	var deltas []int64
	for remaining > 0 {
		minDelta, n, err := decodeVarint(src, "min delta")
		if err != nil {
			return src, err
		}
		src = src[n:]
		if len(src) < miniBlocks {
			return src, errTruncated("miniblock bit widths")
		}
		widths := src[:miniBlocks]
		src = src[miniBlocks:]

		for _, width := range widths {
			count := valuesPerMiniBlock
			if count > remaining {
				count = remaining
			}
			if width > 64 {
				return src, fmt.Errorf("miniblock bit width %d exceeds 64", width)
			}

			if width == 0 {
				deltas = resizeInt64(deltas, count)
				for i := range deltas {
					deltas[i] = 0
				}
			} else {
				// The miniblock's byte footprint covers valuesPerMiniBlock
				// values even when only count of them are meaningful.
				byteLen := (valuesPerMiniBlock * int(width)) / 8
				if len(src) < byteLen {
					return src, errTruncated("miniblock data")
				}
				deltas = unpackMiniBlock(deltas[:0], src[:byteLen], uint(width), count)
				src = src[byteLen:]
			}

			for _, d := range deltas {
				lastValue += minDelta + d
				observe(lastValue)
			}
			remaining -= len(deltas)
			if remaining == 0 {
				break
			}
		}
	}
	return src, nil
}

// unpackMiniBlock appends count values of the given bit width from the
// tightly packed little-endian bitstream in src, which the caller has
// already sized to hold at least count values. A per-value bit cursor keeps
// widths up to the full 64 bits correct without a second accumulator.
func unpackMiniBlock(dst []int64, src []byte, width uint, count int) []int64 {
	bitPos := uint(0)
	for i := 0; i < count; i++ {
		var v uint64
		for got := uint(0); got < width; {
			b := uint64(src[bitPos/8] >> (bitPos % 8))
			take := 8 - bitPos%8
			if take > width-got {
				take = width - got
			}
			v |= (b & (uint64(1)<<take - 1)) << got
			got += take
			bitPos += take
		}
		dst = append(dst, int64(v))
	}
	return dst
}

func resizeInt64(dst []int64, n int) []int64 {
	if cap(dst) >= n {
		return dst[:n]
	}
	return make([]int64, n)
}

func decodeBinaryPackedHeader(src []byte) (blockLen, miniBlocks, totalValues int, firstValue int64, next []byte, err error) {
	u, n, err := decodeUvarint(src, "block size")
	if err != nil {
		return 0, 0, 0, 0, src, err
	}
	blockLen, src = int(u), src[n:]

	u, n, err = decodeUvarint(src, "number of miniblocks")
	if err != nil {
		return 0, 0, 0, 0, src, err
	}
	miniBlocks, src = int(u), src[n:]

	u, n, err = decodeUvarint(src, "total value count")
	if err != nil {
		return 0, 0, 0, 0, src, err
	}
	totalValues, src = int(u), src[n:]

	firstValue, n, err = decodeVarint(src, "first value")
	if err != nil {
		return 0, 0, 0, 0, src, err
	}
	src = src[n:]

	if blockLen <= 0 || blockLen > maxSupportedBlock {
		return 0, 0, 0, 0, src, fmt.Errorf("invalid block size: %d", blockLen)
	}
	if miniBlocks <= 0 || blockLen%miniBlocks != 0 || (blockLen/miniBlocks)%8 != 0 {
		return 0, 0, 0, 0, src, fmt.Errorf("invalid number of miniblocks %d for block size %d", miniBlocks, blockLen)
	}
	if totalValues < 0 {
		return 0, 0, 0, 0, src, fmt.Errorf("invalid total value count: %d", totalValues)
	}
	return blockLen, miniBlocks, totalValues, firstValue, src, nil
}

func decodeUvarint(buf []byte, what string) (uint64, int, error) {
	u, n := binary.Uvarint(buf)
	if n <= 0 {
		return 0, 0, errTruncated(what)
	}
	return u, n, nil
}

func decodeVarint(buf []byte, what string) (int64, int, error) {
	v, n := binary.Varint(buf)
	if n <= 0 {
		return 0, 0, errTruncated(what)
	}
	return v, n, nil
}
