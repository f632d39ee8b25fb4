package rle

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/arrowparquet/parquet-arrow/internal/bits"
)

// HybridDecoder streams values out of Parquet's RLE/bit-packed hybrid
// stream: a sequence of runs,
// each introduced by a varint header whose low bit selects a run-length
// block (one repeated value) from a bit-packed block (groups of 8 values
// packed LSB-first across bytes). ReadBatch fills its destination across
// as many runs as it takes, carrying any partially-consumed run between
// calls so callers can decode in whatever batch sizes suit them.
//
// A HybridDecoder must be initialized with Reset before use and is not
// safe for concurrent use.
type HybridDecoder struct {
	data     []byte
	pos      int
	bitWidth uint

	run    []int64 // values decoded from the run currently in progress
	runPos int     // next undelivered index into run
}

// Reset discards any in-progress run and starts decoding data as a stream
// of values of the given bit width.
func (d *HybridDecoder) Reset(data []byte, bitWidth uint) {
	d.data = data
	d.pos = 0
	d.bitWidth = bitWidth
	d.run = d.run[:0]
	d.runPos = 0
}

// ReadBatch decodes len(dst) values into dst, crossing run boundaries as
// needed, and returns the number of values written. Fewer than len(dst)
// values with a non-nil error means the stream ended inside a run.
func (d *HybridDecoder) ReadBatch(dst []int64) (int, error) {
	n := 0
	for n < len(dst) {
		if d.runPos == len(d.run) {
			if err := d.nextRun(); err != nil {
				return n, err
			}
		}
		c := copy(dst[n:], d.run[d.runPos:])
		d.runPos += c
		n += c
	}
	return n, nil
}

// DecodeRemaining decodes every run from the current position to the end
// of data, appending their values to dst. It is used where the wire format
// gives no explicit value count and the reader instead learns "how many"
// from how far the stream runs (e.g. a whole RLE-encoded boolean page).
func (d *HybridDecoder) DecodeRemaining(dst []int64) ([]int64, error) {
	for d.pos < len(d.data) || d.runPos < len(d.run) {
		if d.runPos == len(d.run) {
			if err := d.nextRun(); err != nil {
				return dst, err
			}
		}
		dst = append(dst, d.run[d.runPos:]...)
		d.runPos = len(d.run)
	}
	return dst, nil
}

// nextRun parses the next run header from data and decodes the whole run
// into d.run, which is the unit of forward progress through the stream.
func (d *HybridDecoder) nextRun() error {
	if d.pos >= len(d.data) {
		return io.ErrUnexpectedEOF
	}
	header, n := binary.Uvarint(d.data[d.pos:])
	if n <= 0 {
		return fmt.Errorf("rle: invalid run header: %w", io.ErrUnexpectedEOF)
	}
	d.pos += n
	d.runPos = 0

	count := int(header >> 1)
	if header&1 == 0 {
		return d.readRunLengthBlock(count)
	}
	return d.readBitPackedBlock(count * 8)
}

func (d *HybridDecoder) readRunLengthBlock(count int) error {
	width := bits.ByteCount(d.bitWidth)
	var value uint64
	if width > 0 {
		if d.pos+width > len(d.data) {
			return fmt.Errorf("rle: run-length block of %d values: %w", count, io.ErrUnexpectedEOF)
		}
		var buf [8]byte
		copy(buf[:], d.data[d.pos:d.pos+width])
		value = binary.LittleEndian.Uint64(buf[:])
		d.pos += width
	}
	d.run = growInt64(d.run, count)
	for i := range d.run {
		d.run[i] = int64(value)
	}
	return nil
}

func (d *HybridDecoder) readBitPackedBlock(count int) error {
	values, consumed, err := unpackBits(d.run[:0], d.data[d.pos:], d.bitWidth, count)
	if err != nil {
		return fmt.Errorf("rle: bit-packed block of %d values: %w", count, err)
	}
	d.run = values
	d.pos += consumed
	return nil
}

// unpackBits decodes count values of the given bit width from a tightly
// packed little-endian bitstream (each value's bits, LSB first, read from
// successive bytes with no per-value padding) and appends them to dst. It
// returns the extended slice and the number of source bytes consumed.
func unpackBits(dst []int64, data []byte, bitWidth uint, count int) ([]int64, int, error) {
	if bitWidth == 0 {
		for i := 0; i < count; i++ {
			dst = append(dst, 0)
		}
		return dst, 0, nil
	}

	mask := uint64(1)<<bitWidth - 1
	var bitBuf uint64
	bitLen := uint(0)
	pos := 0

	for i := 0; i < count; i++ {
		for bitLen < bitWidth {
			if pos >= len(data) {
				return dst, pos, io.ErrUnexpectedEOF
			}
			bitBuf |= uint64(data[pos]) << bitLen
			bitLen += 8
			pos++
		}
		dst = append(dst, int64(bitBuf&mask))
		bitBuf >>= bitWidth
		bitLen -= bitWidth
	}

	return dst, pos, nil
}

// packBits is the inverse of unpackBits: it appends the low bitWidth bits
// of each value to dst, packed LSB first with no per-value padding. Callers
// that need Parquet's group-of-8 byte alignment must pass a value count
// that is a multiple of 8.
func packBits(dst []byte, values []int64, bitWidth uint) []byte {
	if bitWidth == 0 {
		return dst
	}

	mask := uint64(1)<<bitWidth - 1
	var bitBuf uint64
	bitLen := uint(0)

	for _, v := range values {
		bitBuf |= (uint64(v) & mask) << bitLen
		bitLen += bitWidth
		for bitLen >= 8 {
			dst = append(dst, byte(bitBuf))
			bitBuf >>= 8
			bitLen -= 8
		}
	}
	if bitLen > 0 {
		dst = append(dst, byte(bitBuf))
	}

	return dst
}

// encodeHybrid appends values to dst using the greedy strategy the
// reference Parquet encoder uses: runs of 8 or more identical values are
// run-length encoded, everything else is bit-packed in groups of 8. A
// bit-packed block is only ever written for a whole number of groups; any
// leftover run shorter than 8 values falls back to a run-length block
// instead of a padded final group, so a byte-range decode that doesn't
// know the logical value count in advance (DecodeRemaining) never has to
// guess where real values end and padding begins.
func encodeHybrid(dst []byte, values []int64, bitWidth uint) []byte {
	if bitWidth == 0 {
		return appendUvarint(dst, uint64(len(values))<<1)
	}

	for i := 0; i < len(values); {
		runEnd := sameRunEnd(values, i)
		if runEnd-i >= 8 {
			dst = appendUvarint(dst, uint64(runEnd-i)<<1)
			dst = appendValue(dst, values[i], bitWidth)
			i = runEnd
			continue
		}

		packEnd := i
		for packEnd < len(values) {
			next := sameRunEnd(values, packEnd)
			if next-packEnd >= 8 {
				break
			}
			packEnd = next
		}

		if groups := (packEnd - i) / 8; groups > 0 {
			dst = appendUvarint(dst, uint64(groups)<<1|1)
			dst = packBits(dst, values[i:i+groups*8], bitWidth)
			i += groups * 8
			continue
		}

		// Fewer than 8 values and no long run in sight: emit the single
		// short run found above and let the next iteration handle what
		// follows it.
		dst = appendUvarint(dst, uint64(runEnd-i)<<1)
		dst = appendValue(dst, values[i], bitWidth)
		i = runEnd
	}

	return dst
}

// sameRunEnd returns the end (exclusive) of the run of values equal to
// values[i] starting at i.
func sameRunEnd(values []int64, i int) int {
	j := i + 1
	for j < len(values) && values[j] == values[i] {
		j++
	}
	return j
}

func appendValue(dst []byte, v int64, bitWidth uint) []byte {
	width := bits.ByteCount(bitWidth)
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return append(dst, buf[:width]...)
}

func appendUvarint(dst []byte, u uint64) []byte {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], u)
	return append(dst, buf[:n]...)
}

func growInt64(dst []int64, n int) []int64 {
	if cap(dst) >= n {
		return dst[:n]
	}
	return make([]int64, n)
}

func allZero(values []int64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}
