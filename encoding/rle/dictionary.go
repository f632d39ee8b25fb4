package rle

import (
	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/format"
	"github.com/arrowparquet/parquet-arrow/internal/bits"
)

// DictionaryEncoding implements RLE_DICTIONARY: dictionary indexes are
// written as a single bit-width byte followed by the hybrid RLE/bit-packed
// encoding of the index stream.
type DictionaryEncoding struct {
}

func (e *DictionaryEncoding) Encoding() format.Encoding { return format.RLEDictionary }
func (e *DictionaryEncoding) String() string            { return "RLE_DICTIONARY" }

func (e *DictionaryEncoding) EncodeInt32(dst []byte, src []int32) ([]byte, error) {
	bitWidth := bits.MaxLen32(src)
	values := make([]int64, len(src))
	for i, v := range src {
		values[i] = int64(v)
	}
	dst = append(dst[:0], byte(bitWidth))
	return encodeHybrid(dst, values, uint(bitWidth)), nil
}

// DecodeInt32 decodes dictionary indexes from src, which is expected to
// start with the one byte bit-width header written by EncodeInt32, and
// consumes the remainder of src as the index stream (the caller has
// already sliced src to the page's value payload, so "all of it" is the
// right count). A bit width of zero indicates that every index is zero,
// which the format allows when the dictionary page holds a single
// distinct value.
func (e *DictionaryEncoding) DecodeInt32(dst []int32, src []byte) ([]int32, error) {
	if len(src) == 0 {
		return dst[:0], nil
	}
	if src[0] > 32 {
		return dst, e.wrap(errInvalidBitWidth("decode", "INT32", uint(src[0])))
	}
	values, err := decodeAll(src[1:], uint(src[0]))
	if err != nil {
		return dst, e.wrap(err)
	}
	dst = dst[:0]
	for _, v := range values {
		dst = append(dst, int32(v))
	}
	return dst, nil
}

func (e *DictionaryEncoding) wrap(err error) error {
	if err != nil {
		err = encoding.Error(e, err)
	}
	return err
}
