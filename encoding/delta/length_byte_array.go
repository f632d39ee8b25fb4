package delta

import (
	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/encoding/plain"
	"github.com/arrowparquet/parquet-arrow/format"
)

// LengthByteArrayEncoding implements DELTA_LENGTH_BYTE_ARRAY: one
// DELTA_BINARY_PACKED block of int32 value lengths, immediately followed by
// the concatenation of all the value bytes with no per-value framing.
type LengthByteArrayEncoding struct {
}

func (e *LengthByteArrayEncoding) String() string {
	return "DELTA_LENGTH_BYTE_ARRAY"
}

func (e *LengthByteArrayEncoding) Encoding() format.Encoding {
	return format.DeltaLengthByteArray
}

func (e *LengthByteArrayEncoding) EncodeByteArray(dst []byte, src encoding.Values) ([]byte, error) {
	values, _ := src.ByteArray()

	length := getInt32Buffer()
	defer putInt32Buffer(length)

	totalSize := 0
	if err := plain.RangeByteArray(values, func(v []byte) error {
		length.values = append(length.values, int32(len(v)))
		totalSize += len(v)
		return nil
	}); err != nil {
		return dst[:0], encoding.Error(e, err)
	}

	dst = encodeInt32(dst[:0], length.values)
	if err := plain.RangeByteArray(values, func(v []byte) error {
		dst = append(dst, v...)
		return nil
	}); err != nil {
		return dst, encoding.Error(e, err)
	}
	return dst, nil
}

// DecodeByteArray reverses EncodeByteArray, producing the same
// length-prefixed layout PLAIN uses so callers consume every byte-array
// encoding through one representation.
func (e *LengthByteArrayEncoding) DecodeByteArray(dst encoding.Values, src []byte) (encoding.Values, error) {
	length := getInt32Buffer()
	defer putInt32Buffer(length)

	src, err := length.decode(src)
	if err != nil {
		return dst, encoding.Error(e, err)
	}

	values, _ := dst.ByteArray()
	values = values[:0]
	for _, n := range length.values {
		if n < 0 {
			return dst, encoding.Error(e, errInvalidNegativeValueLength(int(n)))
		}
		if int(n) > len(src) {
			return dst, encoding.Error(e, errValueLengthOutOfBounds(int(n), len(src)))
		}
		values = plain.AppendByteArray(values, src[:n])
		src = src[n:]
	}
	return encoding.ByteArrayValues(values, nil), nil
}
