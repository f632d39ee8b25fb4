package delta

import (
	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/encoding/plain"
	"github.com/arrowparquet/parquet-arrow/format"
)

// ByteArrayEncoding implements DELTA_BYTE_ARRAY (incremental encoding): a
// DELTA_BINARY_PACKED block of per-value prefix lengths, then a
// DELTA_LENGTH_BYTE_ARRAY block of the suffixes. Each value shares its
// first prefix[i] bytes with the value before it.
type ByteArrayEncoding struct {
}

func (e *ByteArrayEncoding) String() string {
	return "DELTA_BYTE_ARRAY"
}

func (e *ByteArrayEncoding) Encoding() format.Encoding {
	return format.DeltaByteArray
}

// EncodeByteArray encodes the PLAIN-framed values in src.
func (e *ByteArrayEncoding) EncodeByteArray(dst, src []byte) ([]byte, error) {
	prefix := getInt32Buffer()
	defer putInt32Buffer(prefix)
	suffixLen := getInt32Buffer()
	defer putInt32Buffer(suffixLen)

	var suffixes []byte
	var lastValue []byte
	if err := plain.RangeByteArray(src, func(v []byte) error {
		p := prefixLength(lastValue, v)
		prefix.values = append(prefix.values, int32(p))
		suffixLen.values = append(suffixLen.values, int32(len(v)-p))
		suffixes = append(suffixes, v[p:]...)
		lastValue = v
		return nil
	}); err != nil {
		return dst[:0], encoding.Error(e, err)
	}

	dst = encodeInt32(dst[:0], prefix.values)
	dst = encodeInt32(dst, suffixLen.values)
	return append(dst, suffixes...), nil
}

// EncodeFixedLenByteArray encodes src, a contiguous sequence of size-byte
// values, with the same prefix/suffix layout; only the suffix lengths
// differ per value since every value is the same size.
func (e *ByteArrayEncoding) EncodeFixedLenByteArray(dst, src []byte, size int) ([]byte, error) {
	if size <= 0 || (len(src)%size) != 0 {
		return dst[:0], encoding.ErrEncodeInvalidInputSize(e, "FIXED_LEN_BYTE_ARRAY", len(src))
	}
	prefix := getInt32Buffer()
	defer putInt32Buffer(prefix)
	suffixLen := getInt32Buffer()
	defer putInt32Buffer(suffixLen)

	var suffixes []byte
	var lastValue []byte
	for i := 0; i < len(src); i += size {
		v := src[i : i+size]
		p := prefixLength(lastValue, v)
		prefix.values = append(prefix.values, int32(p))
		suffixLen.values = append(suffixLen.values, int32(size-p))
		suffixes = append(suffixes, v[p:]...)
		lastValue = v
	}

	dst = encodeInt32(dst[:0], prefix.values)
	dst = encodeInt32(dst, suffixLen.values)
	return append(dst, suffixes...), nil
}

// DecodeByteArray produces the PLAIN-framed reconstruction of src.
func (e *ByteArrayEncoding) DecodeByteArray(dst, src []byte) ([]byte, error) {
	dst = dst[:0]
	var lastValue []byte
	err := e.decode(src, func(prefix, suffix []byte) error {
		n := len(dst)
		dst = plain.AppendByteArrayLength(dst, len(prefix)+len(suffix))
		dst = append(dst, prefix...)
		dst = append(dst, suffix...)
		lastValue = dst[n+plain.ByteArrayLengthSize:]
		return nil
	}, func() []byte { return lastValue })
	if err != nil {
		return dst, encoding.Error(e, err)
	}
	return dst, nil
}

// DecodeFixedLenByteArray produces the contiguous size-byte values of src.
func (e *ByteArrayEncoding) DecodeFixedLenByteArray(dst, src []byte, size int) ([]byte, error) {
	if size <= 0 {
		return dst[:0], encoding.ErrDecodeInvalidInputSize(e, "FIXED_LEN_BYTE_ARRAY", size)
	}
	dst = dst[:0]
	var lastValue []byte
	err := e.decode(src, func(prefix, suffix []byte) error {
		if len(prefix)+len(suffix) != size {
			return errValueLengthOutOfBounds(len(prefix)+len(suffix), size)
		}
		n := len(dst)
		dst = append(dst, prefix...)
		dst = append(dst, suffix...)
		lastValue = dst[n:]
		return nil
	}, func() []byte { return lastValue })
	if err != nil {
		return dst, encoding.Error(e, err)
	}
	return dst, nil
}

// decode walks the prefix-length and suffix streams of src, handing each
// value's shared prefix and fresh suffix to emit. last returns the
// previously emitted value, read back rather than captured so emit may
// relocate its output buffer between calls.
func (e *ByteArrayEncoding) decode(src []byte, emit func(prefix, suffix []byte) error, last func() []byte) error {
	prefix := getInt32Buffer()
	defer putInt32Buffer(prefix)

	src, err := prefix.decode(src)
	if err != nil {
		return err
	}

	suffixLen := getInt32Buffer()
	defer putInt32Buffer(suffixLen)

	src, err = suffixLen.decode(src)
	if err != nil {
		return err
	}
	if len(prefix.values) != len(suffixLen.values) {
		return errTruncated("suffix lengths")
	}

	for i := range prefix.values {
		p := int(prefix.values[i])
		n := int(suffixLen.values[i])
		if p < 0 {
			return errInvalidNegativePrefixLength(p)
		}
		if n < 0 {
			return errInvalidNegativeValueLength(n)
		}
		if n > len(src) {
			return errValueLengthOutOfBounds(n, len(src))
		}
		lastValue := last()
		if p > len(lastValue) {
			return errPrefixLengthOutOfBounds(p, len(lastValue))
		}
		if err := emit(lastValue[:p], src[:n]); err != nil {
			return err
		}
		src = src[n:]
	}
	return nil
}

func prefixLength(base, data []byte) int {
	n := len(base)
	if len(data) < n {
		n = len(data)
	}
	for i := 0; i < n; i++ {
		if base[i] != data[i] {
			return i
		}
	}
	return n
}
