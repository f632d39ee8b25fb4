package bytestreamsplit

import (
	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/format"
)

// This encoder implements a version of the Byte Stream Split encoding as described
// in https://github.com/apache/parquet-format/blob/master/Encodings.md#byte-stream-split-byte_stream_split--9
type Encoding struct {
}

func (e *Encoding) String() string {
	return "BYTE_STREAM_SPLIT"
}

func (e *Encoding) Encoding() format.Encoding {
	return format.ByteStreamSplit
}

func (e *Encoding) EncodeFloat(dst []byte, src encoding.Values) ([]byte, error) {
	buf := src.Bytes(encoding.Float)
	dst = resize(dst, len(buf))
	encodeFloat(dst, buf)
	return dst, nil
}

func (e *Encoding) EncodeDouble(dst []byte, src encoding.Values) ([]byte, error) {
	buf := src.Bytes(encoding.Double)
	dst = resize(dst, len(buf))
	encodeDouble(dst, buf)
	return dst, nil
}

func (e *Encoding) DecodeFloat(dst encoding.Values, src []byte) (encoding.Values, error) {
	if (len(src) % 4) != 0 {
		return dst, encoding.ErrDecodeInvalidInputSize(e, "FLOAT", len(src))
	}
	buf := resize(dst.Bytes(encoding.Float), len(src))
	decodeFloat(buf, src)
	return encoding.FloatValuesFromBytes(buf), nil
}

func (e *Encoding) DecodeDouble(dst encoding.Values, src []byte) (encoding.Values, error) {
	if (len(src) % 8) != 0 {
		return dst, encoding.ErrDecodeInvalidInputSize(e, "DOUBLE", len(src))
	}
	buf := resize(dst.Bytes(encoding.Double), len(src))
	decodeDouble(buf, src)
	return encoding.DoubleValuesFromBytes(buf), nil
}

// EncodeInt32 splits each 4-byte INT32 value across 4 streams, one byte per
// value per stream, stream-major (streamK holds byte K of every value).
func (e *Encoding) EncodeInt32(dst []byte, src encoding.Values) ([]byte, error) {
	buf := src.Bytes(encoding.Int32)
	dst = resize(dst, len(buf))
	encodeWidth(dst, buf, 4)
	return dst, nil
}

// EncodeInt64 splits each 8-byte INT64 value across 8 streams.
func (e *Encoding) EncodeInt64(dst []byte, src encoding.Values) ([]byte, error) {
	buf := src.Bytes(encoding.Int64)
	dst = resize(dst, len(buf))
	encodeWidth(dst, buf, 8)
	return dst, nil
}

// EncodeFixedLenByteArray splits each size-byte value across size streams.
func (e *Encoding) EncodeFixedLenByteArray(dst []byte, src encoding.Values, size int) ([]byte, error) {
	buf, _ := src.FixedLenByteArray()
	dst = resize(dst, len(buf))
	encodeWidth(dst, buf, size)
	return dst, nil
}

func (e *Encoding) DecodeInt32(dst encoding.Values, src []byte) (encoding.Values, error) {
	if (len(src) % 4) != 0 {
		return dst, encoding.ErrDecodeInvalidInputSize(e, "INT32", len(src))
	}
	buf := resize(dst.Bytes(encoding.Int32), len(src))
	decodeWidth(buf, src, 4)
	return encoding.Int32ValuesFromBytes(buf), nil
}

func (e *Encoding) DecodeInt64(dst encoding.Values, src []byte) (encoding.Values, error) {
	if (len(src) % 8) != 0 {
		return dst, encoding.ErrDecodeInvalidInputSize(e, "INT64", len(src))
	}
	buf := resize(dst.Bytes(encoding.Int64), len(src))
	decodeWidth(buf, src, 8)
	return encoding.Int64ValuesFromBytes(buf), nil
}

func (e *Encoding) DecodeFixedLenByteArray(dst encoding.Values, src []byte, size int) (encoding.Values, error) {
	if size <= 0 || (len(src)%size) != 0 {
		return dst, encoding.ErrDecodeInvalidInputSize(e, "FIXED_LEN_BYTE_ARRAY", len(src))
	}
	data, _ := dst.FixedLenByteArray()
	data = resize(data, len(src))
	decodeWidth(data, src, size)
	return encoding.FixedLenByteArrayValues(data, size), nil
}

func encodeFloat(dst, src []byte)  { encodeWidth(dst, src, 4) }
func encodeDouble(dst, src []byte) { encodeWidth(dst, src, 8) }
func decodeFloat(dst, src []byte)  { decodeWidth(dst, src, 4) }
func decodeDouble(dst, src []byte) { decodeWidth(dst, src, 8) }

// encodeWidth and decodeWidth implement byte-stream-split for an arbitrary
// element width: stream b of n values holds byte b of every value, so
// encoding is a stream-major transposition of the value bytes and decoding
// transposes it back.
func encodeWidth(dst, src []byte, width int) {
	n := len(src) / width
	for i := 0; i < n; i++ {
		v := src[i*width : i*width+width]
		for b := 0; b < width; b++ {
			dst[b*n+i] = v[b]
		}
	}
}

func decodeWidth(dst, src []byte, width int) {
	n := len(src) / width
	for i := 0; i < n; i++ {
		v := dst[i*width : i*width+width]
		for b := 0; b < width; b++ {
			v[b] = src[b*n+i]
		}
	}
}

func resize(buf []byte, size int) []byte {
	if cap(buf) < size {
		buf = make([]byte, size)
	} else {
		buf = buf[:size]
	}
	return buf
}
