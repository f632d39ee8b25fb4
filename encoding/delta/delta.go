// Package delta implements the DELTA_BINARY_PACKED, DELTA_LENGTH_BYTE_ARRAY
// and DELTA_BYTE_ARRAY parquet encodings.
//
// https://github.com/apache/parquet-format/blob/master/Encodings.md#delta-encoding-delta_binary_packed--5
package delta

import (
	"fmt"
	"io"
	"sync"
)

type int32Buffer struct {
	values []int32
}

var int32BufferPool sync.Pool // *int32Buffer

func getInt32Buffer() *int32Buffer {
	b, _ := int32BufferPool.Get().(*int32Buffer)
	if b != nil {
		b.values = b.values[:0]
	} else {
		b = &int32Buffer{
			values: make([]int32, 0, 1024),
		}
	}
	return b
}

func putInt32Buffer(b *int32Buffer) {
	int32BufferPool.Put(b)
}

// decode reads a DELTA_BINARY_PACKED block of int32 values from the front of
// src into b, returning the bytes that follow it.
func (b *int32Buffer) decode(src []byte) ([]byte, error) {
	values, remain, err := decodeInt32(b.values[:0], src)
	b.values = values
	return remain, err
}

func errTruncated(what string) error {
	return fmt.Errorf("reading %s: %w", what, io.ErrUnexpectedEOF)
}

func errInvalidNegativeValueLength(n int) error {
	return fmt.Errorf("invalid negative value length: %d", n)
}

func errInvalidNegativePrefixLength(n int) error {
	return fmt.Errorf("invalid negative prefix length: %d", n)
}

func errPrefixLengthOutOfBounds(n, limit int) error {
	return fmt.Errorf("prefix length %d is longer than the last value (%d bytes)", n, limit)
}

func errValueLengthOutOfBounds(n, limit int) error {
	return fmt.Errorf("value length %d exceeds the %d input bytes remaining", n, limit)
}
