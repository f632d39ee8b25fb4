package plain

import (
	"encoding/binary"
	"fmt"
	"math"
)

const (
	// All is a limit value for ScanByteArrayList meaning "scan every value".
	All = math.MaxInt32
)

// NextByteArrayLength returns the length of the PLAIN byte array starting at
// the beginning of the buffer.
func NextByteArrayLength(buffer []byte) int {
	return int(binary.LittleEndian.Uint32(buffer))
}

// JoinByteArrayList returns a byte slice with the given values joined into
// the PLAIN length-prefixed representation.
func JoinByteArrayList(values [][]byte) []byte {
	bufferSize := 0
	for _, value := range values {
		bufferSize += ByteArrayLengthSize + len(value)
	}
	buffer := make([]byte, 0, bufferSize)
	for _, value := range values {
		buffer = AppendByteArray(buffer, value)
	}
	return buffer
}

// SplitByteArrayList splits the given buffer into a slice of byte slices
// where each element is one value from the buffer.
//
// The returned slice references sub-slices of the input buffer, no copies of
// the values are made.
func SplitByteArrayList(buffer []byte) ([][]byte, error) {
	n, err := ScanByteArrayList(buffer, All, func(value []byte) error { return nil })
	if err != nil {
		return nil, err
	}
	values := make([][]byte, n)
	offset := 0
	ScanByteArrayList(buffer, All, func(value []byte) error {
		values[offset] = value
		offset++
		return nil
	})
	return values, nil
}

// ScanByteArrayList iterates over the sequence of PLAIN encoded byte array
// values in the buffer, calling the scan function on each one, stopping
// after limit values.
//
// The function errors if the input is not properly formatted as a sequence
// of PLAIN byte array values.
func ScanByteArrayList(buffer []byte, limit int, scan func([]byte) error) (int, error) {
	var remain = limit
	var err error

	for len(buffer) >= ByteArrayLengthSize && remain > 0 {
		n := ByteArrayLengthSize + NextByteArrayLength(buffer)
		if len(buffer) < n {
			err = fmt.Errorf("invalid PLAIN byte array sequence has value of length %d but only %d bytes remain to be read", n-ByteArrayLengthSize, len(buffer)-ByteArrayLengthSize)
			break
		}
		if err = scan(buffer[ByteArrayLengthSize:n:n]); err != nil {
			break
		}
		buffer = buffer[n:]
		remain--
	}

	return limit - remain, err
}

// validateByteArray walks the length prefixes of b, checking that every
// declared value fits within the remaining bytes and stays under the
// maximum encodable length.
func validateByteArray(b []byte) status {
	for len(b) > 0 {
		if len(b) < ByteArrayLengthSize {
			return errTooShort
		}
		n := ByteArrayLength(b)
		if n > MaxByteArrayLength {
			return errTooLarge
		}
		if n > len(b)-ByteArrayLengthSize {
			return errTooShort
		}
		b = b[ByteArrayLengthSize+n:]
	}
	return ok
}
