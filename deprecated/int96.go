// Package deprecated holds the representation of the INT96 physical type,
// which the parquet format deprecated but old writers still emit for
// nanosecond timestamps.
package deprecated

import (
	"math/big"
	"unsafe"
)

// Int96 is a 96-bit little-endian signed integer, stored as three 32-bit
// words from least to most significant.
type Int96 [3]uint32

// Negative returns true if i is a negative value.
func (i Int96) Negative() bool {
	return (i[2] >> 31) != 0
}

// Less implements a signed comparison between i and j.
func (i Int96) Less(j Int96) bool {
	if i.Negative() {
		if !j.Negative() {
			return true
		}
	} else {
		if j.Negative() {
			return false
		}
	}
	for k := 2; k >= 0; k-- {
		a, b := i[k], j[k]
		switch {
		case a < b:
			return true
		case a > b:
			return false
		}
	}
	return false
}

// Int converts i to a big.Int representation.
func (i Int96) Int() *big.Int {
	z := new(big.Int)
	z.Or(z, big.NewInt(int64(int32(i[2]))))
	z.Lsh(z, 32)
	z.Or(z, big.NewInt(int64(i[1])))
	z.Lsh(z, 32)
	z.Or(z, big.NewInt(int64(i[0])))
	return z
}

// String returns a string representation of i.
func (i Int96) String() string {
	return i.Int().String()
}

// Int96ToBytes converts the slice of Int96 values to a slice of bytes
// sharing the same backing array.
func Int96ToBytes(data []Int96) []byte {
	return unsafe.Slice(*(**byte)(unsafe.Pointer(&data)), 12*len(data))
}

// BytesToInt96 reinterprets a slice of bytes, whose length must be a
// multiple of 12, as a slice of Int96 values sharing the same backing array.
func BytesToInt96(data []byte) []Int96 {
	return unsafe.Slice(*(**Int96)(unsafe.Pointer(&data)), len(data)/12)
}
