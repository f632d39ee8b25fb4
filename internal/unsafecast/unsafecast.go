// Package unsafecast exposes zero-copy reinterpretations of typed slices,
// used by the encoding package to avoid copying column values between their
// native Go representation and the byte buffers used to store and transmit
// them.
package unsafecast

import "unsafe"

// Slice reinterprets the memory backing s as a slice of To, adjusting length
// and capacity by the ratio of the two element sizes.
//
// The returned slice aliases the memory of s; mutating one mutates the
// other. s must not be empty when its element size is larger than zero.
func Slice[To, From any](s []From) []To {
	var from From
	var to To
	fromSize := unsafe.Sizeof(from)
	toSize := unsafe.Sizeof(to)

	if len(s) == 0 {
		return nil
	}

	length := (uintptr(len(s)) * fromSize) / toSize
	capacity := (uintptr(cap(s)) * fromSize) / toSize
	return unsafe.Slice((*To)(unsafe.Pointer(&s[0])), capacity)[:length:capacity]
}

func BytesToBool(b []byte) []bool       { return Slice[bool](b) }
func BytesToInt8(b []byte) []int8       { return Slice[int8](b) }
func BytesToInt16(b []byte) []int16     { return Slice[int16](b) }
func BytesToInt32(b []byte) []int32     { return Slice[int32](b) }
func BytesToInt64(b []byte) []int64     { return Slice[int64](b) }
func BytesToUint32(b []byte) []uint32   { return Slice[uint32](b) }
func BytesToUint64(b []byte) []uint64   { return Slice[uint64](b) }
func BytesToFloat32(b []byte) []float32 { return Slice[float32](b) }
func BytesToFloat64(b []byte) []float64 { return Slice[float64](b) }

// BytesToUint128 reinterprets b as a slice of 16 byte values, used by
// encoding.Values.Uint128 for 16-byte FIXED_LEN_BYTE_ARRAY values.
func BytesToUint128(b []byte) [][16]byte { return Slice[[16]byte](b) }

func BoolToBytes(b []bool) []byte       { return Slice[byte](b) }
func Int8ToBytes(v []int8) []byte       { return Slice[byte](v) }
func Int16ToBytes(v []int16) []byte     { return Slice[byte](v) }
func Int32ToBytes(v []int32) []byte     { return Slice[byte](v) }
func Int64ToBytes(v []int64) []byte     { return Slice[byte](v) }
func Uint32ToBytes(v []uint32) []byte   { return Slice[byte](v) }
func Uint64ToBytes(v []uint64) []byte   { return Slice[byte](v) }
func Float32ToBytes(v []float32) []byte { return Slice[byte](v) }
func Float64ToBytes(v []float64) []byte { return Slice[byte](v) }

func Uint32ToInt32(v []uint32) []int32   { return Slice[int32](v) }
func Uint64ToInt64(v []uint64) []int64   { return Slice[int64](v) }
func Uint128ToBytes(v [][16]byte) []byte { return Slice[byte](v) }
