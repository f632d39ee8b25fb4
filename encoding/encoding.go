package encoding

import (
	"errors"
	"fmt"

	"github.com/arrowparquet/parquet-arrow/format"
)

// ErrInvalidArgument is an error returned when one or more arguments passed
// to the encoding functions are incorrect.
//
// This error may be wrapped with specific information about the problem;
// applications are expected to use errors.Is rather than equality
// comparisons to test the error values returned by encoders and decoders.
var ErrInvalidArgument = errors.New("invalid argument")

// Error constructs an error which wraps err and indicates that it originated
// from the given encoding.
func Error(e Encoding, err error) error {
	return fmt.Errorf("%s: %w", e, err)
}

// Errorf is like Error but constructs the error message from the given format
// and arguments.
func Errorf(e Encoding, msg string, args ...interface{}) error {
	return Error(e, fmt.Errorf(msg, args...))
}

// Encoding is the common surface every parquet value encoding exposes for
// error reporting and codec identification. Encode/Decode method shapes vary
// by physical type and are declared directly on each concrete encoding
// (encoding.Values-based for PLAIN, BYTE_STREAM_SPLIT and
// DELTA_LENGTH_BYTE_ARRAY, raw typed slices for RLE, raw bytes for
// DELTA_BINARY_PACKED and DELTA_BYTE_ARRAY); unifying them behind one
// interface method set would force every encoding through the same calling
// convention even though their underlying bit-packing hot loops do not share
// one.
type Encoding interface {
	// String returns a human-readable name for the encoding, e.g. "PLAIN".
	String() string

	// Encoding returns the parquet wire code identifying this encoding.
	Encoding() format.Encoding
}

// MaxFixedLenByteArraySize is the largest FIXED_LEN_BYTE_ARRAY element size
// this module decodes. It bounds allocations driven by an on-disk
// type_length so a corrupt or adversarial footer cannot request an
// unbounded buffer.
const MaxFixedLenByteArraySize = 1 << 20

// ErrEncodeInvalidInputSize constructs an error indicating that encoding
// failed because src did not hold a whole number of fixed-size values of the
// given physical type.
func ErrEncodeInvalidInputSize(e Encoding, typ string, size int) error {
	return Errorf(e, "cannot encode %s from input of size %d: %w", typ, size, ErrInvalidArgument)
}

// ErrDecodeInvalidInputSize constructs an error indicating that decoding
// failed because src did not hold a whole number of fixed-size values of the
// given physical type.
func ErrDecodeInvalidInputSize(e Encoding, typ string, size int) error {
	return Errorf(e, "cannot decode %s from input of size %d: %w", typ, size, ErrInvalidArgument)
}
