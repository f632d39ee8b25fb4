package format

import "errors"

// Error sentinels surfaced by the column-chunk decode pipeline. Call
// sites wrap these with fmt.Errorf("...: %w", ...) to attach context;
// callers are expected to use errors.Is against these values rather than
// comparing decoded messages.
var (
	// ErrTruncatedFile reports a file shorter than the minimum valid size,
	// a missing leading/trailing "PAR1" magic, or a declared length that
	// exceeds the bytes actually available.
	ErrTruncatedFile = errors.New("parquet: truncated file")

	// ErrInvalidFooter reports a footer length that is non-positive or
	// larger than the space available before the trailing magic.
	ErrInvalidFooter = errors.New("parquet: invalid footer")

	// ErrParquetFormat reports a violated decode invariant: a malformed
	// page header, dictionary, level stream, or value stream.
	ErrParquetFormat = errors.New("parquet: malformed input")

	// ErrUnsupportedEncoding reports an (encoding, physical type)
	// combination this module does not implement.
	ErrUnsupportedEncoding = errors.New("parquet: unsupported encoding")

	// ErrMissingDictionary reports a dictionary-encoded data page with no
	// preceding dictionary page in the same column chunk.
	ErrMissingDictionary = errors.New("parquet: missing dictionary page")

	// ErrUnsupportedCodec reports a compression codec not plumbed in the
	// decompressor.
	ErrUnsupportedCodec = errors.New("parquet: unsupported compression codec")

	// ErrArgumentOutOfRange reports a row-group index outside
	// [0, num_row_groups).
	ErrArgumentOutOfRange = errors.New("parquet: argument out of range")

	// ErrColumnNotFound reports a requested dotted column path absent from
	// the schema.
	ErrColumnNotFound = errors.New("parquet: column not found")
)
