// Package codec maps Parquet's CompressionCodec wire values onto the
// decompressor implementations of the compress sub-packages, and exposes
// the single Decompress(codec, dst, src) primitive the column-chunk decoder
// calls. It lives in its own package, separate from
// the root module, so that both the column-chunk decoder and the row-group
// orchestrator can depend on it without a cycle through the root package.
package codec

import (
	"fmt"

	"github.com/arrowparquet/parquet-arrow/compress"
	"github.com/arrowparquet/parquet-arrow/compress/brotli"
	"github.com/arrowparquet/parquet-arrow/compress/gzip"
	"github.com/arrowparquet/parquet-arrow/compress/lz4"
	"github.com/arrowparquet/parquet-arrow/compress/snappy"
	"github.com/arrowparquet/parquet-arrow/compress/uncompressed"
	"github.com/arrowparquet/parquet-arrow/compress/zstd"
	"github.com/arrowparquet/parquet-arrow/format"
)

var (
	uncompressedCodec uncompressed.Codec
	snappyCodec       snappy.Codec
	gzipCodec         = gzip.Codec{Level: gzip.DefaultCompression}
	brotliCodec       = brotli.Codec{Quality: brotli.DefaultQuality, LGWin: brotli.DefaultLGWin}
	zstdCodec         = zstd.Codec{Level: zstd.DefaultLevel, Concurrency: zstd.DefaultConcurrency}
	lz4RawCodec       = lz4.Codec{Level: lz4.DefaultLevel}

	// codecs is indexed by format.CompressionCodec; LZO and legacy LZ4 frame
	// (as opposed to LZ4_RAW) are not plumbed by any example in the retrieval
	// unused by current writers and are left nil, surfacing ErrUnsupportedCodec.
	codecs = [...]compress.Codec{
		format.Uncompressed: &uncompressedCodec,
		format.Snappy:       &snappyCodec,
		format.Gzip:         &gzipCodec,
		format.Brotli:       &brotliCodec,
		format.Zstd:         &zstdCodec,
		format.Lz4Raw:       &lz4RawCodec,
	}
)

// Lookup returns the compress.Codec implementation for c, or a
// format.ErrUnsupportedCodec error.
func Lookup(c format.CompressionCodec) (compress.Codec, error) {
	if c >= 0 && int(c) < len(codecs) && codecs[c] != nil {
		return codecs[c], nil
	}
	return nil, fmt.Errorf("codec: %s: %w", c, format.ErrUnsupportedCodec)
}

// Decompress writes the uncompressed form of src into dst, growing dst as
// needed, and returns it. The Uncompressed codec is special-cased to a
// no-op borrow of src.
func Decompress(c format.CompressionCodec, dst, src []byte) ([]byte, error) {
	if c == format.Uncompressed {
		return src, nil
	}
	codec, err := Lookup(c)
	if err != nil {
		return nil, err
	}
	out, err := codec.Decode(dst, src)
	if err != nil {
		return nil, fmt.Errorf("codec: decompressing %s page: %w", c, err)
	}
	return out, nil
}
