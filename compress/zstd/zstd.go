package zstd

import (
	"io"

	"github.com/arrowparquet/parquet-arrow/compress"
	"github.com/arrowparquet/parquet-arrow/format"
	"github.com/klauspost/compress/zstd"
)

const (
	DefaultLevel       = zstd.SpeedDefault
	DefaultConcurrency = 1
)

type Codec struct {
	Level       zstd.EncoderLevel
	Concurrency int

	compressor   compress.Compressor
	decompressor compress.Decompressor
}

func (c *Codec) String() string {
	return "ZSTD"
}

func (c *Codec) CompressionCodec() format.CompressionCodec {
	return format.Zstd
}

func (c *Codec) Encode(dst, src []byte) ([]byte, error) {
	return c.compressor.Encode(dst, src, c.NewWriter)
}

func (c *Codec) Decode(dst, src []byte) ([]byte, error) {
	return c.decompressor.Decode(dst, src, c.NewReader)
}

func (c *Codec) concurrency() int {
	if c.Concurrency <= 0 {
		return DefaultConcurrency
	}
	return c.Concurrency
}

func (c *Codec) level() zstd.EncoderLevel {
	if c.Level == 0 {
		return DefaultLevel
	}
	return c.Level
}

func (c *Codec) NewReader(r io.Reader) (compress.Reader, error) {
	z, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(c.concurrency()))
	if err != nil {
		return nil, err
	}
	return reader{z}, nil
}

func (c *Codec) NewWriter(w io.Writer) (compress.Writer, error) {
	z, err := zstd.NewWriter(nonNilWriter(w),
		zstd.WithEncoderConcurrency(c.concurrency()),
		zstd.WithEncoderLevel(c.level()),
		zstd.WithZeroFrames(true),
		zstd.WithEncoderCRC(false),
	)
	if err != nil {
		return nil, err
	}
	return writer{z}, nil
}

type reader struct{ *zstd.Decoder }

func (r reader) Close() error { r.Decoder.Close(); return nil }

type writer struct{ *zstd.Encoder }

func (w writer) Close() error             { w.Encoder.Close(); return nil }
func (w writer) Reset(ww io.Writer) error { w.Encoder.Reset(nonNilWriter(ww)); return nil }

func nonNilWriter(w io.Writer) io.Writer {
	if w == nil {
		w = io.Discard
	}
	return w
}
