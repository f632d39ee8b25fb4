// Package buildstate accumulates decoded column values into an Arrow array
// builder, scattering dense (non-null) decoded values across the null
// positions recorded in a definition-level stream so that the resulting
// array is dense over the page's physical positions: row_count positions
// for a non-repeated column, num_values positions for a repeated one. The
// Arrow builder owns the validity bitmap, buffer growth and alignment.
package buildstate

import (
	"fmt"
	"math"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/memory"

	"github.com/arrowparquet/parquet-arrow/deprecated"
	"github.com/arrowparquet/parquet-arrow/format"
)

// State accumulates one leaf column's values into an Arrow array builder. It
// is reused across the pages of a single column chunk, then finalized once
// per row group via NewArray.
type State struct {
	typ     format.Type
	builder array.Builder
}

// New creates a build state backed by an Arrow builder for dtype, using mem
// for all allocations. The builder is released when NewArray is called (or
// must be released explicitly via Release if the state is discarded).
func New(mem memory.Allocator, typ format.Type, dtype arrow.DataType) *State {
	return &State{typ: typ, builder: array.NewBuilder(mem, dtype)}
}

// Release discards the builder without producing an array, used when a
// column chunk decode fails partway through.
func (s *State) Release() { s.builder.Release() }

// Reserve hints the number of additional positions that will be appended
// (null or non-null), used to size the next growth of the builder's
// underlying buffers in one shot.
func (s *State) Reserve(n int) { s.builder.Reserve(n) }

// scatter walks defLevels (one entry per physical position in the page),
// calling appendValue for every position whose level equals maxDef and
// appendNull for every other position. When defLevels is nil the column is
// required (its max definition level is 0) and every position holds a value.
func scatter(defLevels []int32, maxDef int32, n int, appendValue func(), appendNull func()) {
	if defLevels == nil {
		for i := 0; i < n; i++ {
			appendValue()
		}
		return
	}
	for _, d := range defLevels {
		if d == maxDef {
			appendValue()
		} else {
			appendNull()
		}
	}
}

// AppendBoolean scatters n dense, LSB-first bit-packed boolean values (as
// decoded by PLAIN or value-level RLE) across defLevels.
func (s *State) AppendBoolean(data []byte, n int, defLevels []int32, maxDef int32) error {
	b, ok := s.builder.(*array.BooleanBuilder)
	if !ok {
		return typeMismatch(s)
	}
	if err := checkValueCount(defLevels, maxDef, 8*len(data)); err != nil {
		return err
	}
	if defLevels == nil && n > 8*len(data) {
		return fmt.Errorf("buildstate: %d boolean values exceed the %d decoded bytes", n, len(data))
	}
	i := 0
	scatter(defLevels, maxDef, n,
		func() {
			b.Append((data[i/8]>>(uint(i)%8))&1 != 0)
			i++
		},
		b.AppendNull,
	)
	return nil
}

// AppendBooleanValues scatters n dense boolean values already unpacked as
// []bool (the shape the RLE-coded value encoding decodes to) across
// defLevels.
func (s *State) AppendBooleanValues(values []bool, defLevels []int32, maxDef int32) error {
	b, ok := s.builder.(*array.BooleanBuilder)
	if !ok {
		return typeMismatch(s)
	}
	if err := checkValueCount(defLevels, maxDef, len(values)); err != nil {
		return err
	}
	i := 0
	scatter(defLevels, maxDef, len(values),
		func() { b.Append(values[i]); i++ },
		b.AppendNull,
	)
	return nil
}

// AppendInt32 scatters dense INT32 values across defLevels. The builder may
// be any of the Arrow types an INT32 column surfaces as: the full-width
// signed/unsigned integers, the narrowed widths declared by an integer
// annotation (checked, since a stored value outside the annotated range is
// corrupt), or the date/time types whose storage is a 32-bit count.
func (s *State) AppendInt32(values []int32, defLevels []int32, maxDef int32) error {
	if err := checkValueCount(defLevels, maxDef, len(values)); err != nil {
		return err
	}
	switch b := s.builder.(type) {
	case *array.Int32Builder:
		if defLevels == nil {
			b.AppendValues(values, nil)
			return nil
		}
		i := 0
		scatter(defLevels, maxDef, len(values),
			func() { b.Append(values[i]); i++ },
			b.AppendNull,
		)
		return nil
	case *array.Uint32Builder:
		return scatterConvert(values, defLevels, maxDef, b.AppendNull, func(v int32) error {
			b.Append(uint32(v))
			return nil
		})
	case *array.Int8Builder:
		return scatterConvert(values, defLevels, maxDef, b.AppendNull, func(v int32) error {
			if v < math.MinInt8 || v > math.MaxInt8 {
				return narrowingOverflow(int64(v), "INT8")
			}
			b.Append(int8(v))
			return nil
		})
	case *array.Int16Builder:
		return scatterConvert(values, defLevels, maxDef, b.AppendNull, func(v int32) error {
			if v < math.MinInt16 || v > math.MaxInt16 {
				return narrowingOverflow(int64(v), "INT16")
			}
			b.Append(int16(v))
			return nil
		})
	case *array.Uint8Builder:
		return scatterConvert(values, defLevels, maxDef, b.AppendNull, func(v int32) error {
			if v < 0 || v > math.MaxUint8 {
				return narrowingOverflow(int64(v), "UINT8")
			}
			b.Append(uint8(v))
			return nil
		})
	case *array.Uint16Builder:
		return scatterConvert(values, defLevels, maxDef, b.AppendNull, func(v int32) error {
			if v < 0 || v > math.MaxUint16 {
				return narrowingOverflow(int64(v), "UINT16")
			}
			b.Append(uint16(v))
			return nil
		})
	case *array.Date32Builder:
		return scatterConvert(values, defLevels, maxDef, b.AppendNull, func(v int32) error {
			b.Append(arrow.Date32(v))
			return nil
		})
	case *array.Time32Builder:
		return scatterConvert(values, defLevels, maxDef, b.AppendNull, func(v int32) error {
			b.Append(arrow.Time32(v))
			return nil
		})
	default:
		return typeMismatch(s)
	}
}

// AppendInt64 scatters dense INT64 values across defLevels, into the 64-bit
// integer, timestamp or time builders an INT64 column surfaces as.
func (s *State) AppendInt64(values []int64, defLevels []int32, maxDef int32) error {
	if err := checkValueCount(defLevels, maxDef, len(values)); err != nil {
		return err
	}
	switch b := s.builder.(type) {
	case *array.Int64Builder:
		if defLevels == nil {
			b.AppendValues(values, nil)
			return nil
		}
		i := 0
		scatter(defLevels, maxDef, len(values),
			func() { b.Append(values[i]); i++ },
			b.AppendNull,
		)
		return nil
	case *array.Uint64Builder:
		i := 0
		scatter(defLevels, maxDef, len(values),
			func() { b.Append(uint64(values[i])); i++ },
			b.AppendNull,
		)
		return nil
	case *array.TimestampBuilder:
		i := 0
		scatter(defLevels, maxDef, len(values),
			func() { b.Append(arrow.Timestamp(values[i])); i++ },
			b.AppendNull,
		)
		return nil
	case *array.Time64Builder:
		i := 0
		scatter(defLevels, maxDef, len(values),
			func() { b.Append(arrow.Time64(values[i])); i++ },
			b.AppendNull,
		)
		return nil
	default:
		return typeMismatch(s)
	}
}

// scatterConvert is scatter for the converted INT32 paths: convert may
// reject a value whose narrowed representation would not round-trip.
func scatterConvert(values []int32, defLevels []int32, maxDef int32, appendNull func(), convert func(int32) error) error {
	var err error
	i := 0
	scatter(defLevels, maxDef, len(values),
		func() {
			if err == nil {
				err = convert(values[i])
			}
			i++
		},
		appendNull,
	)
	return err
}

func narrowingOverflow(v int64, typ string) error {
	return fmt.Errorf("buildstate: value %d overflows the %s range its column is annotated with", v, typ)
}

// AppendFloat32 scatters n dense FLOAT values across defLevels.
func (s *State) AppendFloat32(values []float32, defLevels []int32, maxDef int32) error {
	if err := checkValueCount(defLevels, maxDef, len(values)); err != nil {
		return err
	}
	b, ok := s.builder.(*array.Float32Builder)
	if !ok {
		return typeMismatch(s)
	}
	if defLevels == nil {
		b.AppendValues(values, nil)
		return nil
	}
	i := 0
	scatter(defLevels, maxDef, len(values),
		func() { b.Append(values[i]); i++ },
		b.AppendNull,
	)
	return nil
}

// AppendFloat64 scatters n dense DOUBLE values across defLevels.
func (s *State) AppendFloat64(values []float64, defLevels []int32, maxDef int32) error {
	if err := checkValueCount(defLevels, maxDef, len(values)); err != nil {
		return err
	}
	b, ok := s.builder.(*array.Float64Builder)
	if !ok {
		return typeMismatch(s)
	}
	if defLevels == nil {
		b.AppendValues(values, nil)
		return nil
	}
	i := 0
	scatter(defLevels, maxDef, len(values),
		func() { b.Append(values[i]); i++ },
		b.AppendNull,
	)
	return nil
}

// AppendInt96AsTimestamp scatters dense INT96 values, interpreted as
// nanosecond timestamps (8 bytes of nanoseconds-within-day plus a 4-byte
// Julian day number), across defLevels.
func (s *State) AppendInt96AsTimestamp(values []deprecated.Int96, defLevels []int32, maxDef int32) error {
	b, ok := s.builder.(*array.TimestampBuilder)
	if !ok {
		return typeMismatch(s)
	}
	if err := checkValueCount(defLevels, maxDef, len(values)); err != nil {
		return err
	}
	const julianUnixEpochDay = 2440588
	const nanosPerDay = int64(24 * 60 * 60 * 1e9)
	toTimestamp := func(v deprecated.Int96) arrow.Timestamp {
		nanosOfDay := int64(v[0]) | int64(v[1])<<32
		julianDay := int64(v[2])
		return arrow.Timestamp((julianDay-julianUnixEpochDay)*nanosPerDay + nanosOfDay)
	}
	i := 0
	scatter(defLevels, maxDef, len(values),
		func() { b.Append(toTimestamp(values[i])); i++ },
		b.AppendNull,
	)
	return nil
}

// AppendByteArray scatters n dense variable-length values, fetched through
// get(i) for i in [0,n), across defLevels.
func (s *State) AppendByteArray(get func(i int) []byte, n int, defLevels []int32, maxDef int32) error {
	if err := checkValueCount(defLevels, maxDef, n); err != nil {
		return err
	}
	i := 0
	switch b := s.builder.(type) {
	case *array.BinaryBuilder:
		scatter(defLevels, maxDef, n,
			func() { b.Append(get(i)); i++ },
			b.AppendNull,
		)
	case *array.StringBuilder:
		scatter(defLevels, maxDef, n,
			func() { b.Append(string(get(i))); i++ },
			b.AppendNull,
		)
	default:
		return typeMismatch(s)
	}
	return nil
}

// AppendFixedLenByteArray scatters n dense size-byte values across
// defLevels.
func (s *State) AppendFixedLenByteArray(data []byte, size, n int, defLevels []int32, maxDef int32) error {
	b, ok := s.builder.(*array.FixedSizeBinaryBuilder)
	if !ok {
		return typeMismatch(s)
	}
	if size <= 0 || n*size > len(data) {
		return fmt.Errorf("buildstate: %d values of %d bytes exceed the %d decoded bytes", n, size, len(data))
	}
	if err := checkValueCount(defLevels, maxDef, n); err != nil {
		return err
	}
	i := 0
	scatter(defLevels, maxDef, n,
		func() { b.Append(data[i*size : (i+1)*size]); i++ },
		b.AppendNull,
	)
	return nil
}

// AppendNulls appends n consecutive null positions, used when a page holds
// no non-null values at all (every position's definition level is below
// maxDef) and so no value decode runs.
func (s *State) AppendNulls(n int) {
	for i := 0; i < n; i++ {
		s.builder.AppendNull()
	}
}

// NewArray finalizes the builder into an immutable Arrow array, releasing
// the builder's internal buffers to the returned array.
func (s *State) NewArray() arrow.Array { return s.builder.NewArray() }

// Len returns the number of positions (null or non-null) appended so far.
func (s *State) Len() int { return s.builder.Len() }

// checkValueCount verifies the dense value buffer holds at least as many
// values as defLevels marks present, so a page whose payload was truncated
// or lies about its counts fails cleanly instead of indexing past the
// decoded values.
func checkValueCount(defLevels []int32, maxDef int32, have int) error {
	if defLevels == nil {
		return nil
	}
	need := 0
	for _, d := range defLevels {
		if d == maxDef {
			need++
		}
	}
	if need > have {
		return fmt.Errorf("buildstate: definition levels mark %d values present but only %d were decoded", need, have)
	}
	return nil
}

func typeMismatch(s *State) error {
	return fmt.Errorf("buildstate: value kind does not match builder %T for physical type %s", s.builder, s.typ)
}
