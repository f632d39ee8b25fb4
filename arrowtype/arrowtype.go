// Package arrowtype maps Parquet schema elements to the Arrow data types
// used to represent their decoded column values.
package arrowtype

import (
	"fmt"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/arrowparquet/parquet-arrow/format"
	"github.com/arrowparquet/parquet-arrow/schema"
)

// FromSchemaElement derives the Arrow leaf type for a Parquet schema element,
// preferring the modern LogicalType annotation, falling back to the legacy
// ConvertedType, and finally to the bare physical type.
//
// Nested (group) elements are handled by the assemble package, which builds
// struct/list/map arrow.DataType values around the leaf types this function
// returns.
func FromSchemaElement(s *format.SchemaElement) (arrow.DataType, error) {
	if s.LogicalType != nil {
		if t, ok := fromLogicalType(s); ok {
			return t, nil
		}
	}
	if s.IsSetConvertedType() {
		if t, ok := fromConvertedType(s); ok {
			return t, nil
		}
	}
	return fromPhysicalType(s)
}

func fromLogicalType(s *format.SchemaElement) (arrow.DataType, bool) {
	lt := s.LogicalType
	switch lt.Kind {
	case format.StringLogicalType, format.EnumLogicalType, format.JSONLogicalType:
		return arrow.BinaryTypes.String, true
	case format.BSONLogicalType:
		return arrow.BinaryTypes.Binary, true
	case format.UUIDLogicalType:
		return &arrow.FixedSizeBinaryType{ByteWidth: 16}, true
	case format.Float16LogicalType:
		// FLOAT16 is stored as a 2-byte FIXED_LEN_BYTE_ARRAY; Arrow has no
		// native float16 array type in this module's target version, so it
		// is surfaced as fixed-size binary, matching the physical encoding.
		return &arrow.FixedSizeBinaryType{ByteWidth: 2}, true
	case format.DecimalLogicalType:
		// Decimal values are surfaced as fixed-size binary: this module does
		// not interpret the scaled integer as a numeric decimal.
		if s.Type == format.FixedLenByteArray {
			return &arrow.FixedSizeBinaryType{ByteWidth: int(s.TypeLength)}, true
		}
		return arrow.BinaryTypes.Binary, true
	case format.DateLogicalType:
		return arrow.FixedWidthTypes.Date32, true
	case format.TimeLogicalType:
		return arrow.FixedWidthTypes.Time64ns, true
	case format.TimestampLogicalType:
		unit := arrow.Millisecond
		switch lt.Timestamp.Unit {
		case format.Micros:
			unit = arrow.Microsecond
		case format.Nanos:
			unit = arrow.Nanosecond
		}
		if lt.Timestamp.IsAdjustedToUTC {
			return &arrow.TimestampType{Unit: unit, TimeZone: "UTC"}, true
		}
		return &arrow.TimestampType{Unit: unit}, true
	case format.IntegerLogicalType:
		return fromIntegerAnnotation(lt.Integer), true
	default:
		return nil, false
	}
}

func fromIntegerAnnotation(i *format.IntType) arrow.DataType {
	switch {
	case i.IsSigned && i.BitWidth == 8:
		return arrow.PrimitiveTypes.Int8
	case i.IsSigned && i.BitWidth == 16:
		return arrow.PrimitiveTypes.Int16
	case i.IsSigned && i.BitWidth == 32:
		return arrow.PrimitiveTypes.Int32
	case i.IsSigned && i.BitWidth == 64:
		return arrow.PrimitiveTypes.Int64
	case !i.IsSigned && i.BitWidth == 8:
		return arrow.PrimitiveTypes.Uint8
	case !i.IsSigned && i.BitWidth == 16:
		return arrow.PrimitiveTypes.Uint16
	case !i.IsSigned && i.BitWidth == 32:
		return arrow.PrimitiveTypes.Uint32
	case !i.IsSigned && i.BitWidth == 64:
		return arrow.PrimitiveTypes.Uint64
	default:
		return arrow.PrimitiveTypes.Int64
	}
}

func fromConvertedType(s *format.SchemaElement) (arrow.DataType, bool) {
	switch s.ConvertedType {
	case format.UTF8, format.Enum, format.Json:
		return arrow.BinaryTypes.String, true
	case format.Bson:
		return arrow.BinaryTypes.Binary, true
	case format.Date:
		return arrow.FixedWidthTypes.Date32, true
	case format.TimeMillis:
		return arrow.FixedWidthTypes.Time32ms, true
	case format.TimeMicros:
		return arrow.FixedWidthTypes.Time64us, true
	case format.TimestampMillis:
		return &arrow.TimestampType{Unit: arrow.Millisecond}, true
	case format.TimestampMicros:
		return &arrow.TimestampType{Unit: arrow.Microsecond}, true
	case format.Uint8:
		return arrow.PrimitiveTypes.Uint8, true
	case format.Uint16:
		return arrow.PrimitiveTypes.Uint16, true
	case format.Uint32:
		return arrow.PrimitiveTypes.Uint32, true
	case format.Uint64:
		return arrow.PrimitiveTypes.Uint64, true
	case format.Int8:
		return arrow.PrimitiveTypes.Int8, true
	case format.Int16:
		return arrow.PrimitiveTypes.Int16, true
	case format.Decimal:
		if s.Type == format.FixedLenByteArray {
			return &arrow.FixedSizeBinaryType{ByteWidth: int(s.TypeLength)}, true
		}
		return arrow.BinaryTypes.Binary, true
	default:
		return nil, false
	}
}

func fromPhysicalType(s *format.SchemaElement) (arrow.DataType, error) {
	switch s.Type {
	case format.Boolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case format.Int32:
		return arrow.PrimitiveTypes.Int32, nil
	case format.Int64:
		return arrow.PrimitiveTypes.Int64, nil
	case format.Int96:
		// Deprecated INT96 timestamps are surfaced as nanosecond timestamps;
		// the 12-byte layout (8-byte time-of-day nanos + 4-byte Julian day)
		// is unpacked in the column-chunk decode path.
		return &arrow.TimestampType{Unit: arrow.Nanosecond}, nil
	case format.Float:
		return arrow.PrimitiveTypes.Float32, nil
	case format.Double:
		return arrow.PrimitiveTypes.Float64, nil
	case format.ByteArray:
		return arrow.BinaryTypes.Binary, nil
	case format.FixedLenByteArray:
		return &arrow.FixedSizeBinaryType{ByteWidth: int(s.TypeLength)}, nil
	default:
		return nil, fmt.Errorf("arrowtype: unsupported physical type %s", s.Type)
	}
}

// FromNode derives the Arrow leaf type for a schema leaf node, the same way
// FromSchemaElement does for the raw footer element it was built from.
func FromNode(n *schema.Node) (arrow.DataType, error) {
	return FromSchemaElement(&format.SchemaElement{
		Type:             n.PhysicalType,
		TypeLength:       n.TypeLength,
		RepetitionType:   n.RepetitionType,
		Name:             n.Name,
		ConvertedType:    n.ConvertedType,
		Scale:            n.Scale,
		Precision:        n.Precision,
		FieldID:          n.FieldID,
		LogicalType:      n.LogicalType,
		HasType:          true,
		HasConvertedType: n.HasConverted,
	})
}

// Nullable reports whether a leaf column's Arrow field should allow nulls,
// derived from the schema element's repetition type: REQUIRED columns are
// non-nullable only when they are not beneath any optional or repeated
// ancestor, which the caller (assemble) is responsible for accounting for.
func Nullable(s *format.SchemaElement) bool {
	return s.RepetitionType == format.Optional
}
