package arrowtype_test

import (
	"testing"

	"github.com/apache/arrow/go/v7/arrow"

	"github.com/arrowparquet/parquet-arrow/arrowtype"
	"github.com/arrowparquet/parquet-arrow/format"
)

func TestFromSchemaElement(t *testing.T) {
	tests := []struct {
		scenario string
		element  format.SchemaElement
		want     arrow.DataType
	}{
		{
			scenario: "bare int32",
			element:  format.SchemaElement{Type: format.Int32, HasType: true},
			want:     arrow.PrimitiveTypes.Int32,
		},
		{
			scenario: "bare byte array",
			element:  format.SchemaElement{Type: format.ByteArray, HasType: true},
			want:     arrow.BinaryTypes.Binary,
		},
		{
			scenario: "utf8 converted type",
			element: format.SchemaElement{
				Type: format.ByteArray, HasType: true,
				ConvertedType: format.UTF8, HasConvertedType: true,
			},
			want: arrow.BinaryTypes.String,
		},
		{
			scenario: "string logical type wins over converted",
			element: format.SchemaElement{
				Type: format.ByteArray, HasType: true,
				ConvertedType: format.Bson, HasConvertedType: true,
				LogicalType: &format.LogicalType{Kind: format.StringLogicalType},
			},
			want: arrow.BinaryTypes.String,
		},
		{
			scenario: "uint8 annotation",
			element: format.SchemaElement{
				Type: format.Int32, HasType: true,
				LogicalType: &format.LogicalType{
					Kind:    format.IntegerLogicalType,
					Integer: &format.IntType{BitWidth: 8, IsSigned: false},
				},
			},
			want: arrow.PrimitiveTypes.Uint8,
		},
		{
			scenario: "timestamp micros utc",
			element: format.SchemaElement{
				Type: format.Int64, HasType: true,
				LogicalType: &format.LogicalType{
					Kind:      format.TimestampLogicalType,
					Timestamp: &format.TimestampType{IsAdjustedToUTC: true, Unit: format.Micros},
				},
			},
			want: &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"},
		},
		{
			scenario: "decimal fixed len byte array",
			element: format.SchemaElement{
				Type: format.FixedLenByteArray, HasType: true, TypeLength: 16,
				LogicalType: &format.LogicalType{
					Kind:    format.DecimalLogicalType,
					Decimal: &format.DecimalType{Scale: 2, Precision: 38},
				},
			},
			want: &arrow.FixedSizeBinaryType{ByteWidth: 16},
		},
		{
			scenario: "uuid",
			element: format.SchemaElement{
				Type: format.FixedLenByteArray, HasType: true, TypeLength: 16,
				LogicalType: &format.LogicalType{Kind: format.UUIDLogicalType},
			},
			want: &arrow.FixedSizeBinaryType{ByteWidth: 16},
		},
		{
			scenario: "int96 timestamp",
			element:  format.SchemaElement{Type: format.Int96, HasType: true},
			want:     &arrow.TimestampType{Unit: arrow.Nanosecond},
		},
	}

	for _, tc := range tests {
		t.Run(tc.scenario, func(t *testing.T) {
			got, err := arrowtype.FromSchemaElement(&tc.element)
			if err != nil {
				t.Fatal(err)
			}
			if !arrow.TypeEqual(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
