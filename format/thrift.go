package format

import (
	"bytes"
	"context"
	"fmt"

	"github.com/apache/thrift/lib/go/thrift"
)

// Read methods below decode each struct from the Thrift compact protocol.
// They follow the shape generated Thrift Go code uses: an outer
// ReadStructBegin/ReadFieldBegin loop dispatching on field ID, ignoring
// fields this module does not model via thrift.Skip.

var ctx = context.Background()

func (f *FileMetaData) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return fmt.Errorf("reading FileMetaData: %w", err)
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return fmt.Errorf("reading FileMetaData field: %w", err)
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if f.Version, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 2:
			_, n, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			f.Schema = make([]SchemaElement, n)
			for i := 0; i < n; i++ {
				if err := f.Schema[i].Read(iprot); err != nil {
					return err
				}
			}
			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		case 3:
			if f.NumRows, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		case 4:
			_, n, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			f.RowGroups = make([]RowGroup, n)
			for i := 0; i < n; i++ {
				if err := f.RowGroups[i].Read(iprot); err != nil {
					return err
				}
			}
			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		case 5:
			_, n, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			f.KeyValueMetadata = make([]KeyValue, n)
			for i := 0; i < n; i++ {
				if err := f.KeyValueMetadata[i].Read(iprot); err != nil {
					return err
				}
			}
			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		case 6:
			if f.CreatedBy, err = iprot.ReadString(ctx); err != nil {
				return err
			}
			f.HasCreatedBy = true
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (k *KeyValue) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if k.Key, err = iprot.ReadString(ctx); err != nil {
				return err
			}
		case 2:
			if k.Value, err = iprot.ReadString(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (s *SchemaElement) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.Type, s.HasType = Type(v), true
		case 2:
			if s.TypeLength, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
			s.HasTypeLength = true
		case 3:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.RepetitionType = FieldRepetitionType(v)
		case 4:
			if s.Name, err = iprot.ReadString(ctx); err != nil {
				return err
			}
		case 5:
			if s.NumChildren, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 6:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			s.ConvertedType, s.HasConvertedType = ConvertedType(v), true
		case 7:
			if s.Scale, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
			s.HasScale = true
		case 8:
			if s.Precision, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
			s.HasPrecision = true
		case 9:
			if s.FieldID, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
			s.HasFieldID = true
		case 10:
			s.LogicalType = &LogicalType{}
			if err := s.LogicalType.Read(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

// Read decodes a LogicalType thrift union. Only the field ID identifying
// which variant is set is significant to this module; nested scalar fields
// used by Decimal/Timestamp/Integer annotations are captured when present.
func (l *LogicalType) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			l.Kind = StringLogicalType
			if err := skipEmptyStruct(iprot); err != nil {
				return err
			}
		case 2:
			l.Kind = MapLogicalType
			if err := skipEmptyStruct(iprot); err != nil {
				return err
			}
		case 3:
			l.Kind = ListLogicalType
			if err := skipEmptyStruct(iprot); err != nil {
				return err
			}
		case 4:
			l.Kind = EnumLogicalType
			if err := skipEmptyStruct(iprot); err != nil {
				return err
			}
		case 5:
			l.Kind = DecimalLogicalType
			l.Decimal = &DecimalType{}
			if err := l.Decimal.Read(iprot); err != nil {
				return err
			}
		case 6:
			l.Kind = DateLogicalType
			if err := skipEmptyStruct(iprot); err != nil {
				return err
			}
		case 7:
			l.Kind = TimeLogicalType
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		case 8:
			l.Kind = TimestampLogicalType
			l.Timestamp = &TimestampType{}
			if err := l.Timestamp.Read(iprot); err != nil {
				return err
			}
		case 10:
			l.Kind = IntegerLogicalType
			l.Integer = &IntType{}
			if err := l.Integer.Read(iprot); err != nil {
				return err
			}
		case 11:
			l.Kind = UnknownLogicalType
			if err := skipEmptyStruct(iprot); err != nil {
				return err
			}
		case 12:
			l.Kind = JSONLogicalType
			if err := skipEmptyStruct(iprot); err != nil {
				return err
			}
		case 13:
			l.Kind = BSONLogicalType
			if err := skipEmptyStruct(iprot); err != nil {
				return err
			}
		case 14:
			l.Kind = UUIDLogicalType
			if err := skipEmptyStruct(iprot); err != nil {
				return err
			}
		case 15:
			l.Kind = Float16LogicalType
			if err := skipEmptyStruct(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func skipEmptyStruct(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, _, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		if err := iprot.Skip(ctx, fieldType); err != nil {
			return err
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (d *DecimalType) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if d.Scale, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 2:
			if d.Precision, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (t *TimestampType) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if t.IsAdjustedToUTC, err = iprot.ReadBool(ctx); err != nil {
				return err
			}
		case 2:
			unit, err := readTimeUnit(iprot)
			if err != nil {
				return err
			}
			t.Unit = unit
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

// readTimeUnit decodes the TimeUnit union: a struct with at most one field
// set, whose field ID identifies MILLIS/MICROS/NANOS and whose value is
// always an empty struct.
func readTimeUnit(iprot thrift.TProtocol) (TimeUnit, error) {
	unit := Millis
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return unit, err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return unit, err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			unit = Millis
		case 2:
			unit = Micros
		case 3:
			unit = Nanos
		}
		if err := skipEmptyStruct(iprot); err != nil {
			return unit, err
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return unit, err
		}
	}
	return unit, iprot.ReadStructEnd(ctx)
}

func (i *IntType) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadByte(ctx)
			if err != nil {
				return err
			}
			i.BitWidth = v
		case 2:
			if i.IsSigned, err = iprot.ReadBool(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (rg *RowGroup) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			_, n, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			rg.Columns = make([]ColumnChunk, n)
			for i := 0; i < n; i++ {
				if err := rg.Columns[i].Read(iprot); err != nil {
					return err
				}
			}
			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		case 2:
			if rg.TotalByteSize, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		case 3:
			if rg.NumRows, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		case 4:
			_, n, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			rg.SortingColumns = make([]SortingColumn, n)
			for i := 0; i < n; i++ {
				if err := rg.SortingColumns[i].Read(iprot); err != nil {
					return err
				}
			}
			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (s *SortingColumn) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if s.ColumnIdx, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 2:
			if s.Descending, err = iprot.ReadBool(ctx); err != nil {
				return err
			}
		case 3:
			if s.NullsFirst, err = iprot.ReadBool(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (c *ColumnChunk) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if c.FilePath, err = iprot.ReadString(ctx); err != nil {
				return err
			}
			c.HasFilePath = true
		case 2:
			if c.FileOffset, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		case 3:
			if err := c.MetaData.Read(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (c *ColumnMetaData) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			c.Type = Type(v)
		case 2:
			_, n, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			c.Encoding = make([]Encoding, n)
			for i := 0; i < n; i++ {
				v, err := iprot.ReadI32(ctx)
				if err != nil {
					return err
				}
				c.Encoding[i] = Encoding(v)
			}
			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		case 3:
			_, n, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			c.PathInSchema = make([]string, n)
			for i := 0; i < n; i++ {
				if c.PathInSchema[i], err = iprot.ReadString(ctx); err != nil {
					return err
				}
			}
			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		case 4:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			c.Codec = CompressionCodec(v)
		case 5:
			if c.NumValues, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		case 6:
			if c.TotalUncompressedSize, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		case 7:
			if c.TotalCompressedSize, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		case 8:
			_, n, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			c.KeyValueMetadata = make([]KeyValue, n)
			for i := 0; i < n; i++ {
				if err := c.KeyValueMetadata[i].Read(iprot); err != nil {
					return err
				}
			}
			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		case 9:
			if c.DataPageOffset, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		case 10:
			if c.IndexPageOffset, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		case 11:
			if c.DictionaryPageOffset, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
			c.HasDictionaryPageOffset = true
		case 12:
			if err := c.Statistics.Read(iprot); err != nil {
				return err
			}
		case 13:
			_, n, err := iprot.ReadListBegin(ctx)
			if err != nil {
				return err
			}
			c.EncodingStats = make([]PageEncodingStats, n)
			for i := 0; i < n; i++ {
				if err := c.EncodingStats[i].Read(iprot); err != nil {
					return err
				}
			}
			if err := iprot.ReadListEnd(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (p *PageEncodingStats) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			p.PageType = PageType(v)
		case 2:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			p.Encoding = Encoding(v)
		case 3:
			if p.Count, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (s *Statistics) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if s.Max, err = iprot.ReadBinary(ctx); err != nil {
				return err
			}
		case 2:
			if s.Min, err = iprot.ReadBinary(ctx); err != nil {
				return err
			}
		case 3:
			if s.NullCount, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		case 4:
			if s.DistinctCount, err = iprot.ReadI64(ctx); err != nil {
				return err
			}
		case 5:
			if s.MaxValue, err = iprot.ReadBinary(ctx); err != nil {
				return err
			}
		case 6:
			if s.MinValue, err = iprot.ReadBinary(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (h *PageHeader) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			h.Type = PageType(v)
		case 2:
			if h.UncompressedPageSize, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 3:
			if h.CompressedPageSize, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 4:
			if h.Crc, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
			h.HasCrc = true
		case 5:
			h.DataPageHeader = &DataPageHeader{}
			if err := h.DataPageHeader.Read(iprot); err != nil {
				return err
			}
		case 6:
			if err := h.IndexPageHeaderSkip(iprot); err != nil {
				return err
			}
		case 7:
			h.DictionaryPageHeader = &DictionaryPageHeader{}
			if err := h.DictionaryPageHeader.Read(iprot); err != nil {
				return err
			}
		case 8:
			h.DataPageHeaderV2 = &DataPageHeaderV2{}
			if err := h.DataPageHeaderV2.Read(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

// IndexPageHeaderSkip discards an INDEX_PAGE header; the index page type is
// reserved by the format and never emitted by writers this module targets.
func (h *PageHeader) IndexPageHeaderSkip(iprot thrift.TProtocol) error {
	return skipEmptyStruct(iprot)
}

func (d *DataPageHeader) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if d.NumValues, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 2:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.Encoding = Encoding(v)
		case 3:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.DefinitionLevelEncoding = Encoding(v)
		case 4:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.RepetitionLevelEncoding = Encoding(v)
		case 5:
			if err := d.Statistics.Read(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (d *DataPageHeaderV2) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if d.NumValues, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 2:
			if d.NumNulls, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 3:
			if d.NumRows, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 4:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.Encoding = Encoding(v)
		case 5:
			if d.DefinitionLevelsByteLength, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 6:
			if d.RepetitionLevelsByteLength, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 7:
			if d.IsCompressed, err = iprot.ReadBool(ctx); err != nil {
				return err
			}
			d.HasIsCompressed = true
		case 8:
			if err := d.Statistics.Read(iprot); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

func (d *DictionaryPageHeader) Read(iprot thrift.TProtocol) error {
	if _, err := iprot.ReadStructBegin(ctx); err != nil {
		return err
	}
	for {
		_, fieldType, fieldID, err := iprot.ReadFieldBegin(ctx)
		if err != nil {
			return err
		}
		if fieldType == thrift.STOP {
			break
		}
		switch fieldID {
		case 1:
			if d.NumValues, err = iprot.ReadI32(ctx); err != nil {
				return err
			}
		case 2:
			v, err := iprot.ReadI32(ctx)
			if err != nil {
				return err
			}
			d.Encoding = Encoding(v)
		case 3:
			if d.IsSorted, err = iprot.ReadBool(ctx); err != nil {
				return err
			}
		default:
			if err := iprot.Skip(ctx, fieldType); err != nil {
				return err
			}
		}
		if err := iprot.ReadFieldEnd(ctx); err != nil {
			return err
		}
	}
	return iprot.ReadStructEnd(ctx)
}

// ReadPageHeader decodes a single PageHeader from the front of buf,
// returning the header and the number of bytes it consumed, which is how
// the column chunk decoder finds the start of the page payload. The
// transport is a memory buffer rather than a stream: the compact protocol
// reads exactly the bytes it needs from it, so the unread remainder gives
// an exact consumed-byte count (a buffered stream transport would read
// ahead and lose it).
func ReadPageHeader(buf []byte) (*PageHeader, int, error) {
	transport := &thrift.TMemoryBuffer{Buffer: bytes.NewBuffer(buf)}
	protocol := thrift.NewTCompactProtocolConf(transport, nil)
	h := new(PageHeader)
	if err := h.Read(protocol); err != nil {
		return nil, 0, fmt.Errorf("reading page header: %w", err)
	}
	return h, len(buf) - transport.Len(), nil
}

// ReadFileMetaData decodes the Thrift-encoded file footer held in its
// entirety in footer, the bytes immediately preceding the trailing
// length+magic trailer.
func ReadFileMetaData(footer []byte) (*FileMetaData, error) {
	transport := &thrift.TMemoryBuffer{Buffer: bytes.NewBuffer(footer)}
	protocol := thrift.NewTCompactProtocolConf(transport, nil)
	m := new(FileMetaData)
	if err := m.Read(protocol); err != nil {
		return nil, fmt.Errorf("reading file metadata: %w", err)
	}
	return m, nil
}
