// Package format implements the subset of the Parquet Thrift metadata model
// needed to decode a file footer, column chunk metadata, and page headers.
//
// https://github.com/apache/parquet-format/blob/master/src/main/thrift/parquet.thrift
package format

import "sort"

// Type is the physical storage type of a column, as declared in the schema.
type Type int32

const (
	Boolean Type = iota
	Int32
	Int64
	Int96
	Float
	Double
	ByteArray
	FixedLenByteArray
)

func (t Type) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Int32:
		return "INT32"
	case Int64:
		return "INT64"
	case Int96:
		return "INT96"
	case Float:
		return "FLOAT"
	case Double:
		return "DOUBLE"
	case ByteArray:
		return "BYTE_ARRAY"
	case FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return "Type(?)"
	}
}

// FieldRepetitionType declares whether a schema element is required,
// optional, or repeated.
type FieldRepetitionType int32

const (
	Required FieldRepetitionType = iota
	Optional
	Repeated
)

func (r FieldRepetitionType) String() string {
	switch r {
	case Required:
		return "REQUIRED"
	case Optional:
		return "OPTIONAL"
	case Repeated:
		return "REPEATED"
	default:
		return "FieldRepetitionType(?)"
	}
}

// Encoding identifies how the values of a column chunk page are encoded.
type Encoding int32

const (
	Plain Encoding = iota
	// GroupVarInt is reserved and unused by modern writers.
	GroupVarInt
	PlainDictionary
	RLE
	BitPacked // deprecated
	DeltaBinaryPacked
	DeltaLengthByteArray
	DeltaByteArray
	RLEDictionary
	ByteStreamSplit
)

func (e Encoding) String() string {
	switch e {
	case Plain:
		return "PLAIN"
	case PlainDictionary:
		return "PLAIN_DICTIONARY"
	case RLE:
		return "RLE"
	case BitPacked:
		return "BIT_PACKED"
	case DeltaBinaryPacked:
		return "DELTA_BINARY_PACKED"
	case DeltaLengthByteArray:
		return "DELTA_LENGTH_BYTE_ARRAY"
	case DeltaByteArray:
		return "DELTA_BYTE_ARRAY"
	case RLEDictionary:
		return "RLE_DICTIONARY"
	case ByteStreamSplit:
		return "BYTE_STREAM_SPLIT"
	default:
		return "Encoding(?)"
	}
}

// CompressionCodec identifies how column chunk pages are compressed on disk.
type CompressionCodec int32

const (
	Uncompressed CompressionCodec = iota
	Snappy
	Gzip
	LZO
	Brotli
	Lz4
	Zstd
	Lz4Raw
)

func (c CompressionCodec) String() string {
	switch c {
	case Uncompressed:
		return "UNCOMPRESSED"
	case Snappy:
		return "SNAPPY"
	case Gzip:
		return "GZIP"
	case LZO:
		return "LZO"
	case Brotli:
		return "BROTLI"
	case Lz4:
		return "LZ4"
	case Zstd:
		return "ZSTD"
	case Lz4Raw:
		return "LZ4_RAW"
	default:
		return "CompressionCodec(?)"
	}
}

// PageType identifies the kind of page a PageHeader introduces.
type PageType int32

const (
	DataPage PageType = iota
	IndexPage
	DictionaryPage
	DataPageV2
)

func (p PageType) String() string {
	switch p {
	case DataPage:
		return "DATA_PAGE"
	case IndexPage:
		return "INDEX_PAGE"
	case DictionaryPage:
		return "DICTIONARY_PAGE"
	case DataPageV2:
		return "DATA_PAGE_V2"
	default:
		return "PageType(?)"
	}
}

// ConvertedType is the legacy (pre-LogicalType) annotation of a schema
// element's semantic type.
type ConvertedType int32

const (
	UTF8 ConvertedType = iota
	Map
	MapKeyValue
	List
	Enum
	Decimal
	Date
	TimeMillis
	TimeMicros
	TimestampMillis
	TimestampMicros
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32Converted
	Int64Converted
	Json
	Bson
	Interval
)

// KeyValue is a single entry of the file's free-form key/value metadata.
type KeyValue struct {
	Key   string
	Value string
}

// SortKeyValueMetadata sorts a slice of KeyValue entries by key then value,
// used to produce deterministic output when comparing metadata.
func SortKeyValueMetadata(kv []KeyValue) {
	sort.Slice(kv, func(i, j int) bool {
		switch {
		case kv[i].Key < kv[j].Key:
			return true
		case kv[i].Key > kv[j].Key:
			return false
		default:
			return kv[i].Value < kv[j].Value
		}
	})
}

// Statistics holds the optional min/max/null/distinct statistics recorded
// for a column chunk or page.
type Statistics struct {
	Max           []byte
	Min           []byte
	NullCount     int64
	DistinctCount int64
	MaxValue      []byte
	MinValue      []byte
}

// SchemaElement is one node (leaf or group) of the flattened, depth-first
// schema tree stored in the file footer.
type SchemaElement struct {
	Type           Type
	TypeLength     int32
	RepetitionType FieldRepetitionType
	Name           string
	NumChildren    int32
	ConvertedType  ConvertedType
	Scale          int32
	Precision      int32
	FieldID        int32
	LogicalType    *LogicalType

	HasType          bool
	HasTypeLength    bool
	HasConvertedType bool
	HasScale         bool
	HasPrecision     bool
	HasFieldID       bool
}

func (s *SchemaElement) IsSetType() bool          { return s.HasType }
func (s *SchemaElement) IsSetTypeLength() bool    { return s.HasTypeLength }
func (s *SchemaElement) IsSetConvertedType() bool { return s.HasConvertedType }
func (s *SchemaElement) IsSetScale() bool         { return s.HasScale }
func (s *SchemaElement) IsSetPrecision() bool     { return s.HasPrecision }
func (s *SchemaElement) IsSetFieldID() bool       { return s.HasFieldID }

// LogicalType is the modern, extensible replacement for ConvertedType. Only
// the variants this module needs to distinguish are represented.
type LogicalType struct {
	Kind      LogicalTypeKind
	Decimal   *DecimalType
	Timestamp *TimestampType
	Integer   *IntType
}

type LogicalTypeKind int

const (
	UnknownLogicalType LogicalTypeKind = iota
	StringLogicalType
	MapLogicalType
	ListLogicalType
	EnumLogicalType
	DecimalLogicalType
	DateLogicalType
	TimeLogicalType
	TimestampLogicalType
	IntegerLogicalType
	JSONLogicalType
	BSONLogicalType
	UUIDLogicalType
	Float16LogicalType
)

type DecimalType struct {
	Scale     int32
	Precision int32
}

type TimestampType struct {
	IsAdjustedToUTC bool
	Unit            TimeUnit
}

type TimeUnit int

const (
	Millis TimeUnit = iota
	Micros
	Nanos
)

type IntType struct {
	BitWidth int8
	IsSigned bool
}

// DataPageHeader describes a DATA_PAGE (v1) page: levels and values are all
// RLE/bit-packed or plain-encoded and the whole page is optionally
// compressed as a unit.
type DataPageHeader struct {
	NumValues               int32
	Encoding                Encoding
	DefinitionLevelEncoding Encoding
	RepetitionLevelEncoding Encoding
	Statistics              Statistics
}

// DataPageHeaderV2 describes a DATA_PAGE_V2 page: levels are always
// RLE/bit-packed and stored uncompressed ahead of the (possibly compressed)
// value stream.
type DataPageHeaderV2 struct {
	NumValues                  int32
	NumNulls                   int32
	NumRows                    int32
	Encoding                   Encoding
	DefinitionLevelsByteLength int32
	RepetitionLevelsByteLength int32
	IsCompressed               bool
	Statistics                 Statistics

	HasIsCompressed bool
}

// IsCompressedOrDefault returns whether the page body is compressed,
// defaulting to true per the Parquet format spec when the field is absent.
func (h *DataPageHeaderV2) IsCompressedOrDefault() bool {
	if !h.HasIsCompressed {
		return true
	}
	return h.IsCompressed
}

// DictionaryPageHeader describes a DICTIONARY_PAGE page: a flat PLAIN-encoded
// list of distinct values referenced by later data pages through dictionary
// indexes.
type DictionaryPageHeader struct {
	NumValues int32
	Encoding  Encoding
	IsSorted  bool
}

// PageHeader is the thrift envelope preceding every page in a column chunk.
type PageHeader struct {
	Type                 PageType
	UncompressedPageSize int32
	CompressedPageSize   int32
	Crc                  int32
	DataPageHeader       *DataPageHeader
	DictionaryPageHeader *DictionaryPageHeader
	DataPageHeaderV2     *DataPageHeaderV2

	HasCrc bool
}

func (h *PageHeader) IsSetCrc() bool { return h.HasCrc }

// PageEncodingStats records, per page type, how many pages used a given
// encoding — informational only, not required to decode the file.
type PageEncodingStats struct {
	PageType PageType
	Encoding Encoding
	Count    int32
}

// ColumnMetaData describes the encoding, compression, and on-disk layout of
// a single column chunk.
type ColumnMetaData struct {
	Type                  Type
	Encoding              []Encoding
	PathInSchema          []string
	Codec                 CompressionCodec
	NumValues             int64
	TotalUncompressedSize int64
	TotalCompressedSize   int64
	KeyValueMetadata      []KeyValue
	DataPageOffset        int64
	IndexPageOffset       int64
	DictionaryPageOffset  int64
	Statistics            Statistics
	EncodingStats         []PageEncodingStats

	HasDictionaryPageOffset bool
}

func (c *ColumnMetaData) IsSetDictionaryPageOffset() bool { return c.HasDictionaryPageOffset }

// ColumnChunk is one column's metadata entry within a row group, optionally
// pointing to metadata stored in a separate file.
type ColumnChunk struct {
	FilePath   string
	FileOffset int64
	MetaData   ColumnMetaData

	HasFilePath bool
}

func (c *ColumnChunk) IsSetFilePath() bool { return c.HasFilePath }

// SortingColumn records that a row group's rows are sorted by a given
// column; informational only.
type SortingColumn struct {
	ColumnIdx  int32
	Descending bool
	NullsFirst bool
}

// RowGroup is a horizontal partition of the file: every column chunk in it
// covers the same contiguous span of rows.
type RowGroup struct {
	Columns        []ColumnChunk
	TotalByteSize  int64
	NumRows        int64
	SortingColumns []SortingColumn
}

// FileMetaData is the footer of a Parquet file: schema, row groups, and
// free-form key/value metadata.
type FileMetaData struct {
	Version          int32
	Schema           []SchemaElement
	NumRows          int64
	RowGroups        []RowGroup
	KeyValueMetadata []KeyValue
	CreatedBy        string

	HasCreatedBy bool
}

func (f *FileMetaData) IsSetCreatedBy() bool { return f.HasCreatedBy }
