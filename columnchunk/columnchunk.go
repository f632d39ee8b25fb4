// Package columnchunk decodes a single column chunk's pages into a flat
// Arrow array plus the definition/repetition level streams a nested
// assembler needs to reconstruct struct, list and map structure around it.
package columnchunk

import (
	"fmt"
	"hash/crc32"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/memory"

	"github.com/arrowparquet/parquet-arrow/deprecated"
	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/encoding/bytestreamsplit"
	"github.com/arrowparquet/parquet-arrow/encoding/delta"
	"github.com/arrowparquet/parquet-arrow/encoding/plain"
	"github.com/arrowparquet/parquet-arrow/encoding/rle"
	"github.com/arrowparquet/parquet-arrow/format"
	"github.com/arrowparquet/parquet-arrow/internal/buildstate"
	"github.com/arrowparquet/parquet-arrow/internal/codec"
	"github.com/arrowparquet/parquet-arrow/internal/dictionary"
	"github.com/arrowparquet/parquet-arrow/internal/levels"
	"github.com/arrowparquet/parquet-arrow/internal/unsafecast"
	"github.com/arrowparquet/parquet-arrow/schema"
)

// Result is one leaf column's decoded output.
type Result struct {
	Array arrow.Array
	// DefLevels and RepLevels are nil when keepLevels was false, or when the
	// leaf is neither optional nor repeated (every position holds a value
	// at repetition 0, so the level streams would carry no information).
	DefLevels []int32
	RepLevels []int32
}

// Decode reads and decodes every page of a column chunk from chunk, which
// must span from the first page (dictionary or data) to the end of the
// chunk's compressed bytes. keepLevels requests that the decoded
// definition/repetition levels be retained in the Result for the nested
// assembler; a flat, non-repeated top-level column can pass false once it
// has confirmed it does not need them.
func Decode(mem memory.Allocator, node *schema.Node, meta *format.ColumnMetaData, dtype arrow.DataType, chunk []byte, keepLevels bool) (result *Result, err error) {
	state := buildstate.New(mem, node.PhysicalType, dtype)
	state.Reserve(int(meta.NumValues))
	defer func() {
		if err != nil {
			state.Release()
		}
	}()

	var dict *dictionary.Dictionary
	var defLevels, repLevels []int32
	if keepLevels && node.MaxDefinitionLevel > 0 {
		defLevels = make([]int32, 0, meta.NumValues)
	}
	if keepLevels && node.MaxRepetitionLevel > 0 {
		repLevels = make([]int32, 0, meta.NumValues)
	}

	pos := 0
	var valuesRead int64
	for valuesRead < meta.NumValues {
		if pos >= len(chunk) {
			return nil, fmt.Errorf("columnchunk: %w: expected %d values, read %d before exhausting the chunk", format.ErrTruncatedFile, meta.NumValues, valuesRead)
		}
		header, n, herr := format.ReadPageHeader(chunk[pos:])
		if herr != nil {
			return nil, fmt.Errorf("columnchunk: reading page header at offset %d: %w", pos, herr)
		}
		pos += n
		end := pos + int(header.CompressedPageSize)
		if header.CompressedPageSize < 0 || end > len(chunk) {
			return nil, fmt.Errorf("columnchunk: %w: page at offset %d declares %d compressed bytes past the chunk end", format.ErrTruncatedFile, pos, header.CompressedPageSize)
		}
		page := chunk[pos:end]
		pos = end

		if header.HasCrc {
			if sum := crc32.ChecksumIEEE(page); sum != uint32(header.Crc) {
				return nil, fmt.Errorf("columnchunk: %w: page at offset %d failed CRC32 checksum: got 0x%08X, want 0x%08X", format.ErrParquetFormat, pos-len(page), sum, uint32(header.Crc))
			}
		}

		switch header.Type {
		case format.DictionaryPage:
			d, derr := decodeDictionaryPage(node, meta, header, page)
			if derr != nil {
				return nil, derr
			}
			dict = d

		case format.DataPage:
			pageDef, pageRep, pn, derr := decodeDataPageV1(state, node, meta, header, page, dict)
			if derr != nil {
				return nil, derr
			}
			if keepLevels {
				defLevels = append(defLevels, pageDef...)
				repLevels = append(repLevels, pageRep...)
			}
			valuesRead += int64(pn)

		case format.DataPageV2:
			pageDef, pageRep, pn, derr := decodeDataPageV2(state, node, meta, header, page, dict)
			if derr != nil {
				return nil, derr
			}
			if keepLevels {
				defLevels = append(defLevels, pageDef...)
				repLevels = append(repLevels, pageRep...)
			}
			valuesRead += int64(pn)

		default:
			// INDEX_PAGE and any other page type carry no values; pos has
			// already been advanced past it above.
		}
	}

	return &Result{Array: state.NewArray(), DefLevels: defLevels, RepLevels: repLevels}, nil
}

func decodeDictionaryPage(node *schema.Node, meta *format.ColumnMetaData, header *format.PageHeader, page []byte) (*dictionary.Dictionary, error) {
	dh := header.DictionaryPageHeader
	if dh == nil {
		return nil, fmt.Errorf("columnchunk: %w: DICTIONARY_PAGE is missing its header", format.ErrParquetFormat)
	}
	data, err := codec.Decompress(meta.Codec, nil, page)
	if err != nil {
		return nil, fmt.Errorf("columnchunk: decompressing dictionary page: %w", err)
	}
	dict, err := dictionary.Decode(node.PhysicalType, int(node.TypeLength), int(dh.NumValues), data)
	if err != nil {
		return nil, fmt.Errorf("columnchunk: decoding dictionary page: %w", err)
	}
	return dict, nil
}

// decodeDataPageV1 decodes one DATA_PAGE: the repetition levels, definition
// levels and values are compressed together as a single stream, with the
// levels each framed by their own 4-byte length prefix ahead of the hybrid
// RLE/bit-packed payload.
func decodeDataPageV1(state *buildstate.State, node *schema.Node, meta *format.ColumnMetaData, header *format.PageHeader, page []byte, dict *dictionary.Dictionary) (defLevels, repLevels []int32, numValues int, err error) {
	dh := header.DataPageHeader
	if dh == nil {
		return nil, nil, 0, fmt.Errorf("columnchunk: %w: DATA_PAGE is missing its header", format.ErrParquetFormat)
	}
	n := int(dh.NumValues)

	// Real writers only ever emit RLE level streams; the header fields exist
	// but any other value has no well-defined layout to decode.
	if node.MaxRepetitionLevel > 0 && dh.RepetitionLevelEncoding != format.RLE {
		return nil, nil, 0, fmt.Errorf("columnchunk: repetition level encoding %s: %w", dh.RepetitionLevelEncoding, format.ErrUnsupportedEncoding)
	}
	if node.MaxDefinitionLevel > 0 && dh.DefinitionLevelEncoding != format.RLE {
		return nil, nil, 0, fmt.Errorf("columnchunk: definition level encoding %s: %w", dh.DefinitionLevelEncoding, format.ErrUnsupportedEncoding)
	}

	data, err := codec.Decompress(meta.Codec, nil, page)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("columnchunk: decompressing data page: %w", err)
	}

	if node.MaxRepetitionLevel > 0 {
		rep, consumed, lerr := levels.DecodeV1(nil, data, n, int(node.MaxRepetitionLevel))
		if lerr != nil {
			return nil, nil, 0, fmt.Errorf("columnchunk: decoding repetition levels: %w", lerr)
		}
		repLevels = rep
		data = data[consumed:]
	}

	var def []int32
	if node.MaxDefinitionLevel > 0 {
		d, consumed, lerr := levels.DecodeV1(nil, data, n, int(node.MaxDefinitionLevel))
		if lerr != nil {
			return nil, nil, 0, fmt.Errorf("columnchunk: decoding definition levels: %w", lerr)
		}
		def = d
		data = data[consumed:]
	}
	defLevels = def

	nonNull := n
	if def != nil {
		nonNull = countLevel(def, node.MaxDefinitionLevel)
	}

	if nonNull > 0 {
		if err := appendValues(state, node, dh.Encoding, data, nonNull, dict, def, true); err != nil {
			return nil, nil, 0, fmt.Errorf("columnchunk: decoding values: %w", err)
		}
	} else if def != nil {
		state.AppendNulls(n)
	}
	return defLevels, repLevels, n, nil
}

// decodeDataPageV2 decodes one DATA_PAGE_V2: the levels are always
// RLE/bit-packed and stored uncompressed, each sized by its *LevelsByteLength
// field rather than a self-framing length prefix; only the value stream
// that follows them is (optionally) compressed.
func decodeDataPageV2(state *buildstate.State, node *schema.Node, meta *format.ColumnMetaData, header *format.PageHeader, page []byte, dict *dictionary.Dictionary) (defLevels, repLevels []int32, numValues int, err error) {
	dh := header.DataPageHeaderV2
	if dh == nil {
		return nil, nil, 0, fmt.Errorf("columnchunk: %w: DATA_PAGE_V2 is missing its header", format.ErrParquetFormat)
	}
	n := int(dh.NumValues)

	repBytes := int(dh.RepetitionLevelsByteLength)
	defBytes := int(dh.DefinitionLevelsByteLength)
	if repBytes < 0 || defBytes < 0 || repBytes+defBytes > len(page) {
		return nil, nil, 0, fmt.Errorf("columnchunk: %w: DATA_PAGE_V2 level lengths exceed the page size", format.ErrParquetFormat)
	}

	if node.MaxRepetitionLevel > 0 {
		rep, lerr := levels.DecodeV2(nil, page[:repBytes], n, int(node.MaxRepetitionLevel))
		if lerr != nil {
			return nil, nil, 0, fmt.Errorf("columnchunk: decoding repetition levels: %w", lerr)
		}
		repLevels = rep
	}

	var def []int32
	if node.MaxDefinitionLevel > 0 {
		d, lerr := levels.DecodeV2(nil, page[repBytes:repBytes+defBytes], n, int(node.MaxDefinitionLevel))
		if lerr != nil {
			return nil, nil, 0, fmt.Errorf("columnchunk: decoding definition levels: %w", lerr)
		}
		def = d
	}
	defLevels = def

	valuePayload := page[repBytes+defBytes:]
	nonNull := n - int(dh.NumNulls)
	if def != nil {
		// num_nulls must agree with the level stream, since the value
		// payload only holds the values the levels say are present.
		if counted := countLevel(def, node.MaxDefinitionLevel); counted != nonNull {
			return nil, nil, 0, fmt.Errorf("columnchunk: %w: DATA_PAGE_V2 declares %d non-null values but its definition levels hold %d", format.ErrParquetFormat, nonNull, counted)
		}
	}
	if nonNull > 0 {
		if dh.IsCompressedOrDefault() {
			decompressed, derr := codec.Decompress(meta.Codec, nil, valuePayload)
			if derr != nil {
				return nil, nil, 0, fmt.Errorf("columnchunk: decompressing data page: %w", derr)
			}
			valuePayload = decompressed
		}
		if err := appendValues(state, node, dh.Encoding, valuePayload, nonNull, dict, def, false); err != nil {
			return nil, nil, 0, fmt.Errorf("columnchunk: decoding values: %w", err)
		}
	} else if def != nil {
		state.AppendNulls(n)
	}
	return defLevels, repLevels, n, nil
}

func countLevel(levels []int32, want int32) int {
	c := 0
	for _, l := range levels {
		if l == want {
			c++
		}
	}
	return c
}

// appendValues decodes n non-null values from data, encoded per enc, and
// scatters them into state across defLevels. Each encoding is only valid
// for the physical types real writers pair it with; anything else is
// rejected rather than guessed at. pageV1 distinguishes the two data page
// framings where an encoding's payload differs between them.
func appendValues(state *buildstate.State, node *schema.Node, enc format.Encoding, data []byte, n int, dict *dictionary.Dictionary, defLevels []int32, pageV1 bool) error {
	typ := node.PhysicalType
	typeLength := int(node.TypeLength)
	maxDef := node.MaxDefinitionLevel

	switch enc {
	case format.Plain:
		return appendPlain(state, typ, typeLength, data, n, defLevels, maxDef)

	case format.PlainDictionary, format.RLEDictionary:
		if dict == nil {
			return fmt.Errorf("columnchunk: %s: %w", enc, format.ErrMissingDictionary)
		}
		return appendDictionaryIndexed(state, typ, data, n, dict, defLevels, maxDef)

	case format.DeltaBinaryPacked:
		return appendDeltaBinaryPacked(state, typ, data, defLevels, maxDef)

	case format.DeltaLengthByteArray:
		if typ != format.ByteArray {
			return fmt.Errorf("columnchunk: DELTA_LENGTH_BYTE_ARRAY: %w: %s", format.ErrUnsupportedEncoding, typ)
		}
		var e delta.LengthByteArrayEncoding
		values, err := e.DecodeByteArray(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding DELTA_LENGTH_BYTE_ARRAY: %w", err)
		}
		raw, _ := values.ByteArray()
		return appendPlainStyleByteArray(state, raw, n, defLevels, maxDef)

	case format.DeltaByteArray:
		var e delta.ByteArrayEncoding
		switch typ {
		case format.ByteArray:
			raw, err := e.DecodeByteArray(nil, data)
			if err != nil {
				return fmt.Errorf("columnchunk: decoding DELTA_BYTE_ARRAY: %w", err)
			}
			return appendPlainStyleByteArray(state, raw, n, defLevels, maxDef)
		case format.FixedLenByteArray:
			raw, err := e.DecodeFixedLenByteArray(nil, data, typeLength)
			if err != nil {
				return fmt.Errorf("columnchunk: decoding DELTA_BYTE_ARRAY: %w", err)
			}
			return state.AppendFixedLenByteArray(raw, typeLength, n, defLevels, maxDef)
		default:
			return fmt.Errorf("columnchunk: DELTA_BYTE_ARRAY: %w: %s", format.ErrUnsupportedEncoding, typ)
		}

	case format.ByteStreamSplit:
		return appendByteStreamSplit(state, typ, typeLength, data, n, defLevels, maxDef)

	case format.RLE:
		if typ != format.Boolean {
			return fmt.Errorf("columnchunk: RLE: %w: %s", format.ErrUnsupportedEncoding, typ)
		}
		// RLE boolean payloads carry a 4-byte length prefix in a v1 data page
		// but are raw in a v2 page.
		var values []bool
		var err error
		if pageV1 {
			var e rle.Encoding
			values, err = e.DecodeBoolean(nil, data)
		} else {
			e := rle.Encoding{BitWidth: 1}
			var words []int8
			words, err = e.DecodeInt8(nil, data)
			values = make([]bool, len(words))
			for i, w := range words {
				values[i] = w != 0
			}
		}
		if err != nil {
			return fmt.Errorf("columnchunk: decoding RLE boolean values: %w", err)
		}
		if len(values) < n {
			return fmt.Errorf("columnchunk: %w: RLE boolean page decoded %d of %d values", format.ErrParquetFormat, len(values), n)
		}
		// The encoding pads bit-packed runs to groups of 8, so the stream may
		// decode past the page's value count.
		return state.AppendBooleanValues(values[:n], defLevels, maxDef)

	default:
		return fmt.Errorf("columnchunk: %w: %s", format.ErrUnsupportedEncoding, enc)
	}
}

func appendPlain(state *buildstate.State, typ format.Type, typeLength int, data []byte, n int, defLevels []int32, maxDef int32) error {
	var e plain.Encoding
	switch typ {
	case format.Boolean:
		values, err := e.DecodeBoolean(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding PLAIN BOOLEAN: %w", err)
		}
		return state.AppendBoolean(values.Boolean(), n, defLevels, maxDef)
	case format.Int32:
		values, err := e.DecodeInt32(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding PLAIN INT32: %w", err)
		}
		return state.AppendInt32(values.Int32(), defLevels, maxDef)
	case format.Int64:
		values, err := e.DecodeInt64(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding PLAIN INT64: %w", err)
		}
		return state.AppendInt64(values.Int64(), defLevels, maxDef)
	case format.Int96:
		values, err := e.DecodeInt96(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding PLAIN INT96: %w", err)
		}
		return state.AppendInt96AsTimestamp(values.Int96(), defLevels, maxDef)
	case format.Float:
		values, err := e.DecodeFloat(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding PLAIN FLOAT: %w", err)
		}
		return state.AppendFloat32(values.Float(), defLevels, maxDef)
	case format.Double:
		values, err := e.DecodeDouble(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding PLAIN DOUBLE: %w", err)
		}
		return state.AppendFloat64(values.Double(), defLevels, maxDef)
	case format.ByteArray:
		values, err := e.DecodeByteArray(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding PLAIN BYTE_ARRAY: %w", err)
		}
		raw, _ := values.ByteArray()
		return appendPlainStyleByteArray(state, raw, n, defLevels, maxDef)
	case format.FixedLenByteArray:
		values, err := e.DecodeFixedLenByteArray(encoding.FixedLenByteArrayValues(nil, typeLength), data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding PLAIN FIXED_LEN_BYTE_ARRAY: %w", err)
		}
		raw, size := values.FixedLenByteArray()
		return state.AppendFixedLenByteArray(raw, size, n, defLevels, maxDef)
	default:
		return fmt.Errorf("columnchunk: PLAIN: %w: %s", format.ErrUnsupportedEncoding, typ)
	}
}

// appendPlainStyleByteArray scatters n length-prefixed BYTE_ARRAY values
// held in raw (the common output shape of PLAIN, DELTA_LENGTH_BYTE_ARRAY and
// DELTA_BYTE_ARRAY) into state.
func appendPlainStyleByteArray(state *buildstate.State, raw []byte, n int, defLevels []int32, maxDef int32) error {
	entries := make([][]byte, 0, n)
	if err := plain.RangeByteArray(raw, func(v []byte) error {
		entries = append(entries, v)
		return nil
	}); err != nil {
		return fmt.Errorf("columnchunk: indexing BYTE_ARRAY values: %w", err)
	}
	if len(entries) < n {
		return fmt.Errorf("columnchunk: %w: page decoded %d of %d BYTE_ARRAY values", format.ErrParquetFormat, len(entries), n)
	}
	return state.AppendByteArray(func(i int) []byte { return entries[i] }, n, defLevels, maxDef)
}

func appendDictionaryIndexed(state *buildstate.State, typ format.Type, data []byte, n int, dict *dictionary.Dictionary, defLevels []int32, maxDef int32) error {
	var e rle.DictionaryEncoding
	indexes, err := e.DecodeInt32(nil, data)
	if err != nil {
		return fmt.Errorf("columnchunk: decoding dictionary indexes: %w", err)
	}
	if len(indexes) < n {
		return fmt.Errorf("columnchunk: %w: page decoded %d of %d dictionary indexes", format.ErrParquetFormat, len(indexes), n)
	}
	// Bit-packed runs are padded to groups of 8 on the wire; only the first
	// n indexes are real values.
	indexes = indexes[:n]
	for _, idx := range indexes {
		if idx < 0 || int(idx) >= dict.Len() {
			return fmt.Errorf("columnchunk: %w: dictionary index %d out of range for a dictionary of %d values", format.ErrParquetFormat, idx, dict.Len())
		}
	}

	switch typ {
	case format.Int32:
		dictValues := dict.Values()
		table := dictValues.Int32()
		values := make([]int32, len(indexes))
		for i, idx := range indexes {
			values[i] = table[idx]
		}
		return state.AppendInt32(values, defLevels, maxDef)
	case format.Int64:
		dictValues := dict.Values()
		table := dictValues.Int64()
		values := make([]int64, len(indexes))
		for i, idx := range indexes {
			values[i] = table[idx]
		}
		return state.AppendInt64(values, defLevels, maxDef)
	case format.Int96:
		dictValues := dict.Values()
		table := dictValues.Int96()
		values := make([]deprecated.Int96, len(indexes))
		for i, idx := range indexes {
			values[i] = table[idx]
		}
		return state.AppendInt96AsTimestamp(values, defLevels, maxDef)
	case format.Float:
		dictValues := dict.Values()
		table := dictValues.Float()
		values := make([]float32, len(indexes))
		for i, idx := range indexes {
			values[i] = table[idx]
		}
		return state.AppendFloat32(values, defLevels, maxDef)
	case format.Double:
		dictValues := dict.Values()
		table := dictValues.Double()
		values := make([]float64, len(indexes))
		for i, idx := range indexes {
			values[i] = table[idx]
		}
		return state.AppendFloat64(values, defLevels, maxDef)
	case format.ByteArray:
		return state.AppendByteArray(func(i int) []byte { return dict.LookupByteArray(indexes[i]) }, len(indexes), defLevels, maxDef)
	case format.FixedLenByteArray:
		dictValues := dict.Values()
		_, size := dictValues.FixedLenByteArray()
		flat := make([]byte, 0, len(indexes)*size)
		for _, idx := range indexes {
			flat = append(flat, dict.LookupFixedLenByteArray(idx)...)
		}
		return state.AppendFixedLenByteArray(flat, size, len(indexes), defLevels, maxDef)
	default:
		// BOOLEAN is never dictionary-encoded by any writer in practice
		// (only two distinct values exist), so it is not plumbed here.
		return fmt.Errorf("columnchunk: dictionary-indexed %s: %w", typ, format.ErrUnsupportedEncoding)
	}
}

func appendDeltaBinaryPacked(state *buildstate.State, typ format.Type, data []byte, defLevels []int32, maxDef int32) error {
	var e delta.BinaryPackedEncoding
	switch typ {
	case format.Int32:
		raw, err := e.DecodeInt32(nil, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding DELTA_BINARY_PACKED: %w", err)
		}
		return state.AppendInt32(unsafecast.BytesToInt32(raw), defLevels, maxDef)
	case format.Int64:
		raw, err := e.DecodeInt64(nil, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding DELTA_BINARY_PACKED: %w", err)
		}
		return state.AppendInt64(unsafecast.BytesToInt64(raw), defLevels, maxDef)
	default:
		return fmt.Errorf("columnchunk: DELTA_BINARY_PACKED: %w: %s", format.ErrUnsupportedEncoding, typ)
	}
}

func appendByteStreamSplit(state *buildstate.State, typ format.Type, typeLength int, data []byte, n int, defLevels []int32, maxDef int32) error {
	var e bytestreamsplit.Encoding
	switch typ {
	case format.Float:
		values, err := e.DecodeFloat(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding BYTE_STREAM_SPLIT FLOAT: %w", err)
		}
		return state.AppendFloat32(values.Float(), defLevels, maxDef)
	case format.Double:
		values, err := e.DecodeDouble(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding BYTE_STREAM_SPLIT DOUBLE: %w", err)
		}
		return state.AppendFloat64(values.Double(), defLevels, maxDef)
	case format.Int32:
		values, err := e.DecodeInt32(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding BYTE_STREAM_SPLIT INT32: %w", err)
		}
		return state.AppendInt32(values.Int32(), defLevels, maxDef)
	case format.Int64:
		values, err := e.DecodeInt64(encoding.Values{}, data)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding BYTE_STREAM_SPLIT INT64: %w", err)
		}
		return state.AppendInt64(values.Int64(), defLevels, maxDef)
	case format.FixedLenByteArray:
		values, err := e.DecodeFixedLenByteArray(encoding.FixedLenByteArrayValues(nil, typeLength), data, typeLength)
		if err != nil {
			return fmt.Errorf("columnchunk: decoding BYTE_STREAM_SPLIT FIXED_LEN_BYTE_ARRAY: %w", err)
		}
		raw, size := values.FixedLenByteArray()
		return state.AppendFixedLenByteArray(raw, size, n, defLevels, maxDef)
	default:
		return fmt.Errorf("columnchunk: BYTE_STREAM_SPLIT: %w: %s", format.ErrUnsupportedEncoding, typ)
	}
}
