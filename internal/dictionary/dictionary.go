// Package dictionary implements the per-column-chunk dictionary cache used
// to resolve RLE_DICTIONARY-encoded data pages against the preceding
// DICTIONARY_PAGE of the same chunk.
package dictionary

import (
	"fmt"

	"github.com/arrowparquet/parquet-arrow/encoding"
	"github.com/arrowparquet/parquet-arrow/encoding/plain"
	"github.com/arrowparquet/parquet-arrow/format"
)

// ErrMissingDictionary is returned when a data page uses a dictionary-based
// encoding but the column chunk has not loaded a dictionary page.
var ErrMissingDictionary = format.ErrMissingDictionary

// Dictionary holds the decoded distinct values of a dictionary page, keyed
// by the chunk's physical type. At most one dictionary exists per column
// chunk, set once from the chunk's leading DICTIONARY_PAGE.
type Dictionary struct {
	typ     format.Type
	size    int // element size in bytes, only meaningful for FixedLenByteArray
	values  encoding.Values
	entries [][]byte // BYTE_ARRAY only: one slice per dictionary entry, indexed by dictionary index
}

// Decode parses a dictionary page payload (already decompressed) according
// to its physical type. Dictionary pages are always PLAIN-encoded,
// regardless of what format.DictionaryPageHeader.Encoding claims (writers
// historically set PLAIN_DICTIONARY there for compatibility).
func Decode(typ format.Type, typeLength int, numValues int, data []byte) (*Dictionary, error) {
	enc := plain.Encoding{}
	d := &Dictionary{typ: typ}

	switch typ {
	case format.Boolean:
		values, err := enc.DecodeBoolean(encoding.Values{}, data)
		if err != nil {
			return nil, fmt.Errorf("dictionary: decoding BOOLEAN: %w", err)
		}
		d.values = values
	case format.Int32:
		values, err := enc.DecodeInt32(encoding.Values{}, data)
		if err != nil {
			return nil, fmt.Errorf("dictionary: decoding INT32: %w", err)
		}
		d.values = values
	case format.Int64:
		values, err := enc.DecodeInt64(encoding.Values{}, data)
		if err != nil {
			return nil, fmt.Errorf("dictionary: decoding INT64: %w", err)
		}
		d.values = values
	case format.Int96:
		values, err := enc.DecodeInt96(encoding.Values{}, data)
		if err != nil {
			return nil, fmt.Errorf("dictionary: decoding INT96: %w", err)
		}
		d.values = values
	case format.Float:
		values, err := enc.DecodeFloat(encoding.Values{}, data)
		if err != nil {
			return nil, fmt.Errorf("dictionary: decoding FLOAT: %w", err)
		}
		d.values = values
	case format.Double:
		values, err := enc.DecodeDouble(encoding.Values{}, data)
		if err != nil {
			return nil, fmt.Errorf("dictionary: decoding DOUBLE: %w", err)
		}
		d.values = values
	case format.ByteArray:
		values, err := enc.DecodeByteArray(encoding.Values{}, data)
		if err != nil {
			return nil, fmt.Errorf("dictionary: decoding BYTE_ARRAY: %w", err)
		}
		d.values = values
		entries := make([][]byte, 0, numValues)
		rawData, _ := values.ByteArray()
		if err := plain.RangeByteArray(rawData, func(v []byte) error {
			entries = append(entries, v)
			return nil
		}); err != nil {
			return nil, fmt.Errorf("dictionary: indexing BYTE_ARRAY entries: %w", err)
		}
		d.entries = entries
	case format.FixedLenByteArray:
		d.size = typeLength
		values, err := enc.DecodeFixedLenByteArray(encoding.FixedLenByteArrayValues(nil, typeLength), data)
		if err != nil {
			return nil, fmt.Errorf("dictionary: decoding FIXED_LEN_BYTE_ARRAY: %w", err)
		}
		d.values = values
	default:
		return nil, fmt.Errorf("dictionary: unsupported physical type %s", typ)
	}

	if n := d.Len(); n != numValues {
		return nil, fmt.Errorf("dictionary: header declared %d values but decoded %d", numValues, n)
	}
	return d, nil
}

// Len returns the number of distinct values held by the dictionary.
func (d *Dictionary) Len() int {
	switch d.typ {
	case format.Boolean:
		return len(d.values.Boolean())
	case format.Int32:
		return len(d.values.Int32())
	case format.Int64:
		return len(d.values.Int64())
	case format.Int96:
		return len(d.values.Int96())
	case format.Float:
		return len(d.values.Float())
	case format.Double:
		return len(d.values.Double())
	case format.ByteArray:
		return len(d.entries)
	case format.FixedLenByteArray:
		data, size := d.values.FixedLenByteArray()
		if size == 0 {
			return 0
		}
		return len(data) / size
	default:
		return 0
	}
}

// Values returns the decoded dictionary entries.
func (d *Dictionary) Values() encoding.Values { return d.values }

// LookupByteArray returns the dictionary's BYTE_ARRAY entry at index i.
func (d *Dictionary) LookupByteArray(i int32) []byte {
	return d.entries[i]
}

// LookupFixedLenByteArray returns the dictionary's FIXED_LEN_BYTE_ARRAY entry
// at index i.
func (d *Dictionary) LookupFixedLenByteArray(i int32) []byte {
	data, size := d.values.FixedLenByteArray()
	off := int(i) * size
	return data[off : off+size]
}
