package parquet

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/arrowparquet/parquet-arrow/format"
)

// frame assembles the trailing bytes of a parquet file around footer:
// leading magic, the footer, its little-endian length, and the closing magic.
func frame(footer []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.Write(footer)
	length := [4]byte{}
	binary.LittleEndian.PutUint32(length[:], uint32(len(footer)))
	buf.Write(length[:])
	buf.WriteString(magic)
	return buf.Bytes()
}

func TestOpenFileTooShort(t *testing.T) {
	data := []byte("PAR1PAR")
	_, err := OpenFile(bytes.NewReader(data), int64(len(data)))
	if !errors.Is(err, format.ErrTruncatedFile) {
		t.Fatalf("got %v, want ErrTruncatedFile", err)
	}
}

func TestOpenFileBadMagic(t *testing.T) {
	for _, data := range [][]byte{
		[]byte("XXXX________PAR1"),
		[]byte("PAR1________XXXX"),
	} {
		_, err := OpenFile(bytes.NewReader(data), int64(len(data)))
		if !errors.Is(err, format.ErrTruncatedFile) {
			t.Errorf("%q: got %v, want ErrTruncatedFile", data, err)
		}
	}
}

func TestOpenFileInvalidFooterLength(t *testing.T) {
	// A declared footer length larger than the space before the trailer.
	data := frame(nil)
	binary.LittleEndian.PutUint32(data[len(data)-8:], 1000)
	_, err := OpenFile(bytes.NewReader(data), int64(len(data)))
	if !errors.Is(err, format.ErrInvalidFooter) {
		t.Fatalf("got %v, want ErrInvalidFooter", err)
	}

	// A zero footer length is invalid too.
	data = frame(nil)
	_, err = OpenFile(bytes.NewReader(data), int64(len(data)))
	if !errors.Is(err, format.ErrInvalidFooter) {
		t.Fatalf("got %v, want ErrInvalidFooter", err)
	}
}
