// Command pqcat opens a Parquet file and dumps the schema and row count of
// one row group as an Arrow record, exercising the read pipeline end to
// end.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/apache/arrow/go/v7/arrow"

	"github.com/arrowparquet/parquet-arrow"
)

func main() {
	log.SetFlags(0)

	rowGroup := flag.Int("row-group", 0, "index of the row group to read")
	flat := flag.Bool("flat", false, "read columns flat, without nested struct/list/map assembly")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: pqcat [-row-group N] [-flat] <path>")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *rowGroup, *flat); err != nil {
		log.Fatalf("pqcat: %s", err)
	}
}

func run(path string, rowGroup int, flat bool) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	file, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return err
	}

	fmt.Printf("row groups: %d, rows: %d\n", file.NumRowGroups(), file.NumRows())
	for _, leaf := range file.Schema().Leaves() {
		fmt.Printf("  %-40s %s (def=%d rep=%d)\n", pathString(leaf.Path), leaf.PhysicalType, leaf.MaxDefinitionLevel, leaf.MaxRepetitionLevel)
	}

	reader := parquet.NewReader(file, nil)

	var record arrow.Record
	if flat {
		record, err = reader.ReadRowGroupFlat(context.Background(), rowGroup)
	} else {
		record, err = reader.ReadRowGroup(context.Background(), rowGroup)
	}
	if err != nil {
		return err
	}
	defer record.Release()

	fmt.Printf("row group %d: %d rows, %d columns\n", rowGroup, record.NumRows(), record.NumCols())
	return nil
}

func pathString(path []string) string {
	s := ""
	for i, p := range path {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}
