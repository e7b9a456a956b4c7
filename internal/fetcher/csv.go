// Package fetcher reads batch lookup inputs from CSV and XLSX files and
// writes batch results back out as XLSX.
package fetcher

import (
	"context"
	"encoding/csv"
	"io"
	"strings"
)

// CSVOptions configures the CSV parser.
type CSVOptions struct {
	Delimiter  rune // default ','
	Comment    rune // comment character (0 = none)
	LazyQuotes bool
	TrimSpace  bool
}

// StreamCSV parses r and sends each record to the row channel. Records
// may have any number of fields.
func StreamCSV(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan []string, <-chan error) {
	return stream(ctx, "csv", func() (rowFunc, error) {
		reader := csv.NewReader(r)
		if opts.Delimiter != 0 {
			reader.Comma = opts.Delimiter
		}
		reader.Comment = opts.Comment
		reader.LazyQuotes = opts.LazyQuotes
		reader.FieldsPerRecord = -1

		return func() ([]string, error) {
			record, err := reader.Read()
			if err != nil {
				return nil, err
			}
			if opts.TrimSpace {
				for i := range record {
					record[i] = strings.TrimSpace(record[i])
				}
			}
			return record, nil
		}, nil
	})
}
