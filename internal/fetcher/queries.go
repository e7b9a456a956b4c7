package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/linkedin-lookup/internal/model"
)

// ReadQueries loads email,name,country rows from a .csv or .xlsx file.
// A first row whose first cell is "email" is treated as a header. Rows
// with an empty email cell are skipped. limit <= 0 reads every row.
func ReadQueries(ctx context.Context, path string, limit int) ([]model.Query, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		rowCh <-chan []string
		errCh <-chan error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "queries: open csv")
		}
		defer f.Close() //nolint:errcheck
		rowCh, errCh = StreamCSV(ctx, f, CSVOptions{TrimSpace: true, Comment: '#'})
	case ".xlsx":
		rowCh, errCh = StreamXLSX(ctx, path, XLSXOptions{})
	default:
		return nil, eris.Errorf("queries: unsupported input type %q", ext)
	}

	var queries []model.Query
	first := true
	for row := range rowCh {
		if first {
			first = false
			if isHeader(row) {
				continue
			}
		}
		q, ok := queryFromRow(row)
		if !ok {
			continue
		}
		queries = append(queries, q)
		if limit > 0 && len(queries) >= limit {
			cancel()
			break
		}
	}
	for range rowCh { //nolint:revive // drain
	}

	// A limit-triggered cancel surfaces as a context error; ignore it.
	limited := limit > 0 && len(queries) >= limit
	for err := range errCh {
		if err != nil && !limited {
			return nil, eris.Wrap(err, "queries: read rows")
		}
	}
	return queries, nil
}

func isHeader(row []string) bool {
	return len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), "email")
}

func queryFromRow(row []string) (model.Query, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}
	q := model.Query{Email: cell(0), Name: cell(1), Country: cell(2)}
	return q, q.Email != ""
}
