package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/linkedin-lookup/internal/api"
	"github.com/sells-group/linkedin-lookup/internal/fetcher"
	"github.com/sells-group/linkedin-lookup/internal/lookup"
	"github.com/sells-group/linkedin-lookup/internal/model"
)

// Batch row statuses.
const (
	statusMatched      = "matched"
	statusInvalidEmail = "invalid_email"
	statusNotFound     = "not_found"
	statusError        = "error"
)

var (
	batchInput       string
	batchOutput      string
	batchOutFile     string
	batchLimit       int
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Resolve every email in a CSV or XLSX file",
	Long: `Reads email,name,country rows (header optional) and runs one
independent lookup per row.

Examples:
  linkedin-lookup batch --input leads.csv --output xlsx --out-file results.xlsx
  linkedin-lookup batch --input leads.xlsx --output json --limit 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if batchOutput != "xlsx" && batchOutput != "json" {
			return eris.Errorf("batch: unsupported --output %q (want xlsx or json)", batchOutput)
		}

		env, err := initLookup(cfg)
		if err != nil {
			return err
		}

		queries, err := fetcher.ReadQueries(ctx, batchInput, batchLimit)
		if err != nil {
			return eris.Wrap(err, "batch: read input")
		}

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.MaxConcurrent
		}

		results, err := processBatch(ctx, queries, concurrency, env.Resolver.Lookup)
		if err != nil {
			return err
		}

		if batchOutput == "json" {
			if batchOutFile == "" {
				return writeBatchJSON(os.Stdout, results)
			}
			f, err := os.Create(batchOutFile)
			if err != nil {
				return eris.Wrap(err, "batch: create output")
			}
			defer f.Close() //nolint:errcheck
			return writeBatchJSON(f, results)
		}

		out := batchOutFile
		if out == "" {
			out = "lookup-results.xlsx"
		}
		if err := fetcher.WriteXLSX(out, "Results", batchHeader, batchRows(results)); err != nil {
			return eris.Wrap(err, "batch: write output")
		}
		zap.L().Info("batch results written", zap.String("path", out))
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "CSV or XLSX file of email,name,country rows (required)")
	batchCmd.Flags().StringVar(&batchOutput, "output", "xlsx", "output format: xlsx or json")
	batchCmd.Flags().StringVar(&batchOutFile, "out-file", "", "output path (default lookup-results.xlsx, or stdout for json)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of rows to process (0 = all)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "concurrent lookups (default from config)")
	_ = batchCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(batchCmd)
}

// lookupFunc is the callback signature for resolving one query.
type lookupFunc func(ctx context.Context, q model.Query) (*model.LookupResult, error)

// batchResult is the outcome of one input row.
type batchResult struct {
	Query  model.Query
	Result *model.LookupResult
	Err    error
}

// Status classifies the outcome for reporting.
func (r batchResult) Status() string {
	switch {
	case r.Err == nil:
		return statusMatched
	case eris.Is(r.Err, lookup.ErrInvalidEmail):
		return statusInvalidEmail
	case eris.Is(r.Err, lookup.ErrNoMatch):
		return statusNotFound
	default:
		return statusError
	}
}

// processBatch resolves queries concurrently. Results keep input order.
// Individual failures are recorded, not returned; only cancellation
// aborts the batch.
func processBatch(ctx context.Context, queries []model.Query, concurrency int, resolve lookupFunc) ([]batchResult, error) {
	results := make([]batchResult, len(queries))
	if len(queries) == 0 {
		zap.L().Info("no rows to process")
		return results, nil
	}

	zap.L().Info("processing batch",
		zap.Int("rows", len(queries)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for i, q := range queries {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			res, err := resolve(gctx, q)
			results[i] = batchResult{Query: q, Result: res, Err: err}
			if err != nil {
				failed.Add(1)
				zap.L().Warn("lookup failed", zap.String("email", q.Email), zap.Error(err))
				return nil // don't abort batch on individual failure
			}
			succeeded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return results, nil
}

var batchHeader = []string{"email", "input_name", "status", "kind", "searched_name", "name", "title", "company", "linkedin_url", "snippet"}

// batchRows flattens results into one row per matched or employee
// profile, or a single status row when a lookup failed.
func batchRows(results []batchResult) [][]string {
	var rows [][]string
	for _, r := range results {
		status := r.Status()
		if r.Result == nil {
			rows = append(rows, []string{r.Query.Email, r.Query.Name, status, "", "", "", "", "", "", ""})
			continue
		}
		add := func(kind string, p model.CandidateProfile) {
			rows = append(rows, []string{
				r.Query.Email, r.Query.Name, status, kind, r.Result.SearchedName,
				p.Name, p.Title, p.Company, p.LinkedInURL, p.Snippet,
			})
		}
		for _, p := range r.Result.MatchedProfiles {
			add("match", p)
		}
		for _, p := range r.Result.CompanyEmployees {
			add("employee", p)
		}
	}
	return rows
}

type batchJSONRow struct {
	Email  string              `json:"email"`
	Status string              `json:"status"`
	Error  string              `json:"error,omitempty"`
	Result *api.LookupResponse `json:"result,omitempty"`
}

// writeBatchJSON writes one entry per input row.
func writeBatchJSON(w io.Writer, results []batchResult) error {
	out := make([]batchJSONRow, 0, len(results))
	for _, r := range results {
		row := batchJSONRow{Email: r.Query.Email, Status: r.Status()}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		if r.Result != nil {
			resp := api.NewLookupResponse(r.Result)
			row.Result = &resp
		}
		out = append(out, row)
	}
	if err := printJSON(w, out); err != nil {
		return eris.Wrap(err, "batch: encode json")
	}
	return nil
}
