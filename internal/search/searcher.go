// Package search finds LinkedIn profile pages through a web search backend.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/linkedin-lookup/internal/model"
	"github.com/sells-group/linkedin-lookup/internal/monitoring"
)

// Search tiers, also used as metric labels.
const (
	TierStrict = "strict"
	TierFuzzy  = "fuzzy"
)

// Searcher runs profile and colleague searches. A Searcher with a nil
// backend is valid and finds nothing.
type Searcher struct {
	backend Backend
	timeout time.Duration
	metrics *monitoring.Metrics
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithTimeout bounds each backend call.
func WithTimeout(d time.Duration) Option {
	return func(s *Searcher) {
		s.timeout = d
	}
}

// WithMetrics records issued queries per tier.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(s *Searcher) {
		s.metrics = m
	}
}

// New creates a Searcher over backend, which may be nil when no search
// credentials are configured.
func New(backend Backend, opts ...Option) *Searcher {
	s := &Searcher{backend: backend}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Enabled reports whether a backend is configured.
func (s *Searcher) Enabled() bool { return s != nil && s.backend != nil }

// template builds one rung of the query ladder. ok is false when the hint
// lacks the fields the rung needs.
type template func(email string, h model.IdentityHint) (query string, ok bool)

// ladder is ordered narrowest first.
var ladder = []template{
	func(email string, _ model.IdentityHint) (string, bool) {
		return quote(email), true
	},
	func(_ string, h model.IdentityHint) (string, bool) {
		if h.Company == "" || h.Location == "" {
			return "", false
		}
		return fmt.Sprintf("%s %s %s", quote(h.Name), quote(h.Company), h.Location), true
	},
	func(_ string, h model.IdentityHint) (string, bool) {
		if h.Company == "" {
			return "", false
		}
		return fmt.Sprintf("%s %s", quote(h.Name), quote(h.Company)), true
	},
	func(_ string, h model.IdentityHint) (string, bool) {
		if h.Location == "" {
			return "", false
		}
		return fmt.Sprintf("%s %s", quote(h.Name), h.Location), true
	},
	func(_ string, h model.IdentityHint) (string, bool) {
		return quote(h.Name), true
	},
	func(_ string, h model.IdentityHint) (string, bool) {
		return h.Name, true
	},
}

func quote(s string) string { return `"` + s + `"` }

// FindProfiles walks the query ladder and returns the profiles from the
// first rung that yields any. Results are in backend order, unranked.
func (s *Searcher) FindProfiles(ctx context.Context, email string, hint model.IdentityHint) []model.CandidateProfile {
	if !s.Enabled() {
		zap.L().Debug("search: no backend configured, skipping profile search")
		return nil
	}

	for i, build := range ladder {
		if ctx.Err() != nil {
			return nil
		}
		q, ok := build(email, hint)
		if !ok {
			continue
		}
		if found := s.Profiles(ctx, q); len(found) > 0 {
			zap.L().Info("search: profiles found",
				zap.Int("rung", i+1),
				zap.String("query", q),
				zap.Int("count", len(found)),
			)
			return found
		}
	}
	return nil
}

// Profiles runs query in the strict tier and, only if that finds nothing,
// in the fuzzy tier.
func (s *Searcher) Profiles(ctx context.Context, query string) []model.CandidateProfile {
	if found := s.run(ctx, query, TierStrict); len(found) > 0 {
		return found
	}
	if ctx.Err() != nil {
		return nil
	}
	return s.run(ctx, query, TierFuzzy)
}

// FindEmployees searches for people currently at company. Only the strict
// tier is used, and a hit is kept only when its title-derived company
// matches company.
func (s *Searcher) FindEmployees(ctx context.Context, company string) []model.CandidateProfile {
	if !s.Enabled() || strings.TrimSpace(company) == "" {
		return nil
	}

	found := s.run(ctx, quote(company)+" current", TierStrict)

	target := strings.ToLower(company)
	var out []model.CandidateProfile
	for _, p := range found {
		if p.Company == "" {
			continue
		}
		got := strings.ToLower(p.Company)
		if strings.Contains(got, target) || strings.Contains(target, got) {
			out = append(out, p)
		}
	}

	zap.L().Info("search: company employees",
		zap.String("company", company),
		zap.Int("hits", len(found)),
		zap.Int("current", len(out)),
	)
	return out
}

func (s *Searcher) run(ctx context.Context, query, tier string) []model.CandidateProfile {
	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.metrics.SearchQuery(tier)
	hits, err := s.backend.Search(callCtx, query, tier == TierStrict)
	if err != nil {
		zap.L().Warn("search: query failed",
			zap.String("backend", s.backend.Name()),
			zap.String("tier", tier),
			zap.String("query", query),
			zap.Error(err),
		)
		return nil
	}

	profiles := parseHits(hits)
	zap.L().Debug("search: query done",
		zap.String("backend", s.backend.Name()),
		zap.String("tier", tier),
		zap.String("query", query),
		zap.Int("raw", len(hits)),
		zap.Int("profiles", len(profiles)),
	)
	return profiles
}
