// Package lookup resolves an email address to ranked LinkedIn profiles.
package lookup

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/linkedin-lookup/internal/identity"
	"github.com/sells-group/linkedin-lookup/internal/industry"
	"github.com/sells-group/linkedin-lookup/internal/model"
	"github.com/sells-group/linkedin-lookup/internal/monitoring"
	"github.com/sells-group/linkedin-lookup/internal/rank"
	"github.com/sells-group/linkedin-lookup/internal/waterfall"
)

// minSearchNameLen is the shortest name worth searching for.
const minSearchNameLen = 2

// Sources runs the identity waterfall.
type Sources interface {
	Run(ctx context.Context, q model.Query) (*waterfall.Result, error)
}

// ProfileSearcher finds LinkedIn profiles on the web.
type ProfileSearcher interface {
	FindProfiles(ctx context.Context, email string, hint model.IdentityHint) []model.CandidateProfile
	FindEmployees(ctx context.Context, company string) []model.CandidateProfile
}

// Resolver runs the full lookup. It holds no per-lookup state and is safe
// for concurrent use.
type Resolver struct {
	sources  Sources
	searcher ProfileSearcher
	metrics  *monitoring.Metrics
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMetrics records lookup outcomes and latency.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// NewResolver creates a Resolver.
func NewResolver(sources Sources, searcher ProfileSearcher, opts ...Option) *Resolver {
	r := &Resolver{sources: sources, searcher: searcher}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Lookup resolves q. It returns ErrInvalidEmail or ErrNoMatch for the
// expected failures; any other error is internal.
func (r *Resolver) Lookup(ctx context.Context, q model.Query) (result *model.LookupResult, err error) {
	start := time.Now()
	defer func() {
		r.metrics.RequestDone(outcome(err), time.Since(start))
	}()

	q.Name = strings.TrimSpace(q.Name)
	q.Country = strings.TrimSpace(q.Country)

	if !identity.ValidEmail(q.Email) {
		return nil, ErrInvalidEmail
	}

	log := zap.L().With(
		zap.String("lookup_id", uuid.NewString()),
		zap.String("email", q.Email),
	)
	log.Info("lookup: starting",
		zap.String("name", q.Name),
		zap.String("country", q.Country),
	)

	sources, err := r.sources.Run(ctx, q)
	if err != nil {
		return nil, eris.Wrap(err, "lookup: identity sources")
	}
	paid := sources.Authoritative()

	layers := []model.PartialIdentity{{Source: "user", Name: q.Name, Location: q.Country}}
	layers = append(layers, sources.Identities()...)
	layers = append(layers, model.PartialIdentity{Source: "email", Name: identity.NameFromEmail(q.Email)})
	hint := waterfall.Assemble(layers...)

	log.Info("lookup: identity assembled",
		zap.String("name", hint.Name),
		zap.String("company", hint.Company),
		zap.String("location", hint.Location),
		zap.String("linkedin_url", hint.LinkedInURL),
	)

	var matched []model.CandidateProfile
	if hint.LinkedInURL != "" {
		seed := model.CandidateProfile{
			LinkedInURL: hint.LinkedInURL,
			Name:        hint.Name,
			Company:     hint.Company,
		}
		if paid != nil {
			seed.Title = paid.Title
		}
		matched = append(matched, seed)
	}

	if len([]rune(hint.Name)) >= minSearchNameLen {
		found := r.searcher.FindProfiles(ctx, q.Email, hint)
		matched = mergeUnique(matched, rank.Profiles(found, hint.Name))
	}

	// A canceled search looks like an empty one; don't report it as no match.
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "lookup: canceled")
	}

	if len(matched) > 0 && paid != nil {
		backfill(&matched[0], paid)
	}

	if len(matched) == 0 {
		if paid == nil || (paid.Name == "" && paid.Company == "") {
			log.Info("lookup: no profile found")
			return nil, ErrNoMatch
		}
		matched = append(matched, model.CandidateProfile{
			Name:    paid.Name,
			Title:   paid.Title,
			Company: paid.Company,
		})
	}

	company := matched[0].Company
	if company == "" {
		company = hint.Company
	}

	var employees []model.CandidateProfile
	if company != "" {
		employees = excludeURLs(r.searcher.FindEmployees(ctx, company), matched)
	}

	beforeMatched, beforeEmployees := len(matched), len(employees)
	matched = industry.FilterKeepFirst(matched)
	employees = industry.Filter(employees)

	log.Info("lookup: done",
		zap.Int("matched_before_filter", beforeMatched),
		zap.Int("matched", len(matched)),
		zap.Int("employees_before_filter", beforeEmployees),
		zap.Int("employees", len(employees)),
	)

	return &model.LookupResult{
		SearchedName:     hint.Name,
		MatchedProfiles:  matched,
		CompanyName:      company,
		CompanyEmployees: employees,
		SourcesChecked: model.SourcesChecked{
			Apollo:   sources.Found("apollo"),
			GitHub:   sources.Found("github"),
			Gravatar: sources.Found("gravatar"),
		},
	}, nil
}

// mergeUnique appends the profiles from more whose URL is not already in
// base. Profiles without a URL are always appended.
func mergeUnique(base, more []model.CandidateProfile) []model.CandidateProfile {
	seen := make(map[string]bool, len(base)+len(more))
	for _, p := range base {
		if p.LinkedInURL != "" {
			seen[p.LinkedInURL] = true
		}
	}
	for _, p := range more {
		if p.LinkedInURL != "" {
			if seen[p.LinkedInURL] {
				continue
			}
			seen[p.LinkedInURL] = true
		}
		base = append(base, p)
	}
	return base
}

// excludeURLs drops profiles whose URL appears in matched and collapses
// duplicates within profiles.
func excludeURLs(profiles, matched []model.CandidateProfile) []model.CandidateProfile {
	seen := make(map[string]bool, len(matched))
	for _, p := range matched {
		if p.LinkedInURL != "" {
			seen[p.LinkedInURL] = true
		}
	}
	var out []model.CandidateProfile
	for _, p := range profiles {
		if p.LinkedInURL != "" && seen[p.LinkedInURL] {
			continue
		}
		if p.LinkedInURL != "" {
			seen[p.LinkedInURL] = true
		}
		out = append(out, p)
	}
	return out
}

// backfill copies paid-source fields into p where p has none.
func backfill(p *model.CandidateProfile, paid *model.PartialIdentity) {
	if p.Title == "" {
		p.Title = paid.Title
	}
	if p.Company == "" {
		p.Company = paid.Company
	}
	if p.Name == "" {
		p.Name = paid.Name
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return monitoring.OutcomeSuccess
	case eris.Is(err, ErrInvalidEmail):
		return monitoring.OutcomeInvalid
	case eris.Is(err, ErrNoMatch):
		return monitoring.OutcomeNotFound
	default:
		return monitoring.OutcomeError
	}
}
