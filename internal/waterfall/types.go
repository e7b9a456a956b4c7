package waterfall

import (
	"time"

	"github.com/sells-group/linkedin-lookup/internal/model"
	"github.com/sells-group/linkedin-lookup/internal/waterfall/provider"
)

// Status is the outcome of a single source call.
type Status string

// Source call outcomes. The values double as metric labels.
const (
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusSkipped  Status = "skipped"
	StatusError    Status = "error"
)

// SourceResult records what one provider contributed.
type SourceResult struct {
	Source   string                 `json:"source"`
	Stage    provider.Stage         `json:"stage"`
	Status   Status                 `json:"status"`
	Identity *model.PartialIdentity `json:"identity,omitempty"`
	Err      error                  `json:"-"`
	Duration time.Duration          `json:"duration"`
}

// Result is the overall output of running the waterfall for one query.
// Sources keeps registry priority order.
type Result struct {
	Sources []SourceResult `json:"sources"`
}

// Identities returns the identities found, highest priority first.
func (r *Result) Identities() []model.PartialIdentity {
	var out []model.PartialIdentity
	for _, s := range r.Sources {
		if s.Status == StatusFound && s.Identity != nil {
			out = append(out, *s.Identity)
		}
	}
	return out
}

// Authoritative returns the first identity found in the sequential stage,
// which is where the paid source runs, or nil.
func (r *Result) Authoritative() *model.PartialIdentity {
	for _, s := range r.Sources {
		if s.Stage == provider.StageSequential && s.Status == StatusFound && s.Identity != nil {
			return s.Identity
		}
	}
	return nil
}

// Found reports whether the named source returned data.
func (r *Result) Found(source string) bool {
	for _, s := range r.Sources {
		if s.Source == source {
			return s.Status == StatusFound
		}
	}
	return false
}
