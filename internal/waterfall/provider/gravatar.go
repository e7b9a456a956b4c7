package provider

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/linkedin-lookup/internal/identity"
	"github.com/sells-group/linkedin-lookup/internal/model"
	"github.com/sells-group/linkedin-lookup/pkg/gravatar"
)

// Gravatar reads the public avatar profile keyed by the email hash.
type Gravatar struct {
	client gravatar.Client
}

// NewGravatar wraps a Gravatar client.
func NewGravatar(client gravatar.Client) *Gravatar {
	return &Gravatar{client: client}
}

// Name implements Provider.
func (g *Gravatar) Name() string { return "gravatar" }

// Stage implements Provider.
func (g *Gravatar) Stage() Stage { return StageParallel }

// Enabled implements Provider.
func (g *Gravatar) Enabled() bool { return g.client != nil }

// Lookup implements Provider.
func (g *Gravatar) Lookup(ctx context.Context, q model.Query) (*model.PartialIdentity, error) {
	entry, err := g.client.Profile(ctx, q.Email)
	if eris.Is(err, gravatar.ErrNotFound) {
		zap.L().Debug("gravatar: no profile")
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "gravatar provider: profile")
	}

	name := entry.DisplayName
	if name == "" {
		name = entry.Name.Formatted
	}

	return &model.PartialIdentity{
		Source:      g.Name(),
		Name:        name,
		Location:    entry.CurrentLocation,
		LinkedInURL: linkedInFromEntry(entry),
		Bio:         entry.AboutMe,
	}, nil
}

// linkedInFromEntry prefers the verified "linkedin" account and falls back
// to scanning the free-form URL list.
func linkedInFromEntry(entry *gravatar.Entry) string {
	for _, acct := range entry.Accounts {
		if acct.Shortname == "linkedin" && acct.URL != "" {
			return acct.URL
		}
	}
	for _, u := range entry.URLs {
		if found := identity.FindLinkedInURL(u.Value); found != "" {
			return found
		}
	}
	return ""
}
