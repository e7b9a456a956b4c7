package provider

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/linkedin-lookup/internal/model"
	"github.com/sells-group/linkedin-lookup/pkg/apollo"
)

// Apollo is the paid identity-match source.
type Apollo struct {
	client apollo.Client
}

// NewApollo wraps an Apollo client. A nil client yields a disabled provider.
func NewApollo(client apollo.Client) *Apollo {
	return &Apollo{client: client}
}

// Name implements Provider.
func (a *Apollo) Name() string { return "apollo" }

// Stage implements Provider.
func (a *Apollo) Stage() Stage { return StageSequential }

// Enabled implements Provider.
func (a *Apollo) Enabled() bool { return a.client != nil }

// Lookup implements Provider.
func (a *Apollo) Lookup(ctx context.Context, q model.Query) (*model.PartialIdentity, error) {
	resp, err := a.client.MatchPerson(ctx, matchRequest(q))
	if err != nil {
		return nil, eris.Wrap(err, "apollo provider: match person")
	}
	if resp == nil || resp.Person == nil {
		zap.L().Debug("apollo: no person found")
		return nil, nil
	}

	p := resp.Person
	id := &model.PartialIdentity{
		Source:      a.Name(),
		Name:        p.Name,
		Title:       p.Title,
		LinkedInURL: p.LinkedInURL,
	}
	if p.Organization != nil {
		id.Company = p.Organization.Name
	}
	return id, nil
}

// matchRequest splits a supplied full name into first/last when it has at
// least two tokens; a single token goes in the free-text name field.
func matchRequest(q model.Query) apollo.MatchRequest {
	req := apollo.MatchRequest{Email: q.Email}

	parts := strings.Fields(q.Name)
	switch {
	case len(parts) >= 2:
		req.FirstName = parts[0]
		req.LastName = strings.Join(parts[1:], " ")
	case len(parts) == 1:
		req.Name = parts[0]
	}
	return req
}
