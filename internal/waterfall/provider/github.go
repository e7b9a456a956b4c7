package provider

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/linkedin-lookup/internal/identity"
	"github.com/sells-group/linkedin-lookup/internal/model"
	"github.com/sells-group/linkedin-lookup/pkg/github"
)

// GitHub finds the developer profile registered to the email and scans it
// for a LinkedIn link.
type GitHub struct {
	client github.Client
}

// NewGitHub wraps a GitHub client.
func NewGitHub(client github.Client) *GitHub {
	return &GitHub{client: client}
}

// Name implements Provider.
func (g *GitHub) Name() string { return "github" }

// Stage implements Provider.
func (g *GitHub) Stage() Stage { return StageParallel }

// Enabled implements Provider. GitHub works without a token.
func (g *GitHub) Enabled() bool { return g.client != nil }

// Lookup implements Provider.
func (g *GitHub) Lookup(ctx context.Context, q model.Query) (*model.PartialIdentity, error) {
	found, err := g.client.SearchUsers(ctx, q.Email+" in:email")
	if eris.Is(err, github.ErrRateLimited) {
		zap.L().Debug("github: search budget spent, treating as no record")
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "github provider: search")
	}
	if len(found.Items) == 0 {
		zap.L().Debug("github: no users found")
		return nil, nil
	}

	user, err := g.client.GetUser(ctx, found.Items[0].Login)
	if err != nil {
		return nil, eris.Wrap(err, "github provider: profile")
	}

	url := identity.FindLinkedInURL(user.Bio)
	if url == "" {
		url = identity.FindLinkedInURL(user.Blog)
	}

	return &model.PartialIdentity{
		Source:      g.Name(),
		Name:        user.Name,
		Company:     strings.TrimPrefix(user.Company, "@"),
		Location:    user.Location,
		LinkedInURL: url,
		Bio:         user.Bio,
	}, nil
}
