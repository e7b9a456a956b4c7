package search

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/linkedin-lookup/pkg/google"
	"github.com/sells-group/linkedin-lookup/pkg/jina"
)

// Profile-page restriction applied in the strict tier, and the loose keyword
// appended in the fuzzy tier.
const (
	googleSiteFilter = " site:linkedin.com/in"
	jinaSiteFilter   = "linkedin.com"
	fuzzyKeyword     = " linkedin"
)

// Hit is one raw web result.
type Hit struct {
	Title   string
	URL     string
	Snippet string
}

// Backend is a web search provider. When restrict is true the query is
// limited to LinkedIn profile pages; otherwise it is a loose keyword search
// that lets the provider apply its own spelling correction.
type Backend interface {
	Name() string
	Search(ctx context.Context, query string, restrict bool) ([]Hit, error)
}

// GoogleBackend searches with the Google Custom Search JSON API.
type GoogleBackend struct {
	client google.Client
}

// NewGoogleBackend wraps a Custom Search client.
func NewGoogleBackend(client google.Client) *GoogleBackend {
	return &GoogleBackend{client: client}
}

// Name implements Backend.
func (b *GoogleBackend) Name() string { return "google" }

// Search implements Backend.
func (b *GoogleBackend) Search(ctx context.Context, query string, restrict bool) ([]Hit, error) {
	if restrict {
		query += googleSiteFilter
	} else {
		query += fuzzyKeyword
	}

	resp, err := b.client.Search(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "search: google")
	}

	hits := make([]Hit, 0, len(resp.Items))
	for _, it := range resp.Items {
		hits = append(hits, Hit{Title: it.Title, URL: it.Link, Snippet: it.Snippet})
	}
	return hits, nil
}

// JinaBackend searches with Jina AI Search.
type JinaBackend struct {
	client jina.Client
}

// NewJinaBackend wraps a Jina client.
func NewJinaBackend(client jina.Client) *JinaBackend {
	return &JinaBackend{client: client}
}

// Name implements Backend.
func (b *JinaBackend) Name() string { return "jina" }

// Search implements Backend.
func (b *JinaBackend) Search(ctx context.Context, query string, restrict bool) ([]Hit, error) {
	var opts []jina.SearchOption
	if restrict {
		opts = append(opts, jina.WithSiteFilter(jinaSiteFilter))
	} else {
		query += fuzzyKeyword
	}

	resp, err := b.client.Search(ctx, query, opts...)
	if err != nil {
		return nil, eris.Wrap(err, "search: jina")
	}

	hits := make([]Hit, 0, len(resp.Data))
	for _, r := range resp.Data {
		snippet := r.Description
		if snippet == "" {
			snippet = r.Content
		}
		hits = append(hits, Hit{Title: r.Title, URL: r.URL, Snippet: snippet})
	}
	return hits, nil
}
