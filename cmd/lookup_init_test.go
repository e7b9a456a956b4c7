package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/linkedin-lookup/internal/config"
	"github.com/sells-group/linkedin-lookup/internal/model"
	"github.com/sells-group/linkedin-lookup/internal/search"
)

// testConfig returns a valid configuration with no credentials.
func testConfig() *config.Config {
	c := &config.Config{}
	c.Server.Port = 3001
	c.Server.ReadTimeoutSecs = 15
	c.Server.WriteTimeoutSecs = 120
	c.Apollo.BaseURL = "http://127.0.0.1:1"
	c.GitHub.BaseURL = "http://127.0.0.1:1"
	c.Gravatar.BaseURL = "http://127.0.0.1:1"
	c.Search.Provider = config.SearchGoogle
	c.Google.BaseURL = "http://127.0.0.1:1"
	c.Jina.SearchBaseURL = "http://127.0.0.1:1"
	c.Lookup.SourceTimeoutSecs = 2
	c.Lookup.SearchTimeoutSecs = 2
	c.Batch.MaxConcurrent = 2
	return c
}

func TestInitLookup_NoCredentials(t *testing.T) {
	env, err := initLookup(testConfig())
	require.NoError(t, err)
	require.NotNil(t, env.Resolver)
	require.NotNil(t, env.Registry)

	mfs, err := env.Registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	assert.True(t, names["go_goroutines"], "go collector should be registered")
}

func TestInitLookup_InvalidConfig(t *testing.T) {
	c := testConfig()
	c.Search.Provider = "bing"

	_, err := initLookup(c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown search.provider")
}

func TestNewSearchBackend(t *testing.T) {
	c := testConfig()
	assert.Nil(t, newSearchBackend(c))

	c.Google.Key = "k"
	c.Google.CX = "cx"
	assert.IsType(t, &search.GoogleBackend{}, newSearchBackend(c))

	c.Search.Provider = config.SearchJina
	assert.Nil(t, newSearchBackend(c), "jina needs its own key")

	c.Jina.Key = "j"
	assert.IsType(t, &search.JinaBackend{}, newSearchBackend(c))
}

func TestNewApolloClient(t *testing.T) {
	assert.Nil(t, newApolloClient(config.ApolloConfig{}))
	assert.NotNil(t, newApolloClient(config.ApolloConfig{Key: "k", BaseURL: "http://x"}))
}

// TestInitLookup_EndToEnd wires every client against fake upstreams.
func TestInitLookup_EndToEnd(t *testing.T) {
	github := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"total_count":0,"items":[]}`))
	}))
	defer github.Close()

	gravatar := httptest.NewServer(http.NotFoundHandler())
	defer gravatar.Close()

	var (
		mu      sync.Mutex
		queries []string
	)
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		mu.Lock()
		queries = append(queries, q)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		if strings.Contains(q, "current") {
			w.Write([]byte(`{"items":[
				{"title":"Jane Doe - Software Engineer - Acme | LinkedIn","link":"https://www.linkedin.com/in/jane-doe","snippet":"Engineer at Acme"},
				{"title":"Bob Roe - Developer - Acme | LinkedIn","link":"https://www.linkedin.com/in/bob-roe","snippet":"Developer"}
			]}`))
			return
		}
		w.Write([]byte(`{"items":[
			{"title":"Jane Doe - Software Engineer - Acme | LinkedIn","link":"https://www.linkedin.com/in/jane-doe","snippet":"Engineer at Acme"}
		]}`))
	}))
	defer google.Close()

	c := testConfig()
	c.GitHub.BaseURL = github.URL
	c.Gravatar.BaseURL = gravatar.URL
	c.Google.BaseURL = google.URL
	c.Google.Key = "k"
	c.Google.CX = "cx"

	env, err := initLookup(c)
	require.NoError(t, err)

	res, err := env.Resolver.Lookup(context.Background(), model.Query{Email: "jane.doe@acme.com"})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", res.SearchedName)
	require.Len(t, res.MatchedProfiles, 1)
	assert.Equal(t, "https://www.linkedin.com/in/jane-doe", res.MatchedProfiles[0].LinkedInURL)
	assert.Equal(t, "Acme", res.CompanyName)
	require.Len(t, res.CompanyEmployees, 1)
	assert.Equal(t, "Bob Roe", res.CompanyEmployees[0].Name)
	assert.Equal(t, model.SourcesChecked{}, res.SourcesChecked)

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, queries)
	assert.Equal(t, `"jane.doe@acme.com" site:linkedin.com/in`, queries[0])
}
