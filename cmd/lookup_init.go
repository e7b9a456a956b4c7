package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/sells-group/linkedin-lookup/internal/config"
	"github.com/sells-group/linkedin-lookup/internal/lookup"
	"github.com/sells-group/linkedin-lookup/internal/monitoring"
	"github.com/sells-group/linkedin-lookup/internal/resilience"
	"github.com/sells-group/linkedin-lookup/internal/search"
	"github.com/sells-group/linkedin-lookup/internal/waterfall"
	"github.com/sells-group/linkedin-lookup/internal/waterfall/provider"
	"github.com/sells-group/linkedin-lookup/pkg/apollo"
	"github.com/sells-group/linkedin-lookup/pkg/github"
	"github.com/sells-group/linkedin-lookup/pkg/google"
	"github.com/sells-group/linkedin-lookup/pkg/gravatar"
	"github.com/sells-group/linkedin-lookup/pkg/jina"
)

// lookupEnv holds the resolver and its metrics registry, shared by the
// lookup/batch/serve commands.
type lookupEnv struct {
	Resolver *lookup.Resolver
	Registry *prometheus.Registry
}

// initLookup builds every client, the source registry, and the resolver
// from c. Sources without credentials are registered but disabled.
func initLookup(c *config.Config) (*lookupEnv, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := monitoring.NewMetrics(reg)

	registry := provider.NewRegistry(
		provider.NewApollo(newApolloClient(c.Apollo)),
		provider.NewGitHub(github.NewClient(
			github.WithBaseURL(c.GitHub.BaseURL),
			github.WithToken(c.GitHub.Token),
			github.WithRequestsPerMinute(c.GitHub.SearchRequestsPerMinute()),
		)),
		provider.NewGravatar(gravatar.NewClient(gravatar.WithBaseURL(c.Gravatar.BaseURL))),
	)
	exec := waterfall.NewExecutor(registry,
		waterfall.WithSourceTimeout(c.Lookup.SourceTimeout()),
		waterfall.WithMetrics(metrics),
		waterfall.WithBreakers(newBreakers(c.Lookup)),
	)

	searcher := search.New(newSearchBackend(c),
		search.WithTimeout(c.Lookup.SearchTimeout()),
		search.WithMetrics(metrics),
	)

	zap.L().Info("lookup initialized",
		zap.Strings("sources", registry.List()),
		zap.Bool("apollo", c.Apollo.Key != ""),
		zap.Bool("github_token", c.GitHub.Token != ""),
		zap.String("search_provider", c.Search.Provider),
		zap.Bool("search_enabled", searcher.Enabled()),
	)

	return &lookupEnv{
		Resolver: lookup.NewResolver(exec, searcher, lookup.WithMetrics(metrics)),
		Registry: reg,
	}, nil
}

// newBreakers builds the per-source circuit breakers.
func newBreakers(c config.LookupConfig) *resilience.Breakers {
	return resilience.NewBreakers(resilience.Config{
		FailureThreshold: c.BreakerFailures,
		ResetTimeout:     time.Duration(c.BreakerResetSecs) * time.Second,
		OnStateChange: func(name string, from, to resilience.State) {
			zap.L().Warn("source circuit state changed",
				zap.String("source", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
}

// newApolloClient returns nil without an API key, which disables the source.
func newApolloClient(c config.ApolloConfig) apollo.Client {
	if c.Key == "" {
		zap.L().Debug("apollo key not set, paid identity match disabled")
		return nil
	}
	return apollo.NewClient(c.Key, apollo.WithBaseURL(c.BaseURL))
}

// newSearchBackend returns nil when the selected provider lacks credentials.
func newSearchBackend(c *config.Config) search.Backend {
	if !c.SearchEnabled() {
		zap.L().Warn("web search not configured, profile search disabled",
			zap.String("provider", c.Search.Provider),
		)
		return nil
	}
	switch c.Search.Provider {
	case config.SearchJina:
		return search.NewJinaBackend(jina.NewClient(c.Jina.Key,
			jina.WithSearchBaseURL(c.Jina.SearchBaseURL),
		))
	default:
		return search.NewGoogleBackend(google.NewClient(c.Google.Key, c.Google.CX,
			google.WithBaseURL(c.Google.BaseURL),
			google.WithRateLimit(c.Google.QueriesPerSecond),
		))
	}
}
