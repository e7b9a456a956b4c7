// Package monitoring exposes Prometheus metrics for lookups.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcomes recorded by RequestDone.
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

// Metrics holds the lookup collectors. A nil *Metrics is valid and records
// nothing, so packages can take one without guarding every call.
type Metrics struct {
	requests      *prometheus.CounterVec
	sourceResults *prometheus.CounterVec
	searchQueries *prometheus.CounterVec
	duration      prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lookup_requests_total",
			Help: "Lookups by final outcome.",
		}, []string{"outcome"}),
		sourceResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lookup_source_results_total",
			Help: "Identity source calls by source and result.",
		}, []string{"source", "result"}),
		searchQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lookup_search_queries_total",
			Help: "Web search queries issued, by tier.",
		}, []string{"tier"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lookup_duration_seconds",
			Help:    "End-to-end lookup latency.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}),
	}
	reg.MustRegister(m.requests, m.sourceResults, m.searchQueries, m.duration)
	return m
}

// RequestDone records a finished lookup.
func (m *Metrics) RequestDone(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}

// SourceResult records one identity source call.
func (m *Metrics) SourceResult(source, result string) {
	if m == nil {
		return
	}
	m.sourceResults.WithLabelValues(source, result).Inc()
}

// SearchQuery records one web search call in the given tier.
func (m *Metrics) SearchQuery(tier string) {
	if m == nil {
		return
	}
	m.searchQueries.WithLabelValues(tier).Inc()
}
