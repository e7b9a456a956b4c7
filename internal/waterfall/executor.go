package waterfall

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/linkedin-lookup/internal/model"
	"github.com/sells-group/linkedin-lookup/internal/monitoring"
	"github.com/sells-group/linkedin-lookup/internal/resilience"
	"github.com/sells-group/linkedin-lookup/internal/waterfall/provider"
)

// Executor runs the identity sources for a query: the sequential stage in
// priority order, then the parallel stage concurrently with a join barrier.
type Executor struct {
	registry      *provider.Registry
	sourceTimeout time.Duration
	metrics       *monitoring.Metrics
	breakers      *resilience.Breakers
}

// Option configures an Executor.
type Option func(*Executor)

// WithSourceTimeout bounds each provider call. Zero disables the bound.
func WithSourceTimeout(d time.Duration) Option {
	return func(e *Executor) {
		e.sourceTimeout = d
	}
}

// WithMetrics records per-source results.
func WithMetrics(m *monitoring.Metrics) Option {
	return func(e *Executor) {
		e.metrics = m
	}
}

// WithBreakers skips a source while its circuit is open.
func WithBreakers(b *resilience.Breakers) Option {
	return func(e *Executor) {
		e.breakers = b
	}
}

// NewExecutor creates a waterfall executor.
func NewExecutor(registry *provider.Registry, opts ...Option) *Executor {
	e := &Executor{registry: registry}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Run consults every registered provider. Provider failures never fail the
// run; they are logged and recorded as StatusError, or StatusNotFound when the
// source timed out. The only error returned
// is the caller's context being done.
func (e *Executor) Run(ctx context.Context, q model.Query) (*Result, error) {
	providers := e.registry.Providers()
	result := &Result{Sources: make([]SourceResult, len(providers))}

	var parallel []int
	for i, p := range providers {
		if p.Stage() == provider.StageParallel {
			parallel = append(parallel, i)
			continue
		}
		result.Sources[i] = e.call(ctx, p, q)
	}

	// Each goroutine owns one slot of result.Sources.
	g, gctx := errgroup.WithContext(ctx)
	for _, i := range parallel {
		p := providers[i]
		g.Go(func() error {
			result.Sources[i] = e.call(gctx, p, q)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (e *Executor) call(ctx context.Context, p provider.Provider, q model.Query) SourceResult {
	sr := SourceResult{Source: p.Name(), Stage: p.Stage()}
	log := zap.L().With(zap.String("source", p.Name()))

	if !p.Enabled() {
		sr.Status = StatusSkipped
		log.Debug("waterfall: source disabled, skipping")
		e.metrics.SourceResult(sr.Source, string(sr.Status))
		return sr
	}

	var breaker *resilience.Breaker
	if e.breakers != nil {
		breaker = e.breakers.Get(p.Name())
		if err := breaker.Allow(); err != nil {
			sr.Status = StatusSkipped
			sr.Err = err
			log.Debug("waterfall: circuit open, skipping")
			e.metrics.SourceResult(sr.Source, string(sr.Status))
			return sr
		}
	}

	callCtx := ctx
	if e.sourceTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.sourceTimeout)
		defer cancel()
	}

	start := time.Now()
	id, err := p.Lookup(callCtx, q)
	sr.Duration = time.Since(start)

	// A source that ran out of its own time budget has no record for us.
	timedOut := err != nil && ctx.Err() == nil && eris.Is(callCtx.Err(), context.DeadlineExceeded)

	if breaker != nil {
		if ctx.Err() != nil || timedOut {
			breaker.Release()
		} else {
			breaker.Record(err)
		}
	}

	switch {
	case timedOut:
		sr.Status = StatusNotFound
		sr.Err = err
		log.Warn("waterfall: source timed out",
			zap.Duration("duration", sr.Duration),
			zap.Error(err),
		)
	case err != nil:
		sr.Status = StatusError
		sr.Err = err
		log.Warn("waterfall: source failed",
			zap.Duration("duration", sr.Duration),
			zap.Error(err),
		)
	case id == nil:
		sr.Status = StatusNotFound
		log.Debug("waterfall: source has no record", zap.Duration("duration", sr.Duration))
	default:
		sr.Status = StatusFound
		id.Source = p.Name()
		sr.Identity = id
		log.Info("waterfall: source found identity",
			zap.String("name", id.Name),
			zap.String("company", id.Company),
			zap.String("linkedin_url", id.LinkedInURL),
			zap.Duration("duration", sr.Duration),
		)
	}

	e.metrics.SourceResult(sr.Source, string(sr.Status))
	return sr
}
