// Package provider defines the interface and implementations for identity
// sources consulted by the waterfall.
package provider

import (
	"context"
	"slices"

	"github.com/sells-group/linkedin-lookup/internal/model"
)

// Stage controls when a provider runs relative to the others.
type Stage int

const (
	// StageSequential providers run one after another, before any parallel
	// provider starts.
	StageSequential Stage = iota
	// StageParallel providers run concurrently once the sequential stage is
	// done.
	StageParallel
)

// String returns the stage name used in logs.
func (s Stage) String() string {
	switch s {
	case StageSequential:
		return "sequential"
	case StageParallel:
		return "parallel"
	default:
		return "unknown"
	}
}

// Provider is a single identity source.
type Provider interface {
	// Name returns the provider identifier (apollo, github, gravatar).
	Name() string
	// Stage reports whether the provider runs in the sequential or parallel stage.
	Stage() Stage
	// Enabled is false when the provider lacks credentials and must be skipped.
	Enabled() bool
	// Lookup resolves the query. A nil identity with a nil error means the
	// source has no record of the person.
	Lookup(ctx context.Context, q model.Query) (*model.PartialIdentity, error)
}

// Registry holds providers in priority order. It is fixed at construction.
type Registry struct {
	providers []Provider
}

// NewRegistry creates a registry with the given providers, highest priority
// first.
func NewRegistry(providers ...Provider) *Registry {
	return &Registry{providers: slices.Clone(providers)}
}

// List returns all registered provider names in priority order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.providers))
	for _, p := range r.providers {
		names = append(names, p.Name())
	}
	return names
}

// Providers returns a copy of the registered providers in priority order.
func (r *Registry) Providers() []Provider {
	return slices.Clone(r.providers)
}
