// Package registry routes version lookups to the client for an ecosystem.
package registry

import (
	"context"
	"errors"

	verrors "github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/integrations"
)

// Source lists the published versions of one package.
// [npm.Client] and [crates.Client] implement it.
//
// [npm.Client]: github.com/matzehuels/verbump/pkg/integrations/npm
// [crates.Client]: github.com/matzehuels/verbump/pkg/integrations/crates
type Source interface {
	Versions(ctx context.Context, name string, refresh bool) ([]integrations.VersionEntry, error)
}

// Registry dispatches lookups by ecosystem.
type Registry struct {
	sources map[integrations.Ecosystem]Source
	refresh bool
}

// Option configures a [Registry].
type Option func(*Registry)

// WithSource registers src for eco, replacing any previous source.
func WithSource(eco integrations.Ecosystem, src Source) Option {
	return func(r *Registry) { r.sources[eco] = src }
}

// WithRefresh bypasses response caches on every lookup.
func WithRefresh(refresh bool) Option {
	return func(r *Registry) { r.refresh = refresh }
}

// New creates a Registry from the given sources.
func New(opts ...Option) *Registry {
	r := &Registry{sources: make(map[integrations.Ecosystem]Source)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Versions returns every published version of name in eco.
//
// Failures are reported as structured errors:
//   - NOT_A_PACKAGE_MANAGER when no source serves eco
//   - UNPARSABLE_REGISTRY_RESPONSE when the registry answered with garbage
//   - REGISTRY_UNAVAILABLE for everything else (network, 5xx, unknown package)
func (r *Registry) Versions(ctx context.Context, eco integrations.Ecosystem, name string) ([]integrations.VersionEntry, error) {
	src, ok := r.sources[eco]
	if !ok {
		return nil, verrors.New(verrors.ErrCodeNotAPackageManager, "no registry for ecosystem %q", eco)
	}

	entries, err := src.Versions(ctx, name, r.refresh)
	if err == nil {
		return entries, nil
	}

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, err
	case errors.Is(err, integrations.ErrUnparsable):
		return nil, verrors.Wrap(verrors.ErrCodeUnparsableResponse, err, "%s registry response for %s", eco, name)
	case errors.Is(err, integrations.ErrNotFound):
		return nil, verrors.Wrap(verrors.ErrCodeRegistryUnavailable,
			verrors.Wrap(verrors.ErrCodePackageNotFound, err, "%s not found", name),
			"fetch %s from %s", name, eco)
	default:
		return nil, verrors.Wrap(verrors.ErrCodeRegistryUnavailable, err, "fetch %s from %s", name, eco)
	}
}
