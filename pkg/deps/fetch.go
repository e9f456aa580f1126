package deps

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/integrations"
	"github.com/matzehuels/verbump/pkg/semver"
)

// Registry lists the published versions of a package.
// [registry.Registry] is the production implementation.
//
// [registry.Registry]: github.com/matzehuels/verbump/pkg/integrations/registry
type Registry interface {
	Versions(ctx context.Context, eco integrations.Ecosystem, name string) ([]integrations.VersionEntry, error)
}

// FetchOptions configures [Fetch].
type FetchOptions struct {
	Limit  int         // Maximum concurrent lookups, 0 for no limit
	Logger *log.Logger // Debug output (default: discard)
}

// WithDefaults returns a copy of o with zero values replaced by defaults.
func (o FetchOptions) WithDefaults() FetchOptions {
	opts := o
	if opts.Limit < 0 {
		opts.Limit = 0
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

// Fetch fills the Versions of every dependency in trees.
//
// One lookup runs per dependency. Lookups for the same (ecosystem, name)
// share a single registry call through cache. Versions the registry excludes
// and strings that do not parse are dropped.
//
// The first failure aborts the batch: Fetch returns it and leaves every tree
// as it was. On success each tree holds its populated dependencies, in no
// particular order.
func Fetch(ctx context.Context, trees []*Tree, reg Registry, cache *VersionCache, opts FetchOptions) error {
	opts = opts.WithDefaults()

	for _, t := range trees {
		if _, ok := t.Agent.Ecosystem(); !ok && t.Len() > 0 {
			return errors.New(errors.ErrCodeNotAPackageManager, "%s does not resolve dependencies", t.Agent)
		}
	}

	f := &fetcher{
		registry: reg,
		cache:    cache,
		logger:   opts.Logger,
		results:  make(map[*Tree][]*Dependency, len(trees)),
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.Limit > 0 {
		g.SetLimit(opts.Limit)
	}
	for _, t := range trees {
		eco, _ := t.Agent.Ecosystem()
		for _, d := range t.Dependencies {
			g.Go(func() error {
				return f.resolve(gctx, t, eco, d)
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, t := range trees {
		t.Dependencies = f.results[t]
	}
	return nil
}

// fetcher holds the state shared by the lookups of one batch. The version
// cache and the result collection are guarded by separate locks and no
// lookup holds both at once.
type fetcher struct {
	registry Registry
	cache    *VersionCache
	logger   *log.Logger
	group    singleflight.Group

	mu      sync.Mutex
	results map[*Tree][]*Dependency
}

func (f *fetcher) resolve(ctx context.Context, t *Tree, eco integrations.Ecosystem, d *Dependency) error {
	versions, err := f.versions(ctx, eco, d.Name)
	if err != nil {
		return err
	}

	populated := *d
	populated.Versions = versions

	f.mu.Lock()
	f.results[t] = append(f.results[t], &populated)
	f.mu.Unlock()
	return nil
}

func (f *fetcher) versions(ctx context.Context, eco integrations.Ecosystem, name string) ([]semver.Version, error) {
	if vs, ok := f.cache.Get(ctx, eco, name); ok {
		f.logger.Debug("version cache hit", "ecosystem", eco, "name", name)
		return vs, nil
	}

	v, err, _ := f.group.Do(string(eco)+"\x00"+name, func() (any, error) {
		// A lookup that finished between our miss and this call has
		// already filled the cache.
		if vs, ok := f.cache.Get(ctx, eco, name); ok {
			return vs, nil
		}

		start := time.Now()
		entries, err := f.registry.Versions(ctx, eco, name)
		if err != nil {
			return nil, err
		}
		vs := parseEntries(entries)
		f.cache.Insert(ctx, eco, name, vs)
		f.logger.Debug("fetched versions", "ecosystem", eco, "name", name,
			"versions", len(vs), "took", time.Since(start).Round(time.Millisecond))
		return vs, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers sharing one flight must not share the backing array.
	vs := v.([]semver.Version)
	return append([]semver.Version(nil), vs...), nil
}

func parseEntries(entries []integrations.VersionEntry) []semver.Version {
	vs := make([]semver.Version, 0, len(entries))
	for _, e := range entries {
		if e.Excluded {
			continue
		}
		v, err := semver.Parse(e.Version)
		if err != nil {
			continue
		}
		vs = append(vs, v)
	}
	return vs
}
