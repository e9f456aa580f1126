package deps

import (
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/verbump/pkg/integrations"
	"github.com/matzehuels/verbump/pkg/observability"
	"github.com/matzehuels/verbump/pkg/semver"
)

type cacheKey struct {
	eco  integrations.Ecosystem
	name string
}

// VersionCache remembers the versions fetched for each (ecosystem, name)
// during one batch. It is safe for concurrent use. Construct one per batch;
// entries never expire.
type VersionCache struct {
	mu      sync.Mutex
	entries map[cacheKey][]semver.Version
}

// NewVersionCache returns an empty cache.
func NewVersionCache() *VersionCache {
	return &VersionCache{entries: make(map[cacheKey][]semver.Version)}
}

// Get returns a copy of the versions stored for (eco, name).
func (c *VersionCache) Get(ctx context.Context, eco integrations.Ecosystem, name string) ([]semver.Version, bool) {
	c.mu.Lock()
	vs, ok := c.entries[cacheKey{eco, name}]
	c.mu.Unlock()

	if !ok {
		observability.Cache().OnCacheMiss(ctx, "versions")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "versions")
	return slices.Clone(vs), true
}

// Insert stores versions for (eco, name) unless an entry already exists.
// It reports whether the entry was stored.
func (c *VersionCache) Insert(ctx context.Context, eco integrations.Ecosystem, name string, versions []semver.Version) bool {
	c.mu.Lock()
	key := cacheKey{eco, name}
	_, exists := c.entries[key]
	if !exists {
		c.entries[key] = slices.Clone(versions)
	}
	c.mu.Unlock()

	if !exists {
		observability.Cache().OnCacheSet(ctx, "versions", len(versions))
	}
	return !exists
}

// Len returns the number of entries.
func (c *VersionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
