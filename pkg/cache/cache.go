// Package cache provides byte-oriented response caches for registry clients.
//
// Three backends implement [Cache]:
//
//   - [NullCache]: never stores anything (the default; every run talks to
//     the registries)
//   - [FileCache]: one JSON file per entry under a cache directory
//   - [RedisCache]: entries in Redis with native expiry
//
// The cache sits below the registry clients only. Version resolution keeps
// its own run-scoped deduplication and never depends on what is cached here.
//
// Keys are produced by a [Keyer] so that responses from different registries
// (for example a private npm mirror and registry.npmjs.org) never collide.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads with an optional time-to-live.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the payload for key and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
