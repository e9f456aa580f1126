// Package integrations provides HTTP clients for package registry APIs.
//
// # Overview
//
// This package contains low-level API clients that list the published
// versions of a package. Each registry has its own subpackage:
//
//   - [npm]: the npm registry, shared by npm, pnpm and yarn projects
//   - [crates]: Rust crates.io
//
// [registry.Registry] routes an [Ecosystem] to the matching client and
// converts client failures into structured errors.
//
// # Client Pattern
//
// All registry clients follow a consistent pattern:
//
//	client := npm.NewClient(backend, time.Hour, "")         // cache, TTL, base URL
//	entries, err := client.Versions(ctx, "react", false)    // false = use cache
//
// Clients handle:
//   - HTTP requests with optional retry
//   - Response caching through [cache.Cache] (disabled by default)
//   - API-specific parsing and normalization into [VersionEntry]
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all registry
// clients: default headers, status mapping ([ErrNotFound], [ErrNetwork]),
// decode failures ([ErrUnparsable]) and the Cached helper.
//
// # Adding a New Registry
//
// To add support for a new package registry:
//
//  1. Create a subpackage: pkg/integrations/<registry>/
//  2. Define response structs matching the API schema
//  3. Embed [*Client] and implement Versions
//  4. Add an [Ecosystem] constant and route it in pkg/integrations/registry
//
// [npm]: github.com/matzehuels/verbump/pkg/integrations/npm
// [crates]: github.com/matzehuels/verbump/pkg/integrations/crates
// [registry.Registry]: github.com/matzehuels/verbump/pkg/integrations/registry
package integrations
