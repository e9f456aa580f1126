// Package deps models declared dependencies and resolves their upgrade
// targets.
//
// # Overview
//
// A [Package] is one manifest on disk. Its [Tree] lists the dependencies it
// declares, each a [Dependency] carrying a name, a [semver.Comparator] and
// the section ([Kind]) it came from. The tree's [Agent] decides which
// registry resolves the names.
//
// # Fetching
//
// [Fetch] fills every dependency's candidate versions concurrently:
//
//	cache := deps.NewVersionCache()
//	err := deps.Fetch(ctx, trees, registry, cache, deps.FetchOptions{})
//
// The [VersionCache] is scoped to one batch. Dependencies sharing an
// (ecosystem, name) pair across trees cause one registry call. Any failure
// aborts the batch and leaves the trees untouched.
//
// # Targets
//
// [Dependency.Target] picks the best candidate for the dependency's
// requirement, optionally widened by a stable [semver.Release], and returns
// the comparator to write back:
//
//	// "^1.2.0" with candidates 1.2.0, 1.3.0, 2.0.0
//	t, ok := dep.Target(nil) // "^1.3.0", true
//
// Manifest formats live in subpackages: [javascript] for package.json,
// [rust] for Cargo.toml and [tauri] for tauri.conf.json. [search] discovers
// them on disk.
//
// [semver.Comparator]: github.com/matzehuels/verbump/pkg/semver.Comparator
// [semver.Release]: github.com/matzehuels/verbump/pkg/semver.Release
// [javascript]: github.com/matzehuels/verbump/pkg/deps/javascript
// [rust]: github.com/matzehuels/verbump/pkg/deps/rust
// [tauri]: github.com/matzehuels/verbump/pkg/deps/tauri
// [search]: github.com/matzehuels/verbump/pkg/deps/search
package deps
