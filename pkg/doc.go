// Package pkg provides the libraries behind verbump.
//
// # Overview
//
// verbump keeps dependency requirements current and bumps package versions
// across package.json, Cargo.toml and tauri.conf.json manifests. The pkg
// directory is organized into four areas:
//
//  1. [semver] - Versions, release kinds and the comparator algebra
//  2. [deps] - Manifests, dependency trees, version fetching and targets
//  3. [integrations] - npm and crates.io registry clients
//  4. [pipeline] - Orchestration (search → fetch → target → persist)
//
// Supporting packages: [cache] for registry responses, [config] for
// settings, [errors] for coded errors and [observability] for hooks.
//
// # Architecture
//
//	Manifests on disk
//	         ↓
//	    [deps/search] (discover packages)
//	         ↓
//	    [deps] Fetch (one registry call per ecosystem and name)
//	         ↓
//	    [deps] Dependency.Target (best version under the requirement)
//	         ↓
//	    deps.Package.Persist (rewrite requirements in place)
//
// [semver]: github.com/matzehuels/verbump/pkg/semver
// [deps]: github.com/matzehuels/verbump/pkg/deps
// [deps/search]: github.com/matzehuels/verbump/pkg/deps/search
// [integrations]: github.com/matzehuels/verbump/pkg/integrations
// [pipeline]: github.com/matzehuels/verbump/pkg/pipeline
// [cache]: github.com/matzehuels/verbump/pkg/cache
// [config]: github.com/matzehuels/verbump/pkg/config
// [errors]: github.com/matzehuels/verbump/pkg/errors
// [observability]: github.com/matzehuels/verbump/pkg/observability
package pkg
