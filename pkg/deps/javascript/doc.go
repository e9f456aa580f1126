// Package javascript reads and rewrites package.json manifests.
//
// # Dependencies
//
// The dependencies, devDependencies and peerDependencies objects become
// [deps.Normal], [deps.Development] and [deps.Peer] dependencies. The
// packageManager field ("pnpm@9.1.0") becomes a [deps.PackageManager]
// dependency pinned to its exact version.
//
// A bare version ("1.2.3") pins exactly, as npm reads it. Requirements the
// version algebra cannot express, such as "workspace:*", git URLs, dist-tags
// or multi-clause ranges, are left out of the tree and never rewritten.
//
// # Agent
//
// The agent comes from the packageManager field when present, otherwise
// from the lockfile next to the manifest (pnpm-lock.yaml, yarn.lock),
// otherwise npm.
//
// # Editing
//
// [Package.Persist] and [Package.SetVersion] replace only the string values
// they change, so indentation, key order and trailing newlines survive.
//
// [deps.Normal]: github.com/matzehuels/verbump/pkg/deps.Normal
// [deps.Development]: github.com/matzehuels/verbump/pkg/deps.Development
// [deps.Peer]: github.com/matzehuels/verbump/pkg/deps.Peer
// [deps.PackageManager]: github.com/matzehuels/verbump/pkg/deps.PackageManager
package javascript
