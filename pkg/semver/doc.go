// Package semver implements the version algebra used by verbump.
//
// # Versions
//
// [Version] is a strict semantic version: three numeric components without
// leading zeros, an optional [Prerelease] and optional build metadata. Build
// metadata is carried through [Version.String] but never affects ordering.
//
//	v, err := semver.Parse("1.4.0-beta.2+sha.5114f85")
//
// # Releases
//
// A [Release] describes how a version should move: one of the stable kinds
// ([Major], [Minor], [Patch]), a prerelease kind ([PreMajor], [PreMinor],
// [PrePatch], [PreRelease]) or a [Literal] target. [Version.Increment]
// applies it:
//
//	r, _ := semver.ParseRelease("preminor", semver.WithPrerelease("rc"))
//	next, _ := v.Increment(r) // 1.5.0-rc.1
//
// # Comparators
//
// A [Comparator] is a single requirement clause such as "^1.2", "~0.3.1" or
// "=2.0.0-rc.1", with Cargo range semantics. [Comparator.Requirement] turns it
// into a [Requirement], optionally widened or narrowed by a stable release:
//
//	Major -> Greater  (any newer version)
//	Minor -> Caret    (compatible upgrades)
//	Patch -> Tilde    (patch-level upgrades)
//
// Prerelease candidates only match a comparator that itself carries a
// prerelease on the same major.minor.patch.
//
// All parse failures are reported as MALFORMED_VERSION_COMPONENT errors from
// [github.com/matzehuels/verbump/pkg/errors].
package semver
