// Package pipeline runs update and bump operations over a set of packages.
//
// An update fetches candidate versions for every declared dependency,
// resolves targets, and reports per package only the dependencies that
// would change. A bump computes each package's next version. Both are split
// into a planning step and an apply step so callers can preview and confirm
// before anything is written.
//
// # Usage
//
//	runner := pipeline.NewRunner(registry, logger)
//	results, err := runner.Update(ctx, packages, pipeline.UpdateOptions{
//	    Release: &semver.Release{Kind: semver.Minor},
//	})
//	if err != nil {
//	    return err
//	}
//	err = runner.Apply(ctx, results)
//
// Results are deterministic: packages sort by name then manifest path, and
// dependencies by kind then name.
package pipeline

import (
	"slices"

	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/semver"
)

// =============================================================================
// Update
// =============================================================================

// UpdateOptions selects which dependencies an update considers.
type UpdateOptions struct {
	// Release widens or narrows each requirement before matching. Nil keeps
	// every requirement as declared.
	Release *semver.Release

	Include []string // Only these dependency names, when non-empty
	Exclude []string // Never these dependency names
	Peer    bool     // Only peer dependencies; otherwise peers are skipped
	Jobs    int      // Concurrent registry lookups, 0 for no limit
}

// Validate rejects option combinations that cannot select anything.
func (o UpdateOptions) Validate() error {
	if o.Release != nil && !o.Release.IsStable() {
		return errors.New(errors.ErrCodeInvalidInput, "update release must be major, minor or patch, got %s", o.Release)
	}
	if o.Jobs < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "jobs must not be negative")
	}
	for _, name := range o.Include {
		if slices.Contains(o.Exclude, name) {
			return errors.New(errors.ErrCodeInvalidInput, "%s is both included and excluded", name)
		}
	}
	return nil
}

// keep reports whether d survives the selection filters.
func (o UpdateOptions) keep(d *deps.Dependency) bool {
	if len(d.Versions) == 0 {
		return false
	}
	if slices.Contains(o.Exclude, d.Name) {
		return false
	}
	if len(o.Include) > 0 && !slices.Contains(o.Include, d.Name) {
		return false
	}
	return d.Kind.IsPeer() == o.Peer
}

// UpdateResult lists the targets found for one package.
type UpdateResult struct {
	Package deps.Package
	// Tree holds only the dependencies that have a target, in the same
	// order as Targets.
	Tree    *deps.Tree
	Targets []deps.Target
}

// =============================================================================
// Bump
// =============================================================================

// BumpResult is the planned version change of one package.
type BumpResult struct {
	Package deps.Package
	From    semver.Version
	To      semver.Version
}
