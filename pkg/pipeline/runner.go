package pipeline

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/observability"
	"github.com/matzehuels/verbump/pkg/semver"
)

// Runner executes update and bump operations.
//
// The Runner holds no per-run state: each Update builds its own version
// cache, so one Runner can serve concurrent calls.
type Runner struct {
	Registry deps.Registry
	Logger   *log.Logger

	// Exec runs lockfile refreshes. Nil means [RunCommand].
	Exec Exec
}

// NewRunner creates a runner resolving versions through reg.
// If logger is nil, log.Default() is used.
func NewRunner(reg deps.Registry, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Registry: reg, Logger: logger}
}

// Update finds the dependencies of packages that have a newer acceptable
// version. Packages without any target are left out of the result.
func (r *Runner) Update(ctx context.Context, packages []deps.Package, opts UpdateOptions) ([]UpdateResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := r.Logger.With("run", runID[:8])

	trees := make([]*deps.Tree, len(packages))
	total := 0
	for i, pkg := range packages {
		trees[i] = pkg.DependencyTree()
		total += trees[i].Len()
	}

	logger.Debug("fetching versions", "packages", len(packages), "dependencies", total)
	observability.Pipeline().OnFetchStart(ctx, runID, total)
	start := time.Now()

	err := deps.Fetch(ctx, trees, r.Registry, deps.NewVersionCache(), deps.FetchOptions{
		Limit:  opts.Jobs,
		Logger: logger,
	})
	elapsed := time.Since(start)
	observability.Pipeline().OnFetchComplete(ctx, runID, total, elapsed, err)
	if err != nil {
		return nil, err
	}
	logger.Debug("fetched versions", "dependencies", total, "duration", elapsed.Round(time.Millisecond))

	var results []UpdateResult
	for i, pkg := range packages {
		tree := trees[i]
		tree.Filter(opts.keep)
		tree.Sort()

		targets := make([]deps.Target, 0, tree.Len())
		for _, d := range tree.Dependencies {
			if t, ok := d.Target(opts.Release); ok {
				targets = append(targets, t)
			}
		}
		if len(targets) == 0 {
			continue
		}

		tree.Filter(func(d *deps.Dependency) bool {
			return slices.ContainsFunc(targets, func(t deps.Target) bool { return t.Dependency == d })
		})
		for _, t := range targets {
			observability.Pipeline().OnTarget(ctx, runID, pkg.Name(), t.Dependency.Name,
				t.From().String(), t.Comparator.String())
		}
		results = append(results, UpdateResult{Package: pkg, Tree: tree, Targets: targets})
	}

	slices.SortStableFunc(results, func(a, b UpdateResult) int {
		return deps.Compare(a.Package, b.Package)
	})
	logger.Debug("resolved targets", "packages", len(results))
	return results, nil
}

// Apply writes every result's targets to its manifest.
func (r *Runner) Apply(ctx context.Context, results []UpdateResult) error {
	for _, res := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := res.Package.Persist(res.Targets); err != nil {
			return err
		}
		r.Logger.Info("updated dependencies", "package", res.Package.Name(), "count", len(res.Targets))
	}
	return nil
}

// Bump computes the next version of every package under release.
func (r *Runner) Bump(ctx context.Context, packages []deps.Package, release semver.Release) ([]BumpResult, error) {
	results := make([]BumpResult, 0, len(packages))
	for _, pkg := range packages {
		from, err := pkg.Version()
		if err != nil {
			return nil, err
		}
		to, err := from.Increment(release)
		if err != nil {
			return nil, err
		}
		results = append(results, BumpResult{Package: pkg, From: from, To: to})
	}
	slices.SortStableFunc(results, func(a, b BumpResult) int {
		return deps.Compare(a.Package, b.Package)
	})
	r.Logger.Debug("planned bump", "release", release, "packages", len(results))
	return results, nil
}

// ApplyBump writes every planned version to its manifest.
func (r *Runner) ApplyBump(ctx context.Context, results []BumpResult) error {
	for _, res := range results {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := res.Package.SetVersion(res.To); err != nil {
			return err
		}
		observability.Pipeline().OnBump(ctx, res.Package.Name(), res.From.String(), res.To.String())
		r.Logger.Info("bumped version", "package", res.Package.Name(), "from", res.From, "to", res.To)
	}
	return nil
}
