package deps

import (
	"github.com/matzehuels/verbump/pkg/semver"
)

// Dependency is one declared requirement of a package together with the
// candidate versions fetched for it.
type Dependency struct {
	Name       string
	Comparator semver.Comparator
	Kind       Kind

	// Versions is filled by Fetch. It holds only parsable versions the
	// registry did not exclude, in no particular order.
	Versions []semver.Version
}

// Target is the replacement comparator for a dependency.
type Target struct {
	Dependency *Dependency
	Comparator semver.Comparator
}

// From returns the comparator being replaced.
func (t Target) From() semver.Comparator { return t.Dependency.Comparator }

// Target resolves the comparator d should be rewritten to.
//
// The requirement comes from d's comparator, widened by release when it is a
// stable release. The best matching candidate becomes a new comparator with
// d's original operator, truncated to the original precision. No target is
// reported when nothing matches, when the result equals the current
// comparator, or when the result would exclude the selected version. The
// last case covers the strict operators: "<2.0.0" never becomes "<1.9.0".
func (d *Dependency) Target(release *semver.Release) (Target, bool) {
	req := d.Comparator.Requirement(release)
	best, ok := semver.SelectBest(req, d.Versions)
	if !ok {
		return Target{}, false
	}

	next := d.Comparator.Normalize(semver.ComparatorFrom(best, d.Comparator.Op))
	if next.Equal(d.Comparator) || !next.Requirement(nil).Matches(best) {
		return Target{}, false
	}
	return Target{Dependency: d, Comparator: next}, true
}

// Available returns the newest stable candidate as a comparator in the
// original operator and precision, for versions the target's requirement
// does not reach. It reports false when the target already covers it.
func (t Target) Available() (semver.Comparator, bool) {
	latest, ok := t.Dependency.Latest()
	if !ok {
		return semver.Comparator{}, false
	}
	if best, ok := semver.SelectBest(t.Comparator.Requirement(nil), t.Dependency.Versions); ok && latest.Compare(best) <= 0 {
		return semver.Comparator{}, false
	}
	from := t.From()
	c := from.Normalize(semver.ComparatorFrom(latest, from.Op))
	if c.Equal(t.Comparator) {
		return semver.Comparator{}, false
	}
	return c, true
}

// Latest returns the highest stable candidate, regardless of the comparator.
func (d *Dependency) Latest() (semver.Version, bool) {
	var latest semver.Version
	found := false
	for _, v := range d.Versions {
		if v.IsPrerelease() {
			continue
		}
		if !found || v.Compare(latest) > 0 {
			latest, found = v, true
		}
	}
	return latest, found
}

// Less orders dependencies by kind precedence, then name.
func (d *Dependency) Less(o *Dependency) bool {
	if d.Kind != o.Kind {
		return d.Kind < o.Kind
	}
	return d.Name < o.Name
}
