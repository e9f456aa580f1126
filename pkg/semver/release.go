package semver

import (
	"math"
	"strings"

	msemver "github.com/Masterminds/semver/v3"

	"github.com/matzehuels/verbump/pkg/errors"
)

// ReleaseKind is the axis a [Release] moves a version along.
type ReleaseKind int

const (
	Major ReleaseKind = iota
	Minor
	Patch
	PreMajor
	PreMinor
	PrePatch
	PreRelease
	Literal
)

var releaseKindNames = [...]string{
	Major:      "major",
	Minor:      "minor",
	Patch:      "patch",
	PreMajor:   "premajor",
	PreMinor:   "preminor",
	PrePatch:   "prepatch",
	PreRelease: "prerelease",
	Literal:    "literal",
}

func (k ReleaseKind) String() string {
	if k < 0 || int(k) >= len(releaseKindNames) {
		return "unknown"
	}
	return releaseKindNames[k]
}

// Release is an immutable request to increment a version.
//
// Pre is the prerelease identifier used by the Pre* kinds. Build is attached
// to the result of every kind except [Literal]. Literal holds the target
// version for the [Literal] kind.
type Release struct {
	Kind    ReleaseKind
	Pre     Prerelease
	Build   string
	Literal Version
}

// ReleaseOption supplies the parts of a [Release] given separately from its
// kind, such as a --pre or --build flag.
type ReleaseOption func(*Release) error

// WithPrerelease sets the prerelease identifier. An empty id is ignored.
func WithPrerelease(id string) ReleaseOption {
	return func(r *Release) error {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil
		}
		pre, err := ParsePrerelease(id)
		if err != nil {
			return err
		}
		r.Pre = pre
		return nil
	}
}

// WithBuild sets the build metadata. Empty metadata is ignored.
func WithBuild(meta string) ReleaseOption {
	return func(r *Release) error {
		meta = strings.TrimSpace(meta)
		if meta == "" {
			return nil
		}
		build, err := ParseBuild(meta)
		if err != nil {
			return err
		}
		r.Build = build
		return nil
	}
}

// ParseRelease parses a release kind name (case-insensitive, whitespace
// trimmed). Anything that is not a kind name is parsed as a literal version.
//
// Options are not applied to a [Literal] release; the literal's own
// prerelease and build are used as written.
func ParseRelease(text string, opts ...ReleaseOption) (Release, error) {
	name := strings.ToLower(strings.TrimSpace(text))
	for kind, n := range releaseKindNames {
		if n == name && ReleaseKind(kind) != Literal {
			r := Release{Kind: ReleaseKind(kind)}
			for _, opt := range opts {
				if err := opt(&r); err != nil {
					return Release{}, err
				}
			}
			return r, nil
		}
	}

	v, err := Parse(text)
	if err != nil {
		return Release{}, err
	}
	return Release{Kind: Literal, Literal: v}, nil
}

// IsStable reports whether r is one of [Major], [Minor] or [Patch]. Only
// stable releases widen or narrow dependency requirements.
func (r Release) IsStable() bool {
	return r.Kind == Major || r.Kind == Minor || r.Kind == Patch
}

func (r Release) String() string {
	if r.Kind == Literal {
		return r.Literal.String()
	}
	return r.Kind.String()
}

// Increment returns the version that results from applying r to v.
//
// Stable kinds bump one component and zero the ones below it. Pre* kinds do
// the same and start a new "<id>.1" prerelease, except that a version already
// on the requested prerelease train for the target base continues it
// ("2.0.0-rc.1" premajor rc gives "2.0.0-rc.2"). PreRelease continues the
// current train, or behaves as PrePatch for a stable version.
//
// The result always has greater precedence than v, except for [Literal].
func (v Version) Increment(r Release) (Version, error) {
	var next Version

	switch r.Kind {
	case Major, Minor, Patch:
		var err error
		if next, err = v.bump(r.Kind); err != nil {
			return Version{}, err
		}

	case PreMajor, PreMinor, PrePatch:
		if r.Pre == "" {
			return Version{}, missingPrerelease(r)
		}
		var err error
		if next, err = v.preBump(r.Kind, r.Pre); err != nil {
			return Version{}, err
		}

	case PreRelease:
		var err error
		if next, err = v.nextPrerelease(r.Pre); err != nil {
			return Version{}, err
		}

	case Literal:
		return r.Literal, nil

	default:
		return Version{}, errors.New(errors.ErrCodeInvalidInput, "unknown release kind %d", r.Kind)
	}

	next.Build = r.Build
	return next, nil
}

// bump moves the base of v one step along kind's axis. A component already
// at its maximum cannot move.
func (v Version) bump(kind ReleaseKind) (Version, error) {
	base := v.Base().lib()
	var next msemver.Version
	switch kind {
	case Major, PreMajor:
		if v.Major == math.MaxUint64 {
			return Version{}, overflow("major", v)
		}
		next = base.IncMajor()
	case Minor, PreMinor:
		if v.Minor == math.MaxUint64 {
			return Version{}, overflow("minor", v)
		}
		next = base.IncMinor()
	default:
		if v.Patch == math.MaxUint64 {
			return Version{}, overflow("patch", v)
		}
		next = base.IncPatch()
	}
	return fromLib(&next), nil
}

func overflow(component string, v Version) *errors.Error {
	return errors.New(errors.ErrCodeInvalidInput, "cannot increment %s of %s", component, v)
}

// preBump starts or continues the id train on the base selected by kind.
// A prerelease whose base already sits on that axis (x.0.0 for premajor,
// x.y.0 for preminor) is continued instead of bumped again.
func (v Version) preBump(kind ReleaseKind, id Prerelease) (Version, error) {
	if v.Pre != "" && v.onAxis(kind) {
		if next, ok := v.continueTrain(id); ok {
			return next, nil
		}
	}
	next, err := v.bump(kind)
	if err != nil {
		return Version{}, err
	}
	next.Pre = id + ".1"
	return next, nil
}

func (v Version) onAxis(kind ReleaseKind) bool {
	switch kind {
	case PreMajor:
		return v.Minor == 0 && v.Patch == 0
	case PreMinor:
		return v.Patch == 0
	}
	return true
}

// continueTrain advances v's prerelease when it belongs to the id train:
// "<id>.<n>" becomes "<id>.<n+1>" and a bare "<id>" becomes "<id>.1".
func (v Version) continueTrain(id Prerelease) (Version, bool) {
	next := v.Base()
	if v.Pre == id {
		next.Pre = id + ".1"
		return next, true
	}
	if prefix, n, ok := v.Pre.numericTail(); ok && prefix == id {
		next.Pre = withTail(prefix, n+1)
		return next, true
	}
	return Version{}, false
}

func (v Version) nextPrerelease(id Prerelease) (Version, error) {
	if v.Pre == "" {
		if id == "" {
			return Version{}, missingPrerelease(Release{Kind: PreRelease})
		}
		return v.preBump(PrePatch, id)
	}

	if id == "" {
		prefix, n, ok := v.Pre.numericTail()
		if !ok {
			return Version{}, missingPrerelease(Release{Kind: PreRelease})
		}
		next := v.Base()
		next.Pre = withTail(prefix, n+1)
		return next, nil
	}

	if next, ok := v.continueTrain(id); ok {
		return next, nil
	}

	// Switching trains stays on the same base when that still moves forward.
	next := v.Base()
	next.Pre = id + ".1"
	if next.Compare(v) > 0 {
		return next, nil
	}
	return v.preBump(PrePatch, id)
}

func missingPrerelease(r Release) *errors.Error {
	return errors.New(errors.ErrCodeMissingPrereleaseID, "%s requires a prerelease identifier", r.Kind)
}
