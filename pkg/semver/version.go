package semver

import (
	"fmt"
	"strconv"
	"strings"

	msemver "github.com/Masterminds/semver/v3"

	"github.com/matzehuels/verbump/pkg/errors"
)

// Version is a semantic version. Build metadata is informational only and
// is ignored by [Version.Compare].
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
	Pre   Prerelease
	Build string
}

// New returns the stable version major.minor.patch.
func New(major, minor, patch uint64) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// Parse parses s as a strict semantic version. A leading "v" is rejected,
// as are leading zeros and missing components. Surrounding whitespace is
// trimmed.
func Parse(s string) (Version, error) {
	raw := s
	s = strings.TrimSpace(s)

	sv, err := msemver.StrictNewVersion(s)
	if err != nil {
		return Version{}, malformed(s, raw)
	}

	// Checked again for what the strict parser lets through, such as "1.0.0-"
	// or "1.0.0+a..b".
	rest, build, hasBuild := strings.Cut(s, "+")
	_, pre, hasPre := strings.Cut(rest, "-")
	if hasPre {
		if _, err := ParsePrerelease(pre); err != nil || pre == "" {
			return Version{}, errors.MalformedVersion("prerelease", pre)
		}
	}
	if hasBuild {
		if _, err := ParseBuild(build); err != nil {
			return Version{}, err
		}
	}
	return fromLib(sv), nil
}

// malformed names the first component of s that does not parse.
func malformed(s, raw string) error {
	rest, build, hasBuild := strings.Cut(s, "+")
	core, pre, hasPre := strings.Cut(rest, "-")

	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return errors.MalformedVersion("version", raw)
	}
	for i, name := range []string{"major", "minor", "patch"} {
		if _, err := parseNumeric(parts[i]); err != nil {
			return errors.MalformedVersion(name, raw)
		}
	}
	if hasPre {
		if _, err := ParsePrerelease(pre); err != nil || pre == "" {
			return errors.MalformedVersion("prerelease", pre)
		}
	}
	if hasBuild {
		return errors.MalformedVersion("build", build)
	}
	return errors.MalformedVersion("version", raw)
}

// MustParse is like [Parse] but panics on error. Intended for tests and
// package-level values.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// ParseBuild validates build metadata: non-empty dot-separated identifiers
// of [0-9A-Za-z-]. Leading zeros are allowed.
func ParseBuild(s string) (string, error) {
	if !nonEmptyIdentifiers(s) {
		return "", errors.MalformedVersion("build", s)
	}
	if _, err := msemver.New(0, 0, 0, "", "").SetMetadata(s); err != nil {
		return "", errors.MalformedVersion("build", s)
	}
	return s, nil
}

func (v Version) String() string {
	return v.lib().String()
}

// Compare returns -1, 0 or +1 by semver precedence.
func (v Version) Compare(o Version) int {
	return v.lib().Compare(o.lib())
}

// Less reports whether v has lower precedence than o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// IsPrerelease reports whether v carries a prerelease.
func (v Version) IsPrerelease() bool { return v.Pre != "" }

// Base returns v without prerelease and build metadata.
func (v Version) Base() Version { return New(v.Major, v.Minor, v.Patch) }

func (v Version) lib() *msemver.Version {
	return msemver.New(v.Major, v.Minor, v.Patch, string(v.Pre), v.Build)
}

func fromLib(sv *msemver.Version) Version {
	return Version{
		Major: sv.Major(),
		Minor: sv.Minor(),
		Patch: sv.Patch(),
		Pre:   Prerelease(sv.Prerelease()),
		Build: sv.Metadata(),
	}
}

func parseNumeric(s string) (uint64, error) {
	if !isNumeric(s) || (len(s) > 1 && s[0] == '0') {
		return 0, fmt.Errorf("invalid numeric component %q", s)
	}
	return strconv.ParseUint(s, 10, 64)
}

// nonEmptyIdentifiers reports whether s is a non-empty dot-separated list
// with no empty identifier.
func nonEmptyIdentifiers(s string) bool {
	if s == "" {
		return false
	}
	for _, id := range strings.Split(s, ".") {
		if id == "" {
			return false
		}
	}
	return true
}
