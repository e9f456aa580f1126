package semver

import (
	"strconv"
	"strings"

	msemver "github.com/Masterminds/semver/v3"

	"github.com/matzehuels/verbump/pkg/errors"
)

// Prerelease is a dot-separated list of prerelease identifiers, such as
// "beta.2". The zero value means no prerelease.
type Prerelease string

// ParsePrerelease validates s as a prerelease. Identifiers must be non-empty,
// made of [0-9A-Za-z-], and numeric identifiers must not have leading zeros.
func ParsePrerelease(s string) (Prerelease, error) {
	if s == "" {
		return "", nil
	}
	if !nonEmptyIdentifiers(s) {
		return "", errors.MalformedVersion("prerelease", s)
	}
	for _, id := range strings.Split(s, ".") {
		if isNumeric(id) && len(id) > 1 && id[0] == '0' {
			return "", errors.MalformedVersion("prerelease", s)
		}
	}
	if _, err := msemver.New(0, 0, 0, "", "").SetPrerelease(s); err != nil {
		return "", errors.MalformedVersion("prerelease", s)
	}
	return Prerelease(s), nil
}

// IsEmpty reports whether p has no identifiers.
func (p Prerelease) IsEmpty() bool { return p == "" }

func (p Prerelease) String() string { return string(p) }

// Identifiers returns the dot-separated identifiers of p.
func (p Prerelease) Identifiers() []string {
	if p == "" {
		return nil
	}
	return strings.Split(string(p), ".")
}

// Leading returns the first identifier of p, or "" when p is empty.
func (p Prerelease) Leading() string {
	id, _, _ := strings.Cut(string(p), ".")
	return id
}

// Compare orders prereleases by semver precedence. An empty prerelease is
// greater than any non-empty one, so a release sorts after its prereleases.
func (p Prerelease) Compare(o Prerelease) int {
	if p == o {
		return 0
	}
	return msemver.New(0, 0, 0, string(p), "").Compare(msemver.New(0, 0, 0, string(o), ""))
}

// numericTail splits p into everything before its last identifier and the
// value of that identifier, when the last identifier is numeric.
func (p Prerelease) numericTail() (Prerelease, uint64, bool) {
	ids := p.Identifiers()
	if len(ids) == 0 {
		return "", 0, false
	}
	last := ids[len(ids)-1]
	if !isNumeric(last) {
		return "", 0, false
	}
	n, err := strconv.ParseUint(last, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return Prerelease(strings.Join(ids[:len(ids)-1], ".")), n, true
}

// withTail appends n as a numeric identifier to prefix.
func withTail(prefix Prerelease, n uint64) Prerelease {
	tail := strconv.FormatUint(n, 10)
	if prefix == "" {
		return Prerelease(tail)
	}
	return prefix + "." + Prerelease(tail)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
