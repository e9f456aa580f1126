package semver

import (
	"fmt"
	"strings"

	"github.com/matzehuels/verbump/pkg/errors"
)

// Op is a comparator operator.
type Op int

const (
	Exact Op = iota
	Greater
	GreaterEq
	Less
	LessEq
	Tilde
	Caret
)

var opPrefixes = [...]string{
	Exact:     "=",
	Greater:   ">",
	GreaterEq: ">=",
	Less:      "<",
	LessEq:    "<=",
	Tilde:     "~",
	Caret:     "^",
}

// String returns the operator as written in a requirement.
func (o Op) String() string {
	if o < 0 || int(o) >= len(opPrefixes) {
		return "?"
	}
	return opPrefixes[o]
}

// Comparator is a single version requirement clause. Minor and Patch are nil
// when the clause omits them; a nil Minor implies a nil Patch, and only a
// clause with a patch may carry a prerelease.
type Comparator struct {
	Op    Op
	Major uint64
	Minor *uint64
	Patch *uint64
	Pre   Prerelease
}

// ComparatorFrom returns a comparator pinned to the full version v.
func ComparatorFrom(v Version, op Op) Comparator {
	minor, patch := v.Minor, v.Patch
	return Comparator{Op: op, Major: v.Major, Minor: &minor, Patch: &patch, Pre: v.Pre}
}

// ParseComparator parses a requirement clause such as "^1.2", ">=0.3.1",
// "~1.2.x" or "=1.0.0-rc.1". A clause without an operator is a caret
// requirement. A leading "v" and whitespace after the operator are
// tolerated; "x", "X" and "*" mark an omitted component.
func ParseComparator(text string) (Comparator, error) {
	s := strings.TrimSpace(text)
	c := Comparator{Op: Caret}

	for _, op := range []Op{GreaterEq, LessEq, Exact, Greater, Less, Tilde, Caret} {
		if rest, ok := strings.CutPrefix(s, op.String()); ok {
			c.Op, s = op, rest
			break
		}
	}
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")

	if strings.Contains(s, "+") {
		return Comparator{}, errors.MalformedVersion("build", text)
	}
	core, pre, hasPre := strings.Cut(s, "-")

	parts := strings.Split(core, ".")
	if len(parts) > 3 {
		return Comparator{}, errors.MalformedVersion("version", text)
	}

	names := []string{"major", "minor", "patch"}
	var nums []uint64
	for i, part := range parts {
		if isWildcard(part) {
			// Everything after a wildcard must be a wildcard too.
			for _, rest := range parts[i+1:] {
				if !isWildcard(rest) {
					return Comparator{}, errors.MalformedVersion(names[i+1], text)
				}
			}
			break
		}
		n, err := parseNumeric(part)
		if err != nil {
			return Comparator{}, errors.MalformedVersion(names[i], text)
		}
		nums = append(nums, n)
	}

	if len(nums) == 0 {
		return Comparator{}, errors.MalformedVersion("major", text)
	}
	c.Major = nums[0]
	if len(nums) > 1 {
		c.Minor = &nums[1]
	}
	if len(nums) > 2 {
		c.Patch = &nums[2]
	}

	if hasPre {
		if c.Patch == nil || pre == "" {
			return Comparator{}, errors.MalformedVersion("prerelease", text)
		}
		p, err := ParsePrerelease(pre)
		if err != nil {
			return Comparator{}, err
		}
		c.Pre = p
	}
	return c, nil
}

// MustParseComparator is like [ParseComparator] but panics on error.
func MustParseComparator(text string) Comparator {
	c, err := ParseComparator(text)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Comparator) String() string {
	var b strings.Builder
	b.WriteString(c.Op.String())
	fmt.Fprintf(&b, "%d", c.Major)
	if c.Minor != nil {
		fmt.Fprintf(&b, ".%d", *c.Minor)
		if c.Patch != nil {
			fmt.Fprintf(&b, ".%d", *c.Patch)
		}
	}
	if c.Pre != "" {
		b.WriteString("-" + string(c.Pre))
	}
	return b.String()
}

// Equal reports whether c and o are the same clause.
func (c Comparator) Equal(o Comparator) bool {
	return c.Op == o.Op &&
		c.Major == o.Major &&
		equalPtr(c.Minor, o.Minor) &&
		equalPtr(c.Patch, o.Patch) &&
		c.Pre == o.Pre
}

// WithRelease returns c with its operator replaced according to a stable
// release: Major accepts any newer version, Minor compatible upgrades and
// Patch patch-level upgrades. A nil or non-stable release leaves c unchanged.
func (c Comparator) WithRelease(r *Release) Comparator {
	if r == nil || !r.IsStable() {
		return c
	}
	switch r.Kind {
	case Major:
		c.Op = Greater
	case Minor:
		c.Op = Caret
	case Patch:
		c.Op = Tilde
	}
	return c
}

// Requirement returns the requirement derived from c and an optional release
// override.
func (c Comparator) Requirement(r *Release) Requirement {
	return Requirement{Comparator: c.WithRelease(r)}
}

// Normalize truncates target to the precision of c. A target derived from a
// full version keeps only the components c itself spells out, so "^1.2"
// moves to "^1.3" rather than "^1.3.0".
func (c Comparator) Normalize(target Comparator) Comparator {
	if c.Patch == nil {
		target.Patch = nil
		target.Pre = ""
	}
	if c.Minor == nil {
		target.Minor = nil
	}
	return target
}

func isWildcard(s string) bool {
	return s == "x" || s == "X" || s == "*"
}

func equalPtr(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
