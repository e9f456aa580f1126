package semver

// Requirement is the set of versions a dependency accepts, derived from its
// [Comparator] by [Comparator.Requirement].
type Requirement struct {
	Comparator Comparator
}

func (r Requirement) String() string { return r.Comparator.String() }

// Matches reports whether v satisfies r.
//
// Partial comparators expand the way Cargo expands them: "^1.2" accepts
// 1.2.0 up to but excluding 2.0.0, "~1" accepts any 1.x.y, ">1.2" accepts
// 1.3.0 and later. A prerelease candidate is only accepted when the
// comparator carries a prerelease on the same major.minor.patch.
//
// An exact comparator with a prerelease follows its train: "=1.0.0-beta.1"
// accepts 1.0.0-beta.2 but neither 1.0.0-rc.1 nor 1.0.0.
func (r Requirement) Matches(v Version) bool {
	c := r.Comparator
	if v.Pre != "" && !c.admitsPrerelease(v) {
		return false
	}

	switch c.Op {
	case Exact:
		if c.Pre != "" {
			return v.Pre.Leading() == c.Pre.Leading() && v.Pre.Compare(c.Pre) >= 0
		}
		return c.matchesExact(v)
	case Greater:
		return c.matchesGreater(v)
	case GreaterEq:
		return c.matchesExact(v) || c.matchesGreater(v)
	case Less:
		return c.matchesLess(v)
	case LessEq:
		return c.matchesExact(v) || c.matchesLess(v)
	case Tilde:
		return c.matchesTilde(v)
	case Caret:
		return c.matchesCaret(v)
	}
	return false
}

// SelectBest returns the candidate with the greatest precedence among those
// matching req.
func SelectBest(req Requirement, candidates []Version) (Version, bool) {
	var best Version
	found := false
	for _, v := range candidates {
		if !req.Matches(v) {
			continue
		}
		if !found || v.Compare(best) > 0 {
			best, found = v, true
		}
	}
	return best, found
}

func (c Comparator) admitsPrerelease(v Version) bool {
	return c.Pre != "" &&
		c.Major == v.Major &&
		c.Minor != nil && *c.Minor == v.Minor &&
		c.Patch != nil && *c.Patch == v.Patch
}

func (c Comparator) matchesExact(v Version) bool {
	if v.Major != c.Major {
		return false
	}
	if c.Minor != nil && v.Minor != *c.Minor {
		return false
	}
	if c.Patch != nil && v.Patch != *c.Patch {
		return false
	}
	return v.Pre == c.Pre
}

func (c Comparator) matchesGreater(v Version) bool {
	if v.Major != c.Major {
		return v.Major > c.Major
	}
	if c.Minor == nil {
		return false
	}
	if v.Minor != *c.Minor {
		return v.Minor > *c.Minor
	}
	if c.Patch == nil {
		return false
	}
	if v.Patch != *c.Patch {
		return v.Patch > *c.Patch
	}
	return v.Pre.Compare(c.Pre) > 0
}

func (c Comparator) matchesLess(v Version) bool {
	if v.Major != c.Major {
		return v.Major < c.Major
	}
	if c.Minor == nil {
		return false
	}
	if v.Minor != *c.Minor {
		return v.Minor < *c.Minor
	}
	if c.Patch == nil {
		return false
	}
	if v.Patch != *c.Patch {
		return v.Patch < *c.Patch
	}
	return v.Pre.Compare(c.Pre) < 0
}

func (c Comparator) matchesTilde(v Version) bool {
	if v.Major != c.Major {
		return false
	}
	if c.Minor != nil && v.Minor != *c.Minor {
		return false
	}
	if c.Patch != nil && v.Patch != *c.Patch {
		return v.Patch > *c.Patch
	}
	return v.Pre.Compare(c.Pre) >= 0
}

func (c Comparator) matchesCaret(v Version) bool {
	if v.Major != c.Major {
		return false
	}
	if c.Minor == nil {
		return true
	}
	minor := *c.Minor
	if c.Patch == nil {
		if c.Major > 0 {
			return v.Minor >= minor
		}
		return v.Minor == minor
	}
	patch := *c.Patch

	switch {
	case c.Major > 0:
		if v.Minor != minor {
			return v.Minor > minor
		}
		if v.Patch != patch {
			return v.Patch > patch
		}
	case minor > 0:
		if v.Minor != minor {
			return false
		}
		if v.Patch != patch {
			return v.Patch > patch
		}
	default:
		if v.Minor != minor || v.Patch != patch {
			return false
		}
	}
	return v.Pre.Compare(c.Pre) >= 0
}
