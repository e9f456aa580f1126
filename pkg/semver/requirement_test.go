package semver

import (
	"testing"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		comparator string
		version    string
		want       bool
	}{
		// Exact
		{"=1.2.3", "1.2.3", true},
		{"=1.2.3", "1.2.4", false},
		{"=1.2", "1.2.9", true},
		{"=1.2", "1.3.0", false},
		{"=1", "1.9.9", true},
		{"=1.2.3", "1.2.3-rc.1", false},

		// Exact prerelease train
		{"=1.0.0-beta.1", "1.0.0-beta.1", true},
		{"=1.0.0-beta.1", "1.0.0-beta.2", true},
		{"=1.0.0-beta.1", "1.0.0-beta.0", false},
		{"=1.0.0-beta.1", "1.0.0-rc.1", false},
		{"=1.0.0-beta.1", "1.0.0", false},
		{"=1.0.0-beta.1", "1.0.1-beta.2", false},

		// Greater / GreaterEq
		{">1.2.3", "1.2.4", true},
		{">1.2.3", "1.2.3", false},
		{">1.2", "1.2.9", false},
		{">1.2", "1.3.0", true},
		{">1", "2.0.0", true},
		{">1", "1.9.0", false},
		{">=1.2.3", "1.2.3", true},
		{">=1.2.3", "1.2.2", false},
		{">=1.2", "1.2.0", true},

		// Less / LessEq
		{"<2.0.0", "1.9.9", true},
		{"<2.0.0", "2.0.0", false},
		{"<2", "1.99.0", true},
		{"<2", "2.1.0", false},
		{"<=1.2", "1.2.7", true},
		{"<=1.2", "1.3.0", false},
		{"<1.0.0-rc.1", "1.0.0-beta.9", true},
		{"<1.0.0-rc.1", "1.0.0", false},

		// Tilde
		{"~1.2.3", "1.2.3", true},
		{"~1.2.3", "1.2.9", true},
		{"~1.2.3", "1.3.0", false},
		{"~1.2.3", "1.2.2", false},
		{"~1.2", "1.2.0", true},
		{"~1.2", "1.3.0", false},
		{"~1", "1.9.0", true},
		{"~1", "2.0.0", false},

		// Caret
		{"^1.2.3", "1.2.3", true},
		{"^1.2.3", "1.9.0", true},
		{"^1.2.3", "2.0.0", false},
		{"^1.2.3", "1.2.2", false},
		{"^1.2", "1.2.0", true},
		{"^1.2", "1.1.9", false},
		{"^1", "1.0.0", true},
		{"^1", "2.0.0", false},
		{"^0.2.3", "0.2.9", true},
		{"^0.2.3", "0.3.0", false},
		{"^0.0.3", "0.0.3", true},
		{"^0.0.3", "0.0.4", false},
		{"^0.0", "0.0.7", true},
		{"^0.0", "0.1.0", false},
		{"^0", "0.9.0", true},

		// Prerelease exclusion
		{"^1.2.3", "1.3.0-alpha.1", false},
		{"^1.2.3-alpha.1", "1.2.3-alpha.2", true},
		{"^1.2.3-alpha.1", "1.2.3", true},
		{"^1.2.3-alpha.1", "1.2.4-alpha.1", false},
		{">=1.0.0-rc.1", "1.0.0-rc.2", true},
		{">=1.0.0-rc.1", "2.0.0-rc.1", false},
		{"~1.2.3-beta", "1.2.3-alpha", false},
	}

	for _, tt := range tests {
		t.Run(tt.comparator+" "+tt.version, func(t *testing.T) {
			req := MustParseComparator(tt.comparator).Requirement(nil)
			if got := req.Matches(MustParse(tt.version)); got != tt.want {
				t.Errorf("%s matches %s = %v, want %v", tt.comparator, tt.version, got, tt.want)
			}
		})
	}
}

func TestSelectBest(t *testing.T) {
	candidates := versions("1.2.0", "1.3.0", "1.3.1-rc.1", "2.0.0", "0.9.0")

	tests := []struct {
		comparator string
		release    *Release
		want       string
		ok         bool
	}{
		{"^1.2.0", nil, "1.3.0", true},
		{"~1.2.0", nil, "1.2.0", true},
		{"^1.2.0", &Release{Kind: Major}, "2.0.0", true},
		{"^3", nil, "", false},
		{"^1.3.1-rc.1", nil, "1.3.1-rc.1", true},
	}

	for _, tt := range tests {
		t.Run(tt.comparator, func(t *testing.T) {
			got, ok := SelectBest(MustParseComparator(tt.comparator).Requirement(tt.release), candidates)
			if ok != tt.ok {
				t.Fatalf("SelectBest() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.String() != tt.want {
				t.Errorf("SelectBest() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSelectBestRoundTrip(t *testing.T) {
	// Strict operators exclude their own bound, so the law holds for the
	// inclusive ones.
	ops := []Op{Exact, GreaterEq, LessEq, Tilde, Caret}

	for _, s := range sampleVersions {
		v := MustParse(s)
		for _, op := range ops {
			c := ComparatorFrom(v, op)
			got, ok := SelectBest(c.Requirement(nil), []Version{v})
			if !ok || got != v {
				t.Errorf("round trip %s with %s = %v (%v), want %s", s, op, got, ok, s)
			}
		}
	}
}

func TestWideningExactToMinor(t *testing.T) {
	c := MustParseComparator("=1.2.3")
	req := c.Requirement(&Release{Kind: Minor})

	accept := []string{"1.2.3", "1.2.4", "1.3.0", "1.99.99"}
	reject := []string{"2.0.0", "0.9.0", "1.2.2", "3.2.3"}

	for _, s := range accept {
		if !req.Matches(MustParse(s)) {
			t.Errorf("%s should accept %s", req, s)
		}
	}
	for _, s := range reject {
		if req.Matches(MustParse(s)) {
			t.Errorf("%s should reject %s", req, s)
		}
	}
}

func TestNonStableReleaseDoesNotWiden(t *testing.T) {
	c := MustParseComparator("~1.2.0")
	for _, r := range []*Release{
		{Kind: PreMajor, Pre: "rc"},
		{Kind: PreRelease, Pre: "rc"},
		{Kind: Literal, Literal: MustParse("3.0.0")},
	} {
		req := c.Requirement(r)
		if req.Matches(MustParse("1.3.0")) {
			t.Errorf("%s release widened %s", r, c)
		}
	}
}

func versions(ss ...string) []Version {
	out := make([]Version, len(ss))
	for i, s := range ss {
		out[i] = MustParse(s)
	}
	return out
}
