package semver

import (
	"testing"

	"github.com/matzehuels/verbump/pkg/errors"
)

func TestParseRelease(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []ReleaseOption
		want  Release
	}{
		{"major", "major", nil, Release{Kind: Major}},
		{"case and space", "  MiNoR ", nil, Release{Kind: Minor}},
		{"patch with build", "patch", []ReleaseOption{WithBuild("ci.42")}, Release{Kind: Patch, Build: "ci.42"}},
		{"premajor", "premajor", []ReleaseOption{WithPrerelease("alpha")}, Release{Kind: PreMajor, Pre: "alpha"}},
		{"preminor", "preminor", []ReleaseOption{WithPrerelease("rc")}, Release{Kind: PreMinor, Pre: "rc"}},
		{"prepatch", "prepatch", []ReleaseOption{WithPrerelease("beta"), WithBuild("x")}, Release{Kind: PrePatch, Pre: "beta", Build: "x"}},
		{"prerelease without id", "prerelease", []ReleaseOption{WithPrerelease("")}, Release{Kind: PreRelease}},
		{"literal", "2.1.0-rc.1", nil, Release{Kind: Literal, Literal: MustParse("2.1.0-rc.1")}},
		{"literal ignores options", "2.1.0", []ReleaseOption{WithBuild("x")}, Release{Kind: Literal, Literal: MustParse("2.1.0")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRelease(tt.input, tt.opts...)
			if err != nil {
				t.Fatalf("ParseRelease() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseRelease() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseReleaseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []ReleaseOption
	}{
		{"unknown word", "huge", nil},
		{"bad literal", "1.2", nil},
		{"bad prerelease id", "premajor", []ReleaseOption{WithPrerelease("be ta")}},
		{"bad build", "major", []ReleaseOption{WithBuild("a..b")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRelease(tt.input, tt.opts...)
			if !errors.Is(err, errors.ErrCodeMalformedVersion) {
				t.Errorf("ParseRelease(%q) error = %v, want %v", tt.input, err, errors.ErrCodeMalformedVersion)
			}
		})
	}
}

func TestIsStable(t *testing.T) {
	tests := []struct {
		kind ReleaseKind
		want bool
	}{
		{Major, true},
		{Minor, true},
		{Patch, true},
		{PreMajor, false},
		{PreMinor, false},
		{PrePatch, false},
		{PreRelease, false},
		{Literal, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := (Release{Kind: tt.kind}).IsStable(); got != tt.want {
				t.Errorf("IsStable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIncrement(t *testing.T) {
	tests := []struct {
		name    string
		version string
		release Release
		want    string
	}{
		{"major", "1.2.3", Release{Kind: Major}, "2.0.0"},
		{"minor", "1.2.3", Release{Kind: Minor}, "1.3.0"},
		{"patch", "1.2.3", Release{Kind: Patch}, "1.2.4"},
		{"major clears prerelease", "1.2.3-rc.1+old", Release{Kind: Major}, "2.0.0"},
		{"patch clears build", "1.2.3+old", Release{Kind: Patch}, "1.2.4"},
		{"minor sets build", "1.2.3", Release{Kind: Minor, Build: "ci.9"}, "1.3.0+ci.9"},

		{"premajor", "1.2.3", Release{Kind: PreMajor, Pre: "alpha"}, "2.0.0-alpha.1"},
		{"preminor", "1.2.3", Release{Kind: PreMinor, Pre: "beta"}, "1.3.0-beta.1"},
		{"prepatch", "1.2.3", Release{Kind: PrePatch, Pre: "rc"}, "1.2.4-rc.1"},
		{"prepatch with build", "1.2.3", Release{Kind: PrePatch, Pre: "rc", Build: "b1"}, "1.2.4-rc.1+b1"},
		{"premajor continues train", "2.0.0-rc.1", Release{Kind: PreMajor, Pre: "rc"}, "2.0.0-rc.2"},
		{"preminor continues train", "1.3.0-beta.4", Release{Kind: PreMinor, Pre: "beta"}, "1.3.0-beta.5"},
		{"premajor off axis", "1.3.0-beta.4", Release{Kind: PreMajor, Pre: "beta"}, "2.0.0-beta.1"},
		{"premajor other id", "2.0.0-alpha.3", Release{Kind: PreMajor, Pre: "beta"}, "3.0.0-beta.1"},
		{"prepatch bare id", "1.2.3-rc", Release{Kind: PrePatch, Pre: "rc"}, "1.2.3-rc.1"},

		{"prerelease on stable", "1.2.3", Release{Kind: PreRelease, Pre: "alpha"}, "1.2.4-alpha.1"},
		{"prerelease numeric tail", "1.2.4-alpha.1", Release{Kind: PreRelease}, "1.2.4-alpha.2"},
		{"prerelease same id", "1.2.4-alpha.9", Release{Kind: PreRelease, Pre: "alpha"}, "1.2.4-alpha.10"},
		{"prerelease numeric only", "1.2.4-3", Release{Kind: PreRelease}, "1.2.4-4"},
		{"prerelease switch forward", "1.2.4-alpha.2", Release{Kind: PreRelease, Pre: "beta"}, "1.2.4-beta.1"},
		{"prerelease switch backward", "1.2.4-rc.2", Release{Kind: PreRelease, Pre: "alpha"}, "1.2.5-alpha.1"},
		{"prerelease bare id with id", "1.2.4-beta", Release{Kind: PreRelease, Pre: "beta"}, "1.2.4-beta.1"},
		{"prerelease keeps build", "1.2.4-alpha.1", Release{Kind: PreRelease, Build: "sha"}, "1.2.4-alpha.2+sha"},

		{"literal", "1.2.3", Release{Kind: Literal, Literal: MustParse("0.1.0")}, "0.1.0"},
		{"literal ignores build", "1.2.3", Release{Kind: Literal, Literal: MustParse("5.0.0"), Build: "x"}, "5.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MustParse(tt.version).Increment(tt.release)
			if err != nil {
				t.Fatalf("Increment() error: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("Increment(%s, %s) = %s, want %s", tt.version, tt.release, got, tt.want)
			}
		})
	}
}

func TestIncrementMissingPrerelease(t *testing.T) {
	tests := []struct {
		name    string
		version string
		release Release
	}{
		{"premajor", "1.0.0", Release{Kind: PreMajor}},
		{"preminor", "1.0.0", Release{Kind: PreMinor}},
		{"prepatch", "1.0.0", Release{Kind: PrePatch}},
		{"prerelease on stable", "1.0.0", Release{Kind: PreRelease}},
		{"prerelease without numeric tail", "1.0.0-beta", Release{Kind: PreRelease}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MustParse(tt.version).Increment(tt.release)
			if !errors.Is(err, errors.ErrCodeMissingPrereleaseID) {
				t.Errorf("Increment() error = %v, want %v", err, errors.ErrCodeMissingPrereleaseID)
			}
		})
	}
}

var sampleVersions = []string{
	"0.0.0",
	"0.0.1",
	"0.1.0",
	"1.0.0",
	"1.2.3",
	"1.2.3+build",
	"1.0.0-alpha",
	"1.0.0-alpha.1",
	"2.0.0-rc.2",
	"3.1.0-beta",
	"3.1.4-beta.7+exp",
	"10.20.30",
}

func TestIncrementStableZeroesLowerComponents(t *testing.T) {
	for _, s := range sampleVersions {
		v := MustParse(s)
		for _, kind := range []ReleaseKind{Major, Minor, Patch} {
			got, err := v.Increment(Release{Kind: kind})
			if err != nil {
				t.Fatalf("Increment(%s, %s) error: %v", s, kind, err)
			}
			if got.Pre != "" || got.Build != "" {
				t.Errorf("Increment(%s, %s) = %s, want no prerelease or build", s, kind, got)
			}
			switch kind {
			case Major:
				if got.Minor != 0 || got.Patch != 0 {
					t.Errorf("Increment(%s, major) = %s, want x.0.0", s, got)
				}
			case Minor:
				if got.Major != v.Major || got.Patch != 0 {
					t.Errorf("Increment(%s, minor) = %s, want %d.y.0", s, got, v.Major)
				}
			}

			withBuild, _ := v.Increment(Release{Kind: kind, Build: "meta"})
			if withBuild.Build != "meta" {
				t.Errorf("Increment(%s, %s+meta).Build = %q, want %q", s, kind, withBuild.Build, "meta")
			}
		}
	}
}

func TestIncrementMonotonic(t *testing.T) {
	releases := []Release{
		{Kind: Major},
		{Kind: Minor},
		{Kind: Patch},
		{Kind: PreMajor, Pre: "alpha"},
		{Kind: PreMinor, Pre: "beta"},
		{Kind: PrePatch, Pre: "rc"},
		{Kind: PreMajor, Pre: "rc"},
		{Kind: PreRelease, Pre: "alpha"},
		{Kind: PreRelease, Pre: "beta"},
		{Kind: PreRelease, Pre: "zeta"},
	}

	for _, s := range sampleVersions {
		v := MustParse(s)
		for _, r := range releases {
			got, err := v.Increment(r)
			if err != nil {
				t.Fatalf("Increment(%s, %s/%s) error: %v", s, r, r.Pre, err)
			}
			if got.Compare(v) <= 0 {
				t.Errorf("Increment(%s, %s/%s) = %s, want greater than input", s, r, r.Pre, got)
			}
		}
	}
}

func TestIncrementOverflow(t *testing.T) {
	tests := []struct {
		version string
		release Release
	}{
		{"18446744073709551615.0.0", Release{Kind: Major}},
		{"1.18446744073709551615.0", Release{Kind: Minor}},
		{"1.2.18446744073709551615", Release{Kind: Patch}},
		{"18446744073709551615.0.0", Release{Kind: PreMajor, Pre: "rc"}},
		{"1.2.18446744073709551615", Release{Kind: PreRelease, Pre: "rc"}},
	}

	for _, tt := range tests {
		t.Run(tt.version+"/"+tt.release.String(), func(t *testing.T) {
			got, err := MustParse(tt.version).Increment(tt.release)
			if err == nil {
				t.Fatalf("Increment() = %s, want error", got)
			}
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Increment() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}
