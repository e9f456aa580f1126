package rust

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/semver"
)

const sample = `[package]
name = "my-crate"
version = "0.3.1"
edition = "2021"

[dependencies]
serde = "1.0"
serde_json = { version = "^1.0.100", features = ["preserve_order"] }
local = { path = "../local" }
shared = { workspace = true }
renamed = { package = "futures", version = "~0.3.28" }
git-only = { git = "https://github.com/example/git-only" }

[dependencies.tokio]
version = "1.35"
features = ["full"]

[dev-dependencies]
serde = "1.0.150"

[build-dependencies]
cc = "=1.0.83"

[target.'cfg(unix)'.dependencies]
libc = "0.2"
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoader_Supports(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"Cargo.toml", true},
		{"cargo.toml", true},
		{"Cargo.lock", false},
		{"package.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := (Loader{}).Supports(tt.filename); got != tt.want {
				t.Errorf("Supports(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	p, err := Load(writeManifest(t, sample))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if p.Name() != "my-crate" {
		t.Errorf("Name() = %q", p.Name())
	}
	if p.Agent() != deps.Cargo {
		t.Errorf("Agent() = %s", p.Agent())
	}
	if v, err := p.Version(); err != nil || v.String() != "0.3.1" {
		t.Errorf("Version() = %v, %v", v, err)
	}
}

func TestDependencyTree(t *testing.T) {
	p, err := Load(writeManifest(t, sample))
	if err != nil {
		t.Fatal(err)
	}
	tree := p.DependencyTree()

	want := []struct {
		name, comparator string
		kind             deps.Kind
	}{
		{"futures", "~0.3.28", deps.Normal},
		{"serde", "^1.0", deps.Normal},
		{"serde_json", "^1.0.100", deps.Normal},
		{"tokio", "^1.35", deps.Normal},
		{"serde", "^1.0.150", deps.Development},
		{"cc", "=1.0.83", deps.Build},
	}
	if tree.Len() != len(want) {
		for _, d := range tree.Dependencies {
			t.Logf("got %s %s %s", d.Name, d.Comparator, d.Kind)
		}
		t.Fatalf("tree has %d dependencies, want %d", tree.Len(), len(want))
	}
	for i, w := range want {
		d := tree.Dependencies[i]
		if d.Name != w.name || d.Comparator.String() != w.comparator || d.Kind != w.kind {
			t.Errorf("dependency %d = %s %s %s, want %s %s %s",
				i, d.Name, d.Comparator, d.Kind, w.name, w.comparator, w.kind)
		}
	}
}

func TestPersist(t *testing.T) {
	path := writeManifest(t, sample)
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	tree := p.DependencyTree()

	target := func(name string, kind deps.Kind, c string) deps.Target {
		d, ok := tree.Find(name, kind)
		if !ok {
			t.Fatalf("%s not in tree", name)
		}
		return deps.Target{Dependency: d, Comparator: semver.MustParseComparator(c)}
	}

	err = p.Persist([]deps.Target{
		target("serde", deps.Normal, "^1.1"),
		target("serde_json", deps.Normal, "^1.0.133"),
		target("futures", deps.Normal, "~0.3.31"),
		target("tokio", deps.Normal, "^1.42"),
		target("serde", deps.Development, "^1.0.215"),
		target("cc", deps.Build, "=1.2.1"),
	})
	if err != nil {
		t.Fatalf("Persist failed: %v", err)
	}

	got, _ := os.ReadFile(path)
	want := `[package]
name = "my-crate"
version = "0.3.1"
edition = "2021"

[dependencies]
serde = "1.1"
serde_json = { version = "^1.0.133", features = ["preserve_order"] }
local = { path = "../local" }
shared = { workspace = true }
renamed = { package = "futures", version = "~0.3.31" }
git-only = { git = "https://github.com/example/git-only" }

[dependencies.tokio]
version = "1.42"
features = ["full"]

[dev-dependencies]
serde = "1.0.215"

[build-dependencies]
cc = "=1.2.1"

[target.'cfg(unix)'.dependencies]
libc = "0.2"
`
	if string(got) != want {
		t.Errorf("Persist wrote:\n%s\nwant:\n%s", got, want)
	}
}

func TestSetVersion(t *testing.T) {
	path := writeManifest(t, sample)
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.SetVersion(semver.MustParse("0.4.0")); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := reloaded.Version(); v.String() != "0.4.0" {
		t.Errorf("Version() = %s, want 0.4.0", v)
	}
	// Dependency versions are untouched.
	if d, ok := reloaded.DependencyTree().Find("tokio", deps.Normal); !ok || d.Comparator.String() != "^1.35" {
		t.Errorf("tokio = %v", d)
	}
}

func TestWorkspaceVersion(t *testing.T) {
	p, err := Load(writeManifest(t, "[package]\nname = \"member\"\nversion.workspace = true\n"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Version(); !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Version() error = %v, want INVALID_MANIFEST", err)
	}
}

func TestVirtualManifestName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "workspace-root")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte("[workspace]\nmembers = [\"a\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != "workspace-root" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestLoadInvalid(t *testing.T) {
	if _, err := Load(writeManifest(t, "[package\nname =")); !errors.Is(err, errors.ErrCodeInvalidManifest) {
		t.Errorf("Load() error = %v, want INVALID_MANIFEST", err)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		in   string
		bare bool
		want string
	}{
		{"^1.2.3", true, "1.2.3"},
		{"^1.2.3", false, "^1.2.3"},
		{"~1.2", true, "~1.2"},
		{"=0.4.0", false, "=0.4.0"},
	}
	for _, tt := range tests {
		if got := Render(semver.MustParseComparator(tt.in), tt.bare); got != tt.want {
			t.Errorf("Render(%s, %v) = %s, want %s", tt.in, tt.bare, got, tt.want)
		}
	}
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		line, table, sub string
		ok               bool
	}{
		{"[dependencies]\n", "dependencies", "", true},
		{"[dependencies.serde] # pinned\n", "dependencies", "serde", true},
		{"[[bin]]\n", "bin", "", true},
		{"[target.'cfg(unix)'.dependencies]", "target", "cfg(unix)'.dependencies", true},
		{"serde = \"1\"", "", "", false},
	}
	for _, tt := range tests {
		table, sub, ok := parseHeader(tt.line)
		if ok != tt.ok || table != tt.table || sub != tt.sub {
			t.Errorf("parseHeader(%q) = %q, %q, %v", tt.line, table, sub, ok)
		}
	}
}
