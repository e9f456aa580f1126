package rust

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/semver"
)

// FileName is the manifest this package reads.
const FileName = "Cargo.toml"

var sections = []struct {
	key  string
	kind deps.Kind
}{
	{"dependencies", deps.Normal},
	{"dev-dependencies", deps.Development},
	{"build-dependencies", deps.Build},
}

// Loader reads Cargo.toml files.
type Loader struct{}

func (Loader) Type() string              { return FileName }
func (Loader) Supports(name string) bool { return strings.EqualFold(name, FileName) }

func (Loader) Load(path string) (deps.Package, error) {
	return Load(path)
}

type cargoFile struct {
	Package struct {
		Name    string `toml:"name"`
		Version any    `toml:"version"`
	} `toml:"package"`
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

func (f *cargoFile) section(key string) map[string]any {
	switch key {
	case "dependencies":
		return f.Dependencies
	case "dev-dependencies":
		return f.DevDependencies
	case "build-dependencies":
		return f.BuildDependencies
	}
	return nil
}

type entryKey struct {
	kind deps.Kind
	name string
}

// entry remembers how a dependency is spelled in the file.
type entry struct {
	key  string // manifest key, differs from the name when renamed
	bare bool   // requirement written without an operator
}

// Package is a Cargo.toml on disk.
type Package struct {
	path    string
	data    []byte
	file    cargoFile
	entries map[entryKey]entry
}

// Load reads the Cargo.toml at path.
func Load(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	p := &Package{path: path, data: data}
	if err := p.decode(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Package) decode() error {
	var f cargoFile
	if err := toml.Unmarshal(p.data, &f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", p.path)
	}
	p.file = f
	return nil
}

// Name returns the crate name, or the directory name for a virtual
// workspace manifest.
func (p *Package) Name() string {
	if p.file.Package.Name != "" {
		return p.file.Package.Name
	}
	return filepath.Base(filepath.Dir(p.path))
}

func (p *Package) Path() string      { return p.path }
func (p *Package) Agent() deps.Agent { return deps.Cargo }

func (p *Package) Version() (semver.Version, error) {
	s, ok := p.file.Package.Version.(string)
	if !ok {
		return semver.Version{}, errors.New(errors.ErrCodeInvalidManifest, "%s has no literal package version", p.path)
	}
	return semver.Parse(s)
}

// DependencyTree lists the registry dependencies of every section.
func (p *Package) DependencyTree() *deps.Tree {
	t := deps.NewTree(deps.Cargo)
	p.entries = make(map[entryKey]entry)

	for _, s := range sections {
		m := p.file.section(s.key)
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, key := range keys {
			name, req, ok := requirement(key, m[key])
			if !ok {
				continue
			}
			c, err := semver.ParseComparator(req)
			if err != nil {
				continue
			}
			t.Add(name, c, s.kind)
			p.entries[entryKey{s.kind, name}] = entry{key: key, bare: isBare(req)}
		}
	}
	return t
}

// requirement extracts the registry name and version requirement of one
// dependency value.
func requirement(key string, v any) (name, req string, ok bool) {
	switch x := v.(type) {
	case string:
		return key, x, true
	case map[string]any:
		version, _ := x["version"].(string)
		if version == "" {
			return "", "", false
		}
		name = key
		if renamed, _ := x["package"].(string); renamed != "" {
			name = renamed
		}
		return name, version, true
	}
	return "", "", false
}

// Persist writes each target's requirement back to the file.
func (p *Package) Persist(targets []deps.Target) error {
	if p.entries == nil {
		p.DependencyTree()
	}
	data := p.data
	for _, t := range targets {
		e, ok := p.entries[entryKey{t.Dependency.Kind, t.Dependency.Name}]
		if !ok {
			return errors.New(errors.ErrCodeInvalidManifest, "%s: %s not found", p.path, t.Dependency.Name)
		}
		data, ok = setRequirement(data, sectionKey(t.Dependency.Kind), e.key, Render(t.Comparator, e.bare))
		if !ok {
			return errors.New(errors.ErrCodeInvalidManifest, "%s: cannot rewrite %s", p.path, e.key)
		}
	}
	return p.save(data)
}

// SetVersion rewrites version in the [package] table.
func (p *Package) SetVersion(v semver.Version) error {
	data, ok := setPackageVersion(p.data, v.String())
	if !ok {
		return errors.New(errors.ErrCodeInvalidManifest, "%s has no package version", p.path)
	}
	return p.save(data)
}

func (p *Package) save(data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(p.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(p.path, data, mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", p.path)
	}
	p.data = data
	return p.decode()
}

func sectionKey(k deps.Kind) string {
	for _, s := range sections {
		if s.kind == k {
			return s.key
		}
	}
	return "dependencies"
}

// Render formats c in Cargo syntax. A caret requirement that was written
// bare stays bare.
func Render(c semver.Comparator, bare bool) string {
	s := c.String()
	if bare && c.Op == semver.Caret {
		return strings.TrimPrefix(s, "^")
	}
	return s
}

func isBare(req string) bool {
	req = strings.TrimSpace(req)
	return req != "" && (req[0] >= '0' && req[0] <= '9')
}

var _ deps.Package = (*Package)(nil)
