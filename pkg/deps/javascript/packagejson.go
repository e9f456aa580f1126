package javascript

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/verbump/internal/jsonedit"
	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/semver"
)

// FileName is the manifest this package reads.
const FileName = "package.json"

// Lockfiles that select the agent when packageManager is absent.
var (
	pnpmLock = deps.Pnpm.Lockfile()
	yarnLock = deps.Yarn.Lockfile()
)

// sections maps package.json dependency objects to their kind.
var sections = []struct {
	key  string
	kind deps.Kind
}{
	{"dependencies", deps.Normal},
	{"devDependencies", deps.Development},
	{"peerDependencies", deps.Peer},
}

// Loader reads package.json files.
type Loader struct{}

func (Loader) Type() string              { return FileName }
func (Loader) Supports(name string) bool { return strings.EqualFold(name, FileName) }

func (Loader) Load(path string) (deps.Package, error) {
	return Load(path)
}

type packageFile struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	PackageManager   string            `json:"packageManager"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

func (f *packageFile) section(key string) map[string]string {
	switch key {
	case "dependencies":
		return f.Dependencies
	case "devDependencies":
		return f.DevDependencies
	case "peerDependencies":
		return f.PeerDependencies
	}
	return nil
}

// Package is a package.json on disk. Edits keep the file's formatting.
type Package struct {
	path  string
	agent deps.Agent
	data  []byte
	file  packageFile
}

// Load reads the package.json at path.
func Load(path string) (*Package, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	p := &Package{path: path, data: data}
	if err := p.decode(); err != nil {
		return nil, err
	}
	p.agent = detectAgent(filepath.Dir(path), p.file.PackageManager)
	return p, nil
}

func (p *Package) decode() error {
	var f packageFile
	if err := json.Unmarshal(p.data, &f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", p.path)
	}
	p.file = f
	return nil
}

// Name returns the declared name, or the directory name when there is none.
func (p *Package) Name() string {
	if p.file.Name != "" {
		return p.file.Name
	}
	return filepath.Base(filepath.Dir(p.path))
}

func (p *Package) Path() string      { return p.path }
func (p *Package) Agent() deps.Agent { return p.agent }

func (p *Package) Version() (semver.Version, error) {
	return semver.Parse(p.file.Version)
}

// DependencyTree lists the declared dependencies plus the package manager
// pinned by the packageManager field. Requirements the version algebra cannot
// express (workspace:, git URLs, tags, ranges with several clauses) are
// skipped.
func (p *Package) DependencyTree() *deps.Tree {
	t := deps.NewTree(p.agent)
	for _, s := range sections {
		m := p.file.section(s.key)
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			if c, err := ParseRequirement(m[name]); err == nil {
				t.Add(name, c, s.kind)
			}
		}
	}
	if name, version, ok := splitPackageManager(p.file.PackageManager); ok {
		if v, err := semver.Parse(version); err == nil {
			t.Add(name, semver.ComparatorFrom(v.Base(), semver.Exact), deps.PackageManager)
		}
	}
	return t
}

// Persist writes each target's requirement back into its section.
func (p *Package) Persist(targets []deps.Target) error {
	data := p.data
	for _, t := range targets {
		var ok bool
		switch t.Dependency.Kind {
		case deps.PackageManager:
			data, ok = jsonedit.SetString(data, "packageManager", t.Dependency.Name+"@"+Render(t.Comparator, true))
		default:
			key := sectionKey(t.Dependency.Kind)
			bare := isBare(p.file.section(key)[t.Dependency.Name])
			data, ok = jsonedit.SetMember(data, key, t.Dependency.Name, Render(t.Comparator, bare))
		}
		if !ok {
			return errors.New(errors.ErrCodeInvalidManifest, "%s: %s not found", p.path, t.Dependency.Name)
		}
	}
	return p.save(data)
}

// SetVersion rewrites the top-level version field.
func (p *Package) SetVersion(v semver.Version) error {
	data, ok := jsonedit.SetString(p.data, "version", v.String())
	if !ok {
		return errors.New(errors.ErrCodeInvalidManifest, "%s has no version field", p.path)
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

// ParseRequirement parses an npm requirement. A bare version pins exactly,
// as npm treats it.
func ParseRequirement(s string) (semver.Comparator, error) {
	s = strings.TrimSpace(s)
	if isBare(s) {
		s = "=" + s
	}
	return semver.ParseComparator(s)
}

// Render formats c in npm syntax. An exact requirement that was written
// bare stays bare; an explicit "=" is kept.
func Render(c semver.Comparator, bare bool) string {
	if bare && c.Op == semver.Exact {
		return strings.TrimPrefix(c.String(), "=")
	}
	return c.String()
}

// isBare reports whether req is a version without an operator.
func isBare(req string) bool {
	req = strings.TrimSpace(req)
	return req != "" && (isDigit(req[0]) || (req[0] == 'v' && len(req) > 1 && isDigit(req[1])))
}

func detectAgent(dir, packageManager string) deps.Agent {
	if name, _, ok := splitPackageManager(packageManager); ok {
		if a, err := deps.ParseAgent(name); err == nil && a.IsNode() {
			return a
		}
	}
	if fileExists(filepath.Join(dir, pnpmLock)) {
		return deps.Pnpm
	}
	if fileExists(filepath.Join(dir, yarnLock)) {
		return deps.Yarn
	}
	return deps.Npm
}

// splitPackageManager splits "pnpm@9.1.0+sha512..." into name and version,
// dropping the integrity hash.
func splitPackageManager(s string) (name, version string, ok bool) {
	name, version, ok = strings.Cut(s, "@")
	if !ok || name == "" || version == "" {
		return "", "", false
	}
	version, _, _ = strings.Cut(version, "+")
	return name, version, true
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

var _ deps.Package = (*Package)(nil)
