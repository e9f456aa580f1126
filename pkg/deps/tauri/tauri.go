// Package tauri reads and bumps tauri.conf.json files.
//
// A Tauri config carries an application name and version but no
// dependencies, so its tree is always empty and only bumping applies. Both
// the v2 layout (top-level productName and version) and the v1 layout (under
// "package") are read.
package tauri

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/matzehuels/verbump/internal/jsonedit"
	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/semver"
)

// FileName is the config file this package reads.
const FileName = "tauri.conf.json"

// Loader reads tauri.conf.json files.
type Loader struct{}

func (Loader) Type() string              { return FileName }
func (Loader) Supports(name string) bool { return strings.EqualFold(name, FileName) }

func (Loader) Load(path string) (deps.Package, error) {
	return Load(path)
}

type info struct {
	ProductName string `json:"productName"`
	Version     string `json:"version"`
}

type confFile struct {
	info
	Package *info `json:"package"`
}

// Package is a tauri.conf.json on disk.
type Package struct {
	path   string
	data   []byte
	file   confFile
	legacy bool // v1 layout
}

// Load reads the config at path.
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
	var f confFile
	if err := json.Unmarshal(p.data, &f); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidManifest, err, "parse %s", p.path)
	}
	p.file = f
	p.legacy = f.Version == "" && f.Package != nil && f.Package.Version != ""
	return nil
}

func (p *Package) info() info {
	if p.legacy {
		return *p.file.Package
	}
	return p.file.info
}

func (p *Package) Name() string               { return p.info().ProductName }
func (p *Package) Path() string               { return p.path }
func (p *Package) Agent() deps.Agent          { return deps.Tauri }
func (p *Package) DependencyTree() *deps.Tree { return deps.NewTree(deps.Tauri) }

func (p *Package) Version() (semver.Version, error) {
	return semver.Parse(p.info().Version)
}

// Persist fails for any non-empty target list.
func (p *Package) Persist(targets []deps.Target) error {
	if len(targets) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeUnsupported, "%s does not declare dependencies", FileName)
}

func (p *Package) SetVersion(v semver.Version) error {
	var (
		data []byte
		ok   bool
	)
	if p.legacy {
		data, ok = jsonedit.SetMember(p.data, "package", "version", v.String())
	} else {
		data, ok = jsonedit.SetString(p.data, "version", v.String())
	}
	if !ok {
		return errors.New(errors.ErrCodeInvalidManifest, "%s has no version field", p.path)
	}

	mode := os.FileMode(0o644)
	if st, err := os.Stat(p.path); err == nil {
		mode = st.Mode().Perm()
	}
	if err := os.WriteFile(p.path, data, mode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", p.path)
	}
	p.data = data
	return p.decode()
}

var _ deps.Package = (*Package)(nil)
