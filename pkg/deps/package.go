package deps

import (
	"fmt"
	"path/filepath"

	"github.com/matzehuels/verbump/pkg/semver"
)

// Package is a manifest the engine can read and rewrite. Each manifest
// format supplies one implementation; the engine only branches on Agent.
type Package interface {
	// Name returns the package name declared in the manifest.
	Name() string
	// Path returns the manifest file path.
	Path() string
	Agent() Agent
	// Version returns the package's own version.
	Version() (semver.Version, error)
	// DependencyTree returns a fresh tree of the declared dependencies.
	DependencyTree() *Tree
	// Persist rewrites the requirements named by targets and saves the file.
	Persist(targets []Target) error
	// SetVersion rewrites the package's own version and saves the file.
	SetVersion(v semver.Version) error
}

// Less orders packages by name, then manifest path.
func Less(a, b Package) bool {
	if a.Name() != b.Name() {
		return a.Name() < b.Name()
	}
	return a.Path() < b.Path()
}

// Compare is the three-way form of [Less], for slices.SortFunc.
func Compare(a, b Package) int {
	switch {
	case Less(a, b):
		return -1
	case Less(b, a):
		return 1
	}
	return 0
}

// ManifestLoader reads one manifest format.
type ManifestLoader interface {
	// Supports reports whether this loader handles the given filename.
	Supports(filename string) bool
	// Type returns the manifest file name (e.g., "package.json").
	Type() string
	// Load reads the manifest at path.
	Load(path string) (Package, error)
}

// DetectManifest finds a loader that supports the given file path.
// Returns an error if no loader matches.
func DetectManifest(path string, loaders ...ManifestLoader) (ManifestLoader, error) {
	name := filepath.Base(path)
	for _, l := range loaders {
		if l.Supports(name) {
			return l, nil
		}
	}
	return nil, fmt.Errorf("unsupported manifest: %s", name)
}
