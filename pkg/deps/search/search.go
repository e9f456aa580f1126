// Package search discovers manifests below a set of directories.
package search

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/verbump/pkg/deps"
	"github.com/matzehuels/verbump/pkg/deps/javascript"
	"github.com/matzehuels/verbump/pkg/deps/rust"
	"github.com/matzehuels/verbump/pkg/deps/tauri"
	"github.com/matzehuels/verbump/pkg/errors"
)

// Patterns are the manifest globs searched by default.
var Patterns = []string{
	"**/" + javascript.FileName,
	"**/" + rust.FileName,
	"**/" + tauri.FileName,
}

// Skipped are directory names never descended into.
var Skipped = []string{"node_modules", "target", ".git"}

// Loaders returns one loader per supported manifest format.
func Loaders() []deps.ManifestLoader {
	return []deps.ManifestLoader{javascript.Loader{}, rust.Loader{}, tauri.Loader{}}
}

// Options narrows a search.
type Options struct {
	Packages []string     // Keep only packages with these names
	Agents   []deps.Agent // Keep only packages owned by these agents
	Ignore   []string     // Extra glob patterns to skip, relative to each root
}

// Search walks roots and loads every manifest it finds. Manifests that fail
// to load are skipped. A file reached from two roots is loaded once. The
// result is sorted by [deps.Less] and is never empty: finding nothing is a
// NOT_FOUND error.
func Search(roots []string, opts Options) ([]deps.Package, error) {
	if err := ValidatePatterns(opts.Ignore); err != nil {
		return nil, err
	}
	loaders := Loaders()
	seen := make(map[string]struct{})
	var found []deps.Package

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", root)
		}

		paths, err := walk(abs, opts.Ignore)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}

			loader, err := deps.DetectManifest(path, loaders...)
			if err != nil {
				continue
			}
			pkg, err := loader.Load(path)
			if err != nil {
				continue
			}
			if keep(pkg, opts) {
				found = append(found, pkg)
			}
		}
	}

	if len(found) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no valid package found")
	}
	slices.SortFunc(found, deps.Compare)
	return found, nil
}

// walk returns the absolute paths of the manifests below root.
func walk(root string, ignore []string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "search %s", root)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var paths []string
	err = fs.WalkDir(os.DirFS(root), ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel != "." && (slices.Contains(Skipped, d.Name()) || ignored(rel, ignore)) {
				return fs.SkipDir
			}
			return nil
		}
		if ignored(rel, ignore) {
			return nil
		}
		for _, p := range Patterns {
			if ok, _ := doublestar.Match(p, rel); ok {
				paths = append(paths, filepath.Join(root, filepath.FromSlash(rel)))
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "search %s", root)
	}
	return paths, nil
}

func ignored(rel string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func keep(pkg deps.Package, opts Options) bool {
	if len(opts.Packages) > 0 && !slices.Contains(opts.Packages, pkg.Name()) {
		return false
	}
	if len(opts.Agents) > 0 && !slices.Contains(opts.Agents, pkg.Agent()) {
		return false
	}
	return true
}

// ValidatePatterns reports the first malformed ignore pattern.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid glob pattern %q", p)
		}
	}
	return nil
}
