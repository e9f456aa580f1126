package deps

import (
	"slices"

	"github.com/matzehuels/verbump/pkg/semver"
)

// Tree is the set of dependencies one package declares, tagged with the
// agent whose registry resolves them.
type Tree struct {
	Agent        Agent
	Dependencies []*Dependency
}

// NewTree returns an empty tree for agent.
func NewTree(agent Agent) *Tree {
	return &Tree{Agent: agent}
}

// Add appends a dependency and returns it.
func (t *Tree) Add(name string, c semver.Comparator, kind Kind) *Dependency {
	d := &Dependency{Name: name, Comparator: c, Kind: kind}
	t.Dependencies = append(t.Dependencies, d)
	return d
}

// Len returns the number of dependencies.
func (t *Tree) Len() int { return len(t.Dependencies) }

// Find returns the first dependency named name with the given kind.
func (t *Tree) Find(name string, kind Kind) (*Dependency, bool) {
	for _, d := range t.Dependencies {
		if d.Name == name && d.Kind == kind {
			return d, true
		}
	}
	return nil, false
}

// Sort orders dependencies by kind precedence, then name.
func (t *Tree) Sort() {
	slices.SortStableFunc(t.Dependencies, func(a, b *Dependency) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
}

// Filter keeps only the dependencies keep accepts.
func (t *Tree) Filter(keep func(*Dependency) bool) {
	t.Dependencies = slices.DeleteFunc(t.Dependencies, func(d *Dependency) bool {
		return !keep(d)
	})
}
