package deps

import (
	"fmt"
	"strings"

	"github.com/matzehuels/verbump/pkg/integrations"
)

// Agent is the tool that owns a manifest.
type Agent string

const (
	Cargo Agent = "cargo"
	Npm   Agent = "npm"
	Pnpm  Agent = "pnpm"
	Yarn  Agent = "yarn"
	Tauri Agent = "tauri"
)

// Agents lists every known agent in display order.
var Agents = []Agent{Cargo, Npm, Pnpm, Yarn, Tauri}

// ParseAgent returns the agent named s (case-insensitive).
func ParseAgent(s string) (Agent, error) {
	a := Agent(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Agents {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown agent %q", s)
}

func (a Agent) String() string { return string(a) }

// Ecosystem returns the registry family a is resolved against.
// Tauri has none: tauri.conf.json carries a version but no dependencies.
func (a Agent) Ecosystem() (integrations.Ecosystem, bool) {
	switch a {
	case Npm, Pnpm, Yarn:
		return integrations.EcosystemNpm, true
	case Cargo:
		return integrations.EcosystemCrates, true
	default:
		return "", false
	}
}

// IsNode reports whether a is one of the Node package managers.
func (a Agent) IsNode() bool {
	switch a {
	case Npm, Pnpm, Yarn:
		return true
	}
	return false
}

// Lockfile returns the lockfile a writes next to its manifest.
func (a Agent) Lockfile() string {
	switch a {
	case Npm:
		return "package-lock.json"
	case Pnpm:
		return "pnpm-lock.yaml"
	case Yarn:
		return "yarn.lock"
	case Cargo:
		return "Cargo.lock"
	}
	return ""
}
