package deps

import (
	"testing"

	"github.com/matzehuels/verbump/pkg/integrations"
)

func TestParseAgent(t *testing.T) {
	tests := []struct {
		in      string
		want    Agent
		wantErr bool
	}{
		{"cargo", Cargo, false},
		{"NPM", Npm, false},
		{" pnpm ", Pnpm, false},
		{"yarn", Yarn, false},
		{"tauri", Tauri, false},
		{"bun", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAgent(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAgent(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseAgent(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAgentEcosystem(t *testing.T) {
	tests := []struct {
		agent Agent
		want  integrations.Ecosystem
		ok    bool
	}{
		{Npm, integrations.EcosystemNpm, true},
		{Pnpm, integrations.EcosystemNpm, true},
		{Yarn, integrations.EcosystemNpm, true},
		{Cargo, integrations.EcosystemCrates, true},
		{Tauri, "", false},
	}

	for _, tt := range tests {
		got, ok := tt.agent.Ecosystem()
		if got != tt.want || ok != tt.ok {
			t.Errorf("%s.Ecosystem() = %q, %v; want %q, %v", tt.agent, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAgentIsNode(t *testing.T) {
	for _, a := range Agents {
		want := a == Npm || a == Pnpm || a == Yarn
		if a.IsNode() != want {
			t.Errorf("%s.IsNode() = %v", a, a.IsNode())
		}
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		Normal:         "normal",
		Development:    "development",
		Build:          "build",
		Peer:           "peer",
		PackageManager: "package-manager",
		Kind(99):       "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
	if !(Normal < Development && Development < Build && Build < Peer && Peer < PackageManager) {
		t.Error("kinds are out of precedence order")
	}
}

func TestAgentLockfile(t *testing.T) {
	tests := map[Agent]string{
		Npm:   "package-lock.json",
		Pnpm:  "pnpm-lock.yaml",
		Yarn:  "yarn.lock",
		Cargo: "Cargo.lock",
		Tauri: "",
	}
	for a, want := range tests {
		if got := a.Lockfile(); got != want {
			t.Errorf("%s.Lockfile() = %q, want %q", a, got, want)
		}
	}
}
