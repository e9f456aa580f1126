package integrations

import (
	"errors"
	"net/http"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a package doesn't exist in the registry.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")

	// ErrUnparsable is returned when a registry response body cannot be decoded.
	ErrUnparsable = errors.New("unparsable response")
)

// Ecosystem identifies a registry family. Several package managers can share
// one ecosystem (npm, pnpm and yarn all resolve against npm).
type Ecosystem string

const (
	EcosystemNpm    Ecosystem = "npm"
	EcosystemCrates Ecosystem = "crates"
)

// VersionEntry is one published version as reported by a registry.
// Excluded is set for versions the registry marks as unusable: yanked
// crates and deprecated npm versions.
type VersionEntry struct {
	Version  string `json:"version"`
	Excluded bool   `json:"excluded,omitempty"`
}

// NewHTTPClient creates an HTTP client with a standard timeout for registry requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}
