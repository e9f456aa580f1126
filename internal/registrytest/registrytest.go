// Package registrytest serves a fake npm registry and a fake crates.io API
// for tests, counting the requests each package receives.
package registrytest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is a running fake registry. All methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	npm      map[string]map[string]string // name -> version -> deprecation message
	crates   map[string][]crateVersion
	failures map[string]int // route key -> status code
	calls    map[string]int
}

type crateVersion struct {
	Num    string `json:"num"`
	Yanked bool   `json:"yanked"`
}

// New starts a server that is closed when t finishes.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		npm:      make(map[string]map[string]string),
		crates:   make(map[string][]crateVersion),
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/npm/{name}", s.npmPackage)
	r.Get("/npm/{scope}/{name}", s.npmPackage)
	r.Get("/crates/api/v1/crates/{name}/versions", s.crateVersions)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// NpmURL is the base URL to pass to npm.NewClient.
func (s *Server) NpmURL() string { return s.URL + "/npm" }

// CratesURL is the base URL to pass to crates.NewClient.
func (s *Server) CratesURL() string { return s.URL + "/crates/api/v1" }

// AddNpm publishes versions of an npm package.
func (s *Server) AddNpm(name string, versions ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.npm[name] == nil {
		s.npm[name] = make(map[string]string)
	}
	for _, v := range versions {
		s.npm[name][v] = ""
	}
}

// DeprecateNpm marks one npm version deprecated.
func (s *Server) DeprecateNpm(name, version, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.npm[name] == nil {
		s.npm[name] = make(map[string]string)
	}
	s.npm[name][version] = message
}

// AddCrate publishes versions of a crate.
func (s *Server) AddCrate(name string, versions ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range versions {
		s.crates[name] = append(s.crates[name], crateVersion{Num: v})
	}
}

// YankCrate marks one crate version yanked.
func (s *Server) YankCrate(name, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range s.crates[name] {
		if v.Num == version {
			s.crates[name][i].Yanked = true
		}
	}
}

// Fail makes every request for key answer with status. Keys are
// "npm/<name>" and "crates/<name>".
func (s *Server) Fail(key string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[key] = status
}

// Calls returns the number of requests received for key.
func (s *Server) Calls(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

// Total returns the number of requests received.
func (s *Server) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// record counts a request and returns the failure status configured for
// key, if any.
func (s *Server) record(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[key]++
	return s.failures[key]
}

func (s *Server) npmPackage(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if scope := chi.URLParam(r, "scope"); scope != "" {
		name = scope + "/" + name
	}

	key := "npm/" + name
	if status := s.record(key); status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	s.mu.Lock()
	published, ok := s.npm[name]
	versions := make(map[string]any, len(published))
	for v, msg := range published {
		details := map[string]any{"name": name, "version": v}
		if msg != "" {
			details["deprecated"] = msg
		}
		versions[v] = details
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"name": name, "versions": versions})
}

func (s *Server) crateVersions(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	key := "crates/" + name
	if status := s.record(key); status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}

	s.mu.Lock()
	published, ok := s.crates[name]
	versions := append([]crateVersion(nil), published...)
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"errors": []map[string]string{{"detail": "crate `" + name + "` does not exist"}},
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"versions": versions})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
