package crates

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/verbump/pkg/cache"
	verrors "github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/integrations"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(cache.NewNullCache(), 0, server.URL, integrations.WithHTTPClient(server.Client()))
}

func TestVersions(t *testing.T) {
	var userAgent string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/crates/serde/versions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		userAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"versions":[
			{"num":"1.0.200","yanked":false},
			{"num":"1.0.199","yanked":true},
			{"num":"1.0.0","yanked":false}
		]}`))
	})

	entries, err := c.Versions(context.Background(), "serde", false)
	if err != nil {
		t.Fatalf("Versions() error: %v", err)
	}

	want := []integrations.VersionEntry{
		{Version: "1.0.200"},
		{Version: "1.0.199", Excluded: true},
		{Version: "1.0.0"},
	}
	if len(entries) != len(want) {
		t.Fatalf("Versions() = %v, want %v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}

	if !strings.HasPrefix(userAgent, "verbump/") {
		t.Errorf("User-Agent = %q, want verbump/...", userAgent)
	}
}

func TestVersionsNotFound(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.Versions(context.Background(), "nonexistent", false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("Versions() error = %v, want ErrNotFound", err)
	}
}

func TestVersionsUnparsable(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"versions": "nope"}`))
	})

	_, err := c.Versions(context.Background(), "serde", false)
	if !errors.Is(err, integrations.ErrUnparsable) {
		t.Errorf("Versions() error = %v, want ErrUnparsable", err)
	}
}

func TestVersionsInvalidName(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("registry should not be called for an invalid name")
	})

	for _, name := range []string{"", "../serde", "9lives"} {
		_, err := c.Versions(context.Background(), name, false)
		if !verrors.Is(err, verrors.ErrCodeInvalidPackage) {
			t.Errorf("Versions(%q) error = %v, want INVALID_PACKAGE", name, err)
		}
	}
}
