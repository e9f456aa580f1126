package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/verbump/pkg/cache"
	"github.com/matzehuels/verbump/pkg/httputil"
)

func testClient(t *testing.T, handler http.HandlerFunc, opts ...ClientOption) (*Client, string) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })

	opts = append([]ClientOption{WithHTTPClient(server.Client())}, opts...)
	return NewClient(c, "test:", time.Hour, nil, opts...), server.URL
}

func TestNewClient(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	headers := map[string]string{"Authorization": "Bearer token"}
	client := NewClient(c, "test:", time.Hour, headers)

	if client.http == nil {
		t.Error("NewClient() http client is nil")
	}
	if client.cache != c {
		t.Error("NewClient() cache not set correctly")
	}
	if client.headers["Authorization"] != "Bearer token" {
		t.Error("NewClient() headers not set correctly")
	}
	if client.attempts != 1 {
		t.Errorf("NewClient() attempts = %d, want 1", client.attempts)
	}
}

func TestNewClientNilBackend(t *testing.T) {
	client := NewClient(nil, "test:", 0, nil)
	if _, ok := client.cache.(*cache.NullCache); !ok {
		t.Errorf("nil backend should fall back to NullCache, got %T", client.cache)
	}
}

func TestClientGet(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	client, url := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		json.NewEncoder(w).Encode(response{Message: "hello"})
	})

	var resp response
	if err := client.Get(context.Background(), url, &resp); err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.Message != "hello" {
		t.Errorf("Get() message = %q, want %q", resp.Message, "hello")
	}
}

func TestClientGetWithHeadersOverridesDefaults(t *testing.T) {
	var received, custom string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received = r.Header.Get("X-Override")
		custom = r.Header.Get("X-Custom")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(nil, "test:", 0, map[string]string{"X-Override": "default"}, WithHTTPClient(server.Client()))

	var resp map[string]string
	err := client.GetWithHeaders(context.Background(), server.URL, map[string]string{
		"X-Override": "overridden",
		"X-Custom":   "custom",
	}, &resp)
	if err != nil {
		t.Fatalf("GetWithHeaders() error: %v", err)
	}
	if received != "overridden" {
		t.Errorf("header = %q, want %q", received, "overridden")
	}
	if custom != "custom" {
		t.Errorf("custom header = %q, want %q", custom, "custom")
	}
}

func TestClientGetUnparsable(t *testing.T) {
	client, url := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	})

	var resp map[string]any
	err := client.Get(context.Background(), url, &resp)
	if !errors.Is(err, ErrUnparsable) {
		t.Errorf("Get() error = %v, want ErrUnparsable", err)
	}
}

func TestClientGet404(t *testing.T) {
	client, url := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	var resp map[string]string
	err := client.Get(context.Background(), url, &resp)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClientGet500(t *testing.T) {
	client, url := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	var resp map[string]string
	err := client.Get(context.Background(), url, &resp)
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Get() error = %v, want ErrNetwork", err)
	}
	if !httputil.IsRetryable(err) {
		t.Errorf("Get() error should be retryable, got %T", err)
	}
}

func TestClientCached(t *testing.T) {
	client, _ := testClient(t, nil)

	type payload struct {
		Value string `json:"value"`
	}

	fetches := 0
	fetch := func(v *payload) func() error {
		return func() error {
			fetches++
			v.Value = "fetched"
			return nil
		}
	}

	var first payload
	if err := client.Cached(context.Background(), "key", false, &first, fetch(&first)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	var second payload
	if err := client.Cached(context.Background(), "key", false, &second, fetch(&second)); err != nil {
		t.Fatalf("Cached() error: %v", err)
	}

	if fetches != 1 {
		t.Errorf("fetches = %d, want 1", fetches)
	}
	if second.Value != "fetched" {
		t.Errorf("cached value = %q, want %q", second.Value, "fetched")
	}
}

func TestClientCachedRefresh(t *testing.T) {
	client, _ := testClient(t, nil)

	fetches := 0
	var value string
	fetch := func() error {
		fetches++
		value = "fetched"
		return nil
	}

	for range 2 {
		if err := client.Cached(context.Background(), "key", true, &value, fetch); err != nil {
			t.Fatalf("Cached() error: %v", err)
		}
	}
	if fetches != 2 {
		t.Errorf("fetches = %d, want 2", fetches)
	}
}

func TestClientCachedRetries(t *testing.T) {
	var calls atomic.Int32
	client, _ := testClient(t, nil, WithRetries(3, time.Millisecond))

	var value string
	err := client.Cached(context.Background(), "flaky", false, &value, func() error {
		if calls.Add(1) < 3 {
			return httputil.Retryable(ErrNetwork)
		}
		value = "ok"
		return nil
	})
	if err != nil {
		t.Fatalf("Cached() error: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestClientCachedSingleAttemptByDefault(t *testing.T) {
	client, _ := testClient(t, nil)

	calls := 0
	var value string
	err := client.Cached(context.Background(), "down", false, &value, func() error {
		calls++
		return httputil.Retryable(ErrNetwork)
	})
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("Cached() error = %v, want ErrNetwork", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestClientKeyerScopesEntries(t *testing.T) {
	c, _ := cache.NewFileCache(t.TempDir())
	defer c.Close()

	a := NewClient(c, "npm:", time.Hour, nil, WithKeyer(cache.NewScopedKeyer(nil, cache.Scope("https://a.example"))))
	b := NewClient(c, "npm:", time.Hour, nil, WithKeyer(cache.NewScopedKeyer(nil, cache.Scope("https://b.example"))))

	var va string
	_ = a.Cached(context.Background(), "react", false, &va, func() error { va = "from-a"; return nil })

	fetched := false
	var vb string
	_ = b.Cached(context.Background(), "react", false, &vb, func() error { fetched = true; vb = "from-b"; return nil })

	if !fetched || vb != "from-b" {
		t.Errorf("scoped client read another registry's entry: %q", vb)
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		wantErr   error
		retryable bool
	}{
		{"200 OK", 200, nil, false},
		{"404 Not Found", 404, ErrNotFound, false},
		{"500 Internal Server Error", 500, ErrNetwork, true},
		{"502 Bad Gateway", 502, ErrNetwork, true},
		{"503 Service Unavailable", 503, ErrNetwork, true},
		{"400 Bad Request", 400, ErrNetwork, false},
		{"403 Forbidden", 403, ErrNetwork, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkStatus(tt.code)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("checkStatus() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("checkStatus() error = %v, want %v", err, tt.wantErr)
			}
			if httputil.IsRetryable(err) != tt.retryable {
				t.Errorf("checkStatus() retryable = %v, want %v", httputil.IsRetryable(err), tt.retryable)
			}
		})
	}
}
