package crates

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/verbump/pkg/buildinfo"
	"github.com/matzehuels/verbump/pkg/cache"
	verrors "github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/integrations"
)

// DefaultBaseURL is the crates.io API root.
const DefaultBaseURL = "https://crates.io/api/v1"

// Client lists crate versions from crates.io.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a crates.io client. An empty baseURL uses
// [DefaultBaseURL]. Responses are cached in backend for cacheTTL, scoped by
// base URL.
func NewClient(backend cache.Cache, cacheTTL time.Duration, baseURL string, opts ...integrations.ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	headers := map[string]string{
		"User-Agent": buildinfo.UserAgent(),
	}
	opts = append([]integrations.ClientOption{
		integrations.WithKeyer(cache.NewScopedKeyer(nil, cache.Scope(baseURL))),
	}, opts...)

	return &Client{
		Client:  integrations.NewClient(backend, "crates:", cacheTTL, headers, opts...),
		baseURL: baseURL,
	}
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Versions returns every published version of crate in registry order
// (newest first on crates.io).
//
// The crate parameter must match the published crate name.
//
// Returns:
//   - [integrations.ErrNotFound] if the crate doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - [integrations.ErrUnparsable] for bodies that are not API JSON
func (c *Client) Versions(ctx context.Context, crate string, refresh bool) ([]integrations.VersionEntry, error) {
	crate = strings.TrimSpace(crate)
	if err := verrors.ValidateCratesPackageName(crate); err != nil {
		return nil, err
	}

	var entries []integrations.VersionEntry
	err := c.Cached(ctx, crate, refresh, &entries, func() error {
		return c.fetch(ctx, crate, &entries)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) fetch(ctx context.Context, crate string, entries *[]integrations.VersionEntry) error {
	var data versionsResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/crates/%s/versions", c.baseURL, crate), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: crate %s", err, crate)
		}
		return err
	}

	out := make([]integrations.VersionEntry, 0, len(data.Versions))
	for _, v := range data.Versions {
		out = append(out, integrations.VersionEntry{Version: v.Num, Excluded: v.Yanked})
	}
	*entries = out
	return nil
}

type versionsResponse struct {
	Versions []struct {
		Num    string `json:"num"`
		Yanked bool   `json:"yanked"`
	} `json:"versions"`
}
