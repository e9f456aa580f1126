package npm

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/verbump/pkg/cache"
	verrors "github.com/matzehuels/verbump/pkg/errors"
	"github.com/matzehuels/verbump/pkg/integrations"
)

// DefaultBaseURL is the public npm registry.
const DefaultBaseURL = "https://registry.npmjs.org"

// abbreviatedMetadata selects the corgi document, which is much smaller
// than the full packument but still lists deprecations.
const abbreviatedMetadata = "application/vnd.npm.install-v1+json"

// Client lists package versions from an npm registry.
// All methods are safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an npm client. An empty baseURL uses [DefaultBaseURL].
// Responses are cached in backend for cacheTTL, scoped by base URL.
func NewClient(backend cache.Cache, cacheTTL time.Duration, baseURL string, opts ...integrations.ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	opts = append([]integrations.ClientOption{
		integrations.WithKeyer(cache.NewScopedKeyer(nil, cache.Scope(baseURL))),
	}, opts...)

	return &Client{
		Client:  integrations.NewClient(backend, "npm:", cacheTTL, nil, opts...),
		baseURL: baseURL,
	}
}

// BaseURL returns the registry base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Versions returns every published version of pkg, sorted by version string.
//
// Returns:
//   - [integrations.ErrNotFound] if the package doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - [integrations.ErrUnparsable] for bodies that are not registry JSON
func (c *Client) Versions(ctx context.Context, pkg string, refresh bool) ([]integrations.VersionEntry, error) {
	pkg = strings.TrimSpace(pkg)
	if err := verrors.ValidateNpmPackageName(pkg); err != nil {
		return nil, err
	}

	var entries []integrations.VersionEntry
	err := c.Cached(ctx, pkg, refresh, &entries, func() error {
		return c.fetch(ctx, pkg, &entries)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, entries *[]integrations.VersionEntry) error {
	headers := map[string]string{"Accept": abbreviatedMetadata}

	var data registryResponse
	if err := c.GetWithHeaders(ctx, c.baseURL+"/"+escapeName(pkg), headers, &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return err
	}

	out := make([]integrations.VersionEntry, 0, len(data.Versions))
	for v, details := range data.Versions {
		out = append(out, integrations.VersionEntry{
			Version:  v,
			Excluded: isDeprecated(details.Deprecated),
		})
	}
	slices.SortFunc(out, func(a, b integrations.VersionEntry) int {
		return strings.Compare(a.Version, b.Version)
	})
	*entries = out
	return nil
}

// escapeName encodes the scope separator of a scoped package, which the
// registry expects as %2f.
func escapeName(pkg string) string {
	if strings.HasPrefix(pkg, "@") {
		return strings.Replace(pkg, "/", "%2f", 1)
	}
	return pkg
}

// isDeprecated reports whether a "deprecated" field marks the version.
// The registry uses a message string; false and "" mean not deprecated.
func isDeprecated(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

type registryResponse struct {
	Name     string                    `json:"name"`
	Versions map[string]versionDetails `json:"versions"`
}

type versionDetails struct {
	Deprecated any `json:"deprecated"`
}
