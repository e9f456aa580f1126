// Package npm provides an HTTP client for the npm registry API.
//
// # Overview
//
// This package lists the published versions of a package from the npm
// registry (https://registry.npmjs.org) or a compatible mirror. It requests
// the abbreviated metadata document, which carries every version together
// with its deprecation notice.
//
// # Usage
//
//	client := npm.NewClient(cache.NewNullCache(), 0, "")
//	entries, err := client.Versions(ctx, "@types/node", false)
//
// Versions with a non-empty "deprecated" message are returned with
// Excluded set.
package npm
