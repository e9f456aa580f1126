// Package crates provides an HTTP client for the crates.io API.
//
// # Overview
//
// This package lists the published versions of a crate from crates.io
// (https://crates.io), the Rust community's package registry.
//
// # Usage
//
//	client := crates.NewClient(cache.NewNullCache(), 0, "")
//	entries, err := client.Versions(ctx, "serde", false)
//
// Yanked versions are returned with Excluded set.
//
// crates.io requires every API client to identify itself; the client sends
// a verbump User-Agent on every request.
package crates
