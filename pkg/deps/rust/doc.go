// Package rust reads and rewrites Cargo.toml manifests.
//
// The [dependencies], [dev-dependencies] and [build-dependencies] tables are
// read in all three Cargo spellings:
//
//	serde = "1.0"
//	tokio = { version = "1", features = ["full"] }
//
//	[dependencies.rand]
//	version = "0.8"
//
// Path, git and workspace-inherited dependencies carry no registry version
// and are skipped. A renamed dependency (package = "...") is resolved under
// its registry name.
//
// A bare requirement is a caret requirement, as in Cargo, and stays bare
// when rewritten. Edits touch only the version strings they change.
package rust
