// Package version carries build information stamped at link time.
package version

// Set by goreleaser:
// -X github.com/dotforge/dotforge/internal/version.Version={{.Version}}
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
