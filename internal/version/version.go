// Package version exposes build metadata for the pnidextract binary.
package version

// Set at build time via -ldflags, e.g.
// -X pnid-extractor/internal/version.Version=1.2.0
var (
	// Version is the semantic version.
	Version = "0.1.0"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildTime is the UTC time when the binary was built.
	BuildTime = "unknown"
)
