// Package version carries build metadata set with -ldflags -X.
package version

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// String formats the metadata for `openactivity --version`.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
