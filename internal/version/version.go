// Package version exposes build metadata stamped in at link time.
package version

import "fmt"

// Overridden via -ldflags on release builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the human-readable version line.
func String() string {
	return fmt.Sprintf("pyvet %s (commit %s, built %s)", Version, Commit, Date)
}
