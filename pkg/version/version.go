// Package version holds build metadata injected at link time.
package version

import "fmt"

// Set via -ldflags "-X github.com/Sumatoshi-tech/distinct/pkg/version.Version=..." at build time.
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the Git commit the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// String renders the version line printed by the version command.
func String() string {
	return fmt.Sprintf("distinct %s (commit: %s, built: %s)", Version, Commit, Date)
}
