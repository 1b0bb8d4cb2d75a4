// Package version provides build-time version information.
package version

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.2.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// BuildInfo returns a single-line build description for About dialogs and
// the CLI version output.
func BuildInfo() string {
	return "commit " + GitCommit + ", built " + BuildTime
}
