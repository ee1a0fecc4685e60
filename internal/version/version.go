// Package version records build metadata injected via -ldflags.
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String returns a single-line description for -version output.
func String() string {
	return fmt.Sprintf("posture.report %s (%s, built %s)", Version, GitSHA, BuildTime)
}
