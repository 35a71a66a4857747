package build

import "fmt"

// Set at link time with -ldflags "-X".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// FullVersion returns the version string with commit hash appended.
// Format: "Version+Commit" (e.g., "1.0.0+abc123")
func FullVersion() string {
	return Version + "+" + Commit
}

// Summary is the line printed by the version command.
func Summary() string {
	return fmt.Sprintf("nl-locator %s (built %s)", FullVersion(), BuildTime)
}
