package version

import "fmt"

// Name is the program name used in banners and the HTTP user agent.
const Name = "spigot-launcher"

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "1.0.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with commit and build time.
func Full() string {
	return fmt.Sprintf("version: %s, commit: %s, built at: %s", Version, Commit, BuildTime)
}

// UserAgent identifies the launcher to remote build APIs.
func UserAgent() string {
	return Name + "/" + Version
}
