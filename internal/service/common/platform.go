//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"runtime"
	"strings"
)

// IsWindows reports whether the launcher runs on Windows.
func IsWindows() bool {
	return strings.Contains(strings.ToLower(runtime.GOOS), "windows")
}

// ExecutableExtension returns ".exe" on Windows and "" elsewhere.
func ExecutableExtension() string {
	if IsWindows() {
		return ".exe"
	}

	return ""
}

// ExecutableName appends the platform extension to a base executable name.
func ExecutableName(base string) string {
	return base + ExecutableExtension()
}
