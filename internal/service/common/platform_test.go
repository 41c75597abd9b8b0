//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestExecutableName checks the extension follows the current platform.
func TestExecutableName(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		require.True(t, IsWindows())
		require.Equal(t, "java.exe", ExecutableName("java"))

		return
	}

	require.False(t, IsWindows())
	require.Empty(t, ExecutableExtension())
	require.Equal(t, "java", ExecutableName("java"))
}
