package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks defaulting and rejection rules.
func TestValidate(t *testing.T) {
	t.Parallel()

	require.Error(t, Validate(nil))

	// Zero values are filled with defaults.
	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultJavaPath, cfg.General.JavaPath)
	require.Equal(t, DefaultXms, cfg.General.Xms)
	require.Equal(t, DefaultXmx, cfg.General.Xmx)
	require.Equal(t, DefaultJarPrefix, cfg.General.JarPrefix)
	require.Equal(t, DefaultFileName, cfg.AutoUpdate.FileName)
	require.Equal(t, DefaultProject, cfg.AutoUpdate.Project)
	require.Equal(t, DefaultAPIURL, cfg.AutoUpdate.APIURL)

	// Inverted heap sizes.
	cfg = Default()
	cfg.General.Xms = 2048
	cfg.General.Xmx = 1024
	require.ErrorIs(t, Validate(cfg), errInvalidMemory)

	// Negative heap size.
	cfg = Default()
	cfg.General.Xms = -1
	require.ErrorIs(t, Validate(cfg), errInvalidMemory)

	// Auto update without a channel.
	cfg = Default()
	cfg.AutoUpdate.DesiredVersion = " "
	require.ErrorIs(t, Validate(cfg), errDesiredVersionRequired)

	// A channel is not required when auto update is off.
	cfg.AutoUpdate.Enabled = false
	require.NoError(t, Validate(cfg))

	cfg = Default()
	cfg.AutoUpdate.CurrentVersion = -3
	require.ErrorIs(t, Validate(cfg), errInvalidCurrentVersion)

	cfg = Default()
	cfg.AutoUpdate.TimeoutSeconds = -1
	require.ErrorIs(t, Validate(cfg), errInvalidTimeout)

	cfg = Default()
	cfg.AutoUpdate.APIURL = "not a url"
	require.Error(t, Validate(cfg))
}

// TestLoad_Missing verifies that a missing file is reported as ErrConfigMissing.
func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), DefaultConfigFilename))
	require.ErrorIs(t, err, ErrConfigMissing)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back in both formats.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"settings.toml", "settings.yaml", "settings.yml"} {
		path := filepath.Join(t.TempDir(), name)

		settings := Default()
		settings.General.JarPrefix = "purpur"
		settings.AutoUpdate.CurrentVersion = 42

		require.NoError(t, Save(path, settings))

		loaded, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, settings, loaded, name)

		// No temporary file is left behind.
		_, err = os.Stat(path + ".tmp")
		require.ErrorIs(t, err, os.ErrNotExist)
	}
}

// TestLoad_OriginalLayout reads a file written by the first launcher release,
// which spells the jar prefix key as jar_preffix.
func TestLoad_OriginalLayout(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	contents := `[general]
debug = true
pause_on_jar_closure = false
java_path = "default"
java_initial_allocation_xms = 512
java_max_allocation_xmx = 2048
jar_preffix = "craftbukkit"
use_last_jar_found = false

[paper_auto_upgrade]
enabled = false
desired_version = "1.19.4"
file_name = "paper-latest"
current_version = 7
`
	require.NoError(t, os.WriteFile(path, []byte(contents), DefaultFilePermissions))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.General.Debug)
	require.Equal(t, 512, cfg.General.Xms)
	require.Equal(t, 2048, cfg.General.Xmx)
	require.Equal(t, "craftbukkit", cfg.General.JarPrefix)
	require.Empty(t, cfg.General.LegacyJarPrefix)
	require.False(t, cfg.General.UseLastJarFound)
	require.False(t, cfg.AutoUpdate.Enabled)
	require.Equal(t, "1.19.4", cfg.AutoUpdate.DesiredVersion)
	require.Equal(t, 7, cfg.AutoUpdate.CurrentVersion)
	require.Equal(t, DefaultProject, cfg.AutoUpdate.Project)

	// Saving rewrites the prefix under the current key and keeps the user's value.
	require.NoError(t, Save(path, cfg))

	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(rewritten), `jar_prefix = "craftbukkit"`)
	require.NotContains(t, string(rewritten), "jar_preffix")

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "craftbukkit", reloaded.General.JarPrefix)
}

// TestValidate_LegacyJarPrefix prefers the current key when both are present.
func TestValidate_LegacyJarPrefix(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.General.JarPrefix = "paper"
	cfg.General.LegacyJarPrefix = "craftbukkit"

	require.NoError(t, Validate(cfg))
	require.Equal(t, "paper", cfg.General.JarPrefix)
	require.Empty(t, cfg.General.LegacyJarPrefix)

	cfg.General.JarPrefix = ""
	cfg.General.LegacyJarPrefix = "craftbukkit"

	require.NoError(t, Validate(cfg))
	require.Equal(t, "craftbukkit", cfg.General.JarPrefix)
}

// TestSave_WriteError verifies that an unwritable destination maps to ErrConfigWrite.
func TestSave_WriteError(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing-dir", DefaultConfigFilename)
	require.ErrorIs(t, Save(path, Default()), ErrConfigWrite)
	require.ErrorIs(t, Save(path, nil), errConfigIsNotSet)
}
