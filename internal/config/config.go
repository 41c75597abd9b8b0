package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Config is the persisted launcher configuration.
type Config struct {
	// General holds launch settings shared by both resolution modes.
	General General `toml:"general" yaml:"general"`
	// AutoUpdate controls the remote build channel mode.
	AutoUpdate AutoUpdate `toml:"paper_auto_upgrade" yaml:"paper_auto_upgrade"`
}

// General holds the JVM and local scan settings.
type General struct {
	// Debug lowers the log level to debug and prints launch details.
	Debug bool `toml:"debug" yaml:"debug"`
	// PauseOnClosure waits for Enter after the server process exits.
	PauseOnClosure bool `toml:"pause_on_jar_closure" yaml:"pause_on_jar_closure"`
	// JavaPath is either DefaultJavaPath or a directory containing the java launcher.
	JavaPath string `toml:"java_path" yaml:"java_path"`
	// Xms is the initial heap size in megabytes.
	Xms int `toml:"java_initial_allocation_xms" yaml:"java_initial_allocation_xms"`
	// Xmx is the maximum heap size in megabytes.
	Xmx int `toml:"java_max_allocation_xmx" yaml:"java_max_allocation_xmx"`
	// JarPrefix is matched as a substring against file names in the server directory.
	JarPrefix string `toml:"jar_prefix" yaml:"jar_prefix"`
	// LegacyJarPrefix is the misspelled key written by the first launcher release.
	// Validate moves it into JarPrefix, so it is never written back.
	LegacyJarPrefix string `toml:"jar_preffix,omitempty" yaml:"jar_preffix,omitempty"`
	// UseLastJarFound picks the last match instead of the first one.
	UseLastJarFound bool `toml:"use_last_jar_found" yaml:"use_last_jar_found"`
}

// AutoUpdate describes the release channel followed by the updater.
type AutoUpdate struct {
	// Enabled switches resolution from the local scan to the remote channel.
	Enabled bool `toml:"enabled" yaml:"enabled"`
	// DesiredVersion identifies the channel, for example "1.18.2".
	DesiredVersion string `toml:"desired_version" yaml:"desired_version"`
	// FileName is the local jar base name; ".jar" is appended.
	FileName string `toml:"file_name" yaml:"file_name"`
	// CurrentVersion is the last installed build number, 0 when none.
	CurrentVersion int `toml:"current_version" yaml:"current_version"`
	// Project is the project name on the build API.
	Project string `toml:"project" yaml:"project"`
	// APIURL is the base URL of the build API projects endpoint.
	APIURL string `toml:"api_url" yaml:"api_url"`
	// TimeoutSeconds bounds each HTTP call, 0 disables the timeout.
	TimeoutSeconds int `toml:"timeout_seconds" yaml:"timeout_seconds"`
}

const (
	// DefaultConfigFilename is the config file looked up in the working directory.
	DefaultConfigFilename = "SpigotLauncher.toml"

	// DefaultJavaPath selects the java executable found on PATH.
	DefaultJavaPath = "default"

	// DefaultXms is the default initial heap in megabytes.
	DefaultXms = 256

	// DefaultXmx is the default maximum heap in megabytes.
	DefaultXmx = 1536

	// DefaultJarPrefix is the default local jar name filter.
	DefaultJarPrefix = "spigot"

	// DefaultDesiredVersion is the default release channel.
	DefaultDesiredVersion = "1.18.2"

	// DefaultFileName is the default base name of the downloaded jar.
	DefaultFileName = "paper-latest"

	// DefaultProject is the default project on the build API.
	DefaultProject = "paper"

	// DefaultAPIURL is the default build API projects endpoint.
	DefaultAPIURL = "https://api.papermc.io/v2/projects"

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// ErrConfigMissing is returned when no configuration file exists yet.
	ErrConfigMissing = errors.New("configuration file not found")
	// ErrConfigWrite is returned when the configuration cannot be persisted.
	ErrConfigWrite = errors.New("configuration write failed")

	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errInvalidMemory is returned for non-positive or inverted heap sizes.
	errInvalidMemory = errors.New("invalid memory allocation")
	// errDesiredVersionRequired is returned when auto update has no channel.
	errDesiredVersionRequired = errors.New("desired version must be provided when auto update is enabled")
	// errInvalidCurrentVersion is returned for a negative build number.
	errInvalidCurrentVersion = errors.New("current version must not be negative")
	// errInvalidTimeout is returned for a negative timeout.
	errInvalidTimeout = errors.New("timeout must not be negative")
)

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		General: General{
			Debug:           false,
			PauseOnClosure:  false,
			JavaPath:        DefaultJavaPath,
			Xms:             DefaultXms,
			Xmx:             DefaultXmx,
			JarPrefix:       DefaultJarPrefix,
			UseLastJarFound: true,
			LegacyJarPrefix: "",
		},
		AutoUpdate: AutoUpdate{
			Enabled:        true,
			DesiredVersion: DefaultDesiredVersion,
			FileName:       DefaultFileName,
			CurrentVersion: 0,
			Project:        DefaultProject,
			APIURL:         DefaultAPIURL,
		},
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file yields ErrConfigMissing.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigMissing)
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err = codecFor(path).unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err = Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path, replacing the previous
// file only once the new contents are fully on disk.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := codecFor(path).marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	path = filepath.Clean(path)
	temporaryPath := path + ".tmp"

	if err = os.WriteFile(temporaryPath, data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigWrite, err)
	}

	if err = os.Rename(temporaryPath, path); err != nil {
		_ = os.Remove(temporaryPath)

		return fmt.Errorf("%w: %w", ErrConfigWrite, err)
	}

	return nil
}

// Validate fills defaults for unset fields and rejects inconsistent values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	general := &cfg.General

	if strings.TrimSpace(general.JavaPath) == "" {
		general.JavaPath = DefaultJavaPath
	}

	if general.Xms == 0 {
		general.Xms = DefaultXms
	}

	if general.Xmx == 0 {
		general.Xmx = DefaultXmx
	}

	if general.Xms < 0 || general.Xmx < 0 {
		return fmt.Errorf("xms=%d xmx=%d: %w", general.Xms, general.Xmx, errInvalidMemory)
	}

	if general.Xms > general.Xmx {
		return fmt.Errorf("xms %d exceeds xmx %d: %w", general.Xms, general.Xmx, errInvalidMemory)
	}

	if general.JarPrefix == "" {
		general.JarPrefix = general.LegacyJarPrefix
	}

	general.LegacyJarPrefix = ""

	if general.JarPrefix == "" {
		general.JarPrefix = DefaultJarPrefix
	}

	return validateAutoUpdate(&cfg.AutoUpdate)
}

func validateAutoUpdate(update *AutoUpdate) error {
	if update.FileName == "" {
		update.FileName = DefaultFileName
	}

	if update.Project == "" {
		update.Project = DefaultProject
	}

	if update.APIURL == "" {
		update.APIURL = DefaultAPIURL
	}

	if update.CurrentVersion < 0 {
		return errInvalidCurrentVersion
	}

	if update.TimeoutSeconds < 0 {
		return errInvalidTimeout
	}

	if _, err := url.ParseRequestURI(update.APIURL); err != nil {
		return fmt.Errorf("invalid api url: %w", err)
	}

	if update.Enabled && strings.TrimSpace(update.DesiredVersion) == "" {
		return errDesiredVersionRequired
	}

	return nil
}
