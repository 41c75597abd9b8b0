// Package config defines the launcher configuration and provides helpers to
// load, validate and save it.
//
// The file format follows the extension: TOML by default (SpigotLauncher.toml),
// YAML for .yaml and .yml paths.
package config
