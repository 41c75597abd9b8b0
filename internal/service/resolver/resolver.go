package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/spigot-launcher/internal/config"
	"github.com/oshokin/spigot-launcher/internal/logger"
)

// LocalScanner selects a jar already present in a directory.
type LocalScanner interface {
	Scan(ctx context.Context, dir, prefix string, useLast bool) (string, error)
}

// RemoteUpdater brings the configured jar up to date with its release channel.
type RemoteUpdater interface {
	CheckAndUpdate(ctx context.Context, cfg *config.Config) (string, *config.Config, error)
}

// Resolver decides which jar a run launches.
type Resolver struct {
	scanner LocalScanner
	updater RemoteUpdater
}

var errSettingsNotInitialised = errors.New("settings are not initialized")

// New creates a Resolver from its two collaborators.
func New(scanner LocalScanner, updater RemoteUpdater) *Resolver {
	return &Resolver{
		scanner: scanner,
		updater: updater,
	}
}

// Resolve returns exactly one artifact name for dir together with the
// configuration to keep using, which differs from cfg only after an update.
// Auto update and local scan are exclusive and neither falls back to the other.
func (r *Resolver) Resolve(ctx context.Context, cfg *config.Config, dir string) (string, *config.Config, error) {
	if cfg == nil {
		return "", nil, errSettingsNotInitialised
	}

	if cfg.AutoUpdate.Enabled {
		logger.Info(ctx, "Auto update is enabled, checking the release channel")

		jar, updated, err := r.updater.CheckAndUpdate(ctx, cfg)
		if err != nil {
			return "", nil, fmt.Errorf("auto update: %w", err)
		}

		return jar, updated, nil
	}

	logger.InfoKV(ctx, "Searching for a local jar", "dir", dir, "prefix", cfg.General.JarPrefix)

	jar, err := r.scanner.Scan(ctx, dir, cfg.General.JarPrefix, cfg.General.UseLastJarFound)
	if err != nil {
		return "", nil, fmt.Errorf("local scan: %w", err)
	}

	return jar, cfg, nil
}
