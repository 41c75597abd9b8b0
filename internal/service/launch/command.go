package launch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"

	"github.com/oshokin/spigot-launcher/internal/config"
	"github.com/oshokin/spigot-launcher/internal/logger"
	"github.com/oshokin/spigot-launcher/internal/repository/settings"
	"github.com/oshokin/spigot-launcher/internal/service/launcher"
	"github.com/oshokin/spigot-launcher/internal/service/marker"
	"github.com/oshokin/spigot-launcher/internal/service/resolver"
	"github.com/oshokin/spigot-launcher/internal/service/scanner"
	"github.com/oshokin/spigot-launcher/internal/service/updater"
	"github.com/oshokin/spigot-launcher/internal/version"
)

// Options are inputs accepted by the launcher entry point.
type Options struct {
	// ConfigPath is the settings file; empty means DefaultConfigFilename inside Dir.
	ConfigPath string
	// Dir is the server directory, defaults to the working directory.
	Dir string
	// Stdin, Stdout and Stderr default to the process streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run loads the configuration, resolves the jar, runs the server and returns
// its exit code. Any returned error means nothing was launched.
func Run(ctx context.Context, opts *Options) (int, error) {
	ctx = logger.WithName(ctx, version.Name)

	logger.InfoKV(ctx, "Spigot launcher", "version", version.Short())

	opts, err := withDefaults(opts)
	if err != nil {
		return 0, err
	}

	ctx = logger.WithKV(ctx, "dir", opts.Dir)

	repo := settings.NewFileRepository(opts.ConfigPath)

	logger.InfoKV(ctx, "Loading config file", "path", repo.Path())

	cfg, generated, err := settings.LoadOrGenerate(ctx, repo)
	if err != nil {
		return 0, fmt.Errorf("load configuration: %w", err)
	}

	if generated {
		logger.InfoKV(ctx, "No config file found, generated defaults", "path", repo.Path())
	}

	if cfg.General.Debug {
		logger.SetLevel(zapcore.DebugLevel)
	}

	guard := marker.New(opts.Dir)
	if err = guard.Acquire(ctx); err != nil {
		return 0, err
	}

	exitCode, err := runServer(ctx, opts, repo, cfg)

	// Released before the pause.
	if releaseErr := guard.Release(ctx); releaseErr != nil {
		logger.WarnKV(ctx, "Release run marker failed", "error", releaseErr)
	}

	if err != nil {
		return 0, err
	}

	if cfg.General.PauseOnClosure {
		if err = launcher.Pause(ctx, opts.Stdin, opts.Stdout); err != nil {
			logger.WarnKV(ctx, "Pause interrupted", "error", err)
		}
	}

	return exitCode, nil
}

// runServer resolves the jar and runs it until the server exits.
func runServer(ctx context.Context, opts *Options, repo settings.Repository, cfg *config.Config) (int, error) {
	r := resolver.New(
		scanner.New(),
		updater.New(repo, updater.WithDirectory(opts.Dir)),
	)

	jar, cfg, err := r.Resolve(ctx, cfg, opts.Dir)
	if err != nil {
		return 0, fmt.Errorf("resolve jar: %w", err)
	}

	logger.DebugKV(ctx, "Launch settings",
		"jar", jar,
		"java", launcher.JavaExecutable(cfg.General.JavaPath),
		"xms", cfg.General.Xms,
		"xmx", cfg.General.Xmx)

	return launcher.Launch(ctx, &launcher.Options{
		Artifact: jar,
		JavaPath: cfg.General.JavaPath,
		Xms:      cfg.General.Xms,
		Xmx:      cfg.General.Xmx,
		Dir:      opts.Dir,
		Stdin:    opts.Stdin,
		Stdout:   opts.Stdout,
		Stderr:   opts.Stderr,
	})
}

// withDefaults returns a copy of opts with the directory made absolute and
// the config path and streams filled in.
func withDefaults(opts *Options) (*Options, error) {
	resolved := new(Options)
	if opts != nil {
		*resolved = *opts
	}

	if resolved.Dir == "" {
		resolved.Dir = "."
	}

	dir, err := filepath.Abs(resolved.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolve server directory: %w", err)
	}

	resolved.Dir = dir

	if resolved.ConfigPath == "" {
		resolved.ConfigPath = filepath.Join(dir, config.DefaultConfigFilename)
	}

	if resolved.Stdin == nil {
		resolved.Stdin = os.Stdin
	}

	if resolved.Stdout == nil {
		resolved.Stdout = os.Stdout
	}

	if resolved.Stderr == nil {
		resolved.Stderr = os.Stderr
	}

	return resolved, nil
}
