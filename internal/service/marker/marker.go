package marker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/spigot-launcher/internal/logger"
)

// MarkerFilename holds the PID of the launcher running in a directory.
// It shares the config file casing so the default jar prefix does not match it.
const MarkerFilename = "SpigotLauncher.pid"

// markerPermissions is used when writing the marker file.
const markerPermissions = 0o600

// ErrAlreadyRunning is returned when a live launcher owns the directory.
var ErrAlreadyRunning = errors.New("another launcher is already running in this directory")

// Guard prevents two launchers from sharing one server directory.
type Guard struct {
	// path is the marker file location.
	path string
	// alive reports whether a recorded PID belongs to a running launcher.
	alive func(pid int) bool
}

// Option configures a Guard.
type Option func(*Guard)

// WithLivenessCheck replaces the process lookup, mostly for tests.
func WithLivenessCheck(alive func(pid int) bool) Option {
	return func(g *Guard) {
		if alive != nil {
			g.alive = alive
		}
	}
}

// New creates a Guard for dir.
func New(dir string, opts ...Option) *Guard {
	g := &Guard{
		path:  filepath.Join(dir, MarkerFilename),
		alive: isLauncherProcess,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Path returns the marker file location.
func (g *Guard) Path() string {
	return g.path
}

// Acquire records the current PID, replacing markers left by dead launchers.
func (g *Guard) Acquire(ctx context.Context) error {
	logger.Debug(ctx, "Checking for the presence of a run marker")

	pid, err := readPID(g.path)

	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		logger.WarnKV(ctx, "Ignoring unreadable run marker", "path", g.path, "error", err)
	case pid != os.Getpid() && g.alive(pid):
		return fmt.Errorf("%s owned by pid %d: %w", g.path, pid, ErrAlreadyRunning)
	default:
		logger.InfoKV(ctx, "Replacing stale run marker", "path", g.path, "pid", pid)
	}

	contents := []byte(strconv.Itoa(os.Getpid()))
	if err = os.WriteFile(g.path, contents, markerPermissions); err != nil {
		return fmt.Errorf("write run marker: %w", err)
	}

	return nil
}

// Release removes the marker if it still belongs to this process.
func (g *Guard) Release(ctx context.Context) error {
	pid, err := readPID(g.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err == nil && pid != os.Getpid() {
		logger.WarnKV(ctx, "Run marker belongs to another process, leaving it", "pid", pid)
		return nil
	}

	if err = os.Remove(g.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove run marker: %w", err)
	}

	return nil
}

// readPID parses the PID stored in a marker file.
func readPID(path string) (int, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return 0, err
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(contents)))
	if err != nil {
		return 0, fmt.Errorf("parse pid: %w", err)
	}

	return pid, nil
}

// isLauncherProcess reports whether pid is running the same executable as this process.
func isLauncherProcess(pid int) bool {
	process, err := ps.FindProcess(pid)
	if err != nil || process == nil {
		return false
	}

	self, err := ps.FindProcess(os.Getpid())
	if err != nil || self == nil {
		return true
	}

	return process.Executable() == self.Executable()
}
