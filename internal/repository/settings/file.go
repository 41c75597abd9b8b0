package settings

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/oshokin/spigot-launcher/internal/config"
)

// Repository defines persistence operations for the launcher configuration.
type Repository interface {
	Load(ctx context.Context) (*config.Config, error)
	Save(ctx context.Context, cfg *config.Config) error
	GenerateDefault(ctx context.Context) (*config.Config, error)
}

// FileRepository persists the configuration to a single file on disk.
type FileRepository struct {
	// path is the filesystem location of the configuration file.
	path string
	// mu serializes reads and writes of the file.
	mu sync.Mutex
}

// NewFileRepository creates a repository that reads/writes the file at path.
func NewFileRepository(path string) *FileRepository {
	if path == "" {
		path = config.DefaultConfigFilename
	}

	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Path returns the configuration file location.
func (r *FileRepository) Path() string {
	return r.path
}

// Load reads the configuration, returning config.ErrConfigMissing when the
// file does not exist yet.
func (r *FileRepository) Load(_ context.Context) (*config.Config, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return config.Load(r.path)
}

// Save overwrites the persisted configuration.
func (r *FileRepository) Save(_ context.Context, cfg *config.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return config.Save(r.path, cfg)
}

// GenerateDefault persists and returns the default configuration.
func (r *FileRepository) GenerateDefault(ctx context.Context) (*config.Config, error) {
	cfg := config.Default()
	if err := r.Save(ctx, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrGenerate loads the configuration and falls back to generating the
// defaults when none exists. The boolean reports whether defaults were written.
func LoadOrGenerate(ctx context.Context, repo Repository) (*config.Config, bool, error) {
	cfg, err := repo.Load(ctx)
	if err == nil {
		return cfg, false, nil
	}

	if !errors.Is(err, config.ErrConfigMissing) {
		return nil, false, err
	}

	cfg, err = repo.GenerateDefault(ctx)
	if err != nil {
		return nil, false, err
	}

	return cfg, true, nil
}
