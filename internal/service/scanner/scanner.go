package scanner

import (
	"context"
	"fmt"
	"iter"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/oshokin/spigot-launcher/internal/domain/artifact"
	"github.com/oshokin/spigot-launcher/internal/logger"
)

// Lister yields the file names of a directory in a deterministic order.
type Lister func(dir string) iter.Seq2[string, error]

// Scanner selects a jar from a directory by name.
type Scanner struct {
	list Lister
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithLister replaces the directory listing source.
func WithLister(list Lister) Option {
	return func(s *Scanner) {
		if list != nil {
			s.list = list
		}
	}
}

// New creates a Scanner reading the local filesystem.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		list: DirEntries,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Scan returns the artifact in dir whose name contains prefix.
// With useLast the last match wins, otherwise the first one and listing stops there.
func (s *Scanner) Scan(ctx context.Context, dir, prefix string, useLast bool) (string, error) {
	name, err := Match(s.list(dir), prefix, useLast)
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", dir, err)
	}

	logger.DebugKV(ctx, "Local jar matched", "dir", dir, "prefix", prefix, "use_last", useLast, "jar", name)

	return name, nil
}

// Match applies the selection rule to a sequence of names.
func Match(names iter.Seq2[string, error], prefix string, useLast bool) (string, error) {
	var matches []string

	for name, err := range names {
		if err != nil {
			return "", fmt.Errorf("list directory: %w", err)
		}

		if !strings.Contains(name, prefix) {
			continue
		}

		if !useLast {
			return name, nil
		}

		matches = append(matches, name)
	}

	last, err := lo.Last(matches)
	if err != nil {
		return "", fmt.Errorf("no file name contains %q: %w", prefix, artifact.ErrNoArtifactFound)
	}

	return last, nil
}

// DirEntries lists regular entries of dir in lexical order, skipping directories.
func DirEntries(dir string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			yield("", err)
			return
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}

			if !yield(entry.Name(), nil) {
				return
			}
		}
	}
}
