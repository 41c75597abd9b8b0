package scanner

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/spigot-launcher/internal/domain/artifact"
)

// recordingLister yields the provided names and records which ones were visited.
func recordingLister(names []string, visited *[]string) Lister {
	return func(string) iter.Seq2[string, error] {
		return func(yield func(string, error) bool) {
			for _, name := range names {
				*visited = append(*visited, name)
				if !yield(name, nil) {
					return
				}
			}
		}
	}
}

// TestScan_UseLast returns the last match in listing order.
func TestScan_UseLast(t *testing.T) {
	t.Parallel()

	var visited []string

	s := New(WithLister(recordingLister([]string{"spigot-1.jar", "spigot-2.jar", "readme.txt"}, &visited)))

	name, err := s.Scan(context.Background(), ".", "spigot", true)
	require.NoError(t, err)
	require.Equal(t, "spigot-2.jar", name)
	require.Len(t, visited, 3)
}

// TestScan_FirstShortCircuits stops listing after the first match.
func TestScan_FirstShortCircuits(t *testing.T) {
	t.Parallel()

	var visited []string

	names := []string{"eula.txt", "old-spigot.jar", "spigot-2.jar", "spigot-3.jar"}
	s := New(WithLister(recordingLister(names, &visited)))

	name, err := s.Scan(context.Background(), ".", "spigot", false)
	require.NoError(t, err)
	require.Equal(t, "old-spigot.jar", name)
	require.Equal(t, []string{"eula.txt", "old-spigot.jar"}, visited)
}

// TestScan_NoMatch fails with ErrNoArtifactFound in both modes.
func TestScan_NoMatch(t *testing.T) {
	t.Parallel()

	for _, useLast := range []bool{true, false} {
		var visited []string

		s := New(WithLister(recordingLister([]string{"readme.txt", "server.properties"}, &visited)))

		_, err := s.Scan(context.Background(), ".", "spigot", useLast)
		require.ErrorIs(t, err, artifact.ErrNoArtifactFound)
	}
}

// TestScan_Deterministic returns the same name for repeated scans of a real directory.
func TestScan_Deterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"spigot-1.jar", "spigot-2.jar", "readme.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	// Directories never match even if their name does.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "spigot-plugins"), 0o700))

	s := New()

	first, err := s.Scan(context.Background(), dir, "spigot", true)
	require.NoError(t, err)
	require.Equal(t, "spigot-2.jar", first)

	for range 5 {
		again, err := s.Scan(context.Background(), dir, "spigot", true)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

// TestMatch_ListError propagates listing failures.
func TestMatch_ListError(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	names := func(yield func(string, error) bool) {
		yield("", errBoom)
	}

	_, err := Match(names, "spigot", true)
	require.ErrorIs(t, err, errBoom)

	_, err = New().Scan(context.Background(), filepath.Join(t.TempDir(), "missing"), "spigot", false)
	require.ErrorIs(t, err, os.ErrNotExist)
}
