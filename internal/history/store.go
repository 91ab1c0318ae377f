// Package history persists DNA scores between runs and derives drift,
// the spread of recent scores, from the stored series.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store holds the ordered series of DNA scores for one subject.
// Implementations must keep insertion order, oldest first.
type Store interface {
	// Append persists score and returns the full series including it.
	Append(score float64) ([]float64, error)
	// Scores returns the persisted series, oldest first.
	Scores() ([]float64, error)
	// Clear removes all persisted scores.
	Clear() error
	Close() error
}

// NewStore creates a score store for the named backend. An empty path
// falls back to a default under ~/.sway.
func NewStore(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case "file", "":
		if path == "" {
			path = filepath.Join(defaultDir(), "history.json")
		}
		return NewFileStore(path)
	case "sqlite":
		if path == "" {
			path = filepath.Join(defaultDir(), "history.db")
		}
		return NewSQLiteStore(path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown history backend: %s (valid: file, sqlite, memory)", backend)
	}
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sway"
	}
	return filepath.Join(home, ".sway")
}
