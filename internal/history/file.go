package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps the score series as a JSON array of numbers in a single
// file. Writes go through a temp file and rename so a crash mid-write
// never leaves a half-written series behind. A missing or corrupt file is
// treated as an empty series rather than an error; persistence problems
// must never block an analysis.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Append(score float64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unlock := s.acquireLock()
	defer unlock()

	scores := s.read()
	scores = append(scores, score)

	data, err := json.Marshal(scores)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nil, fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("write history: %w", err)
	}
	return scores, nil
}

func (s *FileStore) Scores() ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(), nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// read loads the series, falling back to empty on any problem. Corrupt
// data is reported once on stderr and then discarded on the next Append.
func (s *FileStore) read() []float64 {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: could not read history file %s: %v\n", s.path, err)
		}
		return nil
	}
	var scores []float64
	if err := json.Unmarshal(data, &scores); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history file %s is corrupt, starting fresh\n", s.path)
		return nil
	}
	return scores
}

// acquireLock takes a best-effort lock file against concurrent runs.
// After one short retry the lock is skipped so a stale file left by a
// crashed run cannot wedge the tool.
func (s *FileStore) acquireLock() func() {
	lock := s.path + ".lock"
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(lock, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			f.Close()
			return func() { os.Remove(lock) }
		}
		if !os.IsExist(err) {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	return func() {}
}
