package history

import "sync"

// MemoryStore holds the score series in process memory only. Useful for
// tests and for one-off runs that should leave no trace on disk.
type MemoryStore struct {
	mu     sync.Mutex
	scores []float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(score float64) ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = append(s.scores, score)
	out := make([]float64, len(s.scores))
	copy(out, s.scores)
	return out, nil
}

func (s *MemoryStore) Scores() ([]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, len(s.scores))
	copy(out, s.scores)
	return out, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores = nil
	return nil
}

func (s *MemoryStore) Close() error { return nil }
