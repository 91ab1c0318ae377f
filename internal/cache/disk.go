package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DiskCache persists polarity entries as one JSON file per key, so
// repeated analyses of the same text skip the provider call across runs.
// The files are plain JSON and can be inspected or deleted by hand.
type DiskCache struct {
	dir string
	ttl time.Duration
}

// NewDiskCache creates a new disk cache
func NewDiskCache(dir string, ttl time.Duration) *DiskCache {
	return &DiskCache{
		dir: dir,
		ttl: ttl,
	}
}

// diskEntry is the on-disk envelope: the entry plus its expiry.
type diskEntry struct {
	Entry
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves an entry from the disk cache. Unreadable or expired
// files count as misses.
func (c *DiskCache) Get(key string) (*Entry, bool) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var de diskEntry
	if err := json.Unmarshal(data, &de); err != nil {
		return nil, false
	}

	if time.Now().After(de.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false
	}

	return &de.Entry, true
}

// Set stores an entry in the disk cache. A zero ttl falls back to the
// cache default.
func (c *DiskCache) Set(key string, e Entry, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.ttl
	}

	de := diskEntry{
		Entry:     e,
		ExpiresAt: time.Now().Add(ttl),
	}

	data, err := json.Marshal(de)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	path := c.path(key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	return nil
}

// Delete removes an entry from the disk cache
func (c *DiskCache) Delete(key string) error {
	return os.Remove(c.path(key))
}

// Clear removes all cached files
func (c *DiskCache) Clear() error {
	return os.RemoveAll(c.dir)
}

// path generates the file path for a cache key
func (c *DiskCache) path(key string) string {
	return filepath.Join(c.dir, key+".cache")
}
