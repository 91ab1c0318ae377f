package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache keeps polarity entries in process memory with TTL expiry.
// Entries are stored as values, no serialization involved.
type MemoryCache struct {
	entries *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves an entry from the cache
func (c *MemoryCache) Get(key string) (*Entry, bool) {
	val, found := c.entries.Get(key)
	if !found {
		return nil, false
	}
	e, ok := val.(Entry)
	if !ok {
		return nil, false
	}
	return &e, true
}

// Set stores an entry in the cache with the given TTL
func (c *MemoryCache) Set(key string, e Entry, ttl time.Duration) error {
	c.entries.Set(key, e, ttl)
	return nil
}

// Delete removes an entry from the cache
func (c *MemoryCache) Delete(key string) error {
	c.entries.Delete(key)
	return nil
}

// Clear removes all entries from the cache
func (c *MemoryCache) Clear() error {
	c.entries.Flush()
	return nil
}
