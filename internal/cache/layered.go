package cache

import "time"

// LayeredCache combines a fast memory tier with a durable disk tier.
// Reads check memory first and promote disk hits; writes land in both.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a new layered cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, 10*time.Minute),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get retrieves an entry, checking memory first and then disk
func (c *LayeredCache) Get(key string) (*Entry, bool) {
	if e, found := c.memory.Get(key); found {
		return e, true
	}

	if e, found := c.disk.Get(key); found {
		// Promote to the memory tier at its default TTL
		c.memory.Set(key, *e, 0)
		return e, true
	}

	return nil, false
}

// Set stores an entry in both tiers
func (c *LayeredCache) Set(key string, e Entry, ttl time.Duration) error {
	if err := c.memory.Set(key, e, ttl); err != nil {
		return err
	}
	return c.disk.Set(key, e, ttl)
}

// Delete removes an entry from both tiers
func (c *LayeredCache) Delete(key string) error {
	c.memory.Delete(key)
	c.disk.Delete(key)
	return nil
}

// Clear removes all entries from both tiers
func (c *LayeredCache) Clear() error {
	c.memory.Clear()
	c.disk.Clear()
	return nil
}
