// Package cache stores polarity classifications so repeated analyses of
// the same text do not repeat provider calls. A memory tier covers one
// run, an optional disk tier covers runs across process restarts.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Entry is one cached polarity classification.
type Entry struct {
	Label        string    `json:"label"`           // POSITIVE or NEGATIVE
	Model        string    `json:"model,omitempty"` // Model that produced the label
	ClassifiedAt time.Time `json:"classified_at"`   // When the provider was asked
}

// Cache holds polarity entries keyed by provider, model and text.
type Cache interface {
	Get(key string) (*Entry, bool)
	Set(key string, e Entry, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a cache key from the given parts, typically the
// provider name, model and analyzed text. Parts are hashed together so
// the same text cached under one provider never answers for another.
func CacheKey(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "sway:v1:" + hex.EncodeToString(hash[:])
}
