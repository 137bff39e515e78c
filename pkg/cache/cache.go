// Package cache stores computed layouts keyed by a hash of their inputs.
//
// Layout is pure: the same item count and configuration always produce the
// same transforms. Hosts that answer repeated layout queries (the HTTP
// service, the layout command) memoize the encoded result here.
//
// Three backends are provided: [NullCache] disables caching, [MemoryCache]
// keeps entries in process with a size bound, and [FileCache] persists them
// under a directory for CLI use.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the entry for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key; a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key builds "prefix:sha256(json(parts))". Parts must be JSON-encodable.
func Key(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
