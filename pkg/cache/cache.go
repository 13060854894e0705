// Package cache stores serialized conversion results.
//
// A conversion is a pure function of the bundle graph and the effective
// configuration, so its Result can be reused across runs. Keys are derived
// from content hashes of both inputs by a [Keyer].
//
// Backends:
//   - [NullCache]: never stores anything
//   - [FileCache]: JSON entries under a directory (CLI default)
//   - [RedisCache]: shared cache for CI fleets
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. ok is false on a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Key types reported to observability hooks.
const (
	KeyTypeResult = "result"
)

// DefaultTTL is how long conversion results stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Keyer builds cache keys.
type Keyer interface {
	// ResultKey returns the key for the conversion result of a graph under
	// a configuration.
	ResultKey(graphHash, configHash string) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(graphHash, configHash string) string {
	return hashKey(KeyTypeResult, graphHash, configHash)
}

// ScopedKeyer prefixes the keys of another Keyer, so that several projects
// can share one Redis instance.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer defaults
// to DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ResultKey implements Keyer.
func (k *ScopedKeyer) ResultKey(graphHash, configHash string) string {
	return k.prefix + k.inner.ResultKey(graphHash, configHash)
}
