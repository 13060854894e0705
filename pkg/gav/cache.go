package gav

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/eddi-weiss/mavenizor/pkg/maven"
	"github.com/eddi-weiss/mavenizor/pkg/osgi"
)

// DefaultCacheSize is the number of coordinates a Cache keeps.
const DefaultCacheSize = 4096

// Cache memoizes derived coordinates. It is safe for concurrent use and may
// be shared between strategies; entries are keyed by strategy ID.
type Cache struct {
	entries *lru.Cache[string, maven.Coordinate]
}

// NewCache returns a cache holding up to size coordinates.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, maven.Coordinate](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: c}, nil
}

// Coordinate returns the memoized coordinate of b, deriving it on a miss.
// Derivation errors are not cached. A nil Cache derives directly.
func (c *Cache) Coordinate(s *Strategy, b *osgi.Bundle) (maven.Coordinate, error) {
	if c == nil {
		return s.DeriveCoordinate(b)
	}
	key := s.ID() + "|" + b.SymbolicName + "|" + b.Version + "|" + b.Header(osgi.HeaderSourceBundle)
	if coord, ok := c.entries.Get(key); ok {
		return coord, nil
	}
	coord, err := s.DeriveCoordinate(b)
	if err != nil {
		return maven.Coordinate{}, err
	}
	c.entries.Add(key, coord)
	return coord, nil
}

// Len returns the number of cached coordinates.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

// Purge drops all entries.
func (c *Cache) Purge() {
	if c != nil {
		c.entries.Purge()
	}
}
