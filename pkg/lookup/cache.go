package lookup

import (
	"context"
	"sync"
)

// Cache memoizes a source for the lifetime of one form session. Each lookup
// type fetches at most once; failures pass through uncached so a retry can
// succeed. Caches are never shared across sessions.
type Cache struct {
	source Source

	mu   sync.Mutex
	hits map[string][]Option
}

var _ Source = (*Cache)(nil)

// NewCache wraps the source. A nil source yields a cache that reports every
// type as unknown.
func NewCache(source Source) *Cache {
	return &Cache{source: source, hits: map[string][]Option{}}
}

// Options returns the memoized options, fetching on first use.
func (c *Cache) Options(ctx context.Context, lookupType string) ([]Option, error) {
	c.mu.Lock()
	if options, ok := c.hits[lookupType]; ok {
		c.mu.Unlock()
		return append([]Option(nil), options...), nil
	}
	c.mu.Unlock()

	if c.source == nil {
		return nil, ErrUnknownType
	}
	options, err := c.source.Options(ctx, lookupType)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.hits[lookupType] = options
	c.mu.Unlock()
	return append([]Option(nil), options...), nil
}
