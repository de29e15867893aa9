package source

import (
	"context"
	"time"

	"github.com/maypok86/otter/v2"
)

// Cache keeps parsed playlists for a short time so the category listing and
// the entry listing of one reload read the source once. Concurrent loads of
// the same key are coalesced.
type Cache[V any] struct {
	cache *otter.Cache[string, V]
}

// NewCache creates a cache holding at most size values for ttl after they are loaded.
func NewCache[V any](size int, ttl time.Duration) *Cache[V] {
	if size <= 0 {
		size = 256
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache[V]{
		cache: otter.Must(&otter.Options[string, V]{
			MaximumSize:      size,
			ExpiryCalculator: otter.ExpiryWriting[string, V](ttl),
		}),
	}
}

// Get returns the cached value for key, calling load on a miss.
// Failed loads are not cached.
func (c *Cache[V]) Get(ctx context.Context, key string, load func(ctx context.Context) (V, error)) (V, error) {
	return c.cache.Get(ctx, key, otter.LoaderFunc[string, V](func(ctx context.Context, _ string) (V, error) {
		return load(ctx)
	}))
}

// Invalidate drops key.
func (c *Cache[V]) Invalidate(key string) {
	c.cache.Invalidate(key)
}

// InvalidateAll drops every value.
func (c *Cache[V]) InvalidateAll() {
	c.cache.InvalidateAll()
}
