package tenant

import (
	"context"
	"sync"
	"time"
)

// Cache is the read-through cache for directory records. Routing keys change
// rarely, so cached records only need a bounded staleness window; the TTL is
// the staleness bound.
type Cache interface {
	// Get retrieves a record from cache by routing key.
	Get(ctx context.Context, key string) (Record, bool)

	// Set stores a record in cache with the given TTL.
	Set(ctx context.Context, key string, rec Record, ttl time.Duration)

	// Delete removes a record from cache.
	Delete(ctx context.Context, key string)
}

// inMemoryCache is the default in-memory cache implementation.
type inMemoryCache struct {
	mu      sync.RWMutex
	items   map[string]cacheItem
	maxSize int
}

type cacheItem struct {
	rec       Record
	expiresAt time.Time
}

// DefaultCacheSize is the default maximum number of items in the cache.
const DefaultCacheSize = 1000

// NewInMemoryCache creates an in-memory cache with automatic cleanup.
// The cleanup goroutine stops when ctx is cancelled.
func NewInMemoryCache(ctx context.Context) Cache {
	return NewInMemoryCacheWithSize(ctx, DefaultCacheSize)
}

// NewInMemoryCacheWithSize creates an in-memory cache with a size limit.
func NewInMemoryCacheWithSize(ctx context.Context, maxSize int) Cache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}

	cache := &inMemoryCache{
		items:   make(map[string]cacheItem),
		maxSize: maxSize,
	}

	go cache.cleanup(ctx)

	return cache
}

func (c *inMemoryCache) Get(ctx context.Context, key string) (Record, bool) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return Record{}, false
	}

	if time.Now().After(item.expiresAt) {
		c.Delete(ctx, key)
		return Record{}, false
	}

	return item.rec, true
}

func (c *inMemoryCache) Set(ctx context.Context, key string, rec Record, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict the entry closest to expiry when at capacity.
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		var evictKey string
		var evictAt time.Time
		for k, item := range c.items {
			if evictKey == "" || item.expiresAt.Before(evictAt) {
				evictKey, evictAt = k, item.expiresAt
			}
		}
		delete(c.items, evictKey)
	}

	c.items[key] = cacheItem{
		rec:       rec,
		expiresAt: time.Now().Add(ttl),
	}
}

func (c *inMemoryCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// cleanup periodically removes expired items until ctx is cancelled.
func (c *inMemoryCache) cleanup(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-ctx.Done():
			return
		}
	}
}

func (c *inMemoryCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}

// NoOpCache disables caching, forcing a directory read on every request.
// Useful for testing or when staleness cannot be tolerated at all.
type NoOpCache struct{}

func (NoOpCache) Get(ctx context.Context, key string) (Record, bool) { return Record{}, false }

func (NoOpCache) Set(ctx context.Context, key string, rec Record, ttl time.Duration) {}

func (NoOpCache) Delete(ctx context.Context, key string) {}
