package cache

import (
	"context"
	"sync"
)

// Cacher defines the caching interface.
type Cacher interface {
	GetCache(ctx context.Context, key string) ([]byte, bool)
	SetCache(ctx context.Context, key string, val []byte) error
}

// MemoryCache implements Cacher with a bounded in-process map.
// When full, the oldest inserted entry is dropped.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
	order   []string
	max     int
}

// NewMemoryCache creates a cache holding at most size entries (size <= 0 means 256).
func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = 256
	}
	return &MemoryCache{
		entries: make(map[string][]byte),
		max:     size,
	}
}

func (c *MemoryCache) GetCache(ctx context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.entries[key]
	return val, ok
}

func (c *MemoryCache) SetCache(ctx context.Context, key string, val []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		if len(c.order) >= c.max {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = val
	return nil
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
