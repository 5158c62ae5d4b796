package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	if _, ok := c.GetCache(ctx, "missing"); ok {
		t.Error("expected miss on empty cache")
	}

	_ = c.SetCache(ctx, "a", []byte("1"))
	_ = c.SetCache(ctx, "b", []byte("2"))
	_ = c.SetCache(ctx, "a", []byte("1b")) // update keeps position

	if val, ok := c.GetCache(ctx, "a"); !ok || string(val) != "1b" {
		t.Errorf("GetCache(a) = %q, %v", val, ok)
	}

	_ = c.SetCache(ctx, "c", []byte("3")) // evicts a (oldest insert)

	if _, ok := c.GetCache(ctx, "a"); ok {
		t.Error("expected a to be evicted")
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(0)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d-%d", n, j%10)
				_ = c.SetCache(ctx, key, []byte(key))
				c.GetCache(ctx, key)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() != 80 {
		t.Errorf("Len() = %d, want 80", c.Len())
	}
}
