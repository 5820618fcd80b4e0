package revocation

import (
	"context"
	"path"
	"slices"
	"sync"
	"time"
)

// MemoryCache is an in-process Cache with lazy TTL expiry. State is lost on
// restart, so it only suits tests and single-node development.
type MemoryCache struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

var _ Cache = (*MemoryCache)(nil)

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		items: make(map[string]memoryItem),
		now:   time.Now,
	}
}

// SetClock replaces the clock used for expiry. Tests only.
func (c *MemoryCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

// lookup returns the live item for key, evicting it if it has expired.
// Callers hold c.mu.
func (c *MemoryCache) lookup(key string) (memoryItem, bool) {
	it, ok := c.items[key]
	if !ok {
		return memoryItem{}, false
	}
	if !it.expiresAt.IsZero() && !c.now().Before(it.expiresAt) {
		delete(c.items, key)
		return memoryItem{}, false
	}
	return it, true
}

func (c *MemoryCache) item(value string, ttl time.Duration) memoryItem {
	it := memoryItem{value: value}
	if ttl > 0 {
		it.expiresAt = c.now().Add(ttl)
	}
	return it
}

func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = c.item(value, ttl)
	return nil
}

func (c *MemoryCache) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.lookup(key); ok {
		return false, nil
	}
	c.items[key] = c.item(value, ttl)
	return true, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.lookup(key)
	if !ok {
		return "", ErrMiss
	}
	return it.value, nil
}

func (c *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.lookup(key)
	return ok, nil
}

func (c *MemoryCache) TTL(_ context.Context, key string) (time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	it, ok := c.lookup(key)
	if !ok || it.expiresAt.IsZero() {
		return -1, nil
	}
	return it.expiresAt.Sub(c.now()), nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *MemoryCache) Keys(_ context.Context, pattern string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var keys []string
	for k := range c.items {
		if _, ok := c.lookup(k); !ok {
			continue
		}
		match, err := path.Match(pattern, k)
		if err != nil {
			return nil, err
		}
		if match {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

func (c *MemoryCache) Ping(context.Context) error { return nil }

func (c *MemoryCache) Close() error { return nil }
