package memory

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// PageCacheMemory keeps memoized pages in process memory. Expired entries are
// never served; Sweep reclaims their memory.
type PageCacheMemory struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewPageCacheMemory() *PageCacheMemory {
	return NewPageCacheMemoryWithClock(time.Now)
}

// NewPageCacheMemoryWithClock lets tests drive expiry without sleeping.
func NewPageCacheMemoryWithClock(now func() time.Time) *PageCacheMemory {
	return &PageCacheMemory{
		entries: make(map[string]cacheEntry),
		now:     now,
	}
}

func (c *PageCacheMemory) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores a copy of value. Concurrent writers of one key: last one wins.
func (c *PageCacheMemory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	v := make([]byte, len(value))
	copy(v, value)

	c.mu.Lock()
	c.entries[key] = cacheEntry{value: v, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *PageCacheMemory) Flush(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
	return nil
}

// Sweep drops expired entries and reports how many were removed.
func (c *PageCacheMemory) Sweep(_ context.Context) int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// Len is the number of stored entries, expired or not.
func (c *PageCacheMemory) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// PageCacheNoop never stores anything, so every request recomputes.
type PageCacheNoop struct{}

func (PageCacheNoop) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (PageCacheNoop) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (PageCacheNoop) Flush(context.Context) error {
	return nil
}
