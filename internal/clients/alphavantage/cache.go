package alphavantage

import (
	"fmt"
	"sync"
	"time"
)

// cacheEntry pairs a stored value with its insertion time.
type cacheEntry struct {
	value      interface{}
	insertedAt time.Time
}

// memoryCache is a time-windowed read-through cache for market-data lookups.
// Entries are valid for a fixed window after insertion; expired entries are
// treated as misses and purged lazily on the next write. Growth is unbounded,
// which is acceptable for interactive usage against a handful of symbols.
type memoryCache struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func newMemoryCache(window time.Duration) *memoryCache {
	return &memoryCache{
		window:  window,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// cacheKey builds the deterministic key for a lookup. The date part is the
// sentinel "current" for point-in-time lookups.
func cacheKey(kind, symbol, date string) string {
	if date == "" {
		date = "current"
	}
	return fmt.Sprintf("%s_%s_%s", kind, symbol, date)
}

// get returns the stored value if it is still inside the validity window.
func (c *memoryCache) get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.insertedAt) >= c.window {
		return nil, false
	}
	return entry.value, true
}

// put stores a value with the current timestamp, overwriting any prior entry,
// and sweeps out entries that have already expired.
func (c *memoryCache) put(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if now.Sub(e.insertedAt) >= c.window {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{value: value, insertedAt: now}
}

// len reports the number of stored entries, expired or not.
func (c *memoryCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
