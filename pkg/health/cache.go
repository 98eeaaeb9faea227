package health

import (
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	expiresAt time.Time
	result    Result
}

// resultCache keeps evaluation results for a fixed TTL.
// Concurrent misses for the same key share a single evaluation.
// invalidate drops every entry and detaches in-flight evaluations,
// so a result computed before invalidation is never stored. A result
// that fn marks as not storable is returned to the waiting callers only.
type resultCache struct {
	entries    map[string]cacheEntry
	group      singleflight.Group
	ttl        time.Duration
	generation uint64
	mu         sync.Mutex
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *resultCache) getOrEvaluate(key string, fn func() (Result, bool)) Result {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && time.Now().Before(e.expiresAt) {
		c.mu.Unlock()
		return e.result
	}
	gen := c.generation
	c.mu.Unlock()

	v, _, _ := c.group.Do(key+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		r, storable := fn()

		c.mu.Lock()
		if storable && c.generation == gen {
			c.entries[key] = cacheEntry{result: r, expiresAt: time.Now().Add(c.ttl)}
		}
		c.mu.Unlock()

		return r, nil
	})
	return v.(Result)
}

func (c *resultCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
	c.generation++
}
