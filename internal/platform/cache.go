package platform

import (
	"time"

	"github.com/phuslu/lru"
)

// queryCache is a bounded, thread-safe cache mapping exact search
// locations to the platform names they matched.
type queryCache struct {
	entries *lru.TTLCache[string, []string]
	ttl     time.Duration
}

func newQueryCache(size int, ttl time.Duration) *queryCache {
	return &queryCache{
		entries: lru.NewTTLCache[string, []string](size),
		ttl:     ttl,
	}
}

func (c *queryCache) get(location string) ([]string, bool) {
	return c.entries.Get(location)
}

func (c *queryCache) set(location string, names []string) {
	c.entries.Set(location, names, c.ttl)
}

func (c *queryCache) len() int {
	return c.entries.Len()
}
