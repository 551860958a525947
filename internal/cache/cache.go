package cache

import (
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

// Cache memoizes view payloads for a fixed TTL. Entries expire measured
// from insertion; Get on an expired entry evicts it and reports absence,
// so no background sweep is needed. Concurrent Get/Put on the same key
// resolve last-writer-wins, which is fine — values are idempotent
// recomputations of the same upstream truth within the TTL window.
type Cache struct {
	entries *lru.Cache
	ttl     time.Duration
	now     func() time.Time
}

type entry struct {
	created time.Time
	data    any
}

// New creates a cache holding at most size entries with the given TTL.
func New(size int, ttl time.Duration) (*Cache, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be greater than 0")
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}
	return &Cache{entries: entries, ttl: ttl, now: time.Now}, nil
}

// Get returns the payload stored under key, if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	v, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	e := v.(entry)
	if c.now().Sub(e.created) > c.ttl {
		c.entries.Remove(key)
		return nil, false
	}
	return e.data, true
}

// Put stores a payload under key, resetting its TTL.
func (c *Cache) Put(key string, data any) {
	c.entries.Add(key, entry{created: c.now(), data: data})
}

// Len reports the number of live entries, expired ones included until read.
func (c *Cache) Len() int {
	return c.entries.Len()
}
