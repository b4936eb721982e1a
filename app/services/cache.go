package services

import (
	"sync"
	"time"

	"result-portal/app/models"
)

type cacheEntry struct {
	value     *models.StudentResult
	expiresAt time.Time
}

// ResultCache is a read-through cache of lookup results keyed by the
// composite (roll number, name) key. Entries expire after a fixed TTL and
// are never invalidated when the underlying record changes, so a lookup can
// serve a stale snapshot for up to one TTL after an edit or delete.
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

func (c *ResultCache) Get(key string) (*models.StudentResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *ResultCache) Set(key string, value *models.StudentResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Purge drops expired entries.
func (c *ResultCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	currentTime := c.now()
	for key, entry := range c.entries {
		if currentTime.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}
