// Package snapcache is a TTL cache for fetched snapshots, keyed by
// repository and window so the dashboard does not burn upstream quota
// on every page load.
package snapcache

import (
	"fmt"
	"sync"
	"time"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/domain"
)

type entry struct {
	snapshot  *domain.ProjectData
	expiresAt time.Time
}

func (e *entry) expired() bool {
	return time.Now().After(e.expiresAt)
}

// Cache is a thread-safe snapshot cache. A non-positive TTL disables it:
// every Get misses and Set does nothing.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]*entry
	ttl    time.Duration
	hits   int64
	misses int64
	done   chan struct{}
}

// Stats is the cache health block reported by the status endpoint.
type Stats struct {
	Entries    int     `json:"entries"`
	Hits       int64   `json:"hits"`
	Misses     int64   `json:"misses"`
	TTLSeconds float64 `json:"ttl_seconds"`
}

// New creates a cache and starts its background cleanup.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]*entry),
		ttl:   ttl,
		done:  make(chan struct{}),
	}
	if ttl > 0 {
		go c.cleanup()
	}
	return c
}

// Key builds the canonical cache key for one fetch request.
func Key(owner, repo string, weeks int) string {
	return fmt.Sprintf("%s/%s@%d", owner, repo, weeks)
}

func (c *Cache) cleanup() {
	interval := c.ttl
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			for key, item := range c.items {
				if item.expired() {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}

// Get returns the cached snapshot for key if it is still fresh. Callers
// must treat the returned snapshot as read-only.
func (c *Cache) Get(key string) (*domain.ProjectData, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[key]
	if !exists || item.expired() {
		if exists {
			delete(c.items, key)
		}
		c.misses++
		return nil, false
	}
	c.hits++
	return item.snapshot, true
}

// Set stores a snapshot under key for one TTL.
func (c *Cache) Set(key string, snapshot *domain.ProjectData) {
	if c.ttl <= 0 || snapshot == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = &entry{
		snapshot:  snapshot,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Delete removes one key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry)
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats snapshots the hit counters for the status endpoint.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := 0
	for _, item := range c.items {
		if !item.expired() {
			entries++
		}
	}
	return Stats{
		Entries:    entries,
		Hits:       c.hits,
		Misses:     c.misses,
		TTLSeconds: c.ttl.Seconds(),
	}
}

// Stop terminates the cleanup goroutine. The cache stays usable.
func (c *Cache) Stop() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}
