package memory

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	balance   int64
	expiresAt time.Time
}

// BalanceCache implements domain.BalanceCache in memory with a fixed TTL
type BalanceCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewBalanceCache creates a new memory balance cache
func NewBalanceCache(ttl time.Duration) *BalanceCache {
	return &BalanceCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached balance if an unexpired entry exists. Expired
// entries are evicted on read so the map does not grow with dead players.
func (c *BalanceCache) Get(ctx context.Context, playerID string) (int64, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[playerID]
	c.mu.RUnlock()

	if !ok {
		return 0, false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Only evict the entry we saw; a concurrent Set may have refreshed it
		if cur, ok := c.entries[playerID]; ok && cur.expiresAt.Equal(entry.expiresAt) {
			delete(c.entries, playerID)
		}
		c.mu.Unlock()
		return 0, false, nil
	}
	return entry.balance, true, nil
}

// Set stores the balance with the configured TTL
func (c *BalanceCache) Set(ctx context.Context, playerID string, balance int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[playerID] = cacheEntry{
		balance:   balance,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// Invalidate removes the cached entry
func (c *BalanceCache) Invalidate(ctx context.Context, playerID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, playerID)
	return nil
}
