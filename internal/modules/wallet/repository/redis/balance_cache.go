// Package redis implements the balance cache on redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// BalanceCache implements domain.BalanceCache using redis with a fixed TTL
type BalanceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewBalanceCache creates a new redis balance cache
func NewBalanceCache(rdb *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func cacheKey(playerID string) string {
	return fmt.Sprintf("wallet:balance:%s", playerID)
}

// Get returns the cached balance if an unexpired entry exists
func (c *BalanceCache) Get(ctx context.Context, playerID string) (int64, bool, error) {
	val, err := c.rdb.Get(ctx, cacheKey(playerID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read balance cache: %w", err)
	}

	balance, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// Unparseable entry, treat as a miss
		return 0, false, nil
	}
	return balance, true, nil
}

// Set stores the balance with the configured TTL
func (c *BalanceCache) Set(ctx context.Context, playerID string, balance int64) error {
	if err := c.rdb.Set(ctx, cacheKey(playerID), balance, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set balance cache: %w", err)
	}
	return nil
}

// Invalidate removes the cached entry
func (c *BalanceCache) Invalidate(ctx context.Context, playerID string) error {
	if err := c.rdb.Del(ctx, cacheKey(playerID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate balance cache: %w", err)
	}
	return nil
}
