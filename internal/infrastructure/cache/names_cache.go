// Package cache provides the Redis-backed autocomplete name cache.
// Only the item name list is cached; reports are always computed live.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"stockbook/internal/core/id"
	"stockbook/internal/domain/items"
)

// namesTTL bounds staleness if an invalidation is ever lost.
const namesTTL = 10 * time.Minute

// Compile-time check that RedisNameCache implements items.NameCache.
var _ items.NameCache = (*RedisNameCache)(nil)

// RedisNameCache caches the per-owner item name list.
type RedisNameCache struct {
	client *redis.Client
}

// NewRedisNameCache creates a cache backed by the given Redis instance.
func NewRedisNameCache(addr, password string, db int) *RedisNameCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisNameCache{client: client}
}

// Ping verifies the Redis connection.
func (c *RedisNameCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (c *RedisNameCache) Close() error {
	return c.client.Close()
}

func namesKey(ownerID id.ID) string {
	return fmt.Sprintf("stockbook:items:names:%s", ownerID)
}

// GetNames returns the cached name list and whether it was present.
func (c *RedisNameCache) GetNames(ctx context.Context, ownerID id.ID) ([]string, bool, error) {
	val, err := c.client.Get(ctx, namesKey(ownerID)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var names []string
	if err := json.Unmarshal([]byte(val), &names); err != nil {
		return nil, false, err
	}
	return names, true, nil
}

// SetNames stores the name list for the owner.
func (c *RedisNameCache) SetNames(ctx context.Context, ownerID id.ID, names []string) error {
	payload, err := json.Marshal(names)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, namesKey(ownerID), payload, namesTTL).Err()
}

// Invalidate drops the cached list after a stock mutation.
func (c *RedisNameCache) Invalidate(ctx context.Context, ownerID id.ID) error {
	return c.client.Del(ctx, namesKey(ownerID)).Err()
}
