package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const staffViewPrefix = "caseflow:staff:view:"

// RedisStaffViewCache caches per-staff dashboard payloads. Writes race with
// invalidation, so the TTL keeps any stale payload short-lived.
type RedisStaffViewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStaffViewCache creates a new Redis-backed staff view cache.
func NewRedisStaffViewCache(client *redis.Client, ttlSeconds int) *RedisStaffViewCache {
	return &RedisStaffViewCache{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// GetStaffView unmarshals the cached view payload into dest. It returns
// false on a miss.
func (c *RedisStaffViewCache) GetStaffView(ctx context.Context, staffID uint, dest any) (bool, error) {
	val, err := c.client.Get(ctx, c.key(staffID)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get staff view: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal staff view: %w", err)
	}
	return true, nil
}

// SetStaffView caches the view payload for the configured TTL.
func (c *RedisStaffViewCache) SetStaffView(ctx context.Context, staffID uint, view any) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal staff view: %w", err)
	}

	if err := c.client.Set(ctx, c.key(staffID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set staff view: %w", err)
	}
	return nil
}

// InvalidateStaffView drops the cached view so the next read rebuilds it.
func (c *RedisStaffViewCache) InvalidateStaffView(ctx context.Context, staffID uint) error {
	if err := c.client.Del(ctx, c.key(staffID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate staff view: %w", err)
	}
	return nil
}

func (c *RedisStaffViewCache) key(staffID uint) string {
	return staffViewPrefix + strconv.FormatUint(uint64(staffID), 10)
}
