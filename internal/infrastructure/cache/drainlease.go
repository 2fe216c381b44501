package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"caseflow/internal/shared/logger"
)

const drainLeasePrefix = "caseflow:drain:lease:"

// RedisDrainLease serializes queue draining per unit across worker instances
// using SET NX with a TTL. The TTL bounds how long a crashed holder can block
// a unit's drain; a live holder releases explicitly when the batch finishes.
type RedisDrainLease struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

// NewRedisDrainLease creates a new Redis-backed drain lease.
func NewRedisDrainLease(client *redis.Client, ttlSeconds int, logger logger.Interface) *RedisDrainLease {
	return &RedisDrainLease{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
		logger: logger,
	}
}

// TryAcquire attempts to take the unit's drain lease. It returns false when
// another instance currently holds it.
func (l *RedisDrainLease) TryAcquire(ctx context.Context, unitID uint) (bool, error) {
	key := l.key(unitID)

	acquired, err := l.client.SetNX(ctx, key, 1, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire drain lease: %w", err)
	}
	return acquired, nil
}

// Release releases the unit's drain lease. Failures are logged only: the TTL
// will reclaim a lease that could not be released.
func (l *RedisDrainLease) Release(ctx context.Context, unitID uint) {
	if err := l.client.Del(ctx, l.key(unitID)).Err(); err != nil {
		l.logger.Warnw("failed to release drain lease",
			"unit_id", unitID,
			"error", err,
		)
	}
}

func (l *RedisDrainLease) key(unitID uint) string {
	return drainLeasePrefix + strconv.FormatUint(uint64(unitID), 10)
}
