package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"caseflow/internal/shared/biztime"
	"caseflow/internal/shared/goroutine"
	"caseflow/internal/shared/logger"
)

const capacityFreedChannel = "caseflow:capacity:freed"

// CapacityFreedEvent signals that a unit regained assignment capacity.
// FreedSkills carries the skills of the staff member whose slot opened so the
// drainer can skip entries that could never match.
type CapacityFreedEvent struct {
	UnitID      uint     `json:"unit_id"`
	FreedSkills []string `json:"freed_skills,omitempty"`
	Timestamp   int64    `json:"timestamp"`
}

// CapacityEventBus publishes and consumes capacity-freed signals across
// instances. Duplicate delivery is fine: the drainer's per-unit lease and the
// guarded slot update make draining idempotent, so no self-delivery filtering
// is needed.
type CapacityEventBus interface {
	PublishCapacityFreed(ctx context.Context, unitID uint, freedSkills []string) error
	SubscribeCapacityFreed(ctx context.Context, handler func(event CapacityFreedEvent)) error
}

// RedisCapacityEventBus implements CapacityEventBus using Redis Pub/Sub.
type RedisCapacityEventBus struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisCapacityEventBus creates a new Redis-based capacity event bus.
func NewRedisCapacityEventBus(client *redis.Client, logger logger.Interface) *RedisCapacityEventBus {
	return &RedisCapacityEventBus{
		client: client,
		logger: logger,
	}
}

// PublishCapacityFreed publishes a capacity-freed event for cross-instance delivery.
func (b *RedisCapacityEventBus) PublishCapacityFreed(ctx context.Context, unitID uint, freedSkills []string) error {
	event := CapacityFreedEvent{
		UnitID:      unitID,
		FreedSkills: freedSkills,
		Timestamp:   biztime.NowUTC().UnixMilli(),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal capacity freed event: %w", err)
	}

	if err := b.client.Publish(ctx, capacityFreedChannel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish capacity freed event",
			"unit_id", unitID,
			"error", err,
		)
		return fmt.Errorf("failed to publish capacity freed event: %w", err)
	}

	b.logger.Debugw("capacity freed event published",
		"unit_id", unitID,
		"freed_skills", freedSkills,
	)
	return nil
}

// SubscribeCapacityFreed subscribes to capacity-freed events from Redis.
func (b *RedisCapacityEventBus) SubscribeCapacityFreed(ctx context.Context, handler func(event CapacityFreedEvent)) error {
	return b.subscribeWithReconnect(ctx, capacityFreedChannel, func(payload string) {
		var event CapacityFreedEvent
		if err := json.Unmarshal([]byte(payload), &event); err != nil {
			b.logger.Warnw("failed to unmarshal capacity freed event",
				"payload", payload,
				"error", err,
			)
			return
		}
		handler(event)
	})
}

// subscribeWithReconnect wraps subscribe with automatic reconnection and exponential backoff.
func (b *RedisCapacityEventBus) subscribeWithReconnect(ctx context.Context, channel string, handler func(payload string)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, channel, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("capacity subscription disconnected, reconnecting",
			"channel", channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

// subscribe is a generic Redis Pub/Sub subscriber.
func (b *RedisCapacityEventBus) subscribe(ctx context.Context, channel string, handler func(payload string)) error {
	pubsub := b.client.Subscribe(ctx, channel)
	defer pubsub.Close()

	_, err := pubsub.Receive(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", channel, err)
	}

	b.logger.Infow("subscribed to capacity event channel",
		"channel", channel,
	)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("capacity event subscriber stopped",
				"channel", channel,
				"reason", ctx.Err(),
			)
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("capacity event channel closed",
					"channel", channel,
				)
				return nil
			}

			goroutine.SafeGo(b.logger, "capacity-event-handler", func() {
				handler(msg.Payload)
			})
		}
	}
}
