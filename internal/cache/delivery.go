package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const deliveryKeyPrefix = "hub:delivery:"

// DeliveryLog remembers webhook dedupe keys for a while so redelivered events are
// only enqueued once.
type DeliveryLog struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDeliveryLog(client *redis.Client, ttl time.Duration) *DeliveryLog {
	return &DeliveryLog{client: client, ttl: ttl}
}

// MarkSeen records key and reports whether it was new.
func (l *DeliveryLog) MarkSeen(ctx context.Context, key string) (bool, error) {
	created, err := l.client.SetNX(ctx, deliveryKeyPrefix+key, time.Now().UTC().Format(time.RFC3339), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("recording delivery: %w", err)
	}
	return created, nil
}

// Forget drops key, used when enqueueing fails after MarkSeen.
func (l *DeliveryLog) Forget(ctx context.Context, key string) error {
	return l.client.Del(ctx, deliveryKeyPrefix+key).Err()
}
