package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"supportbot.app/hub/internal/model"
)

const profileKeyPrefix = "hub:profile:"

// ProfileCache stores resolved contributor profiles without their question lists.
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProfileCache(client *redis.Client, ttl time.Duration) *ProfileCache {
	return &ProfileCache{client: client, ttl: ttl}
}

// Get returns the cached profile of userID. A miss is (nil, nil).
func (c *ProfileCache) Get(ctx context.Context, userID string) (*model.AnswererProfile, error) {
	raw, err := c.client.Get(ctx, profileKeyPrefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading cached profile: %w", err)
	}

	var out model.AnswererProfile
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decoding cached profile: %w", err)
	}
	return &out, nil
}

func (c *ProfileCache) Set(ctx context.Context, profile model.AnswererProfile) error {
	profile.Questions = nil
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	return c.client.Set(ctx, profileKeyPrefix+profile.ID, raw, c.ttl).Err()
}

func (c *ProfileCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, profileKeyPrefix+userID).Err()
}
