package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-directory/internal/domain/profile"
	"github.com/khoahotran/profile-directory/pkg/logger"
)

const profileCacheKeyPrefix = "profile:id:"

// redisProfileCache caches whole profiles by id. Failures degrade to the
// database and are only logged; the cache must never fail a request.
type redisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisProfileCache(client *redis.Client, ttl time.Duration, logger logger.Logger) profile.Cache {
	return &redisProfileCache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(id uuid.UUID) string {
	return profileCacheKeyPrefix + id.String()
}

func (c *redisProfileCache) Get(ctx context.Context, id uuid.UUID) (*profile.Profile, bool) {
	payload, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Redis get failed", zap.String("profile_id", id.String()), zap.Error(err))
		}
		return nil, false
	}

	p := &profile.Profile{}
	if err := json.Unmarshal(payload, p); err != nil {
		c.logger.Warn("Cached profile is corrupt, dropping", zap.String("profile_id", id.String()), zap.Error(err))
		c.client.Del(ctx, cacheKey(id))
		return nil, false
	}
	return p, true
}

func (c *redisProfileCache) Set(ctx context.Context, p *profile.Profile) {
	payload, err := json.Marshal(p)
	if err != nil {
		c.logger.Warn("Failed to marshal profile for cache", zap.String("profile_id", p.ID.String()), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, cacheKey(p.ID), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("Redis set failed", zap.String("profile_id", p.ID.String()), zap.Error(err))
	}
}

func (c *redisProfileCache) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.logger.Warn("Redis del failed", zap.String("profile_id", id.String()), zap.Error(err))
	}
}
