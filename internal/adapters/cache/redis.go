package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"roombooking/internal/domain"

	"github.com/go-redis/redis/v8"
)

// RedisCache stores JSON-encoded read models under a generation-scoped key.
// Invalidate bumps the generation; entries of older generations are never
// read again and expire through their TTL. A value loaded while the
// generation moved is written under the old one and so is never served.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
	prefix string
	ttl    time.Duration
}

// NewRedisCache returns a RedisCache writing keys under prefix.
func NewRedisCache(client *redis.Client, logger *slog.Logger, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, logger: logger, prefix: prefix, ttl: ttl}
}

var _ domain.ListCache = (*RedisCache)(nil)

func (c *RedisCache) generationKey() string {
	return c.prefix + ":gen"
}

func (c *RedisCache) generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, c.generationKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *RedisCache) key(gen int64, key string) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, gen, key)
}

func (c *RedisCache) Fetch(ctx context.Context, key string, dest any, load func() error) error {
	gen, err := c.generation(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "cache unavailable", "key", key, "err", err)
		return load()
	}
	fullKey := c.key(gen, key)

	data, err := c.client.Get(ctx, fullKey).Bytes()
	switch {
	case err == nil:
		if err := json.Unmarshal(data, dest); err == nil {
			return nil
		}
		c.logger.WarnContext(ctx, "cache entry undecodable", "key", fullKey)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "cache read failed", "key", fullKey, "err", err)
		return load()
	}

	if err := load(); err != nil {
		return err
	}
	data, err = json.Marshal(dest)
	if err != nil {
		c.logger.WarnContext(ctx, "cache encode failed", "key", fullKey, "err", err)
		return nil
	}
	if err := c.client.Set(ctx, fullKey, data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "cache write failed", "key", fullKey, "err", err)
	}
	return nil
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey()).Err(); err != nil {
		return fmt.Errorf("bump cache generation: %w", err)
	}
	return nil
}
