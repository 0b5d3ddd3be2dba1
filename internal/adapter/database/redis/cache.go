package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"todoapi/internal/core/port"
	"todoapi/pkg/config"
)

// ErrCacheMiss is returned when a key is absent; callers treat it as "go to
// the source", not as a failure.
var ErrCacheMiss = errors.New("cache miss")

type cacheRepository struct {
	client *redis.Client
}

func NewCacheRepository(ctx context.Context, cfg *config.Config) (port.CacheRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &cacheRepository{client: client}, nil
}

func (c *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()

	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}

	if err != nil {
		return nil, err
	}

	return value, nil
}

func (c *cacheRepository) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *cacheRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	var cursor uint64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, prefix+"*", 100).Result()

		if err != nil {
			return err
		}

		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}

		if next == 0 {
			return nil
		}

		cursor = next
	}
}

func (c *cacheRepository) Close() error {
	return c.client.Close()
}
