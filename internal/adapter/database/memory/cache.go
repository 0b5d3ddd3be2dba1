package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"todoapi/internal/core/port"
)

var ErrCacheMiss = errors.New("cache miss")

// cacheRepository is the in-process stand-in for redis, used by tests and by
// deployments without a cache backend.
type cacheRepository struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

func NewCacheRepository() port.CacheRepository {
	return &cacheRepository{entries: make(map[string]entry)}
}

func (c *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}

	return nil
}

func (c *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]

	if !ok || time.Now().After(e.expiresAt) {
		return nil, ErrCacheMiss
	}

	return e.value, nil
}

func (c *cacheRepository) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

func (c *cacheRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}

	return nil
}

func (c *cacheRepository) Close() error {
	return nil
}
