// FilePath: internal/cache/cache.go

// Package cache provides a small Redis-backed cache for composed report
// payloads. A nil *Cache is valid and behaves as a permanent miss, so the
// reports service never branches on configuration.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agrosense/agrohub/internal/config"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis and returns a report cache. Returns nil (cache
// disabled) when the config switches it off.
func New(cfg config.RedisConfig) (*Cache, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to Redis: %w", err)
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	nuts.L.Infof("[Cache] Connected to Redis at %s:%d", cfg.Host, cfg.Port)
	return &Cache{client: client, ttl: ttl}, nil
}

// Get unmarshals a cached payload into dest and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			nuts.L.Warnf("[Cache] Get %s failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		nuts.L.Warnf("[Cache] Corrupt payload for %s: %v", key, err)
		return false
	}
	return true
}

// Set stores a payload under the configured TTL. Failures are logged only;
// the cache is strictly best-effort.
func (c *Cache) Set(ctx context.Context, key string, payload interface{}) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		nuts.L.Warnf("[Cache] Marshal for %s failed: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		nuts.L.Warnf("[Cache] Set %s failed: %v", key, err)
	}
}

// Close releases the underlying Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
