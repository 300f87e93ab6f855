// Package cache stores JSON-encoded query results in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bproperties/property-backend/internal/config"
	"github.com/go-redis/redis/v8"
)

// Cache is a JSON result cache with prefix invalidation.
//
// Each namespace also carries a generation counter. Readers take the
// generation before querying the source and embed it in their keys; writers
// bump it, so a result computed before a write can never be served after it.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, prefix string) error
	Generation(ctx context.Context, namespace string) (int64, error)
	Bump(ctx context.Context, namespace string) error
	Ping(ctx context.Context) error
}

// generationKey sits outside the namespace prefix so Invalidate never resets it.
func generationKey(namespace string) string {
	return "gen:" + namespace
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// New returns a Redis-backed cache when an address is configured and a no-op
// cache otherwise.
func New(cfg *config.Config) Cache {
	if !cfg.CacheEnabled() {
		slog.Info("query cache disabled")
		return Noop{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	slog.Info("query cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL.String())
	return NewRedisCache(client, cfg.CacheTTL)
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// Invalidate deletes every key starting with prefix.
func (c *RedisCache) Invalidate(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) Generation(ctx context.Context, namespace string) (int64, error) {
	n, err := c.client.Get(ctx, generationKey(namespace)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (c *RedisCache) Bump(ctx context.Context, namespace string) error {
	return c.client.Incr(ctx, generationKey(namespace)).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, interface{}) error         { return nil }
func (Noop) Invalidate(context.Context, string) error               { return nil }
func (Noop) Generation(context.Context, string) (int64, error)      { return 0, nil }
func (Noop) Bump(context.Context, string) error                     { return nil }
func (Noop) Ping(context.Context) error                             { return nil }
