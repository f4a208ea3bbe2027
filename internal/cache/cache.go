// FilePath: internal/cache/cache.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taghub/taghub/internal/config"
	nuts "github.com/vaudience/go-nuts"
)

// StatusCache is a redis-backed cache for the tag status view
type StatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a StatusCache and verifies the connection
func New(cfg config.RedisConfig, ttl time.Duration) (*StatusCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	nuts.L.Infof("[StatusCache] Connected to redis at %s:%d", cfg.Host, cfg.Port)
	return &StatusCache{client: client, ttl: ttl}, nil
}

// Get loads a cached value into dest. The second return is false on a miss.
func (c *StatusCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get failed: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}
	return true, nil
}

// Set stores a value under key with the configured TTL
func (c *StatusCache) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}
	return nil
}

// Delete drops a key, e.g. after new data arrives for a tag
func (c *StatusCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("cache delete failed: %w", err)
	}
	return nil
}

// Close releases the redis connection
func (c *StatusCache) Close() error {
	return c.client.Close()
}
