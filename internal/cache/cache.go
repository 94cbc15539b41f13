// Package cache remembers the durable URL of payloads that were already
// uploaded, so saving the same generated image twice costs one upload.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

// URLCache maps a content key to the durable URL of the uploaded payload.
type URLCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, url string)
}

// ContentKey is the full SHA-256 digest of the payload, namespaced by owner so
// one user's upload is never handed to another.
func ContentKey(userID, kind string, data []byte) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s:%s", userID, kind, hex.EncodeToString(sum[:]))
}

// LRU is a bounded in-process cache.
type LRU struct {
	entries *lru.Cache[string, string]
}

func NewLRU(size int) (*LRU, error) {
	if size <= 0 {
		size = 512
	}
	entries, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload cache: %w", err)
	}
	return &LRU{entries: entries}, nil
}

func (c *LRU) Get(_ context.Context, key string) (string, bool) {
	return c.entries.Get(key)
}

func (c *LRU) Set(_ context.Context, key, url string) {
	c.entries.Add(key, url)
}

func (c *LRU) Len() int {
	return c.entries.Len()
}

// Redis shares the cache between instances. Entries expire after ttl; cache
// failures are logged and treated as misses.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration, logger *slog.Logger) *Redis {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Redis{client: client, ttl: ttl, prefix: "upload-url:", logger: logger}
}

// NewRedisFromURL parses a redis:// URL and verifies the connection.
func NewRedisFromURL(ctx context.Context, rawURL string, ttl time.Duration, logger *slog.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return NewRedis(client, ttl, logger), nil
}

func (c *Redis) Get(ctx context.Context, key string) (string, bool) {
	url, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && c.logger != nil {
			c.logger.Warn("upload cache read failed", "error", err)
		}
		return "", false
	}
	return url, true
}

func (c *Redis) Set(ctx context.Context, key, url string) {
	if err := c.client.Set(ctx, c.prefix+key, url, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Warn("upload cache write failed", "error", err)
	}
}

func (c *Redis) Close() error {
	return c.client.Close()
}
