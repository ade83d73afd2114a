package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"workout/internal/platform/config"
)

// Client wraps the go-redis client used by the lookup cache and readiness probe.
type Client struct {
	*redis.Client
}

// New connects to Redis and pings it once.
// Returns nil, nil when the URL is empty so callers run without a cache.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	pingTimeout := cfg.DialTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health satisfies the readiness checker.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Wrap adopts an existing go-redis client, as integration tests do with the container client.
func Wrap(client *redis.Client) *Client {
	return &Client{Client: client}
}
