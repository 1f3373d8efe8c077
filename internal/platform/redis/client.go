// Package redis opens the optional Redis connection that backs the login lockout store.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"samiti/internal/platform/config"
)

// Client is a go-redis client that can also answer the /health probe.
type Client struct {
	*redis.Client
}

// New parses cfg.URL and pings the server. Without a URL it returns nil, nil
// and callers keep lockout state in process memory.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}
	return &Client{Client: client}, nil
}

func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
