// Package redis caches chat membership so the hot permission check on
// every message request can skip the relational store.
package redis

import (
	"context"
	"fmt"
	"time"

	"chatserver/internal/config"

	"github.com/redis/go-redis/v9"
)

// Client holds the connection shared by the caches in this package.
// Redis is optional infrastructure; callers run without caching when no
// client is configured.
type Client struct {
	rdb *redis.Client
}

// NewClient connects and verifies the connection before returning.
func NewClient(cfg config.RedisConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
