package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sfy45/Gen-UI/configs"
	"github.com/sfy45/Gen-UI/internal/ports/output"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure ResultCache implements the ResultCache port
var _ output.ResultCache = (*ResultCache)(nil)

const keyPrefix = "genui:"

// ResultCache struct - Output adapter storing upstream results in redis
type ResultCache struct {
	client *redis.Client
}

// NewResultCache func - Connects to redis and verifies the connection with PING
func NewResultCache(ctx context.Context, config configs.Redis) (*ResultCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Addr, err)
	}

	logrus.Infof("Redis result cache connected: %s (db %d)", config.Addr, config.DB)

	return &ResultCache{client: client}, nil
}

// NewResultCacheFromClient wraps an existing client
func NewResultCacheFromClient(client *redis.Client) *ResultCache {
	return &ResultCache{client: client}
}

// Get returns the cached value; a missing key is not an error
func (c *ResultCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores the value with the given expiry
func (c *ResultCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, keyPrefix+key, value, ttl).Err()
}

// Close closes the redis connection pool
func (c *ResultCache) Close() error {
	return c.client.Close()
}
