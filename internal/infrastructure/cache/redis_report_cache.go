package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	forecastapp "github.com/stockcast/backend/internal/application/forecast"
	"github.com/stockcast/backend/internal/infrastructure/config"
)

// RedisReportCache implements ReportCache using Redis. Cache failures are
// logged and swallowed; a report is always recomputable from the database.
type RedisReportCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisReportCache creates a Redis-backed report cache and verifies the
// connection before returning it.
func NewRedisReportCache(cfg *config.RedisConfig, logger *zap.Logger) (*RedisReportCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportCache{client: client, logger: logger}, nil
}

// NewRedisReportCacheWithClient creates a cache over an existing client
func NewRedisReportCacheWithClient(client *redis.Client, logger *zap.Logger) *RedisReportCache {
	return &RedisReportCache{client: client, logger: logger}
}

// Get returns the cached payload for key, if present
func (c *RedisReportCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return raw, true
}

// Set stores the payload under key with the given TTL
func (c *RedisReportCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Close closes the Redis client
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

var _ forecastapp.ReportCache = (*RedisReportCache)(nil)
