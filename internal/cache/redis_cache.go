package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vanshika/fintrace/backend/internal/domain"
)

// RedisCache is the production ReportCache backend.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache constructs a RedisCache talking to addr.
func NewRedisCache(addr, password string) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})
	return &RedisCache{client: client, prefix: "fintrace:report:"}
}

func (c *RedisCache) Get(ctx context.Context, key string) (domain.AnalysisResult, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.AnalysisResult{}, false, nil
	}
	if err != nil {
		return domain.AnalysisResult{}, false, fmt.Errorf("get cached report: %w", err)
	}
	result, err := decode(data)
	if err != nil {
		return domain.AnalysisResult{}, false, fmt.Errorf("decode cached report: %w", err)
	}
	return result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, result domain.AnalysisResult, ttl time.Duration) error {
	data, err := encode(result)
	if err != nil {
		return fmt.Errorf("encode report for cache: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("set cached report: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ ReportCache = (*RedisCache)(nil)
