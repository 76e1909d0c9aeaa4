package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

const scanBatchSize = 100

// CacheRepository stores JSON payloads in Redis under a common key prefix.
type CacheRepository struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewCacheRepository constructs a cache repository. A nil client turns every read
// into a miss and every write into a no-op.
func NewCacheRepository(client *redis.Client, prefix string, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: client, prefix: prefix, logger: logger}
}

func (r *CacheRepository) key(k string) string {
	return r.prefix + k
}

// Get retrieves and unmarshals the cached value into dest.
func (r *CacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal cache value for %s: %w", key, err)
	}
	return nil
}

// Set marshals value and stores it with the given TTL.
func (r *CacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", key, err)
	}
	if err := r.client.Set(ctx, r.key(key), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// DeleteByPattern removes every key matching pattern, unlinking in batches.
func (r *CacheRepository) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if r.client == nil {
		return 0, nil
	}

	removed := 0
	batch := make([]string, 0, scanBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := r.client.Unlink(ctx, batch...).Result()
		if err != nil {
			return fmt.Errorf("redis unlink: %w", err)
		}
		removed += int(n)
		batch = batch[:0]
		return nil
	}

	iter := r.client.Scan(ctx, 0, r.key(pattern), scanBatchSize).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == scanBatchSize {
			if err := flush(); err != nil {
				return removed, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("redis scan pattern %s: %w", pattern, err)
	}
	if err := flush(); err != nil {
		return removed, err
	}

	r.logger.Debug("cache keys removed", zap.String("pattern", pattern), zap.Int("count", removed))
	return removed, nil
}

// Ping checks the Redis connection. It succeeds when caching is disabled.
func (r *CacheRepository) Ping(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection if present.
func (r *CacheRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
