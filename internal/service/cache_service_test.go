package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheServiceRoundTrip(t *testing.T) {
	repo := newMemoryCacheRepo()
	cache := newTestCache(repo)
	ctx := context.Background()

	var out map[string]int
	assert.False(t, cache.Get(ctx, "report:x", &out))

	cache.Set(ctx, "report:x", map[string]int{"a": 1}, 0)
	require.True(t, cache.Get(ctx, "report:x", &out))
	assert.Equal(t, 1, out["a"])
}

func TestCacheServiceDegradesOnFailure(t *testing.T) {
	repo := newMemoryCacheRepo()
	repo.getErr = errDatabaseDown
	cache := newTestCache(repo)

	var out map[string]int
	assert.False(t, cache.Get(context.Background(), "report:x", &out))
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMemoryCacheRepo()
	cache := NewCacheService(repo, nil, 0, nil, false)
	ctx := context.Background()

	cache.Set(ctx, "k", 1, 0)
	assert.False(t, repo.has("k"))

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
	nilCache.InvalidateAll(ctx)
}

func TestCacheServiceInvalidateDay(t *testing.T) {
	repo := newMemoryCacheRepo()
	cache := newTestCache(repo)
	ctx := context.Background()

	cache.Set(ctx, cacheKey(cacheReportPrefix, "2024-03-04", "", ""), 1, 0)
	cache.Set(ctx, cacheKey(cacheReportPrefix, "2024-03-05", "INFO", ""), 1, 0)
	cache.Set(ctx, cacheKey(cacheStatsPrefix, "INFO", "L1-INFO", "weekly"), 1, 0)
	cache.Set(ctx, cacheKey(cacheOverviewPrefix, "INFO", "L1-INFO", "2024-03"), 1, 0)

	cache.InvalidateDay(ctx, "2024-03-04")

	assert.False(t, repo.has("report:2024-03-04:_:_"))
	assert.True(t, repo.has("report:2024-03-05:INFO:_"))
	assert.False(t, repo.has("stats:INFO:L1-INFO:weekly"))
	assert.False(t, repo.has("overview:INFO:L1-INFO:2024-03"))
}

func TestCacheKeyFillsEmptyParts(t *testing.T) {
	assert.Equal(t, "report:2024-03-04:_:L1", cacheKey(cacheReportPrefix, "2024-03-04", "", "L1"))
}
