package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

// Cache key families. Keys are built by the helpers below and prefixed by the repository.
const (
	cacheReportPrefix   = "report:"
	cacheStatsPrefix    = "stats:"
	cacheOverviewPrefix = "overview:"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
}

// CacheService orchestrates cache operations and related metrics. Failures are logged
// and reported as misses so reports are always served from the database as a fallback.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get loads key into dest and reports whether the cache was hit.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	hit := err == nil
	s.metrics.RecordCacheOperation(hit, time.Since(start))
	if err != nil && !errors.Is(err, appErrors.ErrCacheMiss) {
		s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	}
	return hit
}

// Set stores the value in cache. A non-positive ttl selects the default TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate removes cached values for every pattern.
func (s *CacheService) Invalidate(ctx context.Context, patterns ...string) {
	if !s.Enabled() {
		return
	}
	for _, pattern := range patterns {
		removed, err := s.repo.DeleteByPattern(ctx, pattern)
		s.metrics.RecordCacheInvalidation(removed)
		if err != nil {
			s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

// InvalidateDay drops the cached daily reports of day and every aggregate that may
// include it.
func (s *CacheService) InvalidateDay(ctx context.Context, day string) {
	s.Invalidate(ctx, cacheReportPrefix+day+":*", cacheStatsPrefix+"*", cacheOverviewPrefix+"*")
}

// InvalidateAll drops every cached report.
func (s *CacheService) InvalidateAll(ctx context.Context) {
	s.Invalidate(ctx, cacheReportPrefix+"*", cacheStatsPrefix+"*", cacheOverviewPrefix+"*")
}

func cacheKey(prefix string, parts ...string) string {
	for i, p := range parts {
		if p == "" {
			parts[i] = "_"
		}
	}
	return fmt.Sprintf("%s%s", prefix, strings.Join(parts, ":"))
}
