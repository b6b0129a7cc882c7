package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/oakline/propmaint-api/pkg/config"
	appErrors "github.com/oakline/propmaint-api/pkg/errors"
)

type cacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService wraps the cache repository with config-driven enablement and
// best-effort semantics: cache failures are logged, never surfaced.
type CacheService struct {
	repo    cacheRepository
	cfg     config.ReportsConfig
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCacheService constructs a cache service. A nil repository disables
// caching entirely.
func NewCacheService(repo cacheRepository, cfg config.ReportsConfig, metrics *MetricsService, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, cfg: cfg, metrics: metrics, logger: logger}
}

// Enabled reports whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.repo != nil && s.cfg.CacheEnabled
}

// Get loads a cached value into dest. Returns false on miss or any failure.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	if err := s.repo.Get(ctx, key, dest); err != nil {
		if err != appErrors.ErrCacheMiss {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.RecordReportCache(false)
		return false
	}
	s.metrics.RecordReportCache(true)
	return true
}

// Set stores a value under key with the configured TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}
	if err := s.repo.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cache entry matching the pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}
