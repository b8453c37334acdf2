package cache

import (
	"fmt"

	"github.com/hospicetrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StatsCacheFactory creates stats caches based on configuration
type StatsCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StatsCacheFactoryOption is a functional option for configuring the factory
type StatsCacheFactoryOption func(*StatsCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StatsCacheFactoryOption {
	return func(f *StatsCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) StatsCacheFactoryOption {
	return func(f *StatsCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewStatsCacheFactory creates a new factory
func NewStatsCacheFactory(cfg config.RedisConfig, opts ...StatsCacheFactoryOption) *StatsCacheFactory {
	f := &StatsCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based stats cache
func (f *StatsCacheFactory) CreateRedisCache() (StatsCache, error) {
	cache, err := NewRedisStatsCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, WithCacheLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis stats cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory stats cache.
// In-memory caches do not share state across process instances, so
// invalidations from one instance are invisible to the others.
func (f *StatsCacheFactory) CreateInMemoryCache() StatsCache {
	return NewInMemoryStatsCache(WithInMemoryLogger(f.logger))
}

// CreateCache tries Redis first and falls back to in-memory when Redis
// is unavailable and fallback is allowed
func (f *StatsCacheFactory) CreateCache() (StatsCache, error) {
	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis dashboard stats cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for stats cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory stats cache. "+
		"Cached dashboards may go stale across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
