package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisStatsCache implements StatsCache using Redis, suitable for
// deployments where multiple instances serve the same users
type RedisStatsCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	logger     *zap.Logger
}

// RedisStatsCacheOption is a functional option for configuring the cache
type RedisStatsCacheOption func(*RedisStatsCache)

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisStatsCacheOption {
	return func(c *RedisStatsCache) {
		c.logger = logger
	}
}

// NewRedisStatsCache creates a new Redis-based stats cache
func NewRedisStatsCache(cfg RedisConfig, opts ...RedisStatsCacheOption) (*RedisStatsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisStatsCache{
		client:     client,
		ownsClient: true,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisStatsCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisStatsCacheWithClient(client *redis.Client, opts ...RedisStatsCacheOption) *RedisStatsCache {
	cache := &RedisStatsCache{
		client:     client,
		ownsClient: false,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// statsCacheKey generates the cache key for an owner's dashboard stats
func (c *RedisStatsCache) statsCacheKey(ownerID uuid.UUID) string {
	return "dashboard:stats:" + ownerID.String()
}

// Get retrieves cached stats for the owner
func (c *RedisStatsCache) Get(ctx context.Context, ownerID uuid.UUID) (*crm.DashboardStats, error) {
	cacheKey := c.statsCacheKey(ownerID)

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for dashboard stats", zap.String("owner_id", ownerID.String()))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get dashboard stats from cache",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get stats from cache: %w", err)
	}

	var stats crm.DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		c.logger.Error("Failed to unmarshal dashboard stats",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		// Drop corrupted cache entry
		_ = c.client.Del(ctx, cacheKey)
		return nil, fmt.Errorf("failed to unmarshal stats: %w", err)
	}

	c.logger.Debug("Cache hit for dashboard stats", zap.String("owner_id", ownerID.String()))
	return &stats, nil
}

// Set stores stats for the owner with a TTL
func (c *RedisStatsCache) Set(ctx context.Context, ownerID uuid.UUID, stats *crm.DashboardStats, ttl time.Duration) error {
	if stats == nil {
		return nil
	}

	cacheKey := c.statsCacheKey(ownerID)

	data, err := json.Marshal(stats)
	if err != nil {
		c.logger.Error("Failed to marshal dashboard stats",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set dashboard stats in cache",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to set stats in cache: %w", err)
	}

	c.logger.Debug("Cached dashboard stats",
		zap.String("owner_id", ownerID.String()),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate drops the owner's cached stats
func (c *RedisStatsCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	cacheKey := c.statsCacheKey(ownerID)

	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("Failed to invalidate dashboard stats",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to invalidate stats: %w", err)
	}

	c.logger.Debug("Invalidated dashboard stats", zap.String("owner_id", ownerID.String()))
	return nil
}

// Close releases the Redis client if this cache owns it
func (c *RedisStatsCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisStatsCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisStatsCache implements StatsCache
var _ StatsCache = (*RedisStatsCache)(nil)
