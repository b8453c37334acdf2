package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryStatsCache implements StatsCache using in-process storage.
// Suitable for single-instance deployments and testing; state is not
// shared across processes.
type InMemoryStatsCache struct {
	entries sync.Map // map[uuid.UUID]*statsEntry
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// statsEntry wraps cached stats with an expiration time
type statsEntry struct {
	stats     *crm.DashboardStats
	expiresAt time.Time
}

func (e *statsEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryStatsCacheOption is a functional option for configuring the cache
type InMemoryStatsCacheOption func(*InMemoryStatsCache)

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryStatsCacheOption {
	return func(c *InMemoryStatsCache) {
		c.logger = logger
	}
}

// NewInMemoryStatsCache creates a new in-memory stats cache
func NewInMemoryStatsCache(opts ...InMemoryStatsCacheOption) *InMemoryStatsCache {
	cache := &InMemoryStatsCache{
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves cached stats for the owner
func (c *InMemoryStatsCache) Get(ctx context.Context, ownerID uuid.UUID) (*crm.DashboardStats, error) {
	if value, ok := c.entries.Load(ownerID); ok {
		entry := value.(*statsEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("Cache hit for dashboard stats", zap.String("owner_id", ownerID.String()))
			return entry.stats, nil
		}
		c.entries.Delete(ownerID)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("Cache miss for dashboard stats", zap.String("owner_id", ownerID.String()))
	return nil, nil
}

// Set stores stats for the owner with a TTL
func (c *InMemoryStatsCache) Set(ctx context.Context, ownerID uuid.UUID, stats *crm.DashboardStats, ttl time.Duration) error {
	if stats == nil || ttl <= 0 {
		return nil
	}

	c.entries.Store(ownerID, &statsEntry{
		stats:     stats,
		expiresAt: time.Now().Add(ttl),
	})
	return nil
}

// Invalidate drops the owner's cached stats
func (c *InMemoryStatsCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	c.entries.Delete(ownerID)
	return nil
}

// Stats returns hit and miss counters for monitoring
func (c *InMemoryStatsCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Close stops the background cleanup goroutine
func (c *InMemoryStatsCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// cleanupExpired periodically evicts expired entries
func (c *InMemoryStatsCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.entries.Range(func(key, value interface{}) bool {
				if value.(*statsEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		case <-c.stopCh:
			return
		}
	}
}

// Ensure InMemoryStatsCache implements StatsCache
var _ StatsCache = (*InMemoryStatsCache)(nil)
