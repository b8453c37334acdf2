package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
)

// StatsCache caches computed dashboard stats per owning user.
// A nil result with a nil error is a cache miss; callers recompute and Set.
type StatsCache interface {
	// Get retrieves cached stats for the owner, or nil on a miss
	Get(ctx context.Context, ownerID uuid.UUID) (*crm.DashboardStats, error)

	// Set stores stats for the owner with a TTL
	Set(ctx context.Context, ownerID uuid.UUID, stats *crm.DashboardStats, ttl time.Duration) error

	// Invalidate drops the owner's cached stats after a write to any
	// record that feeds the dashboard
	Invalidate(ctx context.Context, ownerID uuid.UUID) error

	// Close releases any resources held by the cache
	Close() error
}
