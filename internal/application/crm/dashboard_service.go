package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// StatsCache caches computed dashboard stats per owning user. A nil
// result with a nil error is a miss. Implemented by the stats cache.
type StatsCache interface {
	Get(ctx context.Context, ownerID uuid.UUID) (*crm.DashboardStats, error)
	Set(ctx context.Context, ownerID uuid.UUID, stats *crm.DashboardStats, ttl time.Duration) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

// DashboardService computes the at-a-glance stats for a rep's book of
// business. Results are cached per owner; the cache fails open.
type DashboardService struct {
	dealRepo     crm.DealRepository
	facilityRepo crm.FacilityRepository
	contactRepo  crm.ContactRepository
	taskRepo     crm.TaskRepository
	cache        StatsCache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewDashboardService creates a new DashboardService. A nil cache
// disables caching; a zero TTL caches without expiry guidance.
func NewDashboardService(
	dealRepo crm.DealRepository,
	facilityRepo crm.FacilityRepository,
	contactRepo crm.ContactRepository,
	taskRepo crm.TaskRepository,
	cache StatsCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		dealRepo:     dealRepo,
		facilityRepo: facilityRepo,
		contactRepo:  contactRepo,
		taskRepo:     taskRepo,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// GetStats returns the owner's dashboard stats, serving from cache when
// a fresh copy exists. Cache errors degrade to a recompute.
func (s *DashboardService) GetStats(ctx context.Context, ownerID uuid.UUID) (*DashboardStatsResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, ownerID)
		if err != nil {
			s.logger.Warn("stats cache read failed, recomputing",
				zap.String("owner_id", ownerID.String()),
				zap.Error(err))
		} else if cached != nil {
			return toDashboardStatsResponse(cached), nil
		}
	}

	stats, err := s.computeStats(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, stats, s.cacheTTL); err != nil {
			s.logger.Warn("stats cache write failed",
				zap.String("owner_id", ownerID.String()),
				zap.Error(err))
		}
	}

	return toDashboardStatsResponse(stats), nil
}

// computeStats assembles the dashboard from the repositories.
// The win rate covers closed deals from the trailing 90 days; the
// closed-this-month sum resets at the start of the calendar month.
func (s *DashboardService) computeStats(ctx context.Context, ownerID uuid.UUID) (*crm.DashboardStats, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	windowStart := now.AddDate(0, 0, -90)

	summary, err := s.dealRepo.SummarizeForOwner(ctx, ownerID, monthStart, windowStart)
	if err != nil {
		return nil, err
	}

	facilityCount, err := s.facilityRepo.CountForOwner(ctx, ownerID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	contactCount, err := s.contactRepo.CountForOwner(ctx, ownerID, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	tasksDueToday, err := s.taskRepo.CountDueByForOwner(ctx, ownerID, endOfToday())
	if err != nil {
		return nil, err
	}

	return &crm.DashboardStats{
		PipelineValue:   summary.PipelineValue,
		ActiveDeals:     summary.ActiveDeals,
		FacilityCount:   facilityCount,
		ContactCount:    contactCount,
		TasksDueToday:   tasksDueToday,
		ClosedThisMonth: summary.ClosedThisMonth,
		WinRate:         crm.WinRate(summary.WonInWindow, summary.LostInWindow),
	}, nil
}

func toDashboardStatsResponse(stats *crm.DashboardStats) *DashboardStatsResponse {
	return &DashboardStatsResponse{
		PipelineValue:   stats.PipelineValue,
		ActiveDeals:     stats.ActiveDeals,
		FacilityCount:   stats.FacilityCount,
		ContactCount:    stats.ContactCount,
		TasksDueToday:   stats.TasksDueToday,
		ClosedThisMonth: stats.ClosedThisMonth,
		WinRate:         stats.WinRate,
	}
}
