package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PipelineSummary holds the deal-side aggregates for the dashboard
type PipelineSummary struct {
	PipelineValue   decimal.Decimal // sum of value across non-closed deals
	ActiveDeals     int64           // count of non-closed deals
	ClosedThisMonth decimal.Decimal // sum of value for deals won this calendar month
	WonInWindow     int64           // closed-won deals updated within the window
	LostInWindow    int64           // closed-lost deals updated within the window
}

// StageSummary holds per-stage count and value for open deals
type StageSummary struct {
	Stage DealStage
	Count int64
	Value decimal.Decimal
}

// DealRepository defines the persistence interface for deals
type DealRepository interface {
	// FindByIDForOwner retrieves a deal by ID scoped to its owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Deal, error)

	// FindAllForOwner retrieves all deals for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Deal, error)

	// FindActiveForOwner retrieves the owner's non-closed deals ordered
	// by creation time descending
	FindActiveForOwner(ctx context.Context, ownerID uuid.UUID) ([]Deal, error)

	// FindByStageForOwner retrieves the owner's deals in a given stage
	FindByStageForOwner(ctx context.Context, ownerID uuid.UUID, stage DealStage) ([]Deal, error)

	// FindNamesForOwner resolves deal IDs to names for list enrichment
	FindNamesForOwner(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error)

	// Save persists a deal (create or update)
	Save(ctx context.Context, deal *Deal) error

	// DeleteForOwner removes a deal scoped to its owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts deals for an owner matching the filter
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)

	// SummarizeForOwner computes the dashboard aggregates in one pass.
	// monthStart bounds the closed-this-month sum; windowStart bounds the
	// win-rate window (both compared against updated_at).
	SummarizeForOwner(ctx context.Context, ownerID uuid.UUID, monthStart, windowStart time.Time) (*PipelineSummary, error)

	// GroupByStageForOwner returns count and value per non-closed stage
	GroupByStageForOwner(ctx context.Context, ownerID uuid.UUID) ([]StageSummary, error)
}
