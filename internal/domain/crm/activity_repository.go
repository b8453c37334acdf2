package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// ActivityRepository defines the persistence interface for activity logs
type ActivityRepository interface {
	// FindByIDForOwner retrieves an activity by ID scoped to its owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Activity, error)

	// FindAllForOwner retrieves all activities for an owner with
	// filtering, ordered by occurrence time descending by default
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Activity, error)

	// FindByFacilityForOwner retrieves the activities logged against a facility
	FindByFacilityForOwner(ctx context.Context, ownerID, facilityID uuid.UUID) ([]Activity, error)

	// FindByDealForOwner retrieves the activities logged against a deal
	FindByDealForOwner(ctx context.Context, ownerID, dealID uuid.UUID) ([]Activity, error)

	// Save persists an activity
	Save(ctx context.Context, activity *Activity) error

	// DeleteForOwner removes an activity scoped to its owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts activities for an owner matching the filter
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
}
