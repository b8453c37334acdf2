package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// FacilityRepository defines the persistence interface for facilities
type FacilityRepository interface {
	// FindByIDForOwner retrieves a facility by ID scoped to its owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Facility, error)

	// FindAllForOwner retrieves all facilities for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Facility, error)

	// FindNamesForOwner resolves facility IDs to names for list enrichment
	FindNamesForOwner(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error)

	// Save persists a facility (create or update)
	Save(ctx context.Context, facility *Facility) error

	// DeleteForOwner removes a facility and cascades to its contacts,
	// deals, tasks, and activities in a single transaction
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts facilities for an owner matching the filter
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)

	// ExistsByNameForOwner checks whether the owner already tracks a
	// facility with the given name
	ExistsByNameForOwner(ctx context.Context, ownerID uuid.UUID, name string) (bool, error)
}
