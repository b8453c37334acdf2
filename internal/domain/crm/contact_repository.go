package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// ContactRepository defines the persistence interface for contacts
type ContactRepository interface {
	// FindByIDForOwner retrieves a contact by ID scoped to its owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Contact, error)

	// FindAllForOwner retrieves all contacts for an owner with filtering
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Contact, error)

	// FindByFacilityForOwner retrieves the contacts attached to a facility
	FindByFacilityForOwner(ctx context.Context, ownerID, facilityID uuid.UUID) ([]Contact, error)

	// FindNamesForOwner resolves contact IDs to names for list enrichment
	FindNamesForOwner(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error)

	// Save persists a contact (create or update)
	Save(ctx context.Context, contact *Contact) error

	// DeleteForOwner removes a contact scoped to its owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts contacts for an owner matching the filter
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)
}
