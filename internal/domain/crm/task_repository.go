package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// TaskRepository defines the persistence interface for tasks
type TaskRepository interface {
	// FindByIDForOwner retrieves a task by ID scoped to its owner
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*Task, error)

	// FindAllForOwner retrieves all tasks for an owner with filtering,
	// ordered by due timestamp descending by default
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]Task, error)

	// FindOpenForOwner retrieves the owner's open tasks ordered by due
	// timestamp ascending
	FindOpenForOwner(ctx context.Context, ownerID uuid.UUID) ([]Task, error)

	// FindDueByForOwner retrieves open tasks due at or before the deadline
	FindDueByForOwner(ctx context.Context, ownerID uuid.UUID, deadline time.Time) ([]Task, error)

	// Save persists a task (create or update)
	Save(ctx context.Context, task *Task) error

	// DeleteForOwner removes a task scoped to its owner
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error

	// CountForOwner counts tasks for an owner matching the filter
	CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error)

	// CountDueByForOwner counts open tasks due at or before the deadline
	CountDueByForOwner(ctx context.Context, ownerID uuid.UUID, deadline time.Time) (int64, error)
}
