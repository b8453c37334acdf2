package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// Task represents a to-do item. Completion is a nullable timestamp
// rather than a flag, so completing is reversible.
type Task struct {
	shared.OwnedAggregateRoot
	FacilityID  *uuid.UUID      `gorm:"type:uuid;index"`
	ContactID   *uuid.UUID      `gorm:"type:uuid;index"`
	DealID      *uuid.UUID      `gorm:"type:uuid;index"`
	Type        InteractionType `gorm:"type:varchar(20);not null"`
	Description string          `gorm:"type:text;not null"`
	DueAt       *time.Time      `gorm:"index"`
	Priority    TaskPriority    `gorm:"type:varchar(10);not null;default:'medium'"`
	CompletedAt *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a new open task
func NewTask(ownerID uuid.UUID, taskType InteractionType, description string) (*Task, error) {
	if err := validateInteractionType(taskType); err != nil {
		return nil, err
	}
	if err := validateTaskDescription(description); err != nil {
		return nil, err
	}

	task := &Task{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Type:               taskType,
		Description:        description,
		Priority:           PriorityMedium,
	}

	task.AddDomainEvent(NewTaskCreatedEvent(task))

	return task, nil
}

// Update updates the task's type and description
func (t *Task) Update(taskType InteractionType, description string) error {
	if err := validateInteractionType(taskType); err != nil {
		return err
	}
	if err := validateTaskDescription(description); err != nil {
		return err
	}

	t.Type = taskType
	t.Description = description
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// SetDue sets the due timestamp (nil clears it)
func (t *Task) SetDue(dueAt *time.Time) {
	t.DueAt = dueAt
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetPriority sets the task priority
func (t *Task) SetPriority(priority TaskPriority) error {
	if err := validateTaskPriority(priority); err != nil {
		return err
	}

	t.Priority = priority
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

// Link attaches the task to related records (nil detaches)
func (t *Task) Link(facilityID, contactID, dealID *uuid.UUID) {
	t.FacilityID = facilityID
	t.ContactID = contactID
	t.DealID = dealID
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// Complete marks the task done by stamping the completion timestamp
func (t *Task) Complete() {
	now := time.Now()
	t.CompletedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTaskCompletedEvent(t))
}

// Reopen clears the completion timestamp, restoring the task to the open list
func (t *Task) Reopen() {
	t.CompletedAt = nil
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTaskReopenedEvent(t))
}

// IsOpen reports whether the task is not yet completed
func (t *Task) IsOpen() bool {
	return t.CompletedAt == nil
}

// IsDueBy reports whether an open task is due at or before the deadline
func (t *Task) IsDueBy(deadline time.Time) bool {
	return t.IsOpen() && t.DueAt != nil && !t.DueAt.After(deadline)
}

func validateTaskDescription(description string) error {
	if description == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Task description cannot be empty")
	}
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Task description cannot exceed 2000 characters")
	}
	return nil
}
