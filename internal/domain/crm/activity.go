package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// Activity is an immutable log entry of a sales touchpoint.
// Activities are created and deleted but never edited.
type Activity struct {
	shared.OwnedAggregateRoot
	FacilityID   *uuid.UUID       `gorm:"type:uuid;index"`
	ContactID    *uuid.UUID       `gorm:"type:uuid;index"`
	DealID       *uuid.UUID       `gorm:"type:uuid;index"`
	Type         InteractionType  `gorm:"type:varchar(20);not null"`
	Subject      string           `gorm:"type:varchar(200);not null"`
	Notes        string           `gorm:"type:text"`
	Outcome      *ActivityOutcome `gorm:"type:varchar(10)"`
	OccurredAt   time.Time        `gorm:"not null;index"`
	DurationMins *int             `gorm:""`
}

// TableName returns the table name for GORM
func (Activity) TableName() string {
	return "activities"
}

// NewActivity creates a new activity log entry
func NewActivity(ownerID uuid.UUID, activityType InteractionType, subject string, occurredAt time.Time) (*Activity, error) {
	if err := validateInteractionType(activityType); err != nil {
		return nil, err
	}
	if subject == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Activity subject cannot be empty")
	}
	if len(subject) > 200 {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Activity subject cannot exceed 200 characters")
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	activity := &Activity{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Type:               activityType,
		Subject:            subject,
		OccurredAt:         occurredAt,
	}

	activity.AddDomainEvent(NewActivityLoggedEvent(activity))

	return activity, nil
}

// WithNotes sets free-text notes at creation time
func (a *Activity) WithNotes(notes string) *Activity {
	a.Notes = notes
	return a
}

// WithOutcome sets how the touchpoint went at creation time
func (a *Activity) WithOutcome(outcome *ActivityOutcome) (*Activity, error) {
	if outcome != nil {
		if err := validateActivityOutcome(*outcome); err != nil {
			return nil, err
		}
	}
	a.Outcome = outcome
	return a, nil
}

// WithDuration sets the touchpoint duration in minutes at creation time
func (a *Activity) WithDuration(mins *int) (*Activity, error) {
	if mins != nil && *mins < 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Duration cannot be negative")
	}
	a.DurationMins = mins
	return a, nil
}

// Link attaches the activity to related records at creation time
func (a *Activity) Link(facilityID, contactID, dealID *uuid.UUID) *Activity {
	a.FacilityID = facilityID
	a.ContactID = contactID
	a.DealID = dealID
	return a
}
