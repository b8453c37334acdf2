package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeUser = "User"

// Event type constants
const (
	EventTypeUserRegistered = "UserRegistered"
	EventTypeUserLocked     = "UserLocked"
)

// UserRegisteredEvent is published when a new user signs up
type UserRegisteredEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(user *User) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserRegistered, AggregateTypeUser, user.ID, user.ID),
		UserID:          user.ID,
		Email:           user.Email,
	}
}

// UserLockedEvent is published when an account is locked after failed logins
type UserLockedEvent struct {
	shared.BaseDomainEvent
	UserID      uuid.UUID  `json:"user_id"`
	LockedUntil *time.Time `json:"locked_until,omitempty"`
}

// NewUserLockedEvent creates a new UserLockedEvent
func NewUserLockedEvent(user *User) *UserLockedEvent {
	return &UserLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLocked, AggregateTypeUser, user.ID, user.ID),
		UserID:          user.ID,
		LockedUntil:     user.LockedUntil,
	}
}
