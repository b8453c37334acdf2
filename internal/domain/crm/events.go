package crm

import (
	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeFacility = "Facility"
	AggregateTypeContact  = "Contact"
	AggregateTypeDeal     = "Deal"
	AggregateTypeTask     = "Task"
	AggregateTypeActivity = "Activity"
)

// Event type constants
const (
	EventTypeFacilityCreated  = "FacilityCreated"
	EventTypeFacilityUpdated  = "FacilityUpdated"
	EventTypeContactCreated   = "ContactCreated"
	EventTypeContactUpdated   = "ContactUpdated"
	EventTypeDealCreated      = "DealCreated"
	EventTypeDealStageChanged = "DealStageChanged"
	EventTypeTaskCreated      = "TaskCreated"
	EventTypeTaskCompleted    = "TaskCompleted"
	EventTypeTaskReopened     = "TaskReopened"
	EventTypeActivityLogged   = "ActivityLogged"
)

// FacilityCreatedEvent is published when a new facility is created
type FacilityCreatedEvent struct {
	shared.BaseDomainEvent
	FacilityID   uuid.UUID    `json:"facility_id"`
	Name         string       `json:"name"`
	FacilityType FacilityType `json:"facility_type"`
}

// NewFacilityCreatedEvent creates a new FacilityCreatedEvent
func NewFacilityCreatedEvent(facility *Facility) *FacilityCreatedEvent {
	return &FacilityCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFacilityCreated, AggregateTypeFacility, facility.ID, facility.OwnerID),
		FacilityID:      facility.ID,
		Name:            facility.Name,
		FacilityType:    facility.FacilityType,
	}
}

// FacilityUpdatedEvent is published when a facility is updated
type FacilityUpdatedEvent struct {
	shared.BaseDomainEvent
	FacilityID uuid.UUID `json:"facility_id"`
	Name       string    `json:"name"`
}

// NewFacilityUpdatedEvent creates a new FacilityUpdatedEvent
func NewFacilityUpdatedEvent(facility *Facility) *FacilityUpdatedEvent {
	return &FacilityUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFacilityUpdated, AggregateTypeFacility, facility.ID, facility.OwnerID),
		FacilityID:      facility.ID,
		Name:            facility.Name,
	}
}

// ContactCreatedEvent is published when a new contact is created
type ContactCreatedEvent struct {
	shared.BaseDomainEvent
	ContactID  uuid.UUID  `json:"contact_id"`
	FacilityID *uuid.UUID `json:"facility_id,omitempty"`
	Name       string     `json:"name"`
}

// NewContactCreatedEvent creates a new ContactCreatedEvent
func NewContactCreatedEvent(contact *Contact) *ContactCreatedEvent {
	return &ContactCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactCreated, AggregateTypeContact, contact.ID, contact.OwnerID),
		ContactID:       contact.ID,
		FacilityID:      contact.FacilityID,
		Name:            contact.Name,
	}
}

// ContactUpdatedEvent is published when a contact is updated
type ContactUpdatedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID `json:"contact_id"`
	Name      string    `json:"name"`
}

// NewContactUpdatedEvent creates a new ContactUpdatedEvent
func NewContactUpdatedEvent(contact *Contact) *ContactUpdatedEvent {
	return &ContactUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactUpdated, AggregateTypeContact, contact.ID, contact.OwnerID),
		ContactID:       contact.ID,
		Name:            contact.Name,
	}
}

// DealCreatedEvent is published when a new deal enters the pipeline
type DealCreatedEvent struct {
	shared.BaseDomainEvent
	DealID uuid.UUID `json:"deal_id"`
	Name   string    `json:"name"`
	Stage  DealStage `json:"stage"`
}

// NewDealCreatedEvent creates a new DealCreatedEvent
func NewDealCreatedEvent(deal *Deal) *DealCreatedEvent {
	return &DealCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDealCreated, AggregateTypeDeal, deal.ID, deal.OwnerID),
		DealID:          deal.ID,
		Name:            deal.Name,
		Stage:           deal.Stage,
	}
}

// DealStageChangedEvent is published when a deal moves between stages
type DealStageChangedEvent struct {
	shared.BaseDomainEvent
	DealID    uuid.UUID `json:"deal_id"`
	FromStage DealStage `json:"from_stage"`
	ToStage   DealStage `json:"to_stage"`
}

// NewDealStageChangedEvent creates a new DealStageChangedEvent
func NewDealStageChangedEvent(deal *Deal, from, to DealStage) *DealStageChangedEvent {
	return &DealStageChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDealStageChanged, AggregateTypeDeal, deal.ID, deal.OwnerID),
		DealID:          deal.ID,
		FromStage:       from,
		ToStage:         to,
	}
}

// TaskCreatedEvent is published when a new task is created
type TaskCreatedEvent struct {
	shared.BaseDomainEvent
	TaskID uuid.UUID       `json:"task_id"`
	Type   InteractionType `json:"type"`
}

// NewTaskCreatedEvent creates a new TaskCreatedEvent
func NewTaskCreatedEvent(task *Task) *TaskCreatedEvent {
	return &TaskCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaskCreated, AggregateTypeTask, task.ID, task.OwnerID),
		TaskID:          task.ID,
		Type:            task.Type,
	}
}

// TaskCompletedEvent is published when a task is completed
type TaskCompletedEvent struct {
	shared.BaseDomainEvent
	TaskID uuid.UUID `json:"task_id"`
}

// NewTaskCompletedEvent creates a new TaskCompletedEvent
func NewTaskCompletedEvent(task *Task) *TaskCompletedEvent {
	return &TaskCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaskCompleted, AggregateTypeTask, task.ID, task.OwnerID),
		TaskID:          task.ID,
	}
}

// TaskReopenedEvent is published when a completed task is reopened
type TaskReopenedEvent struct {
	shared.BaseDomainEvent
	TaskID uuid.UUID `json:"task_id"`
}

// NewTaskReopenedEvent creates a new TaskReopenedEvent
func NewTaskReopenedEvent(task *Task) *TaskReopenedEvent {
	return &TaskReopenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTaskReopened, AggregateTypeTask, task.ID, task.OwnerID),
		TaskID:          task.ID,
	}
}

// ActivityLoggedEvent is published when a touchpoint is logged
type ActivityLoggedEvent struct {
	shared.BaseDomainEvent
	ActivityID uuid.UUID       `json:"activity_id"`
	Type       InteractionType `json:"type"`
	Subject    string          `json:"subject"`
}

// NewActivityLoggedEvent creates a new ActivityLoggedEvent
func NewActivityLoggedEvent(activity *Activity) *ActivityLoggedEvent {
	return &ActivityLoggedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeActivityLogged, AggregateTypeActivity, activity.ID, activity.OwnerID),
		ActivityID:      activity.ID,
		Type:            activity.Type,
		Subject:         activity.Subject,
	}
}
