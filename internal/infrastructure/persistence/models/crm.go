package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/shopspring/decimal"
)

// FacilityModel is the persistence model for the Facility domain entity.
type FacilityModel struct {
	OwnedAggregateModel
	Name              string            `gorm:"type:varchar(200);not null;index"`
	FacilityType      crm.FacilityType  `gorm:"type:varchar(20);not null"`
	OwnershipType     crm.OwnershipType `gorm:"type:varchar(30)"`
	CensusSize        *int              `gorm:""`
	AnnualRevenue     *decimal.Decimal  `gorm:"type:decimal(14,2)"`
	AddressLine1      string            `gorm:"type:varchar(200)"`
	AddressLine2      string            `gorm:"type:varchar(200)"`
	City              string            `gorm:"type:varchar(100)"`
	State             string            `gorm:"type:varchar(2)"`
	Zip               string            `gorm:"type:varchar(10)"`
	CCN               string            `gorm:"type:varchar(20)"`
	CurrentSoftware   string            `gorm:"type:varchar(100)"`
	ContractRenewalAt *time.Time        `gorm:""`
	Notes             string            `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FacilityModel) TableName() string {
	return "facilities"
}

// ToDomain converts the persistence model to a domain Facility entity.
func (m *FacilityModel) ToDomain() *crm.Facility {
	return &crm.Facility{
		OwnedAggregateRoot: m.ownedAggregateRoot(),
		Name:               m.Name,
		FacilityType:       m.FacilityType,
		OwnershipType:      m.OwnershipType,
		CensusSize:         m.CensusSize,
		AnnualRevenue:      m.AnnualRevenue,
		AddressLine1:       m.AddressLine1,
		AddressLine2:       m.AddressLine2,
		City:               m.City,
		State:              m.State,
		Zip:                m.Zip,
		CCN:                m.CCN,
		CurrentSoftware:    m.CurrentSoftware,
		ContractRenewalAt:  m.ContractRenewalAt,
		Notes:              m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Facility entity.
func (m *FacilityModel) FromDomain(f *crm.Facility) {
	m.FromDomainOwnedAggregateRoot(f.OwnedAggregateRoot)
	m.Name = f.Name
	m.FacilityType = f.FacilityType
	m.OwnershipType = f.OwnershipType
	m.CensusSize = f.CensusSize
	m.AnnualRevenue = f.AnnualRevenue
	m.AddressLine1 = f.AddressLine1
	m.AddressLine2 = f.AddressLine2
	m.City = f.City
	m.State = f.State
	m.Zip = f.Zip
	m.CCN = f.CCN
	m.CurrentSoftware = f.CurrentSoftware
	m.ContractRenewalAt = f.ContractRenewalAt
	m.Notes = f.Notes
}

// FacilityModelFromDomain creates a new persistence model from a domain Facility entity.
func FacilityModelFromDomain(f *crm.Facility) *FacilityModel {
	m := &FacilityModel{}
	m.FromDomain(f)
	return m
}

// ContactModel is the persistence model for the Contact domain entity.
type ContactModel struct {
	OwnedAggregateModel
	FacilityID       *uuid.UUID    `gorm:"type:uuid;index"`
	Name             string        `gorm:"type:varchar(200);not null"`
	Title            string        `gorm:"type:varchar(100)"`
	BuyerRole        crm.BuyerRole `gorm:"type:varchar(20)"`
	Email            string        `gorm:"type:varchar(200);index"`
	Phone            string        `gorm:"type:varchar(50)"`
	Mobile           string        `gorm:"type:varchar(50)"`
	PreferredChannel string        `gorm:"type:varchar(20)"`
	LinkedInURL      string        `gorm:"type:varchar(300)"`
	Notes            string        `gorm:"type:text"`
	LastContactedAt  *time.Time    `gorm:""`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact entity.
func (m *ContactModel) ToDomain() *crm.Contact {
	return &crm.Contact{
		OwnedAggregateRoot: m.ownedAggregateRoot(),
		FacilityID:         m.FacilityID,
		Name:               m.Name,
		Title:              m.Title,
		BuyerRole:          m.BuyerRole,
		Email:              m.Email,
		Phone:              m.Phone,
		Mobile:             m.Mobile,
		PreferredChannel:   m.PreferredChannel,
		LinkedInURL:        m.LinkedInURL,
		Notes:              m.Notes,
		LastContactedAt:    m.LastContactedAt,
	}
}

// FromDomain populates the persistence model from a domain Contact entity.
func (m *ContactModel) FromDomain(c *crm.Contact) {
	m.FromDomainOwnedAggregateRoot(c.OwnedAggregateRoot)
	m.FacilityID = c.FacilityID
	m.Name = c.Name
	m.Title = c.Title
	m.BuyerRole = c.BuyerRole
	m.Email = c.Email
	m.Phone = c.Phone
	m.Mobile = c.Mobile
	m.PreferredChannel = c.PreferredChannel
	m.LinkedInURL = c.LinkedInURL
	m.Notes = c.Notes
	m.LastContactedAt = c.LastContactedAt
}

// ContactModelFromDomain creates a new persistence model from a domain Contact entity.
func ContactModelFromDomain(c *crm.Contact) *ContactModel {
	m := &ContactModel{}
	m.FromDomain(c)
	return m
}

// DealModel is the persistence model for the Deal domain entity.
type DealModel struct {
	OwnedAggregateModel
	FacilityID       *uuid.UUID      `gorm:"type:uuid;index"`
	PrimaryContactID *uuid.UUID      `gorm:"type:uuid;index"`
	Name             string          `gorm:"type:varchar(200);not null"`
	Stage            crm.DealStage   `gorm:"type:varchar(20);not null;default:'lead';index"`
	Value            decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	RecurringValue   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Probability      *int            `gorm:""`
	ExpectedCloseAt  *time.Time      `gorm:""`
	NextStep         string          `gorm:"type:text"`
	LossReason       string          `gorm:"type:text"`
	CompetitorNotes  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (DealModel) TableName() string {
	return "deals"
}

// ToDomain converts the persistence model to a domain Deal entity.
func (m *DealModel) ToDomain() *crm.Deal {
	return &crm.Deal{
		OwnedAggregateRoot: m.ownedAggregateRoot(),
		FacilityID:         m.FacilityID,
		PrimaryContactID:   m.PrimaryContactID,
		Name:               m.Name,
		Stage:              m.Stage,
		Value:              m.Value,
		RecurringValue:     m.RecurringValue,
		Probability:        m.Probability,
		ExpectedCloseAt:    m.ExpectedCloseAt,
		NextStep:           m.NextStep,
		LossReason:         m.LossReason,
		CompetitorNotes:    m.CompetitorNotes,
	}
}

// FromDomain populates the persistence model from a domain Deal entity.
func (m *DealModel) FromDomain(d *crm.Deal) {
	m.FromDomainOwnedAggregateRoot(d.OwnedAggregateRoot)
	m.FacilityID = d.FacilityID
	m.PrimaryContactID = d.PrimaryContactID
	m.Name = d.Name
	m.Stage = d.Stage
	m.Value = d.Value
	m.RecurringValue = d.RecurringValue
	m.Probability = d.Probability
	m.ExpectedCloseAt = d.ExpectedCloseAt
	m.NextStep = d.NextStep
	m.LossReason = d.LossReason
	m.CompetitorNotes = d.CompetitorNotes
}

// DealModelFromDomain creates a new persistence model from a domain Deal entity.
func DealModelFromDomain(d *crm.Deal) *DealModel {
	m := &DealModel{}
	m.FromDomain(d)
	return m
}

// TaskModel is the persistence model for the Task domain entity.
type TaskModel struct {
	OwnedAggregateModel
	FacilityID  *uuid.UUID          `gorm:"type:uuid;index"`
	ContactID   *uuid.UUID          `gorm:"type:uuid;index"`
	DealID      *uuid.UUID          `gorm:"type:uuid;index"`
	Type        crm.InteractionType `gorm:"type:varchar(20);not null"`
	Description string              `gorm:"type:text;not null"`
	DueAt       *time.Time          `gorm:"index"`
	Priority    crm.TaskPriority    `gorm:"type:varchar(10);not null;default:'medium'"`
	CompletedAt *time.Time          `gorm:"index"`
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the persistence model to a domain Task entity.
func (m *TaskModel) ToDomain() *crm.Task {
	return &crm.Task{
		OwnedAggregateRoot: m.ownedAggregateRoot(),
		FacilityID:         m.FacilityID,
		ContactID:          m.ContactID,
		DealID:             m.DealID,
		Type:               m.Type,
		Description:        m.Description,
		DueAt:              m.DueAt,
		Priority:           m.Priority,
		CompletedAt:        m.CompletedAt,
	}
}

// FromDomain populates the persistence model from a domain Task entity.
func (m *TaskModel) FromDomain(t *crm.Task) {
	m.FromDomainOwnedAggregateRoot(t.OwnedAggregateRoot)
	m.FacilityID = t.FacilityID
	m.ContactID = t.ContactID
	m.DealID = t.DealID
	m.Type = t.Type
	m.Description = t.Description
	m.DueAt = t.DueAt
	m.Priority = t.Priority
	m.CompletedAt = t.CompletedAt
}

// TaskModelFromDomain creates a new persistence model from a domain Task entity.
func TaskModelFromDomain(t *crm.Task) *TaskModel {
	m := &TaskModel{}
	m.FromDomain(t)
	return m
}

// ActivityModel is the persistence model for the Activity domain entity.
type ActivityModel struct {
	OwnedAggregateModel
	FacilityID   *uuid.UUID           `gorm:"type:uuid;index"`
	ContactID    *uuid.UUID           `gorm:"type:uuid;index"`
	DealID       *uuid.UUID           `gorm:"type:uuid;index"`
	Type         crm.InteractionType  `gorm:"type:varchar(20);not null"`
	Subject      string               `gorm:"type:varchar(200);not null"`
	Notes        string               `gorm:"type:text"`
	Outcome      *crm.ActivityOutcome `gorm:"type:varchar(10)"`
	OccurredAt   time.Time            `gorm:"not null;index"`
	DurationMins *int                 `gorm:""`
}

// TableName returns the table name for GORM
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts the persistence model to a domain Activity entity.
func (m *ActivityModel) ToDomain() *crm.Activity {
	return &crm.Activity{
		OwnedAggregateRoot: m.ownedAggregateRoot(),
		FacilityID:         m.FacilityID,
		ContactID:          m.ContactID,
		DealID:             m.DealID,
		Type:               m.Type,
		Subject:            m.Subject,
		Notes:              m.Notes,
		Outcome:            m.Outcome,
		OccurredAt:         m.OccurredAt,
		DurationMins:       m.DurationMins,
	}
}

// FromDomain populates the persistence model from a domain Activity entity.
func (m *ActivityModel) FromDomain(a *crm.Activity) {
	m.FromDomainOwnedAggregateRoot(a.OwnedAggregateRoot)
	m.FacilityID = a.FacilityID
	m.ContactID = a.ContactID
	m.DealID = a.DealID
	m.Type = a.Type
	m.Subject = a.Subject
	m.Notes = a.Notes
	m.Outcome = a.Outcome
	m.OccurredAt = a.OccurredAt
	m.DurationMins = a.DurationMins
}

// ActivityModelFromDomain creates a new persistence model from a domain Activity entity.
func ActivityModelFromDomain(a *crm.Activity) *ActivityModel {
	m := &ActivityModel{}
	m.FromDomain(a)
	return m
}
