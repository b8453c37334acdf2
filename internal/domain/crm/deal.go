package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Deal represents a sales opportunity progressing through the pipeline
type Deal struct {
	shared.OwnedAggregateRoot
	FacilityID       *uuid.UUID      `gorm:"type:uuid;index"`
	PrimaryContactID *uuid.UUID      `gorm:"type:uuid;index"`
	Name             string          `gorm:"type:varchar(200);not null"`
	Stage            DealStage       `gorm:"type:varchar(20);not null;default:'lead';index"`
	Value            decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	RecurringValue   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Probability      *int            `gorm:""` // overrides the stage default when set
	ExpectedCloseAt  *time.Time      `gorm:""`
	NextStep         string          `gorm:"type:text"`
	LossReason       string          `gorm:"type:text"`
	CompetitorNotes  string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Deal) TableName() string {
	return "deals"
}

// NewDeal creates a new deal in the lead stage
func NewDeal(ownerID uuid.UUID, name string) (*Deal, error) {
	if err := validateDealName(name); err != nil {
		return nil, err
	}

	deal := &Deal{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Stage:              StageLead,
		Value:              decimal.Zero,
		RecurringValue:     decimal.Zero,
	}

	deal.AddDomainEvent(NewDealCreatedEvent(deal))

	return deal, nil
}

// Rename updates the deal's name
func (d *Deal) Rename(name string) error {
	if err := validateDealName(name); err != nil {
		return err
	}

	d.Name = name
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// ChangeStage moves the deal to a different pipeline stage.
// Reassigning the current stage is a no-op.
func (d *Deal) ChangeStage(target DealStage) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STAGE", "Stage must be one of the nine defined pipeline stages")
	}
	if target == d.Stage {
		return nil
	}

	from := d.Stage
	d.Stage = target
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDealStageChangedEvent(d, from, target))

	return nil
}

// SetValue sets the deal's one-time and recurring monetary values
func (d *Deal) SetValue(value, recurring decimal.Decimal) error {
	if value.IsNegative() || recurring.IsNegative() {
		return shared.NewDomainError("INVALID_VALUE", "Deal value cannot be negative")
	}

	d.Value = value
	d.RecurringValue = recurring
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetProbability overrides the stage's default win probability (nil resets it)
func (d *Deal) SetProbability(probability *int) error {
	if probability != nil && (*probability < 0 || *probability > 100) {
		return shared.NewDomainError("INVALID_PROBABILITY", "Probability must be between 0 and 100")
	}

	d.Probability = probability
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetExpectedClose sets the forecast close date
func (d *Deal) SetExpectedClose(at *time.Time) {
	d.ExpectedCloseAt = at
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// SetNextStep records the next planned action on the deal
func (d *Deal) SetNextStep(nextStep string) {
	d.NextStep = nextStep
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// SetCloseout records why the deal was lost and who it was lost to
func (d *Deal) SetCloseout(lossReason, competitorNotes string) {
	d.LossReason = lossReason
	d.CompetitorNotes = competitorNotes
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// LinkFacility links the deal to a facility (nil detaches it)
func (d *Deal) LinkFacility(facilityID *uuid.UUID) {
	d.FacilityID = facilityID
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// LinkPrimaryContact links the deal to its primary contact (nil detaches it)
func (d *Deal) LinkPrimaryContact(contactID *uuid.UUID) {
	d.PrimaryContactID = contactID
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
}

// IsClosed reports whether the deal has reached a terminal stage
func (d *Deal) IsClosed() bool {
	return d.Stage.IsClosed()
}

// IsWon reports whether the deal closed won
func (d *Deal) IsWon() bool {
	return d.Stage == StageClosedWon
}

// EffectiveProbability returns the override probability when set,
// otherwise the stage default.
func (d *Deal) EffectiveProbability() int {
	if d.Probability != nil {
		return *d.Probability
	}
	return d.Stage.DefaultProbability()
}

func validateDealName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Deal name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Deal name cannot exceed 200 characters")
	}
	return nil
}
