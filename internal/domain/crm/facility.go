package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FacilityType represents the kind of care organization
type FacilityType string

const (
	FacilityTypeHospice    FacilityType = "hospice"
	FacilityTypeHomeHealth FacilityType = "home_health"
	FacilityTypePalliative FacilityType = "palliative"
	FacilityTypeHybrid     FacilityType = "hybrid"
)

// OwnershipType represents the facility's corporate structure
type OwnershipType string

const (
	OwnershipForProfit          OwnershipType = "for_profit"
	OwnershipNonProfit          OwnershipType = "non_profit"
	OwnershipHospitalAffiliated OwnershipType = "hospital_affiliated"
	OwnershipIndependent        OwnershipType = "independent"
)

// Facility represents an organization being sold to.
// It is the aggregate root of the account: deleting a facility cascades
// to its contacts, deals, tasks, and activities.
type Facility struct {
	shared.OwnedAggregateRoot
	Name              string           `gorm:"type:varchar(200);not null"`
	FacilityType      FacilityType     `gorm:"type:varchar(20);not null"`
	OwnershipType     OwnershipType    `gorm:"type:varchar(30)"`
	CensusSize        *int             `gorm:""`
	AnnualRevenue     *decimal.Decimal `gorm:"type:decimal(14,2)"`
	AddressLine1      string           `gorm:"type:varchar(200)"`
	AddressLine2      string           `gorm:"type:varchar(200)"`
	City              string           `gorm:"type:varchar(100)"`
	State             string           `gorm:"type:varchar(2)"`
	Zip               string           `gorm:"type:varchar(10)"`
	CCN               string           `gorm:"type:varchar(20)"` // CMS certification number
	CurrentSoftware   string           `gorm:"type:varchar(100)"`
	ContractRenewalAt *time.Time       `gorm:""`
	Notes             string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Facility) TableName() string {
	return "facilities"
}

// NewFacility creates a new facility with required fields
func NewFacility(ownerID uuid.UUID, name string, facilityType FacilityType) (*Facility, error) {
	if err := validateFacilityName(name); err != nil {
		return nil, err
	}
	if err := validateFacilityType(facilityType); err != nil {
		return nil, err
	}

	facility := &Facility{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		FacilityType:       facilityType,
	}

	facility.AddDomainEvent(NewFacilityCreatedEvent(facility))

	return facility, nil
}

// Update updates the facility's name and type
func (f *Facility) Update(name string, facilityType FacilityType) error {
	if err := validateFacilityName(name); err != nil {
		return err
	}
	if err := validateFacilityType(facilityType); err != nil {
		return err
	}

	f.Name = name
	f.FacilityType = facilityType
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	f.AddDomainEvent(NewFacilityUpdatedEvent(f))

	return nil
}

// SetOwnership sets the facility's ownership type
func (f *Facility) SetOwnership(ownership OwnershipType) error {
	if ownership != "" {
		if err := validateOwnershipType(ownership); err != nil {
			return err
		}
	}

	f.OwnershipType = ownership
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// SetProfile sets the facility's business profile
func (f *Facility) SetProfile(censusSize *int, annualRevenue *decimal.Decimal, currentSoftware string) error {
	if censusSize != nil && *censusSize < 0 {
		return shared.NewDomainError("INVALID_CENSUS", "Census size cannot be negative")
	}
	if annualRevenue != nil && annualRevenue.IsNegative() {
		return shared.NewDomainError("INVALID_REVENUE", "Annual revenue cannot be negative")
	}
	if len(currentSoftware) > 100 {
		return shared.NewDomainError("INVALID_SOFTWARE", "Current software cannot exceed 100 characters")
	}

	f.CensusSize = censusSize
	f.AnnualRevenue = annualRevenue
	f.CurrentSoftware = currentSoftware
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// SetAddress sets the facility's address
func (f *Facility) SetAddress(line1, line2, city, state, zip string) error {
	if len(line1) > 200 || len(line2) > 200 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address line cannot exceed 200 characters")
	}
	if len(city) > 100 {
		return shared.NewDomainError("INVALID_CITY", "City cannot exceed 100 characters")
	}
	if state != "" && len(state) != 2 {
		return shared.NewDomainError("INVALID_STATE", "State must be a two-letter code")
	}
	if len(zip) > 10 {
		return shared.NewDomainError("INVALID_ZIP", "Zip cannot exceed 10 characters")
	}

	f.AddressLine1 = line1
	f.AddressLine2 = line2
	f.City = city
	f.State = state
	f.Zip = zip
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// SetCCN sets the CMS certification number
func (f *Facility) SetCCN(ccn string) error {
	if len(ccn) > 20 {
		return shared.NewDomainError("INVALID_CCN", "CCN cannot exceed 20 characters")
	}

	f.CCN = ccn
	f.UpdatedAt = time.Now()
	f.IncrementVersion()

	return nil
}

// SetContractRenewal sets when the facility's current software contract renews
func (f *Facility) SetContractRenewal(renewalAt *time.Time) {
	f.ContractRenewalAt = renewalAt
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}

// SetNotes sets free-text notes
func (f *Facility) SetNotes(notes string) {
	f.Notes = notes
	f.UpdatedAt = time.Now()
	f.IncrementVersion()
}

func validateFacilityName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Facility name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Facility name cannot exceed 200 characters")
	}
	return nil
}

func validateFacilityType(t FacilityType) error {
	switch t {
	case FacilityTypeHospice, FacilityTypeHomeHealth, FacilityTypePalliative, FacilityTypeHybrid:
		return nil
	default:
		return shared.NewDomainError("INVALID_TYPE", "Facility type must be 'hospice', 'home_health', 'palliative', or 'hybrid'")
	}
}

func validateOwnershipType(t OwnershipType) error {
	switch t {
	case OwnershipForProfit, OwnershipNonProfit, OwnershipHospitalAffiliated, OwnershipIndependent:
		return nil
	default:
		return shared.NewDomainError("INVALID_OWNERSHIP", "Ownership type must be 'for_profit', 'non_profit', 'hospital_affiliated', or 'independent'")
	}
}
