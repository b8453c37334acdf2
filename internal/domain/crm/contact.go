package crm

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// BuyerRole represents a contact's influence in the purchasing decision
type BuyerRole string

const (
	RoleDecisionMaker BuyerRole = "decision_maker"
	RoleInfluencer    BuyerRole = "influencer"
	RoleChampion      BuyerRole = "champion"
	RoleBlocker       BuyerRole = "blocker"
	RoleEndUser       BuyerRole = "end_user"
)

// Contact represents a person at a facility
type Contact struct {
	shared.OwnedAggregateRoot
	FacilityID       *uuid.UUID `gorm:"type:uuid;index"`
	Name             string     `gorm:"type:varchar(200);not null"`
	Title            string     `gorm:"type:varchar(100)"`
	BuyerRole        BuyerRole  `gorm:"type:varchar(20)"`
	Email            string     `gorm:"type:varchar(200);index"`
	Phone            string     `gorm:"type:varchar(50)"`
	Mobile           string     `gorm:"type:varchar(50)"`
	PreferredChannel string     `gorm:"type:varchar(20)"`
	LinkedInURL      string     `gorm:"type:varchar(300)"`
	Notes            string     `gorm:"type:text"`
	LastContactedAt  *time.Time `gorm:""`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new contact with required fields
func NewContact(ownerID uuid.UUID, name string) (*Contact, error) {
	if err := validateContactName(name); err != nil {
		return nil, err
	}

	contact := &Contact{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
	}

	contact.AddDomainEvent(NewContactCreatedEvent(contact))

	return contact, nil
}

// Update updates the contact's name, title, and buyer role
func (c *Contact) Update(name, title string, role BuyerRole) error {
	if err := validateContactName(name); err != nil {
		return err
	}
	if len(title) > 100 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 100 characters")
	}
	if role != "" {
		if err := validateBuyerRole(role); err != nil {
			return err
		}
	}

	c.Name = name
	c.Title = title
	c.BuyerRole = role
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewContactUpdatedEvent(c))

	return nil
}

// SetChannels sets the contact's reachability details
func (c *Contact) SetChannels(email, phone, mobile, preferredChannel string) error {
	if email != "" {
		if err := validateContactEmail(email); err != nil {
			return err
		}
	}
	if phone != "" {
		if err := validateContactPhone(phone); err != nil {
			return err
		}
	}
	if mobile != "" {
		if err := validateContactPhone(mobile); err != nil {
			return err
		}
	}
	if len(preferredChannel) > 20 {
		return shared.NewDomainError("INVALID_CHANNEL", "Preferred channel cannot exceed 20 characters")
	}

	c.Email = email
	c.Phone = phone
	c.Mobile = mobile
	c.PreferredChannel = preferredChannel
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetLinkedIn sets the contact's external profile URL
func (c *Contact) SetLinkedIn(url string) error {
	if len(url) > 300 {
		return shared.NewDomainError("INVALID_URL", "Profile URL cannot exceed 300 characters")
	}

	c.LinkedInURL = url
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets free-text notes
func (c *Contact) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// AssignFacility links the contact to a facility (nil detaches it)
func (c *Contact) AssignFacility(facilityID *uuid.UUID) {
	c.FacilityID = facilityID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// RecordContacted stamps the last-contacted timestamp
func (c *Contact) RecordContacted(at time.Time) {
	c.LastContactedAt = &at
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

func validateContactName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Contact name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Contact name cannot exceed 200 characters")
	}
	return nil
}

func validateBuyerRole(role BuyerRole) error {
	switch role {
	case RoleDecisionMaker, RoleInfluencer, RoleChampion, RoleBlocker, RoleEndUser:
		return nil
	default:
		return shared.NewDomainError("INVALID_ROLE", "Buyer role must be 'decision_maker', 'influencer', 'champion', 'blocker', or 'end_user'")
	}
}

var contactPhonePattern = regexp.MustCompile(`^[\d\s\-\(\)\+\.]+$`)

func validateContactPhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	if !contactPhonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

var contactEmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateContactEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !contactEmailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
