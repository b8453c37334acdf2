package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// ContactService handles contact-related business operations
type ContactService struct {
	contactRepo  crm.ContactRepository
	facilityRepo crm.FacilityRepository
	stats        StatsInvalidator
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo crm.ContactRepository, facilityRepo crm.FacilityRepository, stats StatsInvalidator) *ContactService {
	return &ContactService{
		contactRepo:  contactRepo,
		facilityRepo: facilityRepo,
		stats:        stats,
	}
}

// Create creates a new contact
func (s *ContactService) Create(ctx context.Context, ownerID uuid.UUID, req CreateContactRequest) (*ContactResponse, error) {
	if err := s.verifyFacility(ctx, ownerID, req.FacilityID); err != nil {
		return nil, err
	}

	contact, err := crm.NewContact(ownerID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Title != "" || req.BuyerRole != "" {
		if err := contact.Update(req.Name, req.Title, crm.BuyerRole(req.BuyerRole)); err != nil {
			return nil, err
		}
	}

	if req.Email != "" || req.Phone != "" || req.Mobile != "" || req.PreferredChannel != "" {
		if err := contact.SetChannels(req.Email, req.Phone, req.Mobile, req.PreferredChannel); err != nil {
			return nil, err
		}
	}

	if req.LinkedInURL != "" {
		if err := contact.SetLinkedIn(req.LinkedInURL); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		contact.SetNotes(req.Notes)
	}

	contact.AssignFacility(req.FacilityID)

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	facilityNames, err := s.facilityNamesFor(ctx, ownerID, contact.FacilityID)
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(contact, facilityNames)
	return &response, nil
}

// GetByID retrieves a contact by ID
func (s *ContactService) GetByID(ctx context.Context, ownerID, contactID uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForOwner(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	facilityNames, err := s.facilityNamesFor(ctx, ownerID, contact.FacilityID)
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(contact, facilityNames)
	return &response, nil
}

// List retrieves contacts with filtering and pagination
func (s *ContactService) List(ctx context.Context, ownerID uuid.UUID, filter ContactListFilter) ([]ContactResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	if filter.FacilityID != nil {
		domainFilter.Filters["facility_id"] = *filter.FacilityID
	}
	if filter.BuyerRole != "" {
		domainFilter.Filters["buyer_role"] = filter.BuyerRole
	}

	contacts, err := s.contactRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.contactRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	facilityNames, err := s.facilityRepo.FindNamesForOwner(ctx, ownerID, collectFacilityIDs(contacts))
	if err != nil {
		return nil, 0, err
	}

	return ToContactResponses(contacts, facilityNames), total, nil
}

// ListByFacility retrieves the contacts attached to a facility
func (s *ContactService) ListByFacility(ctx context.Context, ownerID, facilityID uuid.UUID) ([]ContactResponse, error) {
	facility, err := s.facilityRepo.FindByIDForOwner(ctx, ownerID, facilityID)
	if err != nil {
		return nil, err
	}

	contacts, err := s.contactRepo.FindByFacilityForOwner(ctx, ownerID, facilityID)
	if err != nil {
		return nil, err
	}

	facilityNames := map[uuid.UUID]string{facility.ID: facility.Name}
	return ToContactResponses(contacts, facilityNames), nil
}

// Update updates a contact
func (s *ContactService) Update(ctx context.Context, ownerID, contactID uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForOwner(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.Title != nil || req.BuyerRole != nil {
		name := contact.Name
		title := contact.Title
		role := contact.BuyerRole

		if req.Name != nil {
			name = *req.Name
		}
		if req.Title != nil {
			title = *req.Title
		}
		if req.BuyerRole != nil {
			role = crm.BuyerRole(*req.BuyerRole)
		}

		if err := contact.Update(name, title, role); err != nil {
			return nil, err
		}
	}

	if req.Email != nil || req.Phone != nil || req.Mobile != nil || req.PreferredChannel != nil {
		email := contact.Email
		phone := contact.Phone
		mobile := contact.Mobile
		preferredChannel := contact.PreferredChannel

		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Mobile != nil {
			mobile = *req.Mobile
		}
		if req.PreferredChannel != nil {
			preferredChannel = *req.PreferredChannel
		}

		if err := contact.SetChannels(email, phone, mobile, preferredChannel); err != nil {
			return nil, err
		}
	}

	if req.LinkedInURL != nil {
		if err := contact.SetLinkedIn(*req.LinkedInURL); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		contact.SetNotes(*req.Notes)
	}

	if req.FacilityID != nil {
		if err := s.verifyFacility(ctx, ownerID, req.FacilityID); err != nil {
			return nil, err
		}
		contact.AssignFacility(req.FacilityID)
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	facilityNames, err := s.facilityNamesFor(ctx, ownerID, contact.FacilityID)
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(contact, facilityNames)
	return &response, nil
}

// RecordContacted stamps the last-contacted timestamp on a contact
func (s *ContactService) RecordContacted(ctx context.Context, ownerID, contactID uuid.UUID, at time.Time) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByIDForOwner(ctx, ownerID, contactID)
	if err != nil {
		return nil, err
	}

	if at.IsZero() {
		at = time.Now()
	}
	contact.RecordContacted(at)

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	facilityNames, err := s.facilityNamesFor(ctx, ownerID, contact.FacilityID)
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(contact, facilityNames)
	return &response, nil
}

// Delete removes a contact
func (s *ContactService) Delete(ctx context.Context, ownerID, contactID uuid.UUID) error {
	if err := s.contactRepo.DeleteForOwner(ctx, ownerID, contactID); err != nil {
		return err
	}

	s.invalidateStats(ctx, ownerID)
	return nil
}

// verifyFacility ensures a referenced facility exists and belongs to the owner
func (s *ContactService) verifyFacility(ctx context.Context, ownerID uuid.UUID, facilityID *uuid.UUID) error {
	if facilityID == nil {
		return nil
	}
	if _, err := s.facilityRepo.FindByIDForOwner(ctx, ownerID, *facilityID); err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("INVALID_REFERENCE", "Referenced facility does not exist")
		}
		return err
	}
	return nil
}

func (s *ContactService) facilityNamesFor(ctx context.Context, ownerID uuid.UUID, facilityID *uuid.UUID) (map[uuid.UUID]string, error) {
	if facilityID == nil {
		return map[uuid.UUID]string{}, nil
	}
	return s.facilityRepo.FindNamesForOwner(ctx, ownerID, []uuid.UUID{*facilityID})
}

func (s *ContactService) invalidateStats(ctx context.Context, ownerID uuid.UUID) {
	if s.stats != nil {
		_ = s.stats.Invalidate(ctx, ownerID)
	}
}

// collectFacilityIDs gathers the distinct facility IDs referenced by contacts
func collectFacilityIDs(contacts []crm.Contact) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(contacts))
	for i := range contacts {
		if contacts[i].FacilityID == nil {
			continue
		}
		id := *contacts[i].FacilityID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
