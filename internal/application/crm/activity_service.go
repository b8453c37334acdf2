package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// ActivityService handles the activity log. Activities are logged and
// deleted but never edited.
type ActivityService struct {
	activityRepo crm.ActivityRepository
	facilityRepo crm.FacilityRepository
	contactRepo  crm.ContactRepository
	dealRepo     crm.DealRepository
}

// NewActivityService creates a new ActivityService
func NewActivityService(
	activityRepo crm.ActivityRepository,
	facilityRepo crm.FacilityRepository,
	contactRepo crm.ContactRepository,
	dealRepo crm.DealRepository,
) *ActivityService {
	return &ActivityService{
		activityRepo: activityRepo,
		facilityRepo: facilityRepo,
		contactRepo:  contactRepo,
		dealRepo:     dealRepo,
	}
}

// Log records a new activity. When a contact is linked, the contact's
// last-contacted timestamp advances to the activity's occurrence time.
func (s *ActivityService) Log(ctx context.Context, ownerID uuid.UUID, req CreateActivityRequest) (*ActivityResponse, error) {
	occurredAt := time.Now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	activity, err := crm.NewActivity(ownerID, crm.InteractionType(req.Type), req.Subject, occurredAt)
	if err != nil {
		return nil, err
	}

	activity.WithNotes(req.Notes)

	if req.Outcome != "" {
		outcome := crm.ActivityOutcome(req.Outcome)
		if _, err := activity.WithOutcome(&outcome); err != nil {
			return nil, err
		}
	}

	if _, err := activity.WithDuration(req.DurationMins); err != nil {
		return nil, err
	}

	activity.Link(req.FacilityID, req.ContactID, req.DealID)

	if err := s.activityRepo.Save(ctx, activity); err != nil {
		return nil, err
	}

	if req.ContactID != nil {
		s.touchContact(ctx, ownerID, *req.ContactID, occurredAt)
	}

	return s.enrichActivity(ctx, ownerID, activity)
}

// GetByID retrieves an activity by ID
func (s *ActivityService) GetByID(ctx context.Context, ownerID, activityID uuid.UUID) (*ActivityResponse, error) {
	activity, err := s.activityRepo.FindByIDForOwner(ctx, ownerID, activityID)
	if err != nil {
		return nil, err
	}

	return s.enrichActivity(ctx, ownerID, activity)
}

// List retrieves activities with filtering and pagination, newest first
func (s *ActivityService) List(ctx context.Context, ownerID uuid.UUID, filter ActivityListFilter) ([]ActivityResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "occurred_at"
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
	if filter.ContactID != nil {
		domainFilter.Filters["contact_id"] = *filter.ContactID
	}
	if filter.DealID != nil {
		domainFilter.Filters["deal_id"] = *filter.DealID
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Outcome != "" {
		domainFilter.Filters["outcome"] = filter.Outcome
	}

	activities, err := s.activityRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.activityRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.enrichActivities(ctx, ownerID, activities)
	if err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}

// ListByFacility retrieves a facility's activity timeline, newest first
func (s *ActivityService) ListByFacility(ctx context.Context, ownerID, facilityID uuid.UUID) ([]ActivityResponse, error) {
	if _, err := s.facilityRepo.FindByIDForOwner(ctx, ownerID, facilityID); err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.FindByFacilityForOwner(ctx, ownerID, facilityID)
	if err != nil {
		return nil, err
	}

	return s.enrichActivities(ctx, ownerID, activities)
}

// ListByDeal retrieves a deal's activity timeline, newest first
func (s *ActivityService) ListByDeal(ctx context.Context, ownerID, dealID uuid.UUID) ([]ActivityResponse, error) {
	if _, err := s.dealRepo.FindByIDForOwner(ctx, ownerID, dealID); err != nil {
		return nil, err
	}

	activities, err := s.activityRepo.FindByDealForOwner(ctx, ownerID, dealID)
	if err != nil {
		return nil, err
	}

	return s.enrichActivities(ctx, ownerID, activities)
}

// Delete removes an activity from the log
func (s *ActivityService) Delete(ctx context.Context, ownerID, activityID uuid.UUID) error {
	return s.activityRepo.DeleteForOwner(ctx, ownerID, activityID)
}

// touchContact advances the contact's last-contacted timestamp.
// Failures are ignored; the activity is already saved.
func (s *ActivityService) touchContact(ctx context.Context, ownerID, contactID uuid.UUID, at time.Time) {
	contact, err := s.contactRepo.FindByIDForOwner(ctx, ownerID, contactID)
	if err != nil {
		return
	}
	if contact.LastContactedAt != nil && contact.LastContactedAt.After(at) {
		return
	}
	contact.RecordContacted(at)
	_ = s.contactRepo.Save(ctx, contact)
}

func (s *ActivityService) enrichActivity(ctx context.Context, ownerID uuid.UUID, activity *crm.Activity) (*ActivityResponse, error) {
	responses, err := s.enrichActivities(ctx, ownerID, []crm.Activity{*activity})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// enrichActivities resolves related record names for a batch of activities
func (s *ActivityService) enrichActivities(ctx context.Context, ownerID uuid.UUID, activities []crm.Activity) ([]ActivityResponse, error) {
	var facilityIDs, contactIDs, dealIDs []uuid.UUID
	seenFacilities := make(map[uuid.UUID]struct{})
	seenContacts := make(map[uuid.UUID]struct{})
	seenDeals := make(map[uuid.UUID]struct{})

	for i := range activities {
		if id := activities[i].FacilityID; id != nil {
			if _, ok := seenFacilities[*id]; !ok {
				seenFacilities[*id] = struct{}{}
				facilityIDs = append(facilityIDs, *id)
			}
		}
		if id := activities[i].ContactID; id != nil {
			if _, ok := seenContacts[*id]; !ok {
				seenContacts[*id] = struct{}{}
				contactIDs = append(contactIDs, *id)
			}
		}
		if id := activities[i].DealID; id != nil {
			if _, ok := seenDeals[*id]; !ok {
				seenDeals[*id] = struct{}{}
				dealIDs = append(dealIDs, *id)
			}
		}
	}

	facilityNames, err := s.facilityRepo.FindNamesForOwner(ctx, ownerID, facilityIDs)
	if err != nil {
		return nil, err
	}
	contactNames, err := s.contactRepo.FindNamesForOwner(ctx, ownerID, contactIDs)
	if err != nil {
		return nil, err
	}
	dealNames, err := s.dealRepo.FindNamesForOwner(ctx, ownerID, dealIDs)
	if err != nil {
		return nil, err
	}

	return ToActivityResponses(activities, RelatedNames{
		Facilities: facilityNames,
		Contacts:   contactNames,
		Deals:      dealNames,
	}), nil
}
