package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// DealService handles deal-related business operations
type DealService struct {
	dealRepo     crm.DealRepository
	facilityRepo crm.FacilityRepository
	contactRepo  crm.ContactRepository
	stats        StatsInvalidator
}

// NewDealService creates a new DealService
func NewDealService(
	dealRepo crm.DealRepository,
	facilityRepo crm.FacilityRepository,
	contactRepo crm.ContactRepository,
	stats StatsInvalidator,
) *DealService {
	return &DealService{
		dealRepo:     dealRepo,
		facilityRepo: facilityRepo,
		contactRepo:  contactRepo,
		stats:        stats,
	}
}

// Create creates a new deal
func (s *DealService) Create(ctx context.Context, ownerID uuid.UUID, req CreateDealRequest) (*DealResponse, error) {
	if err := s.verifyReferences(ctx, ownerID, req.FacilityID, req.PrimaryContactID); err != nil {
		return nil, err
	}

	deal, err := crm.NewDeal(ownerID, req.Name)
	if err != nil {
		return nil, err
	}

	if req.Stage != "" {
		if err := deal.ChangeStage(crm.DealStage(req.Stage)); err != nil {
			return nil, err
		}
	}

	if req.Value != nil || req.RecurringValue != nil {
		value := deal.Value
		recurring := deal.RecurringValue
		if req.Value != nil {
			value = *req.Value
		}
		if req.RecurringValue != nil {
			recurring = *req.RecurringValue
		}
		if err := deal.SetValue(value, recurring); err != nil {
			return nil, err
		}
	}

	if req.Probability != nil {
		if err := deal.SetProbability(req.Probability); err != nil {
			return nil, err
		}
	}

	if req.ExpectedCloseAt != nil {
		deal.SetExpectedClose(req.ExpectedCloseAt)
	}

	if req.NextStep != "" {
		deal.SetNextStep(req.NextStep)
	}

	deal.LinkFacility(req.FacilityID)
	deal.LinkPrimaryContact(req.PrimaryContactID)

	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	return s.enrichDeal(ctx, ownerID, deal)
}

// GetByID retrieves a deal by ID
func (s *DealService) GetByID(ctx context.Context, ownerID, dealID uuid.UUID) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByIDForOwner(ctx, ownerID, dealID)
	if err != nil {
		return nil, err
	}

	return s.enrichDeal(ctx, ownerID, deal)
}

// List retrieves deals with filtering and pagination
func (s *DealService) List(ctx context.Context, ownerID uuid.UUID, filter DealListFilter) ([]DealResponse, int64, error) {
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

	if filter.Stage != "" {
		domainFilter.Filters["stage"] = filter.Stage
	}
	if filter.FacilityID != nil {
		domainFilter.Filters["facility_id"] = *filter.FacilityID
	}
	if filter.Active != nil {
		domainFilter.Filters["active"] = *filter.Active
	}

	deals, err := s.dealRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.dealRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.enrichDeals(ctx, ownerID, deals)
	if err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}

// ListActive retrieves the owner's non-closed deals, newest first
func (s *DealService) ListActive(ctx context.Context, ownerID uuid.UUID) ([]DealResponse, error) {
	deals, err := s.dealRepo.FindActiveForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return s.enrichDeals(ctx, ownerID, deals)
}

// Update updates a deal
func (s *DealService) Update(ctx context.Context, ownerID, dealID uuid.UUID, req UpdateDealRequest) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByIDForOwner(ctx, ownerID, dealID)
	if err != nil {
		return nil, err
	}

	if err := s.verifyReferences(ctx, ownerID, req.FacilityID, req.PrimaryContactID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := deal.Rename(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.Value != nil || req.RecurringValue != nil {
		value := deal.Value
		recurring := deal.RecurringValue
		if req.Value != nil {
			value = *req.Value
		}
		if req.RecurringValue != nil {
			recurring = *req.RecurringValue
		}
		if err := deal.SetValue(value, recurring); err != nil {
			return nil, err
		}
	}

	if req.Probability != nil {
		if err := deal.SetProbability(req.Probability); err != nil {
			return nil, err
		}
	}

	if req.ExpectedCloseAt != nil {
		deal.SetExpectedClose(req.ExpectedCloseAt)
	}

	if req.NextStep != nil || req.LossReason != nil || req.CompetitorNotes != nil {
		if req.NextStep != nil {
			deal.SetNextStep(*req.NextStep)
		}
		lossReason := deal.LossReason
		competitorNotes := deal.CompetitorNotes
		if req.LossReason != nil {
			lossReason = *req.LossReason
		}
		if req.CompetitorNotes != nil {
			competitorNotes = *req.CompetitorNotes
		}
		deal.SetCloseout(lossReason, competitorNotes)
	}

	if req.FacilityID != nil {
		deal.LinkFacility(req.FacilityID)
	}
	if req.PrimaryContactID != nil {
		deal.LinkPrimaryContact(req.PrimaryContactID)
	}

	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	return s.enrichDeal(ctx, ownerID, deal)
}

// ChangeStage moves a deal to a different pipeline stage.
// Reassigning the current stage is a no-op that still returns the deal.
func (s *DealService) ChangeStage(ctx context.Context, ownerID, dealID uuid.UUID, req ChangeDealStageRequest) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByIDForOwner(ctx, ownerID, dealID)
	if err != nil {
		return nil, err
	}

	target := crm.DealStage(req.Stage)
	if target == deal.Stage {
		return s.enrichDeal(ctx, ownerID, deal)
	}

	if err := deal.ChangeStage(target); err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	return s.enrichDeal(ctx, ownerID, deal)
}

// Delete removes a deal
func (s *DealService) Delete(ctx context.Context, ownerID, dealID uuid.UUID) error {
	if err := s.dealRepo.DeleteForOwner(ctx, ownerID, dealID); err != nil {
		return err
	}

	s.invalidateStats(ctx, ownerID)
	return nil
}

// verifyReferences ensures linked records exist and belong to the owner
func (s *DealService) verifyReferences(ctx context.Context, ownerID uuid.UUID, facilityID, contactID *uuid.UUID) error {
	if facilityID != nil {
		if _, err := s.facilityRepo.FindByIDForOwner(ctx, ownerID, *facilityID); err != nil {
			if err == shared.ErrNotFound {
				return shared.NewDomainError("INVALID_REFERENCE", "Referenced facility does not exist")
			}
			return err
		}
	}
	if contactID != nil {
		if _, err := s.contactRepo.FindByIDForOwner(ctx, ownerID, *contactID); err != nil {
			if err == shared.ErrNotFound {
				return shared.NewDomainError("INVALID_REFERENCE", "Referenced contact does not exist")
			}
			return err
		}
	}
	return nil
}

func (s *DealService) enrichDeal(ctx context.Context, ownerID uuid.UUID, deal *crm.Deal) (*DealResponse, error) {
	responses, err := s.enrichDeals(ctx, ownerID, []crm.Deal{*deal})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// enrichDeals resolves facility and contact names for a batch of deals
func (s *DealService) enrichDeals(ctx context.Context, ownerID uuid.UUID, deals []crm.Deal) ([]DealResponse, error) {
	facilityIDs := make([]uuid.UUID, 0, len(deals))
	contactIDs := make([]uuid.UUID, 0, len(deals))
	seenFacilities := make(map[uuid.UUID]struct{})
	seenContacts := make(map[uuid.UUID]struct{})

	for i := range deals {
		if deals[i].FacilityID != nil {
			if _, ok := seenFacilities[*deals[i].FacilityID]; !ok {
				seenFacilities[*deals[i].FacilityID] = struct{}{}
				facilityIDs = append(facilityIDs, *deals[i].FacilityID)
			}
		}
		if deals[i].PrimaryContactID != nil {
			if _, ok := seenContacts[*deals[i].PrimaryContactID]; !ok {
				seenContacts[*deals[i].PrimaryContactID] = struct{}{}
				contactIDs = append(contactIDs, *deals[i].PrimaryContactID)
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

	return ToDealResponses(deals, facilityNames, contactNames), nil
}

func (s *DealService) invalidateStats(ctx context.Context, ownerID uuid.UUID) {
	if s.stats != nil {
		_ = s.stats.Invalidate(ctx, ownerID)
	}
}
