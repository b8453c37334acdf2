package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// StatsInvalidator drops a user's cached dashboard stats after a write.
// Implemented by the stats cache; a nil invalidator disables invalidation.
type StatsInvalidator interface {
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

// FacilityService handles facility-related business operations
type FacilityService struct {
	facilityRepo crm.FacilityRepository
	stats        StatsInvalidator
}

// NewFacilityService creates a new FacilityService
func NewFacilityService(facilityRepo crm.FacilityRepository, stats StatsInvalidator) *FacilityService {
	return &FacilityService{
		facilityRepo: facilityRepo,
		stats:        stats,
	}
}

// Create creates a new facility
func (s *FacilityService) Create(ctx context.Context, ownerID uuid.UUID, req CreateFacilityRequest) (*FacilityResponse, error) {
	exists, err := s.facilityRepo.ExistsByNameForOwner(ctx, ownerID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A facility with this name already exists")
	}

	facility, err := crm.NewFacility(ownerID, req.Name, crm.FacilityType(req.FacilityType))
	if err != nil {
		return nil, err
	}

	if req.OwnershipType != "" {
		if err := facility.SetOwnership(crm.OwnershipType(req.OwnershipType)); err != nil {
			return nil, err
		}
	}

	if req.CensusSize != nil || req.AnnualRevenue != nil || req.CurrentSoftware != "" {
		if err := facility.SetProfile(req.CensusSize, req.AnnualRevenue, req.CurrentSoftware); err != nil {
			return nil, err
		}
	}

	if req.AddressLine1 != "" || req.AddressLine2 != "" || req.City != "" || req.State != "" || req.Zip != "" {
		if err := facility.SetAddress(req.AddressLine1, req.AddressLine2, req.City, req.State, req.Zip); err != nil {
			return nil, err
		}
	}

	if req.CCN != "" {
		if err := facility.SetCCN(req.CCN); err != nil {
			return nil, err
		}
	}

	if req.ContractRenewalAt != nil {
		facility.SetContractRenewal(req.ContractRenewalAt)
	}

	if req.Notes != "" {
		facility.SetNotes(req.Notes)
	}

	if err := s.facilityRepo.Save(ctx, facility); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	response := ToFacilityResponse(facility)
	return &response, nil
}

// GetByID retrieves a facility by ID
func (s *FacilityService) GetByID(ctx context.Context, ownerID, facilityID uuid.UUID) (*FacilityResponse, error) {
	facility, err := s.facilityRepo.FindByIDForOwner(ctx, ownerID, facilityID)
	if err != nil {
		return nil, err
	}

	response := ToFacilityResponse(facility)
	return &response, nil
}

// List retrieves facilities with filtering and pagination
func (s *FacilityService) List(ctx context.Context, ownerID uuid.UUID, filter FacilityListFilter) ([]FacilityResponse, int64, error) {
	domainFilter := buildFacilityFilter(filter)

	facilities, err := s.facilityRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.facilityRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToFacilityResponses(facilities), total, nil
}

// Update updates a facility
func (s *FacilityService) Update(ctx context.Context, ownerID, facilityID uuid.UUID, req UpdateFacilityRequest) (*FacilityResponse, error) {
	facility, err := s.facilityRepo.FindByIDForOwner(ctx, ownerID, facilityID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.FacilityType != nil {
		name := facility.Name
		facilityType := facility.FacilityType
		if req.Name != nil {
			name = *req.Name
		}
		if req.FacilityType != nil {
			facilityType = crm.FacilityType(*req.FacilityType)
		}
		if name != facility.Name {
			exists, err := s.facilityRepo.ExistsByNameForOwner(ctx, ownerID, name)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "A facility with this name already exists")
			}
		}
		if err := facility.Update(name, facilityType); err != nil {
			return nil, err
		}
	}

	if req.OwnershipType != nil {
		if err := facility.SetOwnership(crm.OwnershipType(*req.OwnershipType)); err != nil {
			return nil, err
		}
	}

	if req.CensusSize != nil || req.AnnualRevenue != nil || req.CurrentSoftware != nil {
		censusSize := facility.CensusSize
		annualRevenue := facility.AnnualRevenue
		currentSoftware := facility.CurrentSoftware

		if req.CensusSize != nil {
			censusSize = req.CensusSize
		}
		if req.AnnualRevenue != nil {
			annualRevenue = req.AnnualRevenue
		}
		if req.CurrentSoftware != nil {
			currentSoftware = *req.CurrentSoftware
		}

		if err := facility.SetProfile(censusSize, annualRevenue, currentSoftware); err != nil {
			return nil, err
		}
	}

	if req.AddressLine1 != nil || req.AddressLine2 != nil || req.City != nil || req.State != nil || req.Zip != nil {
		line1 := facility.AddressLine1
		line2 := facility.AddressLine2
		city := facility.City
		state := facility.State
		zip := facility.Zip

		if req.AddressLine1 != nil {
			line1 = *req.AddressLine1
		}
		if req.AddressLine2 != nil {
			line2 = *req.AddressLine2
		}
		if req.City != nil {
			city = *req.City
		}
		if req.State != nil {
			state = *req.State
		}
		if req.Zip != nil {
			zip = *req.Zip
		}

		if err := facility.SetAddress(line1, line2, city, state, zip); err != nil {
			return nil, err
		}
	}

	if req.CCN != nil {
		if err := facility.SetCCN(*req.CCN); err != nil {
			return nil, err
		}
	}

	if req.ContractRenewalAt != nil {
		facility.SetContractRenewal(req.ContractRenewalAt)
	}

	if req.Notes != nil {
		facility.SetNotes(*req.Notes)
	}

	if err := s.facilityRepo.Save(ctx, facility); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	response := ToFacilityResponse(facility)
	return &response, nil
}

// Delete removes a facility and all of its contacts, deals, tasks, and
// activities in a single transaction
func (s *FacilityService) Delete(ctx context.Context, ownerID, facilityID uuid.UUID) error {
	if err := s.facilityRepo.DeleteForOwner(ctx, ownerID, facilityID); err != nil {
		return err
	}

	s.invalidateStats(ctx, ownerID)
	return nil
}

func (s *FacilityService) invalidateStats(ctx context.Context, ownerID uuid.UUID) {
	if s.stats != nil {
		_ = s.stats.Invalidate(ctx, ownerID)
	}
}

// buildFacilityFilter converts the API filter into a domain filter
func buildFacilityFilter(filter FacilityListFilter) shared.Filter {
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

	if filter.FacilityType != "" {
		domainFilter.Filters["facility_type"] = filter.FacilityType
	}
	if filter.OwnershipType != "" {
		domainFilter.Filters["ownership_type"] = filter.OwnershipType
	}
	if filter.State != "" {
		domainFilter.Filters["state"] = filter.State
	}

	return domainFilter
}
