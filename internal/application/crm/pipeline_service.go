package crm

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hospicetrack/backend/internal/domain/crm"
)

// PipelineService serves the Kanban board of open deals
type PipelineService struct {
	dealRepo     crm.DealRepository
	facilityRepo crm.FacilityRepository
	contactRepo  crm.ContactRepository
	stats        StatsInvalidator
}

// NewPipelineService creates a new PipelineService
func NewPipelineService(
	dealRepo crm.DealRepository,
	facilityRepo crm.FacilityRepository,
	contactRepo crm.ContactRepository,
	stats StatsInvalidator,
) *PipelineService {
	return &PipelineService{
		dealRepo:     dealRepo,
		facilityRepo: facilityRepo,
		contactRepo:  contactRepo,
		stats:        stats,
	}
}

// GetBoard assembles the Kanban board: one column per open stage in
// pipeline order, each with its deals, count, and total value. Stages
// with no deals still get an empty column.
func (s *PipelineService) GetBoard(ctx context.Context, ownerID uuid.UUID) (*PipelineBoardResponse, error) {
	summaries, err := s.dealRepo.GroupByStageForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byStage := make(map[crm.DealStage]crm.StageSummary, len(summaries))
	for _, summary := range summaries {
		byStage[summary.Stage] = summary
	}

	columns := make([]PipelineColumnResponse, 0, len(crm.OpenStages()))
	for _, info := range crm.OpenStages() {
		column := PipelineColumnResponse{
			Stage:      string(info.Stage),
			Label:      info.Label,
			TotalValue: decimal.Zero,
			Deals:      []DealResponse{},
		}

		if summary, ok := byStage[info.Stage]; ok && summary.Count > 0 {
			deals, err := s.dealRepo.FindByStageForOwner(ctx, ownerID, info.Stage)
			if err != nil {
				return nil, err
			}

			responses, err := s.enrichDeals(ctx, ownerID, deals)
			if err != nil {
				return nil, err
			}

			column.DealCount = summary.Count
			column.TotalValue = summary.Value
			column.Deals = responses
		}

		columns = append(columns, column)
	}

	return &PipelineBoardResponse{Columns: columns}, nil
}

// GetSummary returns per-stage deal counts and totals for open stages
// without loading the deals themselves. Used by the dashboard's pipeline
// widget where only the rollups are rendered.
func (s *PipelineService) GetSummary(ctx context.Context, ownerID uuid.UUID) (*PipelineSummaryResponse, error) {
	summaries, err := s.dealRepo.GroupByStageForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	byStage := make(map[crm.DealStage]crm.StageSummary, len(summaries))
	for _, summary := range summaries {
		byStage[summary.Stage] = summary
	}

	stages := make([]PipelineStageSummaryResponse, 0, len(crm.OpenStages()))
	for _, info := range crm.OpenStages() {
		entry := PipelineStageSummaryResponse{
			Stage:      string(info.Stage),
			Label:      info.Label,
			TotalValue: decimal.Zero,
		}
		if summary, ok := byStage[info.Stage]; ok {
			entry.DealCount = summary.Count
			entry.TotalValue = summary.Value
		}
		stages = append(stages, entry)
	}

	return &PipelineSummaryResponse{Stages: stages}, nil
}

// MoveDeal drags a deal to a different column. Dropping a deal on its
// current column is a no-op. A failed save leaves the deal in its
// original stage so the board can roll the card back.
func (s *PipelineService) MoveDeal(ctx context.Context, ownerID, dealID uuid.UUID, req MoveDealRequest) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByIDForOwner(ctx, ownerID, dealID)
	if err != nil {
		return nil, err
	}

	target := crm.DealStage(req.Stage)
	if target == deal.Stage {
		return s.enrichDeal(ctx, ownerID, deal)
	}

	prior := deal.Stage
	if err := deal.ChangeStage(target); err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, deal); err != nil {
		deal.Stage = prior
		return nil, err
	}

	if s.stats != nil {
		_ = s.stats.Invalidate(ctx, ownerID)
	}

	return s.enrichDeal(ctx, ownerID, deal)
}

func (s *PipelineService) enrichDeal(ctx context.Context, ownerID uuid.UUID, deal *crm.Deal) (*DealResponse, error) {
	responses, err := s.enrichDeals(ctx, ownerID, []crm.Deal{*deal})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *PipelineService) enrichDeals(ctx context.Context, ownerID uuid.UUID, deals []crm.Deal) ([]DealResponse, error) {
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
