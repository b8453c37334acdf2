package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/hospicetrack/backend/internal/domain/shared"
	"github.com/hospicetrack/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDealRepository implements DealRepository using GORM
type GormDealRepository struct {
	db *gorm.DB
}

// NewGormDealRepository creates a new GormDealRepository
func NewGormDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{db: db}
}

// FindByIDForOwner finds a deal by ID scoped to its owner
func (r *GormDealRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Deal, error) {
	var model models.DealModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOwner finds all deals for an owner matching the filter
func (r *GormDealRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Deal, error) {
	var dealModels []models.DealModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.DealModel{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&dealModels).Error; err != nil {
		return nil, err
	}
	return toDomainDeals(dealModels), nil
}

// FindActiveForOwner finds the owner's non-closed deals, newest first
func (r *GormDealRepository) FindActiveForOwner(ctx context.Context, ownerID uuid.UUID) ([]crm.Deal, error) {
	var dealModels []models.DealModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND stage NOT IN ?", ownerID, closedStages()).
		Order("created_at DESC").
		Find(&dealModels).Error; err != nil {
		return nil, err
	}
	return toDomainDeals(dealModels), nil
}

// FindByStageForOwner finds the owner's deals in a given stage
func (r *GormDealRepository) FindByStageForOwner(ctx context.Context, ownerID uuid.UUID, stage crm.DealStage) ([]crm.Deal, error) {
	var dealModels []models.DealModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND stage = ?", ownerID, stage).
		Order("created_at DESC").
		Find(&dealModels).Error; err != nil {
		return nil, err
	}
	return toDomainDeals(dealModels), nil
}

// FindNamesForOwner resolves deal IDs to names for list enrichment
func (r *GormDealRepository) FindNamesForOwner(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	if err := r.db.WithContext(ctx).
		Model(&models.DealModel{}).
		Select("id, name").
		Where("owner_id = ? AND id IN ?", ownerID, ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		names[row.ID] = row.Name
	}
	return names, nil
}

// Save creates or updates a deal
func (r *GormDealRepository) Save(ctx context.Context, deal *crm.Deal) error {
	model := models.DealModelFromDomain(deal)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForOwner removes a deal scoped to its owner
func (r *GormDealRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.DealModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts deals for an owner matching the filter
func (r *GormDealRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.DealModel{}).Where("owner_id = ?", ownerID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// summaryRow receives the single-row conditional aggregation result
type summaryRow struct {
	PipelineValue   decimal.Decimal
	ActiveDeals     int64
	ClosedThisMonth decimal.Decimal
	WonInWindow     int64
	LostInWindow    int64
}

// SummarizeForOwner computes the dashboard aggregates in one pass over the
// owner's deals. Closed-this-month and the win-rate window compare updated_at,
// the moment the deal last moved.
func (r *GormDealRepository) SummarizeForOwner(ctx context.Context, ownerID uuid.UUID, monthStart, windowStart time.Time) (*crm.PipelineSummary, error) {
	var row summaryRow
	err := r.db.WithContext(ctx).
		Model(&models.DealModel{}).
		Select(`
			COALESCE(SUM(CASE WHEN stage NOT IN ? THEN value END), 0) AS pipeline_value,
			COUNT(CASE WHEN stage NOT IN ? THEN 1 END) AS active_deals,
			COALESCE(SUM(CASE WHEN stage = ? AND updated_at >= ? THEN value END), 0) AS closed_this_month,
			COUNT(CASE WHEN stage = ? AND updated_at >= ? THEN 1 END) AS won_in_window,
			COUNT(CASE WHEN stage = ? AND updated_at >= ? THEN 1 END) AS lost_in_window`,
			closedStages(), closedStages(),
			crm.StageClosedWon, monthStart,
			crm.StageClosedWon, windowStart,
			crm.StageClosedLost, windowStart,
		).
		Where("owner_id = ?", ownerID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &crm.PipelineSummary{
		PipelineValue:   row.PipelineValue,
		ActiveDeals:     row.ActiveDeals,
		ClosedThisMonth: row.ClosedThisMonth,
		WonInWindow:     row.WonInWindow,
		LostInWindow:    row.LostInWindow,
	}, nil
}

// GroupByStageForOwner returns count and value per non-closed stage
func (r *GormDealRepository) GroupByStageForOwner(ctx context.Context, ownerID uuid.UUID) ([]crm.StageSummary, error) {
	var rows []struct {
		Stage crm.DealStage
		Count int64
		Value decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.DealModel{}).
		Select("stage, COUNT(*) AS count, COALESCE(SUM(value), 0) AS value").
		Where("owner_id = ? AND stage NOT IN ?", ownerID, closedStages()).
		Group("stage").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]crm.StageSummary, len(rows))
	for i, row := range rows {
		summaries[i] = crm.StageSummary{
			Stage: row.Stage,
			Count: row.Count,
			Value: row.Value,
		}
	}
	return summaries, nil
}

// applyFilter applies filter options to the query
func (r *GormDealRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DealSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormDealRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "stage":
			query = query.Where("stage = ?", value)
		case "facility_id":
			query = query.Where("facility_id = ?", value)
		case "active":
			if active, ok := value.(bool); ok && active {
				query = query.Where("stage NOT IN ?", closedStages())
			}
		}
	}

	return query
}

// closedStages returns the terminal stages for NOT IN clauses
func closedStages() []crm.DealStage {
	return []crm.DealStage{crm.StageClosedWon, crm.StageClosedLost}
}

// toDomainDeals converts a slice of deal models to domain deals
func toDomainDeals(dealModels []models.DealModel) []crm.Deal {
	deals := make([]crm.Deal, len(dealModels))
	for i, model := range dealModels {
		deals[i] = *model.ToDomain()
	}
	return deals
}

// Ensure GormDealRepository implements DealRepository
var _ crm.DealRepository = (*GormDealRepository)(nil)
