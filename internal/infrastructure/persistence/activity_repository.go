package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/hospicetrack/backend/internal/domain/shared"
	"github.com/hospicetrack/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormActivityRepository implements ActivityRepository using GORM
type GormActivityRepository struct {
	db *gorm.DB
}

// NewGormActivityRepository creates a new GormActivityRepository
func NewGormActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// FindByIDForOwner finds an activity by ID scoped to its owner
func (r *GormActivityRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Activity, error) {
	var model models.ActivityModel
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

// FindAllForOwner finds all activities for an owner matching the filter
func (r *GormActivityRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Activity, error) {
	var activityModels []models.ActivityModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ActivityModel{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&activityModels).Error; err != nil {
		return nil, err
	}
	return toDomainActivities(activityModels), nil
}

// FindByFacilityForOwner finds the activities logged against a facility, newest first
func (r *GormActivityRepository) FindByFacilityForOwner(ctx context.Context, ownerID, facilityID uuid.UUID) ([]crm.Activity, error) {
	var activityModels []models.ActivityModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND facility_id = ?", ownerID, facilityID).
		Order("occurred_at DESC").
		Find(&activityModels).Error; err != nil {
		return nil, err
	}
	return toDomainActivities(activityModels), nil
}

// FindByDealForOwner finds the activities logged against a deal, newest first
func (r *GormActivityRepository) FindByDealForOwner(ctx context.Context, ownerID, dealID uuid.UUID) ([]crm.Activity, error) {
	var activityModels []models.ActivityModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND deal_id = ?", ownerID, dealID).
		Order("occurred_at DESC").
		Find(&activityModels).Error; err != nil {
		return nil, err
	}
	return toDomainActivities(activityModels), nil
}

// Save persists an activity
func (r *GormActivityRepository) Save(ctx context.Context, activity *crm.Activity) error {
	model := models.ActivityModelFromDomain(activity)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForOwner removes an activity scoped to its owner
func (r *GormActivityRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.ActivityModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts activities for an owner matching the filter
func (r *GormActivityRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ActivityModel{}).Where("owner_id = ?", ownerID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormActivityRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ActivitySortFields, "occurred_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormActivityRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("subject ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "facility_id":
			query = query.Where("facility_id = ?", value)
		case "contact_id":
			query = query.Where("contact_id = ?", value)
		case "deal_id":
			query = query.Where("deal_id = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "outcome":
			query = query.Where("outcome = ?", value)
		}
	}

	return query
}

// toDomainActivities converts a slice of activity models to domain activities
func toDomainActivities(activityModels []models.ActivityModel) []crm.Activity {
	activities := make([]crm.Activity, len(activityModels))
	for i, model := range activityModels {
		activities[i] = *model.ToDomain()
	}
	return activities
}

// Ensure GormActivityRepository implements ActivityRepository
var _ crm.ActivityRepository = (*GormActivityRepository)(nil)
