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

// GormFacilityRepository implements FacilityRepository using GORM
type GormFacilityRepository struct {
	db *gorm.DB
}

// NewGormFacilityRepository creates a new GormFacilityRepository
func NewGormFacilityRepository(db *gorm.DB) *GormFacilityRepository {
	return &GormFacilityRepository{db: db}
}

// FindByIDForOwner finds a facility by ID scoped to its owner
func (r *GormFacilityRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Facility, error) {
	var model models.FacilityModel
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

// FindAllForOwner finds all facilities for an owner matching the filter
func (r *GormFacilityRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Facility, error) {
	var facilityModels []models.FacilityModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.FacilityModel{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&facilityModels).Error; err != nil {
		return nil, err
	}

	facilities := make([]crm.Facility, len(facilityModels))
	for i, model := range facilityModels {
		facilities[i] = *model.ToDomain()
	}
	return facilities, nil
}

// FindNamesForOwner resolves facility IDs to names for list enrichment
func (r *GormFacilityRepository) FindNamesForOwner(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	if err := r.db.WithContext(ctx).
		Model(&models.FacilityModel{}).
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

// Save creates or updates a facility
func (r *GormFacilityRepository) Save(ctx context.Context, facility *crm.Facility) error {
	model := models.FacilityModelFromDomain(facility)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForOwner removes a facility and cascades to its contacts, deals,
// tasks, and activities in a single transaction.
func (r *GormFacilityRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.FacilityModel{}, "owner_id = ? AND id = ?", ownerID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := tx.Delete(&models.ActivityModel{}, "owner_id = ? AND facility_id = ?", ownerID, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.TaskModel{}, "owner_id = ? AND facility_id = ?", ownerID, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.DealModel{}, "owner_id = ? AND facility_id = ?", ownerID, id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ContactModel{}, "owner_id = ? AND facility_id = ?", ownerID, id).Error
	})
}

// CountForOwner counts facilities for an owner matching the filter
func (r *GormFacilityRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.FacilityModel{}).Where("owner_id = ?", ownerID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNameForOwner checks whether the owner already tracks a facility with the given name
func (r *GormFacilityRepository) ExistsByNameForOwner(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FacilityModel{}).
		Where("owner_id = ? AND name = ?", ownerID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormFacilityRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, FacilitySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormFacilityRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR city ILIKE ? OR ccn ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "facility_type":
			query = query.Where("facility_type = ?", value)
		case "ownership_type":
			query = query.Where("ownership_type = ?", value)
		case "state":
			query = query.Where("state = ?", value)
		}
	}

	return query
}

// Ensure GormFacilityRepository implements FacilityRepository
var _ crm.FacilityRepository = (*GormFacilityRepository)(nil)
