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

// GormContactRepository implements ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByIDForOwner finds a contact by ID scoped to its owner
func (r *GormContactRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Contact, error) {
	var model models.ContactModel
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

// FindAllForOwner finds all contacts for an owner matching the filter
func (r *GormContactRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Contact, error) {
	var contactModels []models.ContactModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.ContactModel{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&contactModels).Error; err != nil {
		return nil, err
	}
	return toDomainContacts(contactModels), nil
}

// FindByFacilityForOwner finds the contacts attached to a facility
func (r *GormContactRepository) FindByFacilityForOwner(ctx context.Context, ownerID, facilityID uuid.UUID) ([]crm.Contact, error) {
	var contactModels []models.ContactModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND facility_id = ?", ownerID, facilityID).
		Order("name ASC").
		Find(&contactModels).Error; err != nil {
		return nil, err
	}
	return toDomainContacts(contactModels), nil
}

// FindNamesForOwner resolves contact IDs to names for list enrichment
func (r *GormContactRepository) FindNamesForOwner(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var rows []struct {
		ID   uuid.UUID
		Name string
	}
	if err := r.db.WithContext(ctx).
		Model(&models.ContactModel{}).
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

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *crm.Contact) error {
	model := models.ContactModelFromDomain(contact)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForOwner removes a contact scoped to its owner
func (r *GormContactRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.ContactModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts contacts for an owner matching the filter
func (r *GormContactRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ContactModel{}).Where("owner_id = ?", ownerID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormContactRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ContactSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormContactRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ? OR title ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "facility_id":
			query = query.Where("facility_id = ?", value)
		case "buyer_role":
			query = query.Where("buyer_role = ?", value)
		}
	}

	return query
}

// toDomainContacts converts a slice of contact models to domain contacts
func toDomainContacts(contactModels []models.ContactModel) []crm.Contact {
	contacts := make([]crm.Contact, len(contactModels))
	for i, model := range contactModels {
		contacts[i] = *model.ToDomain()
	}
	return contacts
}

// Ensure GormContactRepository implements ContactRepository
var _ crm.ContactRepository = (*GormContactRepository)(nil)
