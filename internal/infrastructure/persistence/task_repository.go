package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/hospicetrack/backend/internal/domain/shared"
	"github.com/hospicetrack/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTaskRepository implements TaskRepository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByIDForOwner finds a task by ID scoped to its owner
func (r *GormTaskRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Task, error) {
	var model models.TaskModel
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

// FindAllForOwner finds all tasks for an owner matching the filter
func (r *GormTaskRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Task, error) {
	var taskModels []models.TaskModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.TaskModel{}).Where("owner_id = ?", ownerID),
		filter,
	)

	if err := query.Find(&taskModels).Error; err != nil {
		return nil, err
	}
	return toDomainTasks(taskModels), nil
}

// FindOpenForOwner finds the owner's open tasks, soonest due first.
// Tasks without a due date sort last.
func (r *GormTaskRepository) FindOpenForOwner(ctx context.Context, ownerID uuid.UUID) ([]crm.Task, error) {
	var taskModels []models.TaskModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND completed_at IS NULL", ownerID).
		Order("due_at ASC NULLS LAST").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}
	return toDomainTasks(taskModels), nil
}

// FindDueByForOwner finds open tasks due at or before the deadline
func (r *GormTaskRepository) FindDueByForOwner(ctx context.Context, ownerID uuid.UUID, deadline time.Time) ([]crm.Task, error) {
	var taskModels []models.TaskModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND completed_at IS NULL AND due_at <= ?", ownerID, deadline).
		Order("due_at ASC").
		Find(&taskModels).Error; err != nil {
		return nil, err
	}
	return toDomainTasks(taskModels), nil
}

// Save creates or updates a task
func (r *GormTaskRepository) Save(ctx context.Context, task *crm.Task) error {
	model := models.TaskModelFromDomain(task)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForOwner removes a task scoped to its owner
func (r *GormTaskRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Delete(&models.TaskModel{}, "owner_id = ? AND id = ?", ownerID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountForOwner counts tasks for an owner matching the filter
func (r *GormTaskRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TaskModel{}).Where("owner_id = ?", ownerID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountDueByForOwner counts open tasks due at or before the deadline
func (r *GormTaskRepository) CountDueByForOwner(ctx context.Context, ownerID uuid.UUID, deadline time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TaskModel{}).
		Where("owner_id = ? AND completed_at IS NULL AND due_at <= ?", ownerID, deadline).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormTaskRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TaskSortFields, "due_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTaskRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "facility_id":
			query = query.Where("facility_id = ?", value)
		case "contact_id":
			query = query.Where("contact_id = ?", value)
		case "deal_id":
			query = query.Where("deal_id = ?", value)
		case "priority":
			query = query.Where("priority = ?", value)
		case "type":
			query = query.Where("type = ?", value)
		case "open":
			if open, ok := value.(bool); ok {
				if open {
					query = query.Where("completed_at IS NULL")
				} else {
					query = query.Where("completed_at IS NOT NULL")
				}
			}
		}
	}

	return query
}

// toDomainTasks converts a slice of task models to domain tasks
func toDomainTasks(taskModels []models.TaskModel) []crm.Task {
	tasks := make([]crm.Task, len(taskModels))
	for i, model := range taskModels {
		tasks[i] = *model.ToDomain()
	}
	return tasks
}

// Ensure GormTaskRepository implements TaskRepository
var _ crm.TaskRepository = (*GormTaskRepository)(nil)
