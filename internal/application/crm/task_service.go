package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// TaskService handles task-related business operations
type TaskService struct {
	taskRepo     crm.TaskRepository
	facilityRepo crm.FacilityRepository
	contactRepo  crm.ContactRepository
	dealRepo     crm.DealRepository
	stats        StatsInvalidator
}

// NewTaskService creates a new TaskService
func NewTaskService(
	taskRepo crm.TaskRepository,
	facilityRepo crm.FacilityRepository,
	contactRepo crm.ContactRepository,
	dealRepo crm.DealRepository,
	stats StatsInvalidator,
) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		facilityRepo: facilityRepo,
		contactRepo:  contactRepo,
		dealRepo:     dealRepo,
		stats:        stats,
	}
}

// Create creates a new task
func (s *TaskService) Create(ctx context.Context, ownerID uuid.UUID, req CreateTaskRequest) (*TaskResponse, error) {
	task, err := crm.NewTask(ownerID, crm.InteractionType(req.Type), req.Description)
	if err != nil {
		return nil, err
	}

	if req.DueAt != nil {
		task.SetDue(req.DueAt)
	}

	if req.Priority != "" {
		if err := task.SetPriority(crm.TaskPriority(req.Priority)); err != nil {
			return nil, err
		}
	}

	task.Link(req.FacilityID, req.ContactID, req.DealID)

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	return s.enrichTask(ctx, ownerID, task)
}

// GetByID retrieves a task by ID
func (s *TaskService) GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByIDForOwner(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	return s.enrichTask(ctx, ownerID, task)
}

// List retrieves tasks with filtering and pagination
func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID, filter TaskListFilter) ([]TaskResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	domainFilter.OrderBy = "due_at"
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
	if filter.Priority != "" {
		domainFilter.Filters["priority"] = filter.Priority
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Open != nil {
		domainFilter.Filters["open"] = *filter.Open
	}

	tasks, err := s.taskRepo.FindAllForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.taskRepo.CountForOwner(ctx, ownerID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses, err := s.enrichTasks(ctx, ownerID, tasks)
	if err != nil {
		return nil, 0, err
	}

	return responses, total, nil
}

// ListOpen retrieves the owner's open tasks, soonest due first
func (s *TaskService) ListOpen(ctx context.Context, ownerID uuid.UUID) ([]TaskResponse, error) {
	tasks, err := s.taskRepo.FindOpenForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return s.enrichTasks(ctx, ownerID, tasks)
}

// ListDueToday retrieves open tasks due by the end of today (local time)
func (s *TaskService) ListDueToday(ctx context.Context, ownerID uuid.UUID) ([]TaskResponse, error) {
	tasks, err := s.taskRepo.FindDueByForOwner(ctx, ownerID, endOfToday())
	if err != nil {
		return nil, err
	}

	return s.enrichTasks(ctx, ownerID, tasks)
}

// Update updates a task
func (s *TaskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByIDForOwner(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil || req.Description != nil {
		taskType := task.Type
		description := task.Description
		if req.Type != nil {
			taskType = crm.InteractionType(*req.Type)
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := task.Update(taskType, description); err != nil {
			return nil, err
		}
	}

	if req.DueAt != nil {
		task.SetDue(req.DueAt)
	}

	if req.Priority != nil {
		if err := task.SetPriority(crm.TaskPriority(*req.Priority)); err != nil {
			return nil, err
		}
	}

	if req.FacilityID != nil || req.ContactID != nil || req.DealID != nil {
		facilityID := task.FacilityID
		contactID := task.ContactID
		dealID := task.DealID
		if req.FacilityID != nil {
			facilityID = req.FacilityID
		}
		if req.ContactID != nil {
			contactID = req.ContactID
		}
		if req.DealID != nil {
			dealID = req.DealID
		}
		task.Link(facilityID, contactID, dealID)
	}

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	return s.enrichTask(ctx, ownerID, task)
}

// Complete marks a task done. Completing an already-completed task
// refreshes the completion timestamp.
func (s *TaskService) Complete(ctx context.Context, ownerID, taskID uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByIDForOwner(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	task.Complete()

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	return s.enrichTask(ctx, ownerID, task)
}

// Reopen clears a task's completion timestamp, restoring it to the open list
func (s *TaskService) Reopen(ctx context.Context, ownerID, taskID uuid.UUID) (*TaskResponse, error) {
	task, err := s.taskRepo.FindByIDForOwner(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	task.Reopen()

	if err := s.taskRepo.Save(ctx, task); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, ownerID)

	return s.enrichTask(ctx, ownerID, task)
}

// Delete removes a task
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if err := s.taskRepo.DeleteForOwner(ctx, ownerID, taskID); err != nil {
		return err
	}

	s.invalidateStats(ctx, ownerID)
	return nil
}

func (s *TaskService) enrichTask(ctx context.Context, ownerID uuid.UUID, task *crm.Task) (*TaskResponse, error) {
	responses, err := s.enrichTasks(ctx, ownerID, []crm.Task{*task})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// enrichTasks resolves related record names for a batch of tasks
func (s *TaskService) enrichTasks(ctx context.Context, ownerID uuid.UUID, tasks []crm.Task) ([]TaskResponse, error) {
	var facilityIDs, contactIDs, dealIDs []uuid.UUID
	seenFacilities := make(map[uuid.UUID]struct{})
	seenContacts := make(map[uuid.UUID]struct{})
	seenDeals := make(map[uuid.UUID]struct{})

	for i := range tasks {
		if id := tasks[i].FacilityID; id != nil {
			if _, ok := seenFacilities[*id]; !ok {
				seenFacilities[*id] = struct{}{}
				facilityIDs = append(facilityIDs, *id)
			}
		}
		if id := tasks[i].ContactID; id != nil {
			if _, ok := seenContacts[*id]; !ok {
				seenContacts[*id] = struct{}{}
				contactIDs = append(contactIDs, *id)
			}
		}
		if id := tasks[i].DealID; id != nil {
			if _, ok := seenDeals[*id]; !ok {
				seenDeals[*id] = struct{}{}
				dealIDs = append(dealIDs, *id)
			}
		}
	}

	names, err := s.resolveNames(ctx, ownerID, facilityIDs, contactIDs, dealIDs)
	if err != nil {
		return nil, err
	}

	return ToTaskResponses(tasks, names), nil
}

func (s *TaskService) resolveNames(ctx context.Context, ownerID uuid.UUID, facilityIDs, contactIDs, dealIDs []uuid.UUID) (RelatedNames, error) {
	facilityNames, err := s.facilityRepo.FindNamesForOwner(ctx, ownerID, facilityIDs)
	if err != nil {
		return RelatedNames{}, err
	}
	contactNames, err := s.contactRepo.FindNamesForOwner(ctx, ownerID, contactIDs)
	if err != nil {
		return RelatedNames{}, err
	}
	dealNames, err := s.dealRepo.FindNamesForOwner(ctx, ownerID, dealIDs)
	if err != nil {
		return RelatedNames{}, err
	}
	return RelatedNames{
		Facilities: facilityNames,
		Contacts:   contactNames,
		Deals:      dealNames,
	}, nil
}

func (s *TaskService) invalidateStats(ctx context.Context, ownerID uuid.UUID) {
	if s.stats != nil {
		_ = s.stats.Invalidate(ctx, ownerID)
	}
}

// endOfToday returns 23:59:59.999999999 local time today
func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
}
