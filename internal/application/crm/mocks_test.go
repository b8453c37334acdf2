package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/hospicetrack/backend/internal/domain/crm"
	"github.com/hospicetrack/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockFacilityRepository is a mock implementation of FacilityRepository
type MockFacilityRepository struct {
	mock.Mock
}

func (m *MockFacilityRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Facility, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Facility), args.Error(1)
}

func (m *MockFacilityRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Facility, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Facility), args.Error(1)
}

func (m *MockFacilityRepository) FindNamesForOwner(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ownerID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

func (m *MockFacilityRepository) Save(ctx context.Context, facility *crm.Facility) error {
	args := m.Called(ctx, facility)
	return args.Error(0)
}

func (m *MockFacilityRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockFacilityRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFacilityRepository) ExistsByNameForOwner(ctx context.Context, ownerID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, ownerID, name)
	return args.Bool(0), args.Error(1)
}

var _ crm.FacilityRepository = (*MockFacilityRepository)(nil)

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Contact, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Contact), args.Error(1)
}

func (m *MockContactRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Contact, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByFacilityForOwner(ctx context.Context, ownerID, facilityID uuid.UUID) ([]crm.Contact, error) {
	args := m.Called(ctx, ownerID, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Contact), args.Error(1)
}

func (m *MockContactRepository) FindNamesForOwner(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ownerID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

func (m *MockContactRepository) Save(ctx context.Context, contact *crm.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockContactRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ crm.ContactRepository = (*MockContactRepository)(nil)

// MockDealRepository is a mock implementation of DealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Deal, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Deal), args.Error(1)
}

func (m *MockDealRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Deal, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Deal), args.Error(1)
}

func (m *MockDealRepository) FindActiveForOwner(ctx context.Context, ownerID uuid.UUID) ([]crm.Deal, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Deal), args.Error(1)
}

func (m *MockDealRepository) FindByStageForOwner(ctx context.Context, ownerID uuid.UUID, stage crm.DealStage) ([]crm.Deal, error) {
	args := m.Called(ctx, ownerID, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Deal), args.Error(1)
}

func (m *MockDealRepository) FindNamesForOwner(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	args := m.Called(ctx, ownerID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]string), args.Error(1)
}

func (m *MockDealRepository) Save(ctx context.Context, deal *crm.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockDealRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDealRepository) SummarizeForOwner(ctx context.Context, ownerID uuid.UUID, monthStart, windowStart time.Time) (*crm.PipelineSummary, error) {
	args := m.Called(ctx, ownerID, monthStart, windowStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.PipelineSummary), args.Error(1)
}

func (m *MockDealRepository) GroupByStageForOwner(ctx context.Context, ownerID uuid.UUID) ([]crm.StageSummary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.StageSummary), args.Error(1)
}

var _ crm.DealRepository = (*MockDealRepository)(nil)

// MockTaskRepository is a mock implementation of TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Task, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Task, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Task), args.Error(1)
}

func (m *MockTaskRepository) FindOpenForOwner(ctx context.Context, ownerID uuid.UUID) ([]crm.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Task), args.Error(1)
}

func (m *MockTaskRepository) FindDueByForOwner(ctx context.Context, ownerID uuid.UUID, deadline time.Time) ([]crm.Task, error) {
	args := m.Called(ctx, ownerID, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Task), args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *crm.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockTaskRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) CountDueByForOwner(ctx context.Context, ownerID uuid.UUID, deadline time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, deadline)
	return args.Get(0).(int64), args.Error(1)
}

var _ crm.TaskRepository = (*MockTaskRepository)(nil)

// MockActivityRepository is a mock implementation of ActivityRepository
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*crm.Activity, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]crm.Activity, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindByFacilityForOwner(ctx context.Context, ownerID, facilityID uuid.UUID) ([]crm.Activity, error) {
	args := m.Called(ctx, ownerID, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindByDealForOwner(ctx context.Context, ownerID, dealID uuid.UUID) ([]crm.Activity, error) {
	args := m.Called(ctx, ownerID, dealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]crm.Activity), args.Error(1)
}

func (m *MockActivityRepository) Save(ctx context.Context, activity *crm.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockActivityRepository) CountForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).(int64), args.Error(1)
}

var _ crm.ActivityRepository = (*MockActivityRepository)(nil)

// MockStatsCache is a mock implementation of the dashboard stats cache
type MockStatsCache struct {
	mock.Mock
}

func (m *MockStatsCache) Get(ctx context.Context, ownerID uuid.UUID) (*crm.DashboardStats, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.DashboardStats), args.Error(1)
}

func (m *MockStatsCache) Set(ctx context.Context, ownerID uuid.UUID, stats *crm.DashboardStats, ttl time.Duration) error {
	args := m.Called(ctx, ownerID, stats, ttl)
	return args.Error(0)
}

func (m *MockStatsCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

var _ StatsCache = (*MockStatsCache)(nil)
var _ StatsInvalidator = (*MockStatsCache)(nil)

// =============================================================================
// Test Helper Functions
// =============================================================================

func newTestOwnerID() uuid.UUID {
	return uuid.MustParse("11111111-1111-1111-1111-111111111111")
}

func newTestRecordID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func createTestFacility(ownerID uuid.UUID) *crm.Facility {
	facility, _ := crm.NewFacility(ownerID, "Sunrise Hospice Care", crm.FacilityTypeHospice)
	return facility
}

func createTestContact(ownerID uuid.UUID) *crm.Contact {
	contact, _ := crm.NewContact(ownerID, "Maria Alvarez")
	return contact
}

func createTestDeal(ownerID uuid.UUID) *crm.Deal {
	deal, _ := crm.NewDeal(ownerID, "Sunrise EHR Migration")
	return deal
}

func createTestTask(ownerID uuid.UUID) *crm.Task {
	task, _ := crm.NewTask(ownerID, crm.InteractionCall, "Follow up on demo feedback")
	return task
}

func createTestActivity(ownerID uuid.UUID) *crm.Activity {
	activity, _ := crm.NewActivity(ownerID, crm.InteractionMeeting, "Discovery meeting", time.Now())
	return activity
}

func emptyNames() map[uuid.UUID]string {
	return map[uuid.UUID]string{}
}
