package crm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/hospicetrack/backend/internal/domain/crm"
)

func newDashboardService(dealRepo *MockDealRepository, facilityRepo *MockFacilityRepository, contactRepo *MockContactRepository, taskRepo *MockTaskRepository, cache *MockStatsCache) *DashboardService {
	if cache == nil {
		return NewDashboardService(dealRepo, facilityRepo, contactRepo, taskRepo, nil, 30*time.Second, nil)
	}
	return NewDashboardService(dealRepo, facilityRepo, contactRepo, taskRepo, cache, 30*time.Second, nil)
}

func TestDashboardService_GetStats_Computed(t *testing.T) {
	mockDealRepo := new(MockDealRepository)
	mockFacilityRepo := new(MockFacilityRepository)
	mockContactRepo := new(MockContactRepository)
	mockTaskRepo := new(MockTaskRepository)
	service := newDashboardService(mockDealRepo, mockFacilityRepo, mockContactRepo, mockTaskRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()

	summary := &crm.PipelineSummary{
		PipelineValue:   decimal.NewFromInt(250000),
		ActiveDeals:     8,
		ClosedThisMonth: decimal.NewFromInt(60000),
		WonInWindow:     3,
		LostInWindow:    1,
	}

	mockDealRepo.On("SummarizeForOwner", ctx, ownerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(summary, nil)
	mockFacilityRepo.On("CountForOwner", ctx, ownerID, mock.AnythingOfType("shared.Filter")).Return(int64(12), nil)
	mockContactRepo.On("CountForOwner", ctx, ownerID, mock.AnythingOfType("shared.Filter")).Return(int64(31), nil)
	mockTaskRepo.On("CountDueByForOwner", ctx, ownerID, mock.AnythingOfType("time.Time")).Return(int64(4), nil)

	result, err := service.GetStats(ctx, ownerID)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.True(t, result.PipelineValue.Equal(decimal.NewFromInt(250000)))
	assert.Equal(t, int64(8), result.ActiveDeals)
	assert.Equal(t, int64(12), result.FacilityCount)
	assert.Equal(t, int64(31), result.ContactCount)
	assert.Equal(t, int64(4), result.TasksDueToday)
	assert.True(t, result.ClosedThisMonth.Equal(decimal.NewFromInt(60000)))
	assert.Equal(t, 75, result.WinRate) // 3 of 4 closed in the window
	mockDealRepo.AssertExpectations(t)
	mockTaskRepo.AssertExpectations(t)
}

func TestDashboardService_GetStats_NoClosedDealsZeroWinRate(t *testing.T) {
	mockDealRepo := new(MockDealRepository)
	mockFacilityRepo := new(MockFacilityRepository)
	mockContactRepo := new(MockContactRepository)
	mockTaskRepo := new(MockTaskRepository)
	service := newDashboardService(mockDealRepo, mockFacilityRepo, mockContactRepo, mockTaskRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()

	summary := &crm.PipelineSummary{
		PipelineValue:   decimal.Zero,
		ClosedThisMonth: decimal.Zero,
	}

	mockDealRepo.On("SummarizeForOwner", ctx, ownerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(summary, nil)
	mockFacilityRepo.On("CountForOwner", ctx, ownerID, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)
	mockContactRepo.On("CountForOwner", ctx, ownerID, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)
	mockTaskRepo.On("CountDueByForOwner", ctx, ownerID, mock.AnythingOfType("time.Time")).Return(int64(0), nil)

	result, err := service.GetStats(ctx, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, 0, result.WinRate)
	mockDealRepo.AssertExpectations(t)
}

func TestDashboardService_GetStats_CacheHit(t *testing.T) {
	mockDealRepo := new(MockDealRepository)
	mockFacilityRepo := new(MockFacilityRepository)
	mockContactRepo := new(MockContactRepository)
	mockTaskRepo := new(MockTaskRepository)
	mockCache := new(MockStatsCache)
	service := newDashboardService(mockDealRepo, mockFacilityRepo, mockContactRepo, mockTaskRepo, mockCache)

	ctx := context.Background()
	ownerID := newTestOwnerID()

	cached := &crm.DashboardStats{
		PipelineValue: decimal.NewFromInt(99000),
		ActiveDeals:   5,
		WinRate:       50,
	}

	mockCache.On("Get", ctx, ownerID).Return(cached, nil)

	result, err := service.GetStats(ctx, ownerID)

	assert.NoError(t, err)
	assert.True(t, result.PipelineValue.Equal(decimal.NewFromInt(99000)))
	assert.Equal(t, 50, result.WinRate)
	mockDealRepo.AssertNotCalled(t, "SummarizeForOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestDashboardService_GetStats_CacheMissStoresResult(t *testing.T) {
	mockDealRepo := new(MockDealRepository)
	mockFacilityRepo := new(MockFacilityRepository)
	mockContactRepo := new(MockContactRepository)
	mockTaskRepo := new(MockTaskRepository)
	mockCache := new(MockStatsCache)
	service := newDashboardService(mockDealRepo, mockFacilityRepo, mockContactRepo, mockTaskRepo, mockCache)

	ctx := context.Background()
	ownerID := newTestOwnerID()

	summary := &crm.PipelineSummary{
		PipelineValue:   decimal.NewFromInt(10000),
		ActiveDeals:     2,
		ClosedThisMonth: decimal.Zero,
	}

	mockCache.On("Get", ctx, ownerID).Return(nil, nil)
	mockDealRepo.On("SummarizeForOwner", ctx, ownerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(summary, nil)
	mockFacilityRepo.On("CountForOwner", ctx, ownerID, mock.AnythingOfType("shared.Filter")).Return(int64(3), nil)
	mockContactRepo.On("CountForOwner", ctx, ownerID, mock.AnythingOfType("shared.Filter")).Return(int64(7), nil)
	mockTaskRepo.On("CountDueByForOwner", ctx, ownerID, mock.AnythingOfType("time.Time")).Return(int64(1), nil)
	mockCache.On("Set", ctx, ownerID, mock.AnythingOfType("*crm.DashboardStats"), 30*time.Second).Return(nil)

	result, err := service.GetStats(ctx, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.ActiveDeals)
	mockCache.AssertExpectations(t)
	mockDealRepo.AssertExpectations(t)
}

func TestDashboardService_GetStats_CacheErrorFailsOpen(t *testing.T) {
	mockDealRepo := new(MockDealRepository)
	mockFacilityRepo := new(MockFacilityRepository)
	mockContactRepo := new(MockContactRepository)
	mockTaskRepo := new(MockTaskRepository)
	mockCache := new(MockStatsCache)
	service := newDashboardService(mockDealRepo, mockFacilityRepo, mockContactRepo, mockTaskRepo, mockCache)

	ctx := context.Background()
	ownerID := newTestOwnerID()

	summary := &crm.PipelineSummary{
		PipelineValue:   decimal.NewFromInt(5000),
		ActiveDeals:     1,
		ClosedThisMonth: decimal.Zero,
	}

	mockCache.On("Get", ctx, ownerID).Return(nil, errors.New("redis connection refused"))
	mockDealRepo.On("SummarizeForOwner", ctx, ownerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).Return(summary, nil)
	mockFacilityRepo.On("CountForOwner", ctx, ownerID, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)
	mockContactRepo.On("CountForOwner", ctx, ownerID, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)
	mockTaskRepo.On("CountDueByForOwner", ctx, ownerID, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
	mockCache.On("Set", ctx, ownerID, mock.AnythingOfType("*crm.DashboardStats"), 30*time.Second).Return(errors.New("redis connection refused"))

	result, err := service.GetStats(ctx, ownerID)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.ActiveDeals)
	mockCache.AssertExpectations(t)
}

func TestDashboardService_GetStats_MonthAndWindowBounds(t *testing.T) {
	mockDealRepo := new(MockDealRepository)
	mockFacilityRepo := new(MockFacilityRepository)
	mockContactRepo := new(MockContactRepository)
	mockTaskRepo := new(MockTaskRepository)
	service := newDashboardService(mockDealRepo, mockFacilityRepo, mockContactRepo, mockTaskRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()

	matchMonthStart := mock.MatchedBy(func(at time.Time) bool {
		now := time.Now()
		return at.Year() == now.Year() && at.Month() == now.Month() &&
			at.Day() == 1 && at.Hour() == 0 && at.Minute() == 0
	})
	matchWindowStart := mock.MatchedBy(func(at time.Time) bool {
		expected := time.Now().AddDate(0, 0, -90)
		diff := at.Sub(expected)
		return diff > -time.Minute && diff < time.Minute
	})

	summary := &crm.PipelineSummary{PipelineValue: decimal.Zero, ClosedThisMonth: decimal.Zero}

	mockDealRepo.On("SummarizeForOwner", ctx, ownerID, matchMonthStart, matchWindowStart).Return(summary, nil)
	mockFacilityRepo.On("CountForOwner", ctx, ownerID, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)
	mockContactRepo.On("CountForOwner", ctx, ownerID, mock.AnythingOfType("shared.Filter")).Return(int64(0), nil)
	mockTaskRepo.On("CountDueByForOwner", ctx, ownerID, mock.AnythingOfType("time.Time")).Return(int64(0), nil)

	_, err := service.GetStats(ctx, ownerID)

	assert.NoError(t, err)
	mockDealRepo.AssertExpectations(t)
}

func TestDashboardService_GetStats_RepoError(t *testing.T) {
	mockDealRepo := new(MockDealRepository)
	mockFacilityRepo := new(MockFacilityRepository)
	mockContactRepo := new(MockContactRepository)
	mockTaskRepo := new(MockTaskRepository)
	service := newDashboardService(mockDealRepo, mockFacilityRepo, mockContactRepo, mockTaskRepo, nil)

	ctx := context.Background()
	ownerID := newTestOwnerID()

	mockDealRepo.On("SummarizeForOwner", ctx, ownerID, mock.AnythingOfType("time.Time"), mock.AnythingOfType("time.Time")).
		Return(nil, errors.New("db error"))

	result, err := service.GetStats(ctx, ownerID)

	assert.Error(t, err)
	assert.Nil(t, result)
	mockDealRepo.AssertExpectations(t)
}

func TestWinRate_Rounding(t *testing.T) {
	assert.Equal(t, 0, crm.WinRate(0, 0))
	assert.Equal(t, 100, crm.WinRate(5, 0))
	assert.Equal(t, 0, crm.WinRate(0, 5))
	assert.Equal(t, 50, crm.WinRate(1, 1))
	assert.Equal(t, 67, crm.WinRate(2, 1))
	assert.Equal(t, 33, crm.WinRate(1, 2))
}
