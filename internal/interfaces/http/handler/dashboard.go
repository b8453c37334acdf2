package handler

import (
	"github.com/gin-gonic/gin"
	crmapp "github.com/hospicetrack/backend/internal/application/crm"
)

// DashboardHandler handles dashboard API endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *crmapp.DashboardService
	pipelineService  *crmapp.PipelineService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *crmapp.DashboardService, pipelineService *crmapp.PipelineService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		pipelineService:  pipelineService,
	}
}

// GetStats godoc
// @ID           getDashboardStats
// @Summary      Get dashboard statistics
// @Description  Retrieve the pipeline value, record counts, tasks due today, closed revenue for the current month, and trailing 90-day win rate
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=crmapp.DashboardStatsResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetPipeline godoc
// @ID           getDashboardPipeline
// @Summary      Get pipeline summary
// @Description  Retrieve per-stage deal counts and total values for the open pipeline stages
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dto.Response{data=crmapp.PipelineSummaryResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /dashboard/pipeline [get]
func (h *DashboardHandler) GetPipeline(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	summary, err := h.pipelineService.GetSummary(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
