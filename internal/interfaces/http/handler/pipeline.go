package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	crmapp "github.com/hospicetrack/backend/internal/application/crm"
)

// PipelineHandler handles Kanban board API endpoints
type PipelineHandler struct {
	BaseHandler
	pipelineService *crmapp.PipelineService
}

// NewPipelineHandler creates a new PipelineHandler
func NewPipelineHandler(pipelineService *crmapp.PipelineService) *PipelineHandler {
	return &PipelineHandler{
		pipelineService: pipelineService,
	}
}

// GetBoard godoc
// @ID           getPipelineBoard
// @Summary      Get the pipeline board
// @Description  Retrieve open deals grouped by stage into Kanban columns, with per-column counts and totals
// @Tags         pipeline
// @Produce      json
// @Success      200 {object} dto.Response{data=crmapp.PipelineBoardResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pipeline/board [get]
func (h *PipelineHandler) GetBoard(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	board, err := h.pipelineService.GetBoard(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, board)
}

// MoveDeal godoc
// @ID           movePipelineDeal
// @Summary      Move a deal on the board
// @Description  Move a deal to another stage column; dropping it on its current column is a no-op
// @Tags         pipeline
// @Accept       json
// @Produce      json
// @Param        id path string true "Deal ID" format(uuid)
// @Param        request body crmapp.MoveDealRequest true "Target stage"
// @Success      200 {object} dto.Response{data=crmapp.DealResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /pipeline/deals/{id}/move [patch]
func (h *PipelineHandler) MoveDeal(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	dealID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid deal ID format")
		return
	}

	var req crmapp.MoveDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deal, err := h.pipelineService.MoveDeal(c.Request.Context(), ownerID, dealID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, deal)
}
