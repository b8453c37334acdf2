package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	crmapp "github.com/hospicetrack/backend/internal/application/crm"
)

// DealHandler handles deal-related API endpoints
type DealHandler struct {
	BaseHandler
	dealService *crmapp.DealService
}

// NewDealHandler creates a new DealHandler
func NewDealHandler(dealService *crmapp.DealService) *DealHandler {
	return &DealHandler{
		dealService: dealService,
	}
}

// Create godoc
// @ID           createDeal
// @Summary      Create a new deal
// @Description  Create a new deal, optionally linked to a facility and a primary contact
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        request body crmapp.CreateDealRequest true "Deal creation request"
// @Success      201 {object} dto.Response{data=crmapp.DealResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deals [post]
func (h *DealHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deal, err := h.dealService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, deal)
}

// GetByID godoc
// @ID           getDealById
// @Summary      Get deal by ID
// @Description  Retrieve a deal by its ID
// @Tags         deals
// @Produce      json
// @Param        id path string true "Deal ID" format(uuid)
// @Success      200 {object} dto.Response{data=crmapp.DealResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deals/{id} [get]
func (h *DealHandler) GetByID(c *gin.Context) {
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

	deal, err := h.dealService.GetByID(c.Request.Context(), ownerID, dealID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, deal)
}

// List godoc
// @ID           listDeals
// @Summary      List deals
// @Description  Retrieve a paginated list of deals with optional filtering
// @Tags         deals
// @Produce      json
// @Param        search query string false "Search term (deal name)"
// @Param        stage query string false "Pipeline stage" Enums(lead, discovery, demo_scheduled, demo_completed, proposal_sent, negotiation, verbal_commit, closed_won, closed_lost)
// @Param        facility_id query string false "Filter by facility ID" format(uuid)
// @Param        active query bool false "Only non-closed deals when true"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]crmapp.DealResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deals [get]
func (h *DealHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.DealListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	deals, total, err := h.dealService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, deals, total, filter.Page, filter.PageSize)
}

// ListActive godoc
// @ID           listActiveDeals
// @Summary      List active deals
// @Description  Retrieve all deals that are not closed won or closed lost
// @Tags         deals
// @Produce      json
// @Success      200 {object} dto.Response{data=[]crmapp.DealResponse}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deals/active [get]
func (h *DealHandler) ListActive(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	deals, err := h.dealService.ListActive(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, deals)
}

// Update godoc
// @ID           updateDeal
// @Summary      Update a deal
// @Description  Update an existing deal's details (stage changes go through the stage endpoint)
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        id path string true "Deal ID" format(uuid)
// @Param        request body crmapp.UpdateDealRequest true "Deal update request"
// @Success      200 {object} dto.Response{data=crmapp.DealResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deals/{id} [put]
func (h *DealHandler) Update(c *gin.Context) {
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

	var req crmapp.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deal, err := h.dealService.Update(c.Request.Context(), ownerID, dealID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, deal)
}

// ChangeStage godoc
// @ID           changeDealStage
// @Summary      Change deal stage
// @Description  Move a deal to another pipeline stage
// @Tags         deals
// @Accept       json
// @Produce      json
// @Param        id path string true "Deal ID" format(uuid)
// @Param        request body crmapp.ChangeDealStageRequest true "Target stage"
// @Success      200 {object} dto.Response{data=crmapp.DealResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deals/{id}/stage [patch]
func (h *DealHandler) ChangeStage(c *gin.Context) {
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

	var req crmapp.ChangeDealStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deal, err := h.dealService.ChangeStage(c.Request.Context(), ownerID, dealID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, deal)
}

// Delete godoc
// @ID           deleteDeal
// @Summary      Delete a deal
// @Description  Delete a deal by its ID
// @Tags         deals
// @Produce      json
// @Param        id path string true "Deal ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deals/{id} [delete]
func (h *DealHandler) Delete(c *gin.Context) {
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

	if err := h.dealService.Delete(c.Request.Context(), ownerID, dealID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
