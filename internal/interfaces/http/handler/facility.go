package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	crmapp "github.com/hospicetrack/backend/internal/application/crm"
)

// FacilityHandler handles facility-related API endpoints
type FacilityHandler struct {
	BaseHandler
	facilityService *crmapp.FacilityService
}

// NewFacilityHandler creates a new FacilityHandler
func NewFacilityHandler(facilityService *crmapp.FacilityService) *FacilityHandler {
	return &FacilityHandler{
		facilityService: facilityService,
	}
}

// Create godoc
// @ID           createFacility
// @Summary      Create a new facility
// @Description  Create a new hospice or home health facility account
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Param        request body crmapp.CreateFacilityRequest true "Facility creation request"
// @Success      201 {object} dto.Response{data=crmapp.FacilityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /facilities [post]
func (h *FacilityHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	facility, err := h.facilityService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, facility)
}

// GetByID godoc
// @ID           getFacilityById
// @Summary      Get facility by ID
// @Description  Retrieve a facility by its ID
// @Tags         facilities
// @Produce      json
// @Param        id path string true "Facility ID" format(uuid)
// @Success      200 {object} dto.Response{data=crmapp.FacilityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /facilities/{id} [get]
func (h *FacilityHandler) GetByID(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	facilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid facility ID format")
		return
	}

	facility, err := h.facilityService.GetByID(c.Request.Context(), ownerID, facilityID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, facility)
}

// List godoc
// @ID           listFacilities
// @Summary      List facilities
// @Description  Retrieve a paginated list of facilities with optional filtering
// @Tags         facilities
// @Produce      json
// @Param        search query string false "Search term (name, city, CCN)"
// @Param        facility_type query string false "Facility type" Enums(hospice, home_health, palliative, hybrid)
// @Param        ownership_type query string false "Ownership type" Enums(for_profit, non_profit, hospital_affiliated, independent)
// @Param        state query string false "Two-letter state code"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} dto.Response{data=[]crmapp.FacilityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /facilities [get]
func (h *FacilityHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.FacilityListFilter
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

	facilities, total, err := h.facilityService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, facilities, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateFacility
// @Summary      Update a facility
// @Description  Update an existing facility's details
// @Tags         facilities
// @Accept       json
// @Produce      json
// @Param        id path string true "Facility ID" format(uuid)
// @Param        request body crmapp.UpdateFacilityRequest true "Facility update request"
// @Success      200 {object} dto.Response{data=crmapp.FacilityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /facilities/{id} [put]
func (h *FacilityHandler) Update(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	facilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid facility ID format")
		return
	}

	var req crmapp.UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	facility, err := h.facilityService.Update(c.Request.Context(), ownerID, facilityID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, facility)
}

// Delete godoc
// @ID           deleteFacility
// @Summary      Delete a facility
// @Description  Delete a facility and all records linked to it (contacts, deals, tasks, activities)
// @Tags         facilities
// @Produce      json
// @Param        id path string true "Facility ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /facilities/{id} [delete]
func (h *FacilityHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	facilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid facility ID format")
		return
	}

	if err := h.facilityService.Delete(c.Request.Context(), ownerID, facilityID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
