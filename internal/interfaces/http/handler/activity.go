package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	crmapp "github.com/hospicetrack/backend/internal/application/crm"
)

// ActivityHandler handles activity log API endpoints
type ActivityHandler struct {
	BaseHandler
	activityService *crmapp.ActivityService
}

// NewActivityHandler creates a new ActivityHandler
func NewActivityHandler(activityService *crmapp.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
	}
}

// Log godoc
// @ID           logActivity
// @Summary      Log an activity
// @Description  Record a completed interaction such as a call, email, or meeting
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        request body crmapp.CreateActivityRequest true "Activity log request"
// @Success      201 {object} dto.Response{data=crmapp.ActivityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /activities [post]
func (h *ActivityHandler) Log(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	activity, err := h.activityService.Log(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, activity)
}

// GetByID godoc
// @ID           getActivityById
// @Summary      Get activity by ID
// @Description  Retrieve an activity by its ID
// @Tags         activities
// @Produce      json
// @Param        id path string true "Activity ID" format(uuid)
// @Success      200 {object} dto.Response{data=crmapp.ActivityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /activities/{id} [get]
func (h *ActivityHandler) GetByID(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID format")
		return
	}

	activity, err := h.activityService.GetByID(c.Request.Context(), ownerID, activityID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, activity)
}

// List godoc
// @ID           listActivities
// @Summary      List activities
// @Description  Retrieve a paginated activity log with optional filtering
// @Tags         activities
// @Produce      json
// @Param        search query string false "Search term (subject, notes)"
// @Param        facility_id query string false "Filter by facility ID" format(uuid)
// @Param        contact_id query string false "Filter by contact ID" format(uuid)
// @Param        deal_id query string false "Filter by deal ID" format(uuid)
// @Param        type query string false "Activity type" Enums(call, email, meeting, demo, follow_up, other)
// @Param        outcome query string false "Outcome" Enums(positive, neutral, negative)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]crmapp.ActivityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /activities [get]
func (h *ActivityHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.ActivityListFilter
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

	activities, total, err := h.activityService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, activities, total, filter.Page, filter.PageSize)
}

// ListByFacility godoc
// @ID           listActivitiesByFacility
// @Summary      List activities for a facility
// @Description  Retrieve the activity history for a facility, most recent first
// @Tags         activities
// @Produce      json
// @Param        id path string true "Facility ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]crmapp.ActivityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /facilities/{id}/activities [get]
func (h *ActivityHandler) ListByFacility(c *gin.Context) {
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

	activities, err := h.activityService.ListByFacility(c.Request.Context(), ownerID, facilityID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, activities)
}

// ListByDeal godoc
// @ID           listActivitiesByDeal
// @Summary      List activities for a deal
// @Description  Retrieve the activity history for a deal, most recent first
// @Tags         activities
// @Produce      json
// @Param        id path string true "Deal ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]crmapp.ActivityResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /deals/{id}/activities [get]
func (h *ActivityHandler) ListByDeal(c *gin.Context) {
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

	activities, err := h.activityService.ListByDeal(c.Request.Context(), ownerID, dealID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, activities)
}

// Delete godoc
// @ID           deleteActivity
// @Summary      Delete an activity
// @Description  Delete an activity log entry by its ID
// @Tags         activities
// @Produce      json
// @Param        id path string true "Activity ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /activities/{id} [delete]
func (h *ActivityHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	activityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid activity ID format")
		return
	}

	if err := h.activityService.Delete(c.Request.Context(), ownerID, activityID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
