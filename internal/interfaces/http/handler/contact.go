package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	crmapp "github.com/hospicetrack/backend/internal/application/crm"
)

// RecordContactedRequest marks a contact as reached. The timestamp is
// optional and defaults to now.
type RecordContactedRequest struct {
	At *time.Time `json:"at"`
}

// ContactHandler handles contact-related API endpoints
type ContactHandler struct {
	BaseHandler
	contactService *crmapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *crmapp.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

// Create godoc
// @ID           createContact
// @Summary      Create a new contact
// @Description  Create a new contact, optionally linked to a facility
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request body crmapp.CreateContactRequest true "Contact creation request"
// @Success      201 {object} dto.Response{data=crmapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req crmapp.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, contact)
}

// GetByID godoc
// @ID           getContactById
// @Summary      Get contact by ID
// @Description  Retrieve a contact by its ID
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Success      200 {object} dto.Response{data=crmapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id} [get]
func (h *ContactHandler) GetByID(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID format")
		return
	}

	contact, err := h.contactService.GetByID(c.Request.Context(), ownerID, contactID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contact)
}

// List godoc
// @ID           listContacts
// @Summary      List contacts
// @Description  Retrieve a paginated list of contacts with optional filtering
// @Tags         contacts
// @Produce      json
// @Param        search query string false "Search term (name, title, email)"
// @Param        facility_id query string false "Filter by facility ID" format(uuid)
// @Param        buyer_role query string false "Buyer role" Enums(decision_maker, influencer, champion, blocker, end_user)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} dto.Response{data=[]crmapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter crmapp.ContactListFilter
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

	contacts, total, err := h.contactService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, contacts, total, filter.Page, filter.PageSize)
}

// ListByFacility godoc
// @ID           listContactsByFacility
// @Summary      List contacts for a facility
// @Description  Retrieve all contacts linked to a facility
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Facility ID" format(uuid)
// @Success      200 {object} dto.Response{data=[]crmapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /facilities/{id}/contacts [get]
func (h *ContactHandler) ListByFacility(c *gin.Context) {
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

	contacts, err := h.contactService.ListByFacility(c.Request.Context(), ownerID, facilityID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contacts)
}

// Update godoc
// @ID           updateContact
// @Summary      Update a contact
// @Description  Update an existing contact's details
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Param        request body crmapp.UpdateContactRequest true "Contact update request"
// @Success      200 {object} dto.Response{data=crmapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID format")
		return
	}

	var req crmapp.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), ownerID, contactID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contact)
}

// RecordContacted godoc
// @ID           recordContactTouch
// @Summary      Record a contact touch
// @Description  Mark the contact as reached, updating its last-contacted timestamp
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Param        request body RecordContactedRequest false "Optional touch timestamp"
// @Success      200 {object} dto.Response{data=crmapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id}/contacted [post]
func (h *ContactHandler) RecordContacted(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID format")
		return
	}

	var req RecordContactedRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, err.Error())
			return
		}
	}

	at := time.Now().UTC()
	if req.At != nil {
		at = *req.At
	}

	contact, err := h.contactService.RecordContacted(c.Request.Context(), ownerID, contactID, at)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, contact)
}

// Delete godoc
// @ID           deleteContact
// @Summary      Delete a contact
// @Description  Delete a contact by its ID
// @Tags         contacts
// @Produce      json
// @Param        id path string true "Contact ID" format(uuid)
// @Success      204 "No Content"
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	contactID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid contact ID format")
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), ownerID, contactID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
