package handler

import (
	"net/http"

	"portfolio-backend/internal/domains/contact/model"
	"portfolio-backend/internal/domains/contact/service"
	"portfolio-backend/internal/shared/response"
	"portfolio-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	service service.ServiceInterface
}

func NewContactHandler(service service.ServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// List handles GET /contacts?read=
func (h *ContactHandler) List(c *gin.Context) {
	read, err := utils.QueryBool(c, "read")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	contacts, err := h.service.ListContacts(c.Request.Context(), model.ContactFilter{Read: read})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, contacts, &response.Meta{Total: len(contacts)})
}

// Get handles GET /contacts/:id
func (h *ContactHandler) Get(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidContactID)
		return
	}

	contact, err := h.service.GetContact(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, contact)
}

// Create handles POST /contacts (public form)
func (h *ContactHandler) Create(c *gin.Context) {
	var req model.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	contact, err := h.service.SubmitContact(c.Request.Context(), c.ClientIP(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, contact)
}

// Update handles PATCH /contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidContactID)
		return
	}

	var req model.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	contact, err := h.service.UpdateContact(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, contact)
}

// Delete handles DELETE /contacts/:id
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidContactID)
		return
	}

	if err := h.service.DeleteContact(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}
