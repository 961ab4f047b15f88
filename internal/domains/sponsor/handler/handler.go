package handler

import (
	"net/http"

	"portfolio-backend/internal/domains/sponsor/model"
	"portfolio-backend/internal/domains/sponsor/service"
	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/internal/shared/response"
	"portfolio-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type SponsorHandler struct {
	service service.ServiceInterface
}

func NewSponsorHandler(service service.ServiceInterface) *SponsorHandler {
	return &SponsorHandler{service: service}
}

// List handles GET /sponsors?active=
func (h *SponsorHandler) List(c *gin.Context) {
	active, err := utils.QueryBool(c, "active")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sponsors, err := h.service.ListSponsors(c.Request.Context(), model.SponsorFilter{Active: active}, middleware.Can(c, authz.ContentWrite))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, sponsors, &response.Meta{Total: len(sponsors)})
}

// Get handles GET /sponsors/:id
func (h *SponsorHandler) Get(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidSponsorID)
		return
	}

	sp, err := h.service.GetSponsor(c.Request.Context(), id, middleware.Can(c, authz.ContentWrite))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, sp)
}

// Create handles POST /sponsors
func (h *SponsorHandler) Create(c *gin.Context) {
	var req model.CreateSponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	sp, err := h.service.CreateSponsor(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, sp)
}

// Update handles PATCH /sponsors/:id
func (h *SponsorHandler) Update(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidSponsorID)
		return
	}

	var req model.UpdateSponsorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	sp, err := h.service.UpdateSponsor(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, sp)
}

// Delete handles DELETE /sponsors/:id
func (h *SponsorHandler) Delete(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidSponsorID)
		return
	}

	if err := h.service.DeleteSponsor(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// Click handles POST /sponsors/:id/click (public)
func (h *SponsorHandler) Click(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidSponsorID)
		return
	}

	res, err := h.service.RecordClick(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, res)
}
