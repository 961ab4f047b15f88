package handler

import (
	"net/http"

	"portfolio-backend/internal/domains/profile/model"
	"portfolio-backend/internal/domains/profile/service"
	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/internal/shared/response"
	"portfolio-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service service.ServiceInterface
}

func NewProfileHandler(service service.ServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Me handles GET /profiles/me
func (h *ProfileHandler) Me(c *gin.Context) {
	principal := middleware.GetPrincipal(c)

	profile, err := h.service.GetProfile(c.Request.Context(), principal.ProfileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// List handles GET /profiles?role=&search=
func (h *ProfileHandler) List(c *gin.Context) {
	filter := model.ProfileFilter{
		Role:   c.Query("role"),
		Search: c.Query("search"),
	}

	profiles, err := h.service.ListProfiles(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, profiles, &response.Meta{Total: len(profiles)})
}

// Get handles GET /profiles/:id (chính mình hoặc profiles:manage)
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidID)
		return
	}

	principal := middleware.GetPrincipal(c)
	if principal.ProfileID != id && !principal.Can(authz.ProfilesManage) {
		response.Error(c, model.ErrProfileNotFound)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// Update handles PATCH /profiles/:id
func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidID)
		return
	}

	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}
