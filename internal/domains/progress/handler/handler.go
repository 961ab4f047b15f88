package handler

import (
	"net/http"
	"strings"

	"portfolio-backend/internal/domains/progress/model"
	"portfolio-backend/internal/domains/progress/service"
	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/internal/shared/response"
	"portfolio-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderReaderID do browser sinh ra cho khách chưa đăng nhập
const HeaderReaderID = "X-Reader-ID"

type ProgressHandler struct {
	service service.ServiceInterface
}

func NewProgressHandler(service service.ServiceInterface) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// readerID: profile đã đăng nhập, không thì X-Reader-ID
func readerID(c *gin.Context) (uuid.UUID, bool) {
	if p := middleware.GetPrincipal(c); p != nil {
		return p.ProfileID, true
	}
	id, err := uuid.Parse(strings.TrimSpace(c.GetHeader(HeaderReaderID)))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// Get handles GET /books/:id/progress
func (h *ProgressHandler) Get(c *gin.Context) {
	bookID, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidBookID)
		return
	}
	reader, ok := readerID(c)
	if !ok {
		response.Error(c, model.ErrReaderRequired)
		return
	}

	p, err := h.service.GetProgress(c.Request.Context(), reader, bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

// Save handles PUT /books/:id/progress
func (h *ProgressHandler) Save(c *gin.Context) {
	bookID, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidBookID)
		return
	}
	reader, ok := readerID(c)
	if !ok {
		response.Error(c, model.ErrReaderRequired)
		return
	}

	var req model.SaveProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	p, err := h.service.SaveProgress(c.Request.Context(), reader, bookID, middleware.Can(c, authz.ContentWrite), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}
