package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"portfolio-backend/internal/domains/media/model"
	"portfolio-backend/internal/domains/media/service"
	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/internal/shared/response"
	"portfolio-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MediaHandler struct {
	service service.ServiceInterface
}

func NewMediaHandler(service service.ServiceInterface) *MediaHandler {
	return &MediaHandler{service: service}
}

func uploader(c *gin.Context) *uuid.UUID {
	if p := middleware.GetPrincipal(c); p != nil {
		return &p.ProfileID
	}
	return nil
}

// List handles GET /media?type=
func (h *MediaHandler) List(c *gin.Context) {
	items, err := h.service.ListMedia(c.Request.Context(), model.MediaFilter{Type: c.Query("type")})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{Total: len(items)})
}

// Get handles GET /media/:id
func (h *MediaHandler) Get(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidMediaID)
		return
	}

	m, err := h.service.GetMedia(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, m)
}

// Create handles POST /media (JSON, url = data: URI hoặc link)
func (h *MediaHandler) Create(c *gin.Context) {
	var req model.CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	m, err := h.service.CreateMedia(c.Request.Context(), uploader(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, m)
}

// Upload handles POST /media/upload (multipart, field "file" lặp được)
func (h *MediaHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, "Invalid multipart form")
		return
	}
	defer form.RemoveAll()

	headers := form.File["file"]
	files := make([]service.FileInput, 0, len(headers))
	closers := make([]io.Closer, 0, len(headers))
	defer func() {
		for _, cl := range closers {
			cl.Close()
		}
	}()

	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, "Cannot read uploaded file")
			return
		}
		closers = append(closers, f)
		files = append(files, service.FileInput{Filename: fh.Filename, Reader: f})
	}

	items, err := h.service.Upload(c.Request.Context(), uploader(c), files, altText(form))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusCreated, items, &response.Meta{Total: len(items)})
}

func altText(form *multipart.Form) *string {
	values := form.Value["altText"]
	if len(values) == 0 {
		return nil
	}
	return utils.TrimPtr(&values[0])
}

// Delete handles DELETE /media/:id
func (h *MediaHandler) Delete(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidMediaID)
		return
	}

	if err := h.service.DeleteMedia(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}
