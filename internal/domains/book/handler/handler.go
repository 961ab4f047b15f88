package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"portfolio-backend/internal/domains/book/model"
	"portfolio-backend/internal/domains/book/service"
	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/internal/shared/response"
	"portfolio-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type BookHandler struct {
	service  service.ServiceInterface
	exporter *service.Exporter
}

func NewBookHandler(service service.ServiceInterface, exporter *service.Exporter) *BookHandler {
	return &BookHandler{service: service, exporter: exporter}
}

// List handles GET /books?published=&category=&search=
func (h *BookHandler) List(c *gin.Context) {
	published, err := utils.QueryBool(c, "published")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	filter := model.BookFilter{
		Published: published,
		Category:  c.Query("category"),
		Search:    c.Query("search"),
	}

	books, err := h.service.ListBooks(c.Request.Context(), filter, middleware.Can(c, authz.ContentWrite))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{Total: len(books)})
}

// Get handles GET /books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidBookID)
		return
	}

	book, err := h.service.GetBook(c.Request.Context(), id, middleware.Can(c, authz.ContentWrite))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Create handles POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	book, err := h.service.CreateBook(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// Update handles PATCH /books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidBookID)
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	book, err := h.service.UpdateBook(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, book)
}

// Delete handles DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidBookID)
		return
	}

	if err := h.service.DeleteBook(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}

// Download handles POST /books/:id/download
func (h *BookHandler) Download(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidBookID)
		return
	}

	result, err := h.service.RecordDownload(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Export handles GET /admin/books/export
func (h *BookHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.exporter.Export(c.Request.Context(), &buf); err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("library-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
