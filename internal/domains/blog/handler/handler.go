package handler

import (
	"net/http"

	"portfolio-backend/internal/domains/blog/model"
	"portfolio-backend/internal/domains/blog/service"
	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/middleware"
	"portfolio-backend/internal/shared/response"
	"portfolio-backend/internal/shared/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BlogHandler struct {
	service service.ServiceInterface
}

func NewBlogHandler(service service.ServiceInterface) *BlogHandler {
	return &BlogHandler{service: service}
}

// List handles GET /blogs?published=&search=
func (h *BlogHandler) List(c *gin.Context) {
	published, err := utils.QueryBool(c, "published")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	filter := model.BlogFilter{Published: published, Search: c.Query("search")}

	blogs, err := h.service.ListBlogs(c.Request.Context(), filter, middleware.Can(c, authz.ContentWrite))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, blogs, &response.Meta{Total: len(blogs)})
}

// Get handles GET /blogs/:id
func (h *BlogHandler) Get(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidBlogID)
		return
	}

	blog, err := h.service.GetBlog(c.Request.Context(), id, middleware.Can(c, authz.ContentWrite))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, blog)
}

// GetBySlug handles GET /blogs/slug/:slug
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	blog, err := h.service.GetBlogBySlug(c.Request.Context(), c.Param("slug"), middleware.Can(c, authz.ContentWrite))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, blog)
}

// Create handles POST /blogs, author = người gọi
func (h *BlogHandler) Create(c *gin.Context) {
	var req model.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	var authorID *uuid.UUID
	if p := middleware.GetPrincipal(c); p != nil {
		authorID = &p.ProfileID
	}

	blog, err := h.service.CreateBlog(c.Request.Context(), authorID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, blog)
}

// Update handles PATCH /blogs/:id
func (h *BlogHandler) Update(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidBlogID)
		return
	}

	var req model.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	blog, err := h.service.UpdateBlog(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, blog)
}

// Delete handles DELETE /blogs/:id
func (h *BlogHandler) Delete(c *gin.Context) {
	id, ok := utils.ParamUUID(c, "id")
	if !ok {
		response.Error(c, model.ErrInvalidBlogID)
		return
	}

	if err := h.service.DeleteBlog(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id})
}
