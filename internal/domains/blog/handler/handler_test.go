package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"portfolio-backend/internal/domains/blog/model"
	"portfolio-backend/internal/domains/blog/service"
	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepo giữ ràng buộc unique slug giống blogs_slug_key
type memoryRepo struct {
	mu    sync.Mutex
	blogs map[uuid.UUID]*model.Blog
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{blogs: map[uuid.UUID]*model.Blog{}}
}

func (r *memoryRepo) slugTaken(slug string, except uuid.UUID) bool {
	for id, b := range r.blogs {
		if b.Slug == slug && id != except {
			return true
		}
	}
	return false
}

func (r *memoryRepo) List(_ context.Context, f model.BlogFilter) ([]*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Blog{}
	for _, b := range r.blogs {
		if f.Published != nil && b.IsPublished != *f.Published {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[id]
	if !ok {
		return nil, model.ErrBlogNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memoryRepo) GetBySlug(_ context.Context, slug string) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.blogs {
		if b.Slug == slug {
			cp := *b
			return &cp, nil
		}
	}
	return nil, model.ErrBlogNotFound
}

func (r *memoryRepo) Create(_ context.Context, blog *model.Blog) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slugTaken(blog.Slug, uuid.Nil) {
		return nil, model.ErrBlogSlugExists
	}
	b := *blog
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.blogs[b.ID] = &b
	cp := b
	return &cp, nil
}

func (r *memoryRepo) Update(_ context.Context, id uuid.UUID, req model.UpdateBlogRequest) (*model.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.blogs[id]
	if !ok {
		return nil, model.ErrBlogNotFound
	}
	if req.Slug != nil {
		if r.slugTaken(*req.Slug, id) {
			return nil, model.ErrBlogSlugExists
		}
		b.Slug = *req.Slug
	}
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.IsPublished != nil {
		b.IsPublished = *req.IsPublished
		if b.IsPublished && b.PublishedAt == nil {
			now := time.Now()
			b.PublishedAt = &now
		}
	}
	cp := *b
	return &cp, nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.blogs[id]; !ok {
		return model.ErrBlogNotFound
	}
	delete(r.blogs, id)
	return nil
}

func (r *memoryRepo) Stats(context.Context) (*model.BlogStats, error) {
	return &model.BlogStats{}, nil
}

func setupRouter(repo *memoryRepo, role authz.Role) (*gin.Engine, uuid.UUID) {
	gin.SetMode(gin.TestMode)
	h := NewBlogHandler(service.NewBlogService(repo))
	profileID := uuid.New()

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role != "" {
			c.Set(middleware.ContextKeyPrincipal,
				authz.NewPrincipal(profileID, "idp|t", "t@example.com", role, authz.NewRoleAuthorizer()))
		}
		c.Next()
	})
	r.GET("/blogs", h.List)
	r.POST("/blogs", h.Create)
	r.GET("/blogs/slug/:slug", h.GetBySlug)
	r.GET("/blogs/:id", h.Get)
	r.PATCH("/blogs/:id", h.Update)
	r.DELETE("/blogs/:id", h.Delete)
	return r, profileID
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string                 `json:"code"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
	Meta *struct {
		Total int `json:"total"`
	} `json:"meta"`
}

func do(t *testing.T, r http.Handler, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w.Code, env
}

func decodeBlog(t *testing.T, env envelope) model.Blog {
	t.Helper()
	var b model.Blog
	require.NoError(t, json.Unmarshal(env.Data, &b))
	return b
}

func TestCreate_SetsAuthorAndSlug(t *testing.T) {
	r, profileID := setupRouter(newMemoryRepo(), authz.RoleEditor)

	code, env := do(t, r, http.MethodPost, "/blogs", `{"title":"Hello, World! 2024"}`)
	require.Equal(t, http.StatusCreated, code)

	b := decodeBlog(t, env)
	assert.Equal(t, "hello-world-2024", b.Slug)
	require.NotNil(t, b.AuthorID)
	assert.Equal(t, profileID, *b.AuthorID)
	assert.False(t, b.IsPublished)
	assert.Nil(t, b.PublishedAt)
}

func TestCreate_DuplicateSlug(t *testing.T) {
	r, _ := setupRouter(newMemoryRepo(), authz.RoleAdmin)

	code, _ := do(t, r, http.MethodPost, "/blogs", `{"title":"Same Title"}`)
	require.Equal(t, http.StatusCreated, code)

	code, env := do(t, r, http.MethodPost, "/blogs", `{"title":"Other","slug":"same-title"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "BLOG_SLUG_EXISTS", env.Error.Code)
}

func TestCreate_Validation(t *testing.T) {
	r, _ := setupRouter(newMemoryRepo(), authz.RoleAdmin)

	code, env := do(t, r, http.MethodPost, "/blogs", `{"title":"  "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error.Details, "title")
}

func TestPublishFlow(t *testing.T) {
	repo := newMemoryRepo()
	admin, _ := setupRouter(repo, authz.RoleAdmin)
	public, _ := setupRouter(repo, "")

	_, env := do(t, admin, http.MethodPost, "/blogs", `{"title":"Draft post"}`)
	b := decodeBlog(t, env)

	code, _ := do(t, public, http.MethodGet, "/blogs/slug/draft-post", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, public, http.MethodGet, "/blogs/"+b.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, code)

	code, env = do(t, admin, http.MethodPatch, "/blogs/"+b.ID.String(), `{"isPublished":true}`)
	require.Equal(t, http.StatusOK, code)
	published := decodeBlog(t, env)
	require.NotNil(t, published.PublishedAt)

	code, env = do(t, public, http.MethodGet, "/blogs/slug/Draft-Post", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, b.ID, decodeBlog(t, env).ID)

	_, env = do(t, public, http.MethodGet, "/blogs?published=false", "")
	assert.Equal(t, 1, env.Meta.Total)
}

func TestUpdate_NoChangesAndInvalidID(t *testing.T) {
	r, _ := setupRouter(newMemoryRepo(), authz.RoleAdmin)

	_, env := do(t, r, http.MethodPost, "/blogs", `{"title":"Post"}`)
	b := decodeBlog(t, env)

	code, env := do(t, r, http.MethodPatch, "/blogs/"+b.ID.String(), `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NO_CHANGES", env.Error.Code)

	code, env = do(t, r, http.MethodDelete, "/blogs/nope", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_BLOG_ID", env.Error.Code)
}
