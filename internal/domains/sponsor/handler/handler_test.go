package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"portfolio-backend/internal/domains/sponsor/model"
	"portfolio-backend/internal/domains/sponsor/service"
	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu       sync.Mutex
	sponsors map[uuid.UUID]*model.Sponsor
	seq      int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sponsors: map[uuid.UUID]*model.Sponsor{}}
}

func (r *memoryRepo) List(_ context.Context, f model.SponsorFilter) ([]*model.Sponsor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.Sponsor{}
	for _, s := range r.sponsors {
		if f.Active != nil && s.IsActive != *f.Active {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Sponsor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sponsors[id]
	if !ok {
		return nil, model.ErrSponsorNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memoryRepo) Create(_ context.Context, req model.CreateSponsorRequest) (*model.Sponsor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	s := &model.Sponsor{
		ID: uuid.New(), Name: req.Name, LogoURL: req.LogoURL, WebsiteURL: req.WebsiteURL,
		IsActive:  req.IsActive == nil || *req.IsActive,
		CreatedAt: time.Unix(int64(r.seq), 0),
	}
	if req.DisplayOrder != nil {
		s.DisplayOrder = *req.DisplayOrder
	}
	r.sponsors[s.ID] = s
	cp := *s
	return &cp, nil
}

func (r *memoryRepo) Update(_ context.Context, id uuid.UUID, req model.UpdateSponsorRequest) (*model.Sponsor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sponsors[id]
	if !ok {
		return nil, model.ErrSponsorNotFound
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		s.DisplayOrder = *req.DisplayOrder
	}
	cp := *s
	return &cp, nil
}

func (r *memoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sponsors[id]; !ok {
		return model.ErrSponsorNotFound
	}
	delete(r.sponsors, id)
	return nil
}

func (r *memoryRepo) IncrementClick(_ context.Context, id uuid.UUID) (*model.Sponsor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sponsors[id]
	if !ok || !s.IsActive {
		return nil, model.ErrSponsorNotFound
	}
	s.ClickCount++
	cp := *s
	return &cp, nil
}

func (r *memoryRepo) Stats(context.Context) (*model.SponsorStats, error) {
	return &model.SponsorStats{}, nil
}

func setupRouter(repo *memoryRepo, role authz.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewSponsorHandler(service.NewSponsorService(repo))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role != "" {
			c.Set(middleware.ContextKeyPrincipal,
				authz.NewPrincipal(uuid.New(), "idp|t", "t@example.com", role, authz.NewRoleAuthorizer()))
		}
		c.Next()
	})
	r.GET("/sponsors", h.List)
	r.POST("/sponsors", h.Create)
	r.GET("/sponsors/:id", h.Get)
	r.PATCH("/sponsors/:id", h.Update)
	r.DELETE("/sponsors/:id", h.Delete)
	r.POST("/sponsors/:id/click", h.Click)
	return r
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string                 `json:"code"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
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

func createSponsor(t *testing.T, r http.Handler, body string) model.Sponsor {
	t.Helper()
	code, env := do(t, r, http.MethodPost, "/sponsors", body)
	require.Equal(t, http.StatusCreated, code)
	var s model.Sponsor
	require.NoError(t, json.Unmarshal(env.Data, &s))
	return s
}

func names(t *testing.T, env envelope) []string {
	t.Helper()
	var list []model.Sponsor
	require.NoError(t, json.Unmarshal(env.Data, &list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Name)
	}
	return out
}

func TestCreate_DefaultsActive(t *testing.T) {
	r := setupRouter(newMemoryRepo(), authz.RoleAdmin)

	s := createSponsor(t, r, `{"name":"Acme","websiteUrl":"https://acme.example"}`)
	assert.True(t, s.IsActive)
	assert.Equal(t, 0, s.ClickCount)
}

func TestCreate_Validation(t *testing.T) {
	r := setupRouter(newMemoryRepo(), authz.RoleAdmin)

	code, env := do(t, r, http.MethodPost, "/sponsors", `{"name":"Acme","websiteUrl":"not a url","logoUrl":"//cdn/logo.png"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error.Details, "websiteUrl")
	assert.Contains(t, env.Error.Details, "logoUrl")

	code, env = do(t, r, http.MethodPost, "/sponsors", `{"websiteUrl":"https://ok.example"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, env.Error.Details, "name")
}

func TestOrderingAndActiveFilter(t *testing.T) {
	repo := newMemoryRepo()
	admin := setupRouter(repo, authz.RoleAdmin)
	public := setupRouter(repo, "")

	createSponsor(t, admin, `{"name":"B","displayOrder":1}`)
	createSponsor(t, admin, `{"name":"A","displayOrder":0}`)
	createSponsor(t, admin, `{"name":"C","displayOrder":1}`)
	createSponsor(t, admin, `{"name":"Hidden","isActive":false}`)

	_, env := do(t, admin, http.MethodGet, "/sponsors", "")
	assert.Equal(t, []string{"A", "Hidden", "B", "C"}, names(t, env))

	_, env = do(t, public, http.MethodGet, "/sponsors", "")
	assert.Equal(t, []string{"A", "B", "C"}, names(t, env))

	_, env = do(t, admin, http.MethodGet, "/sponsors?active=false", "")
	assert.Equal(t, []string{"Hidden"}, names(t, env))
}

func TestClick(t *testing.T) {
	repo := newMemoryRepo()
	admin := setupRouter(repo, authz.RoleAdmin)
	public := setupRouter(repo, "")

	s := createSponsor(t, admin, `{"name":"Acme","websiteUrl":"https://acme.example"}`)
	path := "/sponsors/" + s.ID.String()

	for want := 1; want <= 2; want++ {
		code, env := do(t, public, http.MethodPost, path+"/click", "")
		require.Equal(t, http.StatusOK, code)
		var res model.ClickResponse
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.Equal(t, want, res.ClickCount)
	}

	code, _ := do(t, admin, http.MethodPatch, path, `{"isActive":false}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, public, http.MethodPost, path+"/click", "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, public, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = do(t, admin, http.MethodGet, path, "")
	assert.Equal(t, http.StatusOK, code)
}

func TestDeleteAndNoChanges(t *testing.T) {
	r := setupRouter(newMemoryRepo(), authz.RoleAdmin)
	s := createSponsor(t, r, `{"name":"Acme"}`)
	path := "/sponsors/" + s.ID.String()

	code, env := do(t, r, http.MethodPatch, path, `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NO_CHANGES", env.Error.Code)

	code, _ = do(t, r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, r, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, code)
}
