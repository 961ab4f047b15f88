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

	"portfolio-backend/internal/domains/profile/model"
	"portfolio-backend/internal/domains/profile/service"
	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*model.Profile
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{profiles: map[uuid.UUID]*model.Profile{}}
}

func (m *memoryRepo) add(email string, role authz.Role) *model.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := &model.Profile{ID: uuid.New(), IdentityID: "idp|" + email, Email: email, Role: role, CreatedAt: time.Now()}
	m.profiles[p.ID] = p
	return p
}

func (m *memoryRepo) Create(_ context.Context, p *model.Profile) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	cp.ID = uuid.New()
	m.profiles[cp.ID] = &cp
	return &cp, nil
}

func (m *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memoryRepo) find(match func(*model.Profile) bool) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if match(p) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, model.ErrProfileNotFound
}

func (m *memoryRepo) GetByIdentityID(_ context.Context, identityID string) (*model.Profile, error) {
	return m.find(func(p *model.Profile) bool { return p.IdentityID == identityID })
}

func (m *memoryRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	return m.find(func(p *model.Profile) bool { return strings.EqualFold(p.Email, email) })
}

func (m *memoryRepo) List(_ context.Context, filter model.ProfileFilter) ([]*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Profile{}
	for _, p := range m.profiles {
		if filter.Role != "" && string(p.Role) != filter.Role {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memoryRepo) Update(_ context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	if req.DisplayName != nil {
		p.DisplayName = req.DisplayName
	}
	if req.AvatarURL != nil {
		p.AvatarURL = req.AvatarURL
	}
	if req.Role != nil {
		p.Role = authz.Role(*req.Role)
	}
	cp := *p
	return &cp, nil
}

func (m *memoryRepo) LinkIdentity(_ context.Context, id uuid.UUID, identityID string) (*model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	p.IdentityID = identityID
	cp := *p
	return &cp, nil
}

func (m *memoryRepo) SetRoleByEmail(ctx context.Context, email string, role authz.Role) (*model.Profile, error) {
	p, err := m.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r := string(role)
	return m.Update(ctx, p.ID, model.UpdateProfileRequest{Role: &r})
}

// setupRouter gắn principal của actor như auth middleware
func setupRouter(repo *memoryRepo, actor *model.Profile) *gin.Engine {
	gin.SetMode(gin.TestMode)
	authorizer := authz.NewRoleAuthorizer()
	h := NewProfileHandler(service.NewProfileService(repo, authorizer, nil))

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextKeyPrincipal,
			authz.NewPrincipal(actor.ID, actor.IdentityID, actor.Email, actor.Role, authorizer))
		c.Next()
	})
	r.GET("/profiles/me", h.Me)
	r.GET("/profiles", h.List)
	r.GET("/profiles/:id", h.Get)
	r.PATCH("/profiles/:id", h.Update)
	return r
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
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

func TestMe(t *testing.T) {
	repo := newMemoryRepo()
	me := repo.add("me@example.com", authz.RoleMember)
	r := setupRouter(repo, me)

	code, env := do(t, r, http.MethodGet, "/profiles/me", "")
	require.Equal(t, http.StatusOK, code)

	var p model.Profile
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, me.ID, p.ID)
	assert.Equal(t, authz.RoleMember, p.Role)
}

func TestGet_OtherProfileHiddenFromMember(t *testing.T) {
	repo := newMemoryRepo()
	me := repo.add("me@example.com", authz.RoleMember)
	other := repo.add("other@example.com", authz.RoleEditor)

	code, env := do(t, setupRouter(repo, me), http.MethodGet, "/profiles/"+other.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "PROFILE_NOT_FOUND", env.Error.Code)

	admin := repo.add("admin@example.com", authz.RoleAdmin)
	code, _ = do(t, setupRouter(repo, admin), http.MethodGet, "/profiles/"+other.ID.String(), "")
	assert.Equal(t, http.StatusOK, code)

	code, env = do(t, setupRouter(repo, admin), http.MethodGet, "/profiles/nope", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_PROFILE_ID", env.Error.Code)
}

func TestUpdate_OwnProfile(t *testing.T) {
	repo := newMemoryRepo()
	me := repo.add("me@example.com", authz.RoleMember)
	r := setupRouter(repo, me)

	code, env := do(t, r, http.MethodPatch, "/profiles/"+me.ID.String(), `{"displayName":"  Minh  "}`)
	require.Equal(t, http.StatusOK, code)

	var p model.Profile
	require.NoError(t, json.Unmarshal(env.Data, &p))
	require.NotNil(t, p.DisplayName)
	assert.Equal(t, "Minh", *p.DisplayName)

	code, env = do(t, r, http.MethodPatch, "/profiles/"+me.ID.String(), `{}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "NO_CHANGES", env.Error.Code)
}

func TestUpdate_RoleRules(t *testing.T) {
	repo := newMemoryRepo()
	member := repo.add("member@example.com", authz.RoleMember)
	admin := repo.add("admin@example.com", authz.RoleAdmin)

	// member không tự nâng quyền
	code, env := do(t, setupRouter(repo, member), http.MethodPatch, "/profiles/"+member.ID.String(), `{"role":"admin"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "ROLE_CHANGE_FORBIDDEN", env.Error.Code)

	// member sửa profile người khác: 404 như GET, profile có tồn tại hay không đều giống nhau
	code, env = do(t, setupRouter(repo, member), http.MethodPatch, "/profiles/"+admin.ID.String(), `{"displayName":"x"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "PROFILE_NOT_FOUND", env.Error.Code)
	code, missing := do(t, setupRouter(repo, member), http.MethodPatch, "/profiles/"+uuid.NewString(), `{"displayName":"x"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, env.Error.Code, missing.Error.Code)
	unchanged, err := repo.GetByID(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Nil(t, unchanged.DisplayName)

	// admin không tự hạ quyền
	code, env = do(t, setupRouter(repo, admin), http.MethodPatch, "/profiles/"+admin.ID.String(), `{"role":"member"}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "SELF_DEMOTION", env.Error.Code)

	code, env = do(t, setupRouter(repo, admin), http.MethodPatch, "/profiles/"+member.ID.String(), `{"role":"editor"}`)
	require.Equal(t, http.StatusOK, code)
	var p model.Profile
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, authz.RoleEditor, p.Role)
}

func TestList_FilterByRole(t *testing.T) {
	repo := newMemoryRepo()
	admin := repo.add("admin@example.com", authz.RoleAdmin)
	repo.add("e1@example.com", authz.RoleEditor)
	repo.add("e2@example.com", authz.RoleEditor)
	r := setupRouter(repo, admin)

	code, env := do(t, r, http.MethodGet, "/profiles?role=EDITOR", "")
	require.Equal(t, http.StatusOK, code)
	var list []model.Profile
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)

	code, env = do(t, r, http.MethodGet, "/profiles?role=root", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_ROLE", env.Error.Code)
}
