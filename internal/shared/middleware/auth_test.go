package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeResolver struct {
	role  authz.Role
	calls int
}

func (f *fakeResolver) ResolvePrincipal(_ context.Context, identityID, email string) (*authz.Principal, error) {
	f.calls++
	return authz.NewPrincipal(uuid.New(), identityID, email, f.role, authz.NewRoleAuthorizer()), nil
}

func setupAuthRouter(role authz.Role) (*gin.Engine, *jwt.Manager, *fakeResolver) {
	gin.SetMode(gin.TestMode)

	tokens := jwt.NewManager("test-secret", "")
	resolver := &fakeResolver{role: role}
	auth := NewAuth(tokens, resolver)

	r := gin.New()
	r.GET("/public", auth.Optional(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"write": Can(c, authz.ContentWrite)})
	})
	r.GET("/me", auth.Required(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": GetPrincipal(c).Email})
	})
	r.GET("/messages", auth.RequireCapability(authz.MessagesRead), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens, resolver
}

func doRequest(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_Optional(t *testing.T) {
	r, tokens, resolver := setupAuthRouter(authz.RoleEditor)

	w := doRequest(r, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"write":false}`, w.Body.String())
	assert.Equal(t, 0, resolver.calls)

	token, err := tokens.GenerateAccessToken("idp|1", "ed@example.com", time.Hour)
	require.NoError(t, err)

	w = doRequest(r, "/public", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"write":true}`, w.Body.String())

	w = doRequest(r, "/public", "broken")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Required(t *testing.T) {
	r, tokens, _ := setupAuthRouter(authz.RoleMember)

	w := doRequest(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := tokens.GenerateAccessToken("idp|2", "m@example.com", time.Hour)
	require.NoError(t, err)

	w = doRequest(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"m@example.com"}`, w.Body.String())
}

func TestAuth_RequireCapability(t *testing.T) {
	tests := []struct {
		name       string
		role       authz.Role
		withToken  bool
		wantStatus int
	}{
		{"anonymous", authz.RoleAdmin, false, http.StatusUnauthorized},
		{"editor lacks messages:read", authz.RoleEditor, true, http.StatusForbidden},
		{"member", authz.RoleMember, true, http.StatusForbidden},
		{"admin", authz.RoleAdmin, true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, tokens, _ := setupAuthRouter(tt.role)

			var token string
			if tt.withToken {
				var err error
				token, err = tokens.GenerateAccessToken("idp|3", "x@example.com", time.Hour)
				require.NoError(t, err)
			}

			w := doRequest(r, "/messages", token)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestBearerToken(t *testing.T) {
	tok, ok := bearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = bearerToken("Basic abc")
	assert.False(t, ok)

	_, ok = bearerToken("Bearer ")
	assert.False(t, ok)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"http://localhost:3000"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
