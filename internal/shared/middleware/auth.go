package middleware

import (
	"context"
	"strings"

	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/errs"
	"portfolio-backend/internal/shared/response"
	"portfolio-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const ContextKeyPrincipal = "principal"

// ProfileResolver load (hoặc tạo lần đầu) profile tương ứng với identity trong token
type ProfileResolver interface {
	ResolvePrincipal(ctx context.Context, identityID, email string) (*authz.Principal, error)
}

// Auth gom các middleware xác thực / phân quyền
type Auth struct {
	tokens   *jwt.Manager
	profiles ProfileResolver
}

func NewAuth(tokens *jwt.Manager, profiles ProfileResolver) *Auth {
	return &Auth{tokens: tokens, profiles: profiles}
}

// Optional gắn principal nếu có token hợp lệ, không có token vẫn cho qua.
// Token có nhưng sai → 401, tránh việc client tưởng mình đã đăng nhập.
func (a *Auth) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		if !a.authenticate(c) {
			return
		}
		c.Next()
	}
}

// Required bắt buộc token hợp lệ
func (a *Auth) Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPrincipal(c) == nil && !a.authenticate(c) {
			return
		}
		c.Next()
	}
}

// RequireCapability: chưa đăng nhập → 401, thiếu quyền → 403
func (a *Auth) RequireCapability(capability authz.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPrincipal(c) == nil && !a.authenticate(c) {
			return
		}

		if !GetPrincipal(c).Can(capability) {
			response.Error(c, errs.Forbidden("Missing capability "+string(capability)))
			c.Abort()
			return
		}
		c.Next()
	}
}

// authenticate verify bearer token và set principal, abort + false nếu thất bại
func (a *Auth) authenticate(c *gin.Context) bool {
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		response.Error(c, errs.Unauthorized("Missing or invalid authorization header"))
		c.Abort()
		return false
	}

	claims, err := a.tokens.ValidateAccessToken(token)
	if err != nil {
		log.Debug().Err(err).Str("request_id", c.GetString("request_id")).Msg("Token rejected")
		response.Error(c, errs.Unauthorized("Invalid or expired token"))
		c.Abort()
		return false
	}

	principal, err := a.profiles.ResolvePrincipal(c.Request.Context(), claims.Subject, claims.Email)
	if err != nil {
		response.Error(c, err)
		c.Abort()
		return false
	}

	c.Set(ContextKeyPrincipal, principal)
	return true
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// GetPrincipal trả về nil khi request anonymous
func GetPrincipal(c *gin.Context) *authz.Principal {
	v, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return nil
	}
	p, _ := v.(*authz.Principal)
	return p
}

// Can kiểm tra capability của người gọi hiện tại
func Can(c *gin.Context, capability authz.Capability) bool {
	return GetPrincipal(c).Can(capability)
}
