package model

import (
	"strings"
	"time"

	"portfolio-backend/internal/shared/authz"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Profile là tài khoản nội bộ gắn với một identity của identity provider
type Profile struct {
	ID          uuid.UUID  `json:"id"`
	IdentityID  string     `json:"identityId"`
	Email       string     `json:"email"`
	DisplayName *string    `json:"displayName"`
	Role        authz.Role `json:"role"`
	AvatarURL   *string    `json:"avatarUrl"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// DefaultDisplayName lấy phần trước @ của email
func DefaultDisplayName(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// UpdateProfileRequest - PATCH /api/profiles/:id, field nil = giữ nguyên
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName"`
	AvatarURL   *string `json:"avatarUrl"`
	Role        *string `json:"role"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName,
			validation.NilOrNotEmpty.Error("display name cannot be empty"),
			validation.Length(1, 100),
		),
		validation.Field(&r.AvatarURL,
			validation.When(r.AvatarURL != nil && *r.AvatarURL != "", is.URL.Error("avatar must be a valid URL")),
		),
		validation.Field(&r.Role,
			validation.NilOrNotEmpty,
			validation.In(string(authz.RoleAdmin), string(authz.RoleEditor), string(authz.RoleMember)).
				Error("role must be one of admin, editor, member"),
		),
	)
}

// IsEmpty - request không có field nào
func (r UpdateProfileRequest) IsEmpty() bool {
	return r.DisplayName == nil && r.AvatarURL == nil && r.Role == nil
}

// ProfileFilter - query params của GET /api/profiles
type ProfileFilter struct {
	Role   string
	Search string
}
