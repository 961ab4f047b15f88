package service

import (
	"context"
	"errors"
	"strings"

	"portfolio-backend/internal/domains/profile/model"
	"portfolio-backend/internal/domains/profile/repository"
	"portfolio-backend/internal/shared/authz"
	"portfolio-backend/internal/shared/errs"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ServiceInterface interface {
	// EnsureProfile load profile theo identity, tạo mới ở lần đăng nhập đầu tiên
	EnsureProfile(ctx context.Context, identityID, email string) (*model.Profile, error)
	ResolvePrincipal(ctx context.Context, identityID, email string) (*authz.Principal, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	ListProfiles(ctx context.Context, filter model.ProfileFilter) ([]*model.Profile, error)
	UpdateProfile(ctx context.Context, actor *authz.Principal, id uuid.UUID, req model.UpdateProfileRequest) (*model.Profile, error)
	GrantRole(ctx context.Context, email, role string) (*model.Profile, error)
}

type profileService struct {
	repo        repository.Repository
	authorizer  authz.Authorizer
	adminEmails map[string]bool
}

func NewProfileService(repo repository.Repository, authorizer authz.Authorizer, adminEmails []string) ServiceInterface {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[strings.ToLower(strings.TrimSpace(e))] = true
	}
	return &profileService{
		repo:        repo,
		authorizer:  authorizer,
		adminEmails: admins,
	}
}

func (s *profileService) EnsureProfile(ctx context.Context, identityID, email string) (*model.Profile, error) {
	email = strings.TrimSpace(email)

	// 1. Đã đăng nhập trước đó
	p, err := s.repo.GetByIdentityID(ctx, identityID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, model.ErrProfileNotFound) {
		return nil, err
	}

	// 2. Profile được grant qua email trước khi đăng nhập (cmsctl profile grant)
	p, err = s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if !repository.IsPendingIdentity(p.IdentityID) {
			return nil, model.ErrEmailTaken
		}
		return s.repo.LinkIdentity(ctx, p.ID, identityID)
	case !errors.Is(err, model.ErrProfileNotFound):
		return nil, err
	}

	// 3. Lần đầu đăng nhập
	role := authz.RoleMember
	if s.adminEmails[strings.ToLower(email)] {
		role = authz.RoleAdmin
	}

	displayName := model.DefaultDisplayName(email)
	created, err := s.repo.Create(ctx, &model.Profile{
		IdentityID:  identityID,
		Email:       email,
		DisplayName: &displayName,
		Role:        role,
	})
	if err != nil {
		// Hai request đầu tiên chạy song song: request thua đọc lại bản đã tạo
		if errors.Is(err, model.ErrEmailTaken) {
			return s.repo.GetByIdentityID(ctx, identityID)
		}
		return nil, err
	}

	log.Info().
		Str("profile_id", created.ID.String()).
		Str("role", string(created.Role)).
		Msg("👤 Profile created on first sign-in")

	return created, nil
}

func (s *profileService) ResolvePrincipal(ctx context.Context, identityID, email string) (*authz.Principal, error) {
	p, err := s.EnsureProfile(ctx, identityID, email)
	if err != nil {
		return nil, err
	}
	return authz.NewPrincipal(p.ID, p.IdentityID, p.Email, p.Role, s.authorizer), nil
}

func (s *profileService) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *profileService) ListProfiles(ctx context.Context, filter model.ProfileFilter) ([]*model.Profile, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	if filter.Role != "" {
		role, ok := authz.ParseRole(filter.Role)
		if !ok {
			return nil, model.ErrInvalidRole
		}
		filter.Role = string(role)
	}
	return s.repo.List(ctx, filter)
}

// UpdateProfile: owner sửa profile của mình, profiles:manage sửa được mọi profile và đổi role
func (s *profileService) UpdateProfile(ctx context.Context, actor *authz.Principal, id uuid.UUID, req model.UpdateProfileRequest) (*model.Profile, error) {
	if actor == nil {
		return nil, errs.Unauthorized("Authentication required")
	}
	if req.DisplayName != nil {
		trimmed := strings.TrimSpace(*req.DisplayName)
		req.DisplayName = &trimmed
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		return nil, model.ErrNoChanges
	}

	canManage := actor.Can(authz.ProfilesManage)
	// giống GetProfile: profile của người khác coi như không tồn tại
	if actor.ProfileID != id && !canManage {
		return nil, model.ErrProfileNotFound
	}
	if req.Role != nil {
		if !canManage {
			return nil, model.ErrRoleForbidden
		}
		if actor.ProfileID == id && authz.Role(*req.Role) != actor.Role {
			return nil, model.ErrSelfDemotion
		}
	}

	return s.repo.Update(ctx, id, req)
}

func (s *profileService) GrantRole(ctx context.Context, email, role string) (*model.Profile, error) {
	r, ok := authz.ParseRole(role)
	if !ok {
		return nil, model.ErrInvalidRole
	}
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errs.BadRequest("INVALID_EMAIL", "A valid email is required")
	}
	return s.repo.SetRoleByEmail(ctx, email, r)
}
