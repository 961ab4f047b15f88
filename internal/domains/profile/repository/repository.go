package repository

import (
	"context"

	"portfolio-backend/internal/domains/profile/model"
	"portfolio-backend/internal/shared/authz"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *model.Profile) (*model.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	GetByIdentityID(ctx context.Context, identityID string) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	List(ctx context.Context, filter model.ProfileFilter) ([]*model.Profile, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateProfileRequest) (*model.Profile, error)
	// LinkIdentity gắn identity mới vào profile có sẵn (profile được grant qua email trước khi đăng nhập)
	LinkIdentity(ctx context.Context, id uuid.UUID, identityID string) (*model.Profile, error)
	SetRoleByEmail(ctx context.Context, email string, role authz.Role) (*model.Profile, error)
}
