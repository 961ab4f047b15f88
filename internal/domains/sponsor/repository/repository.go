package repository

import (
	"context"

	"portfolio-backend/internal/domains/sponsor/model"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, filter model.SponsorFilter) ([]*model.Sponsor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Sponsor, error)
	Create(ctx context.Context, req model.CreateSponsorRequest) (*model.Sponsor, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateSponsorRequest) (*model.Sponsor, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementClick tăng click_count atomic, chỉ với sponsor đang active
	IncrementClick(ctx context.Context, id uuid.UUID) (*model.Sponsor, error)
	Stats(ctx context.Context) (*model.SponsorStats, error)
}
