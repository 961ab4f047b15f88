package repository

import (
	"context"

	"portfolio-backend/internal/domains/contact/model"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context, filter model.ContactFilter) ([]*model.Contact, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Contact, error)
	Create(ctx context.Context, req model.CreateContactRequest) (*model.Contact, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateContactRequest) (*model.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*model.ContactStats, error)
}
