package model

import (
	"strings"
	"time"

	"portfolio-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// Contact là một message gửi từ form liên hệ public
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   *string   `json:"subject"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateContactRequest - POST /api/contacts (public)
type CreateContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Subject *string `json:"subject"`
	Message string  `json:"message"`
}

func (r *CreateContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Subject = utils.TrimPtr(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}

func (r CreateContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
		),
		validation.Field(&r.Subject, validation.Length(0, 255)),
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(1, 5000),
		),
	)
}

// UpdateContactRequest - PATCH /api/contacts/:id, chủ yếu để toggle isRead
type UpdateContactRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Subject *string `json:"subject"`
	Message *string `json:"message"`
	IsRead  *bool   `json:"isRead"`
}

func (r *UpdateContactRequest) Normalize() {
	r.Name = utils.TrimPtrKeep(r.Name)
	r.Email = utils.TrimPtrKeep(r.Email)
	if r.Email != nil {
		lower := strings.ToLower(*r.Email)
		r.Email = &lower
	}
	r.Subject = utils.TrimPtrKeep(r.Subject)
	r.Message = utils.TrimPtrKeep(r.Message)
}

func (r UpdateContactRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty.Error("name cannot be empty"), validation.Length(1, 255)),
		validation.Field(&r.Email, validation.NilOrNotEmpty.Error("email cannot be empty"), is.EmailFormat),
		validation.Field(&r.Subject, validation.Length(0, 255)),
		validation.Field(&r.Message, validation.NilOrNotEmpty.Error("message cannot be empty"), validation.Length(1, 5000)),
	)
}

func (r UpdateContactRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Subject == nil && r.Message == nil && r.IsRead == nil
}

type ContactFilter struct {
	Read *bool
}

type ContactStats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
}
