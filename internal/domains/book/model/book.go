package model

import (
	"strings"
	"time"

	"portfolio-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Book là một đầu sách trong e-library
type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   *string   `json:"description"`
	CoverURL      *string   `json:"coverUrl"`
	FileURL       *string   `json:"fileUrl"`
	Category      *string   `json:"category"`
	IsPublished   bool      `json:"isPublished"`
	DownloadCount int       `json:"downloadCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// CreateBookRequest - POST /api/books
type CreateBookRequest struct {
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description *string `json:"description"`
	CoverURL    *string `json:"coverUrl"`
	FileURL     *string `json:"fileUrl"`
	Category    *string `json:"category"`
	IsPublished *bool   `json:"isPublished"`
}

func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
	r.Description = utils.TrimPtr(r.Description)
	r.CoverURL = utils.TrimPtr(r.CoverURL)
	r.FileURL = utils.TrimPtr(r.FileURL)
	r.Category = utils.TrimPtr(r.Category)
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.Required.Error("author is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.CoverURL, utils.OptionalLink(r.CoverURL)),
		validation.Field(&r.FileURL, utils.OptionalLink(r.FileURL)),
		validation.Field(&r.Category, validation.Length(0, 100)),
	)
}

// UpdateBookRequest - PATCH /api/books/:id, field nil = giữ nguyên
type UpdateBookRequest struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Description *string `json:"description"`
	CoverURL    *string `json:"coverUrl"`
	FileURL     *string `json:"fileUrl"`
	Category    *string `json:"category"`
	IsPublished *bool   `json:"isPublished"`
}

func (r *UpdateBookRequest) Normalize() {
	r.Title = utils.TrimPtrKeep(r.Title)
	r.Author = utils.TrimPtrKeep(r.Author)
	r.Description = utils.TrimPtrKeep(r.Description)
	r.CoverURL = utils.TrimPtrKeep(r.CoverURL)
	r.FileURL = utils.TrimPtrKeep(r.FileURL)
	r.Category = utils.TrimPtrKeep(r.Category)
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Author,
			validation.NilOrNotEmpty.Error("author cannot be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.CoverURL, utils.OptionalLink(r.CoverURL)),
		validation.Field(&r.FileURL, utils.OptionalLink(r.FileURL)),
		validation.Field(&r.Category, validation.Length(0, 100)),
	)
}

func (r UpdateBookRequest) IsEmpty() bool {
	return r.Title == nil && r.Author == nil && r.Description == nil &&
		r.CoverURL == nil && r.FileURL == nil && r.Category == nil && r.IsPublished == nil
}

// BookFilter - query params của GET /api/books
type BookFilter struct {
	Published *bool
	Category  string
	Search    string
}

// DownloadResponse - POST /api/books/:id/download
type DownloadResponse struct {
	ID            uuid.UUID `json:"id"`
	DownloadCount int       `json:"downloadCount"`
	FileURL       *string   `json:"fileUrl"`
}

// BookStats - số liệu cho dashboard
type BookStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Downloads int `json:"downloads"`
}
