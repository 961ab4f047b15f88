package model

import (
	"strings"
	"time"

	"portfolio-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type Blog struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         *string    `json:"excerpt"`
	Content         *string    `json:"content"`
	CoverImage      *string    `json:"coverImage"`
	MetaTitle       *string    `json:"metaTitle"`
	MetaDescription *string    `json:"metaDescription"`
	MetaKeywords    *string    `json:"metaKeywords"`
	IsPublished     bool       `json:"isPublished"`
	PublishedAt     *time.Time `json:"publishedAt"`
	AuthorID        *uuid.UUID `json:"authorId"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// CreateBlogRequest - POST /api/blogs
// Slug rỗng → sinh từ title
type CreateBlogRequest struct {
	Title           string  `json:"title"`
	Slug            *string `json:"slug"`
	Excerpt         *string `json:"excerpt"`
	Content         *string `json:"content"`
	CoverImage      *string `json:"coverImage"`
	MetaTitle       *string `json:"metaTitle"`
	MetaDescription *string `json:"metaDescription"`
	MetaKeywords    *string `json:"metaKeywords"`
	IsPublished     *bool   `json:"isPublished"`
}

func (r *CreateBlogRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Slug = utils.TrimPtr(r.Slug)
	r.Excerpt = utils.TrimPtr(r.Excerpt)
	r.CoverImage = utils.TrimPtr(r.CoverImage)
	r.MetaTitle = utils.TrimPtr(r.MetaTitle)
	r.MetaDescription = utils.TrimPtr(r.MetaDescription)
	r.MetaKeywords = utils.TrimPtr(r.MetaKeywords)
}

func (r CreateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Excerpt, validation.Length(0, 500)),
		validation.Field(&r.CoverImage, utils.OptionalLink(r.CoverImage)),
		validation.Field(&r.MetaTitle, validation.Length(0, 255)),
		validation.Field(&r.MetaDescription, validation.Length(0, 500)),
	)
}

// UpdateBlogRequest - PATCH /api/blogs/:id
// Slug chỉ đổi khi được gửi lên, đổi title không tự sinh lại slug
type UpdateBlogRequest struct {
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	Excerpt         *string `json:"excerpt"`
	Content         *string `json:"content"`
	CoverImage      *string `json:"coverImage"`
	MetaTitle       *string `json:"metaTitle"`
	MetaDescription *string `json:"metaDescription"`
	MetaKeywords    *string `json:"metaKeywords"`
	IsPublished     *bool   `json:"isPublished"`
}

func (r *UpdateBlogRequest) Normalize() {
	r.Title = utils.TrimPtrKeep(r.Title)
	r.Slug = utils.TrimPtrKeep(r.Slug)
	r.Excerpt = utils.TrimPtrKeep(r.Excerpt)
	r.CoverImage = utils.TrimPtrKeep(r.CoverImage)
	r.MetaTitle = utils.TrimPtrKeep(r.MetaTitle)
	r.MetaDescription = utils.TrimPtrKeep(r.MetaDescription)
	r.MetaKeywords = utils.TrimPtrKeep(r.MetaKeywords)
}

func (r UpdateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty.Error("title cannot be empty"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Slug, validation.NilOrNotEmpty.Error("slug cannot be empty")),
		validation.Field(&r.Excerpt, validation.Length(0, 500)),
		validation.Field(&r.CoverImage, utils.OptionalLink(r.CoverImage)),
		validation.Field(&r.MetaTitle, validation.Length(0, 255)),
		validation.Field(&r.MetaDescription, validation.Length(0, 500)),
	)
}

func (r UpdateBlogRequest) IsEmpty() bool {
	return r.Title == nil && r.Slug == nil && r.Excerpt == nil && r.Content == nil &&
		r.CoverImage == nil && r.MetaTitle == nil && r.MetaDescription == nil &&
		r.MetaKeywords == nil && r.IsPublished == nil
}

type BlogFilter struct {
	Published *bool
	Search    string
}

type BlogStats struct {
	Total     int `json:"total"`
	Published int `json:"published"`
}
