package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// DefaultPage trả về khi reader chưa lưu tiến độ
const DefaultPage = 1

// Progress - trang đang đọc của một reader với một cuốn sách
type Progress struct {
	BookID    uuid.UUID  `json:"bookId"`
	Page      int        `json:"page"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// SaveProgressRequest - PUT /api/books/:id/progress
type SaveProgressRequest struct {
	Page int `json:"page"`
}

func (r SaveProgressRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page,
			validation.Required.Error("page is required"),
			validation.Min(1).Error("page must be at least 1"),
		),
	)
}
