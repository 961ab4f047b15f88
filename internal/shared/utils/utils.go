package utils

import (
	"strings"

	"github.com/google/uuid"
)

// IsValidUUID - Kiểm tra format UUID hợp lệ
func IsValidUUID(u string) bool {
	_, err := uuid.Parse(u)
	return err == nil && len(u) == 36
}

// TrimPtr trim string pointer, nil nếu rỗng sau khi trim
func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// TrimPtrKeep trim nhưng giữ chuỗi rỗng, dùng cho PATCH: "" nghĩa là xóa giá trị
func TrimPtrKeep(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// EmptyToNil chuyển "" thành nil để ghi NULL xuống DB
func EmptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func StringPtr(s string) *string {
	return &s
}

func BoolPtr(b bool) *bool {
	return &b
}
