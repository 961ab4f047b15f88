package storage

import (
	"context"
	"errors"
)

// ErrObjectNotFound trả về khi key không tồn tại trong bucket
var ErrObjectNotFound = errors.New("storage: object not found")

// ObjectStore lưu bytes theo key, media service chỉ phụ thuộc interface này
type ObjectStore interface {
	// Put ghi object và trả về public URL
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete bỏ qua key rỗng, key không tồn tại không phải lỗi
	Delete(ctx context.Context, keys ...string) error
	// URL trả về public URL của key mà không cần gọi network
	URL(key string) string
}
