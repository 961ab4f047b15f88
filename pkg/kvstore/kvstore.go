package kvstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound trả về khi key không tồn tại
var ErrNotFound = errors.New("kvstore: key not found")

// Store là key-value store nhỏ dùng cho reading progress và rate limit.
// Không phải cache: giá trị ở đây là nguồn dữ liệu duy nhất.
type Store interface {
	// Get unmarshal JSON value vào dest, ErrNotFound khi key không tồn tại
	Get(ctx context.Context, key string, dest interface{}) error

	// Set lưu value dạng JSON, ttl = 0 nghĩa là không hết hạn
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// Increment tăng counter và trả về giá trị mới (key mới bắt đầu từ 1).
	// ttl > 0 thì đặt TTL cho key nếu key chưa có TTL, cùng một lệnh với INCR.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)

	Ping(ctx context.Context) error
}
