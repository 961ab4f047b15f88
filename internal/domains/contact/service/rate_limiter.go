package service

import (
	"context"
	"fmt"
	"time"

	"portfolio-backend/pkg/kvstore"
)

// RateLimiter đếm số lần theo key trong một fixed window
type RateLimiter struct {
	store  kvstore.Store
	prefix string
	limit  int
	window time.Duration
}

// NewRateLimiter: limit <= 0 thì tắt giới hạn
func NewRateLimiter(store kvstore.Store, prefix string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{store: store, prefix: prefix, limit: limit, window: window}
}

// Allow tăng counter của key và báo còn trong limit hay không
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.limit <= 0 {
		return true, nil
	}

	// window bắt đầu từ request đầu tiên, TTL không bị gia hạn bởi các request sau
	count, err := l.store.Increment(ctx, l.prefix+key, l.window)
	if err != nil {
		return false, fmt.Errorf("rate limit increment: %w", err)
	}
	return count <= int64(l.limit), nil
}
