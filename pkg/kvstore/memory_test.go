package kvstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "k", map[string]int{"page": 7}, 0))

	var got map[string]int
	require.NoError(t, s.Get(ctx, "k", &got))
	assert.Equal(t, 7, got["page"])

	err := s.Get(ctx, "missing", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", 1, time.Minute))

	var v int
	require.NoError(t, s.Get(ctx, "k", &v))

	now = now.Add(time.Minute)
	assert.ErrorIs(t, s.Get(ctx, "k", &v), ErrNotFound)
}

func TestMemoryStore_IncrementWithTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	for i := int64(1); i <= 3; i++ {
		n, err := s.Increment(ctx, "counter", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, n)
		// TTL chỉ đặt lần đầu, không bị gia hạn
		now = now.Add(10 * time.Second)
	}

	now = now.Add(31 * time.Second)
	n, err := s.Increment(ctx, "counter", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryStore_IncrementSetsMissingTTL(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	// key không có TTL (VD lần đặt trước bị lỗi)
	_, err := s.Increment(ctx, "counter", 0)
	require.NoError(t, err)

	n, err := s.Increment(ctx, "counter", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	now = now.Add(time.Minute)
	n, err = s.Increment(ctx, "counter", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestMemoryStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "a", "x", 0))
	require.NoError(t, s.Delete(ctx, "a", "b"))

	var v string
	assert.ErrorIs(t, s.Get(ctx, "a", &v), ErrNotFound)
}
