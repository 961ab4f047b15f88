package repository

import (
	"context"
	"testing"
	"time"

	"portfolio-backend/internal/domains/progress/model"
	"portfolio-backend/pkg/kvstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	reader := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	book := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	assert.Equal(t,
		"reader:11111111-1111-1111-1111-111111111111:book-progress-22222222-2222-2222-2222-222222222222",
		Key(reader, book))
}

func TestKVRepository_SaveGetExpire(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := kvstore.NewMemoryStore().WithClock(func() time.Time { return now })
	repo := NewKVRepository(store, 24*time.Hour)

	reader, book := uuid.New(), uuid.New()

	p, err := repo.Get(ctx, reader, book)
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, repo.Save(ctx, reader, model.Progress{BookID: book, Page: 42}))

	p, err = repo.Get(ctx, reader, book)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 42, p.Page)

	now = now.Add(25 * time.Hour)
	p, err = repo.Get(ctx, reader, book)
	require.NoError(t, err)
	assert.Nil(t, p)
}
