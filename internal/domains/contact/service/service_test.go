package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"portfolio-backend/internal/domains/contact/model"
	"portfolio-backend/pkg/kvstore"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) List(ctx context.Context, filter model.ContactFilter) ([]*model.Contact, error) {
	args := m.Called(ctx, filter)
	out, _ := args.Get(0).([]*model.Contact)
	return out, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Contact, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Contact)
	return c, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, req model.CreateContactRequest) (*model.Contact, error) {
	args := m.Called(ctx, req)
	c, _ := args.Get(0).(*model.Contact)
	return c, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, req model.UpdateContactRequest) (*model.Contact, error) {
	args := m.Called(ctx, id, req)
	c, _ := args.Get(0).(*model.Contact)
	return c, args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) Stats(ctx context.Context) (*model.ContactStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*model.ContactStats)
	return s, args.Error(1)
}

// brokenStore giả lập Redis down
type brokenStore struct {
	kvstore.Store
}

func (brokenStore) Increment(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("connection refused")
}

// lostTTLStore làm mất TTL của lần increment đầu tiên, như khi EXPIRE bị lỗi
type lostTTLStore struct {
	*kvstore.MemoryStore
	calls int
}

func (s *lostTTLStore) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	s.calls++
	if s.calls == 1 {
		ttl = 0
	}
	return s.MemoryStore.Increment(ctx, key, ttl)
}

func validRequest() model.CreateContactRequest {
	return model.CreateContactRequest{Name: " Lan ", Email: " Lan@Example.COM ", Message: "Xin chào"}
}

func TestSubmitContact_NormalizesAndCreates(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	repo.On("Create", ctx, mock.MatchedBy(func(req model.CreateContactRequest) bool {
		return req.Name == "Lan" && req.Email == "lan@example.com" && req.Subject == nil
	})).Return(&model.Contact{ID: uuid.New()}, nil)

	svc := NewContactService(repo, nil)
	_, err := svc.SubmitContact(ctx, "10.0.0.1", validRequest())
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestSubmitContact_Validation(t *testing.T) {
	tests := []struct {
		name  string
		req   model.CreateContactRequest
		field string
	}{
		{"missing name", model.CreateContactRequest{Email: "a@b.co", Message: "hi"}, "name"},
		{"bad email", model.CreateContactRequest{Name: "A", Email: "not-an-email", Message: "hi"}, "email"},
		{"blank message", model.CreateContactRequest{Name: "A", Email: "a@b.co", Message: "   "}, "message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)
			_, err := NewContactService(repo, nil).SubmitContact(context.Background(), "ip", tt.req)

			var vErrs validation.Errors
			require.ErrorAs(t, err, &vErrs)
			assert.Contains(t, vErrs, tt.field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitContact_RateLimitPerIP(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := kvstore.NewMemoryStore().WithClock(func() time.Time { return now })

	repo := new(mockRepo)
	repo.On("Create", ctx, mock.Anything).Return(&model.Contact{ID: uuid.New()}, nil)

	svc := NewContactService(repo, NewRateLimiter(store, RateKeyPrefix, 2, time.Hour))

	for i := 0; i < 2; i++ {
		_, err := svc.SubmitContact(ctx, "1.1.1.1", validRequest())
		require.NoError(t, err)
	}

	_, err := svc.SubmitContact(ctx, "1.1.1.1", validRequest())
	assert.ErrorIs(t, err, model.ErrTooManyMessages)

	// IP khác không bị ảnh hưởng
	_, err = svc.SubmitContact(ctx, "2.2.2.2", validRequest())
	assert.NoError(t, err)

	// hết window thì được gửi lại
	now = now.Add(time.Hour + time.Second)
	_, err = svc.SubmitContact(ctx, "1.1.1.1", validRequest())
	assert.NoError(t, err)

	repo.AssertNumberOfCalls(t, "Create", 4)
}

func TestRateLimiter_RecoversFromLostTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &lostTTLStore{MemoryStore: kvstore.NewMemoryStore().WithClock(func() time.Time { return now })}
	limiter := NewRateLimiter(store, RateKeyPrefix, 1, time.Hour)

	ok, err := limiter.Allow(ctx, "1.1.1.1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = limiter.Allow(ctx, "1.1.1.1")
	require.NoError(t, err)
	assert.False(t, ok)

	now = now.Add(48 * time.Hour)
	ok, err = limiter.Allow(ctx, "1.1.1.1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubmitContact_LimiterDownStillAccepts(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	repo.On("Create", ctx, mock.Anything).Return(&model.Contact{ID: uuid.New()}, nil)

	svc := NewContactService(repo, NewRateLimiter(brokenStore{}, RateKeyPrefix, 1, time.Hour))
	_, err := svc.SubmitContact(ctx, "1.1.1.1", validRequest())
	assert.NoError(t, err)
}

func TestUpdateContact(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	read := true

	repo := new(mockRepo)
	repo.On("Update", ctx, id, model.UpdateContactRequest{IsRead: &read}).Return(&model.Contact{ID: id, IsRead: true}, nil)
	svc := NewContactService(repo, nil)

	c, err := svc.UpdateContact(ctx, id, model.UpdateContactRequest{IsRead: &read})
	require.NoError(t, err)
	assert.True(t, c.IsRead)

	_, err = svc.UpdateContact(ctx, id, model.UpdateContactRequest{})
	assert.ErrorIs(t, err, model.ErrNoChanges)
}
