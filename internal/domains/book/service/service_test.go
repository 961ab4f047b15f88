package service

import (
	"context"
	"testing"

	"portfolio-backend/internal/domains/book/model"
	"portfolio-backend/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) bookResult(args mock.Arguments) (*model.Book, error) {
	b, _ := args.Get(0).(*model.Book)
	return b, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter model.BookFilter) ([]*model.Book, error) {
	args := m.Called(ctx, filter)
	books, _ := args.Get(0).([]*model.Book)
	return books, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return m.bookResult(m.Called(ctx, id))
}

func (m *mockRepo) Create(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	return m.bookResult(m.Called(ctx, req))
}

func (m *mockRepo) Update(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	return m.bookResult(m.Called(ctx, id, req))
}

func (m *mockRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) IncrementDownload(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return m.bookResult(m.Called(ctx, id))
}

func (m *mockRepo) Stats(ctx context.Context) (*model.BookStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*model.BookStats)
	return s, args.Error(1)
}

func TestCreateBook_Valid(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	repo.On("Create", ctx, mock.MatchedBy(func(req model.CreateBookRequest) bool {
		return req.Title == "The Go Programming Language" && req.Author == "Donovan"
	})).Return(&model.Book{ID: uuid.New(), Title: "The Go Programming Language"}, nil)

	b, err := NewBookService(repo).CreateBook(ctx, model.CreateBookRequest{
		Title:  "  The Go Programming Language ",
		Author: "Donovan",
	})
	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language", b.Title)
	repo.AssertExpectations(t)
}

func TestCreateBook_MissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		req   model.CreateBookRequest
		field string
	}{
		{"missing title", model.CreateBookRequest{Author: "A"}, "title"},
		{"blank author", model.CreateBookRequest{Title: "T", Author: "   "}, "author"},
		{"bad cover url", model.CreateBookRequest{Title: "T", Author: "A", CoverURL: utils.StringPtr("ftp://x")}, "coverUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockRepo)

			_, err := NewBookService(repo).CreateBook(context.Background(), tt.req)

			var vErrs validation.Errors
			require.ErrorAs(t, err, &vErrs)
			assert.Contains(t, vErrs, tt.field)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestListBooks_ForcesPublishedForPublic(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepo)
	repo.On("List", ctx, mock.MatchedBy(func(f model.BookFilter) bool {
		return f.Published != nil && *f.Published
	})).Return([]*model.Book{}, nil).Once()
	repo.On("List", ctx, model.BookFilter{Search: "go"}).Return([]*model.Book{}, nil).Once()

	svc := NewBookService(repo)

	// public hỏi cả bản nháp vẫn chỉ nhận published
	_, err := svc.ListBooks(ctx, model.BookFilter{Published: utils.BoolPtr(false)}, false)
	require.NoError(t, err)

	_, err = svc.ListBooks(ctx, model.BookFilter{Search: " go "}, true)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestGetBook_HidesDrafts(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := new(mockRepo)
	repo.On("GetByID", ctx, id).Return(&model.Book{ID: id, IsPublished: false}, nil)

	svc := NewBookService(repo)

	_, err := svc.GetBook(ctx, id, false)
	assert.ErrorIs(t, err, model.ErrBookNotFound)

	b, err := svc.GetBook(ctx, id, true)
	require.NoError(t, err)
	assert.Equal(t, id, b.ID)
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("empty patch", func(t *testing.T) {
		repo := new(mockRepo)
		_, err := NewBookService(repo).UpdateBook(ctx, id, model.UpdateBookRequest{})
		assert.ErrorIs(t, err, model.ErrNoChanges)
	})

	t.Run("blank title rejected", func(t *testing.T) {
		repo := new(mockRepo)
		_, err := NewBookService(repo).UpdateBook(ctx, id, model.UpdateBookRequest{Title: utils.StringPtr("  ")})

		var vErrs validation.Errors
		require.ErrorAs(t, err, &vErrs)
		assert.Contains(t, vErrs, "title")
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("toggle publish", func(t *testing.T) {
		repo := new(mockRepo)
		req := model.UpdateBookRequest{IsPublished: utils.BoolPtr(true)}
		repo.On("Update", ctx, id, req).Return(&model.Book{ID: id, IsPublished: true}, nil)

		b, err := NewBookService(repo).UpdateBook(ctx, id, req)
		require.NoError(t, err)
		assert.True(t, b.IsPublished)
	})
}

func TestRecordDownload(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	file := "https://cdn.example.com/a.pdf"

	repo := new(mockRepo)
	repo.On("IncrementDownload", ctx, id).Return(&model.Book{ID: id, DownloadCount: 8, FileURL: &file}, nil)

	res, err := NewBookService(repo).RecordDownload(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 8, res.DownloadCount)
	assert.Equal(t, &file, res.FileURL)
}
