package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, r *Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRepo) FindByID(ctx context.Context, id uint) (*Review, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*Review)
	return r, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, r *Review) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) List(ctx context.Context, params ListParams) ([]*Review, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]*Review), args.Get(1).(int64), args.Error(2)
}

// bookStub 只实现FindByID
type bookStub struct {
	book.Repository
	ids map[uint]bool
}

func (b bookStub) FindByID(_ context.Context, id uint) (*book.Book, error) {
	if !b.ids[id] {
		return nil, book.ErrBookNotFound
	}
	return &book.Book{ID: id}, nil
}

func newService(repo *mockRepo) Service {
	return NewService(repo, bookStub{ids: map[uint]bool{1: true}})
}

func TestReview_RatingBounds(t *testing.T) {
	for _, rating := range []int{1, 5} {
		r := &Review{BookID: 1, Text: "good", Rating: rating}
		assert.NoError(t, r.Validate(), "rating=%d", rating)
	}
	for _, rating := range []int{0, 6} {
		r := &Review{BookID: 1, Text: "good", Rating: rating}
		err := r.Validate()
		require.Error(t, err, "rating=%d", rating)
		assert.Contains(t, apperrors.GetAppError(err).Details, "rating")
	}
}

func TestService_Create(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	ctx := context.Background()

	repo.On("Create", ctx, mock.Anything).Return(nil).Once()

	r, err := svc.Create(ctx, &Review{BookID: 1, UserID: 7, Text: " great ", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, "great", r.Text)
	assert.False(t, r.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestService_CreateUnknownBook(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)

	_, err := svc.Create(context.Background(), &Review{BookID: 9, UserID: 7, Text: "x", Rating: 3})
	require.Error(t, err)
	assert.Contains(t, apperrors.GetAppError(err).Details, "book_id")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_UpdateOwnerOnly(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	ctx := context.Background()

	stored := &Review{ID: 3, BookID: 1, UserID: 7, Text: "ok", Rating: 3}
	repo.On("FindByID", ctx, uint(3)).Return(stored, nil)

	_, err := svc.Update(ctx, 8, &Review{ID: 3, Text: "hacked", Rating: 1})
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.Equal(t, apperrors.ErrCodeForbidden, apperrors.GetAppError(err).Code)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_UpdateKeepsCreatedAt(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	ctx := context.Background()

	stored := &Review{ID: 3, BookID: 1, UserID: 7, Text: "ok", Rating: 3}
	stored.CreatedAt = stored.CreatedAt.AddDate(2023, 0, 0)
	created := stored.CreatedAt
	repo.On("FindByID", ctx, uint(3)).Return(stored, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	got, err := svc.Update(ctx, 7, &Review{ID: 3, BookID: 99, Text: "better", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, uint(1), got.BookID)
	assert.Equal(t, 4, got.Rating)
}

func TestService_UpdateRejectsBadRating(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	ctx := context.Background()

	repo.On("FindByID", ctx, uint(3)).Return(&Review{ID: 3, BookID: 1, UserID: 7, Text: "ok", Rating: 3}, nil)

	_, err := svc.Update(ctx, 7, &Review{ID: 3, Text: "ok", Rating: 6})
	assert.ErrorIs(t, err, apperrors.ErrInvalidParams)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Delete(t *testing.T) {
	repo := new(mockRepo)
	svc := newService(repo)
	ctx := context.Background()

	repo.On("FindByID", ctx, uint(3)).Return(&Review{ID: 3, UserID: 7}, nil)
	repo.On("Delete", ctx, uint(3)).Return(nil).Once()

	assert.ErrorIs(t, svc.Delete(ctx, 8, 3), ErrNotOwner)
	assert.NoError(t, svc.Delete(ctx, 7, 3))
	repo.AssertExpectations(t)
}
