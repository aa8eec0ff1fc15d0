package mysql

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	"github.com/xiebiao/bookstore-backend/internal/domain/review"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

func TestOrderRepository_Lifecycle(t *testing.T) {
	f := newFixture(t)
	repo := NewOrderRepository(f.db)
	ctx := context.Background()

	b := f.createBook(t, "Dune", 1000, 5, book.Date(1965, 8, 1))
	o := order.NewOrder("ORD100", f.userID, []order.OrderItem{{BookID: b.ID, Quantity: 2, Price: 1000}})
	require.NoError(t, repo.Create(ctx, o))
	require.NotZero(t, o.ID)
	assert.Equal(t, o.ID, o.Items[0].OrderID)

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, got.Status)
	assert.Equal(t, int64(2000), got.Total)
	assert.Equal(t, int64(1000), got.Items[0].Price)

	require.NoError(t, repo.UpdateStatus(ctx, o.ID, order.StatusRefunded))
	got, err = repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.StatusRefunded, got.Status)

	orders, total, err := repo.ListByUserID(ctx, f.userID, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, orders[0].Items, 1)

	require.NoError(t, repo.Delete(ctx, o.ID))
	assert.ErrorIs(t, repo.Delete(ctx, o.ID), order.ErrOrderNotFound)
	assert.Zero(t, count(t, f, &OrderItemModel{}, "order_id = ?", o.ID))
}

func TestOrderRepository_RefreshTotalsUsesCurrentPrice(t *testing.T) {
	f := newFixture(t)
	repo := NewOrderRepository(f.db)
	ctx := context.Background()

	b := f.createBook(t, "Dune", 1000, 5, book.Date(1965, 8, 1))
	o := order.NewOrder("ORD101", f.userID, []order.OrderItem{{BookID: b.ID, Quantity: 2, Price: 1000}})
	require.NoError(t, repo.Create(ctx, o))

	require.NoError(t, f.db.Model(&BookModel{}).Where("id = ?", b.ID).Update("price", 1250).Error)
	require.NoError(t, repo.RefreshTotals(ctx, []uint{o.ID}))

	got, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), got.Total)
	assert.Equal(t, int64(1000), got.Items[0].Price)
}

func TestTxManager_Rollback(t *testing.T) {
	f := newFixture(t)
	tx := NewTxManager(f.db)
	books := NewBookRepository(f.db)
	ctx := context.Background()

	b := f.createBook(t, "Dune", 1000, 5, book.Date(1965, 8, 1))
	boom := errors.New("boom")

	err := tx.Transaction(ctx, func(ctx context.Context) error {
		if err := books.UpdateStock(ctx, b.ID, -3); err != nil {
			return err
		}
		if err := NewOrderRepository(f.db).Create(ctx, order.NewOrder("ORD102", f.userID, nil)); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := books.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Stock)
	assert.Zero(t, count(t, f, &OrderModel{}, "order_no = ?", "ORD102"))
}

func TestReviewRepository(t *testing.T) {
	f := newFixture(t)
	repo := NewReviewRepository(f.db)
	ctx := context.Background()

	b := f.createBook(t, "Dune", 1000, 5, book.Date(1965, 8, 1))
	r := &review.Review{BookID: b.ID, UserID: f.userID, Text: "good", Rating: 4}
	require.NoError(t, repo.Create(ctx, r))
	created := r.CreatedAt

	r.Text, r.Rating = "better", 5
	require.NoError(t, repo.Update(ctx, r))

	got, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "better", got.Text)
	assert.True(t, created.Equal(got.CreatedAt))

	list, total, err := repo.List(ctx, review.ListParams{BookID: b.ID, Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	list, total, err = repo.List(ctx, review.ListParams{BookID: b.ID + 1, Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)

	require.NoError(t, repo.Delete(ctx, r.ID))
	assert.ErrorIs(t, repo.Delete(ctx, r.ID), review.ErrReviewNotFound)
}

func TestUserRepository(t *testing.T) {
	f := newFixture(t)
	repo := NewUserRepository(f.db)
	ctx := context.Background()

	u, err := repo.FindByEmail(ctx, "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, f.userID, u.ID)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	dup := *u
	dup.ID = 0
	assert.ErrorIs(t, repo.Create(ctx, &dup), apperrors.ErrEmailDuplicate)
}
