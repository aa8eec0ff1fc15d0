package order

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

func TestMergeLines(t *testing.T) {
	lines, err := MergeLines([]Line{
		{BookID: 3, Quantity: 1},
		{BookID: 1, Quantity: 2},
		{BookID: 3, Quantity: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []Line{{BookID: 1, Quantity: 2}, {BookID: 3, Quantity: 3}}, lines)
}

func TestMergeLines_Invalid(t *testing.T) {
	_, err := MergeLines(nil)
	assert.ErrorIs(t, err, ErrEmptyItems)

	_, err = MergeLines([]Line{{BookID: 1, Quantity: 0}, {BookID: 0, Quantity: 1}})
	require.Error(t, err)
	details := apperrors.GetAppError(err).Details.(apperrors.FieldErrors)
	assert.Contains(t, details, "items[0].quantity")
	assert.Contains(t, details, "items[1].book_id")
}

func TestNewOrder(t *testing.T) {
	o := NewOrder("ORD1", 7, []OrderItem{
		{BookID: 1, Quantity: 2, Price: 1000},
		{BookID: 2, Quantity: 1, Price: 2550},
	})
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, int64(4550), o.Total)
	assert.False(t, o.OrderedAt.IsZero())
	assert.True(t, o.IsOwnedBy(7))
}

func TestOrder_ChangeStatusIsPermissive(t *testing.T) {
	o := &Order{Status: StatusCompleted}
	require.NoError(t, o.ChangeStatus(StatusPending))
	require.NoError(t, o.ChangeStatus(StatusRefunded))
	assert.Equal(t, StatusRefunded, o.Status)

	assert.ErrorIs(t, o.ChangeStatus("X"), ErrInvalidStatus)
	assert.Equal(t, StatusRefunded, o.Status)
}

func TestInsufficientStockError(t *testing.T) {
	err := NewInsufficientStockError(Shortage{BookID: 2, Title: "B", Available: 1, Requested: 2})
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeInsufficientStock, appErr.Code)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 2, appErr.Details.(Shortage).Requested)
}

func TestGenerateOrderNo(t *testing.T) {
	no := generateOrderNo(time.Unix(1699248000, 0))
	assert.True(t, strings.HasPrefix(no, "ORD1699248000"))
	assert.Len(t, no, len("ORD1699248000")+6)
}

type priceStub struct {
	book.Repository
	prices map[uint]int64
}

func (p priceStub) FindByIDs(_ context.Context, ids []uint) ([]*book.Book, error) {
	var out []*book.Book
	for _, id := range ids {
		if price, ok := p.prices[id]; ok {
			out = append(out, &book.Book{ID: id, Price: price})
		}
	}
	return out, nil
}

func TestService_RecomputeTotalUsesCurrentPrice(t *testing.T) {
	svc := NewService(priceStub{prices: map[uint]int64{1: 1200, 2: 2550}})

	o := &Order{Items: []OrderItem{
		{BookID: 1, Quantity: 2, Price: 1000},
		{BookID: 2, Quantity: 1, Price: 2550},
		{BookID: 3, Quantity: 5, Price: 999}, // 图书已删除
	}}
	total, err := svc.RecomputeTotal(context.Background(), o)
	require.NoError(t, err)
	assert.Equal(t, int64(4950), total)
}
