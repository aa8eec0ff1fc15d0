package order

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
)

// Service 订单领域服务
type Service interface {
	// RecomputeTotal 按图书当前价格重算订单总价(分)
	// 图书已删除的明细不计入
	RecomputeTotal(ctx context.Context, o *Order) (int64, error)
}

type service struct {
	books book.Repository
}

// NewService 创建订单领域服务
func NewService(books book.Repository) Service {
	return &service{books: books}
}

func (s *service) RecomputeTotal(ctx context.Context, o *Order) (int64, error) {
	if len(o.Items) == 0 {
		return 0, nil
	}

	ids := make([]uint, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.BookID)
	}
	books, err := s.books.FindByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}

	prices := make(map[uint]int64, len(books))
	for _, b := range books {
		prices[b.ID] = b.Price
	}

	var total int64
	for _, item := range o.Items {
		if price, ok := prices[item.BookID]; ok {
			total += price * int64(item.Quantity)
		}
	}
	return total, nil
}
