package order

import (
	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	"github.com/xiebiao/bookstore-backend/pkg/money"
)

const timeLayout = "2006-01-02 15:04:05"

// OrderResponse 订单响应DTO
// 金额统一为2位小数字符串，避免客户端浮点误差
type OrderResponse struct {
	ID          uint                `json:"id"`
	OrderNo     string              `json:"order_no"`
	UserID      uint                `json:"user_id"`
	TotalPrice  string              `json:"total_price"`
	Status      order.Status        `json:"status"`
	StatusLabel string              `json:"status_label"`
	OrderedDate string              `json:"ordered_date"`
	UpdatedAt   string              `json:"updated_at"`
	Items       []OrderItemResponse `json:"items"`
}

// OrderItemResponse 订单明细DTO
type OrderItemResponse struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
}

// TotalResponse 订单总价核对结果
type TotalResponse struct {
	OrderID         uint   `json:"order_id"`
	StoredTotal     string `json:"stored_total"`
	RecomputedTotal string `json:"recomputed_total"`
	Consistent      bool   `json:"consistent"`
}

func toOrderResponse(o *order.Order) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:        item.ID,
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: money.Format(item.Price),
			Subtotal:  money.Format(item.Subtotal()),
		})
	}
	return &OrderResponse{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		TotalPrice:  money.Format(o.Total),
		Status:      o.Status,
		StatusLabel: o.Status.Label(),
		OrderedDate: o.OrderedAt.UTC().Format(timeLayout),
		UpdatedAt:   o.UpdatedAt.UTC().Format(timeLayout),
		Items:       items,
	}
}
