package dto

// CreateOrderRequest 下单请求
// books中每出现一次代表购买一本；items可指定数量；两者可同时使用
type CreateOrderRequest struct {
	Books  []uint                   `json:"books" example:"1,1,2"`
	Items  []CreateOrderItemRequest `json:"items" binding:"omitempty,dive"`
	Status string                   `json:"status" binding:"omitempty,oneof=P C F R" example:"P"`
}

// CreateOrderItemRequest 订单明细项
type CreateOrderItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// UpdateOrderRequest 修改订单状态（PUT）
type UpdateOrderRequest struct {
	Status string `json:"status" binding:"required,oneof=P C F R" example:"C"`
}

// PatchOrderRequest 修改订单状态（PATCH，不传则不修改）
type PatchOrderRequest struct {
	Status *string `json:"status" binding:"omitempty,oneof=P C F R"`
}
