package order

import (
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrInvalidStatus 非法的订单状态
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "订单状态必须是P/C/F/R之一")

	// ErrEmptyItems 订单明细为空
	ErrEmptyItems = apperrors.NewValidation("items", "订单明细不能为空")

	// ErrInsufficientStock 库存不足
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")

	// ErrNotOwner 无权访问他人订单
	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "无权访问此订单")
)

// Shortage 库存缺口详情
type Shortage struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// NewInsufficientStockError 带缺口详情的库存不足错误
func NewInsufficientStockError(s Shortage) error {
	return ErrInsufficientStock.WithDetails(s)
}
