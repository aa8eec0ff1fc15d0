package order

import (
	"context"
)

// Repository 订单仓储接口
// 支持事务：事务通过context传递
type Repository interface {
	// Create 创建订单(包含订单明细)
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含订单明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// UpdateStatus 只更新状态
	UpdateStatus(ctx context.Context, id uint, status Status) error

	// Delete 删除订单和明细(不回补库存)
	Delete(ctx context.Context, id uint) error

	// ListByUserID 查询用户的订单列表(按下单时间倒序)
	ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// RefreshTotals 按图书当前价格重算并保存订单总价，用于明细被级联删除后
	RefreshTotals(ctx context.Context, ids []uint) error
}
