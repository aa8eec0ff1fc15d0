package order

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
	"github.com/xiebiao/bookstore-backend/pkg/money"
)

// ManageOrderUseCase 订单查询与维护
// 所有操作只允许订单所有者执行
type ManageOrderUseCase struct {
	orderRepo    order.Repository
	orderService order.Service
	events       EventPublisher
	logger       *zap.Logger
}

// NewManageOrderUseCase 创建订单维护用例
func NewManageOrderUseCase(
	orderRepo order.Repository,
	orderService order.Service,
	events EventPublisher,
	logger *zap.Logger,
) *ManageOrderUseCase {
	metrics.InitMetrics()
	return &ManageOrderUseCase{
		orderRepo:    orderRepo,
		orderService: orderService,
		events:       events,
		logger:       logger,
	}
}

// load 查询订单并校验归属
func (uc *ManageOrderUseCase) load(ctx context.Context, userID, orderID uint) (*order.Order, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(userID) {
		return nil, order.ErrNotOwner
	}
	return o, nil
}

// Get 订单详情
func (uc *ManageOrderUseCase) Get(ctx context.Context, userID, orderID uint) (*OrderResponse, error) {
	o, err := uc.load(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(o), nil
}

// List 当前用户的订单(按下单时间倒序)
func (uc *ManageOrderUseCase) List(ctx context.Context, userID uint, page, pageSize int) ([]*OrderResponse, int64, error) {
	orders, total, err := uc.orderRepo.ListByUserID(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	list := make([]*OrderResponse, 0, len(orders))
	for _, o := range orders {
		list = append(list, toOrderResponse(o))
	}
	return list, total, nil
}

// UpdateStatus 修改订单状态
// 任意合法状态之间都可以切换；状态确实变化时发布order.status_changed
func (uc *ManageOrderUseCase) UpdateStatus(ctx context.Context, userID, orderID uint, status order.Status) (*OrderResponse, error) {
	o, err := uc.load(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	from := o.Status
	if err := o.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := uc.orderRepo.UpdateStatus(ctx, o.ID, o.Status); err != nil {
		return nil, err
	}

	if from != o.Status {
		metrics.IncCounterVec(metrics.OrderStatusChangesTotal, map[string]string{"status": string(o.Status)})
		uc.logger.Info("订单状态变更",
			zap.Uint("order_id", o.ID),
			zap.String("from", from.Label()),
			zap.String("to", o.Status.Label()),
		)
		uc.events.StatusChanged(ctx, o, from)
	}
	return toOrderResponse(o), nil
}

// Total 核对订单总价：存储值 vs 按图书当前价格重算的值
func (uc *ManageOrderUseCase) Total(ctx context.Context, userID, orderID uint) (*TotalResponse, error) {
	o, err := uc.load(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	recomputed, err := uc.orderService.RecomputeTotal(ctx, o)
	if err != nil {
		return nil, err
	}
	return &TotalResponse{
		OrderID:         o.ID,
		StoredTotal:     money.Format(o.Total),
		RecomputedTotal: money.Format(recomputed),
		Consistent:      recomputed == o.Total,
	}, nil
}

// Delete 删除订单和明细，库存不回补
func (uc *ManageOrderUseCase) Delete(ctx context.Context, userID, orderID uint) error {
	if _, err := uc.load(ctx, userID, orderID); err != nil {
		return err
	}
	return uc.orderRepo.Delete(ctx, orderID)
}
