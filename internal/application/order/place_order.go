package order

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
	"github.com/xiebiao/bookstore-backend/pkg/money"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
)

const tracerName = "application/order"

// TxManager 事务管理器，由mysql.TxManager实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 订单事件发布（事务提交后调用，尽力而为）
type EventPublisher interface {
	OrderPlaced(ctx context.Context, o *order.Order)
	StatusChanged(ctx context.Context, o *order.Order, from order.Status)
}

// PlaceOrderUseCase 下单用例
// 涉及：事务、行锁、库存校验、总价计算
type PlaceOrderUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager TxManager
	events    EventPublisher
	logger    *zap.Logger
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	events EventPublisher,
	logger *zap.Logger,
) *PlaceOrderUseCase {
	metrics.InitMetrics()
	return &PlaceOrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		events:    events,
		logger:    logger,
	}
}

// PlaceOrderRequest 下单请求DTO
type PlaceOrderRequest struct {
	UserID uint         // 买家用户ID(从JWT中提取)
	Items  []order.Line // 订单明细，同一本书可以出现多次
	Status order.Status // 可选，只校验取值，新订单总是Pending
}

// Execute 执行下单
//
// 防止超卖：
//  1. 合并明细，按BookID升序逐本SELECT ... FOR UPDATE（固定加锁顺序，避免死锁）
//  2. 锁定后检查库存，任何一本不足都回滚整个事务
//  3. 按锁定时的价格计算总价，不使用客户端传入的价格
//  4. 创建订单和明细
//  5. 条件UPDATE扣减库存（stock_quantity >= ?），作为最后一道防线
//  6. COMMIT后记录指标、发布order.placed事件
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (resp *OrderResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "PlaceOrder")
	defer span.End()

	metrics.IncGauge(metrics.OrdersInProgress)
	start := time.Now()
	defer func() {
		metrics.DecGauge(metrics.OrdersInProgress)
		metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
		if err != nil {
			metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{"reason": failureReason(err)})
			tracing.RecordError(span, err)
		}
	}()

	// 1. 参数校验
	if req.Status != "" && !req.Status.IsValid() {
		return nil, apperrors.NewValidation("status", "必须是P/C/F/R之一")
	}
	lines, err := order.MergeLines(req.Items)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("order.line_count", len(lines)))

	var placed *order.Order
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 2. 锁定图书并检查库存
		items := make([]order.OrderItem, 0, len(lines))
		for _, line := range lines {
			b, err := uc.bookRepo.LockByID(txCtx, line.BookID)
			if err != nil {
				return err
			}
			if !b.HasStock(line.Quantity) {
				return order.NewInsufficientStockError(order.Shortage{
					BookID:    b.ID,
					Title:     b.Title,
					Available: b.Stock,
					Requested: line.Quantity,
				})
			}
			// 3. 单价取锁定时的价格
			items = append(items, order.OrderItem{
				BookID:   b.ID,
				Quantity: line.Quantity,
				Price:    b.Price,
			})
		}

		// 4. 创建订单
		o := order.NewOrder(order.GenerateOrderNo(), req.UserID, items)
		if err := uc.orderRepo.Create(txCtx, o); err != nil {
			return err
		}

		// 5. 扣减库存
		for _, line := range lines {
			err := uc.bookRepo.UpdateStock(txCtx, line.BookID, -line.Quantity)
			if errors.Is(err, book.ErrInsufficientStock) {
				return uc.shortage(txCtx, line)
			}
			if err != nil {
				return err
			}
		}

		placed = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 6. 提交之后的副作用
	metrics.IncCounter(metrics.OrdersCreatedTotal)
	metrics.ObserveHistogram(metrics.OrderAmount, money.ToDecimal(placed.Total).InexactFloat64())
	span.SetAttributes(attribute.Int64("order.id", int64(placed.ID)))
	uc.logger.Info("下单成功",
		zap.Uint("order_id", placed.ID),
		zap.String("order_no", placed.OrderNo),
		zap.Uint("user_id", placed.UserID),
		zap.String("total", money.Format(placed.Total)),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)),
	)
	uc.events.OrderPlaced(ctx, placed)

	return toOrderResponse(placed), nil
}

// shortage 条件扣减未命中时，按当前库存补全缺口详情
func (uc *PlaceOrderUseCase) shortage(ctx context.Context, line order.Line) error {
	b, err := uc.bookRepo.FindByID(ctx, line.BookID)
	if err != nil {
		return err
	}
	return order.NewInsufficientStockError(order.Shortage{
		BookID:    b.ID,
		Title:     b.Title,
		Available: b.Stock,
		Requested: line.Quantity,
	})
}

// failureReason 失败原因标签（低基数）
func failureReason(err error) string {
	switch {
	case errors.Is(err, order.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, book.ErrBookNotFound):
		return "not_found"
	case apperrors.GetAppError(err).Code == apperrors.ErrCodeInvalidParams:
		return "invalid"
	default:
		return "error"
	}
}
