// Package messaging 订单领域事件发布
//
// 事件在事务提交之后发布，尽力而为：发布失败只记日志和指标，不影响接口结果。
package messaging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
	"github.com/xiebiao/bookstore-backend/pkg/money"
	"github.com/xiebiao/bookstore-backend/pkg/mq"
)

// 事件类型（即routing key）
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// publishTimeout 单次发布超时，避免MQ故障拖慢请求
const publishTimeout = 3 * time.Second

// Broker 消息发布接口，由*mq.Publisher实现
type Broker interface {
	Publish(ctx context.Context, event mq.Envelope) error
}

// OrderPlacedPayload order.placed事件内容
type OrderPlacedPayload struct {
	OrderID    uint         `json:"order_id"`
	OrderNo    string       `json:"order_no"`
	UserID     uint         `json:"user_id"`
	TotalPrice string       `json:"total_price"`
	Items      []EventItem  `json:"items"`
	OrderedAt  time.Time    `json:"ordered_at"`
	Status     order.Status `json:"status"`
}

// EventItem 事件中的订单明细
type EventItem struct {
	BookID    uint   `json:"book_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// StatusChangedPayload order.status_changed事件内容
type StatusChangedPayload struct {
	OrderID uint         `json:"order_id"`
	OrderNo string       `json:"order_no"`
	From    order.Status `json:"from"`
	To      order.Status `json:"to"`
}

// OrderEvents 订单事件发布者
type OrderEvents struct {
	broker Broker
	logger *zap.Logger
}

// NewOrderEvents 创建事件发布者，broker为nil时只记录日志
func NewOrderEvents(broker Broker, log *zap.Logger) *OrderEvents {
	metrics.InitMetrics()
	return &OrderEvents{broker: broker, logger: log}
}

// NewOrderEventsFromConfig 按配置连接RabbitMQ
// mq.enabled=false或连接失败时退化为只记日志，服务照常启动
func NewOrderEventsFromConfig(cfg *config.Config, log *zap.Logger) (*OrderEvents, func()) {
	if !cfg.MQ.Enabled {
		log.Info("订单事件发布未开启")
		return NewOrderEvents(nil, log), func() {}
	}

	publisher, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, cfg.MQ.ExchangeType, log)
	if err != nil {
		log.Warn("RabbitMQ不可用，订单事件不会发布", zap.Error(err))
		return NewOrderEvents(nil, log), func() {}
	}
	return NewOrderEvents(publisher, log), func() { _ = publisher.Close() }
}

// OrderPlaced 发布下单事件
func (e *OrderEvents) OrderPlaced(ctx context.Context, o *order.Order) {
	items := make([]EventItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, EventItem{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: money.Format(item.Price),
		})
	}

	e.publish(ctx, mq.NewEnvelope(EventOrderPlaced, OrderPlacedPayload{
		OrderID:    o.ID,
		OrderNo:    o.OrderNo,
		UserID:     o.UserID,
		TotalPrice: money.Format(o.Total),
		Items:      items,
		OrderedAt:  o.OrderedAt,
		Status:     o.Status,
	}))
}

// StatusChanged 发布状态变更事件
func (e *OrderEvents) StatusChanged(ctx context.Context, o *order.Order, from order.Status) {
	e.publish(ctx, mq.NewEnvelope(EventOrderStatusChanged, StatusChangedPayload{
		OrderID: o.ID,
		OrderNo: o.OrderNo,
		From:    from,
		To:      o.Status,
	}))
}

func (e *OrderEvents) publish(ctx context.Context, event mq.Envelope) {
	if e.broker == nil {
		e.logger.Debug("事件未发布(MQ未开启)", zap.String("type", event.Type), zap.String("id", event.ID))
		return
	}

	// 请求结束后ctx会被取消，发布使用独立的超时
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := e.broker.Publish(ctx, event); err != nil {
		metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{"routing_key": event.Type, "result": "failure"})
		e.logger.Warn("事件发布失败", zap.String("type", event.Type), zap.String("id", event.ID), zap.Error(err))
		return
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{"routing_key": event.Type, "result": "success"})
}
