package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// orderRepository 订单仓储实现
// 1. Order和OrderItem是聚合关系，必须一起保存
// 2. 查询时使用Preload预加载明细，避免N+1问题
// 3. 事务通过context传递
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单，GORM会随订单插入Items
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单
// Preload会执行:
// 1. SELECT * FROM orders WHERE id = ?
// 2. SELECT * FROM order_items WHERE order_id IN (?)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items", orderLinks("id")).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// UpdateStatus 只更新状态和更新时间
func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status order.Status) error {
	result := getDB(ctx, r.db).Model(&OrderModel{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// Delete 删除订单和明细
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&OrderModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return err
		}
		return apperrors.Wrap(err, "删除订单失败")
	}
	return nil
}

// ListByUserID 查询用户的订单列表
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var (
		models []OrderModel
		total  int64
	)

	query := getDB(ctx, r.db).Model(&OrderModel{}).Where("user_id = ?", userID).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	err := query.Preload("Items", orderLinks("id")).
		Order("ordered_date DESC").Order("id DESC").
		Scopes(paginate(page, pageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// RefreshTotals 按图书当前价格重算订单总价
func (r *orderRepository) RefreshTotals(ctx context.Context, ids []uint) error {
	if err := refreshOrderTotals(getDB(ctx, r.db), ids); err != nil {
		return apperrors.Wrap(err, "重算订单总价失败")
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		}
	}

	return &OrderModel{
		ID:          o.ID,
		OrderNo:     o.OrderNo,
		UserID:      o.UserID,
		TotalPrice:  o.Total,
		Status:      string(o.Status),
		Items:       items,
		OrderedDate: o.OrderedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = order.OrderItem{
			ID:       item.ID,
			OrderID:  item.OrderID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.UnitPrice,
		}
	}

	return &order.Order{
		ID:        m.ID,
		OrderNo:   m.OrderNo,
		UserID:    m.UserID,
		Total:     m.TotalPrice,
		Status:    order.Status(m.Status),
		Items:     items,
		OrderedAt: m.OrderedDate,
		UpdatedAt: m.UpdatedAt,
	}
}
