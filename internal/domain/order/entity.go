package order

import (
	"fmt"
	"sort"
	"time"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// Status 订单状态(单字符存储)
// 状态之间没有流转限制，只校验取值合法
type Status string

const (
	StatusPending   Status = "P" // 待处理
	StatusCompleted Status = "C" // 已完成
	StatusFailed    Status = "F" // 失败
	StatusRefunded  Status = "R" // 已退款
)

// IsValid 是否为合法状态
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
		return true
	}
	return false
}

// Label 状态描述(日志、事件)
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusRefunded:
		return "Refunded"
	default:
		return "Unknown"
	}
}

// Order 订单实体(聚合根)
// 1. Order是聚合根，OrderItem是子实体
// 2. Total冗余存储，下单时由锁定的图书价格计算
// 3. OrderedAt只在创建时写入
type Order struct {
	ID        uint
	OrderNo   string
	UserID    uint
	Total     int64 // 订单总金额(分)
	Status    Status
	Items     []OrderItem
	OrderedAt time.Time
	UpdatedAt time.Time
}

// OrderItem 订单明细项
// Price记录下单时的单价(分)，作为历史快照
type OrderItem struct {
	ID       uint
	OrderID  uint
	BookID   uint
	Quantity int
	Price    int64
}

// Subtotal 小计(分)
func (i OrderItem) Subtotal() int64 {
	return i.Price * int64(i.Quantity)
}

// NewOrder 创建新订单，初始状态为Pending
func NewOrder(orderNo string, userID uint, items []OrderItem) *Order {
	now := time.Now()
	o := &Order{
		OrderNo:   orderNo,
		UserID:    userID,
		Status:    StatusPending,
		Items:     items,
		OrderedAt: now,
		UpdatedAt: now,
	}
	o.Total = o.CalculateTotal()
	return o
}

// CalculateTotal 按明细快照价格计算总金额
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}

// ChangeStatus 修改状态，任意合法状态之间都可以切换
func (o *Order) ChangeStatus(target Status) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查订单是否属于指定用户
func (o *Order) IsOwnedBy(userID uint) bool {
	return o.UserID == userID
}

// Line 下单请求中的一行(图书+数量)
type Line struct {
	BookID   uint
	Quantity int
}

// MergeLines 校验并合并下单明细
// 1. 明细不能为空，数量必须>=1
// 2. 同一本书的多行合并为一行(数量相加)
// 3. 结果按BookID升序，作为加锁顺序
func MergeLines(lines []Line) ([]Line, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyItems
	}

	errs := apperrors.FieldErrors{}
	merged := make(map[uint]int, len(lines))
	for i, line := range lines {
		if line.BookID == 0 {
			errs.Add(fmt.Sprintf("items[%d].book_id", i), "不能为空")
			continue
		}
		if line.Quantity < 1 {
			errs.Add(fmt.Sprintf("items[%d].quantity", i), "不能小于1")
			continue
		}
		merged[line.BookID] += line.Quantity
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	out := make([]Line, 0, len(merged))
	for bookID, qty := range merged {
		out = append(out, Line{BookID: bookID, Quantity: qty})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BookID < out[j].BookID })
	return out, nil
}
