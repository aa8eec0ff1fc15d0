package mysql

import (
	"time"

	"gorm.io/gorm"
)

// deleteBooksCascade 删除图书及依赖数据，tx必须处于事务中
// 1. 记录受影响的订单
// 2. 删除书评、作者关联、分类关联、订单明细
// 3. 删除图书
// 4. 按剩余明细重算受影响订单的总价
func deleteBooksCascade(tx *gorm.DB, bookIDs []uint) error {
	if len(bookIDs) == 0 {
		return nil
	}

	var orderIDs []uint
	if err := tx.Model(&OrderItemModel{}).
		Where("book_id IN ?", bookIDs).
		Distinct().
		Pluck("order_id", &orderIDs).Error; err != nil {
		return err
	}

	dependents := []interface{}{
		&ReviewModel{},
		&BookAuthorModel{},
		&BookGenreModel{},
		&OrderItemModel{},
	}
	for _, model := range dependents {
		if err := tx.Where("book_id IN ?", bookIDs).Delete(model).Error; err != nil {
			return err
		}
	}

	if err := tx.Where("id IN ?", bookIDs).Delete(&BookModel{}).Error; err != nil {
		return err
	}

	return refreshOrderTotals(tx, orderIDs)
}

// refreshOrderTotals 按图书当前价格重算订单总价
// 没有明细的订单总价为0
func refreshOrderTotals(tx *gorm.DB, orderIDs []uint) error {
	if len(orderIDs) == 0 {
		return nil
	}
	return tx.Exec(`UPDATE orders SET total_price = (
		SELECT COALESCE(SUM(books.price * order_items.quantity), 0)
		FROM order_items JOIN books ON books.id = order_items.book_id
		WHERE order_items.order_id = orders.id
	), updated_at = ? WHERE id IN ?`, time.Now().UTC(), orderIDs).Error
}
