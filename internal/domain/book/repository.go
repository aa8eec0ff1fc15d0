package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义接口，infrastructure层实现
type Repository interface {
	// Create 创建图书(同时写入作者、分类关联行)
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书，不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查询，不存在的ID直接忽略
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	// Update 更新图书(整体替换作者、分类关联)，不修改库存
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	// 同一事务内删除书评、关联行、订单明细，并重算受影响订单总价
	Delete(ctx context.Context, id uint) error

	// List 按过滤条件分页查询
	List(ctx context.Context, filter Filter, page, pageSize int) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(SELECT ... FOR UPDATE)
	// 必须在事务中调用，用于下单时锁定库存
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateStock 原子更新库存
	// delta为正数表示增加，负数表示减少；扣减后为负时返回ErrInsufficientStock
	UpdateStock(ctx context.Context, id uint, delta int) error

	// SetStock 设置库存(后台直接调整库存)
	// 读取-修改-写入必须在事务中先LockByID，否则会覆盖并发下单的扣减
	SetStock(ctx context.Context, id uint, stock int) error

	// SetCover 更新封面key
	SetCover(ctx context.Context, id uint, coverKey string) error
}

// References 图书引用校验(出版社、作者、分类是否存在)
type References interface {
	PublisherExists(ctx context.Context, id uint) (bool, error)

	// MissingAuthors 返回ids中不存在的作者ID
	MissingAuthors(ctx context.Context, ids []uint) ([]uint, error)

	// MissingGenres 返回ids中不存在的分类ID
	MissingGenres(ctx context.Context, ids []uint) ([]uint, error)
}
