package publisher

import (
	"context"
)

// Repository 出版社仓储接口
type Repository interface {
	// Create 创建出版社，名称重复返回ErrNameDuplicate
	Create(ctx context.Context, p *Publisher) error

	// FindByID 不存在返回ErrPublisherNotFound
	FindByID(ctx context.Context, id uint) (*Publisher, error)

	// Update 更新出版社
	Update(ctx context.Context, p *Publisher) error

	// Delete 删除出版社
	// 在同一事务内级联删除名下图书以及图书的书评、分类关联、作者关联、订单明细，
	// 并重算受影响订单的总价
	Delete(ctx context.Context, id uint) error

	// List 分页查询(按ID升序)
	List(ctx context.Context, page, pageSize int) ([]*Publisher, int64, error)
}
