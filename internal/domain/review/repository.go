package review

import (
	"context"
)

// ListParams 列表查询参数，ID为0表示不限
type ListParams struct {
	BookID   uint
	UserID   uint
	Page     int
	PageSize int
}

// Repository 书评仓储接口
type Repository interface {
	Create(ctx context.Context, r *Review) error

	// FindByID 不存在返回ErrReviewNotFound
	FindByID(ctx context.Context, id uint) (*Review, error)

	// Update 只更新内容和评分，不修改created_at
	Update(ctx context.Context, r *Review) error

	Delete(ctx context.Context, id uint) error

	// List 按创建时间倒序分页
	List(ctx context.Context, params ListParams) ([]*Review, int64, error)
}
