package author

import (
	"context"
)

// Repository 作者仓储接口
type Repository interface {
	Create(ctx context.Context, a *Author) error

	// FindByID 不存在返回ErrAuthorNotFound
	FindByID(ctx context.Context, id uint) (*Author, error)

	Update(ctx context.Context, a *Author) error

	// Delete 删除作者及其book_authors关联(图书保留)
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, page, pageSize int) ([]*Author, int64, error)
}
