package genre

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	// Create 名称重复返回ErrNameDuplicate
	Create(ctx context.Context, g *Genre) error

	// FindByID 不存在返回ErrGenreNotFound
	FindByID(ctx context.Context, id uint) (*Genre, error)

	Update(ctx context.Context, g *Genre) error

	// Delete 删除分类及其book_genres关联(图书保留)
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context, page, pageSize int) ([]*Genre, int64, error)
}
