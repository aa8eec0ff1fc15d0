package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// referenceChecker 图书引用校验
type referenceChecker struct {
	db *gorm.DB
}

// NewBookReferences 创建图书引用校验器
func NewBookReferences(db *gorm.DB) book.References {
	return &referenceChecker{db: db}
}

func (r *referenceChecker) PublisherExists(ctx context.Context, id uint) (bool, error) {
	if id == 0 {
		return false, nil
	}
	var count int64
	if err := getDB(ctx, r.db).Model(&PublisherModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询出版社失败")
	}
	return count > 0, nil
}

func (r *referenceChecker) MissingAuthors(ctx context.Context, ids []uint) ([]uint, error) {
	return r.missing(ctx, &AuthorModel{}, ids)
}

func (r *referenceChecker) MissingGenres(ctx context.Context, ids []uint) ([]uint, error) {
	return r.missing(ctx, &GenreModel{}, ids)
}

func (r *referenceChecker) missing(ctx context.Context, model interface{}, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []uint
	if err := getDB(ctx, r.db).Model(model).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询引用失败")
	}

	exists := make(map[uint]bool, len(found))
	for _, id := range found {
		exists[id] = true
	}
	var missing []uint
	for _, id := range ids {
		if !exists[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
