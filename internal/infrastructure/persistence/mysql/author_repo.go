package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-backend/internal/domain/author"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

type authorRepository struct {
	db *gorm.DB
}

// NewAuthorRepository 创建作者仓储
func NewAuthorRepository(db *gorm.DB) author.Repository {
	return &authorRepository{db: db}
}

func (r *authorRepository) Create(ctx context.Context, a *author.Author) error {
	model := toAuthorModel(a)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建作者失败")
	}
	a.ID = model.ID
	return nil
}

func (r *authorRepository) FindByID(ctx context.Context, id uint) (*author.Author, error) {
	var model AuthorModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, apperrors.Wrap(err, "查询作者失败")
	}
	return toAuthorEntity(&model), nil
}

func (r *authorRepository) Update(ctx context.Context, a *author.Author) error {
	err := getDB(ctx, r.db).Model(&AuthorModel{ID: a.ID}).
		Select("first_name", "last_name", "nationality", "updated_at").
		Updates(toAuthorModel(a)).Error
	if err != nil {
		return apperrors.Wrap(err, "更新作者失败")
	}
	return nil
}

// Delete 删除作者及其关联行，图书保留
func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&BookAuthorModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&AuthorModel{}, id).Error
	})
	if err != nil {
		return apperrors.Wrap(err, "删除作者失败")
	}
	return nil
}

func (r *authorRepository) List(ctx context.Context, page, pageSize int) ([]*author.Author, int64, error) {
	var (
		models []AuthorModel
		total  int64
	)
	db := getDB(ctx, r.db)
	if err := db.Model(&AuthorModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者总数失败")
	}
	if err := db.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询作者列表失败")
	}

	out := make([]*author.Author, len(models))
	for i := range models {
		out[i] = toAuthorEntity(&models[i])
	}
	return out, total, nil
}

func toAuthorModel(a *author.Author) *AuthorModel {
	return &AuthorModel{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Nationality: optionalString(a.Nationality),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toAuthorEntity(m *AuthorModel) *author.Author {
	return &author.Author{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		Nationality: derefString(m.Nationality),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
