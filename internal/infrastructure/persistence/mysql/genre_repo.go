package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-backend/internal/domain/genre"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

type genreRepository struct {
	db *gorm.DB
}

// NewGenreRepository 创建分类仓储
func NewGenreRepository(db *gorm.DB) genre.Repository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, g *genre.Genre) error {
	model := &GenreModel{Name: g.Name, Description: g.Description, CreatedAt: g.CreatedAt, UpdatedAt: g.UpdatedAt}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return genre.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建分类失败")
	}
	g.ID = model.ID
	return nil
}

func (r *genreRepository) FindByID(ctx context.Context, id uint) (*genre.Genre, error) {
	var model GenreModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, apperrors.Wrap(err, "查询分类失败")
	}
	return toGenreEntity(&model), nil
}

func (r *genreRepository) Update(ctx context.Context, g *genre.Genre) error {
	err := getDB(ctx, r.db).Model(&GenreModel{ID: g.ID}).
		Select("name", "description", "updated_at").
		Updates(&GenreModel{Name: g.Name, Description: g.Description, UpdatedAt: g.UpdatedAt}).Error
	if err != nil {
		if isDuplicateError(err) {
			return genre.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "更新分类失败")
	}
	return nil
}

// Delete 删除分类及其关联行，图书保留
func (r *genreRepository) Delete(ctx context.Context, id uint) error {
	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("genre_id = ?", id).Delete(&BookGenreModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&GenreModel{}, id).Error
	})
	if err != nil {
		return apperrors.Wrap(err, "删除分类失败")
	}
	return nil
}

func (r *genreRepository) List(ctx context.Context, page, pageSize int) ([]*genre.Genre, int64, error) {
	var (
		models []GenreModel
		total  int64
	)
	db := getDB(ctx, r.db)
	if err := db.Model(&GenreModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类总数失败")
	}
	if err := db.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询分类列表失败")
	}

	out := make([]*genre.Genre, len(models))
	for i := range models {
		out[i] = toGenreEntity(&models[i])
	}
	return out, total, nil
}

func toGenreEntity(m *GenreModel) *genre.Genre {
	return &genre.Genre{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
