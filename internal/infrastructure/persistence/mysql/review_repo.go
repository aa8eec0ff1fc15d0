package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-backend/internal/domain/review"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:     rv.BookID,
		UserID:     rv.UserID,
		ReviewText: rv.Text,
		Rating:     rv.Rating,
		CreatedAt:  rv.CreatedAt,
		UpdatedAt:  rv.UpdatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建书评失败")
	}
	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询书评失败")
	}
	return toReviewEntity(&model), nil
}

// Update created_at不在更新列中
func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	result := getDB(ctx, r.db).Model(&ReviewModel{}).Where("id = ?", rv.ID).Updates(map[string]interface{}{
		"review_text": rv.Text,
		"rating":      rv.Rating,
		"updated_at":  rv.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新书评失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除书评失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) List(ctx context.Context, params review.ListParams) ([]*review.Review, int64, error) {
	var (
		models []ReviewModel
		total  int64
	)

	query := getDB(ctx, r.db).Model(&ReviewModel{})
	if params.BookID != 0 {
		query = query.Where("book_id = ?", params.BookID)
	}
	if params.UserID != 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评总数失败")
	}
	err := query.Order("created_at DESC").Order("id DESC").
		Scopes(paginate(params.Page, params.PageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评列表失败")
	}

	out := make([]*review.Review, len(models))
	for i := range models {
		out[i] = toReviewEntity(&models[i])
	}
	return out, total, nil
}

func toReviewEntity(m *ReviewModel) *review.Review {
	return &review.Review{
		ID:        m.ID,
		BookID:    m.BookID,
		UserID:    m.UserID,
		Text:      m.ReviewText,
		Rating:    m.Rating,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
