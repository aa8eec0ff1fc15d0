package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-backend/internal/domain/publisher"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

type publisherRepository struct {
	db *gorm.DB
}

// NewPublisherRepository 创建出版社仓储
func NewPublisherRepository(db *gorm.DB) publisher.Repository {
	return &publisherRepository{db: db}
}

func (r *publisherRepository) Create(ctx context.Context, p *publisher.Publisher) error {
	model := toPublisherModel(p)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return publisher.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "创建出版社失败")
	}
	p.ID = model.ID
	return nil
}

func (r *publisherRepository) FindByID(ctx context.Context, id uint) (*publisher.Publisher, error) {
	var model PublisherModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, publisher.ErrPublisherNotFound
		}
		return nil, apperrors.Wrap(err, "查询出版社失败")
	}
	return toPublisherEntity(&model), nil
}

func (r *publisherRepository) Update(ctx context.Context, p *publisher.Publisher) error {
	model := toPublisherModel(p)
	err := getDB(ctx, r.db).Model(&PublisherModel{ID: p.ID}).
		Select("name", "location", "established_year", "website", "contact_email", "updated_at").
		Updates(model).Error
	if err != nil {
		if isDuplicateError(err) {
			return publisher.ErrNameDuplicate
		}
		return apperrors.Wrap(err, "更新出版社失败")
	}
	return nil
}

// Delete 级联删除名下图书
func (r *publisherRepository) Delete(ctx context.Context, id uint) error {
	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var bookIDs []uint
		if err := tx.Model(&BookModel{}).Where("publisher_id = ?", id).Pluck("id", &bookIDs).Error; err != nil {
			return err
		}
		if err := deleteBooksCascade(tx, bookIDs); err != nil {
			return err
		}

		result := tx.Delete(&PublisherModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return publisher.ErrPublisherNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, publisher.ErrPublisherNotFound) {
			return err
		}
		return apperrors.Wrap(err, "删除出版社失败")
	}
	return nil
}

func (r *publisherRepository) List(ctx context.Context, page, pageSize int) ([]*publisher.Publisher, int64, error) {
	var (
		models []PublisherModel
		total  int64
	)
	db := getDB(ctx, r.db)
	if err := db.Model(&PublisherModel{}).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询出版社总数失败")
	}
	if err := db.Order("id ASC").Scopes(paginate(page, pageSize)).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询出版社列表失败")
	}

	out := make([]*publisher.Publisher, len(models))
	for i := range models {
		out[i] = toPublisherEntity(&models[i])
	}
	return out, total, nil
}

func toPublisherModel(p *publisher.Publisher) *PublisherModel {
	return &PublisherModel{
		ID:              p.ID,
		Name:            p.Name,
		Location:        p.Location,
		EstablishedYear: p.EstablishedYear,
		Website:         optionalString(p.Website),
		ContactEmail:    optionalString(p.ContactEmail),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

func toPublisherEntity(m *PublisherModel) *publisher.Publisher {
	return &publisher.Publisher{
		ID:              m.ID,
		Name:            m.Name,
		Location:        m.Location,
		EstablishedYear: m.EstablishedYear,
		Website:         derefString(m.Website),
		ContactEmail:    derefString(m.ContactEmail),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}
