package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// bookRepository 图书仓储实现
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责领域实体与GORM模型之间的转换(包括作者、分类关联行)
// 3. 所有方法都通过getDB(ctx)参与外层事务
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书，关联行随图书一起插入
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	for _, id := range b.AuthorIDs {
		model.AuthorLinks = append(model.AuthorLinks, BookAuthorModel{AuthorID: id})
	}
	for _, id := range b.GenreIDs {
		model.GenreLinks = append(model.GenreLinks, BookGenreModel{GenreID: id})
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书(含作者、分类ID)
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Preload("AuthorLinks", orderLinks("author_id")).
		Preload("GenreLinks", orderLinks("genre_id")).
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByIDs 批量查询(不加载关联)
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []BookModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	out := make([]*book.Book, len(models))
	for i := range models {
		out[i] = toBookEntity(&models[i])
	}
	return out, nil
}

// Update 更新图书字段并同步关联行
// 不写stock_quantity，库存只经由SetStock/UpdateStock修改；未变化的分类关联保留原created_at
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&BookModel{ID: b.ID}).
			Select("title", "publisher_id", "published_date", "price", "description", "updated_at").
			Updates(toBookModel(b)).Error
		if err != nil {
			return err
		}
		if err := syncAuthorLinks(tx, b.ID, b.AuthorIDs); err != nil {
			return err
		}
		return syncGenreLinks(tx, b.ID, b.GenreIDs)
	})
	if err != nil {
		return apperrors.Wrap(err, "更新图书失败")
	}
	return nil
}

// Delete 级联删除
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	err := getDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		return deleteBooksCascade(tx, []uint{id})
	})
	if err != nil {
		return apperrors.Wrap(err, "删除图书失败")
	}
	return nil
}

// List 按过滤条件分页查询
func (r *bookRepository) List(ctx context.Context, filter book.Filter, page, pageSize int) ([]*book.Book, int64, error) {
	var (
		models []BookModel
		total  int64
	)

	query := getDB(ctx, r.db).Model(&BookModel{}).Scopes(filterScope(filter)).Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	err := query.
		Scopes(orderingScope(filter.Ordering), paginate(page, pageSize)).
		Preload("AuthorLinks", orderLinks("author_id")).
		Preload("GenreLinks", orderLinks("genre_id")).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

// LockByID 悲观锁查询图书(SELECT ... FOR UPDATE)
// 必须使用getDB(ctx)拿到事务DB，否则锁在语句结束时就释放了
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// UpdateStock 原子更新库存
// UPDATE books SET stock_quantity = stock_quantity + ? WHERE id = ? AND stock_quantity + ? >= 0
func (r *bookRepository) UpdateStock(ctx context.Context, id uint, delta int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Where("stock_quantity + ? >= 0", delta).
		Update("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新库存失败")
	}

	if result.RowsAffected == 0 {
		// 图书不存在，或者库存不足
		var count int64
		if err := db.Model(&BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return apperrors.Wrap(err, "查询图书失败")
		}
		if count == 0 {
			return book.ErrBookNotFound
		}
		return book.ErrInsufficientStock
	}
	return nil
}

// SetStock 设置库存绝对值
// 值未变化时MySQL返回影响行数0，因此不据此判断图书是否存在(调用方已LockByID)
func (r *bookRepository) SetStock(ctx context.Context, id uint, stock int) error {
	err := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", id).Update("stock_quantity", stock).Error
	if err != nil {
		return apperrors.Wrap(err, "更新库存失败")
	}
	return nil
}

// SetCover 更新封面key
func (r *bookRepository) SetCover(ctx context.Context, id uint, coverKey string) error {
	result := getDB(ctx, r.db).Model(&BookModel{}).Where("id = ?", id).Update("cover_key", coverKey)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新封面失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// syncAuthorLinks 关联行与ids保持一致
func syncAuthorLinks(tx *gorm.DB, bookID uint, ids []uint) error {
	del := tx.Where("book_id = ?", bookID)
	if len(ids) > 0 {
		del = del.Where("author_id NOT IN ?", ids)
	}
	if err := del.Delete(&BookAuthorModel{}).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	links := make([]BookAuthorModel, len(ids))
	for i, id := range ids {
		links[i] = BookAuthorModel{BookID: bookID, AuthorID: id}
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

// syncGenreLinks 关联行与ids保持一致，已有的行不动
func syncGenreLinks(tx *gorm.DB, bookID uint, ids []uint) error {
	del := tx.Where("book_id = ?", bookID)
	if len(ids) > 0 {
		del = del.Where("genre_id NOT IN ?", ids)
	}
	if err := del.Delete(&BookGenreModel{}).Error; err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	var existing []uint
	if err := tx.Model(&BookGenreModel{}).Where("book_id = ?", bookID).Pluck("genre_id", &existing).Error; err != nil {
		return err
	}
	have := make(map[uint]bool, len(existing))
	for _, id := range existing {
		have[id] = true
	}

	var links []BookGenreModel
	for _, id := range ids {
		if !have[id] {
			links = append(links, BookGenreModel{BookID: bookID, GenreID: id})
		}
	}
	if len(links) == 0 {
		return nil
	}
	return tx.Create(&links).Error
}

func orderLinks(column string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(column + " ASC")
	}
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		Title:         b.Title,
		PublisherID:   b.PublisherID,
		PublishedDate: book.DateOf(b.PublishedDate),
		Price:         b.Price,
		StockQuantity: b.Stock,
		Description:   b.Description,
		CoverKey:      b.CoverKey,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toBookEntity(m *BookModel) *book.Book {
	b := &book.Book{
		ID:            m.ID,
		Title:         m.Title,
		PublisherID:   m.PublisherID,
		PublishedDate: book.DateOf(m.PublishedDate),
		Price:         m.Price,
		Stock:         m.StockQuantity,
		Description:   m.Description,
		CoverKey:      m.CoverKey,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	for _, link := range m.AuthorLinks {
		b.AuthorIDs = append(b.AuthorIDs, link.AuthorID)
	}
	for _, link := range m.GenreLinks {
		b.GenreIDs = append(b.GenreIDs, link.GenreID)
	}
	return b
}
