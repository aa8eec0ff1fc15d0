package book

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
)

// BookPatch 部分更新参数，nil表示不修改
type BookPatch struct {
	Title         *string
	PublisherID   *uint
	AuthorIDs     *[]uint
	GenreIDs      *[]uint
	PublishedDate *time.Time
	Price         *int64
	Stock         *int
	Description   *string
}

// apply 把非nil字段写到图书上
func (p BookPatch) apply(b *book.Book) {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.PublisherID != nil {
		b.PublisherID = *p.PublisherID
	}
	if p.AuthorIDs != nil {
		b.AuthorIDs = *p.AuthorIDs
	}
	if p.GenreIDs != nil {
		b.GenreIDs = *p.GenreIDs
	}
	if p.PublishedDate != nil {
		b.PublishedDate = *p.PublishedDate
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Stock != nil {
		b.Stock = *p.Stock
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
}

// TxManager 事务管理器，由mysql.TxManager实现
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ManageBookUseCase 图书详情、修改、删除
type ManageBookUseCase struct {
	bookService book.Service
	txManager   TxManager
	covers      CoverStore
	logger      *zap.Logger
}

// NewManageBookUseCase 创建图书维护用例
func NewManageBookUseCase(bookService book.Service, txManager TxManager, covers CoverStore, logger *zap.Logger) *ManageBookUseCase {
	return &ManageBookUseCase{
		bookService: bookService,
		txManager:   txManager,
		covers:      covers,
		logger:      logger,
	}
}

// Get 图书详情
func (uc *ManageBookUseCase) Get(ctx context.Context, id uint) (*BookResponse, error) {
	b, err := uc.bookService.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookResponse(b), nil
}

// Update 全量更新(封面不受影响)
// 与下单共用图书行锁，两者串行执行
func (uc *ManageBookUseCase) Update(ctx context.Context, id uint, in BookInput) (*BookResponse, error) {
	var updated *book.Book
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) (err error) {
		updated, err = uc.bookService.Update(txCtx, in.entity(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return toBookResponse(updated), nil
}

// Patch 部分更新，请求未包含stock_quantity时不写库存
func (uc *ManageBookUseCase) Patch(ctx context.Context, id uint, patch BookPatch) (*BookResponse, error) {
	var patched *book.Book
	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) (err error) {
		patched, err = uc.bookService.Patch(txCtx, id, patch.apply)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toBookResponse(patched), nil
}

// Delete 删除图书，数据库级联完成后再清理封面文件
func (uc *ManageBookUseCase) Delete(ctx context.Context, id uint) error {
	b, err := uc.bookService.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.bookService.Delete(ctx, id); err != nil {
		return err
	}

	if b.CoverKey != "" {
		if err := uc.covers.Delete(ctx, b.CoverKey); err != nil {
			uc.logger.Warn("删除封面文件失败", zap.Uint("book_id", id), zap.String("key", b.CoverKey), zap.Error(err))
		}
	}
	return nil
}
