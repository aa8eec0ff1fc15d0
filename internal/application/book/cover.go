package book

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// ErrCoverNotFound 图书没有封面
var ErrCoverNotFound = apperrors.New(apperrors.ErrCodeNotFound, "图书没有封面")

// CoverUseCase 封面上传/下载
type CoverUseCase struct {
	bookService book.Service
	covers      CoverStore
	logger      *zap.Logger
}

// NewCoverUseCase 创建封面用例
func NewCoverUseCase(bookService book.Service, covers CoverStore, logger *zap.Logger) *CoverUseCase {
	return &CoverUseCase{
		bookService: bookService,
		covers:      covers,
		logger:      logger,
	}
}

// Cover 封面内容
type Cover struct {
	Data        []byte
	ContentType string
}

// Upload 替换封面
// 1. 图书必须存在
// 2. 先写新文件再更新key，最后删除旧文件
func (uc *CoverUseCase) Upload(ctx context.Context, bookID uint, r io.Reader) (*BookResponse, error) {
	b, err := uc.bookService.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}
	oldKey := b.CoverKey

	key, err := uc.covers.Save(ctx, bookID, r)
	if err != nil {
		return nil, err
	}

	updated, err := uc.bookService.SetCover(ctx, bookID, key)
	if err != nil {
		if delErr := uc.covers.Delete(ctx, key); delErr != nil {
			uc.logger.Error("删除封面失败", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}

	if oldKey != "" && oldKey != key {
		if err := uc.covers.Delete(ctx, oldKey); err != nil {
			uc.logger.Warn("删除旧封面失败", zap.String("key", oldKey), zap.Error(err))
		}
	}
	return toBookResponse(updated), nil
}

// Get 读取封面
func (uc *CoverUseCase) Get(ctx context.Context, bookID uint) (*Cover, error) {
	b, err := uc.bookService.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if b.CoverKey == "" {
		return nil, ErrCoverNotFound
	}

	data, contentType, err := uc.covers.Open(ctx, b.CoverKey)
	if err != nil {
		return nil, err
	}
	return &Cover{Data: data, ContentType: contentType}, nil
}
