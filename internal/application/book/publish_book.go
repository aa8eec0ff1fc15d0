package book

import (
	"context"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/pkg/saga"
)

// publishTimeout 带封面上架的整体超时
const publishTimeout = 30 * time.Second

// CoverStore 封面存储
type CoverStore interface {
	Save(ctx context.Context, bookID uint, r io.Reader) (string, error)
	Open(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
}

// BookInput 创建/全量更新参数
// 价格已由接口层解析为分
type BookInput struct {
	Title         string
	PublisherID   uint
	AuthorIDs     []uint
	GenreIDs      []uint
	PublishedDate time.Time
	Price         int64
	Stock         int
	Description   string
}

func (in BookInput) entity(id uint) *book.Book {
	return &book.Book{
		ID:            id,
		Title:         in.Title,
		PublisherID:   in.PublisherID,
		AuthorIDs:     in.AuthorIDs,
		GenreIDs:      in.GenreIDs,
		PublishedDate: in.PublishedDate,
		Price:         in.Price,
		Stock:         in.Stock,
		Description:   in.Description,
	}
}

// PublishBookUseCase 图书上架用例(可同时上传封面)
type PublishBookUseCase struct {
	bookService book.Service
	covers      CoverStore
	logger      *zap.Logger
}

// NewPublishBookUseCase 创建上架用例
func NewPublishBookUseCase(bookService book.Service, covers CoverStore, logger *zap.Logger) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookService: bookService,
		covers:      covers,
		logger:      logger,
	}
}

// Execute 执行上架用例
// 1. 领域服务校验字段和引用后落库
// 2. 有封面时按Saga执行：创建图书 → 写入对象存储 → 回填key
// 3. 任一步失败，逆序删除已写入的封面和图书
func (uc *PublishBookUseCase) Execute(ctx context.Context, in BookInput, cover io.Reader) (*BookResponse, error) {
	if cover == nil {
		b, err := uc.bookService.Create(ctx, in.entity(0))
		if err != nil {
			return nil, err
		}
		return toBookResponse(b), nil
	}

	var (
		created *book.Book
		bookID  uint
		key     string
	)
	s := saga.NewSaga(publishTimeout, uc.logger)
	s.AddStep("创建图书",
		func(ctx context.Context) error {
			b, err := uc.bookService.Create(ctx, in.entity(0))
			if err != nil {
				return err
			}
			bookID = b.ID
			return nil
		},
		func(ctx context.Context) error {
			return uc.bookService.Delete(ctx, bookID)
		},
	)
	s.AddStep("保存封面",
		func(ctx context.Context) (err error) {
			key, err = uc.covers.Save(ctx, bookID, cover)
			return err
		},
		func(ctx context.Context) error {
			return uc.covers.Delete(ctx, key)
		},
	)
	s.AddStep("回填封面",
		func(ctx context.Context) (err error) {
			created, err = uc.bookService.SetCover(ctx, bookID, key)
			return err
		},
		nil,
	)

	if err := s.Execute(ctx); err != nil {
		return nil, err
	}
	return toBookResponse(created), nil
}
