package book

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// Service 图书领域服务接口
type Service interface {
	// Create 创建图书
	// 业务规则：
	// - 字段合法(标题、价格范围、库存非负、出版日期)
	// - 出版社必须存在，作者、分类ID必须全部存在
	Create(ctx context.Context, book *Book) (*Book, error)

	// Get 根据ID获取图书
	Get(ctx context.Context, id uint) (*Book, error)

	// Update 全量更新(含库存)，创建时间和封面保持不变
	// 调用方应在事务中调用，锁定图书行后再写入
	Update(ctx context.Context, book *Book) (*Book, error)

	// Patch 部分更新：锁定图书行，在最新数据上执行apply
	// 库存只有在apply改变它时才写入，不会覆盖并发下单的扣减
	Patch(ctx context.Context, id uint, apply func(b *Book)) (*Book, error)

	// Delete 删除图书(级联)
	Delete(ctx context.Context, id uint) error

	// List 过滤+分页
	List(ctx context.Context, filter Filter, page, pageSize int) ([]*Book, int64, error)

	// SetCover 更新封面key，返回更新后的图书
	SetCover(ctx context.Context, id uint, coverKey string) (*Book, error)
}

type service struct {
	repo Repository
	refs References
}

// NewService 创建图书领域服务
func NewService(repo Repository, refs References) Service {
	return &service{repo: repo, refs: refs}
}

// Create 创建图书
func (s *service) Create(ctx context.Context, book *Book) (*Book, error) {
	// 1. 规范化 + 字段校验
	book.normalize()
	if err := book.Validate(); err != nil {
		return nil, err
	}

	// 2. 引用校验
	if err := s.checkReferences(ctx, book); err != nil {
		return nil, err
	}

	// 3. 持久化
	now := time.Now()
	book.CreatedAt, book.UpdatedAt = now, now
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Get 根据ID获取图书
func (s *service) Get(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// Update 全量更新
func (s *service) Update(ctx context.Context, book *Book) (*Book, error) {
	// 1. 锁定原图书
	existing, err := s.repo.LockByID(ctx, book.ID)
	if err != nil {
		return nil, err
	}

	// 2. 校验 + 持久化
	book.CreatedAt = existing.CreatedAt
	book.CoverKey = existing.CoverKey
	if err := s.save(ctx, book); err != nil {
		return nil, err
	}

	// 3. 库存是全量更新的一部分
	if err := s.repo.SetStock(ctx, book.ID, book.Stock); err != nil {
		return nil, err
	}
	return book, nil
}

// Patch 部分更新
func (s *service) Patch(ctx context.Context, id uint, apply func(b *Book)) (*Book, error) {
	// 1. 先加锁，再加载完整图书(含作者、分类)
	if _, err := s.repo.LockByID(ctx, id); err != nil {
		return nil, err
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 2. 应用修改
	stock := b.Stock
	apply(b)
	b.ID = id

	// 3. 校验 + 持久化
	if err := s.save(ctx, b); err != nil {
		return nil, err
	}
	if b.Stock != stock {
		if err := s.repo.SetStock(ctx, id, b.Stock); err != nil {
			return nil, err
		}
	}
	return s.repo.FindByID(ctx, id)
}

// save 校验后写入除库存外的字段
func (s *service) save(ctx context.Context, book *Book) error {
	book.normalize()
	if err := book.Validate(); err != nil {
		return err
	}
	if err := s.checkReferences(ctx, book); err != nil {
		return err
	}
	book.UpdatedAt = time.Now()
	return s.repo.Update(ctx, book)
}

// Delete 删除图书
func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// List 过滤+分页
func (s *service) List(ctx context.Context, filter Filter, page, pageSize int) ([]*Book, int64, error) {
	return s.repo.List(ctx, filter, page, pageSize)
}

// SetCover 更新封面
func (s *service) SetCover(ctx context.Context, id uint, coverKey string) (*Book, error) {
	if err := s.repo.SetCover(ctx, id, coverKey); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// checkReferences 出版社、作者、分类必须存在
func (s *service) checkReferences(ctx context.Context, book *Book) error {
	errs := apperrors.FieldErrors{}

	ok, err := s.refs.PublisherExists(ctx, book.PublisherID)
	if err != nil {
		return err
	}
	if !ok {
		errs.Add("publisher_id", fmt.Sprintf("出版社不存在: %d", book.PublisherID))
	}

	missing, err := s.refs.MissingAuthors(ctx, book.AuthorIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		errs.Add("author_ids", fmt.Sprintf("作者不存在: %v", missing))
	}

	missing, err = s.refs.MissingGenres(ctx, book.GenreIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		errs.Add("genre_ids", fmt.Sprintf("分类不存在: %v", missing))
	}

	return errs.Err()
}
