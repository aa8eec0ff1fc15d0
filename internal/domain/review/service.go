package review

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// Service 书评领域服务
type Service interface {
	// Create 发表书评，图书必须存在
	Create(ctx context.Context, r *Review) (*Review, error)

	Get(ctx context.Context, id uint) (*Review, error)

	// Update 修改书评
	// 业务规则：只有作者本人可以修改；图书、作者、创建时间不可变
	Update(ctx context.Context, userID uint, r *Review) (*Review, error)

	// Delete 删除书评，只有作者本人可以删除
	Delete(ctx context.Context, userID, id uint) error

	List(ctx context.Context, params ListParams) ([]*Review, int64, error)
}

type service struct {
	repo  Repository
	books book.Repository
}

// NewService 创建书评领域服务
func NewService(repo Repository, books book.Repository) Service {
	return &service{repo: repo, books: books}
}

func (s *service) Create(ctx context.Context, r *Review) (*Review, error) {
	// 1. 字段校验
	r.Text = strings.TrimSpace(r.Text)
	if err := r.Validate(); err != nil {
		return nil, err
	}

	// 2. 图书必须存在
	if err := s.ensureBook(ctx, r.BookID); err != nil {
		return nil, err
	}

	// 3. 持久化
	now := time.Now()
	r.CreatedAt, r.UpdatedAt = now, now
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Review, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, userID uint, r *Review) (*Review, error) {
	// 1. 查询并检查归属
	existing, err := s.repo.FindByID(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwnedBy(userID) {
		return nil, ErrNotOwner
	}

	// 2. 只接受内容和评分的修改
	existing.Text = strings.TrimSpace(r.Text)
	existing.Rating = r.Rating
	if err := existing.Validate(); err != nil {
		return nil, err
	}

	// 3. 持久化
	existing.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *service) Delete(ctx context.Context, userID, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !existing.IsOwnedBy(userID) {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Review, int64, error) {
	if params.BookID != 0 {
		if _, err := s.books.FindByID(ctx, params.BookID); err != nil {
			return nil, 0, err
		}
	}
	return s.repo.List(ctx, params)
}

// ensureBook 图书不存在时返回book_id字段错误
func (s *service) ensureBook(ctx context.Context, bookID uint) error {
	_, err := s.books.FindByID(ctx, bookID)
	if errors.Is(err, book.ErrBookNotFound) {
		return apperrors.NewValidation("book_id", "图书不存在")
	}
	return err
}
