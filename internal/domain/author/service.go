package author

import (
	"context"
	"strings"
	"time"
)

// Service 作者领域服务
type Service interface {
	Create(ctx context.Context, a *Author) (*Author, error)
	Get(ctx context.Context, id uint) (*Author, error)
	Update(ctx context.Context, a *Author) (*Author, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page, pageSize int) ([]*Author, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建作者领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, a *Author) (*Author, error) {
	normalize(a)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, a *Author) (*Author, error) {
	existing, err := s.repo.FindByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	normalize(a)
	if err := a.Validate(); err != nil {
		return nil, err
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, page, pageSize int) ([]*Author, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}

func normalize(a *Author) {
	a.FirstName = strings.TrimSpace(a.FirstName)
	a.LastName = strings.TrimSpace(a.LastName)
	a.Nationality = strings.TrimSpace(a.Nationality)
}
