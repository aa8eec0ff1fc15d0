package genre

import (
	"context"
	"strings"
	"time"
)

// Service 分类领域服务
type Service interface {
	Create(ctx context.Context, g *Genre) (*Genre, error)
	Get(ctx context.Context, id uint) (*Genre, error)
	Update(ctx context.Context, g *Genre) (*Genre, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page, pageSize int) ([]*Genre, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建分类领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, g *Genre) (*Genre, error) {
	g.Name = strings.TrimSpace(g.Name)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	now := time.Now()
	g.CreatedAt, g.UpdatedAt = now, now
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Genre, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, g *Genre) (*Genre, error) {
	existing, err := s.repo.FindByID(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	g.Name = strings.TrimSpace(g.Name)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	g.CreatedAt = existing.CreatedAt
	g.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, page, pageSize int) ([]*Genre, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}
