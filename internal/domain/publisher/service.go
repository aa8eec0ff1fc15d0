package publisher

import (
	"context"
	"strings"
	"time"
)

// Service 出版社领域服务
type Service interface {
	Create(ctx context.Context, p *Publisher) (*Publisher, error)
	Get(ctx context.Context, id uint) (*Publisher, error)
	Update(ctx context.Context, p *Publisher) (*Publisher, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page, pageSize int) ([]*Publisher, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建出版社领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create 校验后持久化，名称唯一性由数据库唯一索引保证
func (s *service) Create(ctx context.Context, p *Publisher) (*Publisher, error) {
	normalize(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Get(ctx context.Context, id uint) (*Publisher, error) {
	return s.repo.FindByID(ctx, id)
}

// Update 全量覆盖(PATCH由应用层先合并再调用)
func (s *service) Update(ctx context.Context, p *Publisher) (*Publisher, error) {
	// 1. 确认存在
	existing, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	// 2. 校验
	normalize(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	// 3. 持久化(创建时间不变)
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, page, pageSize int) ([]*Publisher, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}

func normalize(p *Publisher) {
	p.Name = strings.TrimSpace(p.Name)
	p.Location = strings.TrimSpace(p.Location)
	p.Website = strings.TrimSpace(p.Website)
	p.ContactEmail = strings.TrimSpace(p.ContactEmail)
}
