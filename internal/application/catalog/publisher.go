package catalog

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/publisher"
)

const timeLayout = "2006-01-02 15:04:05"

// PublisherUseCase 出版社维护用例
type PublisherUseCase struct {
	service publisher.Service
}

// NewPublisherUseCase 创建出版社用例
func NewPublisherUseCase(service publisher.Service) *PublisherUseCase {
	return &PublisherUseCase{service: service}
}

// PublisherInput 创建/全量更新参数
type PublisherInput struct {
	Name            string
	Location        string
	EstablishedYear int
	Website         string
	ContactEmail    string
}

// PublisherPatch 部分更新参数，nil表示不修改
type PublisherPatch struct {
	Name            *string
	Location        *string
	EstablishedYear *int
	Website         *string
	ContactEmail    *string
}

// PublisherResponse 出版社响应DTO
type PublisherResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Location        string `json:"location"`
	EstablishedYear int    `json:"established_year"`
	Website         string `json:"website,omitempty"`
	ContactEmail    string `json:"contact_email,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toPublisherResponse(p *publisher.Publisher) *PublisherResponse {
	return &PublisherResponse{
		ID:              p.ID,
		Name:            p.Name,
		Location:        p.Location,
		EstablishedYear: p.EstablishedYear,
		Website:         p.Website,
		ContactEmail:    p.ContactEmail,
		CreatedAt:       p.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:       p.UpdatedAt.UTC().Format(timeLayout),
	}
}

func (in PublisherInput) entity(id uint) *publisher.Publisher {
	return &publisher.Publisher{
		ID:              id,
		Name:            in.Name,
		Location:        in.Location,
		EstablishedYear: in.EstablishedYear,
		Website:         in.Website,
		ContactEmail:    in.ContactEmail,
	}
}

// Create 创建出版社
func (uc *PublisherUseCase) Create(ctx context.Context, in PublisherInput) (*PublisherResponse, error) {
	p, err := uc.service.Create(ctx, in.entity(0))
	if err != nil {
		return nil, err
	}
	return toPublisherResponse(p), nil
}

// Get 出版社详情
func (uc *PublisherUseCase) Get(ctx context.Context, id uint) (*PublisherResponse, error) {
	p, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPublisherResponse(p), nil
}

// Update 全量更新
func (uc *PublisherUseCase) Update(ctx context.Context, id uint, in PublisherInput) (*PublisherResponse, error) {
	p, err := uc.service.Update(ctx, in.entity(id))
	if err != nil {
		return nil, err
	}
	return toPublisherResponse(p), nil
}

// Patch 部分更新：读取当前值，合并传入字段后全量更新
func (uc *PublisherUseCase) Patch(ctx context.Context, id uint, patch PublisherPatch) (*PublisherResponse, error) {
	p, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&p.Name, patch.Name)
	setString(&p.Location, patch.Location)
	setInt(&p.EstablishedYear, patch.EstablishedYear)
	setString(&p.Website, patch.Website)
	setString(&p.ContactEmail, patch.ContactEmail)

	p, err = uc.service.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	return toPublisherResponse(p), nil
}

// Delete 删除出版社（级联删除名下图书）
func (uc *PublisherUseCase) Delete(ctx context.Context, id uint) error {
	return uc.service.Delete(ctx, id)
}

// List 分页列表
func (uc *PublisherUseCase) List(ctx context.Context, page, pageSize int) ([]*PublisherResponse, int64, error) {
	publishers, total, err := uc.service.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	list := make([]*PublisherResponse, 0, len(publishers))
	for _, p := range publishers {
		list = append(list, toPublisherResponse(p))
	}
	return list, total, nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
