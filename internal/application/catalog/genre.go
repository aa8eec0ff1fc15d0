package catalog

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/genre"
)

// GenreUseCase 分类维护用例
type GenreUseCase struct {
	service genre.Service
}

// NewGenreUseCase 创建分类用例
func NewGenreUseCase(service genre.Service) *GenreUseCase {
	return &GenreUseCase{service: service}
}

// GenreInput 创建/全量更新参数
type GenreInput struct {
	Name        string
	Description string
}

// GenrePatch 部分更新参数
type GenrePatch struct {
	Name        *string
	Description *string
}

// GenreResponse 分类响应DTO
type GenreResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toGenreResponse(g *genre.Genre) *GenreResponse {
	return &GenreResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedAt:   g.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:   g.UpdatedAt.UTC().Format(timeLayout),
	}
}

// Create 创建分类
func (uc *GenreUseCase) Create(ctx context.Context, in GenreInput) (*GenreResponse, error) {
	g, err := uc.service.Create(ctx, &genre.Genre{Name: in.Name, Description: in.Description})
	if err != nil {
		return nil, err
	}
	return toGenreResponse(g), nil
}

// Get 分类详情
func (uc *GenreUseCase) Get(ctx context.Context, id uint) (*GenreResponse, error) {
	g, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toGenreResponse(g), nil
}

// Update 全量更新
func (uc *GenreUseCase) Update(ctx context.Context, id uint, in GenreInput) (*GenreResponse, error) {
	g, err := uc.service.Update(ctx, &genre.Genre{ID: id, Name: in.Name, Description: in.Description})
	if err != nil {
		return nil, err
	}
	return toGenreResponse(g), nil
}

// Patch 部分更新
func (uc *GenreUseCase) Patch(ctx context.Context, id uint, patch GenrePatch) (*GenreResponse, error) {
	g, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&g.Name, patch.Name)
	setString(&g.Description, patch.Description)

	g, err = uc.service.Update(ctx, g)
	if err != nil {
		return nil, err
	}
	return toGenreResponse(g), nil
}

// Delete 删除分类（只删除与图书的关联）
func (uc *GenreUseCase) Delete(ctx context.Context, id uint) error {
	return uc.service.Delete(ctx, id)
}

// List 分页列表
func (uc *GenreUseCase) List(ctx context.Context, page, pageSize int) ([]*GenreResponse, int64, error) {
	genres, total, err := uc.service.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	list := make([]*GenreResponse, 0, len(genres))
	for _, g := range genres {
		list = append(list, toGenreResponse(g))
	}
	return list, total, nil
}
