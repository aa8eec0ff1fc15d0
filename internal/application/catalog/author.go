package catalog

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/author"
)

// AuthorUseCase 作者维护用例
type AuthorUseCase struct {
	service author.Service
}

// NewAuthorUseCase 创建作者用例
func NewAuthorUseCase(service author.Service) *AuthorUseCase {
	return &AuthorUseCase{service: service}
}

// AuthorInput 创建/全量更新参数
type AuthorInput struct {
	FirstName   string
	LastName    string
	Nationality string
}

// AuthorPatch 部分更新参数
type AuthorPatch struct {
	FirstName   *string
	LastName    *string
	Nationality *string
}

// AuthorResponse 作者响应DTO
type AuthorResponse struct {
	ID          uint   `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	FullName    string `json:"full_name"`
	Nationality string `json:"nationality,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toAuthorResponse(a *author.Author) *AuthorResponse {
	return &AuthorResponse{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		FullName:    a.FullName(),
		Nationality: a.Nationality,
		CreatedAt:   a.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:   a.UpdatedAt.UTC().Format(timeLayout),
	}
}

// Create 创建作者
func (uc *AuthorUseCase) Create(ctx context.Context, in AuthorInput) (*AuthorResponse, error) {
	a, err := uc.service.Create(ctx, &author.Author{
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Nationality: in.Nationality,
	})
	if err != nil {
		return nil, err
	}
	return toAuthorResponse(a), nil
}

// Get 作者详情
func (uc *AuthorUseCase) Get(ctx context.Context, id uint) (*AuthorResponse, error) {
	a, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAuthorResponse(a), nil
}

// Update 全量更新
func (uc *AuthorUseCase) Update(ctx context.Context, id uint, in AuthorInput) (*AuthorResponse, error) {
	a, err := uc.service.Update(ctx, &author.Author{
		ID:          id,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Nationality: in.Nationality,
	})
	if err != nil {
		return nil, err
	}
	return toAuthorResponse(a), nil
}

// Patch 部分更新
func (uc *AuthorUseCase) Patch(ctx context.Context, id uint, patch AuthorPatch) (*AuthorResponse, error) {
	a, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	setString(&a.FirstName, patch.FirstName)
	setString(&a.LastName, patch.LastName)
	setString(&a.Nationality, patch.Nationality)

	a, err = uc.service.Update(ctx, a)
	if err != nil {
		return nil, err
	}
	return toAuthorResponse(a), nil
}

// Delete 删除作者（只删除与图书的关联）
func (uc *AuthorUseCase) Delete(ctx context.Context, id uint) error {
	return uc.service.Delete(ctx, id)
}

// List 分页列表
func (uc *AuthorUseCase) List(ctx context.Context, page, pageSize int) ([]*AuthorResponse, int64, error) {
	authors, total, err := uc.service.List(ctx, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	list := make([]*AuthorResponse, 0, len(authors))
	for _, a := range authors {
		list = append(list, toAuthorResponse(a))
	}
	return list, total, nil
}
