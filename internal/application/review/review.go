package review

import (
	"context"

	"github.com/xiebiao/bookstore-backend/internal/domain/review"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

const timeLayout = "2006-01-02 15:04:05"

// ReviewUseCase 书评用例
// 发表人始终是当前登录用户，修改/删除只允许本人
type ReviewUseCase struct {
	service review.Service
}

// NewReviewUseCase 创建书评用例
func NewReviewUseCase(service review.Service) *ReviewUseCase {
	return &ReviewUseCase{service: service}
}

// ReviewInput 创建/全量更新参数
type ReviewInput struct {
	BookID uint
	Text   string
	Rating int
}

// ReviewPatch 部分更新参数
type ReviewPatch struct {
	Text   *string
	Rating *int
}

// ReviewResponse 书评响应DTO
type ReviewResponse struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	UserID    uint   `json:"user_id"`
	Text      string `json:"review_text"`
	Rating    int    `json:"rating"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toReviewResponse(r *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        r.ID,
		BookID:    r.BookID,
		UserID:    r.UserID,
		Text:      r.Text,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt: r.UpdatedAt.UTC().Format(timeLayout),
	}
}

// Create 发表书评
func (uc *ReviewUseCase) Create(ctx context.Context, userID uint, in ReviewInput) (*ReviewResponse, error) {
	r, err := uc.service.Create(ctx, &review.Review{
		BookID: in.BookID,
		UserID: userID,
		Text:   in.Text,
		Rating: in.Rating,
	})
	if err != nil {
		return nil, err
	}
	return toReviewResponse(r), nil
}

// Get 书评详情
func (uc *ReviewUseCase) Get(ctx context.Context, id uint) (*ReviewResponse, error) {
	r, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toReviewResponse(r), nil
}

// Update 全量更新
// 书评所属图书不可变，请求中带了不同的book_id时返回参数错误
func (uc *ReviewUseCase) Update(ctx context.Context, userID, id uint, in ReviewInput) (*ReviewResponse, error) {
	existing, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.IsOwnedBy(userID) {
		return nil, review.ErrNotOwner
	}
	if in.BookID != 0 && in.BookID != existing.BookID {
		return nil, apperrors.NewValidation("book_id", "不可修改")
	}

	r, err := uc.service.Update(ctx, userID, &review.Review{ID: id, Text: in.Text, Rating: in.Rating})
	if err != nil {
		return nil, err
	}
	return toReviewResponse(r), nil
}

// Patch 部分更新
func (uc *ReviewUseCase) Patch(ctx context.Context, userID, id uint, patch ReviewPatch) (*ReviewResponse, error) {
	existing, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Text != nil {
		existing.Text = *patch.Text
	}
	if patch.Rating != nil {
		existing.Rating = *patch.Rating
	}

	r, err := uc.service.Update(ctx, userID, existing)
	if err != nil {
		return nil, err
	}
	return toReviewResponse(r), nil
}

// Delete 删除书评
func (uc *ReviewUseCase) Delete(ctx context.Context, userID, id uint) error {
	return uc.service.Delete(ctx, userID, id)
}

// List 全部书评，按创建时间倒序
func (uc *ReviewUseCase) List(ctx context.Context, page, pageSize int) ([]*ReviewResponse, int64, error) {
	return uc.list(ctx, review.ListParams{Page: page, PageSize: pageSize})
}

// ListByBook 指定图书的书评，图书不存在返回404
func (uc *ReviewUseCase) ListByBook(ctx context.Context, bookID uint, page, pageSize int) ([]*ReviewResponse, int64, error) {
	return uc.list(ctx, review.ListParams{BookID: bookID, Page: page, PageSize: pageSize})
}

func (uc *ReviewUseCase) list(ctx context.Context, params review.ListParams) ([]*ReviewResponse, int64, error) {
	reviews, total, err := uc.service.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	list := make([]*ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		list = append(list, toReviewResponse(r))
	}
	return list, total, nil
}
