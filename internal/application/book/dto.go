package book

import (
	"fmt"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/pkg/money"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04:05"
)

// BookResponse 图书响应DTO
// 价格以2位小数字符串返回，避免浮点误差
type BookResponse struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	PublisherID   uint   `json:"publisher_id"`
	AuthorIDs     []uint `json:"author_ids"`
	GenreIDs      []uint `json:"genre_ids"`
	PublishedDate string `json:"published_date"`
	Price         string `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	Description   string `json:"description"`
	CoverURL      string `json:"cover_url,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// CoverURL 封面下载地址，没有封面返回空串
func CoverURL(b *book.Book) string {
	if b.CoverKey == "" {
		return ""
	}
	return fmt.Sprintf("/api/v1/books/%d/cover", b.ID)
}

func toBookResponse(b *book.Book) *BookResponse {
	authorIDs, genreIDs := b.AuthorIDs, b.GenreIDs
	if authorIDs == nil {
		authorIDs = []uint{}
	}
	if genreIDs == nil {
		genreIDs = []uint{}
	}
	return &BookResponse{
		ID:            b.ID,
		Title:         b.Title,
		PublisherID:   b.PublisherID,
		AuthorIDs:     authorIDs,
		GenreIDs:      genreIDs,
		PublishedDate: b.PublishedDate.UTC().Format(dateLayout),
		Price:         money.Format(b.Price),
		StockQuantity: b.Stock,
		Description:   b.Description,
		CoverURL:      CoverURL(b),
		CreatedAt:     b.CreatedAt.UTC().Format(timeLayout),
		UpdatedAt:     b.UpdatedAt.UTC().Format(timeLayout),
	}
}
