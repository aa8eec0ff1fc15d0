package dto

import "github.com/shopspring/decimal"

// BookRequest 创建/全量更新图书
// 同时支持JSON和multipart/form-data（POST /books可附带cover_image文件）
type BookRequest struct {
	Title         string           `json:"title" form:"title" binding:"required,notblank,max=100" example:"1984"`
	PublisherID   uint             `json:"publisher_id" form:"publisher_id" binding:"required" example:"1"`
	AuthorIDs     []uint           `json:"author_ids" form:"author_ids" example:"1,2"`
	GenreIDs      []uint           `json:"genre_ids" form:"genre_ids" example:"3"`
	PublishedDate string           `json:"published_date" form:"published_date" binding:"required,datetime=2006-01-02" example:"1949-06-08"`
	Price         *decimal.Decimal `json:"price" form:"price" binding:"required,money2" swaggertype:"string" example:"19.99"`
	StockQuantity *int             `json:"stock_quantity" form:"stock_quantity" binding:"required,min=0" example:"10"`
	Description   string           `json:"description" form:"description" binding:"max=5000" example:"反乌托邦小说"`
}

// BookPatchRequest 部分更新图书，未传的字段保持不变
type BookPatchRequest struct {
	Title         *string          `json:"title" binding:"omitempty,notblank,max=100"`
	PublisherID   *uint            `json:"publisher_id" binding:"omitempty,min=1"`
	AuthorIDs     *[]uint          `json:"author_ids"`
	GenreIDs      *[]uint          `json:"genre_ids"`
	PublishedDate *string          `json:"published_date" binding:"omitempty,datetime=2006-01-02"`
	Price         *decimal.Decimal `json:"price" binding:"omitempty,money2" swaggertype:"string"`
	StockQuantity *int             `json:"stock_quantity" binding:"omitempty,min=0"`
	Description   *string          `json:"description" binding:"omitempty,max=5000"`
}
