package dto

// SearchRequest 外部图书目录查询参数
type SearchRequest struct {
	Query string `form:"q" binding:"required,notblank,max=200" example:"dune"`
	Limit int    `form:"limit" binding:"omitempty,min=1" example:"10"`
}
