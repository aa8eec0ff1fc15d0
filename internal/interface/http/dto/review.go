package dto

// ReviewRequest 发表/全量更新书评
// 发表人取当前登录用户，不接受客户端传入
type ReviewRequest struct {
	BookID uint   `json:"book_id" binding:"required" example:"1"`
	Text   string `json:"review_text" binding:"required,notblank,max=200" example:"值得反复阅读"`
	Rating int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
}

// ReviewPatchRequest 部分更新书评
type ReviewPatchRequest struct {
	Text   *string `json:"review_text" binding:"omitempty,notblank,max=200"`
	Rating *int    `json:"rating" binding:"omitempty,min=1,max=5"`
}
