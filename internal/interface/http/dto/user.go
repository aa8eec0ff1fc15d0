package dto

// RegisterRequest HTTP层注册请求
// 说明：HTTP层的DTO，包含参数验证tag
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required,min=8,max=20" example:"secret123"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50" example:"reader"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"reader@example.com"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// RefreshRequest 刷新Access Token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
