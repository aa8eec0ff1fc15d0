package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/jwt"
	"github.com/xiebiao/bookstore-backend/pkg/response"
)

// Context中保存的认证信息key
const (
	ctxUserID         = "user_id"
	ctxEmail          = "email"
	ctxNickname       = "nickname"
	ctxAccessToken    = "access_token"
	ctxTokenExpiresAt = "token_expires_at"
)

// TokenBlacklist 已登出Token查询，由redis.SessionStore实现
type TokenBlacklist interface {
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// AuthMiddleware JWT认证中间件
// 1. 从Header提取Token
// 2. 检查Token黑名单
// 3. 验证Token有效性
// 4. 将用户信息注入Context
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	blacklist  TokenBlacklist
}

// NewAuthMiddleware 创建认证中间件
func NewAuthMiddleware(jwtManager *jwt.Manager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		blacklist:  blacklist,
	}
}

// RequireAuth 要求登录，失败时在进入Handler之前返回401
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 格式：Authorization: Bearer <token>
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, apperrors.ErrUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			abort(c, apperrors.New(apperrors.ErrCodeInvalidToken, "Token格式错误"))
			return
		}
		tokenString := parts[1]

		// 2. 用户已登出的Token
		blacklisted, err := m.blacklist.IsInBlacklist(c.Request.Context(), tokenString)
		if err != nil {
			abort(c, err)
			return
		}
		if blacklisted {
			abort(c, apperrors.New(apperrors.ErrCodeTokenExpired, "Token已失效，请重新登录"))
			return
		}

		// 3. 验证签名和有效期（Refresh Token不能用来访问接口）
		claims, err := m.jwtManager.ParseToken(tokenString)
		if err != nil {
			abort(c, err)
			return
		}

		// 4. 注入用户信息
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Set(ctxNickname, claims.Nickname)
		c.Set(ctxAccessToken, tokenString)
		if claims.ExpiresAt != nil {
			c.Set(ctxTokenExpiresAt, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}

// GetUserID 从Context获取当前登录用户ID，未登录返回0
func GetUserID(c *gin.Context) uint {
	if userID, exists := c.Get(ctxUserID); exists {
		if uid, ok := userID.(uint); ok {
			return uid
		}
	}
	return 0
}

// GetEmail 从Context获取当前登录用户邮箱
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// GetAccessToken 当前请求使用的Access Token及其过期时间（登出时加入黑名单）
func GetAccessToken(c *gin.Context) (string, time.Time) {
	return c.GetString(ctxAccessToken), c.GetTime(ctxTokenExpiresAt)
}

// MustGetUserID 从Context获取用户ID（如果不存在则panic）
// 说明：用于已经通过RequireAuth中间件的Handler
func MustGetUserID(c *gin.Context) uint {
	userID := GetUserID(c)
	if userID == 0 {
		panic("user_id not found in context")
	}
	return userID
}
