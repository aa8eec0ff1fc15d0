package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-backend/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/jwt"
)

// SessionStore 会话存储，由redis.SessionStore实现
type SessionStore interface {
	SaveSession(ctx context.Context, userID uint, sessionData map[string]interface{}, ttl time.Duration) error
	GetSession(ctx context.Context, userID uint) (map[string]string, error)
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
}

// LoginUseCase 用户登录用例
// 1. 验证邮箱密码
// 2. 生成JWT Token对
// 3. 保存会话到Redis
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
	logger       *zap.Logger
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore SessionStore,
	logger *zap.Logger,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
		logger:       logger,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserInfo `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"` // Access Token过期时间（秒）
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	// 1. 验证邮箱密码
	u, err := uc.userService.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	// 2. 生成Token对
	tokenPair, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.Nickname)
	if err != nil {
		return nil, err
	}

	// 3. 保存会话，有效期与Refresh Token一致
	// 会话保存失败不影响登录，只是之后无法刷新Token
	sessionData := map[string]interface{}{
		"user_id":  u.ID,
		"email":    u.Email,
		"login_at": time.Now().Unix(),
		"ip":       req.ClientIP,
	}
	if err := uc.sessionStore.SaveSession(ctx, u.ID, sessionData, uc.jwtManager.RefreshTokenTTL()); err != nil {
		uc.logger.Warn("保存会话失败", zap.Uint("user_id", u.ID), zap.Error(err))
	}

	return &LoginResponse{
		User:         *toUserInfo(u),
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
	}, nil
}

// RefreshTokenUseCase 刷新Access Token
type RefreshTokenUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore SessionStore
}

// NewRefreshTokenUseCase 创建刷新用例
func NewRefreshTokenUseCase(userService user.Service, jwtManager *jwt.Manager, sessionStore SessionStore) *RefreshTokenUseCase {
	return &RefreshTokenUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Execute 用Refresh Token换新的Access Token
// 会话已删除（登出）时拒绝刷新
func (uc *RefreshTokenUseCase) Execute(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	claims, err := uc.jwtManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if _, err := uc.sessionStore.GetSession(ctx, claims.UserID); err != nil {
		return nil, err
	}

	u, err := uc.userService.Get(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}

	access, _, err := uc.jwtManager.RefreshAccessToken(refreshToken, u.Email, u.Nickname)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken: access,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenTTL().Seconds()),
	}, nil
}

// LogoutUseCase 用户登出用例
type LogoutUseCase struct {
	sessionStore SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(sessionStore SessionStore) *LogoutUseCase {
	return &LogoutUseCase{sessionStore: sessionStore}
}

// LogoutRequest 登出请求
type LogoutRequest struct {
	UserID      uint
	AccessToken string
	ExpiresAt   time.Time // Access Token过期时间
}

// Execute 执行登出
// 1. 删除会话（Refresh Token随之失效）
// 2. Access Token加入黑名单，TTL为剩余有效期
func (uc *LogoutUseCase) Execute(ctx context.Context, req LogoutRequest) error {
	if err := uc.sessionStore.DeleteSession(ctx, req.UserID); err != nil {
		return err
	}
	return uc.sessionStore.AddToBlacklist(ctx, req.AccessToken, time.Until(req.ExpiresAt))
}
