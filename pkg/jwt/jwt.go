package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

const issuer = "bookstore"

// TokenType Token用途
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Manager JWT管理器
// 双Token机制：Access Token（短期，API鉴权）+ Refresh Token（长期，只能用来换Access Token）
type Manager struct {
	secret             []byte
	accessTokenExpire  time.Duration
	refreshTokenExpire time.Duration
	now                func() time.Time
}

// NewManager 创建JWT管理器
func NewManager(secret string, accessTokenExpire, refreshTokenExpire time.Duration) *Manager {
	return &Manager{
		secret:             []byte(secret),
		accessTokenExpire:  accessTokenExpire,
		refreshTokenExpire: refreshTokenExpire,
		now:                time.Now,
	}
}

// Claims 自定义JWT Claims
type Claims struct {
	UserID   uint      `json:"user_id"`
	Email    string    `json:"email,omitempty"`
	Nickname string    `json:"nickname,omitempty"`
	Type     TokenType `json:"typ"`
	jwt.RegisteredClaims
}

// TokenPair Token对
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token有效期（秒）
}

// AccessTokenTTL Access Token有效期（登出时黑名单TTL与此一致）
func (m *Manager) AccessTokenTTL() time.Duration {
	return m.accessTokenExpire
}

// RefreshTokenTTL Refresh Token有效期（会话TTL与此一致）
func (m *Manager) RefreshTokenTTL() time.Duration {
	return m.refreshTokenExpire
}

// GenerateToken 生成Token对
func (m *Manager) GenerateToken(userID uint, email, nickname string) (*TokenPair, error) {
	access, err := m.sign(Claims{
		UserID:   userID,
		Email:    email,
		Nickname: nickname,
		Type:     TokenTypeAccess,
	}, m.accessTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Access Token失败")
	}

	// Refresh Token只带UserID
	refresh, err := m.sign(Claims{
		UserID: userID,
		Type:   TokenTypeRefresh,
	}, m.refreshTokenExpire)
	if err != nil {
		return nil, apperrors.Wrap(err, "生成Refresh Token失败")
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(m.accessTokenExpire.Seconds()),
	}, nil
}

// ParseToken 解析并验证Access Token
func (m *Manager) ParseToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeAccess)
}

// ParseRefreshToken 解析并验证Refresh Token
func (m *Manager) ParseRefreshToken(tokenString string) (*Claims, error) {
	return m.parse(tokenString, TokenTypeRefresh)
}

// RefreshAccessToken 用Refresh Token换新的Access Token
// email/nickname由调用方从用户仓储查出后传入
func (m *Manager) RefreshAccessToken(refreshToken, email, nickname string) (string, *Claims, error) {
	claims, err := m.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", nil, err
	}

	token, err := m.sign(Claims{
		UserID:   claims.UserID,
		Email:    email,
		Nickname: nickname,
		Type:     TokenTypeAccess,
	}, m.accessTokenExpire)
	if err != nil {
		return "", nil, apperrors.Wrap(err, "刷新Token失败")
	}
	return token, claims, nil
}

func (m *Manager) sign(claims Claims, ttl time.Duration) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    issuer,
		Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) parse(tokenString string, want TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非法的签名算法: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		// jwt/v5的错误是包装过的，必须用errors.Is
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Type != want {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}
