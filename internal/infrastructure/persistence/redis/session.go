package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// SessionStore 会话存储
// 1. 登录成功后保存会话（登录时间、IP），TTL与Refresh Token一致
// 2. 登出时删除会话，并把Access Token加入黑名单
// 3. Key设计：session:{user_id}、blacklist:{token}
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore 创建会话存储
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("session:%d", userID)
}

func blacklistKey(token string) string {
	return "blacklist:" + token
}

// SaveSession 保存用户会话
// HSet和Expire放在同一个Pipeline里，一次网络往返
func (s *SessionStore) SaveSession(ctx context.Context, userID uint, sessionData map[string]interface{}, ttl time.Duration) error {
	key := sessionKey(userID)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, sessionData)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperrors.ErrRedisError.WithErr(fmt.Errorf("保存会话失败: %w", err))
	}
	return nil
}

// GetSession 获取用户会话，不存在返回ErrUnauthorized
func (s *SessionStore) GetSession(ctx context.Context, userID uint) (map[string]string, error) {
	result, err := s.client.HGetAll(ctx, sessionKey(userID)).Result()
	if err != nil {
		return nil, apperrors.ErrRedisError.WithErr(fmt.Errorf("获取会话失败: %w", err))
	}
	if len(result) == 0 {
		return nil, apperrors.ErrUnauthorized
	}
	return result, nil
}

// DeleteSession 删除用户会话（用于登出）
func (s *SessionStore) DeleteSession(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return apperrors.ErrRedisError.WithErr(fmt.Errorf("删除会话失败: %w", err))
	}
	return nil
}

// AddToBlacklist 将Token加入黑名单，ttl取Token剩余有效期
func (s *SessionStore) AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, blacklistKey(token), "revoked", ttl).Err(); err != nil {
		return apperrors.ErrRedisError.WithErr(fmt.Errorf("添加Token到黑名单失败: %w", err))
	}
	return nil
}

// IsInBlacklist 检查Token是否在黑名单中
func (s *SessionStore) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := s.client.Exists(ctx, blacklistKey(token)).Result()
	if err != nil {
		return false, apperrors.ErrRedisError.WithErr(fmt.Errorf("检查黑名单失败: %w", err))
	}
	return exists > 0, nil
}
