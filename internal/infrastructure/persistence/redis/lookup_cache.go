package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-backend/internal/domain/lookup"
)

// LookupCache 外部目录检索结果缓存
// Key：lookup:search:{小写检索词}:{limit}，值为JSON
type LookupCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLookupCache 创建检索缓存
func NewLookupCache(client *redis.Client, ttl time.Duration) *LookupCache {
	return &LookupCache{client: client, ttl: ttl}
}

var _ lookup.Cache = (*LookupCache)(nil)

func lookupKey(query string, limit int) string {
	return fmt.Sprintf("lookup:search:%s:%d", strings.ToLower(strings.TrimSpace(query)), limit)
}

// Get 未命中返回(nil, nil)
func (c *LookupCache) Get(ctx context.Context, query string, limit int) (*lookup.Result, error) {
	val, err := c.client.Get(ctx, lookupKey(query, limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("获取缓存失败: %w", err)
	}

	var result lookup.Result
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, fmt.Errorf("反序列化失败: %w", err)
	}
	return &result, nil
}

// Set 写入缓存
func (c *LookupCache) Set(ctx context.Context, query string, limit int, result *lookup.Result) error {
	val, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	if err := c.client.Set(ctx, lookupKey(query, limit), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}
