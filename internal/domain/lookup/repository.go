package lookup

import (
	"context"
)

// Catalog 外部图书目录
type Catalog interface {
	Search(ctx context.Context, query string, limit int) (*Result, error)
}

// Cache 检索结果缓存，未命中返回(nil, nil)
type Cache interface {
	Get(ctx context.Context, query string, limit int) (*Result, error)
	Set(ctx context.Context, query string, limit int, result *Result) error
}
