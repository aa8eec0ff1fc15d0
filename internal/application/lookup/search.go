package lookup

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-backend/internal/domain/lookup"
	"github.com/xiebiao/bookstore-backend/pkg/circuitbreaker"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
)

// SearchUseCase 外部图书目录检索
// 先查Redis缓存，未命中再请求Open Library；缓存读写失败只记日志
type SearchUseCase struct {
	catalog      lookup.Catalog
	cache        lookup.Cache
	defaultLimit int
	maxLimit     int
	logger       *zap.Logger
}

// NewSearchUseCase 创建检索用例
func NewSearchUseCase(catalog lookup.Catalog, cache lookup.Cache, defaultLimit, maxLimit int, logger *zap.Logger) *SearchUseCase {
	metrics.InitMetrics()
	return &SearchUseCase{
		catalog:      catalog,
		cache:        cache,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		logger:       logger,
	}
}

// SearchRequest 检索请求
type SearchRequest struct {
	Query string
	Limit int // <=0使用默认值，超过上限截断
}

// SearchResponse 检索结果
type SearchResponse struct {
	Query  string `json:"query"`
	Cached bool   `json:"cached"`
	*lookup.Result
}

// Execute 执行检索
func (uc *SearchUseCase) Execute(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, lookup.ErrEmptyQuery
	}
	limit := req.Limit
	if limit <= 0 {
		limit = uc.defaultLimit
	}
	if limit > uc.maxLimit {
		limit = uc.maxLimit
	}

	ctx, span := tracing.StartSpan(ctx, "application/lookup", "CatalogSearch")
	defer span.End()
	span.SetAttributes(attribute.String("lookup.query", query), attribute.Int("lookup.limit", limit))

	// 1. 缓存
	cached, err := uc.cache.Get(ctx, query, limit)
	if err != nil {
		uc.logger.Warn("读取检索缓存失败", zap.String("q", query), zap.Error(err))
	}
	if cached != nil {
		metrics.IncCounterVec(metrics.CatalogLookupsTotal, map[string]string{"result": "hit"})
		return &SearchResponse{Query: query, Cached: true, Result: cached}, nil
	}

	// 2. 上游
	result, err := uc.catalog.Search(ctx, query, limit)
	if err != nil {
		metrics.IncCounterVec(metrics.CatalogLookupsTotal, map[string]string{"result": lookupErrorLabel(err)})
		tracing.RecordError(span, err)
		return nil, err
	}
	metrics.IncCounterVec(metrics.CatalogLookupsTotal, map[string]string{"result": "miss"})

	// 3. 回填缓存
	if err := uc.cache.Set(ctx, query, limit, result); err != nil {
		uc.logger.Warn("写入检索缓存失败", zap.String("q", query), zap.Error(err))
	}
	return &SearchResponse{Query: query, Result: result}, nil
}

func lookupErrorLabel(err error) string {
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return "rejected"
	}
	return "error"
}
