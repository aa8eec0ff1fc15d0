// Package openlibrary Open Library检索客户端
//
// 只用到一个接口：GET {base_url}/search.json?q=&limit=
// 请求经过熔断器，连续失败达到阈值后直接快速失败，不做重试。
package openlibrary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-backend/internal/domain/lookup"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-backend/pkg/circuitbreaker"
	"github.com/xiebiao/bookstore-backend/pkg/metrics"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
)

const (
	breakerName = "openlibrary"
	tracerName  = "openlibrary"

	// 错误响应体只截取前面一段放进错误信息
	maxErrorBody = 512
)

// Client Open Library客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	logger     *zap.Logger
}

var _ lookup.Catalog = (*Client)(nil)

// NewClient 根据配置创建客户端
func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	return New(cfg.Lookup.BaseURL, &http.Client{Timeout: cfg.Lookup.Timeout}, circuitbreaker.Config{
		Timeout: cfg.Lookup.OpenTimeout,
		ReadyToTrip: func(c circuitbreaker.Counts) bool {
			return c.ConsecutiveFailures >= cfg.Lookup.FailureThreshold
		},
	}, log)
}

// New 创建客户端（测试中传入httptest的地址）
func New(baseURL string, httpClient *http.Client, breakerCfg circuitbreaker.Config, log *zap.Logger) *Client {
	metrics.InitMetrics()
	breakerCfg.OnStateChange = func(name string, from, to circuitbreaker.State) {
		log.Warn("熔断器状态变化",
			zap.String("name", name),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
		metrics.SetGaugeVec(metrics.CircuitBreakerState, map[string]string{"name": name}, float64(to))
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		breaker:    circuitbreaker.NewCircuitBreaker(breakerName, breakerCfg),
		logger:     log,
	}
}

// searchResponse search.json的响应（只取用到的字段）
type searchResponse struct {
	NumFound int `json:"numFound"`
	Docs     []struct {
		Key              string   `json:"key"`
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
		EditionCount     int      `json:"edition_count"`
		ISBN             []string `json:"isbn"`
	} `json:"docs"`
}

// Search 检索作品
// 上游错误（网络、非2xx、响应无法解析）和熔断打开都返回lookup.NewUpstreamError
func (c *Client) Search(ctx context.Context, query string, limit int) (*lookup.Result, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "OpenLibrary.Search")
	defer span.End()

	var resp *searchResponse
	err := c.breaker.Execute(func() error {
		var err error
		resp, err = c.search(ctx, query, limit)
		return err
	})

	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": breakerName, "result": "rejected"})
		tracing.RecordError(span, err)
		return nil, lookup.NewUpstreamError(err)
	case err != nil:
		metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": breakerName, "result": "failure"})
		tracing.RecordError(span, err)
		c.logger.Warn("Open Library请求失败", zap.String("q", query), zap.Error(err))
		return nil, lookup.NewUpstreamError(err)
	}
	metrics.IncCounterVec(metrics.CircuitBreakerRequests, map[string]string{"name": breakerName, "result": "success"})

	return toResult(resp), nil
}

func (c *Client) search(ctx context.Context, query string, limit int) (*searchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.httpClient.Do(req)
	metrics.ObserveHistogram(metrics.CatalogLookupDuration, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, fmt.Errorf("%s: %s", res.Status, strings.TrimSpace(string(body)))
	}

	var out searchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}
	return &out, nil
}

func toResult(resp *searchResponse) *lookup.Result {
	result := &lookup.Result{
		NumFound: resp.NumFound,
		Works:    make([]lookup.Work, 0, len(resp.Docs)),
	}
	for _, d := range resp.Docs {
		result.Works = append(result.Works, lookup.Work{
			Key:              d.Key,
			Title:            d.Title,
			AuthorNames:      d.AuthorName,
			FirstPublishYear: d.FirstPublishYear,
			EditionCount:     d.EditionCount,
			ISBNs:            d.ISBN,
		})
	}
	return result
}
