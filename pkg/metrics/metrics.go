// Package metrics Prometheus指标
//
// 指标分三组：
//   - HTTP：请求总数、耗时、处理中请求数（由middleware.Metrics记录）
//   - 订单：下单成功/失败数、耗时、处理中订单数、订单金额分布、状态变更数
//   - 外部依赖：图书目录查询结果、缓存命中、熔断器状态、事件发布数
//
// 使用方式：
//
//	metrics.InitMetrics()
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// 命名规范：Counter以_total结尾，Histogram以单位结尾（_seconds），避免高基数标签（不用user_id）
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var initOnce sync.Once

var (
	// HTTPRequestsTotal HTTP请求总数，标签：method、path（路由模板）、status
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时，标签：method、path
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数
	HTTPRequestsInProgress prometheus.Gauge

	// OrdersCreatedTotal 下单成功数
	OrdersCreatedTotal prometheus.Counter

	// OrdersFailedTotal 下单失败数，标签：reason（insufficient_stock/not_found/invalid/error）
	OrdersFailedTotal *prometheus.CounterVec

	// OrderCreationDuration 下单耗时
	OrderCreationDuration prometheus.Histogram

	// OrdersInProgress 正在处理的下单请求数
	OrdersInProgress prometheus.Gauge

	// OrderAmount 订单金额分布（元）
	OrderAmount prometheus.Histogram

	// OrderStatusChangesTotal 订单状态变更数，标签：status
	OrderStatusChangesTotal *prometheus.CounterVec

	// CatalogLookupsTotal 外部图书目录查询数，标签：result（hit/miss/error/rejected）
	CatalogLookupsTotal *prometheus.CounterVec

	// CatalogLookupDuration 外部图书目录请求耗时（只统计真正发出的请求）
	CatalogLookupDuration prometheus.Histogram

	// CircuitBreakerState 熔断器状态 0=CLOSED, 1=OPEN, 2=HALF_OPEN，标签：name
	CircuitBreakerState *prometheus.GaugeVec

	// CircuitBreakerRequests 熔断器请求数，标签：name、result（success/failure/rejected）
	CircuitBreakerRequests *prometheus.CounterVec

	// MessagesPublishedTotal 事件发布数，标签：routing_key、result（success/failure）
	MessagesPublishedTotal *prometheus.CounterVec
)

// InitMetrics 注册所有指标到默认Registry（可重复调用）
func InitMetrics() {
	initOnce.Do(func() {
		HTTPRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP请求总数",
			},
			[]string{"method", "path", "status"},
		)

		HTTPRequestDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP请求耗时（秒）",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		})

		OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "下单成功总数",
		})

		OrdersFailedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_failed_total",
				Help: "下单失败总数",
			},
			[]string{"reason"},
		)

		OrderCreationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_creation_duration_seconds",
			Help:    "下单耗时（秒）",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		})

		OrdersInProgress = promauto.NewGauge(prometheus.GaugeOpts{
			Name: "orders_in_progress",
			Help: "正在处理的下单请求数",
		})

		OrderAmount = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "order_amount_yuan",
			Help:    "订单金额分布（元）",
			Buckets: []float64{10, 20, 50, 100, 200, 500, 1000},
		})

		OrderStatusChangesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_status_changes_total",
				Help: "订单状态变更总数",
			},
			[]string{"status"},
		)

		CatalogLookupsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_lookups_total",
				Help: "外部图书目录查询总数",
			},
			[]string{"result"},
		)

		CatalogLookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "catalog_lookup_duration_seconds",
			Help:    "外部图书目录请求耗时（秒）",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		})

		CircuitBreakerState = promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "circuit_breaker_state",
				Help: "熔断器状态（0=CLOSED, 1=OPEN, 2=HALF_OPEN）",
			},
			[]string{"name"},
		)

		CircuitBreakerRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "circuit_breaker_requests_total",
				Help: "熔断器请求总数",
			},
			[]string{"name", "result"},
		)

		MessagesPublishedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "messages_published_total",
				Help: "事件发布总数",
			},
			[]string{"routing_key", "result"},
		)
	})
}

// IncCounter 递增Counter
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	gauge.Set(value)
}

// SetGaugeVec 设置GaugeVec值
func SetGaugeVec(gauge *prometheus.GaugeVec, labels map[string]string, value float64) {
	gauge.With(labels).Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
