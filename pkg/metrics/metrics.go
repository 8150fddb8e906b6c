// Package metrics 提供基于Prometheus的指标收集
//
// # 为什么压测实验需要Metrics？
//
// 压测工具只能看到"外部表现"（RPS、P99延迟、错误率），
// 而下面这些指标回答"服务内部发生了什么"：
//
//   - db_queries_total: 每个请求到底发了多少条SQL？（N+1问题一目了然）
//   - recommendation_cache_entries: 推荐缓存里有多少条目？（无界缓存持续增长）
//   - recommendation_cache_requests_total{result="hit|miss"}: 缓存命中率
//   - checkout_duration_seconds: 结算耗时分布（模拟支付延迟）
//
// # 指标类型回顾
//
//   - Counter: 只增不减（请求数、SQL条数、订单数）
//   - Gauge: 可增可减（在途请求数、缓存条目数）
//   - Histogram: 分布（耗时），Prometheus据此计算P50/P90/P99
//
// # 使用示例
//
//	metrics.InitMetrics()
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	metrics.IncCounterVec(metrics.RecommendationCacheRequests, map[string]string{"result": "hit"})
//
// # 设计要点
//
//  1. InitMetrics只注册一次（sync.Once），重复调用无副作用
//  2. 所有辅助函数对nil指标安全：未初始化时（例如单元测试未调用InitMetrics）静默忽略
//  3. 标签只使用有限取值（method、route、result），不用user_id、book_id这类高基数值
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	initOnce sync.Once

	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/books/:id）、status（200/404）
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	HTTPRequestDuration *prometheus.HistogramVec

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress prometheus.Gauge

	// 数据库指标

	// DBQueriesTotal 发往数据库的语句总数（Counter）
	// 标签：operation（query/create/update/delete/row/raw）
	// 由gorm回调计数，对比leaky和optimized两种模式下的SQL数量
	DBQueriesTotal *prometheus.CounterVec

	// 推荐缓存指标

	// RecommendationCacheRequests 推荐缓存查询次数（Counter）
	// 标签：result（hit/miss）
	RecommendationCacheRequests *prometheus.CounterVec

	// RecommendationCacheEntries 推荐缓存当前条目数（Gauge）
	RecommendationCacheEntries prometheus.Gauge

	// RecommendationComputeDuration 推荐计算耗时（Histogram，仅统计缓存未命中）
	RecommendationComputeDuration prometheus.Histogram

	// 订单指标

	// OrdersCreatedTotal 订单创建总数（Counter）
	OrdersCreatedTotal prometheus.Counter

	// OrdersFailedTotal 结算失败总数（Counter）
	OrdersFailedTotal prometheus.Counter

	// CheckoutDuration 结算耗时（Histogram）
	CheckoutDuration prometheus.Histogram
)

// InitMetrics 初始化所有Prometheus指标并注册到默认Registry
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
				Name: "http_request_duration_seconds",
				Help: "HTTP请求耗时（秒）",
				// 推荐接口冷启动可能达到秒级，桶上限放到10s
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 3, 5, 10},
			},
			[]string{"method", "path"},
		)

		HTTPRequestsInProgress = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_progress",
				Help: "正在处理的HTTP请求数",
			},
		)

		DBQueriesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "db_queries_total",
				Help: "数据库语句总数",
			},
			[]string{"operation"},
		)

		RecommendationCacheRequests = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recommendation_cache_requests_total",
				Help: "推荐缓存查询次数",
			},
			[]string{"result"},
		)

		RecommendationCacheEntries = promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "recommendation_cache_entries",
				Help: "推荐缓存当前条目数",
			},
		)

		RecommendationComputeDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recommendation_compute_duration_seconds",
				Help:    "推荐计算耗时（秒）",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		)

		OrdersCreatedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "订单创建总数",
			},
		)

		OrdersFailedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orders_failed_total",
				Help: "结算失败总数",
			},
		)

		CheckoutDuration = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name: "checkout_duration_seconds",
				Help: "结算耗时（秒）",
				// 结算包含200ms模拟支付延迟，桶从100ms起
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5},
			},
		)
	})
}

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	if counter == nil {
		return
	}
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	if counter == nil {
		return
	}
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	if gauge == nil {
		return
	}
	gauge.Dec()
}

// SetGauge 设置Gauge值
func SetGauge(gauge prometheus.Gauge, value float64) {
	if gauge == nil {
		return
	}
	gauge.Set(value)
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	if histogram == nil {
		return
	}
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	if histogram == nil {
		return
	}
	histogram.With(labels).Observe(value)
}
