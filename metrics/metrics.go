// Package metrics 控制台 Prometheus 指标
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 控制台指标集合
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	GuardDecisionsTotal    *prometheus.CounterVec
	BackendRequestDuration *prometheus.HistogramVec
	StaleResponsesTotal    prometheus.Counter
}

// New 创建并注册全部指标
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "console_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		GuardDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_guard_decisions_total",
				Help: "Access guard decisions by resulting state and reason",
			},
			[]string{"state", "reason"},
		),
		BackendRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "console_backend_request_duration_seconds",
				Help:    "Upstream REST backend request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),
		StaleResponsesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "console_stale_responses_total",
				Help: "Responses discarded because a newer request for the same view started",
			},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.GuardDecisionsTotal,
		m.BackendRequestDuration,
		m.StaleResponsesTotal,
	)
	return m
}

// ObserveGuard 记录一次守卫判定
func (m *Metrics) ObserveGuard(state, reason string) {
	if reason == "" {
		reason = "ok"
	}
	m.GuardDecisionsTotal.WithLabelValues(state, reason).Inc()
}

// ObserveBackend 记录一次后端调用，status 为 0 表示网络错误
func (m *Metrics) ObserveBackend(method, endpoint string, status int, d time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.BackendRequestDuration.WithLabelValues(method, endpoint, label).Observe(d.Seconds())
}

// Middleware gin 请求指标，path 取路由模板避免标签基数膨胀
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler /metrics 输出
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
