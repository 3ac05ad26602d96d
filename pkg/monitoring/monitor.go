package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// ContentFallbackCounter 记录任务内容回退到规则模板的次数
	ContentFallbackCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fallback_total",
			Help: "Number of task contents produced by the rule-based fallback",
		},
		[]string{"task_type", "reason"},
	)

	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "Duration of LLM completion calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider", "status"},
	)

	ContentCacheCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_cache_requests_total",
			Help: "AI content cache lookups",
		},
		[]string{"result"},
	)

	PlanTasksCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "plan_tasks_created_total",
			Help: "Daily tasks created by weekly plan generation",
		},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(ContentFallbackCounter)
	prometheus.MustRegister(AIRequestDuration)
	prometheus.MustRegister(ContentCacheCounter)
	prometheus.MustRegister(PlanTasksCreated)
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

// ObserveAI 记录一次大模型调用
func ObserveAI(provider string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	AIRequestDuration.WithLabelValues(provider, status).Observe(time.Since(start).Seconds())
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
