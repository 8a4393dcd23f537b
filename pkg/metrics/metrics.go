package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "share",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"service", "method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "share",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"service", "method", "path"},
	)

	exchanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "share",
			Subsystem: "exchange",
			Name:      "outcomes_total",
			Help:      "Exchange attempts by outcome.",
		},
		[]string{"outcome"},
	)

	balanceAdjustments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "share",
			Subsystem: "ledger",
			Name:      "adjustments_total",
			Help:      "Balance adjustments by event category and whether they were applied or replayed.",
		},
		[]string{"event", "applied"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		exchanges,
		balanceAdjustments,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// GinMiddleware records request counts and latencies per route template.
func GinMiddleware(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(service, c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(service, c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordExchange counts one exchange attempt.
func RecordExchange(outcome string) {
	exchanges.WithLabelValues(outcome).Inc()
}

// RecordAdjustment counts one balance adjustment request.
func RecordAdjustment(event string, applied bool) {
	balanceAdjustments.WithLabelValues(event, strconv.FormatBool(applied)).Inc()
}
