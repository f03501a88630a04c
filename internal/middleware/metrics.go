package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_requests_latency_seconds",
			Help:    "Latency of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	metricsOnce sync.Once
)

// HTTPMetrics records a latency histogram per method/route/status. The
// route label uses the Echo route pattern (e.g. /books/:id) rather than
// the raw path so ids do not explode label cardinality.
func HTTPMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	metricsOnce.Do(func() {
		prometheus.MustRegister(httpLatency)
	})

	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		route := c.Path()
		if route == "" {
			route = c.Request().URL.Path
		}
		httpLatency.WithLabelValues(c.Request().Method, route, strconv.Itoa(c.Response().Status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}
