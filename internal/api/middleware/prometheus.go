package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/s9b/memenem/internal/metrics"
)

// PrometheusMiddleware records request counts and latency per route.
func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		c.Next()

		// route template keeps label cardinality bounded
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		statusCode := strconv.Itoa(c.Writer.Status())

		metrics.HttpRequestsTotal.WithLabelValues(method, path, statusCode, serviceName).Inc()
		metrics.HttpRequestDuration.WithLabelValues(method, path, serviceName).Observe(time.Since(start).Seconds())
	}
}
