package middleware

import (
	"strconv"
	"time"

	"basket-backtest/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency by route template to keep label
// cardinality low. Unmatched routes share one label.
func Metrics(rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		rec.RecordHTTPRequest(route, c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
