package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"appointments-server/internal/metrics"
)

// Metrics records request counts and durations by route pattern.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// use the registered pattern so ids don't explode label cardinality
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
