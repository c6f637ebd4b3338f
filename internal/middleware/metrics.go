package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quokkabay/quokkabay/internal/telemetry"
)

// Metrics records request count and latency labelled by the matched route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		telemetry.RecordHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
