package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger prints a minimal access log including request_id. Health
// probes are skipped to keep the log readable under load balancers.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		if path == "/api/health" {
			return
		}

		log.Printf("[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f size=%d ip=%s",
			GetRequestID(c),
			c.Request.Method,
			path,
			c.Writer.Status(),
			float64(time.Since(start).Microseconds())/1000.0,
			c.Writer.Size(),
			c.ClientIP(),
		)
	}
}
