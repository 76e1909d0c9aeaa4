package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

type requestObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Metrics records the duration and status of every request. Unmatched routes are
// grouped under a single label to keep cardinality bounded.
func Metrics(observer requestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if observer == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		observer.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
