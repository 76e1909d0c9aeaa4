package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey   = "response_meta"
	cacheHitKey       = "cache_hit"
	processingTimeKey = "processing_time_ms"
)

// ResponseMeta initialises the metadata map that report handlers attach to responses.
func ResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// ReportMeta returns the metadata of a report response, stamped with the elapsed time
// since start.
func ReportMeta(c *gin.Context, hit bool, start time.Time) map[string]interface{} {
	meta := ensureMeta(c)
	meta[cacheHitKey] = hit
	meta[processingTimeKey] = time.Since(start).Milliseconds()
	return meta
}

// ExtractMeta returns the metadata map stored on the context.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	return nil
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if meta := ExtractMeta(c); meta != nil {
		return meta
	}
	meta := make(map[string]interface{})
	if c != nil {
		c.Set(responseMetaKey, meta)
	}
	return meta
}
