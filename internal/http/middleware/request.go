package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/you/elearnauth/internal/logging"
)

// RequestLogger writes one line per request. Errors attached with c.Error are logged too.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
			log.Error(c.Request.Context(), "request failed", args...)
			return
		}
		log.Info(c.Request.Context(), "request", args...)
	}
}

// RequestTimeout bounds the store and cache calls made while serving a request
func RequestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
