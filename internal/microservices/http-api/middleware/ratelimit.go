package middleware

import (
	"log/slog"
	"net/http"

	"reviewhub/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit throttles a route per client IP. A limiter backend error lets
// the request through.
func RateLimit(limiter ratelimit.Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.FullPath() + ":" + c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Warn("ratelimit: backend error", "key", key, "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
