package middleware

import (
	"net/http"

	"github.com/myutami16/camp-store/internal/ratelimit"
	"github.com/myutami16/camp-store/internal/util"

	"github.com/gin-gonic/gin"
)

// RateLimit rejects requests over the per-window limit for the client address.
// Gin's ClientIP already prefers X-Forwarded-For and falls back to the peer
// address, which is exactly the identification the limiter wants.
func RateLimit(limiter *ratelimit.Limiter, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP(), limit) {
			util.Error(c, http.StatusTooManyRequests,
				"Terlalu banyak permintaan, coba lagi nanti")
			c.Abort()
			return
		}
		c.Next()
	}
}
