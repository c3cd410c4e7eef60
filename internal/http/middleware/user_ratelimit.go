package middleware

import (
	"net/http"
	"strconv"
	"time"

	"teamtasks/internal/http/handlers"

	"github.com/gin-gonic/gin"
)

// UserRateLimit limits mutating calls per authenticated user (not per IP).
// Requires JWT middleware to run first.
func UserRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handlers.Envelope{
				Success: false,
				Message: "Not authorized, no token",
			})
			return
		}

		userID, ok := userIDVal.(int64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handlers.Envelope{
				Success: false,
				Message: "Not authorized, token failed",
			})
			return
		}

		key := "write_rl:" + strconv.FormatInt(userID, 10) + ":" + strconv.FormatInt(int64(window.Seconds()), 10)

		c.Header("X-RateLimit-Limit", strconv.Itoa(maxRequests))

		if !allow(c, key, maxRequests, window) {
			RLBlocked.WithLabelValues("user:" + c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, handlers.Envelope{
				Success: false,
				Message: "Too many requests",
			})
			return
		}

		RLRequests.WithLabelValues("user:" + c.FullPath()).Inc()
		c.Next()
	}
}
