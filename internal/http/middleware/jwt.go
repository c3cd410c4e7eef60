package middleware

import (
	"net/http"
	"strings"

	"teamtasks/internal/http/handlers"
	"teamtasks/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT authenticates the request from the Authorization header and stores the
// caller's user id in the gin context under "user_id". Requests without a
// valid token never reach the handler.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handlers.Envelope{
				Success: false,
				Message: "Not authorized, no token",
			})
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handlers.Envelope{
				Success: false,
				Message: "Not authorized, no token",
			})
			return
		}

		userID, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, handlers.Envelope{
				Success: false,
				Message: "Not authorized, token failed",
			})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
