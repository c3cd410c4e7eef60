package ws

import (
	"context"
	"net/http"
	"os"

	"teamtasks/internal/domain"
	"teamtasks/internal/http/handlers"
	"teamtasks/internal/logger"
	"teamtasks/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// TeamLister resolves the caller's memberships at connect time.
type TeamLister interface {
	ListByMember(ctx context.Context, userID int64) ([]*domain.Team, error)
}

// HandleWS upgrades the connection and subscribes it to every team the
// authenticated caller belongs to. The token travels as a query parameter
// because browsers cannot set headers on websocket dials.
func HandleWS(hub *Hub, teams TeamLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, handlers.Envelope{Success: false, Message: "token required"})
			return
		}

		userID, err := service.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, handlers.Envelope{Success: false, Message: "invalid token"})
			return
		}

		memberships, err := teams.ListByMember(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, handlers.Envelope{Success: false, Message: "failed to load teams"})
			return
		}
		teamIDs := make([]int64, 0, len(memberships))
		for _, t := range memberships {
			teamIDs = append(teamIDs, t.ID)
		}

		allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
		upgrader := websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowedOrigin == "" {
					return true
				}
				return r.Header.Get("Origin") == allowedOrigin
			},
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Error("ws: upgrade failed", "error", err)
			return
		}

		client := NewClient(userID, conn, hub)
		hub.Subscribe(client, teamIDs)
		go client.Run()
	}
}
