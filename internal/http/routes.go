package http

import (
	"time"

	"teamtasks/internal/config"
	"teamtasks/internal/http/handlers"
	"teamtasks/internal/http/middleware"
	"teamtasks/internal/repository"
	"teamtasks/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	hub := ws.NewHub()

	h := handlers.NewHandler(db)
	h.Events = hub
	healthHandler := handlers.NewHealthHandler(db, version)

	apiLimit := middleware.RateLimit(cfg.APIRateLimit, time.Duration(cfg.APIRateWindow)*time.Second)
	authLimit := middleware.RateLimit(cfg.AuthRateLimit, time.Duration(cfg.AuthRateWindow)*time.Second)
	writeLimit := middleware.UserRateLimit(cfg.WriteRateLimit, time.Duration(cfg.WriteRateWindow)*time.Second)

	// Probes bypass rate limiting.
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	// Primary /api routes plus a /api/v1 alias.
	api := r.Group("/api")
	api.Use(apiLimit)
	registerAPIRoutes(api, h, healthHandler, authLimit, writeLimit)

	v1 := r.Group("/api/v1")
	v1.Use(apiLimit)
	registerAPIRoutes(v1, h, healthHandler, authLimit, writeLimit)

	// Task event stream.
	r.GET("/ws", ws.HandleWS(hub, repository.NewTeamRepository(db)))
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, health *handlers.HealthHandler, authLimit, writeLimit gin.HandlerFunc) {
	api.GET("/health", health.Health)

	auth := api.Group("/auth")
	auth.POST("/register", authLimit, h.Register)
	auth.POST("/login", authLimit, h.Login)

	teams := api.Group("/teams")
	teams.Use(middleware.JWT())

	teams.POST("", h.CreateTeam)
	teams.GET("", h.GetMyTeams)
	teams.GET("/:teamId", h.GetTeam)
	teams.POST("/:teamId/members", h.AddMember)
	teams.DELETE("/:teamId/members/:userId", h.RemoveMember)

	tasks := teams.Group("/:teamId/tasks")
	tasks.POST("", writeLimit, h.CreateTask)
	tasks.GET("", h.GetTasks)
	tasks.GET("/:taskId", h.GetTask)
	tasks.PUT("/:taskId", writeLimit, h.UpdateTask)
	tasks.DELETE("/:taskId", writeLimit, h.DeleteTask)

	comments := tasks.Group("/:taskId/comments")
	comments.POST("", writeLimit, h.AddComment)
	comments.GET("", h.GetComments)
}
