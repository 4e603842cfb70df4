package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/pulsemind/pulsemind-backend/internal/handlers"
	"github.com/pulsemind/pulsemind-backend/internal/middleware"
)

type RouterConfig struct {
	ServiceName           string
	CORSOrigins           []string
	MediaDir              string
	AuthHandler           *handlers.AuthHandler
	AuthMiddleware        *middleware.AuthMiddleware
	UserHandler           *handlers.UserHandler
	RecommendationHandler *handlers.RecommendationHandler
	EventHandler          *handlers.EventHandler
	ChatHandler           *handlers.ChatHandler
	NotificationHandler   *handlers.NotificationHandler
	ModerationHandler     *handlers.ModerationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware(cfg.ServiceName))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Refresh-Token"},
		AllowCredentials: true,
	}))

	if strings.TrimSpace(cfg.MediaDir) != "" {
		router.Static("/media", cfg.MediaDir)
	}

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/signup", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
		api.POST("/auth/google", cfg.AuthHandler.Google)
		api.GET("/recommendations", cfg.RecommendationHandler.List)
		api.GET("/events", cfg.EventHandler.List)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.GET("/auth/me", cfg.UserHandler.GetMe)
	protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)
	// Trust ladder
	protected.GET("/user/readiness", cfg.UserHandler.Readiness)
	protected.POST("/user/track-engagement", cfg.UserHandler.TrackEngagement)
	protected.GET("/user/engagement-history", cfg.UserHandler.EngagementHistory)
	protected.POST("/user/reputation", cfg.UserHandler.AdjustReputation)
	// Recommendations
	protected.POST("/recommendations", cfg.RecommendationHandler.Create)
	protected.POST("/recommendations/:id/react", cfg.RecommendationHandler.React)
	// Events
	protected.POST("/events", cfg.EventHandler.Create)
	protected.GET("/events/mine", cfg.EventHandler.MyEvents)
	protected.POST("/events/:id/join", cfg.EventHandler.Join)
	protected.PUT("/events/:id/participants/:participantId", cfg.EventHandler.RespondToJoin)
	protected.POST("/events/:id/react", cfg.EventHandler.React)
	// Chat
	protected.GET("/chat/messages", cfg.ChatHandler.ListMessages)
	protected.POST("/chat/messages", cfg.ChatHandler.PostMessage)
	// Notifications
	protected.GET("/notifications", cfg.NotificationHandler.List)
	protected.PUT("/notifications/:id/read", cfg.NotificationHandler.MarkRead)
	// Moderation
	protected.POST("/moderation/flag", cfg.ModerationHandler.Flag)
	operator := protected.Group("/moderation")
	operator.Use(cfg.AuthMiddleware.RequireOperator())
	operator.GET("/queue", cfg.ModerationHandler.Queue)
	operator.PUT("/queue/:id", cfg.ModerationHandler.Review)

	return router
}
