package app

import (
	"github.com/gin-gonic/gin"

	"github.com/pulsemind/pulsemind-backend/internal/handlers"
	"github.com/pulsemind/pulsemind-backend/internal/middleware"
	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/server"
)

type Middleware struct {
	Auth *middleware.AuthMiddleware
}

type Handlers struct {
	Auth           *handlers.AuthHandler
	User           *handlers.UserHandler
	Recommendation *handlers.RecommendationHandler
	Event          *handlers.EventHandler
	Chat           *handlers.ChatHandler
	Notification   *handlers.NotificationHandler
	Moderation     *handlers.ModerationHandler
}

func wireHandlers(log *logger.Logger, cfg Config, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:           handlers.NewAuthHandler(serviceset.Auth, serviceset.GoogleVerifier, cfg.AccessTokenTTL),
		User:           handlers.NewUserHandler(serviceset.User, serviceset.Engagement),
		Recommendation: handlers.NewRecommendationHandler(serviceset.Recommendation),
		Event:          handlers.NewEventHandler(serviceset.Event),
		Chat:           handlers.NewChatHandler(serviceset.Chat),
		Notification:   handlers.NewNotificationHandler(serviceset.Notification),
		Moderation:     handlers.NewModerationHandler(serviceset.Moderation),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: middleware.NewAuthMiddleware(log, serviceset.Auth),
	}
}

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		ServiceName:           cfg.ServiceName,
		CORSOrigins:           cfg.CORSOrigins,
		MediaDir:              cfg.MediaDir,
		AuthHandler:           handlerset.Auth,
		AuthMiddleware:        middlewareset.Auth,
		UserHandler:           handlerset.User,
		RecommendationHandler: handlerset.Recommendation,
		EventHandler:          handlerset.Event,
		ChatHandler:           handlerset.Chat,
		NotificationHandler:   handlerset.Notification,
		ModerationHandler:     handlerset.Moderation,
	})
}
