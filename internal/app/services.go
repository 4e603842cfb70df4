package app

import (
	"gorm.io/gorm"

	redisclient "github.com/pulsemind/pulsemind-backend/internal/clients/redis"
	"github.com/pulsemind/pulsemind-backend/internal/moderation"
	"github.com/pulsemind/pulsemind-backend/internal/platform/localmedia"
	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/services"
)

type Services struct {
	Auth           services.AuthService
	Avatar         services.AvatarService
	User           services.UserService
	Engagement     services.EngagementService
	Moderation     services.ModerationService
	Recommendation services.RecommendationService
	Event          services.EventService
	Chat           services.ChatService
	Notification   services.NotificationService
	GoogleVerifier services.GoogleVerifier
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	media, err := localmedia.NewStore(log, cfg.MediaDir, cfg.PublicBaseURL)
	if err != nil {
		return Services{}, err
	}

	// The avatar renderer needs a TTF on disk; without one the app runs
	// with identicon-less accounts.
	var avatarService services.AvatarService
	if as, err := services.NewAvatarService(db, log, reposet.User, media); err != nil {
		log.Warn("avatar service disabled", "error", err)
	} else {
		avatarService = as
	}

	// Chat survives without redis; reads fall back to postgres.
	var chatCache redisclient.ChatCache
	if cache, err := redisclient.NewChatCache(log, cfg.ChatCacheWindow); err != nil {
		log.Warn("chat cache disabled", "error", err)
	} else {
		chatCache = cache
	}

	detector := moderation.NewDetector()

	authService := services.NewAuthService(
		db, log,
		reposet.User, reposet.UserToken,
		avatarService,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
		cfg.OperatorEmail, cfg.OperatorPass,
	)
	moderationService := services.NewModerationService(db, log, detector, reposet.User, reposet.FlaggedContent)

	return Services{
		Auth:           authService,
		Avatar:         avatarService,
		User:           services.NewUserService(db, log, reposet.User),
		Engagement:     services.NewEngagementService(db, log, reposet.User, reposet.EngagementEvent),
		Moderation:     moderationService,
		Recommendation: services.NewRecommendationService(db, log, reposet.Recommendation, moderationService),
		Event: services.NewEventService(
			db, log,
			reposet.Event, reposet.EventParticipant, reposet.Notification, reposet.User,
			moderationService,
		),
		Chat:           services.NewChatService(db, log, reposet.ChatMessage, moderationService, chatCache),
		Notification:   services.NewNotificationService(db, log, reposet.Notification),
		GoogleVerifier: services.NewGoogleVerifier(cfg.GoogleClientID),
	}, nil
}
