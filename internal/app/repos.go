package app

import (
	"gorm.io/gorm"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/repos"
)

type Repos struct {
	User             repos.UserRepo
	UserToken        repos.UserTokenRepo
	Recommendation   repos.RecommendationRepo
	Event            repos.EventRepo
	EventParticipant repos.EventParticipantRepo
	Notification     repos.NotificationRepo
	ChatMessage      repos.ChatMessageRepo
	FlaggedContent   repos.FlaggedContentRepo
	EngagementEvent  repos.EngagementEventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:             repos.NewUserRepo(db, log),
		UserToken:        repos.NewUserTokenRepo(db, log),
		Recommendation:   repos.NewRecommendationRepo(db, log),
		Event:            repos.NewEventRepo(db, log),
		EventParticipant: repos.NewEventParticipantRepo(db, log),
		Notification:     repos.NewNotificationRepo(db, log),
		ChatMessage:      repos.NewChatMessageRepo(db, log),
		FlaggedContent:   repos.NewFlaggedContentRepo(db, log),
		EngagementEvent:  repos.NewEngagementEventRepo(db, log),
	}
}
