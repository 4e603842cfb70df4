package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/repos"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

type NotificationService interface {
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID uuid.UUID) (*types.Notification, error)
}

type notificationService struct {
	db               *gorm.DB
	log              *logger.Logger
	notificationRepo repos.NotificationRepo
}

func NewNotificationService(db *gorm.DB, baseLog *logger.Logger, notificationRepo repos.NotificationRepo) NotificationService {
	return &notificationService{
		db:               db,
		log:              baseLog.With("service", "NotificationService"),
		notificationRepo: notificationRepo,
	}
}

func (ns *notificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error) {
	return ns.notificationRepo.ListByRecipient(ctx, nil, userID)
}

// MarkRead only works for the recipient; anyone else gets NotFound rather
// than a hint the notification exists.
func (ns *notificationService) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) (*types.Notification, error) {
	notification, err := ns.notificationRepo.GetByID(ctx, nil, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load notification: %w", err)
	}
	if notification.RecipientID != userID {
		return nil, ErrNotFound
	}
	if notification.Read {
		return notification, nil
	}
	notification.Read = true
	if err := ns.notificationRepo.Save(ctx, nil, notification); err != nil {
		return nil, fmt.Errorf("save notification: %w", err)
	}
	return notification, nil
}
