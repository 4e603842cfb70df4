package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

type EventParticipantRepo interface {
	Create(ctx context.Context, tx *gorm.DB, participant *types.EventParticipant) (*types.EventParticipant, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.EventParticipant, error)
	GetByEventAndUser(ctx context.Context, tx *gorm.DB, eventID, userID uuid.UUID) (*types.EventParticipant, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.EventParticipant, error)
	Save(ctx context.Context, tx *gorm.DB, participant *types.EventParticipant) error
}

type eventParticipantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventParticipantRepo(db *gorm.DB, baseLog *logger.Logger) EventParticipantRepo {
	return &eventParticipantRepo{db: db, log: baseLog.With("repo", "EventParticipantRepo")}
}

func (r *eventParticipantRepo) Create(ctx context.Context, tx *gorm.DB, participant *types.EventParticipant) (*types.EventParticipant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(participant).Error; err != nil {
		return nil, err
	}
	return participant, nil
}

func (r *eventParticipantRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.EventParticipant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.EventParticipant
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *eventParticipantRepo) GetByEventAndUser(ctx context.Context, tx *gorm.DB, eventID, userID uuid.UUID) (*types.EventParticipant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var result types.EventParticipant
	if err := transaction.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *eventParticipantRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.EventParticipant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var results []*types.EventParticipant
	if err := transaction.WithContext(ctx).
		Preload("Event").
		Preload("Event.Creator").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *eventParticipantRepo) Save(ctx context.Context, tx *gorm.DB, participant *types.EventParticipant) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Save(participant).Error
}
