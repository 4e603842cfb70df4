package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/repos"
	"github.com/pulsemind/pulsemind-backend/internal/trust"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

// EngagementResult is what the tracking endpoint returns: where the user
// landed after the event was applied.
type EngagementResult struct {
	ReadinessScore float64     `json:"readiness_score"`
	CurrentPhase   trust.Phase `json:"current_phase"`
}

type EngagementService interface {
	TrackEngagement(ctx context.Context, userID uuid.UUID, action string, payload trust.EngagementPayload) (*EngagementResult, error)
	History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.EngagementEvent, error)
}

type engagementService struct {
	db                  *gorm.DB
	log                 *logger.Logger
	userRepo            repos.UserRepo
	engagementEventRepo repos.EngagementEventRepo
	now                 func() time.Time
}

func NewEngagementService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	engagementEventRepo repos.EngagementEventRepo,
) EngagementService {
	return &engagementService{
		db:                  db,
		log:                 baseLog.With("service", "EngagementService"),
		userRepo:            userRepo,
		engagementEventRepo: engagementEventRepo,
		now:                 time.Now,
	}
}

// TrackEngagement loads the user, applies the event through the trust
// transforms, saves the whole row, and appends an audit record. Operator
// accounts skip the transforms entirely and always report full access.
func (es *engagementService) TrackEngagement(ctx context.Context, userID uuid.UUID, action string, payload trust.EngagementPayload) (*EngagementResult, error) {
	user, err := es.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if user.IsOperator {
		return &EngagementResult{ReadinessScore: 100, CurrentPhase: trust.PhaseFullAccess}, nil
	}

	now := es.now().UTC()
	before := user.CurrentPhase
	profile := trust.ApplyEngagement(user.TrustProfile(), action, payload, now)
	user.SetTrustProfile(profile)

	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	if err := es.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := es.userRepo.Save(ctx, tx, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}
		if _, err := es.engagementEventRepo.Create(ctx, tx, &types.EngagementEvent{
			ID:             uuid.New(),
			UserID:         user.ID,
			Action:         action,
			Payload:        datatypes.JSON(rawPayload),
			ReadinessAfter: profile.ReadinessScore,
			PhaseAfter:     string(profile.CurrentPhase),
		}); err != nil {
			return fmt.Errorf("record engagement event: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if profile.CurrentPhase != before {
		es.log.Info("Phase transition",
			"user_id", user.ID,
			"from", before,
			"to", profile.CurrentPhase,
			"readiness", profile.ReadinessScore,
		)
	}

	return &EngagementResult{
		ReadinessScore: profile.ReadinessScore,
		CurrentPhase:   profile.CurrentPhase,
	}, nil
}

func (es *engagementService) History(ctx context.Context, userID uuid.UUID, limit int) ([]*types.EngagementEvent, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return es.engagementEventRepo.ListByUser(ctx, nil, userID, limit)
}
