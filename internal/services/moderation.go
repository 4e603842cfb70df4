package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pulsemind/pulsemind-backend/internal/moderation"
	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/repos"
	"github.com/pulsemind/pulsemind-backend/internal/trust"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

// ManualFlagSeverity is the toxicity score recorded for user-submitted
// reports, which carry no automated classification.
const ManualFlagSeverity = 0.5

const pendingQueueLimit = 50

type ModerationService interface {
	// ScreenContent runs the toxicity gate over the author's texts. A toxic
	// verdict persists the flag row and penalty and returns a
	// *ContentRejectedError; a clean verdict persists nothing.
	ScreenContent(ctx context.Context, authorID uuid.UUID, contentType string, contentID uuid.UUID, texts ...string) error
	FlagManually(ctx context.Context, reporterID uuid.UUID, contentType string, contentID uuid.UUID, authorID uuid.UUID, reason string) (*types.FlaggedContent, error)
	PendingQueue(ctx context.Context) ([]*types.FlaggedContent, error)
	Review(ctx context.Context, moderatorID, flagID uuid.UUID, status, action string) (*types.FlaggedContent, error)
}

type moderationService struct {
	db                 *gorm.DB
	log                *logger.Logger
	detector           moderation.Detector
	userRepo           repos.UserRepo
	flaggedContentRepo repos.FlaggedContentRepo
}

func NewModerationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	detector moderation.Detector,
	userRepo repos.UserRepo,
	flaggedContentRepo repos.FlaggedContentRepo,
) ModerationService {
	return &moderationService{
		db:                 db,
		log:                baseLog.With("service", "ModerationService"),
		detector:           detector,
		userRepo:           userRepo,
		flaggedContentRepo: flaggedContentRepo,
	}
}

func (ms *moderationService) ScreenContent(ctx context.Context, authorID uuid.UUID, contentType string, contentID uuid.UUID, texts ...string) error {
	var (
		maxScore float64
		toxic    bool
		flagged  []string
	)
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		v := ms.detector.Evaluate(text)
		if v.Score > maxScore {
			maxScore = v.Score
		}
		toxic = toxic || v.IsToxic
		// Terms from every checked text, not just the worst one.
		flagged = append(flagged, v.FlaggedTerms...)
	}
	if !toxic {
		return nil
	}

	author, err := ms.userRepo.GetByID(ctx, nil, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("load author: %w", err)
	}

	profile := trust.ApplyToxicityPenalty(author.TrustProfile())
	profile.ReadinessScore = trust.ReadinessScore(profile)
	author.SetTrustProfile(profile)

	if err := ms.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ms.flaggedContentRepo.Create(ctx, tx, &types.FlaggedContent{
			ID:            uuid.New(),
			ContentType:   contentType,
			ContentID:     contentID,
			UserID:        author.ID,
			Reason:        types.FlagReasonAutomated,
			ToxicityScore: maxScore,
			Status:        types.FlagStatusPending,
			FlaggedAt:     time.Now().UTC(),
		}); err != nil {
			return fmt.Errorf("record flag: %w", err)
		}
		if err := ms.userRepo.Save(ctx, tx, author); err != nil {
			return fmt.Errorf("apply penalty: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	ms.log.Warn("Toxic content rejected",
		"author_id", author.ID,
		"content_type", contentType,
		"score", maxScore,
		"flags", author.ToxicityFlags,
		"shadow_banned", author.IsShadowBanned,
	)

	return &ContentRejectedError{
		ContentType:  contentType,
		Score:        maxScore,
		FlaggedTerms: flagged,
	}
}

func (ms *moderationService) FlagManually(ctx context.Context, reporterID uuid.UUID, contentType string, contentID uuid.UUID, authorID uuid.UUID, reason string) (*types.FlaggedContent, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("a reason is required to report content")
	}
	if authorID == uuid.Nil {
		return nil, fmt.Errorf("content author is required")
	}

	flag := &types.FlaggedContent{
		ID:            uuid.New(),
		ContentType:   contentType,
		ContentID:     contentID,
		UserID:        authorID,
		Reason:        reason,
		ToxicityScore: ManualFlagSeverity,
		Status:        types.FlagStatusPending,
		FlaggedAt:     time.Now().UTC(),
	}
	if _, err := ms.flaggedContentRepo.Create(ctx, nil, flag); err != nil {
		return nil, fmt.Errorf("record manual flag: %w", err)
	}

	ms.log.Info("Content reported",
		"reporter_id", reporterID,
		"author_id", authorID,
		"content_type", contentType,
	)
	return flag, nil
}

func (ms *moderationService) PendingQueue(ctx context.Context) ([]*types.FlaggedContent, error) {
	return ms.flaggedContentRepo.ListPending(ctx, nil, pendingQueueLimit)
}

func (ms *moderationService) Review(ctx context.Context, moderatorID, flagID uuid.UUID, status, action string) (*types.FlaggedContent, error) {
	switch status {
	case types.FlagStatusReviewed, types.FlagStatusRemoved, types.FlagStatusFalsePositive:
	default:
		return nil, fmt.Errorf("invalid review status %q", status)
	}

	var flag types.FlaggedContent
	if err := ms.db.WithContext(ctx).Where("id = ?", flagID).First(&flag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load flag: %w", err)
	}

	now := time.Now().UTC()
	flag.Status = status
	flag.ModeratorAction = action
	flag.ModeratorID = &moderatorID
	flag.ReviewedAt = &now

	if err := ms.flaggedContentRepo.Save(ctx, nil, &flag); err != nil {
		return nil, fmt.Errorf("save review: %w", err)
	}
	return &flag, nil
}
