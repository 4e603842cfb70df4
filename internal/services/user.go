package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pulsemind/pulsemind-backend/internal/platform/logger"
	"github.com/pulsemind/pulsemind-backend/internal/repos"
	"github.com/pulsemind/pulsemind-backend/internal/trust"
	"github.com/pulsemind/pulsemind-backend/internal/types"
)

// ReadinessReport is the readiness meter payload.
type ReadinessReport struct {
	ReadinessScore       float64         `json:"readiness_score"`
	CurrentPhase         trust.Phase     `json:"current_phase"`
	CommunityReadyDate   *time.Time      `json:"community_ready_date,omitempty"`
	SessionCount         int             `json:"session_count"`
	TherapyAdoptionCount int             `json:"therapy_adoption_count"`
	EngagementDays       int             `json:"engagement_days"`
	MoodStabilityScore   *float64        `json:"mood_stability_score,omitempty"`
	ReputationScore      float64         `json:"reputation_score"`
	NextMilestone        trust.Milestone `json:"next_milestone"`
}

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	Readiness(ctx context.Context, userID uuid.UUID) (*ReadinessReport, error)
	AdjustReputation(ctx context.Context, userID uuid.UUID, positive bool) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (us *userService) Readiness(ctx context.Context, userID uuid.UUID) (*ReadinessReport, error) {
	user, err := us.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.IsOperator {
		return &ReadinessReport{
			ReadinessScore:       100,
			CurrentPhase:         trust.PhaseFullAccess,
			SessionCount:         user.SessionCount,
			TherapyAdoptionCount: user.TherapyAdoptionCount,
			EngagementDays:       user.EngagementDays,
			MoodStabilityScore:   user.MoodStabilityScore,
			ReputationScore:      user.ReputationScore,
			NextMilestone:        trust.Milestone{Label: "Maintain positive reputation", Progress: 100},
		}, nil
	}

	profile := user.TrustProfile()
	return &ReadinessReport{
		ReadinessScore:       user.ReadinessScore,
		CurrentPhase:         user.CurrentPhase,
		CommunityReadyDate:   user.CommunityReadyDate,
		SessionCount:         user.SessionCount,
		TherapyAdoptionCount: user.TherapyAdoptionCount,
		EngagementDays:       user.EngagementDays,
		MoodStabilityScore:   user.MoodStabilityScore,
		ReputationScore:      user.ReputationScore,
		NextMilestone:        trust.NextMilestone(profile),
	}, nil
}

// AdjustReputation applies a community feedback signal to another user.
// Operator rows stay untouched.
func (us *userService) AdjustReputation(ctx context.Context, userID uuid.UUID, positive bool) (*types.User, error) {
	user, err := us.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsOperator {
		return user, nil
	}

	profile := trust.AdjustReputation(user.TrustProfile(), positive)
	profile.ReadinessScore = trust.ReadinessScore(profile)
	user.SetTrustProfile(profile)

	if err := us.userRepo.Save(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}
