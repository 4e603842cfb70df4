package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pulsemind/pulsemind-backend/internal/trust"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"not null;column:username" json:"username"`
	Email    string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	City     string    `gorm:"not null;column:city" json:"city"`
	Password string    `gorm:"not null;column:password" json:"-"`
	GoogleID string    `gorm:"column:google_id" json:"-"`
	Avatar   string    `gorm:"column:avatar" json:"avatar"`

	// Operator accounts bypass engagement tracking and always report
	// full-access. Set at seed time, never via the API.
	IsOperator bool `gorm:"not null;default:false;column:is_operator" json:"-"`

	// Progressive trust ladder
	ReadinessScore       float64     `gorm:"not null;default:0;column:readiness_score" json:"readiness_score"`
	CurrentPhase         trust.Phase `gorm:"not null;default:'ai-only';column:current_phase" json:"current_phase"`
	CommunityReadyDate   *time.Time  `gorm:"column:community_ready_date" json:"community_ready_date,omitempty"`
	SessionCount         int         `gorm:"not null;default:0;column:session_count" json:"session_count"`
	LastSessionDate      *time.Time  `gorm:"column:last_session_date" json:"last_session_date,omitempty"`
	MoodStabilityScore   *float64    `gorm:"column:mood_stability_score" json:"mood_stability_score,omitempty"`
	TherapyAdoptionCount int         `gorm:"not null;default:0;column:therapy_adoption_count" json:"therapy_adoption_count"`
	EngagementDays       int         `gorm:"not null;default:0;column:engagement_days" json:"engagement_days"`

	// Reputation & safety
	ReputationScore float64 `gorm:"not null;default:50;column:reputation_score" json:"reputation_score"`
	ToxicityFlags   int     `gorm:"not null;default:0;column:toxicity_flags" json:"toxicity_flags"`
	WarningCount    int     `gorm:"not null;default:0;column:warning_count" json:"warning_count"`
	IsShadowBanned  bool    `gorm:"not null;default:false;column:is_shadow_banned" json:"is_shadow_banned"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
	return "user"
}

// TrustProfile lifts the trust-ladder columns into the value type the core
// transforms operate on.
func (u *User) TrustProfile() trust.Profile {
	return trust.Profile{
		SessionCount:         u.SessionCount,
		LastSessionDate:      u.LastSessionDate,
		EngagementDays:       u.EngagementDays,
		TherapyAdoptionCount: u.TherapyAdoptionCount,
		MoodStabilityScore:   u.MoodStabilityScore,
		ReputationScore:      u.ReputationScore,
		ToxicityFlags:        u.ToxicityFlags,
		WarningCount:         u.WarningCount,
		IsShadowBanned:       u.IsShadowBanned,
		ReadinessScore:       u.ReadinessScore,
		CurrentPhase:         u.CurrentPhase,
		CommunityReadyDate:   u.CommunityReadyDate,
	}
}

// SetTrustProfile writes a transformed profile back onto the row.
func (u *User) SetTrustProfile(p trust.Profile) {
	u.SessionCount = p.SessionCount
	u.LastSessionDate = p.LastSessionDate
	u.EngagementDays = p.EngagementDays
	u.TherapyAdoptionCount = p.TherapyAdoptionCount
	u.MoodStabilityScore = p.MoodStabilityScore
	u.ReputationScore = p.ReputationScore
	u.ToxicityFlags = p.ToxicityFlags
	u.WarningCount = p.WarningCount
	u.IsShadowBanned = p.IsShadowBanned
	u.ReadinessScore = p.ReadinessScore
	u.CurrentPhase = p.CurrentPhase
	u.CommunityReadyDate = p.CommunityReadyDate
}
