package trust

import (
	"time"
)

// Phase is one of the four ordered access levels a user moves through.
type Phase string

const (
	PhaseAIOnly            Phase = "ai-only"
	PhaseMicroTherapy      Phase = "micro-therapy"
	PhaseCommunityReadonly Phase = "community-readonly"
	PhaseFullAccess        Phase = "full-access"
)

// Index returns the position of the phase in the ladder, ai-only being 0.
// Unknown values map to 0 so a corrupted row behaves like a new account.
func (p Phase) Index() int {
	switch p {
	case PhaseMicroTherapy:
		return 1
	case PhaseCommunityReadonly:
		return 2
	case PhaseFullAccess:
		return 3
	default:
		return 0
	}
}

func (p Phase) Valid() bool {
	switch p {
	case PhaseAIOnly, PhaseMicroTherapy, PhaseCommunityReadonly, PhaseFullAccess:
		return true
	}
	return false
}

// Profile is the trust-ladder slice of a user row, passed by value through the
// scoring and phase transforms so callers control load and save.
type Profile struct {
	SessionCount         int
	LastSessionDate      *time.Time
	EngagementDays       int
	TherapyAdoptionCount int
	MoodStabilityScore   *float64
	ReputationScore      float64
	ToxicityFlags        int
	WarningCount         int
	IsShadowBanned       bool
	ReadinessScore       float64
	CurrentPhase         Phase
	CommunityReadyDate   *time.Time
}

// EngagementPayload carries the optional data attached to an engagement event.
type EngagementPayload struct {
	MoodScore *float64 `json:"mood_score,omitempty"`
}

const (
	ActionSession            = "session"
	ActionTherapyAdoption    = "therapy_adoption"
	ActionAssessmentComplete = "assessment_complete"
)

const ShadowBanThreshold = 3

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
