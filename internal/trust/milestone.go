package trust

import "math"

// Milestone is the read-only "what unlocks next" view shown on the readiness
// meter. Not persisted.
type Milestone struct {
	Label    string  `json:"label"`
	Progress float64 `json:"progress"`
}

// NextMilestone derives the next goal and progress toward it from the
// current phase.
func NextMilestone(p Profile) Milestone {
	switch p.CurrentPhase {
	case PhaseMicroTherapy:
		return Milestone{
			Label:    "Try 2 recommended therapies",
			Progress: math.Min(float64(p.TherapyAdoptionCount)/2*100, 100),
		}
	case PhaseCommunityReadonly:
		return Milestone{
			Label:    "Reach 70% readiness score",
			Progress: math.Min(p.ReadinessScore/70*100, 100),
		}
	case PhaseFullAccess:
		return Milestone{
			Label:    "Maintain positive reputation",
			Progress: 100,
		}
	default:
		return Milestone{
			Label:    "Complete assessment",
			Progress: math.Min(float64(p.SessionCount)/2*100, 100),
		}
	}
}
