package trust

import "time"

// phaseRule advances from one phase to the next when its predicate holds.
type phaseRule struct {
	from Phase
	to   Phase
	when func(p Profile) bool
}

// Rules are evaluated top-to-bottom against the phase value as it mutates
// within a single call, so one event can cascade through several phases when
// the later thresholds are already satisfied. There is no demotion rule.
var phaseRules = []phaseRule{
	{
		from: PhaseAIOnly,
		to:   PhaseMicroTherapy,
		when: func(p Profile) bool {
			return p.SessionCount >= 2 && p.MoodStabilityScore != nil
		},
	},
	{
		from: PhaseMicroTherapy,
		to:   PhaseCommunityReadonly,
		when: func(p Profile) bool {
			return p.TherapyAdoptionCount >= 2 && p.EngagementDays >= 3
		},
	},
	{
		from: PhaseCommunityReadonly,
		to:   PhaseFullAccess,
		when: func(p Profile) bool {
			return p.ReadinessScore >= 70 && p.ToxicityFlags == 0
		},
	},
}

// AdvancePhase walks the ordered rule list and returns the profile with the
// phase advanced as far as the current counters allow. ReadinessScore must
// already be recomputed for the profile being passed in. CommunityReadyDate
// is stamped on first entry to full-access and never overwritten.
func AdvancePhase(p Profile, now time.Time) Profile {
	for _, r := range phaseRules {
		if p.CurrentPhase != r.from {
			continue
		}
		if !r.when(p) {
			continue
		}
		p.CurrentPhase = r.to
		if r.to == PhaseFullAccess && p.CommunityReadyDate == nil {
			t := now
			p.CommunityReadyDate = &t
		}
	}
	return p
}
