package trust

import "time"

// sameCalendarDay compares dates at day granularity in the given time's
// location, matching the at-most-one-engagement-day-per-day rule.
func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ApplyEngagement applies a single engagement event to the profile and
// returns the updated copy. Unrecognized actions leave the counters alone but
// the readiness recompute and phase check still run, which keeps repeated
// calls harmless. The operator bypass is the caller's concern; this function
// never special-cases identities.
func ApplyEngagement(p Profile, action string, payload EngagementPayload, now time.Time) Profile {
	switch action {
	case ActionSession:
		p.SessionCount++
		if p.LastSessionDate == nil || !sameCalendarDay(*p.LastSessionDate, now) {
			p.EngagementDays++
		}
		t := now
		p.LastSessionDate = &t
	case ActionTherapyAdoption:
		p.TherapyAdoptionCount++
	case ActionAssessmentComplete:
		if payload.MoodScore != nil {
			mood := *payload.MoodScore
			p.MoodStabilityScore = &mood
		}
	}

	p.ReadinessScore = ReadinessScore(p)
	return AdvancePhase(p, now)
}

// ApplyToxicityPenalty records one automated toxicity detection against the
// profile: flag count up, reputation down ten points saturating at zero, and
// a permanent shadow ban once the flag count reaches the threshold.
func ApplyToxicityPenalty(p Profile) Profile {
	p.ToxicityFlags++
	p.ReputationScore = clamp(p.ReputationScore-10, 0, 100)
	if p.ToxicityFlags >= ShadowBanThreshold {
		p.IsShadowBanned = true
	}
	return p
}

// AdjustReputation applies a community reputation signal. Positive feedback
// is worth half as much as negative costs, and negative feedback also counts
// a warning.
func AdjustReputation(p Profile, positive bool) Profile {
	if positive {
		p.ReputationScore = clamp(p.ReputationScore+5, 0, 100)
	} else {
		p.ReputationScore = clamp(p.ReputationScore-10, 0, 100)
		p.WarningCount++
	}
	return p
}
