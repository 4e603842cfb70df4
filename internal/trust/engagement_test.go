package trust

import (
	"testing"
	"time"
)

func TestApplyEngagementSessionDedupesByCalendarDay(t *testing.T) {
	morning := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 10, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2025, 6, 11, 0, 5, 0, 0, time.UTC)

	p := Profile{CurrentPhase: PhaseAIOnly, ReputationScore: 50}

	p = ApplyEngagement(p, ActionSession, EngagementPayload{}, morning)
	if p.SessionCount != 1 || p.EngagementDays != 1 {
		t.Fatalf("after first session: sessions=%d days=%d", p.SessionCount, p.EngagementDays)
	}

	p = ApplyEngagement(p, ActionSession, EngagementPayload{}, evening)
	if p.SessionCount != 2 {
		t.Fatalf("same-day session not counted: sessions=%d", p.SessionCount)
	}
	if p.EngagementDays != 1 {
		t.Fatalf("same-day session double-credited a day: days=%d", p.EngagementDays)
	}

	p = ApplyEngagement(p, ActionSession, EngagementPayload{}, nextDay)
	if p.EngagementDays != 2 {
		t.Fatalf("next-day session not credited: days=%d", p.EngagementDays)
	}
	if p.LastSessionDate == nil || !p.LastSessionDate.Equal(nextDay) {
		t.Fatalf("LastSessionDate not advanced: %v", p.LastSessionDate)
	}
}

func TestApplyEngagementTherapyAdoptionUnbounded(t *testing.T) {
	p := Profile{CurrentPhase: PhaseAIOnly, ReputationScore: 50}
	for i := 0; i < 12; i++ {
		p = ApplyEngagement(p, ActionTherapyAdoption, EngagementPayload{}, testNow)
	}
	if p.TherapyAdoptionCount != 12 {
		t.Fatalf("TherapyAdoptionCount=%d, want 12", p.TherapyAdoptionCount)
	}
}

func TestApplyEngagementAssessmentOverwritesMood(t *testing.T) {
	p := Profile{CurrentPhase: PhaseAIOnly, ReputationScore: 50}

	p = ApplyEngagement(p, ActionAssessmentComplete, EngagementPayload{MoodScore: f64(40)}, testNow)
	if p.MoodStabilityScore == nil || *p.MoodStabilityScore != 40 {
		t.Fatalf("mood not set: %v", p.MoodStabilityScore)
	}

	p = ApplyEngagement(p, ActionAssessmentComplete, EngagementPayload{MoodScore: f64(75)}, testNow)
	if *p.MoodStabilityScore != 75 {
		t.Fatalf("mood not overwritten: %v", *p.MoodStabilityScore)
	}

	// Missing payload leaves the last reading in place.
	p = ApplyEngagement(p, ActionAssessmentComplete, EngagementPayload{}, testNow)
	if *p.MoodStabilityScore != 75 {
		t.Fatalf("mood changed without a score: %v", *p.MoodStabilityScore)
	}
}

func TestApplyEngagementUnknownActionIsNoOp(t *testing.T) {
	p := Profile{
		CurrentPhase:         PhaseAIOnly,
		SessionCount:         2,
		MoodStabilityScore:   f64(80),
		TherapyAdoptionCount: 1,
		EngagementDays:       1,
		ReputationScore:      50,
	}
	got := ApplyEngagement(p, "share_playlist", EngagementPayload{}, testNow)

	if got.SessionCount != p.SessionCount ||
		got.TherapyAdoptionCount != p.TherapyAdoptionCount ||
		got.EngagementDays != p.EngagementDays {
		t.Fatalf("counters mutated by unknown action: %+v", got)
	}
	// The recompute and phase check still run on the unchanged counters.
	if got.ReadinessScore != ReadinessScore(p) {
		t.Fatalf("readiness not recomputed: %v", got.ReadinessScore)
	}
	if got.CurrentPhase != PhaseMicroTherapy {
		t.Fatalf("phase check skipped for unknown action: %s", got.CurrentPhase)
	}
}

func TestApplyEngagementSingleEventCascade(t *testing.T) {
	// All later thresholds already banked while stuck in ai-only without an
	// assessment; completing it advances straight to full-access.
	p := Profile{
		CurrentPhase:         PhaseAIOnly,
		SessionCount:         5,
		TherapyAdoptionCount: 3,
		EngagementDays:       7,
		ReputationScore:      100,
	}
	p = ApplyEngagement(p, ActionAssessmentComplete, EngagementPayload{MoodScore: f64(100)}, testNow)
	if p.CurrentPhase != PhaseFullAccess {
		t.Fatalf("expected full-access after cascade, got %s", p.CurrentPhase)
	}
	if p.ReadinessScore != 100 {
		t.Fatalf("ReadinessScore=%v, want 100", p.ReadinessScore)
	}
}

func TestApplyToxicityPenalty(t *testing.T) {
	p := Profile{ReputationScore: 15}

	p = ApplyToxicityPenalty(p)
	if p.ToxicityFlags != 1 || p.ReputationScore != 5 {
		t.Fatalf("after first flag: flags=%d rep=%v", p.ToxicityFlags, p.ReputationScore)
	}

	p = ApplyToxicityPenalty(p)
	if p.ReputationScore != 0 {
		t.Fatalf("reputation should floor at zero, got %v", p.ReputationScore)
	}
	if p.IsShadowBanned {
		t.Fatal("shadow ban before third flag")
	}

	p = ApplyToxicityPenalty(p)
	if !p.IsShadowBanned {
		t.Fatal("third flag should shadow ban")
	}

	// No event in this core clears the ban.
	p = ApplyEngagement(p, ActionSession, EngagementPayload{}, testNow)
	p = AdjustReputation(p, true)
	if !p.IsShadowBanned {
		t.Fatal("shadow ban reverted")
	}
}

func TestAdjustReputation(t *testing.T) {
	p := Profile{ReputationScore: 98}

	p = AdjustReputation(p, true)
	if p.ReputationScore != 100 {
		t.Fatalf("positive adjust should cap at 100, got %v", p.ReputationScore)
	}

	p = AdjustReputation(p, false)
	if p.ReputationScore != 90 || p.WarningCount != 1 {
		t.Fatalf("negative adjust: rep=%v warnings=%d", p.ReputationScore, p.WarningCount)
	}

	p.ReputationScore = 4
	p = AdjustReputation(p, false)
	if p.ReputationScore != 0 {
		t.Fatalf("negative adjust should floor at 0, got %v", p.ReputationScore)
	}
}
