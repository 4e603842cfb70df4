package trust

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 10, 15, 4, 5, 0, time.UTC)

func TestAdvancePhaseSingleStep(t *testing.T) {
	cases := []struct {
		name    string
		profile Profile
		want    Phase
	}{
		{
			name: "ai_only_promotes_after_two_sessions_and_assessment",
			profile: Profile{
				CurrentPhase:       PhaseAIOnly,
				SessionCount:       2,
				MoodStabilityScore: f64(55),
			},
			want: PhaseMicroTherapy,
		},
		{
			name: "ai_only_waits_for_assessment",
			profile: Profile{
				CurrentPhase: PhaseAIOnly,
				SessionCount: 10,
			},
			want: PhaseAIOnly,
		},
		{
			name: "ai_only_waits_for_second_session",
			profile: Profile{
				CurrentPhase:       PhaseAIOnly,
				SessionCount:       1,
				MoodStabilityScore: f64(55),
			},
			want: PhaseAIOnly,
		},
		{
			name: "micro_therapy_needs_adoptions_and_days",
			profile: Profile{
				CurrentPhase:         PhaseMicroTherapy,
				TherapyAdoptionCount: 2,
				EngagementDays:       3,
			},
			want: PhaseCommunityReadonly,
		},
		{
			name: "micro_therapy_blocked_on_engagement_days",
			profile: Profile{
				CurrentPhase:         PhaseMicroTherapy,
				TherapyAdoptionCount: 5,
				EngagementDays:       2,
			},
			want: PhaseMicroTherapy,
		},
		{
			name: "readonly_promotes_at_seventy_clean_record",
			profile: Profile{
				CurrentPhase:   PhaseCommunityReadonly,
				ReadinessScore: 70,
			},
			want: PhaseFullAccess,
		},
		{
			name: "readonly_blocked_by_any_toxicity_flag",
			profile: Profile{
				CurrentPhase:   PhaseCommunityReadonly,
				ReadinessScore: 95,
				ToxicityFlags:  1,
			},
			want: PhaseCommunityReadonly,
		},
		{
			name: "full_access_is_terminal",
			profile: Profile{
				CurrentPhase: PhaseFullAccess,
			},
			want: PhaseFullAccess,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AdvancePhase(tc.profile, testNow)
			if got.CurrentPhase != tc.want {
				t.Fatalf("AdvancePhase: phase=%s, want %s", got.CurrentPhase, tc.want)
			}
		})
	}
}

func TestAdvancePhaseCascades(t *testing.T) {
	// Every threshold already satisfied: one call walks the whole ladder.
	p := Profile{
		CurrentPhase:         PhaseAIOnly,
		SessionCount:         5,
		TherapyAdoptionCount: 3,
		EngagementDays:       7,
		MoodStabilityScore:   f64(100),
		ReputationScore:      100,
	}
	p.ReadinessScore = ReadinessScore(p)

	got := AdvancePhase(p, testNow)
	if got.CurrentPhase != PhaseFullAccess {
		t.Fatalf("expected cascade to full-access, got %s", got.CurrentPhase)
	}
	if got.CommunityReadyDate == nil || !got.CommunityReadyDate.Equal(testNow) {
		t.Fatalf("CommunityReadyDate not stamped on promotion: %v", got.CommunityReadyDate)
	}
}

func TestCommunityReadyDateSetOnce(t *testing.T) {
	earlier := testNow.Add(-48 * time.Hour)
	p := Profile{
		CurrentPhase:       PhaseCommunityReadonly,
		ReadinessScore:     80,
		CommunityReadyDate: &earlier,
	}
	got := AdvancePhase(p, testNow)
	if got.CurrentPhase != PhaseFullAccess {
		t.Fatalf("expected promotion, got %s", got.CurrentPhase)
	}
	if !got.CommunityReadyDate.Equal(earlier) {
		t.Fatalf("CommunityReadyDate overwritten: %v", got.CommunityReadyDate)
	}

	again := AdvancePhase(got, testNow.Add(time.Hour))
	if !again.CommunityReadyDate.Equal(earlier) {
		t.Fatalf("CommunityReadyDate changed on later call: %v", again.CommunityReadyDate)
	}
}

func TestPhaseNeverRegresses(t *testing.T) {
	p := Profile{CurrentPhase: PhaseAIOnly, ReputationScore: 50}
	now := testNow
	events := []struct {
		action  string
		payload EngagementPayload
	}{
		{ActionSession, EngagementPayload{}},
		{ActionSession, EngagementPayload{}},
		{ActionAssessmentComplete, EngagementPayload{MoodScore: f64(90)}},
		{"bogus_action", EngagementPayload{}},
		{ActionTherapyAdoption, EngagementPayload{}},
		{ActionTherapyAdoption, EngagementPayload{}},
		{ActionSession, EngagementPayload{}},
		{ActionSession, EngagementPayload{}},
		{ActionSession, EngagementPayload{}},
	}
	prev := p.CurrentPhase.Index()
	for i, ev := range events {
		now = now.Add(26 * time.Hour)
		p = ApplyEngagement(p, ev.action, ev.payload, now)
		if p.CurrentPhase.Index() < prev {
			t.Fatalf("phase regressed at event %d: %s", i, p.CurrentPhase)
		}
		prev = p.CurrentPhase.Index()
	}
}

func TestPhaseIndexOrdering(t *testing.T) {
	ordered := []Phase{PhaseAIOnly, PhaseMicroTherapy, PhaseCommunityReadonly, PhaseFullAccess}
	for i, ph := range ordered {
		if ph.Index() != i {
			t.Fatalf("Index(%s)=%d, want %d", ph, ph.Index(), i)
		}
		if !ph.Valid() {
			t.Fatalf("Valid(%s)=false", ph)
		}
	}
	if Phase("made-up").Valid() {
		t.Fatal("unknown phase reported valid")
	}
}
