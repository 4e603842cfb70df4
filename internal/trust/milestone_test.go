package trust

import (
	"math"
	"testing"
)

func TestNextMilestone(t *testing.T) {
	cases := []struct {
		name         string
		profile      Profile
		wantLabel    string
		wantProgress float64
	}{
		{
			name:         "ai_only_halfway",
			profile:      Profile{CurrentPhase: PhaseAIOnly, SessionCount: 1},
			wantLabel:    "Complete assessment",
			wantProgress: 50,
		},
		{
			name:         "ai_only_caps_at_100",
			profile:      Profile{CurrentPhase: PhaseAIOnly, SessionCount: 9},
			wantLabel:    "Complete assessment",
			wantProgress: 100,
		},
		{
			name:         "micro_therapy_one_of_two",
			profile:      Profile{CurrentPhase: PhaseMicroTherapy, TherapyAdoptionCount: 1},
			wantLabel:    "Try 2 recommended therapies",
			wantProgress: 50,
		},
		{
			name:         "readonly_tracks_readiness",
			profile:      Profile{CurrentPhase: PhaseCommunityReadonly, ReadinessScore: 35},
			wantLabel:    "Reach 70% readiness score",
			wantProgress: 50,
		},
		{
			name:         "readonly_caps_at_100",
			profile:      Profile{CurrentPhase: PhaseCommunityReadonly, ReadinessScore: 99},
			wantLabel:    "Reach 70% readiness score",
			wantProgress: 100,
		},
		{
			name:         "full_access_always_complete",
			profile:      Profile{CurrentPhase: PhaseFullAccess},
			wantLabel:    "Maintain positive reputation",
			wantProgress: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextMilestone(tc.profile)
			if got.Label != tc.wantLabel {
				t.Fatalf("label=%q, want %q", got.Label, tc.wantLabel)
			}
			if math.Abs(got.Progress-tc.wantProgress) > 1e-9 {
				t.Fatalf("progress=%v, want %v", got.Progress, tc.wantProgress)
			}
		})
	}
}
