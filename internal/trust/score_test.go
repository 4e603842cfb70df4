package trust

import (
	"math"
	"testing"
)

func f64(v float64) *float64 { return &v }

func TestReadinessScore(t *testing.T) {
	cases := []struct {
		name    string
		profile Profile
		want    float64
	}{
		{
			name: "maxed_counters_hit_100",
			profile: Profile{
				SessionCount:         5,
				TherapyAdoptionCount: 3,
				EngagementDays:       7,
				MoodStabilityScore:   f64(100),
				ReputationScore:      100,
			},
			want: 100,
		},
		{
			name: "fresh_account_default_reputation",
			profile: Profile{
				ReputationScore: 50,
			},
			want: 5,
		},
		{
			name: "components_cap_independently",
			profile: Profile{
				SessionCount:         500,
				TherapyAdoptionCount: 300,
				EngagementDays:       700,
				MoodStabilityScore:   f64(100),
				ReputationScore:      100,
			},
			want: 100,
		},
		{
			name: "toxicity_penalty_subtracts_ten_per_flag",
			profile: Profile{
				SessionCount:         5,
				TherapyAdoptionCount: 3,
				EngagementDays:       7,
				MoodStabilityScore:   f64(100),
				ReputationScore:      100,
				ToxicityFlags:        2,
			},
			want: 80,
		},
		{
			name: "penalty_floors_at_zero",
			profile: Profile{
				ReputationScore: 50,
				ToxicityFlags:   5,
			},
			want: 0,
		},
		{
			name: "missing_mood_contributes_nothing",
			profile: Profile{
				SessionCount:    5,
				ReputationScore: 100,
			},
			want: 40,
		},
		{
			name: "partial_session_credit",
			profile: Profile{
				SessionCount: 1,
			},
			want: 6,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ReadinessScore(tc.profile)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("ReadinessScore()=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestReadinessScoreIdempotent(t *testing.T) {
	p := Profile{
		SessionCount:         3,
		TherapyAdoptionCount: 1,
		EngagementDays:       2,
		MoodStabilityScore:   f64(62),
		ReputationScore:      40,
		ToxicityFlags:        1,
	}
	first := ReadinessScore(p)
	p.ReadinessScore = first
	for i := 0; i < 10; i++ {
		if got := ReadinessScore(p); got != first {
			t.Fatalf("recompute %d drifted: got %v, want %v", i, got, first)
		}
	}
}

func TestReadinessScoreRange(t *testing.T) {
	profiles := []Profile{
		{},
		{SessionCount: -1, ReputationScore: -50},
		{SessionCount: 1000, TherapyAdoptionCount: 1000, EngagementDays: 1000, MoodStabilityScore: f64(100), ReputationScore: 100},
		{ToxicityFlags: 100},
	}
	for _, p := range profiles {
		got := ReadinessScore(p)
		if got < 0 || got > 100 {
			t.Fatalf("score %v out of range for %+v", got, p)
		}
	}
}
