package trust

import "math"

// ReadinessScore computes the 0-100 composite trust score from the profile's
// behavioral counters. Five independently capped components, then a flat
// penalty per toxicity flag, clamped to [0,100]. Pure: calling it again with
// the same profile yields the same score.
func ReadinessScore(p Profile) float64 {
	score := 0.0

	// Session engagement (30 points max)
	score += math.Min(float64(p.SessionCount)/5*30, 30)

	// Therapy adoption (25 points max)
	score += math.Min(float64(p.TherapyAdoptionCount)/3*25, 25)

	// Engagement days (20 points max)
	score += math.Min(float64(p.EngagementDays)/7*20, 20)

	// Mood stability (15 points max); no assessment yet contributes nothing
	mood := 0.0
	if p.MoodStabilityScore != nil {
		mood = *p.MoodStabilityScore
	}
	score += math.Min(mood/100*15, 15)

	// Reputation (10 points max)
	score += math.Min(p.ReputationScore/100*10, 10)

	score -= float64(p.ToxicityFlags) * 10

	return clamp(score, 0, 100)
}
