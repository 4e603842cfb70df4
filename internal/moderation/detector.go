package moderation

import (
	"math"
	"os"
	"strings"
)

// Verdict is the classification result for one piece of submitted text. Only
// its effects are persisted; the verdict itself is ephemeral.
type Verdict struct {
	IsToxic      bool     `json:"is_toxic"`
	Score        float64  `json:"score"`
	FlaggedTerms []string `json:"flagged_terms"`
}

// ToxicThreshold is the score at or above which content is rejected.
const ToxicThreshold = 0.5

// Detector classifies free text. The keyword implementation is a stand-in
// for an ML classifier; callers only depend on this interface.
type Detector interface {
	Evaluate(text string) Verdict
}

type keywordDetector struct {
	lex Lexicon
}

// NewDetector builds the keyword detector with the built-in term lists,
// overridden by MODERATION_LEXICON_PATH when that file loads cleanly.
func NewDetector() Detector {
	lex := defaultLexicon()
	if path := strings.TrimSpace(os.Getenv("MODERATION_LEXICON_PATH")); path != "" {
		if loaded, err := LoadLexicon(path); err == nil {
			lex = loaded
		}
	}
	return &keywordDetector{lex: lex}
}

// NewDetectorWithLexicon is for tests and callers that manage their own
// term lists.
func NewDetectorWithLexicon(lex Lexicon) Detector {
	return &keywordDetector{lex: lex}
}

// Evaluate runs substring containment of every term over the case-folded
// whole text. Tiers are scanned high, medium, low; a term appearing in more
// than one tier is counted and reported once per tier, deliberately undeduped.
func (d *keywordDetector) Evaluate(text string) Verdict {
	lowered := strings.ToLower(text)

	score := 0.0
	var flagged []string

	for _, term := range d.lex.High {
		if strings.Contains(lowered, term) {
			score += weightHigh
			flagged = append(flagged, term)
		}
	}
	for _, term := range d.lex.Medium {
		if strings.Contains(lowered, term) {
			score += weightMedium
			flagged = append(flagged, term)
		}
	}
	for _, term := range d.lex.Low {
		if strings.Contains(lowered, term) {
			score += weightLow
			flagged = append(flagged, term)
		}
	}

	score = math.Min(score, 1)

	return Verdict{
		IsToxic:      score >= ToxicThreshold,
		Score:        score,
		FlaggedTerms: flagged,
	}
}
