package moderation

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lexicon holds the three severity tiers of the keyword classifier. Order
// within a tier matters: matched terms are reported in scan order.
type Lexicon struct {
	High   []string `yaml:"high"`
	Medium []string `yaml:"medium"`
	Low    []string `yaml:"low"`
}

// Per-match weights by tier.
const (
	weightHigh   = 0.8
	weightMedium = 0.4
	weightLow    = 0.2
)

func defaultLexicon() Lexicon {
	return Lexicon{
		High: []string{
			"kill yourself", "kys", "suicide", "self harm", "self-harm",
			"kill you", "murder", "rape", "molest", "pedophile",
		},
		Medium: []string{
			"hate you", "hate them", "stupid", "idiot", "moron", "retard",
			"loser", "worthless", "pathetic", "disgusting", "trash", "garbage",
			"die", "death", "threat", "violence", "harm", "attack", "beat up",
			"bully", "abuse", "racist", "sexist", "slur",
		},
		Low: []string{
			"dumb", "ugly", "fat", "annoying", "shut up", "go away",
			"nobody likes you", "hate this", "sucks", "terrible",
		},
	}
}

// LoadLexicon reads a tiered term list from a YAML file. Terms are lowercased
// on load since matching is case-insensitive.
func LoadLexicon(path string) (Lexicon, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("read lexicon file: %w", err)
	}
	var lex Lexicon
	if err := yaml.Unmarshal(raw, &lex); err != nil {
		return Lexicon{}, fmt.Errorf("parse lexicon file: %w", err)
	}
	if len(lex.High) == 0 && len(lex.Medium) == 0 && len(lex.Low) == 0 {
		return Lexicon{}, fmt.Errorf("lexicon file %s has no terms", path)
	}
	lex.High = lowercaseAll(lex.High)
	lex.Medium = lowercaseAll(lex.Medium)
	lex.Low = lowercaseAll(lex.Low)
	return lex, nil
}

func lowercaseAll(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
