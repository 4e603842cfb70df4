package moderation

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEvaluateCleanText(t *testing.T) {
	d := NewDetectorWithLexicon(defaultLexicon())
	for _, text := range []string{
		"",
		"Looking forward to the morning run by the river!",
		"Anyone up for a calm breathing session this weekend?",
	} {
		v := d.Evaluate(text)
		if v.IsToxic {
			t.Fatalf("clean text flagged toxic: %q", text)
		}
		if v.Score != 0 {
			t.Fatalf("clean text scored %v: %q", v.Score, text)
		}
		if len(v.FlaggedTerms) != 0 {
			t.Fatalf("clean text flagged terms %v: %q", v.FlaggedTerms, text)
		}
	}
}

func TestEvaluateSeverityWeights(t *testing.T) {
	d := NewDetectorWithLexicon(defaultLexicon())
	cases := []struct {
		name      string
		text      string
		wantScore float64
		wantToxic bool
	}{
		{name: "single_high_term", text: "please do not murder anyone", wantScore: 0.8, wantToxic: true},
		{name: "single_medium_term", text: "you are so stupid", wantScore: 0.4, wantToxic: false},
		{name: "single_low_term", text: "this place sucks", wantScore: 0.2, wantToxic: false},
		{name: "two_medium_terms_cross_threshold", text: "stupid idiot", wantScore: 0.8, wantToxic: true},
		{name: "medium_plus_low", text: "stupid and ugly", wantScore: 0.6, wantToxic: true},
		{name: "case_insensitive", text: "STUPID Idiot", wantScore: 0.8, wantToxic: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := d.Evaluate(tc.text)
			if math.Abs(v.Score-tc.wantScore) > 1e-9 {
				t.Fatalf("score=%v, want %v", v.Score, tc.wantScore)
			}
			if v.IsToxic != tc.wantToxic {
				t.Fatalf("isToxic=%v, want %v", v.IsToxic, tc.wantToxic)
			}
		})
	}
}

func TestEvaluateOverlappingSubstrings(t *testing.T) {
	// "die" is contained in "death"-adjacent text; both medium terms count.
	d := NewDetectorWithLexicon(defaultLexicon())
	v := d.Evaluate("wishing die and death on no one")
	if math.Abs(v.Score-0.8) > 1e-9 {
		t.Fatalf("score=%v, want 0.8", v.Score)
	}
	if !v.IsToxic {
		t.Fatal("overlapping medium matches should be toxic")
	}
}

func TestEvaluateScoreSaturates(t *testing.T) {
	d := NewDetectorWithLexicon(defaultLexicon())
	lex := defaultLexicon()
	all := strings.Join(append(append(append([]string{}, lex.High...), lex.Medium...), lex.Low...), " ")
	v := d.Evaluate(all)
	if v.Score != 1 {
		t.Fatalf("saturated score=%v, want 1", v.Score)
	}
	if !v.IsToxic {
		t.Fatal("saturated text should be toxic")
	}
}

func TestEvaluateFlaggedTermsScanOrder(t *testing.T) {
	d := NewDetectorWithLexicon(Lexicon{
		High:   []string{"alpha"},
		Medium: []string{"beta", "gamma"},
		Low:    []string{"delta"},
	})
	v := d.Evaluate("delta gamma alpha beta")
	want := []string{"alpha", "beta", "gamma", "delta"}
	if !reflect.DeepEqual(v.FlaggedTerms, want) {
		t.Fatalf("flagged terms %v, want %v", v.FlaggedTerms, want)
	}
}

func TestEvaluateDuplicateTermAcrossTiersCountsTwice(t *testing.T) {
	// The contract preserves per-tier matches; no defensive dedup.
	d := NewDetectorWithLexicon(Lexicon{
		High:   []string{"omega"},
		Medium: []string{"omega"},
	})
	v := d.Evaluate("omega")
	if math.Abs(v.Score-1) > 1e-9 {
		t.Fatalf("score=%v, want 1 (0.8+0.4 capped)", v.Score)
	}
	want := []string{"omega", "omega"}
	if !reflect.DeepEqual(v.FlaggedTerms, want) {
		t.Fatalf("flagged terms %v, want %v", v.FlaggedTerms, want)
	}
}

func TestLoadLexiconOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lexicon.yaml")
	raw := "high:\n  - Banshee\nmedium:\n  - grumble\nlow:\n  - meh\n"
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write lexicon: %v", err)
	}

	lex, err := LoadLexicon(path)
	if err != nil {
		t.Fatalf("LoadLexicon: %v", err)
	}
	if len(lex.High) != 1 || lex.High[0] != "banshee" {
		t.Fatalf("high tier not lowercased: %v", lex.High)
	}

	d := NewDetectorWithLexicon(lex)
	v := d.Evaluate("the BANSHEE wails")
	if math.Abs(v.Score-0.8) > 1e-9 {
		t.Fatalf("score=%v, want 0.8", v.Score)
	}

	if _, err := LoadLexicon(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
