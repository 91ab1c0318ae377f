package extract

import (
	"testing"

	"github.com/ormolov/sway/internal/lexicon"
	"github.com/ormolov/sway/internal/model"
)

func TestExtractor_Extract_PressureSentence(t *testing.T) {
	e := NewExtractor(lexicon.Default(), lexicon.MatchWord)

	results := e.Extract("Act now or you will regret it, this is your last chance!")

	fear := results[model.CategoryFear]
	if fear.Count != 1 {
		t.Errorf("Expected 1 fear trigger, got %d: %v", fear.Count, fear.Matches)
	}
	if len(fear.Matches) != 1 || fear.Matches[0] != "regret" {
		t.Errorf("Expected fear match [regret], got %v", fear.Matches)
	}

	urgency := results[model.CategoryUrgency]
	if urgency.Count != 2 {
		t.Errorf("Expected 2 urgency triggers, got %d: %v", urgency.Count, urgency.Matches)
	}
	// Matches come back in lexicon order, not text order
	if len(urgency.Matches) != 2 || urgency.Matches[0] != "now" || urgency.Matches[1] != "last chance" {
		t.Errorf("Expected urgency matches [now, last chance], got %v", urgency.Matches)
	}

	if results[model.CategoryNegativity].Count != 0 {
		t.Errorf("Expected no negativity triggers, got %v", results[model.CategoryNegativity].Matches)
	}
}

func TestExtractor_Extract_NeutralSentence(t *testing.T) {
	e := NewExtractor(lexicon.Default(), lexicon.MatchWord)

	results := e.Extract("Hello, how are you today?")

	if results[model.CategoryFear].Count != 0 {
		t.Errorf("Expected no fear triggers, got %v", results[model.CategoryFear].Matches)
	}
	// "today" is an urgency phrase even in a greeting
	urgency := results[model.CategoryUrgency]
	if urgency.Count != 1 || urgency.Matches[0] != "today" {
		t.Errorf("Expected urgency match [today], got %v", urgency.Matches)
	}
	if results[model.CategoryNegativity].Count != 0 {
		t.Errorf("Expected no negativity triggers, got %v", results[model.CategoryNegativity].Matches)
	}
}

func TestExtractor_Extract_CaseInsensitive(t *testing.T) {
	e := NewExtractor(lexicon.Default(), lexicon.MatchWord)

	results := e.Extract("DANGER ahead. HURRY!")

	if !hasMatch(results[model.CategoryFear], "danger") {
		t.Errorf("Expected fear match 'danger', got %v", results[model.CategoryFear].Matches)
	}
	if !hasMatch(results[model.CategoryUrgency], "hurry") {
		t.Errorf("Expected urgency match 'hurry', got %v", results[model.CategoryUrgency].Matches)
	}
}

func TestExtractor_Extract_CountsPhraseOnce(t *testing.T) {
	e := NewExtractor(lexicon.Default(), lexicon.MatchWord)

	results := e.Extract("danger danger danger")

	fear := results[model.CategoryFear]
	if fear.Count != 1 {
		t.Errorf("Expected repeated phrase to count once, got %d", fear.Count)
	}
	if fear.Count != len(fear.Matches) {
		t.Errorf("Expected count %d to equal matches length %d", fear.Count, len(fear.Matches))
	}
}

func TestExtractor_Extract_WordBoundaries(t *testing.T) {
	e := NewExtractor(lexicon.Default(), lexicon.MatchWord)

	// "closet" embeds "lose", "snowy" embeds "now", "flossing" embeds "loss"
	results := e.Extract("My closet looks snowy after flossing.")

	if results[model.CategoryFear].Count != 0 {
		t.Errorf("Expected no fear triggers inside longer words, got %v", results[model.CategoryFear].Matches)
	}
	if results[model.CategoryUrgency].Count != 0 {
		t.Errorf("Expected no urgency triggers inside longer words, got %v", results[model.CategoryUrgency].Matches)
	}
}

func TestExtractor_Extract_SubstringMode(t *testing.T) {
	e := NewExtractor(lexicon.Default(), lexicon.MatchSubstring)

	results := e.Extract("My closet looks snowy after flossing.")

	fear := results[model.CategoryFear]
	if !hasMatch(fear, "loss") || !hasMatch(fear, "lose") {
		t.Errorf("Expected substring mode to hit embedded fear phrases, got %v", fear.Matches)
	}
	if !hasMatch(results[model.CategoryUrgency], "now") {
		t.Errorf("Expected substring mode to hit embedded 'now', got %v", results[model.CategoryUrgency].Matches)
	}
}

func TestExtractor_Extract_MultiWordPhrase(t *testing.T) {
	e := NewExtractor(lexicon.Default(), lexicon.MatchWord)

	results := e.Extract("This is your Last Chance to sign up.")

	if !hasMatch(results[model.CategoryUrgency], "last chance") {
		t.Errorf("Expected multi-word urgency match, got %v", results[model.CategoryUrgency].Matches)
	}
}

func TestExtractor_Extract_EmptyText(t *testing.T) {
	e := NewExtractor(lexicon.Default(), lexicon.MatchWord)

	results := e.Extract("")

	for _, cat := range model.Categories() {
		r, ok := results[cat]
		if !ok {
			t.Errorf("Expected result entry for category %s", cat)
			continue
		}
		if r.Count != 0 {
			t.Errorf("Expected zero count for category %s on empty text, got %d", cat, r.Count)
		}
	}
}

func TestPhraseExpr_AnchorsOnlyWordEdges(t *testing.T) {
	if expr := PhraseExpr("now"); expr != `\bnow\b` {
		t.Errorf("Expected anchored expression for plain word, got %q", expr)
	}
	// A trailing non-word rune leaves that edge unanchored
	if expr := PhraseExpr("act!"); expr != `\bact!` {
		t.Errorf("Expected left-only anchoring for 'act!', got %q", expr)
	}
}

func hasMatch(r model.FeatureResult, phrase string) bool {
	for _, m := range r.Matches {
		if m == phrase {
			return true
		}
	}
	return false
}
