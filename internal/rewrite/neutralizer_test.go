package rewrite

import (
	"testing"

	"github.com/ormolov/sway/internal/lexicon"
)

func TestNeutralizer_Neutralize_ReplacesTriggers(t *testing.T) {
	n, err := NewNeutralizer(lexicon.Default().Triggers(), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := n.Neutralize("Act now or you will regret it!")
	want := "Act take your time or you will take your time it!"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNeutralizer_Neutralize_NoTriggersUnchanged(t *testing.T) {
	n, err := NewNeutralizer(lexicon.Default().Triggers(), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	text := "The weather is lovely and calm this morning."
	if got := n.Neutralize(text); got != text {
		t.Errorf("Expected text without triggers unchanged, got %q", got)
	}
}

func TestNeutralizer_Neutralize_Idempotent(t *testing.T) {
	n, err := NewNeutralizer(lexicon.Default().Triggers(), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	first := n.Neutralize("Hurry, this danger will not wait, act immediately!")
	second := n.Neutralize(first)
	if first != second {
		t.Errorf("Expected neutralization to be idempotent, got %q then %q", first, second)
	}
}

func TestNeutralizer_Neutralize_CaseInsensitive(t *testing.T) {
	n, err := NewNeutralizer(lexicon.Default().Triggers(), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := n.Neutralize("HURRY! Danger ahead.")
	want := "take your time! take your time ahead."
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestNeutralizer_Neutralize_LongestTriggerWins(t *testing.T) {
	n, err := NewNeutralizer([]string{"last", "last chance"}, "[calm]")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	got := n.Neutralize("This is your last chance.")
	want := "This is your [calm]."
	if got != want {
		t.Errorf("Expected longer trigger to win, got %q", got)
	}
}

func TestNeutralizer_Neutralize_WordBoundaries(t *testing.T) {
	n, err := NewNeutralizer(lexicon.Default().Triggers(), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// "snowy" embeds "now" but is not a trigger occurrence
	text := "The snowy hills are quiet."
	if got := n.Neutralize(text); got != text {
		t.Errorf("Expected embedded fragments untouched, got %q", got)
	}
}

func TestNewNeutralizer_RejectsTriggerInReplacement(t *testing.T) {
	if _, err := NewNeutralizer([]string{"hurry"}, "please hurry later"); err == nil {
		t.Error("Expected error for replacement containing a trigger")
	}
}

func TestNewNeutralizer_EmptyTriggers(t *testing.T) {
	n, err := NewNeutralizer(nil, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	text := "Act now!"
	if got := n.Neutralize(text); got != text {
		t.Errorf("Expected passthrough without triggers, got %q", got)
	}
	if n.Replacement() != DefaultReplacement {
		t.Errorf("Expected default replacement, got %q", n.Replacement())
	}
}
