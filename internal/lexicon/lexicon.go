package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ormolov/sway/internal/model"
)

//go:embed lexicon.json
var defaultLexiconJSON []byte

// MatchMode selects how trigger phrases are located in text
type MatchMode string

const (
	// MatchWord requires word boundaries around the phrase (default)
	MatchWord MatchMode = "word"

	// MatchSubstring detects the phrase anywhere, including inside longer
	// words ("lose" inside "closet"). Kept for parity with the original
	// lexicon behavior; opt-in.
	MatchSubstring MatchMode = "substring"
)

// ParseMatchMode converts a configuration string to a MatchMode.
// Empty and unknown values fall back to MatchWord.
func ParseMatchMode(s string) MatchMode {
	if strings.EqualFold(s, string(MatchSubstring)) {
		return MatchSubstring
	}
	return MatchWord
}

// Lexicon holds the fixed trigger-phrase sets per category.
// Loaded once at startup and immutable afterwards.
type Lexicon struct {
	phrases map[model.Category][]string
}

// Default returns the built-in lexicon
func Default() *Lexicon {
	lex, err := parse(defaultLexiconJSON)
	if err != nil {
		// The embedded lexicon is validated by tests; a parse failure
		// here means a broken build, not a runtime condition.
		panic(fmt.Sprintf("embedded lexicon invalid: %v", err))
	}
	return lex
}

// Load reads a custom lexicon JSON file. The file must define phrase
// lists for all three categories (fear, urgency, negativity).
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}
	lex, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse lexicon %s: %w", path, err)
	}
	return lex, nil
}

func parse(data []byte) (*Lexicon, error) {
	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	phrases := make(map[model.Category][]string, len(model.Categories()))
	for _, cat := range model.Categories() {
		list, ok := raw[string(cat)]
		if !ok {
			return nil, fmt.Errorf("missing category %q", cat)
		}
		cleaned := make([]string, 0, len(list))
		seen := make(map[string]bool, len(list))
		for _, p := range list {
			p = strings.ToLower(strings.TrimSpace(p))
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			cleaned = append(cleaned, p)
		}
		if len(cleaned) == 0 {
			return nil, fmt.Errorf("category %q has no phrases", cat)
		}
		phrases[cat] = cleaned
	}

	return &Lexicon{phrases: phrases}, nil
}

// Phrases returns the trigger phrases for a category, in lexicon order
func (l *Lexicon) Phrases(cat model.Category) []string {
	out := make([]string, len(l.phrases[cat]))
	copy(out, l.phrases[cat])
	return out
}

// Triggers returns the pressure phrases the rewrite generator substitutes:
// the fear and urgency sets, sharing one source with the extractor so the
// two can never drift apart.
func (l *Lexicon) Triggers() []string {
	fear := l.phrases[model.CategoryFear]
	urgency := l.phrases[model.CategoryUrgency]
	out := make([]string, 0, len(fear)+len(urgency))
	out = append(out, fear...)
	out = append(out, urgency...)
	return out
}
