package extract

import (
	"regexp"
	"strings"

	"github.com/ormolov/sway/internal/lexicon"
	"github.com/ormolov/sway/internal/model"
)

// Extractor scans text against the lexicon trigger sets
type Extractor struct {
	mode     lexicon.MatchMode
	phrases  map[model.Category][]string
	patterns map[model.Category][]*regexp.Regexp // compiled once, word mode only
}

// NewExtractor creates an extractor for the given lexicon and match mode
func NewExtractor(lex *lexicon.Lexicon, mode lexicon.MatchMode) *Extractor {
	e := &Extractor{
		mode:     mode,
		phrases:  make(map[model.Category][]string),
		patterns: make(map[model.Category][]*regexp.Regexp),
	}

	for _, cat := range model.Categories() {
		phrases := lex.Phrases(cat)
		e.phrases[cat] = phrases
		if mode != lexicon.MatchWord {
			continue
		}
		compiled := make([]*regexp.Regexp, len(phrases))
		for i, p := range phrases {
			compiled[i] = PhrasePattern(p)
		}
		e.patterns[cat] = compiled
	}

	return e
}

// Extract returns the per-category feature results for text.
// Each lexicon phrase is counted at most once, so Count == len(Matches);
// matches are reported in lexicon order. Empty text yields zero counts.
// Deterministic: no randomness, no external state.
func (e *Extractor) Extract(text string) map[model.Category]model.FeatureResult {
	results := make(map[model.Category]model.FeatureResult, len(e.phrases))
	lower := strings.ToLower(text)

	for _, cat := range model.Categories() {
		var matches []string
		for i, phrase := range e.phrases[cat] {
			if e.detect(lower, cat, i, phrase) {
				matches = append(matches, phrase)
			}
		}
		results[cat] = model.FeatureResult{
			Count:   len(matches),
			Matches: matches,
		}
	}

	return results
}

func (e *Extractor) detect(lower string, cat model.Category, idx int, phrase string) bool {
	if lower == "" {
		return false
	}
	if e.mode == lexicon.MatchSubstring {
		return strings.Contains(lower, phrase)
	}
	return e.patterns[cat][idx].MatchString(lower)
}

// PhrasePattern compiles a case-insensitive matcher for a trigger phrase
func PhrasePattern(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + PhraseExpr(phrase))
}

// PhraseExpr builds the regular expression for a trigger phrase. Word
// boundaries are anchored only where the phrase edge is alphanumeric, so
// multi-word phrases match literally including internal whitespace. The
// rewrite generator builds its substitution patterns from the same
// expression, keeping detection and neutralization in lockstep.
func PhraseExpr(phrase string) string {
	expr := regexp.QuoteMeta(phrase)
	if startsWordChar(phrase) {
		expr = `\b` + expr
	}
	if endsWordChar(phrase) {
		expr += `\b`
	}
	return expr
}

func startsWordChar(s string) bool {
	if s == "" {
		return false
	}
	return isWordChar(rune(s[0]))
}

func endsWordChar(s string) bool {
	if s == "" {
		return false
	}
	return isWordChar(rune(s[len(s)-1]))
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}
