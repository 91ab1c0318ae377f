// Package rewrite produces softened variants of manipulative text by
// substituting trigger phrases with a neutral replacement.
package rewrite

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ormolov/sway/internal/extract"
)

// DefaultReplacement is substituted for every trigger phrase unless the
// configuration overrides it. It contains no trigger phrase itself, which
// keeps repeated neutralization a no-op.
const DefaultReplacement = "take your time"

// Neutralizer replaces fear and urgency trigger phrases in free text.
// Matching is case-insensitive and anchored at word boundaries, scanning
// left to right without overlap; when two triggers start at the same
// position the longer one wins.
type Neutralizer struct {
	pattern     *regexp.Regexp
	replacement string
}

// NewNeutralizer builds a Neutralizer for the given trigger phrases.
// It rejects a replacement that itself contains a trigger phrase, since
// that would reintroduce what the rewrite is meant to remove.
func NewNeutralizer(triggers []string, replacement string) (*Neutralizer, error) {
	if replacement == "" {
		replacement = DefaultReplacement
	}

	cleaned := make([]string, 0, len(triggers))
	for _, t := range triggers {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return &Neutralizer{replacement: replacement}, nil
	}

	// Longer phrases first so "last chance" beats "last" when both
	// start at the same offset. Equal lengths keep lexicon order.
	sort.SliceStable(cleaned, func(i, j int) bool {
		return len(cleaned[i]) > len(cleaned[j])
	})

	exprs := make([]string, len(cleaned))
	for i, t := range cleaned {
		exprs[i] = extract.PhraseExpr(t)
	}
	pattern := regexp.MustCompile(`(?i)(?:` + strings.Join(exprs, "|") + `)`)

	if pattern.MatchString(replacement) {
		return nil, fmt.Errorf("replacement %q contains a trigger phrase", replacement)
	}

	return &Neutralizer{pattern: pattern, replacement: replacement}, nil
}

// Neutralize returns text with every trigger phrase replaced. Text outside
// the matched spans is preserved byte for byte, and input without triggers
// comes back unchanged.
func (n *Neutralizer) Neutralize(text string) string {
	if n.pattern == nil {
		return text
	}
	return n.pattern.ReplaceAllLiteralString(text, n.replacement)
}

// Replacement reports the configured substitution string.
func (n *Neutralizer) Replacement() string {
	return n.replacement
}
