package score

import (
	"math"
	"strings"

	"github.com/ormolov/sway/internal/model"
)

// Risk-level thresholds on the DNA score (inclusive lower bounds,
// evaluated top-down, first match wins)
const (
	thresholdCritical = 8.0
	thresholdHigh     = 5.0
	thresholdMedium   = 3.0
)

// NegativitySource selects what the negativity component measures
type NegativitySource string

const (
	// SourceFlag scores negativity as a 0/1 polarity flag (canonical)
	SourceFlag NegativitySource = "flag"

	// SourceCount scores negativity as the raw lexicon hit count
	SourceCount NegativitySource = "count"
)

// Profile is one weighting scheme. Fear and urgency weights are stable
// across every observed variant; the negativity weight and source are the
// axes that differ, so they are explicit here instead of silently merged.
type Profile struct {
	FearWeight       float64
	UrgencyWeight    float64
	NegativityWeight float64
	NegativitySource NegativitySource
}

// DefaultProfile returns the canonical weighting: fear 2.0, urgency 1.5,
// negativity 2.0 applied to the binary polarity flag.
func DefaultProfile() Profile {
	return Profile{
		FearWeight:       2.0,
		UrgencyWeight:    1.5,
		NegativityWeight: 2.0,
		NegativitySource: SourceFlag,
	}
}

// ProfileFromConfig builds a profile from configuration, falling back to
// canonical values for anything unset.
func ProfileFromConfig(cfg model.ScoringConfig) Profile {
	p := DefaultProfile()
	if cfg.FearWeight > 0 {
		p.FearWeight = cfg.FearWeight
	}
	if cfg.UrgencyWeight > 0 {
		p.UrgencyWeight = cfg.UrgencyWeight
	}
	if cfg.NegativityWeight > 0 {
		p.NegativityWeight = cfg.NegativityWeight
	}
	if strings.EqualFold(cfg.NegativitySource, string(SourceCount)) {
		p.NegativitySource = SourceCount
	}
	return p
}

// Engine combines feature counts into the weighted scores
type Engine struct {
	profile Profile
}

// NewEngine creates a scoring engine with the given profile
func NewEngine(profile Profile) *Engine {
	return &Engine{profile: profile}
}

// Profile returns the active weighting profile
func (e *Engine) Profile() Profile {
	return e.profile
}

// NegativityValue resolves the negativity component for the active
// profile: the 0/1 polarity flag, or the raw negativity lexicon count.
func (e *Engine) NegativityValue(label model.SentimentLabel, lexiconCount int) int {
	if e.profile.NegativitySource == SourceCount {
		return lexiconCount
	}
	if label == model.SentimentNegative {
		return 1
	}
	return 0
}

// Score computes the weighted totals, risk level and confidence for the
// given counts. Inputs are assumed non-negative; the extractor can never
// produce negative counts. The DNA score uses the identical formula as
// the total, so the two always coincide.
func (e *Engine) Score(fearCount, urgencyCount, negativityValue int) model.ScoreRecord {
	total := float64(fearCount)*e.profile.FearWeight +
		float64(urgencyCount)*e.profile.UrgencyWeight +
		float64(negativityValue)*e.profile.NegativityWeight

	dna := total

	return model.ScoreRecord{
		FearCount:       fearCount,
		UrgencyCount:    urgencyCount,
		NegativityValue: negativityValue,
		TotalScore:      total,
		DNAScore:        dna,
		RiskLevel:       LevelFor(dna),
		Confidence:      ConfidenceFor(dna),
	}
}

// LevelFor maps a DNA score to its risk level
func LevelFor(dna float64) model.RiskLevel {
	switch {
	case dna >= thresholdCritical:
		return model.RiskCritical
	case dna >= thresholdHigh:
		return model.RiskHigh
	case dna >= thresholdMedium:
		return model.RiskMedium
	default:
		return model.RiskLow
	}
}

// ConfidenceFor converts a DNA score to a 0-100 confidence value:
// min(round(dna/10*100), 100).
func ConfidenceFor(dna float64) int {
	confidence := int(math.Round(dna / 10 * 100))
	if confidence > 100 {
		return 100
	}
	return confidence
}
