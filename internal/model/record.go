package model

import "time"

// Analysis represents the complete result of analyzing one text
type Analysis struct {
	AnalyzedAt time.Time `json:"analyzed_at"` // When the analysis ran

	Features  map[Category]FeatureResult `json:"features"`  // Per-category lexicon hits
	Sentiment Sentiment                  `json:"sentiment"` // Polarity signal and where it came from

	Score ScoreRecord `json:"score"` // Weighted totals, risk level, confidence

	Type        ManipulationType `json:"type"`        // Manipulation classification
	Explanation []string         `json:"explanation"` // One reason per fired category

	Rewrite string  `json:"rewrite"` // Suggested neutral rewrite of the input
	Drift   float64 `json:"drift"`   // Score range over the recent history window

	Threshold int  `json:"threshold"` // Alert threshold in effect (0-15)
	Alert     bool `json:"alert"`     // Whether total score exceeded the threshold

	Warnings []string `json:"warnings,omitempty"` // Non-fatal degradations (sentiment fallback, persistence)
}

// Category identifies a lexicon trigger category
type Category string

const (
	CategoryFear       Category = "fear"
	CategoryUrgency    Category = "urgency"
	CategoryNegativity Category = "negativity"
)

// Categories lists all lexicon categories in canonical report order
func Categories() []Category {
	return []Category{CategoryFear, CategoryUrgency, CategoryNegativity}
}

// FeatureResult holds the lexicon hits for one category.
// Each lexicon phrase is counted at most once per analysis, so
// Count == len(Matches) always holds.
type FeatureResult struct {
	Count   int      `json:"count"`             // Number of distinct trigger phrases detected
	Matches []string `json:"matches,omitempty"` // The detected phrases, in lexicon order
}

// Sentiment carries the polarity signal used for the negativity component
type Sentiment struct {
	Label  SentimentLabel `json:"label"`  // POSITIVE or NEGATIVE
	Score  float64        `json:"score"`  // Provider confidence, 0 when lexicon-derived
	Source string         `json:"source"` // openai, anthropic, ollama, or "lexicon" (fallback)
}

// SentimentLabel is the binary polarity returned by the sentiment capability
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "POSITIVE"
	SentimentNegative SentimentLabel = "NEGATIVE"
)

// SentimentSourceLexicon marks a polarity derived from the negativity
// lexicon instead of an external provider (the degraded path).
const SentimentSourceLexicon = "lexicon"

// ScoreRecord is the weighted scoring breakdown for one analysis
type ScoreRecord struct {
	FearCount       int       `json:"fear_count"`       // Distinct fear triggers
	UrgencyCount    int       `json:"urgency_count"`    // Distinct urgency triggers
	NegativityValue int       `json:"negativity_value"` // Polarity flag (0/1) or lexicon count, per profile
	TotalScore      float64   `json:"total_score"`      // Weighted sum of all components
	DNAScore        float64   `json:"dna_score"`        // Influence DNA score (same formula as total)
	RiskLevel       RiskLevel `json:"risk_level"`
	Confidence      int       `json:"confidence"` // 0-100, derived from the DNA score
}

// RiskLevel is the categorical risk derived from the DNA score
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// ManipulationType classifies which pressure categories fired
type ManipulationType string

const (
	TypeFearAndUrgency ManipulationType = "FEAR_AND_URGENCY"
	TypeFearOnly       ManipulationType = "FEAR_ONLY"
	TypeUrgencyOnly    ManipulationType = "URGENCY_ONLY"
	TypeLow            ManipulationType = "LOW"
)

// Label returns the human-readable classification label
func (t ManipulationType) Label() string {
	switch t {
	case TypeFearAndUrgency:
		return "Fear + Urgency Manipulation"
	case TypeFearOnly:
		return "Fear-Based Manipulation"
	case TypeUrgencyOnly:
		return "Urgency Pressure Manipulation"
	default:
		return "Low Manipulation"
	}
}
