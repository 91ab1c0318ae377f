package model

// Config holds the complete sway configuration
type Config struct {
	Lexicon     LexiconConfig     `yaml:"lexicon"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Sentiment   SentimentConfig   `yaml:"sentiment"`
	History     HistoryConfig     `yaml:"history"`
	Rewrite     RewriteConfig     `yaml:"rewrite"`
	Alert       AlertConfig       `yaml:"alert"`
	Cache       CacheConfig       `yaml:"cache"`
	Output      OutputConfig      `yaml:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LexiconConfig controls trigger-phrase loading and matching
type LexiconConfig struct {
	// Path to a custom lexicon JSON file; empty uses the embedded default
	Path string `yaml:"path"`

	// MatchMode is "word" (boundary-anchored, default) or "substring"
	// (containment, parity with the original lexicon behavior)
	MatchMode string `yaml:"match_mode"`
}

// ScoringConfig selects the weighting profile.
// Fear and urgency weights are fixed across all known profiles; the
// negativity axis is the one that historically varied, so it is explicit
// configuration rather than a silent merge.
type ScoringConfig struct {
	FearWeight       float64 `yaml:"fear_weight"`
	UrgencyWeight    float64 `yaml:"urgency_weight"`
	NegativityWeight float64 `yaml:"negativity_weight"` // 2.0 (canonical) or 1.5

	// NegativitySource is "flag" (0/1 polarity, canonical) or "count"
	// (raw negativity lexicon count)
	NegativitySource string `yaml:"negativity_source"`
}

// SentimentConfig configures the external polarity capability
type SentimentConfig struct {
	// Provider name: "openai", "anthropic", "ollama", "" (lexicon-only)
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey for OpenAI/Anthropic (normally from environment)
	APIKey string `yaml:"-"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url"`

	// Timeout for provider requests
	Timeout int `yaml:"timeout"` // seconds

	// RequestsPerSecond caps provider calls (shared across batch workers)
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`

	// Proxy settings for the HTTP providers
	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// HistoryConfig configures score persistence for drift tracking
type HistoryConfig struct {
	// Backend is "file" (JSON array), "sqlite", or "memory" (no persistence)
	Backend string `yaml:"backend"`

	// Path to the history file/database; empty resolves under ~/.sway
	Path string `yaml:"path"`

	// Window is the number of recent entries drift is computed over
	Window int `yaml:"window"`
}

// RewriteConfig configures the neutral rewrite suggestion
type RewriteConfig struct {
	// Replacement substituted for each trigger phrase. Must not itself
	// contain a trigger phrase, or neutralization stops being idempotent.
	Replacement string `yaml:"replacement"`
}

// AlertConfig configures the manipulation alert
type AlertConfig struct {
	// Threshold in 0-15; an alert fires when the total score exceeds it
	Threshold int `yaml:"threshold"`
}

// CacheConfig controls sentiment result caching
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`

	// Dir enables a disk tier under the given directory; empty keeps the
	// cache memory-only
	Dir string `yaml:"dir"`

	// TTL for cached polarity results
	TTLMinutes int `yaml:"ttl_minutes"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// DefaultConfig returns the canonical configuration
func DefaultConfig() *Config {
	return &Config{
		Lexicon: LexiconConfig{
			Path:      "",
			MatchMode: "word",
		},
		Scoring: ScoringConfig{
			FearWeight:       2.0,
			UrgencyWeight:    1.5,
			NegativityWeight: 2.0,
			NegativitySource: "flag",
		},
		Sentiment: SentimentConfig{
			Provider:          "", // Lexicon-only by default
			Timeout:           30,
			RequestsPerSecond: 2,
			Burst:             4,
		},
		History: HistoryConfig{
			Backend: "file",
			Window:  5,
		},
		Rewrite: RewriteConfig{
			Replacement: "take your time",
		},
		Alert: AlertConfig{
			Threshold: 5,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLMinutes: 24 * 60,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
	}
}
