// Package sentiment resolves the emotional polarity of text. An external
// provider classifies when one is configured; otherwise, or whenever the
// provider fails, the negativity lexicon supplies the polarity so an
// analysis always completes.
package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/ormolov/sway/internal/model"
)

// Provider defines the interface for sentiment providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Classify returns the binary polarity of text
	Classify(ctx context.Context, text string) (*Result, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Result is one provider classification
type Result struct {
	// Label is the resolved polarity
	Label model.SentimentLabel

	// Score is the provider's confidence in the label (0-1)
	Score float64

	// Model is the model that produced the classification
	Model string
}

// Config holds sentiment provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// Rate limiting for provider calls
	RequestsPerSecond float64
	Burst             int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default; lexicon polarity only
		Model:             "",
		Timeout:           30,
		RequestsPerSecond: 2,
		Burst:             4,
	}
}

const systemPrompt = "You classify the emotional polarity of text. Respond with exactly one word: POSITIVE or NEGATIVE."

// BuildPrompt constructs the classification prompt for a provider
func BuildPrompt(text string) string {
	return fmt.Sprintf("Classify the overall emotional polarity of the following text as POSITIVE or NEGATIVE. Respond with exactly one word.\n\nText:\n%s", text)
}

// ParseLabel extracts the polarity from a provider response. The response
// must mention exactly one of the two labels; anything else is unparsable
// and the caller falls back to the lexicon.
func ParseLabel(response string) (model.SentimentLabel, error) {
	upper := strings.ToUpper(response)
	hasPositive := strings.Contains(upper, string(model.SentimentPositive))
	hasNegative := strings.Contains(upper, string(model.SentimentNegative))

	switch {
	case hasPositive && hasNegative:
		return "", fmt.Errorf("ambiguous polarity response: %q", response)
	case hasPositive:
		return model.SentimentPositive, nil
	case hasNegative:
		return model.SentimentNegative, nil
	default:
		return "", fmt.Errorf("unparsable polarity response: %q", response)
	}
}
