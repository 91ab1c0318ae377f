package sentiment

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/ormolov/sway/internal/cache"
	"github.com/ormolov/sway/internal/model"
)

// Analyzer resolves text polarity through an optional provider with
// caching and rate limiting in front of it. With no provider, or when
// the provider degrades, the negativity lexicon count decides the
// polarity instead; an analysis never fails on sentiment problems.
type Analyzer struct {
	provider  Provider
	modelName string
	cache     cache.Cache   // nil disables caching
	limiter   *rate.Limiter // nil disables rate limiting
	cacheTTL  time.Duration
}

// NewAnalyzer builds an analyzer around the given provider. A nil
// provider means lexicon-only polarity. A nil cache or limiter disables
// that layer.
func NewAnalyzer(provider Provider, modelName string, c cache.Cache, limiter *rate.Limiter, cacheTTL time.Duration) *Analyzer {
	return &Analyzer{
		provider:  provider,
		modelName: modelName,
		cache:     c,
		limiter:   limiter,
		cacheTTL:  cacheTTL,
	}
}

// NewLimiter builds the provider-call rate limiter from configuration.
// Non-positive values fall back to the defaults.
func NewLimiter(requestsPerSecond float64, burst int) *rate.Limiter {
	if requestsPerSecond <= 0 {
		requestsPerSecond = DefaultConfig().RequestsPerSecond
	}
	if burst <= 0 {
		burst = DefaultConfig().Burst
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// ProviderName reports the active provider, or "lexicon" when polarity
// comes from the negativity word list alone.
func (a *Analyzer) ProviderName() string {
	if a.provider == nil {
		return model.SentimentSourceLexicon
	}
	return a.provider.Name()
}

// Resolve returns the polarity for text. negativityCount is the number of
// negativity lexicon hits, used both as the fallback signal and, in count
// scoring profiles, as the component value. The returned warning is empty
// unless a configured provider had to be bypassed.
func (a *Analyzer) Resolve(ctx context.Context, text string, negativityCount int) (model.Sentiment, string) {
	if a.provider == nil {
		return lexiconSentiment(negativityCount), ""
	}

	key := cache.CacheKey(a.provider.Name(), a.modelName, text)
	if a.cache != nil {
		if e, found := a.cache.Get(key); found {
			if label, err := ParseLabel(e.Label); err == nil {
				return model.Sentiment{
					Label:  label,
					Score:  1.0,
					Source: a.provider.Name(),
				}, ""
			}
			// Unreadable entry: drop it and classify again
			_ = a.cache.Delete(key)
		}
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return lexiconSentiment(negativityCount),
				fmt.Sprintf("sentiment provider %s skipped (%v), using lexicon polarity", a.provider.Name(), err)
		}
	}

	result, err := a.provider.Classify(ctx, text)
	if err != nil {
		return lexiconSentiment(negativityCount),
			fmt.Sprintf("sentiment provider %s unavailable (%v), using lexicon polarity", a.provider.Name(), err)
	}

	if a.cache != nil {
		// Best-effort; a failed write only costs a future API call
		_ = a.cache.Set(key, cache.Entry{
			Label:        string(result.Label),
			Model:        result.Model,
			ClassifiedAt: time.Now().UTC(),
		}, a.cacheTTL)
	}

	return model.Sentiment{
		Label:  result.Label,
		Score:  result.Score,
		Source: a.provider.Name(),
	}, ""
}

// lexiconSentiment derives polarity from the negativity lexicon count:
// any hit marks the text NEGATIVE.
func lexiconSentiment(negativityCount int) model.Sentiment {
	label := model.SentimentPositive
	if negativityCount > 0 {
		label = model.SentimentNegative
	}
	return model.Sentiment{
		Label:  label,
		Score:  0,
		Source: model.SentimentSourceLexicon,
	}
}
