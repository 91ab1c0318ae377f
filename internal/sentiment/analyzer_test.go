package sentiment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ormolov/sway/internal/cache"
	"github.com/ormolov/sway/internal/model"
)

// stubProvider counts calls and returns a fixed result or error.
type stubProvider struct {
	result *Result
	err    error
	calls  int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Classify(ctx context.Context, text string) (*Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubProvider) IsAvailable(ctx context.Context) bool { return s.err == nil }

func TestAnalyzer_Resolve_LexiconOnly(t *testing.T) {
	analyzer := NewAnalyzer(nil, "", nil, nil, 0)

	got, warn := analyzer.Resolve(context.Background(), "this is terrible", 1)
	if warn != "" {
		t.Errorf("Expected no warning for lexicon-only mode, got %q", warn)
	}
	if got.Label != model.SentimentNegative {
		t.Errorf("Expected NEGATIVE for negativity hits, got %s", got.Label)
	}
	if got.Source != model.SentimentSourceLexicon {
		t.Errorf("Expected lexicon source, got %s", got.Source)
	}

	got, _ = analyzer.Resolve(context.Background(), "a fine day", 0)
	if got.Label != model.SentimentPositive {
		t.Errorf("Expected POSITIVE without negativity hits, got %s", got.Label)
	}
}

func TestAnalyzer_Resolve_ProviderResult(t *testing.T) {
	stub := &stubProvider{result: &Result{Label: model.SentimentNegative, Score: 1.0, Model: "stub-1"}}
	analyzer := NewAnalyzer(stub, "stub-1", nil, nil, 0)

	got, warn := analyzer.Resolve(context.Background(), "you will regret it", 0)
	if warn != "" {
		t.Errorf("Expected no warning, got %q", warn)
	}
	if got.Label != model.SentimentNegative {
		t.Errorf("Expected NEGATIVE from provider, got %s", got.Label)
	}
	if got.Source != "stub" {
		t.Errorf("Expected provider source, got %s", got.Source)
	}
}

func TestAnalyzer_Resolve_ProviderFailureDegrades(t *testing.T) {
	stub := &stubProvider{err: errors.New("connection refused")}
	analyzer := NewAnalyzer(stub, "stub-1", nil, nil, 0)

	got, warn := analyzer.Resolve(context.Background(), "this is terrible", 2)
	if warn == "" {
		t.Error("Expected warning when provider fails")
	}
	// Lexicon polarity takes over: negativity hits mean NEGATIVE
	if got.Label != model.SentimentNegative {
		t.Errorf("Expected NEGATIVE fallback, got %s", got.Label)
	}
	if got.Source != model.SentimentSourceLexicon {
		t.Errorf("Expected lexicon source after degradation, got %s", got.Source)
	}
}

func TestAnalyzer_Resolve_CacheHitSkipsProvider(t *testing.T) {
	stub := &stubProvider{result: &Result{Label: model.SentimentNegative, Score: 1.0, Model: "stub-1"}}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	analyzer := NewAnalyzer(stub, "stub-1", c, nil, time.Minute)

	text := "you will regret it"
	if _, warn := analyzer.Resolve(context.Background(), text, 0); warn != "" {
		t.Fatalf("Expected no warning, got %q", warn)
	}
	if stub.calls != 1 {
		t.Fatalf("Expected 1 provider call, got %d", stub.calls)
	}

	got, warn := analyzer.Resolve(context.Background(), text, 0)
	if warn != "" {
		t.Errorf("Expected no warning on cache hit, got %q", warn)
	}
	if stub.calls != 1 {
		t.Errorf("Expected cached answer without a second call, got %d calls", stub.calls)
	}
	if got.Label != model.SentimentNegative {
		t.Errorf("Expected cached NEGATIVE, got %s", got.Label)
	}
	if got.Source != "stub" {
		t.Errorf("Expected provider source for cached answer, got %s", got.Source)
	}
}

func TestAnalyzer_Resolve_CanceledContextDegrades(t *testing.T) {
	stub := &stubProvider{result: &Result{Label: model.SentimentNegative, Score: 1.0}}
	analyzer := NewAnalyzer(stub, "", nil, NewLimiter(1, 1), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, warn := analyzer.Resolve(ctx, "this is terrible", 1)
	if warn == "" {
		t.Error("Expected warning when context is canceled before the call")
	}
	if got.Source != model.SentimentSourceLexicon {
		t.Errorf("Expected lexicon fallback, got source %s", got.Source)
	}
	if stub.calls != 0 {
		t.Errorf("Expected no provider call after cancellation, got %d", stub.calls)
	}
}

func TestAnalyzer_ProviderName(t *testing.T) {
	if got := NewAnalyzer(nil, "", nil, nil, 0).ProviderName(); got != model.SentimentSourceLexicon {
		t.Errorf("Expected lexicon name without provider, got %s", got)
	}

	stub := &stubProvider{}
	if got := NewAnalyzer(stub, "", nil, nil, 0).ProviderName(); got != "stub" {
		t.Errorf("Expected stub name, got %s", got)
	}
}

func TestNewLimiter_Defaults(t *testing.T) {
	limiter := NewLimiter(0, 0)
	if limiter == nil {
		t.Fatal("Expected limiter, got nil")
	}
	if limiter.Limit() != 2 {
		t.Errorf("Expected default rate 2, got %v", limiter.Limit())
	}
	if limiter.Burst() != 4 {
		t.Errorf("Expected default burst 4, got %d", limiter.Burst())
	}
}
