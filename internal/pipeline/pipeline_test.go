package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/ormolov/sway/internal/classify"
	"github.com/ormolov/sway/internal/model"
)

// testConfig returns a config that stays inside the test process: no
// sentiment provider, no cache, in-memory history.
func testConfig() *model.Config {
	cfg := model.DefaultConfig()
	cfg.Sentiment.Provider = ""
	cfg.Cache.Enabled = false
	cfg.History.Backend = "memory"
	cfg.Output.IncludeFooter = false
	return cfg
}

func TestNewPipeline_ThresholdOutOfRange(t *testing.T) {
	for _, threshold := range []int{-1, 16, 100} {
		cfg := testConfig()
		cfg.Alert.Threshold = threshold

		_, err := NewPipeline(cfg)
		if err == nil {
			t.Errorf("Expected error for threshold %d, got nil", threshold)
		}
	}
}

func TestNewPipeline_ReplacementContainsTrigger(t *testing.T) {
	cfg := testConfig()
	cfg.Rewrite.Replacement = "do it now"

	_, err := NewPipeline(cfg)
	if err == nil {
		t.Error("Expected error for replacement containing a trigger phrase, got nil")
	}
}

func TestPipeline_AnalyzeText_PressureSentence(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	defer p.Close()

	a, err := p.AnalyzeText(context.Background(), "Act now or you will regret it, this is your last chance!")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if a.Score.FearCount != 1 {
		t.Errorf("Expected fear count 1, got %d", a.Score.FearCount)
	}
	if a.Score.UrgencyCount != 2 {
		t.Errorf("Expected urgency count 2, got %d", a.Score.UrgencyCount)
	}
	if a.Score.NegativityValue != 0 {
		t.Errorf("Expected negativity value 0, got %d", a.Score.NegativityValue)
	}
	if a.Score.TotalScore != 5.0 {
		t.Errorf("Expected total score 5.0, got %.2f", a.Score.TotalScore)
	}
	if a.Score.DNAScore != a.Score.TotalScore {
		t.Errorf("Expected DNA score to equal total score, got %.2f vs %.2f", a.Score.DNAScore, a.Score.TotalScore)
	}
	if a.Score.RiskLevel != model.RiskHigh {
		t.Errorf("Expected risk level HIGH, got %s", a.Score.RiskLevel)
	}
	if a.Score.Confidence != 50 {
		t.Errorf("Expected confidence 50, got %d", a.Score.Confidence)
	}
	if a.Type != model.TypeFearAndUrgency {
		t.Errorf("Expected type FEAR_AND_URGENCY, got %s", a.Type)
	}
	if len(a.Explanation) != 2 {
		t.Errorf("Expected 2 explanation reasons, got %d: %v", len(a.Explanation), a.Explanation)
	}

	// 5.0 does not exceed the default threshold 5 (strict comparison)
	if a.Alert {
		t.Error("Expected no alert at total score 5.0 with threshold 5")
	}
	if a.Threshold != 5 {
		t.Errorf("Expected threshold 5, got %d", a.Threshold)
	}

	if a.Sentiment.Source != model.SentimentSourceLexicon {
		t.Errorf("Expected lexicon sentiment source, got %s", a.Sentiment.Source)
	}
	if !strings.Contains(a.Rewrite, "take your time") {
		t.Errorf("Expected rewrite to contain the replacement, got %q", a.Rewrite)
	}
	if a.Drift != 0 {
		t.Errorf("Expected zero drift on first analysis, got %.2f", a.Drift)
	}
	if len(a.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", a.Warnings)
	}
	if a.AnalyzedAt.IsZero() {
		t.Error("Expected AnalyzedAt to be set")
	}
}

func TestPipeline_AnalyzeText_NeutralText(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	defer p.Close()

	a, err := p.AnalyzeText(context.Background(), "Hello there, friend.")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	if a.Score.TotalScore != 0 {
		t.Errorf("Expected total score 0, got %.2f", a.Score.TotalScore)
	}
	if a.Score.RiskLevel != model.RiskLow {
		t.Errorf("Expected risk level LOW, got %s", a.Score.RiskLevel)
	}
	if a.Type != model.TypeLow {
		t.Errorf("Expected type LOW, got %s", a.Type)
	}
	if len(a.Explanation) != 1 || a.Explanation[0] != classify.NoPatternsMessage {
		t.Errorf("Expected the no-patterns message, got %v", a.Explanation)
	}
	if a.Rewrite != "Hello there, friend." {
		t.Errorf("Expected rewrite to be unchanged, got %q", a.Rewrite)
	}
	if a.Sentiment.Label != model.SentimentPositive {
		t.Errorf("Expected POSITIVE lexicon polarity, got %s", a.Sentiment.Label)
	}
}

func TestPipeline_AnalyzeText_EmptyInput(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	defer p.Close()

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := p.AnalyzeText(context.Background(), text); err == nil {
			t.Errorf("Expected error for input %q, got nil", text)
		}
	}
}

func TestPipeline_AnalyzeText_DriftAcrossRuns(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	defer p.Close()

	first, err := p.AnalyzeText(context.Background(), "Act now or you will regret it, this is your last chance!")
	if err != nil {
		t.Fatalf("First AnalyzeText failed: %v", err)
	}
	if first.Drift != 0 {
		t.Errorf("Expected zero drift on first analysis, got %.2f", first.Drift)
	}

	second, err := p.AnalyzeText(context.Background(), "Hello there, friend.")
	if err != nil {
		t.Fatalf("Second AnalyzeText failed: %v", err)
	}

	// History now holds [5.0, 0.0]
	if second.Drift != 5.0 {
		t.Errorf("Expected drift 5.0, got %.2f", second.Drift)
	}
}

func TestPipeline_AnalyzeText_AlertAboveThreshold(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	defer p.Close()

	text := "This terrible disaster means danger: act immediately, hurry, do it today or you will lose everything!"
	a, err := p.AnalyzeText(context.Background(), text)
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}

	// fear 2 (danger, lose) * 2.0 + urgency 3 (immediately, hurry, today) * 1.5
	// + negative polarity flag * 2.0 = 10.5
	if a.Score.TotalScore != 10.5 {
		t.Errorf("Expected total score 10.5, got %.2f", a.Score.TotalScore)
	}
	if a.Score.RiskLevel != model.RiskCritical {
		t.Errorf("Expected risk level CRITICAL, got %s", a.Score.RiskLevel)
	}
	if a.Score.Confidence != 100 {
		t.Errorf("Expected confidence capped at 100, got %d", a.Score.Confidence)
	}
	if a.Sentiment.Label != model.SentimentNegative {
		t.Errorf("Expected NEGATIVE lexicon polarity, got %s", a.Sentiment.Label)
	}
	if !a.Alert {
		t.Error("Expected alert at total score 10.5 with threshold 5")
	}
}

func TestPipeline_AnalyzeText_HistoryDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.History.Backend = "none"

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	defer p.Close()

	for i := 0; i < 3; i++ {
		a, err := p.AnalyzeText(context.Background(), "Act now or you will regret it, this is your last chance!")
		if err != nil {
			t.Fatalf("AnalyzeText failed: %v", err)
		}
		if a.Drift != 0 {
			t.Errorf("Expected zero drift with history disabled, got %.2f", a.Drift)
		}
		if len(a.Warnings) != 0 {
			t.Errorf("Expected no warnings with history disabled, got %v", a.Warnings)
		}
	}
}

func TestPipeline_AnalyzeText_CustomThreshold(t *testing.T) {
	cfg := testConfig()
	cfg.Alert.Threshold = 4

	p, err := NewPipeline(cfg)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	defer p.Close()

	a, err := p.AnalyzeText(context.Background(), "Act now or you will regret it, this is your last chance!")
	if err != nil {
		t.Fatalf("AnalyzeText failed: %v", err)
	}
	if !a.Alert {
		t.Error("Expected alert at total score 5.0 with threshold 4")
	}
}

func TestPipeline_Neutralize(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	defer p.Close()

	got := p.Neutralize("Hurry, last chance!")
	want := "take your time, take your time!"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestPipeline_SentimentSource_LexiconOnly(t *testing.T) {
	p, err := NewPipeline(testConfig())
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	defer p.Close()

	if got := p.SentimentSource(); got != "lexicon" {
		t.Errorf("Expected sentiment source lexicon, got %s", got)
	}
}
