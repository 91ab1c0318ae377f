package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ormolov/sway/internal/cache"
	"github.com/ormolov/sway/internal/classify"
	"github.com/ormolov/sway/internal/extract"
	"github.com/ormolov/sway/internal/history"
	"github.com/ormolov/sway/internal/lexicon"
	"github.com/ormolov/sway/internal/model"
	"github.com/ormolov/sway/internal/rewrite"
	"github.com/ormolov/sway/internal/score"
	"github.com/ormolov/sway/internal/sentiment"
)

// Pipeline orchestrates the complete analysis
type Pipeline struct {
	extractor   *extract.Extractor
	engine      *score.Engine
	analyzer    *sentiment.Analyzer
	neutralizer *rewrite.Neutralizer
	tracker     *history.Tracker // nil when history is disabled
	store       history.Store    // nil when history is disabled
	renderer    *Renderer
	config      *model.Config
}

// NewPipeline creates a new pipeline with the given configuration.
// A broken lexicon, rewrite replacement, or alert threshold is fatal;
// sentiment and history failures degrade to warnings so a missing API
// key or an unwritable home directory never blocks an analysis.
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	if cfg.Alert.Threshold < 0 || cfg.Alert.Threshold > 15 {
		return nil, fmt.Errorf("alert threshold must be between 0 and 15, got %d", cfg.Alert.Threshold)
	}

	lex := lexicon.Default()
	if cfg.Lexicon.Path != "" {
		loaded, err := lexicon.Load(cfg.Lexicon.Path)
		if err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
		lex = loaded
	}

	neutralizer, err := rewrite.NewNeutralizer(lex.Triggers(), cfg.Rewrite.Replacement)
	if err != nil {
		return nil, fmt.Errorf("build neutralizer: %w", err)
	}

	// Create sentiment provider if configured
	var provider sentiment.Provider
	if cfg.Sentiment.Provider != "" {
		p, err := sentiment.NewProvider(sentiment.ConfigFromModel(cfg.Sentiment))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize sentiment provider: %v\n", err)
		} else {
			provider = p
		}
	}

	ttl := time.Duration(cfg.Cache.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	var polarityCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			polarityCache = cache.NewLayeredCache(ttl, cfg.Cache.Dir, ttl)
		} else {
			polarityCache = cache.NewMemoryCache(ttl, 10*time.Minute)
		}
	}
	limiter := sentiment.NewLimiter(cfg.Sentiment.RequestsPerSecond, cfg.Sentiment.Burst)
	analyzer := sentiment.NewAnalyzer(provider, cfg.Sentiment.Model, polarityCache, limiter, ttl)

	// Open score history unless disabled
	var store history.Store
	var tracker *history.Tracker
	if cfg.History.Backend != "none" {
		s, err := history.NewStore(cfg.History.Backend, cfg.History.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: score history disabled: %v\n", err)
		} else {
			store = s
			tracker = history.NewTracker(store, cfg.History.Window)
		}
	}

	return &Pipeline{
		extractor:   extract.NewExtractor(lex, lexicon.ParseMatchMode(cfg.Lexicon.MatchMode)),
		engine:      score.NewEngine(score.ProfileFromConfig(cfg.Scoring)),
		analyzer:    analyzer,
		neutralizer: neutralizer,
		tracker:     tracker,
		store:       store,
		renderer:    NewRenderer(cfg.Output.IncludeFooter),
		config:      cfg,
	}, nil
}

// Close releases the history store
func (p *Pipeline) Close() error {
	if p.store == nil {
		return nil
	}
	return p.store.Close()
}

// SentimentSource reports where polarity comes from: a provider name or
// "lexicon" when no provider is configured.
func (p *Pipeline) SentimentSource() string {
	return p.analyzer.ProviderName()
}

// AnalyzeText runs one text through the full analysis: lexicon feature
// extraction, polarity resolution, weighted scoring, classification,
// neutral rewrite, and drift against the persisted score history.
func (p *Pipeline) AnalyzeText(ctx context.Context, text string) (*model.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text to analyze")
	}

	var warnings []string

	// 1. Lexicon features
	features := p.extractor.Extract(text)
	fearCount := features[model.CategoryFear].Count
	urgencyCount := features[model.CategoryUrgency].Count
	negativityCount := features[model.CategoryNegativity].Count

	// 2. Polarity (provider or lexicon fallback)
	sent, warn := p.analyzer.Resolve(ctx, text, negativityCount)
	if warn != "" {
		warnings = append(warnings, warn)
	}

	// 3. Weighted score
	negativityValue := p.engine.NegativityValue(sent.Label, negativityCount)
	scoreRec := p.engine.Score(fearCount, urgencyCount, negativityValue)

	// 4. Classification and explanation
	manipulationType := classify.Classify(fearCount, urgencyCount)
	explanation := classify.Explain(fearCount, urgencyCount, negativityValue)

	// 5. Neutral rewrite
	rewritten := p.neutralizer.Neutralize(text)

	// 6. Drift over persisted history (0 when history is disabled)
	var drift float64
	if p.tracker != nil {
		var w string
		drift, w = p.tracker.Record(scoreRec.TotalScore)
		if w != "" {
			warnings = append(warnings, w)
		}
	}

	threshold := p.config.Alert.Threshold
	return &model.Analysis{
		AnalyzedAt:  time.Now().UTC(),
		Features:    features,
		Sentiment:   sent,
		Score:       scoreRec,
		Type:        manipulationType,
		Explanation: explanation,
		Rewrite:     rewritten,
		Drift:       drift,
		Threshold:   threshold,
		Alert:       scoreRec.TotalScore > float64(threshold),
		Warnings:    warnings,
	}, nil
}

// Neutralize rewrites the text without scoring it or touching history
func (p *Pipeline) Neutralize(text string) string {
	return p.neutralizer.Neutralize(text)
}

// RenderAnalysis renders the analysis to the specified outputs
func (p *Pipeline) RenderAnalysis(a *model.Analysis, jsonPath string, reportPath string, quiet bool) error {
	verbose := p.config.Output.Verbose

	if jsonPath != "" {
		if err := p.renderer.RenderJSON(a, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if reportPath != "" {
		if err := p.renderer.RenderReportFile(a, reportPath); err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote report: %s\n", reportPath)
		}
	}

	if !quiet {
		p.renderer.RenderText(os.Stdout, a, verbose)
	}

	return nil
}
