package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ormolov/sway/internal/pipeline"
	"github.com/ormolov/sway/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency int
	outputDir   string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze multiple texts from a file in parallel",
	Long: `Batch analyzes multiple texts concurrently:
- Read texts from the input file (one per line, # comments skipped)
- Analyze texts in parallel with a configurable worker count
- Print a per-line result summary with risk level and score
- Optionally write a full JSON record per line

Every analyzed score still feeds the shared history, so drift reflects
the whole batch.

Example:
  sway batch messages.txt
  sway batch messages.txt --concurrency 8 --output-dir ./sway-reports
  sway batch messages.txt --sentiment ollama --sentiment-model llama3.2`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for per-line JSON records (omit to skip)")

	// Analysis flags shared with analyze
	batchCmd.Flags().IntVar(&threshold, "threshold", 5, "alert threshold (0-15); an alert fires when the total score exceeds it")
	batchCmd.Flags().StringVar(&matchMode, "match-mode", "word", "trigger matching: word (boundary-anchored) or substring")
	batchCmd.Flags().BoolVar(&noHistory, "no-history", false, "skip score history (drift reports 0)")

	// Sentiment flags
	batchCmd.Flags().StringVar(&sentimentProvider, "sentiment", "", "sentiment provider (openai, anthropic, ollama); empty uses lexicon polarity")
	batchCmd.Flags().StringVar(&sentimentModel, "sentiment-model", "", "sentiment model name (provider-specific)")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable sentiment result caching")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx := context.Background()

	// Build configuration
	cfg := loadConfig()
	applyAnalysisFlags(cmd, cfg)
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency.Workers = concurrency
	}
	if err := resolveAPIKey(cfg); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Sway Batch Analysis\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Threshold:    %d\n", cfg.Alert.Threshold)
	if outputDir != "" {
		fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	}
	if cfg.Sentiment.Provider != "" {
		fmt.Fprintf(os.Stderr, "  Sentiment:    %s/%s\n", cfg.Sentiment.Provider, cfg.Sentiment.Model)
	}
	fmt.Fprintf(os.Stderr, "\n")

	// Create output directory
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	// Create pipeline
	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	// Process texts
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Loaded %d texts\n", len(results))
	fmt.Fprintf(os.Stderr, "\n")

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)
	successCount := 0
	failureCount := 0
	alertCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Label, result.Error)
			continue
		}

		successCount++
		a := result.Analysis
		if a.Alert {
			alertCount++
		}

		if outputDir != "" {
			jsonPath := filepath.Join(outputDir, fmt.Sprintf("analysis-%03d.json", result.Index+1))
			if err := renderer.RenderJSON(a, jsonPath); err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Label, err)
				continue
			}
		}

		marker := "✓"
		if a.Alert {
			marker = "⚠"
		}
		fmt.Printf("%s %s: %s (%.1f) %s\n", marker, result.Label, a.Score.RiskLevel, a.Score.TotalScore, a.Type.Label())
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d texts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	fmt.Fprintf(os.Stderr, "  Alerts:    %d\n", alertCount)
	if outputDir != "" {
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}
