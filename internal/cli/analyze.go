package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ormolov/sway/internal/ingest"
	"github.com/ormolov/sway/internal/model"
	"github.com/ormolov/sway/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	inputFile         string
	outJSON           string
	outReport         string
	threshold         int
	matchMode         string
	sentimentProvider string
	sentimentModel    string
	noHistory         bool
	noCache           bool
	quiet             bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Analyze text for psychological manipulation patterns",
	Long: `Analyze scores a text against the manipulation trigger lexicon:
- Detect fear, urgency, and negative-emotion trigger phrases
- Compute the weighted Influence DNA score and risk level
- Classify the manipulation pattern and explain each signal
- Suggest a neutral rewrite with the pressure phrases removed
- Track score drift across recent analyses

The text comes from the argument, from --file, or from stdin.

Example:
  sway analyze "Act now or you will regret it"
  sway analyze --file email.txt --json analysis.json
  sway analyze --file page.html --sentiment openai --threshold 8
  cat letter.txt | sway analyze --quiet --report report.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input/output flags
	analyzeCmd.Flags().StringVarP(&inputFile, "file", "f", "", "read the text from a file (.txt, .md, .html, .pdf, .docx)")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "write the full analysis record to a JSON file")
	analyzeCmd.Flags().StringVar(&outReport, "report", "", "write the text report to a file")
	analyzeCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the stdout report (file outputs still written)")

	// Analysis flags
	analyzeCmd.Flags().IntVar(&threshold, "threshold", 5, "alert threshold (0-15); an alert fires when the total score exceeds it")
	analyzeCmd.Flags().StringVar(&matchMode, "match-mode", "word", "trigger matching: word (boundary-anchored) or substring")
	analyzeCmd.Flags().BoolVar(&noHistory, "no-history", false, "skip score history (drift reports 0)")

	// Sentiment flags
	analyzeCmd.Flags().StringVar(&sentimentProvider, "sentiment", "", "sentiment provider (openai, anthropic, ollama); empty uses lexicon polarity")
	analyzeCmd.Flags().StringVar(&sentimentModel, "sentiment-model", "", "sentiment model name (provider-specific)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable sentiment result caching")
}

// applyAnalysisFlags layers explicitly set flags over the loaded config
func applyAnalysisFlags(cmd *cobra.Command, cfg *model.Config) {
	if cmd.Flags().Changed("threshold") {
		cfg.Alert.Threshold = threshold
	}
	if cmd.Flags().Changed("match-mode") {
		cfg.Lexicon.MatchMode = matchMode
	}
	if cmd.Flags().Changed("sentiment") {
		cfg.Sentiment.Provider = sentimentProvider
	}
	if cmd.Flags().Changed("sentiment-model") {
		cfg.Sentiment.Model = sentimentModel
	}
	if noHistory {
		cfg.History.Backend = "none"
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.Verbose = verbose
}

// readInput resolves the text to analyze: --file wins, then the
// positional argument, then piped stdin.
func readInput(args []string) (string, error) {
	if inputFile != "" {
		src, err := ingest.ReadFile(inputFile)
		if err != nil {
			return "", err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Read %s (%s, %d characters)\n", src.Path, src.Format, len(src.Text))
		}
		return src.Text, nil
	}

	if len(args) > 0 {
		return args[0], nil
	}

	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return "", fmt.Errorf("no text to analyze: pass text as an argument, use --file, or pipe stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	// Build configuration from config file, environment, and flags
	cfg := loadConfig()
	applyAnalysisFlags(cmd, cfg)
	if err := resolveAPIKey(cfg); err != nil {
		return err
	}

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}
	defer p.Close()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %d characters (sentiment: %s)\n", len(text), p.SentimentSource())
		fmt.Fprintln(os.Stderr)
	}

	analysis, err := p.AnalyzeText(context.Background(), text)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if err := p.RenderAnalysis(analysis, outJSON, outReport, quiet); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	return nil
}
