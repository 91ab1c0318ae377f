package cli

import (
	"fmt"

	"github.com/ormolov/sway/internal/history"
	"github.com/spf13/cobra"
)

var (
	historyWindow int
	clearHistory  bool
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded manipulation scores and drift",
	Long: `History prints every recorded total score in analysis order and the
drift metric: the spread (max - min) over the most recent window of
scores. A rising drift means the manipulation level of analyzed texts
is swinging, not settling.

Example:
  sway history
  sway history --window 10
  sway history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyWindow, "window", history.DefaultWindow, "number of recent scores drift is computed over")
	historyCmd.Flags().BoolVar(&clearHistory, "clear", false, "delete all recorded scores")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	store, err := history.NewStore(cfg.History.Backend, cfg.History.Path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	if clearHistory {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Println("✓ Score history cleared")
		return nil
	}

	scores, err := store.Scores()
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet. Run 'sway analyze' to start tracking.")
		return nil
	}

	window := cfg.History.Window
	if cmd.Flags().Changed("window") {
		window = historyWindow
	}

	fmt.Printf("Recorded scores: %d\n", len(scores))
	for i, s := range scores {
		fmt.Printf("  %3d. %.1f\n", i+1, s)
	}
	fmt.Printf("\nScore Drift (window %d): %.1f\n", window, history.Drift(scores, window))

	return nil
}
