package cli

import (
	"fmt"

	"github.com/ormolov/sway/internal/lexicon"
	"github.com/ormolov/sway/internal/rewrite"
	"github.com/spf13/cobra"
)

var replacement string

// neutralizeCmd represents the neutralize command
var neutralizeCmd = &cobra.Command{
	Use:   "neutralize [text]",
	Short: "Rewrite text with pressure phrases neutralized",
	Long: `Neutralize replaces every fear and urgency trigger phrase with a
neutral alternative and prints the result. Nothing is scored and no
history is recorded.

The text comes from the argument, from --file, or from stdin.

Example:
  sway neutralize "Act now or you will regret it"
  sway neutralize --file email.txt
  sway neutralize "Hurry, last chance!" --replacement "when you are ready"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNeutralize,
}

func init() {
	rootCmd.AddCommand(neutralizeCmd)

	neutralizeCmd.Flags().StringVarP(&inputFile, "file", "f", "", "read the text from a file (.txt, .md, .html, .pdf, .docx)")
	neutralizeCmd.Flags().StringVar(&replacement, "replacement", "", "phrase substituted for each trigger (default from config)")
}

func runNeutralize(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	if cmd.Flags().Changed("replacement") {
		cfg.Rewrite.Replacement = replacement
	}

	lex := lexicon.Default()
	if cfg.Lexicon.Path != "" {
		lex, err = lexicon.Load(cfg.Lexicon.Path)
		if err != nil {
			return fmt.Errorf("load lexicon: %w", err)
		}
	}

	neutralizer, err := rewrite.NewNeutralizer(lex.Triggers(), cfg.Rewrite.Replacement)
	if err != nil {
		return fmt.Errorf("build neutralizer: %w", err)
	}

	fmt.Println(neutralizer.Neutralize(text))
	return nil
}
