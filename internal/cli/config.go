package cli

import (
	"fmt"
	"os"

	"github.com/ormolov/sway/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// setConfigDefaults registers every config key with viper so file and
// environment values merge over the built-in defaults.
func setConfigDefaults() {
	d := model.DefaultConfig()

	viper.SetDefault("lexicon.path", d.Lexicon.Path)
	viper.SetDefault("lexicon.match_mode", d.Lexicon.MatchMode)

	viper.SetDefault("scoring.fear_weight", d.Scoring.FearWeight)
	viper.SetDefault("scoring.urgency_weight", d.Scoring.UrgencyWeight)
	viper.SetDefault("scoring.negativity_weight", d.Scoring.NegativityWeight)
	viper.SetDefault("scoring.negativity_source", d.Scoring.NegativitySource)

	viper.SetDefault("sentiment.provider", d.Sentiment.Provider)
	viper.SetDefault("sentiment.model", d.Sentiment.Model)
	viper.SetDefault("sentiment.base_url", d.Sentiment.BaseURL)
	viper.SetDefault("sentiment.timeout", d.Sentiment.Timeout)
	viper.SetDefault("sentiment.requests_per_second", d.Sentiment.RequestsPerSecond)
	viper.SetDefault("sentiment.burst", d.Sentiment.Burst)
	viper.SetDefault("sentiment.http_proxy", d.Sentiment.HTTPProxy)
	viper.SetDefault("sentiment.https_proxy", d.Sentiment.HTTPSProxy)
	viper.SetDefault("sentiment.no_proxy", d.Sentiment.NoProxy)

	viper.SetDefault("history.backend", d.History.Backend)
	viper.SetDefault("history.path", d.History.Path)
	viper.SetDefault("history.window", d.History.Window)

	viper.SetDefault("rewrite.replacement", d.Rewrite.Replacement)
	viper.SetDefault("alert.threshold", d.Alert.Threshold)

	viper.SetDefault("cache.enabled", d.Cache.Enabled)
	viper.SetDefault("cache.dir", d.Cache.Dir)
	viper.SetDefault("cache.ttl_minutes", d.Cache.TTLMinutes)

	viper.SetDefault("output.include_footer", d.Output.IncludeFooter)
	viper.SetDefault("concurrency.workers", d.Concurrency.Workers)
}

// loadConfig builds the effective configuration: defaults, then config
// file, then SWAY_* environment variables. Flags are applied on top by
// the individual commands.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	cfg.Lexicon.Path = viper.GetString("lexicon.path")
	cfg.Lexicon.MatchMode = viper.GetString("lexicon.match_mode")

	cfg.Scoring.FearWeight = viper.GetFloat64("scoring.fear_weight")
	cfg.Scoring.UrgencyWeight = viper.GetFloat64("scoring.urgency_weight")
	cfg.Scoring.NegativityWeight = viper.GetFloat64("scoring.negativity_weight")
	cfg.Scoring.NegativitySource = viper.GetString("scoring.negativity_source")

	cfg.Sentiment.Provider = viper.GetString("sentiment.provider")
	cfg.Sentiment.Model = viper.GetString("sentiment.model")
	cfg.Sentiment.BaseURL = viper.GetString("sentiment.base_url")
	cfg.Sentiment.Timeout = viper.GetInt("sentiment.timeout")
	cfg.Sentiment.RequestsPerSecond = viper.GetFloat64("sentiment.requests_per_second")
	cfg.Sentiment.Burst = viper.GetInt("sentiment.burst")
	cfg.Sentiment.HTTPProxy = viper.GetString("sentiment.http_proxy")
	cfg.Sentiment.HTTPSProxy = viper.GetString("sentiment.https_proxy")
	cfg.Sentiment.NoProxy = viper.GetString("sentiment.no_proxy")

	cfg.History.Backend = viper.GetString("history.backend")
	cfg.History.Path = viper.GetString("history.path")
	cfg.History.Window = viper.GetInt("history.window")

	cfg.Rewrite.Replacement = viper.GetString("rewrite.replacement")
	cfg.Alert.Threshold = viper.GetInt("alert.threshold")

	cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	cfg.Cache.Dir = viper.GetString("cache.dir")
	cfg.Cache.TTLMinutes = viper.GetInt("cache.ttl_minutes")

	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = viper.GetBool("output.include_footer")
	cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")

	return cfg
}

// resolveAPIKey pulls provider credentials from the environment
func resolveAPIKey(cfg *model.Config) error {
	switch cfg.Sentiment.Provider {
	case "openai":
		cfg.Sentiment.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.Sentiment.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.Sentiment.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.Sentiment.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.Sentiment.BaseURL = baseURL
		}
	}
	return nil
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Sway configuration",
	Long: `Manage Sway configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (SWAY_*)
3. Config file (~/.sway/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after merging defaults, config file, and environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		configFile := viper.ConfigFileUsed()
		if configFile != "" {
			fmt.Fprintf(os.Stderr, "Configuration file: %s\n\n", configFile)
		} else {
			fmt.Fprintf(os.Stderr, "No configuration file found (using defaults)\n\n")
		}

		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println("  Current Configuration")
		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println()

		yamlData, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}
		fmt.Println(string(yamlData))

		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println()
		fmt.Println("Configuration hierarchy (highest to lowest priority):")
		fmt.Println("  1. CLI flags")
		fmt.Println("  2. Environment variables (SWAY_*, OPENAI_API_KEY, ANTHROPIC_API_KEY)")
		fmt.Println("  3. Config file (~/.sway/config.yaml)")
		fmt.Println("  4. Defaults")
		fmt.Println()

		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.sway/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("error finding home directory: %w", err)
		}

		configDir := home + "/.sway"
		configPath := configDir + "/config.yaml"

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file already exists: %s\nUse 'sway config show' to view it, or delete it first to recreate", configPath)
		}

		// Create directory
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			return fmt.Errorf("error creating config directory: %w", err)
		}

		// Create config file
		f, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("error creating config file: %w", err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close config file: %w", closeErr)
			}
		}()

		yamlData, err := yaml.Marshal(model.DefaultConfig())
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		header := `# Sway Configuration File
#
# Configuration hierarchy (highest to lowest priority):
#   1. CLI flags
#   2. Environment variables (SWAY_*)
#   3. This config file
#   4. Built-in defaults

`
		footer := `
# API keys are read from the environment, never from this file:
#   export OPENAI_API_KEY=sk-...
#   export ANTHROPIC_API_KEY=sk-ant-...
#   export OLLAMA_BASE_URL=http://localhost:11434
`

		if _, err := f.WriteString(header); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}
		if _, err := f.Write(yamlData); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}
		if _, err := f.WriteString(footer); err != nil {
			return fmt.Errorf("error writing config: %w", err)
		}

		fmt.Printf("✓ Created default configuration: %s\n", configPath)
		fmt.Printf("\nTo view the configuration:\n")
		fmt.Printf("  sway config show\n")
		fmt.Printf("\nTo customize, edit the file with your preferred editor:\n")
		fmt.Printf("  $EDITOR %s\n", configPath)
		fmt.Printf("\n")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
