package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/civicdata/contribcat/internal/anthropic"
	"github.com/civicdata/contribcat/internal/categorize"
	"github.com/civicdata/contribcat/internal/contrib"
	"github.com/civicdata/contribcat/internal/progress"
	"github.com/civicdata/contribcat/internal/secrets"
	"github.com/civicdata/contribcat/pkg/types"
)

const (
	defaultModel      = "claude-sonnet-4-20250514"
	defaultBaseDelay  = 1500 * time.Millisecond
	defaultMaxRetries = 5
	defaultTimeout    = 30 * time.Second

	defaultRawDir       = "data/raw"
	defaultInterimDir   = "data/interim"
	defaultProcessedDir = "data/processed"

	progressDBName = "progress.db"
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize [input.csv]",
	Short: "Run the two-stage categorization pipeline on a raw export",
	Long: `Categorize runs the full pipeline: each row is categorized through the
Messages API (stage one, written to data/interim/), then category names are
standardized against the canonical set by fuzzy matching (stage two, written
to data/processed/).

With no argument the first CSV file found in data/raw/ is used. Per-row
progress is saved to a database in data/interim/ so an interrupted run can be
restarted without repeating API calls.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCategorize,
}

func init() {
	categorizeCmd.Flags().StringP("output", "o", "", "final output file path (default: auto-generated under the processed dir)")
	categorizeCmd.Flags().String("model", "", "model identifier (default: "+defaultModel+")")
	categorizeCmd.Flags().Duration("base-delay", 0, "minimum delay between API calls (default 1.5s)")
	categorizeCmd.Flags().Int("max-retries", 0, "retry attempts on rate-limit responses (default 5)")
	categorizeCmd.Flags().Int("threshold", 0, "fuzzy match threshold 0-100 for standardization (default 80)")
	categorizeCmd.Flags().Int("save-interval", 0, "rows between progress saves (default 50)")
	categorizeCmd.Flags().String("categories", "", "YAML file with a custom category set")
	categorizeCmd.Flags().String("raw-dir", defaultRawDir, "directory searched for the default input file")
	categorizeCmd.Flags().String("interim-dir", defaultInterimDir, "directory for interim output and the progress database")
	categorizeCmd.Flags().String("processed-dir", defaultProcessedDir, "directory for standardized output")
	categorizeCmd.Flags().Bool("no-resume", false, "ignore and discard saved progress for this file")

	rootCmd.AddCommand(categorizeCmd)
}

func runCategorize(cmd *cobra.Command, args []string) error {
	dirs := pipelineDirs(cmd)

	input := ""
	if len(args) > 0 {
		input = args[0]
	} else {
		found, err := contrib.FindDefaultInput(dirs.RawDir)
		if err != nil {
			return err
		}
		input = found
		fmt.Fprintf(os.Stderr, "Using input file: %s\n", input)
	}

	apiCfg, err := apiConfig(cmd)
	if err != nil {
		return err
	}

	categories, err := categorySet(cmd)
	if err != nil {
		return err
	}

	pipeline := &categorize.Pipeline{
		Backend:    anthropic.New(apiCfg, categories),
		Processing: processingConfig(cmd),
		Dirs:       dirs,
		Categories: categories,
		Logger:     logger,
	}

	noResume, _ := cmd.Flags().GetBool("no-resume")
	if !noResume {
		store, err := progress.Open(filepath.Join(dirs.InterimDir, progressDBName))
		if err != nil {
			return err
		}
		defer store.Close()
		pipeline.Store = store
	}

	output, _ := cmd.Flags().GetString("output")

	result, err := pipeline.Run(context.Background(), input, output, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("Processing complete:\n")
	fmt.Printf("  interim (raw AI):        %s\n", result.InterimPath)
	fmt.Printf("  processed (standardized): %s\n", result.FinalPath)
	if result.Summary.Failed > 0 {
		fmt.Printf("  %d row(s) could not be categorized and fell back to Other\n", result.Summary.Failed)
	}
	return nil
}

// pipelineDirs resolves the working directories from flags with config-file
// fallbacks.
func pipelineDirs(cmd *cobra.Command) types.PipelineConfig {
	return types.PipelineConfig{
		RawDir:       stringSetting(cmd, "raw-dir", "dirs.raw", defaultRawDir),
		InterimDir:   stringSetting(cmd, "interim-dir", "dirs.interim", defaultInterimDir),
		ProcessedDir: stringSetting(cmd, "processed-dir", "dirs.processed", defaultProcessedDir),
	}
}

// apiConfig builds the API settings from flags, config file, and secrets.
func apiConfig(cmd *cobra.Command) (types.APIConfig, error) {
	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("api.model")
	}
	if model == "" {
		model = defaultModel
	}

	apiKey := secretDefault(secrets.AnthropicAPIKey, viper.GetString("api.key"))
	if apiKey == "" {
		return types.APIConfig{}, fmt.Errorf(
			"no Anthropic API key: place it in .secrets/%s or set CONTRIBCAT_API_KEY", secrets.AnthropicAPIKey)
	}

	baseDelay, _ := cmd.Flags().GetDuration("base-delay")
	if baseDelay == 0 {
		baseDelay = viper.GetDuration("api.base_delay")
	}
	if baseDelay == 0 {
		baseDelay = defaultBaseDelay
	}

	maxRetries, _ := cmd.Flags().GetInt("max-retries")
	if maxRetries == 0 {
		maxRetries = viper.GetInt("api.max_retries")
	}
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}

	timeout := viper.GetDuration("api.timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return types.APIConfig{
		Model:      model,
		APIKey:     apiKey,
		BaseDelay:  baseDelay,
		MaxRetries: maxRetries,
		Timeout:    timeout,
	}, nil
}

// processingConfig resolves pipeline tuning from flags with config fallbacks.
func processingConfig(cmd *cobra.Command) types.ProcessingConfig {
	threshold, _ := cmd.Flags().GetInt("threshold")
	if threshold == 0 {
		threshold = viper.GetInt("processing.fuzzy_match_threshold")
	}
	interval, _ := cmd.Flags().GetInt("save-interval")
	if interval == 0 {
		interval = viper.GetInt("processing.progress_save_interval")
	}
	return types.ProcessingConfig{
		FuzzyMatchThreshold:  threshold,
		ProgressSaveInterval: interval,
	}
}

// categorySet loads the category set named by --categories, or the default.
func categorySet(cmd *cobra.Command) ([]string, error) {
	path, _ := cmd.Flags().GetString("categories")
	if path == "" {
		path = viper.GetString("categories_file")
	}
	if path == "" {
		return categorize.DefaultCategories, nil
	}
	return categorize.LoadCategories(path)
}

// stringSetting resolves a string from flag, then config key, then fallback.
func stringSetting(cmd *cobra.Command, flag, viperKey, fallback string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" && cmd.Flags().Changed(flag) {
		return v
	}
	if v := viper.GetString(viperKey); v != "" {
		return v
	}
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return fallback
}
