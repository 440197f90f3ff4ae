// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the contribcat CLI, which categorizes
// California campaign-finance contributors from PowerSearch CSV exports.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/civicdata/contribcat/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	logDir      = "logs"
	logFileName = "contribcat.log"
)

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

var (
	logger  *zap.Logger
	verbose bool
)

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the contribcat CLI.
var rootCmd = &cobra.Command{
	Use:   "contribcat",
	Short: "Categorize campaign-finance contributors with AI and fuzzy matching",
	Long: `contribcat processes California Secretary of State PowerSearch CSV exports
dropped into data/raw/. Each contributor row is categorized through the
Anthropic Messages API, then category names are standardized against a
canonical set by fuzzy matching.

The pipeline writes an interim file with raw model output to data/interim/
and the standardized result to data/processed/. Interrupted runs resume from
a progress database, so no API call is repeated.

Raw exports contain personal data; data/ is excluded from version control.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}

		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// Keep a file log alongside stderr when logs/ exists (mage init
		// creates it).
		if fi, statErr := os.Stat(logDir); statErr == nil && fi.IsDir() {
			config.OutputPaths = append(config.OutputPaths, filepath.Join(logDir, logFileName))
		}
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./contribcat.yaml or ~/.config/contribcat/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("contribcat")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "contribcat"))
		}
	}

	viper.SetEnvPrefix("CONTRIBCAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
