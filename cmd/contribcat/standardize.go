package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/civicdata/contribcat/internal/categorize"
	"github.com/civicdata/contribcat/internal/contrib"
)

var standardizeCmd = &cobra.Command{
	Use:   "standardize [input.csv]",
	Short: "Standardize category names in an already-categorized CSV",
	Long: `Standardize runs stage two only: it reads a CSV that already has a
"Contributor Category" column, maps each value onto the canonical category
set by fuzzy matching, and writes the result to the processed directory.

With no argument the first CSV file found in the interim directory is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStandardize,
}

func init() {
	standardizeCmd.Flags().StringP("output", "o", "", "output file path (default: auto-generated under the processed dir)")
	standardizeCmd.Flags().Int("threshold", 0, "fuzzy match threshold 0-100 (default 80)")
	standardizeCmd.Flags().String("categories", "", "YAML file with a custom category set")
	standardizeCmd.Flags().String("interim-dir", defaultInterimDir, "directory searched for the default input file")
	standardizeCmd.Flags().String("processed-dir", defaultProcessedDir, "directory for standardized output")

	rootCmd.AddCommand(standardizeCmd)
}

func runStandardize(cmd *cobra.Command, args []string) error {
	dirs := pipelineDirs(cmd)

	input := ""
	if len(args) > 0 {
		input = args[0]
	} else {
		found, err := contrib.FindDefaultInput(dirs.InterimDir)
		if err != nil {
			return err
		}
		input = found
		fmt.Fprintf(os.Stderr, "Using input file: %s\n", input)
	}

	categories, err := categorySet(cmd)
	if err != nil {
		return err
	}

	pipeline := &categorize.Pipeline{
		Processing: processingConfig(cmd),
		Dirs:       dirs,
		Categories: categories,
		Logger:     logger,
	}

	output, _ := cmd.Flags().GetString("output")
	outPath, err := pipeline.StandardizeFile(input, output, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Printf("Standardization complete: %s\n", outPath)
	return nil
}
