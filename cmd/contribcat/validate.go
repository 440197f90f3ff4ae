package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/civicdata/contribcat/internal/contrib"
)

var validateCmd = &cobra.Command{
	Use:   "validate [input.csv]",
	Short: "Check a raw export against the input contract",
	Long: `Validate checks that a CSV export conforms to the documented input
contract: it parses as CSV, carries the Contributor Name, Contributor
Employer, and Contributor Occupation columns, has at least one data row, and
contains no trailing footer/summary lines.

With no argument the first CSV file found in data/raw/ is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("raw-dir", defaultRawDir, "directory searched for the default input file")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	input := ""
	if len(args) > 0 {
		input = args[0]
	} else {
		rawDir, _ := cmd.Flags().GetString("raw-dir")
		found, err := contrib.FindDefaultInput(rawDir)
		if err != nil {
			return err
		}
		input = found
		fmt.Fprintf(os.Stderr, "Using input file: %s\n", input)
	}

	f, err := contrib.ReadFile(input)
	if err != nil {
		return err
	}
	if err := contrib.Validate(f, contrib.ColName, contrib.ColEmployer, contrib.ColOccupation); err != nil {
		return err
	}

	fmt.Printf("%s conforms to the input contract: %d data rows, %d columns\n",
		input, len(f.Rows), len(f.Header))
	return nil
}
