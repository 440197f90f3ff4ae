package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the canonical category set",
	Long: `Categories prints the canonical category set that standardization maps
raw model output onto, one category per line. Pass --categories to print a
custom set instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		categories, err := categorySet(cmd)
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Println(c)
		}
		return nil
	},
}

func init() {
	categoriesCmd.Flags().String("categories", "", "YAML file with a custom category set")

	rootCmd.AddCommand(categoriesCmd)
}
