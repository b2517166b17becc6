package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/goeda/explore"
)

var glimpseCmd = &cobra.Command{
	Use:   "glimpse <file.csv>",
	Short: "Print a transposed preview of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, err := readCSV(args[0])
		if err != nil {
			return err
		}
		return explore.Glimpse(os.Stdout, df)
	},
}

func init() {
	rootCmd.AddCommand(glimpseCmd)
}
