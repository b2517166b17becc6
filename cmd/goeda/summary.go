package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/goeda/explore"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <file.csv>",
	Short: "Print descriptive statistics per column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, err := readCSV(args[0])
		if err != nil {
			return err
		}
		nums, cats, err := explore.Summary(df)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if len(nums) > 0 {
			fmt.Fprintln(tw, "column\tcount\tmissing\tmean\tstd\tmin\tq25\tmedian\tq75\tmax")
			for _, s := range nums {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n",
					s.Column, s.Count, s.Missing, s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max)
			}
		}
		if len(cats) > 0 {
			fmt.Fprintln(tw, "\ncolumn\tcount\tmissing\tunique\ttop\tfreq")
			for _, s := range cats {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\t%d\n",
					s.Column, s.Count, s.Missing, s.Unique, s.Top, s.TopFreq)
			}
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
