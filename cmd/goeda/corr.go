package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/goeda/corr"
)

var (
	corrMethod    string
	corrViz       string
	corrThreshold float64
	corrNoText    int
	corrOut       string
)

var corrCmd = &cobra.Command{
	Use:   "corr <file.csv>",
	Short: "Compute the mixed-type correlation matrix and report high pairs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		df, err := readCSV(args[0])
		if err != nil {
			return err
		}

		opts, err := optionsFromConfig(cmd)
		if err != nil {
			return err
		}

		res, err := corr.Analyze(df, opts)
		if err != nil {
			return err
		}

		if len(res.HighPairs) == 0 {
			fmt.Printf("No pairs above |%.2f|\n", opts.HighCorrThreshold)
		} else {
			fmt.Printf("Pairs above |%.2f|:\n", opts.HighCorrThreshold)
			for _, p := range res.HighPairs {
				fmt.Printf("  %s ~ %s: %+.3f\n", p.ColumnA, p.ColumnB, p.Coefficient)
			}
		}

		if res.Figure != nil && corrOut != "" {
			side := vg.Length(res.Matrix.Len()) * vg.Centimeter
			if side < 12*vg.Centimeter {
				side = 12 * vg.Centimeter
			}
			if err := res.Figure.Save(side, side, corrOut); err != nil {
				return err
			}
			fmt.Printf("Heatmap written to %s\n", corrOut)
		}
		return nil
	},
}

// optionsFromConfig merges viper config values with explicit flags; flags
// win when set.
func optionsFromConfig(cmd *cobra.Command) (corr.Options, error) {
	opts := corr.DefaultOptions()
	opts.TextOut = os.Stdout

	method := viper.GetString("corr.method")
	if cmd.Flags().Changed("method") {
		method = corrMethod
	}
	m, err := corr.ParseMethod(method)
	if err != nil {
		return corr.Options{}, err
	}
	opts.Method = m

	viz := viper.GetString("corr.viz")
	if cmd.Flags().Changed("viz") {
		viz = corrViz
	}
	b, err := corr.ParseBackend(viz)
	if err != nil {
		return corr.Options{}, err
	}
	opts.Viz = b

	opts.HighCorrThreshold = viper.GetFloat64("corr.threshold")
	if cmd.Flags().Changed("threshold") {
		opts.HighCorrThreshold = corrThreshold
	}
	opts.NoTextThreshold = viper.GetInt("corr.notext")
	if cmd.Flags().Changed("notext") {
		opts.NoTextThreshold = corrNoText
	}
	return opts, nil
}

func init() {
	corrCmd.Flags().StringVar(&corrMethod, "method", "pearson", "continuous correlation method (pearson|spearman)")
	corrCmd.Flags().StringVar(&corrViz, "viz", "plot", "rendering backend (plot|text)")
	corrCmd.Flags().Float64Var(&corrThreshold, "threshold", 0.7, "absolute coefficient threshold for the high-pair report")
	corrCmd.Flags().IntVar(&corrNoText, "notext", 20, "column count above which heatmap annotations are suppressed")
	corrCmd.Flags().StringVar(&corrOut, "out", "corr.png", "output file for the plot backend")
	rootCmd.AddCommand(corrCmd)
}
