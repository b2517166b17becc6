package main

import (
	"fmt"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/YuminosukeSato/goeda/pkg/log"
)

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "goeda",
	Short: "Exploratory data analysis for CSV datasets",
	Long:  `goeda glimpses, summarizes and correlates tabular datasets. It reads CSV files into NA-aware dataframes and prints or plots the results.`,
}

// Execute is the entry point called by main.main().
func Execute() {
	cobra.OnInitialize(initConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./goeda.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
}

func initConfig() {
	if err := log.SetupLogger(logLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; falling back to 'warn'\n", err)
		_ = log.SetupLogger("warn")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("goeda")
		viper.SetConfigType("yaml")
	}

	// Defaults mirror corr.DefaultOptions.
	viper.SetDefault("corr.method", "pearson")
	viper.SetDefault("corr.threshold", 0.7)
	viper.SetDefault("corr.notext", 20)
	viper.SetDefault("corr.viz", "plot")

	if err := viper.ReadInConfig(); err != nil {
		// Missing config is fine; defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config: %v\n", err)
		}
	}
}

// readCSV loads a CSV file into a type-detected, NA-aware DataFrame.
func readCSV(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{"", "NA", "NaN", "null"}),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, df.Err
	}
	return df, nil
}
