// Package goeda provides exploratory-data-analysis convenience helpers and
// an AutoML hyperparameter-search wrapper for Go, built on gota DataFrames
// and the gonum and scigo libraries.
//
// goeda has no algorithmic core of its own: correlation math, plotting and
// cross-validated model fitting all delegate to external libraries. The
// value is in assembling those calls behind a small, consistent API.
//
// # Packages
//
//   - explore: dataframe glimpsing, summary statistics, categorical
//     tabulation (ValueCounts, CrossTab)
//   - corr: mixed-type correlation matrices (Pearson/Spearman, Cramer's V,
//     point-biserial), high-correlation pair extraction and heatmap
//     rendering via gonum/plot
//   - preprocessing: one-hot encoding of categorical columns
//   - automl: grid/random hyperparameter search over scigo estimators with
//     K-fold cross-validation
//   - dataset: NA-aware helpers shared by the packages above
//
// # Quick Start
//
//	df := dataframe.ReadCSV(file)
//
//	// glimpse the data
//	explore.Glimpse(os.Stdout, df)
//
//	// mixed-type correlation matrix with high-pair report
//	res, err := corr.Analyze(df, corr.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, p := range res.HighPairs {
//	    fmt.Printf("%s ~ %s: %.3f\n", p.ColumnA, p.ColumnB, p.Coefficient)
//	}
//
// The correlation matrix is recomputed in full on every call; there is no
// caching or persistence.
package goeda
