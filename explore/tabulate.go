package explore

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/YuminosukeSato/goeda/dataset"
	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// ValueCount is one level of a categorical tabulation.
type ValueCount struct {
	Level string
	Count int
	Share float64 // fraction of observed values
}

// ValueCounts tabulates the observed levels of a column, most frequent
// first. Ties keep first-appearance order. Missing values are excluded and
// do not contribute to the shares.
func ValueCounts(df dataframe.DataFrame, column string) ([]ValueCount, error) {
	if !dataset.HasColumn(df, column) {
		return nil, errors.Wrapf(errors.ErrColumnNotFound, "explore.ValueCounts: column '%s'", column)
	}
	s := df.Col(column)

	counts := levelCounts(s)
	observed := s.Len() - dataset.NACount(s)

	out := make([]ValueCount, len(counts))
	for i, lc := range counts {
		out[i] = ValueCount{Level: lc.Level, Count: lc.Count}
		if observed > 0 {
			out[i].Share = float64(lc.Count) / float64(observed)
		}
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out, nil
}

// CrossTab builds the contingency table of two columns as a DataFrame: one
// row per level of a (held in the leading column), one count column per
// level of b. Rows with a missing value in either column are excluded,
// matching the pairwise NA removal used by the correlation core.
func CrossTab(df dataframe.DataFrame, a, b string) (dataframe.DataFrame, error) {
	for _, col := range []string{a, b} {
		if !dataset.HasColumn(df, col) {
			return dataframe.DataFrame{}, errors.Wrapf(errors.ErrColumnNotFound, "explore.CrossTab: column '%s'", col)
		}
	}

	table, aLevels, bLevels, err := dataset.Contingency(df.Col(a), df.Col(b))
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrap(err, "explore.CrossTab")
	}

	cols := make([]series.Series, 0, len(bLevels)+1)
	cols = append(cols, series.New(aLevels, series.String, a))
	for j, level := range bLevels {
		counts := make([]int, len(aLevels))
		for i := range aLevels {
			counts[i] = int(table[i][j])
		}
		cols = append(cols, series.New(counts, series.Int, level))
	}

	out := dataframe.New(cols...)
	if out.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(out.Err, "explore.CrossTab")
	}
	return out, nil
}
