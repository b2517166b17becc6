package explore

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/goeda/dataset"
	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// NumericSummary holds descriptive statistics for one continuous column.
// Quantiles follow the empirical distribution of the observed values;
// missing values are excluded from every statistic.
type NumericSummary struct {
	Column  string
	Count   int // observed (non-NA) values
	Missing int
	Mean    float64
	Std     float64 // sample standard deviation (n-1)
	Min     float64
	Q25     float64
	Median  float64
	Q75     float64
	Max     float64
}

// CategoricalSummary holds descriptive statistics for one categorical column.
type CategoricalSummary struct {
	Column  string
	Count   int
	Missing int
	Unique  int
	Top     string // most frequent level, first-appearance order breaks ties
	TopFreq int
}

// Summary computes descriptive statistics for every column of df, split by
// column role. Column order is preserved within each slice.
func Summary(df dataframe.DataFrame) ([]NumericSummary, []CategoricalSummary, error) {
	if df.Ncol() == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "explore.Summary")
	}

	var nums []NumericSummary
	var cats []CategoricalSummary
	for _, name := range df.Names() {
		s := df.Col(name)
		if dataset.ClassifyColumn(s) == dataset.RoleContinuous {
			nums = append(nums, summarizeNumeric(name, dataset.NumericValues(s), dataset.NACount(s)))
			continue
		}
		cats = append(cats, summarizeCategorical(name, s))
	}
	return nums, cats, nil
}

func summarizeNumeric(name string, values []float64, missing int) NumericSummary {
	observed := make([]float64, 0, len(values))
	for _, v := range values {
		if v == v { // drop NaN
			observed = append(observed, v)
		}
	}
	sum := NumericSummary{Column: name, Count: len(observed), Missing: missing}
	if len(observed) == 0 {
		return sum
	}

	sort.Float64s(observed)
	sum.Mean = stat.Mean(observed, nil)
	sum.Std = stat.StdDev(observed, nil)
	sum.Min = observed[0]
	sum.Max = observed[len(observed)-1]
	sum.Q25 = stat.Quantile(0.25, stat.Empirical, observed, nil)
	sum.Median = stat.Quantile(0.5, stat.Empirical, observed, nil)
	sum.Q75 = stat.Quantile(0.75, stat.Empirical, observed, nil)
	return sum
}

func summarizeCategorical(name string, s series.Series) CategoricalSummary {
	counts := levelCounts(s)
	sum := CategoricalSummary{
		Column:  name,
		Count:   s.Len() - dataset.NACount(s),
		Missing: dataset.NACount(s),
		Unique:  len(counts),
	}
	for _, lc := range counts {
		if lc.Count > sum.TopFreq {
			sum.Top = lc.Level
			sum.TopFreq = lc.Count
		}
	}
	return sum
}

type levelCount struct {
	Level string
	Count int
}

// levelCounts tallies observed levels in first-appearance order.
func levelCounts(s series.Series) []levelCount {
	index := make(map[string]int)
	counts := []levelCount{}
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		v := e.String()
		if at, ok := index[v]; ok {
			counts[at].Count++
			continue
		}
		index[v] = len(counts)
		counts = append(counts, levelCount{Level: v, Count: 1})
	}
	return counts
}
