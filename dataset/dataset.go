// Package dataset provides NA-aware helpers on top of gota DataFrames:
// column role classification, stable categorical codes and conversion to
// gonum matrices. It is the shared data model for the explore, corr,
// preprocessing and automl packages.
package dataset

import (
	"math"
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// ColumnRole labels a column for statistical treatment.
type ColumnRole int

const (
	// RoleContinuous marks a column whose values are treated as real-valued.
	RoleContinuous ColumnRole = iota
	// RoleCategorical marks a column whose values are treated as discrete levels.
	RoleCategorical
)

// String returns the role name.
func (r ColumnRole) String() string {
	switch r {
	case RoleContinuous:
		return "continuous"
	case RoleCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// ClassifyColumn determines the role of a single column. A column with
// exactly two distinct observed values is always categorical, regardless of
// numeric encoding. Otherwise numeric columns are continuous and everything
// else is categorical.
func ClassifyColumn(s series.Series) ColumnRole {
	if DistinctCount(s) == 2 {
		return RoleCategorical
	}
	switch s.Type() {
	case series.Int, series.Float:
		return RoleContinuous
	default:
		return RoleCategorical
	}
}

// SplitColumns partitions all column names of df into continuous and
// categorical lists, preserving column order. An empty DataFrame yields two
// empty lists.
func SplitColumns(df dataframe.DataFrame) (continuous, categorical []string) {
	continuous = []string{}
	categorical = []string{}
	for _, name := range df.Names() {
		if ClassifyColumn(df.Col(name)) == RoleContinuous {
			continuous = append(continuous, name)
		} else {
			categorical = append(categorical, name)
		}
	}
	return continuous, categorical
}

// SplitColumnIndices is SplitColumns with positional indices instead of names.
func SplitColumnIndices(df dataframe.DataFrame) (continuous, categorical []int) {
	continuous = []int{}
	categorical = []int{}
	for i, name := range df.Names() {
		if ClassifyColumn(df.Col(name)) == RoleContinuous {
			continuous = append(continuous, i)
		} else {
			categorical = append(categorical, i)
		}
	}
	return continuous, categorical
}

// DistinctCount returns the number of distinct observed (non-NA) values.
func DistinctCount(s series.Series) int {
	seen := make(map[string]struct{})
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		seen[e.String()] = struct{}{}
	}
	return len(seen)
}

// NACount returns the number of missing values in the series.
func NACount(s series.Series) int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		if s.Elem(i).IsNA() {
			n++
		}
	}
	return n
}

// Levels returns the distinct observed values of a column in sorted order,
// numerically when every level parses as a number and lexically otherwise.
// Sorting depends only on the values, not on row order, so integer codes
// derived from it are stable per column and swapping two categories swaps
// their codes.
func Levels(s series.Series) []string {
	seen := make(map[string]struct{})
	levels := []string{}
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		v := e.String()
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		levels = append(levels, v)
	}

	numeric := make(map[string]float64, len(levels))
	allNumeric := true
	for _, l := range levels {
		f, err := strconv.ParseFloat(l, 64)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[l] = f
	}
	if allNumeric {
		sort.Slice(levels, func(a, b int) bool { return numeric[levels[a]] < numeric[levels[b]] })
	} else {
		sort.Strings(levels)
	}
	return levels
}

// CategoryCodes maps a column to deterministic integer codes assigned in
// sorted level order (see Levels). Missing values map to NaN. The level
// list is returned alongside the codes; codes[i] indexes into it.
func CategoryCodes(s series.Series) ([]float64, []string) {
	levels := Levels(s)
	index := make(map[string]int, len(levels))
	for i, l := range levels {
		index[l] = i
	}

	codes := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			codes[i] = math.NaN()
			continue
		}
		codes[i] = float64(index[e.String()])
	}
	return codes, levels
}

// NumericValues returns the column as float64 values with NaN for NA.
func NumericValues(s series.Series) []float64 {
	vals := make([]float64, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			vals[i] = math.NaN()
			continue
		}
		vals[i] = e.Float()
	}
	return vals
}

// PairwiseComplete keeps only the observations where both x and y are
// present. This is the pairwise NA removal used for every coefficient.
func PairwiseComplete(x, y []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// Contingency cross-tabulates the joint frequencies of two columns after
// pairwise NA removal. The returned table has one row per level of a and one
// column per level of b, levels in sorted order.
func Contingency(a, b series.Series) (table [][]float64, aLevels, bLevels []string, err error) {
	if a.Len() != b.Len() {
		return nil, nil, nil, errors.NewDimensionError("dataset.Contingency", a.Len(), b.Len(), 0)
	}

	aCodes, aLevels := CategoryCodes(a)
	bCodes, bLevels := CategoryCodes(b)

	table = make([][]float64, len(aLevels))
	for i := range table {
		table[i] = make([]float64, len(bLevels))
	}
	for i := range aCodes {
		if math.IsNaN(aCodes[i]) || math.IsNaN(bCodes[i]) {
			continue
		}
		table[int(aCodes[i])][int(bCodes[i])]++
	}
	return table, aLevels, bLevels, nil
}

// ToMatrix converts the named columns into a dense row-major matrix,
// dropping rows that contain any NA in the selected columns. Categorical
// columns are replaced by their stable integer codes. The kept original row
// indices are returned for callers that need to align other columns.
func ToMatrix(df dataframe.DataFrame, cols []string) (*mat.Dense, []int, error) {
	if df.Nrow() == 0 || len(cols) == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "dataset.ToMatrix")
	}

	names := make(map[string]struct{}, df.Ncol())
	for _, n := range df.Names() {
		names[n] = struct{}{}
	}

	values := make([][]float64, len(cols))
	for j, col := range cols {
		if _, ok := names[col]; !ok {
			return nil, nil, errors.Wrapf(errors.ErrColumnNotFound, "dataset.ToMatrix: column '%s'", col)
		}
		s := df.Col(col)
		if ClassifyColumn(s) == RoleContinuous {
			values[j] = NumericValues(s)
		} else {
			values[j], _ = CategoryCodes(s)
		}
	}

	kept := []int{}
rows:
	for i := 0; i < df.Nrow(); i++ {
		for j := range cols {
			if math.IsNaN(values[j][i]) {
				continue rows
			}
		}
		kept = append(kept, i)
	}
	if len(kept) == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "dataset.ToMatrix: no complete rows")
	}

	X := mat.NewDense(len(kept), len(cols), nil)
	for r, i := range kept {
		for j := range cols {
			X.Set(r, j, values[j][i])
		}
	}
	return X, kept, nil
}

// HasColumn reports whether df contains the named column.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}
