package corr

import (
	"math"
	"sort"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/goeda/dataset"
	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// continuousCorr computes the selected coefficient between two continuous
// columns after pairwise NA removal. Degenerate inputs (zero variance, too
// few observations) propagate as NaN straight from gonum.
func continuousCorr(x, y []float64, method Method) float64 {
	xs, ys := dataset.PairwiseComplete(x, y)
	switch method {
	case MethodSpearman:
		return stat.Correlation(ranks(xs), ranks(ys), nil)
	default:
		return stat.Correlation(xs, ys, nil)
	}
}

// pointBiserial correlates a continuous column with the deterministic
// integer codes of a categorical column. Codes follow the sorted level
// order, so the coefficient's sign is stable and flips when the two levels
// of a binary column are swapped.
func pointBiserial(cont []float64, codes []float64) float64 {
	xs, ys := dataset.PairwiseComplete(cont, codes)
	return stat.Correlation(xs, ys, nil)
}

// cramerV measures the association between two categorical columns on their
// contingency table. The chi-squared statistic is delegated to gonum.
// Levels whose entire marginal vanishes after pairwise NA removal carry no
// information, so the table dimensions count only levels that were actually
// observed jointly.
func cramerV(a, b series.Series) (float64, error) {
	table, aLevels, bLevels, err := dataset.Contingency(a, b)
	if err != nil {
		return 0, err
	}

	var n float64
	rowSums := make([]float64, len(aLevels))
	colSums := make([]float64, len(bLevels))
	for i := range table {
		for j, v := range table[i] {
			rowSums[i] += v
			colSums[j] += v
			n += v
		}
	}

	effRows := nonzeroCount(rowSums)
	effCols := nonzeroCount(colSums)
	if effRows < 2 || effCols < 2 {
		name := a.Name
		if effRows >= 2 {
			name = b.Name
		}
		errors.Warn(errors.NewDegenerateColumnWarning(name, "cramers_v", "fewer than two observed levels"))
		return 0, nil
	}

	obs := make([]float64, 0, effRows*effCols)
	exp := make([]float64, 0, effRows*effCols)
	for i := range table {
		if rowSums[i] == 0 {
			continue
		}
		for j, v := range table[i] {
			if colSums[j] == 0 {
				continue
			}
			obs = append(obs, v)
			exp = append(exp, rowSums[i]*colSums[j]/n)
		}
	}
	chi2 := stat.ChiSquare(obs, exp)

	k := float64(effRows)
	if float64(effCols) < k {
		k = float64(effCols)
	}
	return math.Sqrt(chi2 / (n * (k - 1))), nil
}

func nonzeroCount(sums []float64) int {
	n := 0
	for _, v := range sums {
		if v > 0 {
			n++
		}
	}
	return n
}

// ranks assigns fractional ranks (ties get the average of their positions),
// the standard preparation for a Spearman coefficient. gonum does not ship a
// Spearman function, so ranking happens here and the correlation itself is
// still stat.Correlation.
func ranks(v []float64) []float64 {
	n := len(v)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return v[idx[a]] < v[idx[b]] })

	r := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && v[idx[j+1]] == v[idx[i]] {
			j++
		}
		// positions i..j share the same value
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			r[idx[k]] = avg
		}
		i = j + 1
	}
	return r
}
