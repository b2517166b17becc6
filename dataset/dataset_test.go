package dataset

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyColumn(t *testing.T) {
	t.Run("binary numeric column is categorical", func(t *testing.T) {
		s := series.New([]float64{0, 1, 0, 1, 1}, series.Float, "flag")
		assert.Equal(t, RoleCategorical, ClassifyColumn(s))
	})

	t.Run("numeric column with more than two values is continuous", func(t *testing.T) {
		s := series.New([]float64{1, 2, 3, 4}, series.Float, "x")
		assert.Equal(t, RoleContinuous, ClassifyColumn(s))
	})

	t.Run("string column is categorical", func(t *testing.T) {
		s := series.New([]string{"a", "b", "c"}, series.String, "cat")
		assert.Equal(t, RoleCategorical, ClassifyColumn(s))
	})

	t.Run("integer column is continuous", func(t *testing.T) {
		s := series.New([]int{5, 7, 9, 11}, series.Int, "n")
		assert.Equal(t, RoleContinuous, ClassifyColumn(s))
	})
}

func TestSplitColumns(t *testing.T) {
	t.Run("partitions all columns", func(t *testing.T) {
		df := dataframe.New(
			series.New([]float64{1, 2, 3}, series.Float, "a"),
			series.New([]string{"x", "y", "x"}, series.String, "b"),
			series.New([]float64{0, 1, 0}, series.Float, "c"),
		)
		cont, cat := SplitColumns(df)
		assert.Equal(t, []string{"a"}, cont)
		assert.Equal(t, []string{"b", "c"}, cat)
	})

	t.Run("empty dataframe yields two empty lists", func(t *testing.T) {
		cont, cat := SplitColumns(dataframe.DataFrame{})
		assert.Empty(t, cont)
		assert.Empty(t, cat)
		assert.NotNil(t, cont)
		assert.NotNil(t, cat)
	})

	t.Run("index variant matches name variant", func(t *testing.T) {
		df := dataframe.New(
			series.New([]float64{1, 2, 3}, series.Float, "a"),
			series.New([]string{"x", "y", "x"}, series.String, "b"),
		)
		cont, cat := SplitColumnIndices(df)
		assert.Equal(t, []int{0}, cont)
		assert.Equal(t, []int{1}, cat)
	})
}

func TestLevelsAndCodes(t *testing.T) {
	t.Run("levels are sorted and codes deterministic", func(t *testing.T) {
		s := series.New([]string{"b", "a", "c", "a"}, series.String, "cat")
		assert.Equal(t, []string{"a", "b", "c"}, Levels(s))

		codes, levels := CategoryCodes(s)
		assert.Equal(t, []string{"a", "b", "c"}, levels)
		assert.Equal(t, []float64{1, 0, 2, 0}, codes)
	})

	t.Run("numeric levels sort numerically", func(t *testing.T) {
		s := series.New([]string{"10", "2", "1"}, series.String, "n")
		assert.Equal(t, []string{"1", "2", "10"}, Levels(s))
	})

	t.Run("swapping binary categories swaps codes", func(t *testing.T) {
		a := series.New([]float64{0, 0, 1, 1}, series.Float, "flag")
		b := series.New([]float64{1, 1, 0, 0}, series.Float, "flag")

		codesA, _ := CategoryCodes(a)
		codesB, _ := CategoryCodes(b)
		for i := range codesA {
			assert.Equal(t, codesA[i], 1-codesB[i])
		}
	})

	t.Run("missing values map to NaN", func(t *testing.T) {
		s := series.New([]float64{0, math.NaN(), 1}, series.Float, "flag")
		codes, _ := CategoryCodes(s)
		assert.True(t, math.IsNaN(codes[1]))
	})
}

func TestPairwiseComplete(t *testing.T) {
	x := []float64{1, math.NaN(), 3, 4}
	y := []float64{10, 20, math.NaN(), 40}
	xs, ys := PairwiseComplete(x, y)
	assert.Equal(t, []float64{1, 4}, xs)
	assert.Equal(t, []float64{10, 40}, ys)
}

func TestContingency(t *testing.T) {
	t.Run("joint frequencies", func(t *testing.T) {
		a := series.New([]string{"x", "x", "y", "y", "y"}, series.String, "a")
		b := series.New([]string{"u", "v", "u", "u", "v"}, series.String, "b")

		table, aLevels, bLevels, err := Contingency(a, b)
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y"}, aLevels)
		assert.Equal(t, []string{"u", "v"}, bLevels)
		assert.Equal(t, [][]float64{{1, 1}, {2, 1}}, table)
	})

	t.Run("length mismatch fails", func(t *testing.T) {
		a := series.New([]string{"x"}, series.String, "a")
		b := series.New([]string{"u", "v"}, series.String, "b")
		_, _, _, err := Contingency(a, b)
		assert.Error(t, err)
	})
}

func TestToMatrix(t *testing.T) {
	t.Run("drops rows with missing values", func(t *testing.T) {
		df := dataframe.New(
			series.New([]float64{1, math.NaN(), 3}, series.Float, "age"),
			series.New([]float64{10, 20, 30}, series.Float, "score"),
		)

		X, kept, err := ToMatrix(df, []string{"age", "score"})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2}, kept)

		r, c := X.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 2, c)
		assert.Equal(t, 30.0, X.At(1, 1))
	})

	t.Run("categorical columns use stable codes", func(t *testing.T) {
		df := dataframe.New(
			series.New([]string{"b", "a", "b"}, series.String, "grp"),
		)
		X, _, err := ToMatrix(df, []string{"grp"})
		require.NoError(t, err)
		assert.Equal(t, 1.0, X.At(0, 0))
		assert.Equal(t, 0.0, X.At(1, 0))
	})

	t.Run("unknown column fails", func(t *testing.T) {
		df := dataframe.New(series.New([]float64{1, 2}, series.Float, "a"))
		_, _, err := ToMatrix(df, []string{"missing"})
		assert.Error(t, err)
	})
}
