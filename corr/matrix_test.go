package corr

import (
	"math"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func mixedFrame() dataframe.DataFrame {
	return dataframe.New(
		series.New([]float64{1.0, 2.5, 3.1, 4.7, 5.2, 6.9}, series.Float, "age"),
		series.New([]float64{2.1, 4.8, 6.0, 9.5, 10.1, 14.2}, series.Float, "income"),
		series.New([]string{"a", "b", "a", "b", "a", "b"}, series.String, "group"),
		series.New([]float64{0, 1, 0, 1, 1, 0}, series.Float, "flag"),
	)
}

func TestAssemble(t *testing.T) {
	t.Run("matrix is symmetric with unit diagonal", func(t *testing.T) {
		m, err := Assemble(mixedFrame(), MethodPearson)
		require.NoError(t, err)

		n := m.Len()
		assert.Equal(t, 4, n)
		for i := 0; i < n; i++ {
			assert.Equal(t, 1.0, m.At(i, i), "diagonal at %d", i)
			for j := 0; j < n; j++ {
				assert.Equal(t, m.At(i, j), m.At(j, i), "symmetry at (%d,%d)", i, j)
			}
		}
	})

	t.Run("continuous pair matches gonum reference", func(t *testing.T) {
		x := []float64{1.0, 2.5, 3.1, 4.7, 5.2, 6.9}
		y := []float64{2.1, 4.8, 6.0, 9.5, 10.1, 14.2}
		want := stat.Correlation(x, y, nil)

		m, err := Assemble(mixedFrame(), MethodPearson)
		require.NoError(t, err)
		got, err := m.Lookup("age", "income")
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-12)
	})

	t.Run("spearman on monotonic data is one", func(t *testing.T) {
		df := dataframe.New(
			series.New([]float64{1, 2, 3, 4, 5}, series.Float, "x"),
			series.New([]float64{1, 4, 9, 16, 25}, series.Float, "y"),
		)
		m, err := Assemble(df, MethodSpearman)
		require.NoError(t, err)
		got, err := m.Lookup("x", "y")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-12)
	})

	t.Run("perfect negative correlation", func(t *testing.T) {
		df := dataframe.New(
			series.New([]float64{1, 2, 3, 4}, series.Float, "A"),
			series.New([]float64{4, 3, 2, 1}, series.Float, "B"),
		)
		m, err := Assemble(df, MethodPearson)
		require.NoError(t, err)
		got, err := m.Lookup("A", "B")
		require.NoError(t, err)
		assert.InDelta(t, -1.0, got, 1e-12)

		pairs := HighPairs(m, 0.9)
		require.Len(t, pairs, 1)
		assert.Equal(t, "A", pairs[0].ColumnA)
		assert.Equal(t, "B", pairs[0].ColumnB)
		assert.InDelta(t, -1.0, pairs[0].Coefficient, 1e-12)
	})

	t.Run("point-biserial sign flips when binary categories swap", func(t *testing.T) {
		cont := []float64{1, 2, 3, 4, 5, 6}
		df1 := dataframe.New(
			series.New(cont, series.Float, "x"),
			series.New([]float64{0, 0, 0, 1, 1, 1}, series.Float, "flag"),
		)
		df2 := dataframe.New(
			series.New(cont, series.Float, "x"),
			series.New([]float64{1, 1, 1, 0, 0, 0}, series.Float, "flag"),
		)

		m1, err := Assemble(df1, MethodPearson)
		require.NoError(t, err)
		m2, err := Assemble(df2, MethodPearson)
		require.NoError(t, err)

		c1, err := m1.Lookup("x", "flag")
		require.NoError(t, err)
		c2, err := m2.Lookup("x", "flag")
		require.NoError(t, err)

		assert.Positive(t, c1)
		assert.InDelta(t, -c1, c2, 1e-12)
	})

	t.Run("categorical pair uses cramers v", func(t *testing.T) {
		df := dataframe.New(
			series.New([]string{"x", "x", "y", "y"}, series.String, "a"),
			series.New([]string{"u", "u", "v", "v"}, series.String, "b"),
		)
		m, err := Assemble(df, MethodPearson)
		require.NoError(t, err)
		got, err := m.Lookup("a", "b")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-12)
	})

	t.Run("pairwise NA removal", func(t *testing.T) {
		df := dataframe.New(
			series.New([]float64{1, 2, math.NaN(), 4, 5}, series.Float, "x"),
			series.New([]float64{2, 4, 6, 8, 10}, series.Float, "y"),
		)
		m, err := Assemble(df, MethodPearson)
		require.NoError(t, err)
		got, err := m.Lookup("x", "y")
		require.NoError(t, err)
		assert.InDelta(t, 1.0, got, 1e-12)
	})

	t.Run("empty dataframe yields empty matrix", func(t *testing.T) {
		m, err := Assemble(dataframe.DataFrame{}, MethodPearson)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
		assert.Empty(t, HighPairs(m, 0.5))
	})

	t.Run("invalid method fails before computing", func(t *testing.T) {
		_, err := Assemble(mixedFrame(), Method(99))
		assert.Error(t, err)
	})
}

func TestHighPairs(t *testing.T) {
	t.Run("below threshold yields empty result", func(t *testing.T) {
		df := dataframe.New(
			series.New([]float64{1, 2, 3, 4, 5, 6}, series.Float, "x"),
			series.New([]float64{4, 1, 5, 2, 6, 3}, series.Float, "y"),
		)
		m, err := Assemble(df, MethodPearson)
		require.NoError(t, err)
		assert.Empty(t, HighPairs(m, 0.99))
	})

	t.Run("sorted by absolute value descending", func(t *testing.T) {
		m := NewMatrix([]string{"a", "b", "c"})
		m.Sym().SetSym(0, 1, -0.95)
		m.Sym().SetSym(0, 2, 0.8)
		m.Sym().SetSym(1, 2, 0.9)

		pairs := HighPairs(m, 0.7)
		require.Len(t, pairs, 3)
		assert.InDelta(t, -0.95, pairs[0].Coefficient, 1e-12)
		assert.InDelta(t, 0.9, pairs[1].Coefficient, 1e-12)
		assert.InDelta(t, 0.8, pairs[2].Coefficient, 1e-12)
	})

	t.Run("diagonal and duplicates are excluded", func(t *testing.T) {
		m := NewMatrix([]string{"a", "b"})
		m.Sym().SetSym(0, 1, 0.99)
		pairs := HighPairs(m, 0.5)
		require.Len(t, pairs, 1)
		assert.Equal(t, "a", pairs[0].ColumnA)
		assert.Equal(t, "b", pairs[0].ColumnB)
	})
}
