package corr

import (
	"math"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/goeda/pkg/errors"
)

func TestContinuousCorr(t *testing.T) {
	t.Run("pearson matches gonum", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 5}
		y := []float64{2, 1, 4, 3, 5}
		got := continuousCorr(x, y, MethodPearson)
		assert.InDelta(t, stat.Correlation(x, y, nil), got, 1e-12)
	})

	t.Run("spearman ignores monotone transforms", func(t *testing.T) {
		x := []float64{1, 2, 3, 4, 5}
		y := []float64{math.Exp(1), math.Exp(2), math.Exp(3), math.Exp(4), math.Exp(5)}
		got := continuousCorr(x, y, MethodSpearman)
		assert.InDelta(t, 1.0, got, 1e-12)
	})

	t.Run("zero variance yields NaN", func(t *testing.T) {
		x := []float64{1, 2, 3}
		y := []float64{5, 5, 5}
		assert.True(t, math.IsNaN(continuousCorr(x, y, MethodPearson)))
	})
}

func TestCramerV(t *testing.T) {
	t.Run("perfect association is one", func(t *testing.T) {
		a := series.New([]string{"x", "x", "y", "y"}, series.String, "a")
		b := series.New([]string{"u", "u", "v", "v"}, series.String, "b")
		v, err := cramerV(a, b)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, v, 1e-12)
	})

	t.Run("independence is near zero", func(t *testing.T) {
		a := series.New([]string{"x", "x", "y", "y"}, series.String, "a")
		b := series.New([]string{"u", "v", "u", "v"}, series.String, "b")
		v, err := cramerV(a, b)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, v, 1e-12)
	})

	t.Run("degenerate column warns and yields zero", func(t *testing.T) {
		var captured []error
		errors.SetWarningHandler(func(w error) { captured = append(captured, w) })
		defer errors.SetWarningHandler(nil)

		a := series.New([]string{"x", "x", "x"}, series.String, "a")
		b := series.New([]string{"u", "v", "u"}, series.String, "b")
		v, err := cramerV(a, b)
		require.NoError(t, err)
		assert.Equal(t, 0.0, v)
		require.Len(t, captured, 1)
		var warn *errors.DegenerateColumnWarning
		assert.True(t, errors.As(captured[0], &warn))
		assert.Equal(t, "a", warn.Column)
	})

	t.Run("vanished marginal shrinks the effective dimensions", func(t *testing.T) {
		// The "z" level only pairs with a missing b value, so the effective
		// table is 2x3 and the min dimension is 2, not 3.
		a := series.New([]string{"x", "x", "y", "y", "y", "z"}, series.String, "a")
		b := series.New([]float64{1, 1, 2, 3, 3, math.NaN()}, series.Float, "b")
		v, err := cramerV(a, b)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, v, 1e-12)
	})

	t.Run("single effective level after NA removal warns", func(t *testing.T) {
		var captured []error
		errors.SetWarningHandler(func(w error) { captured = append(captured, w) })
		defer errors.SetWarningHandler(nil)

		a := series.New([]string{"x", "x", "y"}, series.String, "a")
		b := series.New([]float64{1, 2, math.NaN()}, series.Float, "b")
		v, err := cramerV(a, b)
		require.NoError(t, err)
		assert.Equal(t, 0.0, v)
		require.Len(t, captured, 1)
		var warn *errors.DegenerateColumnWarning
		require.True(t, errors.As(captured[0], &warn))
		assert.Equal(t, "a", warn.Column)
	})

	t.Run("length mismatch fails", func(t *testing.T) {
		a := series.New([]string{"x"}, series.String, "a")
		b := series.New([]string{"u", "v"}, series.String, "b")
		_, err := cramerV(a, b)
		assert.Error(t, err)
	})
}

func TestRanks(t *testing.T) {
	t.Run("distinct values", func(t *testing.T) {
		got := ranks([]float64{30, 10, 20})
		assert.Equal(t, []float64{3, 1, 2}, got)
	})

	t.Run("ties get fractional ranks", func(t *testing.T) {
		got := ranks([]float64{10, 20, 20, 30})
		assert.Equal(t, []float64{1, 2.5, 2.5, 4}, got)
	})

	t.Run("all equal", func(t *testing.T) {
		got := ranks([]float64{7, 7, 7})
		assert.Equal(t, []float64{2, 2, 2}, got)
	})
}
