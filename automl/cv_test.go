package automl

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goeda/pkg/errors"
)

func TestKFoldSplit(t *testing.T) {
	t.Run("every index lands in exactly one test set", func(t *testing.T) {
		kf := NewKFold(3, false, 0)
		folds, err := kf.Split(10)
		require.NoError(t, err)
		require.Len(t, folds, 3)

		var all []int
		for _, fold := range folds {
			all = append(all, fold.TestIndices...)
			assert.Len(t, fold.TrainIndices, 10-len(fold.TestIndices))
		}
		sort.Ints(all)
		want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		assert.Equal(t, want, all)
	})

	t.Run("remainder spreads over the leading folds", func(t *testing.T) {
		folds, err := NewKFold(3, false, 0).Split(10)
		require.NoError(t, err)
		assert.Len(t, folds[0].TestIndices, 4)
		assert.Len(t, folds[1].TestIndices, 3)
		assert.Len(t, folds[2].TestIndices, 3)
	})

	t.Run("shuffle is seed deterministic", func(t *testing.T) {
		a, err := NewKFold(4, true, 99).Split(20)
		require.NoError(t, err)
		b, err := NewKFold(4, true, 99).Split(20)
		require.NoError(t, err)
		assert.Equal(t, a, b)

		c, err := NewKFold(4, true, 100).Split(20)
		require.NoError(t, err)
		assert.NotEqual(t, a, c)
	})

	t.Run("train and test never overlap", func(t *testing.T) {
		folds, err := NewKFold(5, true, 1).Split(23)
		require.NoError(t, err)
		for _, fold := range folds {
			inTest := map[int]bool{}
			for _, idx := range fold.TestIndices {
				inTest[idx] = true
			}
			for _, idx := range fold.TrainIndices {
				assert.False(t, inTest[idx])
			}
		}
	})

	t.Run("fewer samples than folds fails", func(t *testing.T) {
		_, err := NewKFold(5, false, 0).Split(3)
		require.Error(t, err)
		var valErr *errors.ValidationError
		assert.True(t, errors.As(err, &valErr))
	})

	t.Run("fewer than two splits falls back to five", func(t *testing.T) {
		kf := NewKFold(1, false, 0)
		assert.Equal(t, 5, kf.NSplits)
	})
}

func TestSubset(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
		7, 8,
	})
	y := mat.NewDense(4, 1, []float64{10, 20, 30, 40})

	t.Run("extracts the selected rows", func(t *testing.T) {
		Xs, ys, err := subset(X, y, []int{3, 0})
		require.NoError(t, err)

		assert.Equal(t, []float64{7, 8}, Xs.RawRowView(0))
		assert.Equal(t, []float64{1, 2}, Xs.RawRowView(1))
		assert.Equal(t, 40.0, ys.At(0, 0))
		assert.Equal(t, 10.0, ys.At(1, 0))
	})

	t.Run("row mismatch fails", func(t *testing.T) {
		short := mat.NewDense(3, 1, []float64{1, 2, 3})
		_, _, err := subset(X, short, []int{0})
		assert.Error(t, err)
	})
}
