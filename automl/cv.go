package automl

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// Fold is one train/test index split.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// KFold splits sample indices into k folds, optionally shuffled with a
// fixed seed. Every index appears in exactly one test set.
type KFold struct {
	NSplits int
	Shuffle bool
	Seed    uint64
}

// NewKFold creates a k-fold splitter. Fewer than two splits falls back to
// the default of five.
func NewKFold(nSplits int, shuffle bool, seed uint64) *KFold {
	if nSplits < 2 {
		nSplits = 5
	}
	return &KFold{NSplits: nSplits, Shuffle: shuffle, Seed: seed}
}

// Split generates the folds for n samples. The first n % NSplits folds
// receive one extra test sample so the whole index range is covered. Fewer
// samples than folds would leave empty test sets, so that is rejected.
func (kf *KFold) Split(n int) ([]Fold, error) {
	if n < kf.NSplits {
		return nil, errors.NewValidationError("cv",
			fmt.Sprintf("cannot split %d samples into %d folds", n, kf.NSplits), kf.NSplits)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		rng := rand.New(rand.NewPCG(kf.Seed, kf.Seed))
		rng.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	foldSize := n / kf.NSplits
	remainder := n % kf.NSplits

	folds := make([]Fold, 0, kf.NSplits)
	start := 0
	for f := 0; f < kf.NSplits; f++ {
		size := foldSize
		if f < remainder {
			size++
		}
		end := start + size

		test := append([]int(nil), indices[start:end]...)
		train := make([]int, 0, n-size)
		train = append(train, indices[:start]...)
		train = append(train, indices[end:]...)

		folds = append(folds, Fold{TrainIndices: train, TestIndices: test})
		start = end
	}
	return folds, nil
}

// subset extracts the rows of X and y at the given indices.
func subset(X, y mat.Matrix, indices []int) (*mat.Dense, *mat.Dense, error) {
	xr, xc := X.Dims()
	yr, _ := y.Dims()
	if xr != yr {
		return nil, nil, errors.NewDimensionError("automl.subset", xr, yr, 0)
	}

	Xs := mat.NewDense(len(indices), xc, nil)
	ys := mat.NewDense(len(indices), 1, nil)
	for r, idx := range indices {
		for c := 0; c < xc; c++ {
			Xs.Set(r, c, X.At(idx, c))
		}
		ys.Set(r, 0, y.At(idx, 0))
	}
	return Xs, ys, nil
}
