package corr

import (
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goeda/dataset"
	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// Matrix is a square, symmetric correlation matrix with unit diagonal,
// indexed by column name on both axes. Symmetry is enforced structurally by
// the backing gonum SymDense: each unordered pair is stored once.
type Matrix struct {
	names []string
	index map[string]int
	data  *mat.SymDense
}

// NewMatrix creates an identity-diagonal matrix for the given column names.
func NewMatrix(names []string) *Matrix {
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	// gonum rejects zero-sized matrices; an empty Matrix never dereferences
	// its backing storage.
	if len(names) == 0 {
		return &Matrix{names: names, index: index}
	}
	data := mat.NewSymDense(len(names), nil)
	for i := range names {
		data.SetSym(i, i, 1.0)
	}
	return &Matrix{names: names, index: index, data: data}
}

// Names returns the column names in axis order.
func (m *Matrix) Names() []string { return m.names }

// Len returns the number of columns.
func (m *Matrix) Len() int { return len(m.names) }

// At returns the coefficient at positions (i, j).
func (m *Matrix) At(i, j int) float64 { return m.data.At(i, j) }

// Lookup returns the coefficient for a pair of column names.
func (m *Matrix) Lookup(a, b string) (float64, error) {
	i, ok := m.index[a]
	if !ok {
		return 0, errors.Wrapf(errors.ErrColumnNotFound, "corr.Matrix.Lookup: column '%s'", a)
	}
	j, ok := m.index[b]
	if !ok {
		return 0, errors.Wrapf(errors.ErrColumnNotFound, "corr.Matrix.Lookup: column '%s'", b)
	}
	return m.data.At(i, j), nil
}

// Sym exposes the underlying symmetric matrix.
func (m *Matrix) Sym() *mat.SymDense { return m.data }

// Assemble fills the full n x n coefficient matrix for df. Each unordered
// pair is computed once with the coefficient matching the pair's column
// roles; the diagonal is fixed at 1.0.
func Assemble(df dataframe.DataFrame, method Method) (m *Matrix, err error) {
	defer errors.Recover(&err, "corr.Assemble")

	if method != MethodPearson && method != MethodSpearman {
		return nil, errors.NewUnsupportedKindError("corr.Assemble", method.String(), supportedMethods)
	}

	names := df.Names()
	m = NewMatrix(names)
	if len(names) == 0 {
		return m, nil
	}

	roles := make([]dataset.ColumnRole, len(names))
	values := make([][]float64, len(names)) // continuous values or categorical codes
	for i, name := range names {
		s := df.Col(name)
		roles[i] = dataset.ClassifyColumn(s)
		if roles[i] == dataset.RoleContinuous {
			values[i] = dataset.NumericValues(s)
		} else {
			values[i], _ = dataset.CategoryCodes(s)
		}
	}

	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			var c float64
			switch {
			case roles[i] == dataset.RoleContinuous && roles[j] == dataset.RoleContinuous:
				c = continuousCorr(values[i], values[j], method)
			case roles[i] == dataset.RoleCategorical && roles[j] == dataset.RoleCategorical:
				c, err = cramerV(df.Col(names[i]), df.Col(names[j]))
				if err != nil {
					return nil, err
				}
			case roles[i] == dataset.RoleContinuous:
				c = pointBiserial(values[i], values[j])
			default:
				c = pointBiserial(values[j], values[i])
			}
			m.data.SetSym(i, j, c)
		}
	}
	return m, nil
}

// HighPair reports one unordered column pair whose coefficient exceeds the
// threshold in absolute value.
type HighPair struct {
	ColumnA     string
	ColumnB     string
	Coefficient float64
}

// HighPairs walks the strictly-lower triangle of m (skipping the diagonal
// and the symmetric duplicates), keeps the entries with |coefficient| above
// threshold and sorts them by absolute value, descending. Ties keep the
// traversal order.
func HighPairs(m *Matrix, threshold float64) []HighPair {
	pairs := []HighPair{}
	for i := 1; i < m.Len(); i++ {
		for j := 0; j < i; j++ {
			v := m.At(i, j)
			if math.Abs(v) > threshold {
				pairs = append(pairs, HighPair{
					ColumnA:     m.names[j],
					ColumnB:     m.names[i],
					Coefficient: v,
				})
			}
		}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return math.Abs(pairs[a].Coefficient) > math.Abs(pairs[b].Coefficient)
	})
	return pairs
}
