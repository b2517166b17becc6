// Package preprocessing provides encoders that turn gota DataFrames into
// numeric matrices for the automl package and for scigo estimators.
package preprocessing

import (
	"fmt"

	"github.com/YuminosukeSato/scigo/core/model"
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/goeda/dataset"
	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// DropStrategy controls how many indicator columns a category produces.
type DropStrategy int

const (
	// DropNone emits one indicator per observed category.
	DropNone DropStrategy = iota
	// DropFirst drops the first category of every encoded column (k-1
	// dummies), the standard dummy-trap avoidance. A binary column then
	// collapses to a single indicator.
	DropFirst
)

// highCardinalityLimit is the advisory level count above which Fit warns.
const highCardinalityLimit = 50

// OneHotEncoder expands categorical columns into indicator columns.
//
// Categories are learned at Fit time in sorted level order, so the
// generated feature layout is deterministic for a given dataset. Values not
// seen during Fit cause Transform to fail; missing values encode as an
// all-zero indicator block.
type OneHotEncoder struct {
	model.BaseEstimator

	// Drop selects the dummy-trap handling (default DropNone).
	Drop DropStrategy

	// Columns are the encoded columns, fixed at Fit.
	Columns []string

	// Categories maps each encoded column to its learned levels.
	Categories map[string][]string

	featureNames []string
}

// NewOneHotEncoder creates a OneHotEncoder with the given drop strategy.
func NewOneHotEncoder(drop DropStrategy) *OneHotEncoder {
	return &OneHotEncoder{Drop: drop}
}

// Fit learns the categories of the given columns. A nil or empty column list
// selects every categorical column of df (per the column-role classifier).
func (enc *OneHotEncoder) Fit(df dataframe.DataFrame, columns []string) error {
	if df.Nrow() == 0 || df.Ncol() == 0 {
		return errors.Wrap(errors.ErrEmptyData, "OneHotEncoder.Fit")
	}
	if len(columns) == 0 {
		_, columns = dataset.SplitColumns(df)
	}

	categories := make(map[string][]string, len(columns))
	featureNames := []string{}
	for _, col := range columns {
		if !dataset.HasColumn(df, col) {
			return errors.Wrapf(errors.ErrColumnNotFound, "OneHotEncoder.Fit: column '%s'", col)
		}
		levels := dataset.Levels(df.Col(col))
		if len(levels) == 0 {
			return errors.NewValueError("OneHotEncoder.Fit", fmt.Sprintf("column '%s' has no observed values", col))
		}
		if len(levels) > highCardinalityLimit {
			errors.Warn(errors.NewHighCardinalityWarning(col, len(levels), highCardinalityLimit))
		}
		categories[col] = levels

		start := 0
		if enc.Drop == DropFirst {
			start = 1
		}
		for _, level := range levels[start:] {
			featureNames = append(featureNames, col+"_"+level)
		}
	}
	// Under DropFirst a single-level column contributes no indicators; a fit
	// producing zero features could never transform anything.
	if len(featureNames) == 0 {
		return errors.NewValueError("OneHotEncoder.Fit",
			"no indicator columns would be generated; every selected column has a single observed level under DropFirst")
	}

	enc.Columns = append([]string(nil), columns...)
	enc.Categories = categories
	enc.featureNames = featureNames
	enc.SetFitted()
	return nil
}

// Transform encodes df's fitted columns into a dense indicator matrix. The
// second return value names the generated features in column order.
func (enc *OneHotEncoder) Transform(df dataframe.DataFrame) (*mat.Dense, []string, error) {
	if !enc.IsFitted() {
		return nil, nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	if df.Nrow() == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "OneHotEncoder.Transform")
	}

	rows := df.Nrow()
	out := mat.NewDense(rows, len(enc.featureNames), nil)

	offset := 0
	for _, col := range enc.Columns {
		if !dataset.HasColumn(df, col) {
			return nil, nil, errors.Wrapf(errors.ErrColumnNotFound, "OneHotEncoder.Transform: column '%s'", col)
		}
		levels := enc.Categories[col]
		index := make(map[string]int, len(levels))
		for i, l := range levels {
			index[l] = i
		}
		start := 0
		if enc.Drop == DropFirst {
			start = 1
		}
		width := len(levels) - start

		s := df.Col(col)
		for i := 0; i < rows; i++ {
			e := s.Elem(i)
			if e.IsNA() {
				continue // all-zero block
			}
			code, ok := index[e.String()]
			if !ok {
				return nil, nil, errors.NewValueError("OneHotEncoder.Transform",
					fmt.Sprintf("column '%s' contains unknown category '%s'", col, e.String()))
			}
			if code >= start {
				out.Set(i, offset+code-start, 1)
			}
		}
		offset += width
	}

	return out, append([]string(nil), enc.featureNames...), nil
}

// FitTransform fits on df and transforms it in one call.
func (enc *OneHotEncoder) FitTransform(df dataframe.DataFrame, columns []string) (*mat.Dense, []string, error) {
	if err := enc.Fit(df, columns); err != nil {
		return nil, nil, err
	}
	return enc.Transform(df)
}

// FeatureNames returns the generated feature names in column order.
func (enc *OneHotEncoder) FeatureNames() []string {
	return append([]string(nil), enc.featureNames...)
}
