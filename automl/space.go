// Package automl wraps hyperparameter search over scigo estimators. It owns
// no learning algorithm: model fitting is delegated to the scigo library and
// scoring to its metrics package; this package generates candidates,
// validates them against per-backend schemas and runs cross-validation.
package automl

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"

	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// Domain describes the admissible values of one hyperparameter.
type Domain interface {
	// Sample draws one value uniformly (in the domain's own scale).
	Sample(rng *rand.Rand) interface{}

	// GridValues enumerates representative values for grid search.
	GridValues() []interface{}

	// Validate checks a concrete value against the domain.
	Validate(v interface{}) error
}

// gridPoints is how many values a continuous domain contributes to a grid.
const gridPoints = 3

// Uniform is a real-valued domain sampled uniformly on [Low, High].
type Uniform struct {
	Low, High float64
}

func (d Uniform) Sample(rng *rand.Rand) interface{} {
	return d.Low + rng.Float64()*(d.High-d.Low)
}

func (d Uniform) GridValues() []interface{} {
	vals := make([]interface{}, gridPoints)
	for i := 0; i < gridPoints; i++ {
		vals[i] = d.Low + (d.High-d.Low)*float64(i)/float64(gridPoints-1)
	}
	return vals
}

func (d Uniform) Validate(v interface{}) error {
	f, ok := toFloat(v)
	if !ok || f < d.Low || f > d.High {
		return errors.Newf("value %v outside uniform domain [%g, %g]", v, d.Low, d.High)
	}
	return nil
}

// LogUniform is a real-valued domain sampled uniformly in log scale on
// [Low, High]. Both bounds must be positive.
type LogUniform struct {
	Low, High float64
}

func (d LogUniform) Sample(rng *rand.Rand) interface{} {
	lo, hi := math.Log(d.Low), math.Log(d.High)
	return math.Exp(lo + rng.Float64()*(hi-lo))
}

func (d LogUniform) GridValues() []interface{} {
	lo, hi := math.Log(d.Low), math.Log(d.High)
	vals := make([]interface{}, gridPoints)
	for i := 0; i < gridPoints; i++ {
		vals[i] = math.Exp(lo + (hi-lo)*float64(i)/float64(gridPoints-1))
	}
	return vals
}

func (d LogUniform) Validate(v interface{}) error {
	f, ok := toFloat(v)
	if !ok || f < d.Low || f > d.High {
		return errors.Newf("value %v outside log-uniform domain [%g, %g]", v, d.Low, d.High)
	}
	return nil
}

// IntUniform is an integer domain sampled uniformly on [Low, High].
type IntUniform struct {
	Low, High int
}

func (d IntUniform) Sample(rng *rand.Rand) interface{} {
	return d.Low + rng.IntN(d.High-d.Low+1)
}

func (d IntUniform) GridValues() []interface{} {
	if d.High-d.Low+1 <= gridPoints {
		vals := make([]interface{}, 0, d.High-d.Low+1)
		for v := d.Low; v <= d.High; v++ {
			vals = append(vals, v)
		}
		return vals
	}
	vals := make([]interface{}, gridPoints)
	for i := 0; i < gridPoints; i++ {
		vals[i] = d.Low + (d.High-d.Low)*i/(gridPoints-1)
	}
	return vals
}

func (d IntUniform) Validate(v interface{}) error {
	i, ok := toInt(v)
	if !ok || i < d.Low || i > d.High {
		return errors.Newf("value %v outside integer domain [%d, %d]", v, d.Low, d.High)
	}
	return nil
}

// Choice is a closed set of admissible values.
type Choice struct {
	Values []interface{}
}

func (d Choice) Sample(rng *rand.Rand) interface{} {
	return d.Values[rng.IntN(len(d.Values))]
}

func (d Choice) GridValues() []interface{} {
	return append([]interface{}(nil), d.Values...)
}

func (d Choice) Validate(v interface{}) error {
	for _, c := range d.Values {
		if c == v {
			return nil
		}
	}
	return errors.Newf("value %v not among choices %v", v, d.Values)
}

// Space maps hyperparameter names (Python-style, as scigo's SetParams
// expects them) to their domains.
type Space map[string]Domain

// names returns the parameter names in deterministic order.
func (s Space) names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Params is one concrete hyperparameter assignment.
type Params map[string]interface{}

// eligibleParams is the closed per-backend schema of tunable parameters.
// Anything outside it is rejected at the boundary before training starts.
var eligibleParams = map[ModelKind]Space{
	ModelLinearRegression: {
		// Ordinary least squares exposes nothing worth searching over.
	},
	ModelLGBMRegressor:  lgbmSpace(),
	ModelLGBMClassifier: lgbmSpace(),
}

func lgbmSpace() Space {
	return Space{
		"num_leaves":        IntUniform{Low: 8, High: 256},
		"max_depth":         Choice{Values: []interface{}{-1, 3, 5, 7, 9}},
		"learning_rate":     LogUniform{Low: 1e-3, High: 0.3},
		"n_estimators":      IntUniform{Low: 50, High: 500},
		"min_child_samples": IntUniform{Low: 5, High: 100},
		"subsample":         Uniform{Low: 0.5, High: 1.0},
		"colsample_bytree":  Uniform{Low: 0.5, High: 1.0},
		"reg_alpha":         LogUniform{Low: 1e-8, High: 10.0},
		"reg_lambda":        LogUniform{Low: 1e-8, High: 10.0},
	}
}

// EligibleParams returns a copy of the schema for a backend.
func EligibleParams(kind ModelKind) (Space, error) {
	schema, ok := eligibleParams[kind]
	if !ok {
		return nil, errors.NewUnsupportedKindError("automl.EligibleParams", kind.String(), supportedModelKinds)
	}
	out := make(Space, len(schema))
	for k, v := range schema {
		out[k] = v
	}
	return out, nil
}

// DefaultSpace returns the full eligible schema as the search space.
func DefaultSpace(kind ModelKind) (Space, error) {
	return EligibleParams(kind)
}

// validateSpace rejects spaces referencing parameters a backend does not
// accept. The search domains themselves are the caller's choice; only the
// names are schema-checked.
func validateSpace(kind ModelKind, space Space) error {
	schema, ok := eligibleParams[kind]
	if !ok {
		return errors.NewUnsupportedKindError("automl.validateSpace", kind.String(), supportedModelKinds)
	}
	for name := range space {
		if _, ok := schema[name]; !ok {
			return errors.NewValidationError(name,
				fmt.Sprintf("not an eligible hyperparameter for %s", kind), space[name])
		}
	}
	return nil
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	default:
		return 0, false
	}
}

func toInt(v interface{}) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case float64:
		if x == math.Trunc(x) {
			return int(x), true
		}
		return 0, false
	default:
		return 0, false
	}
}
