package automl

import (
	"log/slog"
	"math"
	"sort"

	"github.com/YuminosukeSato/scigo/linear"
	"github.com/YuminosukeSato/scigo/metrics"
	"github.com/YuminosukeSato/scigo/sklearn/lightgbm"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// ModelKind is the closed set of model backends the tuner can drive. Each
// kind delegates to the corresponding scigo estimator.
type ModelKind int

const (
	// ModelLinearRegression delegates to scigo's ordinary least squares.
	ModelLinearRegression ModelKind = iota
	// ModelLGBMRegressor delegates to scigo's LightGBM regressor.
	ModelLGBMRegressor
	// ModelLGBMClassifier delegates to scigo's LightGBM classifier.
	ModelLGBMClassifier
)

// String returns the model kind name.
func (k ModelKind) String() string {
	switch k {
	case ModelLinearRegression:
		return "linear_regression"
	case ModelLGBMRegressor:
		return "lgbm_regressor"
	case ModelLGBMClassifier:
		return "lgbm_classifier"
	default:
		return "unknown"
	}
}

var supportedModelKinds = []string{"linear_regression", "lgbm_regressor", "lgbm_classifier"}

// ParseModelKind converts a model kind name into a ModelKind.
func ParseModelKind(s string) (ModelKind, error) {
	switch s {
	case "linear_regression":
		return ModelLinearRegression, nil
	case "lgbm_regressor":
		return ModelLGBMRegressor, nil
	case "lgbm_classifier":
		return ModelLGBMClassifier, nil
	default:
		return 0, errors.NewUnsupportedKindError("automl.ParseModelKind", s, supportedModelKinds)
	}
}

// Metric is the closed set of cross-validation scores.
type Metric int

const (
	// MetricRMSE is root mean squared error (lower is better).
	MetricRMSE Metric = iota
	// MetricMAE is mean absolute error (lower is better).
	MetricMAE
	// MetricR2 is the coefficient of determination (higher is better).
	MetricR2
	// MetricAccuracy is classification accuracy (higher is better).
	MetricAccuracy
)

// String returns the metric name.
func (m Metric) String() string {
	switch m {
	case MetricRMSE:
		return "rmse"
	case MetricMAE:
		return "mae"
	case MetricR2:
		return "r2"
	case MetricAccuracy:
		return "accuracy"
	default:
		return "unknown"
	}
}

var supportedMetrics = []string{"rmse", "mae", "r2", "accuracy"}

// ParseMetric converts a metric name into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch s {
	case "rmse":
		return MetricRMSE, nil
	case "mae":
		return MetricMAE, nil
	case "r2":
		return MetricR2, nil
	case "accuracy":
		return MetricAccuracy, nil
	default:
		return 0, errors.NewUnsupportedKindError("automl.ParseMetric", s, supportedMetrics)
	}
}

// lowerIsBetter reports the optimization direction of a metric.
func lowerIsBetter(m Metric) bool {
	return m == MetricRMSE || m == MetricMAE
}

// Estimator is the surface the tuner needs from a model backend. All scigo
// estimators used here satisfy it.
type Estimator interface {
	Fit(X, y mat.Matrix) error
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// newEstimator builds a fresh backend estimator with the given
// hyperparameters applied. Parameters use Python-style names, which scigo's
// SetParams accepts directly.
func newEstimator(kind ModelKind, params Params) (Estimator, error) {
	switch kind {
	case ModelLinearRegression:
		return linear.NewLinearRegression(), nil
	case ModelLGBMRegressor:
		reg := lightgbm.NewLGBMRegressor()
		if err := reg.SetParams(params); err != nil {
			return nil, errors.Wrap(err, "automl.newEstimator: lgbm_regressor")
		}
		return reg, nil
	case ModelLGBMClassifier:
		clf := lightgbm.NewLGBMClassifier()
		if err := clf.SetParams(params); err != nil {
			return nil, errors.Wrap(err, "automl.newEstimator: lgbm_classifier")
		}
		return clf, nil
	default:
		return nil, errors.NewUnsupportedKindError("automl.newEstimator", kind.String(), supportedModelKinds)
	}
}

// Config configures a tuning run.
type Config struct {
	// Model selects the backend.
	Model ModelKind

	// Metric scores each candidate (direction-aware).
	Metric Metric

	// Space is the search space; nil uses the backend's full eligible schema.
	Space Space

	// Strategy generates candidates (default grid).
	Strategy Strategy

	// MaxTrials caps the number of candidates. Required for random search;
	// zero means unlimited for grid search.
	MaxTrials int

	// CV is the number of cross-validation folds (default 5).
	CV int

	// Seed drives fold shuffling and random sampling.
	Seed uint64
}

// Trial is one evaluated candidate.
type Trial struct {
	Params     Params
	MeanScore  float64
	StdScore   float64
	FoldScores []float64
}

// Result is a finished tuning run: the best trial and the leaderboard,
// sorted best-first in the metric's direction.
type Result struct {
	Model  ModelKind
	Metric Metric
	Best   Trial
	Trials []Trial
}

// Tune runs hyperparameter search with K-fold cross-validation. The two
// kind selectors and the space are validated before any model is trained;
// training and metric failures propagate from scigo unmodified.
func Tune(cfg Config, X, y mat.Matrix) (res *Result, err error) {
	defer errors.Recover(&err, "automl.Tune")

	if _, err := ParseModelKind(cfg.Model.String()); err != nil {
		return nil, err
	}
	if _, err := ParseMetric(cfg.Metric.String()); err != nil {
		return nil, err
	}

	space := cfg.Space
	if space == nil {
		space, err = DefaultSpace(cfg.Model)
		if err != nil {
			return nil, err
		}
	}
	if err := validateSpace(cfg.Model, space); err != nil {
		return nil, err
	}

	candidates, err := Candidates(space, cfg.Strategy, cfg.MaxTrials, cfg.Seed)
	if err != nil {
		return nil, err
	}

	nSamples, _ := X.Dims()
	folds, err := NewKFold(cfg.CV, true, cfg.Seed).Split(nSamples)
	if err != nil {
		return nil, err
	}

	trials := make([]Trial, 0, len(candidates))
	for i, params := range candidates {
		trial, err := runTrial(cfg, params, X, y, folds)
		if err != nil {
			return nil, errors.Wrapf(err, "automl.Tune: trial %d", i)
		}
		slog.Info("automl trial finished",
			"model", cfg.Model.String(),
			"trial", i,
			"metric", cfg.Metric.String(),
			"mean_score", trial.MeanScore,
			"std_score", trial.StdScore,
		)
		trials = append(trials, trial)
	}

	sort.SliceStable(trials, func(a, b int) bool {
		if lowerIsBetter(cfg.Metric) {
			return trials[a].MeanScore < trials[b].MeanScore
		}
		return trials[a].MeanScore > trials[b].MeanScore
	})

	return &Result{
		Model:  cfg.Model,
		Metric: cfg.Metric,
		Best:   trials[0],
		Trials: trials,
	}, nil
}

func runTrial(cfg Config, params Params, X, y mat.Matrix, folds []Fold) (Trial, error) {
	scores := make([]float64, 0, len(folds))
	for _, fold := range folds {
		XTrain, yTrain, err := subset(X, y, fold.TrainIndices)
		if err != nil {
			return Trial{}, err
		}
		XTest, yTest, err := subset(X, y, fold.TestIndices)
		if err != nil {
			return Trial{}, err
		}

		est, err := newEstimator(cfg.Model, params)
		if err != nil {
			return Trial{}, err
		}
		if err := est.Fit(XTrain, yTrain); err != nil {
			return Trial{}, err
		}
		yPred, err := est.Predict(XTest)
		if err != nil {
			return Trial{}, err
		}

		score, err := evaluate(cfg.Metric, yTest, yPred)
		if err != nil {
			return Trial{}, err
		}
		scores = append(scores, score)
	}

	trial := Trial{Params: params, FoldScores: scores}
	trial.MeanScore = stat.Mean(scores, nil)
	if len(scores) > 1 {
		trial.StdScore = stat.StdDev(scores, nil)
	}
	return trial, nil
}

// evaluate scores predictions against the truth with the selected metric.
// Regression metrics delegate to scigo's metrics package.
func evaluate(metric Metric, yTrue, yPred mat.Matrix) (float64, error) {
	t := columnVec(yTrue)
	p := columnVec(yPred)

	switch metric {
	case MetricRMSE:
		return metrics.RMSE(t, p)
	case MetricMAE:
		return metrics.MAE(t, p)
	case MetricR2:
		return metrics.R2Score(t, p)
	case MetricAccuracy:
		n := t.Len()
		if n == 0 || p.Len() != n {
			return 0, errors.NewDimensionError("automl.evaluate", n, p.Len(), 0)
		}
		correct := 0
		for i := 0; i < n; i++ {
			if math.Round(p.AtVec(i)) == t.AtVec(i) {
				correct++
			}
		}
		return float64(correct) / float64(n), nil
	default:
		return 0, errors.NewUnsupportedKindError("automl.evaluate", metric.String(), supportedMetrics)
	}
}

func columnVec(m mat.Matrix) *mat.VecDense {
	r, _ := m.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v
}
