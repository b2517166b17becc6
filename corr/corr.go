// Package corr builds mixed-type correlation matrices over gota DataFrames.
// Column pairs are measured with a coefficient chosen from their roles:
// Pearson or Spearman for continuous-continuous, Cramer's V for
// categorical-categorical and point-biserial for continuous-categorical.
// The statistical work is delegated to gonum; rendering to gonum/plot.
package corr

import (
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"

	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// Method selects the coefficient used for continuous-continuous pairs.
type Method int

const (
	// MethodPearson is the Pearson product-moment correlation.
	MethodPearson Method = iota
	// MethodSpearman is the Spearman rank correlation.
	MethodSpearman
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodPearson:
		return "pearson"
	case MethodSpearman:
		return "spearman"
	default:
		return "unknown"
	}
}

// supportedMethods lists the parseable method names.
var supportedMethods = []string{"pearson", "spearman"}

// ParseMethod converts a method name into a Method. Unknown names fail with
// an UnsupportedKindError before any computation.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "pearson":
		return MethodPearson, nil
	case "spearman":
		return MethodSpearman, nil
	default:
		return 0, errors.NewUnsupportedKindError("corr.ParseMethod", s, supportedMethods)
	}
}

// Backend selects the heatmap rendering backend.
type Backend int

const (
	// BackendPlot renders a raster heatmap figure via gonum/plot.
	BackendPlot Backend = iota
	// BackendText renders a plain-text coefficient grid.
	BackendText
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendPlot:
		return "plot"
	case BackendText:
		return "text"
	default:
		return "unknown"
	}
}

var supportedBackends = []string{"plot", "text"}

// ParseBackend converts a backend name into a Backend. Unknown names fail
// with an UnsupportedKindError before any computation.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "plot":
		return BackendPlot, nil
	case "text":
		return BackendText, nil
	default:
		return 0, errors.NewUnsupportedKindError("corr.ParseBackend", s, supportedBackends)
	}
}

// Options configures a correlation analysis.
type Options struct {
	// Method is the continuous-continuous coefficient (default pearson).
	Method Method

	// HighCorrThreshold filters the reported pairs by absolute value.
	HighCorrThreshold float64

	// NoTextThreshold is the column count above which the heatmap stops
	// annotating cells with their values.
	NoTextThreshold int

	// Viz is the rendering backend.
	Viz Backend

	// TextOut receives the output of the text backend (default os.Stdout).
	TextOut io.Writer
}

// DefaultOptions returns the defaults: Pearson, threshold 0.7, annotation
// cut-off at 20 columns, plot backend.
func DefaultOptions() Options {
	return Options{
		Method:            MethodPearson,
		HighCorrThreshold: 0.7,
		NoTextThreshold:   20,
		Viz:               BackendPlot,
		TextOut:           os.Stdout,
	}
}

// Result is the outcome of a correlation analysis. The matrix and the high
// pairs are always computed; Figure is set by the plot backend only.
// Rendering is a side effect and never feeds back into the matrix.
type Result struct {
	Matrix    *Matrix
	HighPairs []HighPair
	Figure    Figure
}

// Analyze classifies columns, assembles the full mixed-type correlation
// matrix, extracts the pairs above the threshold and renders a heatmap with
// the selected backend. The matrix is recomputed from scratch on every call.
func Analyze(df dataframe.DataFrame, opts Options) (*Result, error) {
	if opts.Method != MethodPearson && opts.Method != MethodSpearman {
		return nil, errors.NewUnsupportedKindError("corr.Analyze", opts.Method.String(), supportedMethods)
	}
	renderer, err := newRenderer(opts)
	if err != nil {
		return nil, err
	}

	m, err := Assemble(df, opts.Method)
	if err != nil {
		return nil, err
	}
	pairs := HighPairs(m, opts.HighCorrThreshold)

	if err := renderer.Render(m); err != nil {
		return nil, errors.Wrap(err, "corr.Analyze: rendering failed")
	}

	res := &Result{Matrix: m, HighPairs: pairs}
	if fr, ok := renderer.(*PlotRenderer); ok {
		res.Figure = fr.Figure()
	}
	return res, nil
}

func newRenderer(opts Options) (Renderer, error) {
	switch opts.Viz {
	case BackendPlot:
		return &PlotRenderer{NoTextThreshold: opts.NoTextThreshold}, nil
	case BackendText:
		out := opts.TextOut
		if out == nil {
			out = os.Stdout
		}
		return &TextRenderer{W: out}, nil
	default:
		return nil, errors.NewUnsupportedKindError("corr.Analyze", opts.Viz.String(), supportedBackends)
	}
}
