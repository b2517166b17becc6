package corr

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// Figure is the renderable handle produced by the plot backend.
type Figure = *plot.Plot

// Renderer renders an assembled correlation matrix. Rendering is a
// side-effecting sink; it never alters the matrix.
type Renderer interface {
	Render(m *Matrix) error
}

// PlotRenderer draws a square heatmap with gonum/plot using a diverging
// blue-white-red palette anchored at [-1, 1]. Cells are annotated with their
// coefficients unless the matrix is wider than NoTextThreshold columns.
type PlotRenderer struct {
	// NoTextThreshold is the column count above which cell annotations are
	// suppressed for readability.
	NoTextThreshold int

	figure *plot.Plot
}

// Figure returns the figure produced by the last Render call.
func (r *PlotRenderer) Figure() Figure { return r.figure }

// Render builds the heatmap figure for m.
func (r *PlotRenderer) Render(m *Matrix) (err error) {
	defer errors.Recover(&err, "corr.PlotRenderer.Render")

	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)

	hm := plotter.NewHeatMap(matrixGrid{m}, cm.Palette(255))
	hm.Min = -1
	hm.Max = 1

	p := plot.New()
	p.Title.Text = "Correlation matrix"
	p.Add(hm)
	p.NominalX(m.Names()...)
	p.NominalY(m.Names()...)

	if m.Len() <= r.NoTextThreshold {
		labels, err := cellLabels(m)
		if err != nil {
			return err
		}
		p.Add(labels)
	}

	r.figure = p
	return nil
}

func cellLabels(m *Matrix) (*plotter.Labels, error) {
	n := m.Len()
	xyl := plotter.XYLabels{
		XYs:    make(plotter.XYs, 0, n*n),
		Labels: make([]string, 0, n*n),
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			xyl.XYs = append(xyl.XYs, plotter.XY{X: float64(j), Y: float64(i)})
			xyl.Labels = append(xyl.Labels, fmt.Sprintf("%.2f", m.At(i, j)))
		}
	}
	return plotter.NewLabels(xyl)
}

// matrixGrid adapts a Matrix to the plotter.GridXYZ interface. Row i of the
// matrix maps to heatmap row i, bottom-up.
type matrixGrid struct {
	m *Matrix
}

func (g matrixGrid) Dims() (c, r int)   { return g.m.Len(), g.m.Len() }
func (g matrixGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g matrixGrid) X(c int) float64    { return float64(c) }
func (g matrixGrid) Y(r int) float64    { return float64(r) }

// TextRenderer writes the coefficient grid as an aligned plain-text table.
// It is the second interchangeable backend; callers that only need numbers
// on a terminal use it instead of the raster figure.
type TextRenderer struct {
	W io.Writer
}

// Render writes the matrix to the configured writer.
func (r *TextRenderer) Render(m *Matrix) error {
	tw := tabwriter.NewWriter(r.W, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprint(tw, "\t"); err != nil {
		return err
	}
	for _, name := range m.Names() {
		if _, err := fmt.Fprintf(tw, "%s\t", name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(tw); err != nil {
		return err
	}

	for i, name := range m.Names() {
		if _, err := fmt.Fprintf(tw, "%s\t", name); err != nil {
			return err
		}
		for j := range m.Names() {
			if _, err := fmt.Fprintf(tw, "%.3f\t", m.At(i, j)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(tw); err != nil {
			return err
		}
	}
	return tw.Flush()
}
