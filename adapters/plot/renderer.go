// Package plot renders plot specs to PNG files with gonum/plot. The
// analysis core never imports this package; it is wired in behind
// ports.PlotRenderer.
package plot

import (
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"statreport/domain/analysis"
	"statreport/domain/dataset"
	"statreport/internal/errors"
)

const histogramBins = 30

// Renderer draws histograms and correlation heat maps.
type Renderer struct{}

// NewRenderer creates a gonum/plot renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render materializes every plot spec in the report into dir, returning the
// written file paths in spec order.
func (r *Renderer) Render(ds *dataset.Dataset, report *analysis.Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(errors.Newf(errors.CodeRender, "%v", err), "failed to create plot directory %s", dir)
	}

	var paths []string
	for _, spec := range report.Plots {
		path := filepath.Join(dir, spec.Filename)
		var err error
		switch spec.Kind {
		case analysis.PlotHistogram:
			err = r.renderHistogram(ds, spec.Columns[0], path)
		case analysis.PlotHeatmap:
			err = r.renderHeatmap(report.Correlations, path)
		default:
			err = errors.Newf(errors.CodeRender, "unknown plot kind %q", spec.Kind)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to render %s", spec.Filename)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (r *Renderer) renderHistogram(ds *dataset.Dataset, column, path string) error {
	col, ok := ds.Column(column)
	if !ok {
		return errors.ColumnNotFound(column)
	}

	p := plot.New()
	p.Title.Text = "Distribution of " + column
	p.X.Label.Text = column
	p.Y.Label.Text = "Frequency"

	h, err := plotter.NewHist(plotter.Values(col.NonMissing()), histogramBins)
	if err != nil {
		return errors.Newf(errors.CodeRender, "histogram for %q: %v", column, err)
	}
	p.Add(h)

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Newf(errors.CodeRender, "save %s: %v", path, err)
	}
	return nil
}

func (r *Renderer) renderHeatmap(m analysis.CorrelationMatrix, path string) error {
	p := plot.New()
	p.Title.Text = "Correlation Heatmap"

	hm := plotter.NewHeatMap(corrGrid{m: m}, moreland.SmoothBlueRed().Palette(255))
	hm.Min, hm.Max = -1, 1
	p.Add(hm)

	ticks := columnTicks(m.Columns)
	p.X.Tick.Marker = ticks
	p.Y.Tick.Marker = ticks
	p.X.Tick.Label.Rotation = math.Pi / 4

	if err := p.Save(10*vg.Inch, 8*vg.Inch, path); err != nil {
		return errors.Newf(errors.CodeRender, "save %s: %v", path, err)
	}
	return nil
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ. Undefined pairs
// render as the neutral midpoint.
type corrGrid struct {
	m analysis.CorrelationMatrix
}

func (g corrGrid) Dims() (int, int) {
	n := len(g.m.Columns)
	return n, n
}

func (g corrGrid) Z(c, r int) float64 {
	v := g.m.At(g.m.Columns[c], g.m.Columns[r])
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// columnTicks labels heat map cells with their column names.
type columnTicks []string

func (t columnTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for i, name := range t {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: name})
	}
	return ticks
}
