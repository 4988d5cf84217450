package report

import (
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/gaussnb/pkg/errors"
	"github.com/YuminosukeSato/gaussnb/sklearn/naive_bayes"
)

// densitySamples is the number of points each density curve is drawn with.
const densitySamples = 200

// PlotDensities draws the fitted Gaussian density of one attribute for every
// class of m. The x range covers four standard deviations around every class
// mean.
func PlotDensities(m *naive_bayes.GaussianModel, attribute int, attributeName string) (*plot.Plot, error) {
	if attribute < 0 || attribute >= m.NFeatures() {
		return nil, errors.NewValidationError("attribute", "out of range", attribute)
	}

	theta, variance := m.Theta(), m.Variance()
	classes := m.Classes()

	p := plot.New()
	p.Title.Text = "Class densities of " + attributeName
	p.X.Label.Text = attributeName
	p.Y.Label.Text = "density"
	p.Legend.Top = true

	xMin, xMax := math.Inf(1), math.Inf(-1)
	for c, class := range classes {
		mean := theta.At(c, attribute)
		v := variance.At(c, attribute)
		sd := math.Sqrt(v)
		xMin = math.Min(xMin, mean-4*sd)
		xMax = math.Max(xMax, mean+4*sd)

		f := plotter.NewFunction(func(x float64) float64 {
			return naive_bayes.PDF(mean, v, x)
		})
		f.Samples = densitySamples
		f.Color = plotutil.Color(c)
		f.Dashes = plotutil.Dashes(c)
		f.Width = vg.Points(1.5)

		p.Add(f)
		p.Legend.Add(class, f)
	}
	p.X.Min, p.X.Max = xMin, xMax
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	return p, nil
}

// WriteDensities renders PlotDensities to w. format is one of the gonum/plot
// formats, e.g. "png" or "svg"; width and height are in centimetres.
func WriteDensities(w io.Writer, m *naive_bayes.GaussianModel, attribute int, attributeName string, format string, width, height float64) error {
	p, err := PlotDensities(m, attribute, attributeName)
	if err != nil {
		return err
	}

	wt, err := p.WriterTo(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter, format)
	if err != nil {
		return errors.Wrapf(err, "unsupported plot format %q", format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "failed to write plot")
	}
	return nil
}

// SaveDensities writes PlotDensities to path; the extension picks the format.
func SaveDensities(path string, m *naive_bayes.GaussianModel, attribute int, attributeName string, width, height float64) error {
	p, err := PlotDensities(m, attribute, attributeName)
	if err != nil {
		return err
	}
	if err := p.Save(vg.Length(width)*vg.Centimeter, vg.Length(height)*vg.Centimeter, path); err != nil {
		return errors.Wrapf(err, "failed to save plot to %s", path)
	}
	return nil
}
