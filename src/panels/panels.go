// Package panels builds the individual dashboard panels.
//
// Each builder is a pure function of a validated dataset and a theme. It
// returns a model holding every number, label and colour role the panel will
// show; Draw then paints that model onto a canvas. Builders never mutate the
// dataset and panels share no state, so they can be drawn concurrently.
package panels

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iafilius/loadtestcharts/src/dataset"
	"github.com/iafilius/loadtestcharts/src/theme"
)

// Panel is one rendered unit of the dashboard grid.
type Panel interface {
	Kind() string
	Draw(c draw.Canvas) error
}

// Options carries text that accompanies the data but is not derived from it.
type Options struct {
	// ChaosNote is shown under the failure rate of the chaos panel.
	ChaosNote string
}

var (
	ErrUnknownPanel = errors.New("unknown panel kind")
	ErrMissingData  = errors.New("dataset lacks data for panel")
)

// Build returns the panel of the given kind.
func Build(kind string, d *dataset.Dataset, th *theme.Theme, opts Options) (Panel, error) {
	for _, m := range dataset.PanelMetrics(kind) {
		if _, ok := d.Series(m); !ok {
			return nil, errors.Wrapf(ErrMissingData, "%s panel needs the %s series", kind, m)
		}
	}
	switch kind {
	case dataset.PanelThroughput:
		return NewThroughput(d, th), nil
	case dataset.PanelP95Bars:
		return NewP95Bars(d, th), nil
	case dataset.PanelPercentiles:
		return NewPercentiles(d, th), nil
	case dataset.PanelLatencyVsLoad:
		return NewLatencyVsLoad(d, th), nil
	case dataset.PanelSummary:
		return NewSummaryTable(d, th), nil
	case dataset.PanelChaos:
		c, ok := d.Chaos()
		if !ok {
			return nil, errors.Wrap(ErrMissingData, "chaos panel needs a chaos outcome")
		}
		return NewChaos(c, th, opts.ChaosNote), nil
	}
	return nil, errors.Wrapf(ErrUnknownPanel, "%q", kind)
}

// BarMark is one bar: its category position, exact height, annotation and colour.
type BarMark struct {
	Scenario string
	X        float64
	Value    float64
	Label    string
	Role     theme.Role
}

// categoryWidth approximates the width of one category slot on the data area.
func categoryWidth(c draw.Canvas, n int) vg.Length {
	w := c.Max.X - c.Min.X - vg.Points(70)
	if n < 1 {
		n = 1
	}
	if w <= 0 {
		w = vg.Points(100)
	}
	return w / vg.Length(n)
}

func outline(th *theme.Theme) draw.LineStyle {
	return draw.LineStyle{Color: th.Color(theme.Border), Width: vg.Points(0.8)}
}

// newLabels places one text per point using the given style and offset.
func newLabels(xs, ys []float64, texts []string, sty text.Style, off vg.Point) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i] = sty
	}
	l.Offset = off
	return l, nil
}

// headroom scales the largest value so labels drawn above it fit.
func headroom(max, factor float64) float64 {
	y := max * factor
	if y <= 0 {
		return 1
	}
	return y
}
