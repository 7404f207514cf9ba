package panels

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iafilius/loadtestcharts/src/dataset"
	"github.com/iafilius/loadtestcharts/src/theme"
)

const barsHeadroom = 1.22

// MetricBars is one bar per scenario for a single series, coloured by
// ordinal severity.
type MetricBars struct {
	Title  string
	YLabel string
	YMax   float64
	Bars   []BarMark

	kind  string
	ticks plot.ConstantTicks
	th    *theme.Theme
}

// NewThroughput charts requests per second per scenario.
func NewThroughput(d *dataset.Dataset, th *theme.Theme) *MetricBars {
	return newMetricBars(dataset.PanelThroughput, "Throughput  (req/s)", "req/s",
		d.MustSeries(dataset.Throughput), FormatThousands, d, th)
}

// NewP95Bars charts p95 latency per scenario.
func NewP95Bars(d *dataset.Dataset, th *theme.Theme) *MetricBars {
	return newMetricBars(dataset.PanelP95Bars, "p95 Latency by Stage  (ms)", "ms",
		d.MustSeries(dataset.LatencyP95), fixed(1), d, th)
}

func newMetricBars(kind, title, ylabel string, s dataset.MetricSeries, format func(float64) string,
	d *dataset.Dataset, th *theme.Theme) *MetricBars {
	t := &MetricBars{
		Title:  title,
		YLabel: ylabel,
		YMax:   headroom(s.Max(), barsHeadroom),
		kind:   kind,
		ticks:  scenarioTicks(d),
		th:     th,
	}
	for i := 0; i < s.Len(); i++ {
		v := s.Value(i)
		t.Bars = append(t.Bars, BarMark{
			Scenario: d.Scenario(i).Label,
			X:        float64(i),
			Value:    v,
			Label:    format(v),
			Role:     OrdinalSeverity(i, s.Len()).Role(),
		})
	}
	return t
}

func (t *MetricBars) Kind() string { return t.kind }

func (t *MetricBars) Draw(c draw.Canvas) error {
	th := t.th
	p := th.NewPlot(t.Title)
	th.AddGrid(p)
	p.Y.Label.Text = t.YLabel
	p.X.Tick.Marker = t.ticks
	p.Y.Tick.Marker = niceTicker{n: 6}

	w := categoryWidth(c, len(t.Bars)) * 0.5
	xs := make([]float64, len(t.Bars))
	ys := make([]float64, len(t.Bars))
	texts := make([]string, len(t.Bars))
	for i, b := range t.Bars {
		bc, err := plotter.NewBarChart(plotter.Values{b.Value}, w)
		if err != nil {
			return err
		}
		bc.XMin = b.X
		bc.Color = th.Color(b.Role)
		bc.LineStyle = outline(th)
		p.Add(bc)
		xs[i], ys[i], texts[i] = b.X, b.Value, b.Label
	}
	sty := th.Text(theme.PrimaryText, theme.ValueSize, true)
	sty.YAlign = draw.YBottom
	labels, err := newLabels(xs, ys, texts, sty, vg.Point{Y: vg.Points(3)})
	if err != nil {
		return err
	}
	p.Add(labels)

	p.X.Min, p.X.Max = -0.5, float64(len(t.Bars))-0.5
	p.Y.Min, p.Y.Max = 0, t.YMax
	p.Draw(c)
	return nil
}
