package panels

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iafilius/loadtestcharts/src/dataset"
	"github.com/iafilius/loadtestcharts/src/theme"
)

const percentileHeadroom = 1.35

// BarGroup is one latency series drawn as the Slot-th bar of every scenario group.
type BarGroup struct {
	Name string
	Role theme.Role
	Slot int // -1, 0, +1 relative to the group centre
	Bars []BarMark
}

// Percentiles groups avg/p90/p95 latency bars by scenario.
type Percentiles struct {
	Title  string
	YMax   float64
	Groups []BarGroup

	ticks plot.ConstantTicks
	th    *theme.Theme
}

var percentileSeries = []struct {
	metric dataset.Metric
	name   string
	role   theme.Role
}{
	{dataset.LatencyAvg, "avg", theme.AccentBlue},
	{dataset.LatencyP90, "p90", theme.WarnYellow},
	{dataset.LatencyP95, "p95", theme.CriticalRed},
}

func NewPercentiles(d *dataset.Dataset, th *theme.Theme) *Percentiles {
	p := &Percentiles{
		Title: "Latency by Percentile  (ms)",
		YMax:  headroom(d.MustSeries(dataset.LatencyP95).Max(), percentileHeadroom),
		ticks: scenarioTicks(d),
		th:    th,
	}
	for k, ps := range percentileSeries {
		s := d.MustSeries(ps.metric)
		g := BarGroup{Name: ps.name, Role: ps.role, Slot: k - 1}
		for i := 0; i < s.Len(); i++ {
			g.Bars = append(g.Bars, BarMark{
				Scenario: d.Scenario(i).Label,
				X:        float64(i),
				Value:    s.Value(i),
				Label:    FormatFixed(s.Value(i), 1),
				Role:     ps.role,
			})
		}
		p.Groups = append(p.Groups, g)
	}
	return p
}

func (p *Percentiles) Kind() string { return dataset.PanelPercentiles }

func (p *Percentiles) Draw(c draw.Canvas) error {
	th := p.th
	plt := th.NewPlot(p.Title)
	th.AddGrid(plt)
	plt.Y.Label.Text = "ms"
	plt.X.Tick.Marker = p.ticks
	plt.Y.Tick.Marker = niceTicker{n: 6}
	plt.Legend.Top = true
	plt.Legend.Left = true
	plt.Legend.XOffs = vg.Points(6)

	n := 0
	if len(p.Groups) > 0 {
		n = len(p.Groups[0].Bars)
	}
	w := categoryWidth(c, n) * 0.22
	sty := th.Text(theme.PrimaryText, theme.SmallSize, false)
	sty.YAlign = draw.YBottom
	for _, g := range p.Groups {
		vals := make(plotter.Values, len(g.Bars))
		xs := make([]float64, len(g.Bars))
		texts := make([]string, len(g.Bars))
		for i, b := range g.Bars {
			vals[i], xs[i], texts[i] = b.Value, b.X, b.Label
		}
		bc, err := plotter.NewBarChart(vals, w)
		if err != nil {
			return err
		}
		bc.Color = th.Color(g.Role)
		bc.LineStyle = outline(th)
		bc.Offset = vg.Length(g.Slot) * w
		plt.Add(bc)
		plt.Legend.Add(g.Name, bc)

		labels, err := newLabels(xs, vals, texts, sty, vg.Point{X: bc.Offset, Y: vg.Points(2)})
		if err != nil {
			return err
		}
		plt.Add(labels)
	}

	plt.X.Min, plt.X.Max = -0.5, float64(n)-0.5
	plt.Y.Min, plt.Y.Max = 0, p.YMax
	plt.Draw(c)
	return nil
}
