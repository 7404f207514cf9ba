package panels

import (
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iafilius/loadtestcharts/src/dataset"
	"github.com/iafilius/loadtestcharts/src/theme"
)

const (
	latencyHeadroom = 1.2
	// Point labels at or above this value go below the point, away from the title.
	labelBelowMs = 100.0
	// The degradation factor is only meaningful with more than two scenarios.
	factorMinScenarios = 3
)

// LoadPoint is one (VUs, p95) vertex of the curve and its annotation.
type LoadPoint struct {
	VUs   float64
	Value float64
	Label string
	Above bool
	// Leftward labels end at the point instead of starting there.
	Leftward bool
}

// LatencyVsLoad plots p95 latency against concurrent users, with the
// first scenario as reference and the area above it shaded.
type LatencyVsLoad struct {
	Title    string
	Points   []LoadPoint
	Baseline float64
	// Factor is max(p95)/baseline; ShowFactor tells whether the title reports it.
	Factor     float64
	ShowFactor bool
	// Degradation holds closed polygons between the baseline and the curve
	// wherever the curve is above the baseline. Empty when it never is.
	Degradation []plotter.XYs

	XMin, XMax, YMax float64

	ticks plot.ConstantTicks
	th    *theme.Theme
}

func NewLatencyVsLoad(d *dataset.Dataset, th *theme.Theme) *LatencyVsLoad {
	s := d.MustSeries(dataset.LatencyP95)
	l := &LatencyVsLoad{
		Baseline: s.Value(0),
		YMax:     headroom(s.Max(), latencyHeadroom),
		ticks:    loadTicks(d),
		th:       th,
	}
	xs := make([]float64, s.Len())
	ys := s.Values()
	for i := range xs {
		xs[i] = float64(d.Scenario(i).VUs)
		above := ys[i] < labelBelowMs
		l.Points = append(l.Points, LoadPoint{
			VUs:      xs[i],
			Value:    ys[i],
			Label:    FormatFixed(ys[i], 1) + " ms",
			Above:    above,
			Leftward: above || i == len(xs)-1,
		})
	}
	l.Degradation = degradationRegions(xs, ys, l.Baseline)

	span := xs[len(xs)-1] - xs[0]
	if span <= 0 {
		span = xs[0]
	}
	l.XMin = xs[0] - span*0.08
	l.XMax = xs[len(xs)-1] + span*0.12

	l.Title = "p95 Latency vs Load"
	if l.Baseline > 0 {
		l.Factor = s.Max() / l.Baseline
		l.ShowFactor = len(xs) >= factorMinScenarios
	}
	if l.ShowFactor {
		l.Title += "  (" + FormatFactor(l.Factor) + " degradation)"
	}
	return l
}

// degradationRegions returns the polygons enclosed by the horizontal line
// y=base and the polyline (xs, ys) where the polyline lies above it.
// Crossing points are interpolated so the shading meets the reference exactly.
func degradationRegions(xs, ys []float64, base float64) []plotter.XYs {
	var (
		regions []plotter.XYs
		top     plotter.XYs
	)
	cross := func(i int) plotter.XY {
		x0, y0, x1, y1 := xs[i-1], ys[i-1], xs[i], ys[i]
		t := (base - y0) / (y1 - y0)
		return plotter.XY{X: x0 + t*(x1-x0), Y: base}
	}
	closeRegion := func() {
		poly := append(plotter.XYs(nil), top...)
		for k := len(top) - 1; k >= 0; k-- {
			if top[k].Y != base {
				poly = append(poly, plotter.XY{X: top[k].X, Y: base})
			}
		}
		regions = append(regions, poly)
		top = nil
	}
	for i := range xs {
		above := ys[i] > base
		switch {
		case above && top == nil:
			if i > 0 {
				top = append(top, cross(i))
			} else {
				top = append(top, plotter.XY{X: xs[i], Y: base})
			}
			top = append(top, plotter.XY{X: xs[i], Y: ys[i]})
		case above:
			top = append(top, plotter.XY{X: xs[i], Y: ys[i]})
		case top != nil:
			top = append(top, cross(i))
			closeRegion()
		}
	}
	if top != nil {
		closeRegion()
	}
	return regions
}

func (l *LatencyVsLoad) Kind() string { return dataset.PanelLatencyVsLoad }

func (l *LatencyVsLoad) Draw(c draw.Canvas) error {
	th := l.th
	p := th.NewPlot(l.Title)
	th.AddGrid(p)
	p.X.Label.Text = "Virtual Users"
	p.Y.Label.Text = "Latency p95 (ms)"
	p.X.Tick.Marker = l.ticks
	p.Y.Tick.Marker = niceTicker{n: 6}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = vg.Points(6)

	var shade *plotter.Polygon
	if len(l.Degradation) > 0 {
		rings := make([]plotter.XYer, len(l.Degradation))
		for i, r := range l.Degradation {
			rings[i] = r
		}
		var err error
		if shade, err = plotter.NewPolygon(rings...); err != nil {
			return err
		}
		shade.Color = th.Translucent(theme.CriticalRed, 31)
		shade.LineStyle.Width = 0
		p.Add(shade)
	}

	ref, err := plotter.NewLine(plotter.XYs{{X: l.XMin, Y: l.Baseline}, {X: l.XMax, Y: l.Baseline}})
	if err != nil {
		return err
	}
	ref.Color = th.Translucent(theme.OKGreen, 160)
	ref.Width = vg.Points(1)
	ref.Dashes = []vg.Length{vg.Points(4), vg.Points(3)}
	p.Add(ref)

	xys := make(plotter.XYs, len(l.Points))
	for i, pt := range l.Points {
		xys[i] = plotter.XY{X: pt.VUs, Y: pt.Value}
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return err
	}
	line.Color = th.Color(theme.CriticalRed)
	line.Width = vg.Points(2.5)
	ring, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	ring.GlyphStyle = draw.GlyphStyle{Color: th.Color(theme.Background), Radius: vg.Points(5), Shape: draw.CircleGlyph{}}
	dot, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	dot.GlyphStyle = draw.GlyphStyle{Color: th.Color(theme.CriticalRed), Radius: vg.Points(3.5), Shape: draw.CircleGlyph{}}
	p.Add(line, ring, dot)
	p.Legend.Add("p95 latency", line, dot)
	p.Legend.Add("baseline ("+strconv.FormatFloat(l.Baseline, 'f', -1, 64)+" ms)", ref)
	if shade != nil {
		p.Legend.Add("degradation", shade)
	}

	if err := l.addPointLabels(p); err != nil {
		return err
	}

	p.X.Min, p.X.Max = l.XMin, l.XMax
	p.Y.Min, p.Y.Max = 0, l.YMax
	p.Draw(c)
	return nil
}

func (l *LatencyVsLoad) addPointLabels(p *plot.Plot) error {
	type side struct{ above, left bool }
	type group struct {
		xs, ys []float64
		texts  []string
	}
	groups := map[side]*group{}
	var order []side
	for _, pt := range l.Points {
		k := side{pt.Above, pt.Leftward}
		g, ok := groups[k]
		if !ok {
			g = &group{}
			groups[k] = g
			order = append(order, k)
		}
		g.xs, g.ys, g.texts = append(g.xs, pt.VUs), append(g.ys, pt.Value), append(g.texts, pt.Label)
	}
	base := l.th.Text(theme.PrimaryText, theme.ValueSize, true)
	for _, k := range order {
		g := groups[k]
		sty := base
		off := vg.Point{X: vg.Points(6), Y: vg.Points(6)}
		sty.XAlign, sty.YAlign = draw.XLeft, draw.YBottom
		if k.left {
			sty.XAlign, off.X = draw.XRight, -off.X
		}
		if !k.above {
			sty.YAlign, off.Y = draw.YTop, -off.Y
		}
		labels, err := newLabels(g.xs, g.ys, g.texts, sty, off)
		if err != nil {
			return err
		}
		p.Add(labels)
	}
	return nil
}
