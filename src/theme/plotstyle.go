package theme

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Font sizes shared by the panels, in points.
const (
	TitleSize  = vg.Length(11)
	LabelSize  = vg.Length(9)
	TickSize   = vg.Length(8.5)
	ValueSize  = vg.Length(8.5)
	SmallSize  = vg.Length(7.5)
	LegendSize = vg.Length(8)
)

// NewPlot returns a plot dressed in the theme: panel surface, muted axes and
// tick labels, bold title.
func (t *Theme) NewPlot(title string) *plot.Plot {
	p := plot.New()
	p.BackgroundColor = t.Color(PanelSurface)

	p.Title.Text = title
	p.Title.Padding = vg.Points(8)
	p.Title.TextStyle = t.Text(PrimaryText, TitleSize, true)
	p.Title.TextStyle.YAlign = draw.YTop

	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Color = t.Color(Border)
		ax.Width = vg.Points(0.8)
		ax.Label.TextStyle = t.Text(MutedText, LabelSize, false)
		ax.Tick.LineStyle.Color = t.Color(Border)
		ax.Tick.Length = vg.Points(3)
		ax.Tick.Label.Color = t.Color(MutedText)
		ax.Tick.Label.Font = t.Font(TickSize, false)
	}
	p.X.Label.TextStyle.YAlign = draw.YBottom
	p.Y.Label.TextStyle.YAlign = draw.YBottom

	// Legend rows are sized from the text rectangle, so anchor it bottom-left.
	p.Legend.TextStyle = t.Text(PrimaryText, LegendSize, false)
	p.Legend.TextStyle.XAlign = draw.XLeft
	p.Legend.TextStyle.YAlign = draw.YBottom
	p.Legend.ThumbnailWidth = vg.Points(14)
	return p
}

// AddGrid adds dashed horizontal grid lines in the border colour.
func (t *Theme) AddGrid(p *plot.Plot) {
	g := plotter.NewGrid()
	g.Vertical.Color = nil
	g.Horizontal.Color = t.Translucent(Border, 160)
	g.Horizontal.Width = vg.Points(0.6)
	g.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(g)
}
