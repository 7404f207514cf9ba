package panels

import (
	"image/color"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iafilius/loadtestcharts/src/dataset"
	"github.com/iafilius/loadtestcharts/src/theme"
)

// Cell is one table cell with its resolved styling.
type Cell struct {
	Text      string
	Fill      color.Color
	TextRole  theme.Role
	Bold      bool
	Spotlight bool
}

// SummaryTable is the metric × scenario results table. Row 0 is the header.
type SummaryTable struct {
	Title string
	Rows  [][]Cell

	th *theme.Theme
}

type tableRow struct {
	metric dataset.Metric
	label  string
	format func(float64) string
}

var summaryRows = []tableRow{
	{dataset.Throughput, "Throughput (req/s)", FormatThousands},
	{dataset.LatencyAvg, "Latency avg (ms)", fixed(2)},
	{dataset.LatencyP90, "Latency p90 (ms)", fixed(2)},
	{dataset.LatencyP95, "Latency p95 (ms)", fixed(2)},
	{dataset.LatencyMax, "Latency max (ms)", fixed(1)},
	{dataset.ErrorRate, "Error rate", FormatPercent},
	{dataset.TotalRequests, "Total requests", FormatCount},
}

func fixed(decimals int) func(float64) string {
	return func(v float64) string { return FormatFixed(v, decimals) }
}

// spotlightMetric is the row of the worst-case cell; its column is the peak-load scenario.
const spotlightMetric = dataset.LatencyP95

// Shade weights for colours derived from the panel surface.
const (
	headerShade    = 0.45
	stripeShade    = 0.06
	spotlightShade = 0.18
)

func NewSummaryTable(d *dataset.Dataset, th *theme.Theme) *SummaryTable {
	t := &SummaryTable{Title: "Results Summary", th: th}
	header := []Cell{{Text: "Metric"}}
	for _, sc := range d.Scenarios() {
		header = append(header, Cell{Text: sc.AxisLabel()})
	}
	for i := range header {
		header[i].Fill = th.Mix(theme.PanelSurface, theme.Border, headerShade)
		header[i].TextRole = theme.PrimaryText
		header[i].Bold = true
	}
	t.Rows = append(t.Rows, header)

	peak := d.PeakIndex()
	for _, r := range summaryRows {
		s, ok := d.Series(r.metric)
		if !ok {
			continue
		}
		fill := th.Color(theme.PanelSurface)
		if len(t.Rows)%2 == 0 {
			fill = th.Mix(theme.PanelSurface, theme.AccentBlue, stripeShade)
		}
		row := []Cell{{Text: r.label, Fill: fill, TextRole: theme.PrimaryText}}
		for i := 0; i < s.Len(); i++ {
			cell := Cell{Text: r.format(s.Value(i)), Fill: fill, TextRole: theme.PrimaryText}
			if r.metric == spotlightMetric && i == peak {
				cell.Fill = th.Mix(theme.PanelSurface, theme.CriticalRed, spotlightShade)
				cell.TextRole = theme.CriticalRed
				cell.Bold = true
				cell.Spotlight = true
			}
			row = append(row, cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func (t *SummaryTable) Kind() string { return dataset.PanelSummary }

// Draw lays the table out centred below the title. The label column takes a
// fixed share of the width; scenario columns split the rest evenly.
func (t *SummaryTable) Draw(c draw.Canvas) error {
	th := t.th
	c.FillPolygon(th.Color(theme.PanelSurface), rect(c.Min, c.Max))

	title := th.Text(theme.PrimaryText, theme.TitleSize, true)
	title.YAlign = draw.YTop
	top := c.Max.Y - vg.Points(8)
	c.FillText(title, vg.Point{X: c.Center().X, Y: top}, t.Title)
	top -= title.Height(t.Title) + vg.Points(10)

	if len(t.Rows) == 0 {
		return nil
	}
	cols := len(t.Rows[0])
	width := (c.Max.X - c.Min.X) * 0.92
	labelW := width * 0.34
	if cols == 1 {
		labelW = width
	}
	colW := (width - labelW) / vg.Length(max(cols-1, 1))

	avail := top - c.Min.Y - vg.Points(8)
	rowH := avail / (vg.Length(len(t.Rows)) + 0.6)
	if lim := vg.Points(26); rowH > lim {
		rowH = lim
	}
	headH := rowH * 1.6
	tableH := headH + rowH*vg.Length(len(t.Rows)-1)

	x0 := c.Center().X - width/2
	y := top - (avail-tableH)/2
	border := outline(th)
	for ri, row := range t.Rows {
		h := rowH
		if ri == 0 {
			h = headH
		}
		x := x0
		for ci, cell := range row {
			w := colW
			if ci == 0 {
				w = labelW
			}
			lo, hi := vg.Point{X: x, Y: y - h}, vg.Point{X: x + w, Y: y}
			c.FillPolygon(cell.Fill, rect(lo, hi))
			c.StrokeLines(border, append(rect(lo, hi), lo))
			sty := th.Text(cell.TextRole, theme.TickSize, cell.Bold)
			c.FillText(sty, vg.Point{X: x + w/2, Y: y - h/2}, cell.Text)
			x += w
		}
		y -= h
	}
	return nil
}

// SpotlightCount returns how many cells carry the spotlight styling.
func (t *SummaryTable) SpotlightCount() int {
	n := 0
	for _, row := range t.Rows {
		for _, cell := range row {
			if cell.Spotlight {
				n++
			}
		}
	}
	return n
}

func rect(lo, hi vg.Point) []vg.Point {
	return []vg.Point{lo, {X: lo.X, Y: hi.Y}, hi, {X: hi.X, Y: lo.Y}}
}
