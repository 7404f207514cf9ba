package panels

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/iafilius/loadtestcharts/src/dataset"
	"github.com/iafilius/loadtestcharts/src/theme"
)

const chaosHeadroom = 1.3

// Segment is one part of the stacked chaos bar.
type Segment struct {
	Name  string
	Count int
	Base  int // sum of the segments below
	Label string
	Role  theme.Role
}

// Chaos shows a fault-injection run as one stacked bar, successes at the base.
type Chaos struct {
	Title      string
	Outcome    dataset.ChaosOutcome
	Segments   []Segment
	Annotation string
	YMax       float64

	th *theme.Theme
}

// NewChaos builds the panel. note is free text about when failures happened;
// it is shown as given since the outcome record carries no timing.
func NewChaos(c dataset.ChaosOutcome, th *theme.Theme, note string) *Chaos {
	p := &Chaos{
		Title:   "Chaos Test  (requests)",
		Outcome: c,
		YMax:    headroom(float64(c.Total()), chaosHeadroom),
		th:      th,
		Segments: []Segment{
			{Name: "succeeded", Count: c.Succeeded(), Role: theme.OKGreen},
			{Name: "failed", Count: c.Failed(), Base: c.Succeeded(), Role: theme.CriticalRed},
		},
	}
	for i := range p.Segments {
		s := &p.Segments[i]
		s.Label = FormatThousands(float64(s.Count)) + "\n" + s.Name
	}
	p.Annotation = fmt.Sprintf("Failure rate: %.1f%%", c.FailureRate())
	if note != "" {
		p.Annotation += "\n" + note
	}
	return p
}

func (p *Chaos) Kind() string { return dataset.PanelChaos }

func (p *Chaos) Draw(c draw.Canvas) error {
	th := p.th
	plt := th.NewPlot(p.Title)
	th.AddGrid(plt)
	plt.Y.Label.Text = "requests"
	plt.Y.Tick.Marker = niceTicker{n: 6}
	plt.X.Tick.Marker = plot.ConstantTicks{{
		Value: 0,
		Label: "chaos run\n" + FormatThousands(float64(p.Outcome.Total())) + " requests",
	}}

	w := categoryWidth(c, 3)
	var below *plotter.BarChart
	inner := th.Text(theme.PrimaryText, theme.ValueSize, true)
	for _, s := range p.Segments {
		bc, err := plotter.NewBarChart(plotter.Values{float64(s.Count)}, w)
		if err != nil {
			return err
		}
		bc.Color = th.Color(s.Role)
		bc.LineStyle = outline(th)
		if below != nil {
			bc.StackOn(below)
		}
		plt.Add(bc)
		below = bc
		if s.Count == 0 {
			continue
		}
		labels, err := newLabels([]float64{0}, []float64{float64(s.Base) + float64(s.Count)/2},
			[]string{s.Label}, inner, vg.Point{})
		if err != nil {
			return err
		}
		plt.Add(labels)
	}

	note := th.Text(theme.PrimaryText, theme.SmallSize, false)
	note.YAlign = draw.YBottom
	ann, err := newLabels([]float64{0}, []float64{float64(p.Outcome.Total())},
		[]string{p.Annotation}, note, vg.Point{Y: vg.Points(6)})
	if err != nil {
		return err
	}
	plt.Add(ann)

	plt.X.Min, plt.X.Max = -1, 1
	plt.Y.Min, plt.Y.Max = 0, p.YMax
	plt.Draw(c)
	return nil
}
