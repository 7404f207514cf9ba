package panels

import (
	"math"

	"gonum.org/v1/plot"

	"github.com/iafilius/loadtestcharts/src/dataset"
)

// niceTicks generates up to n desired tick marks between [min, max] using nice increments.
func niceTicks(min, max float64, n int) []plot.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	// Preferred tick steps: 1, 2, 2.5, 5, 10 ... scaled by power of 10
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		step := c * mag
		count := math.Ceil(span / step)
		if count < 2 {
			count = 2
		}
		if score := math.Abs(count - float64(n)); score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	// Ticks stay inside the axis range; the headroom above the last tick
	// belongs to the value labels.
	start := math.Ceil(min/bestStep) * bestStep
	var ticks []plot.Tick
	for k := 0; ; k++ {
		v := start + float64(k)*bestStep
		if v > max+bestStep*1e-9 || len(ticks) > n+2 {
			break
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: formatTick(v)})
	}
	return ticks
}

// niceTicker adapts niceTicks to a plot axis.
type niceTicker struct{ n int }

func (t niceTicker) Ticks(min, max float64) []plot.Tick { return niceTicks(min, max, t.n) }

// scenarioTicks labels category positions 0..n-1 with the scenario axis labels.
func scenarioTicks(d *dataset.Dataset) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, d.Len())
	for i := range ticks {
		ticks[i] = plot.Tick{Value: float64(i), Label: d.Scenario(i).AxisLabel()}
	}
	return ticks
}

// loadTicks labels the scenario VU counts on a continuous axis.
func loadTicks(d *dataset.Dataset) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, d.Len())
	for i := range ticks {
		vus := float64(d.Scenario(i).VUs)
		ticks[i] = plot.Tick{Value: vus, Label: FormatThousands(vus)}
	}
	return ticks
}
