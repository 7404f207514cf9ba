// Package dataset holds the validated, read-only load-test metrics a dashboard
// is rendered from.
//
// Every series is supplied as (scenario label, value) samples. Construction
// checks each sample against the scenario at the same index, so a series
// cannot be reordered relative to the scenarios without New failing. After
// construction values are addressed by index only.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// Scenario is one named load level.
type Scenario struct {
	Label string
	VUs   int
}

// AxisLabel is the two-line label used on category axes and table headers.
func (s Scenario) AxisLabel() string {
	return fmt.Sprintf("%s\n%d VUs", s.Label, s.VUs)
}

// Metric identifies a measured quantity.
type Metric int

const (
	Throughput Metric = iota
	LatencyAvg
	LatencyP90
	LatencyP95
	LatencyMax
	ErrorRate
	TotalRequests
)

var metricNames = [...]string{
	Throughput:    "throughput",
	LatencyAvg:    "avg latency",
	LatencyP90:    "p90 latency",
	LatencyP95:    "p95 latency",
	LatencyMax:    "max latency",
	ErrorRate:     "error rate",
	TotalRequests: "total requests",
}

var metricUnits = [...]string{
	Throughput:    "req/s",
	LatencyAvg:    "ms",
	LatencyP90:    "ms",
	LatencyP95:    "ms",
	LatencyMax:    "ms",
	ErrorRate:     "%",
	TotalRequests: "requests",
}

func (m Metric) String() string {
	if m < 0 || int(m) >= len(metricNames) {
		return "metric(" + strconv.Itoa(int(m)) + ")"
	}
	return metricNames[m]
}

// Unit returns the display unit of the metric.
func (m Metric) Unit() string {
	if m < 0 || int(m) >= len(metricUnits) {
		return ""
	}
	return metricUnits[m]
}

// RequiredMetrics must be present in a dataset whose Spec does not list its own.
var RequiredMetrics = []Metric{Throughput, LatencyAvg, LatencyP90, LatencyP95}

// Sample is one series value tagged with the scenario it was measured in.
type Sample struct {
	Scenario string
	Value    float64
}

// MetricSeries is a validated series, aligned by index with the dataset's scenarios.
type MetricSeries struct {
	Metric Metric
	values []float64
}

func (m MetricSeries) Len() int            { return len(m.values) }
func (m MetricSeries) Value(i int) float64 { return m.values[i] }
func (m MetricSeries) Values() []float64   { return append([]float64(nil), m.values...) }

// Max returns the largest value, or 0 for an empty series.
func (m MetricSeries) Max() float64 {
	max := 0.0
	for i, v := range m.values {
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// ChaosSpec is the literal form of a ChaosOutcome.
type ChaosSpec struct {
	Total     int
	Succeeded int
	Failed    int
}

// Spec is the unvalidated literal input of a Dataset.
type Spec struct {
	Scenarios []Scenario
	Series    map[Metric][]Sample
	Chaos     *ChaosSpec
	// Required lists the series that must be present. Nil means RequiredMetrics.
	Required []Metric
}

// Dataset is the immutable result of validating a Spec.
type Dataset struct {
	scenarios []Scenario
	series    map[Metric]MetricSeries
	chaos     *ChaosOutcome
}

// New validates spec and returns the dataset. Every violated invariant is
// reported; the returned error matches ErrInvalidDataset.
func New(spec Spec) (*Dataset, error) {
	var result *multierror.Error

	n := len(spec.Scenarios)
	if n == 0 {
		result = multierror.Append(result, fieldErr("scenarios", "at least one scenario is required", ">= 1", "0"))
	}
	seen := make(map[string]int, n)
	for i, sc := range spec.Scenarios {
		label := strings.TrimSpace(sc.Label)
		if label == "" {
			result = multierror.Append(result, indexErr("scenarios", i, "label must not be empty", "", ""))
		} else if prev, dup := seen[label]; dup {
			result = multierror.Append(result, indexErr("scenarios", i, "duplicate label",
				"unique label", fmt.Sprintf("%q also at index %d", label, prev)))
		} else {
			seen[label] = i
		}
		if sc.VUs <= 0 {
			result = multierror.Append(result, indexErr("scenarios", i, "VU count must be positive", "> 0", strconv.Itoa(sc.VUs)))
		}
		if i > 0 && sc.VUs <= spec.Scenarios[i-1].VUs {
			result = multierror.Append(result, indexErr("scenarios", i, "VU counts must increase",
				fmt.Sprintf("> %d", spec.Scenarios[i-1].VUs), strconv.Itoa(sc.VUs)))
		}
	}

	required := spec.Required
	if required == nil {
		required = RequiredMetrics
	}
	for _, m := range required {
		if _, ok := spec.Series[m]; !ok {
			result = multierror.Append(result, fieldErr(m.String(), "required series is missing", "", ""))
		}
	}

	series := make(map[Metric]MetricSeries, len(spec.Series))
	for m := Throughput; m <= TotalRequests; m++ {
		samples, ok := spec.Series[m]
		if !ok {
			continue
		}
		if errs := checkSeries(m, samples, spec.Scenarios); len(errs) > 0 {
			result = multierror.Append(result, errs...)
			continue
		}
		vals := make([]float64, len(samples))
		for i, s := range samples {
			vals[i] = s.Value
		}
		series[m] = MetricSeries{Metric: m, values: vals}
	}
	for m := range spec.Series {
		if m < Throughput || m > TotalRequests {
			result = multierror.Append(result, fieldErr(m.String(), "unknown metric", "", ""))
		}
	}

	var chaos *ChaosOutcome
	if spec.Chaos != nil {
		c, err := NewChaosOutcome(spec.Chaos.Total, spec.Chaos.Succeeded, spec.Chaos.Failed)
		if err != nil {
			result = multierror.Append(result, err)
		} else {
			chaos = &c
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return &Dataset{
		scenarios: append([]Scenario(nil), spec.Scenarios...),
		series:    series,
		chaos:     chaos,
	}, nil
}

func checkSeries(m Metric, samples []Sample, scenarios []Scenario) []error {
	var errs []error
	if len(samples) != len(scenarios) {
		errs = append(errs, fieldErr(m.String(), "series length must match scenario count",
			strconv.Itoa(len(scenarios)), strconv.Itoa(len(samples))))
		return errs
	}
	for i, s := range samples {
		if s.Scenario != scenarios[i].Label {
			errs = append(errs, indexErr(m.String(), i, "sample is not aligned with its scenario",
				strconv.Quote(scenarios[i].Label), strconv.Quote(s.Scenario)))
		}
		if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			errs = append(errs, indexErr(m.String(), i, "value must be finite", "finite", fmt.Sprint(s.Value)))
		} else if s.Value < 0 {
			errs = append(errs, indexErr(m.String(), i, "value must not be negative", ">= 0", fmt.Sprint(s.Value)))
		}
	}
	return errs
}

// Scenarios returns a copy of the ordered scenarios.
func (d *Dataset) Scenarios() []Scenario { return append([]Scenario(nil), d.scenarios...) }

// Len is the number of scenarios.
func (d *Dataset) Len() int { return len(d.scenarios) }

// Scenario returns the scenario at index i.
func (d *Dataset) Scenario(i int) Scenario { return d.scenarios[i] }

// Series returns the series for m and whether it is present.
func (d *Dataset) Series(m Metric) (MetricSeries, bool) {
	s, ok := d.series[m]
	return s, ok
}

// MustSeries returns the series for a metric New guaranteed to exist.
func (d *Dataset) MustSeries(m Metric) MetricSeries {
	s, ok := d.series[m]
	if !ok {
		panic("dataset: missing series " + m.String())
	}
	return s
}

// Chaos returns the chaos outcome, if the dataset carries one.
func (d *Dataset) Chaos() (ChaosOutcome, bool) {
	if d.chaos == nil {
		return ChaosOutcome{}, false
	}
	return *d.chaos, true
}

// PeakIndex returns the index of the scenario with the highest VU count.
func (d *Dataset) PeakIndex() int {
	best := 0
	for i, sc := range d.scenarios {
		if sc.VUs > d.scenarios[best].VUs {
			best = i
		}
	}
	return best
}
