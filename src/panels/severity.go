package panels

import "github.com/iafilius/loadtestcharts/src/theme"

// Severity is the colour tier of a scenario.
type Severity int

const (
	SeverityOK Severity = iota
	SeverityWarn
	SeverityCritical
)

// OrdinalSeverity maps scenario index i of n to a tier by position, not by
// value. Scenarios are ordered by load, so the first is OK and the last is
// critical; the rest are bucketed into thirds of the index range.
func OrdinalSeverity(i, n int) Severity {
	switch {
	case n <= 1 || i <= 0:
		return SeverityOK
	case i >= n-1:
		return SeverityCritical
	}
	s := Severity(i * 3 / n)
	if s == SeverityOK {
		s = SeverityWarn
	}
	return s
}

// Role is the theme role painting the tier.
func (s Severity) Role() theme.Role {
	switch s {
	case SeverityOK:
		return theme.OKGreen
	case SeverityWarn:
		return theme.WarnYellow
	default:
		return theme.CriticalRed
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "ok"
	case SeverityWarn:
		return "warn"
	default:
		return "critical"
	}
}
