package panels

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatThousands rounds v to an integer and groups digits with commas: 1125.2 → "1,125".
func FormatThousands(v float64) string {
	s := strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FormatFixed formats v with the given number of decimals.
func FormatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// FormatPercent formats a percentage value: 3.12 → "3.12%".
func FormatPercent(v float64) string {
	return FormatFixed(v, 2) + "%"
}

// FormatCount abbreviates request counts: 170000 → "170k", 1186000 → "1,186k".
func FormatCount(v float64) string {
	if math.Abs(v) < 1000 {
		return FormatThousands(v)
	}
	return FormatThousands(v/1000) + "k"
}

// FormatFactor renders a degradation multiplier: whole numbers from 10x up,
// one decimal below.
func FormatFactor(f float64) string {
	if f >= 10 {
		return fmt.Sprintf("%.0fx", f)
	}
	return fmt.Sprintf("%.1fx", f)
}

// formatTick labels axis ticks; precision follows magnitude.
func formatTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 1000:
		return FormatThousands(v)
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
