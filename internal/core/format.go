package core

import (
	"fmt"
	"math"
	"strings"
)

const (
	metersPerMile = 1609.344
	feetPerMeter  = 3.28084
)

// FormatMetric renders a metric value for display in the dataset's units.
func (u Units) FormatMetric(metric MetricKey, v float64) string {
	switch metric {
	case MetricDistance:
		return u.FormatDistance(v)
	case MetricMovingTime:
		return FormatDuration(v)
	case MetricElevationGain:
		return u.FormatElevation(v)
	default:
		return formatCount(v)
	}
}

func (u Units) FormatDistance(meters float64) string {
	if strings.EqualFold(u.Distance, "mi") {
		return fmt.Sprintf("%.1f mi", meters/metersPerMile)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

func (u Units) FormatElevation(meters float64) string {
	if strings.EqualFold(u.Elevation, "ft") {
		return fmt.Sprintf("%.0f ft", meters*feetPerMeter)
	}
	return fmt.Sprintf("%.0f m", meters)
}

// FormatDuration renders seconds as "1h 05m" or "42m".
func FormatDuration(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "0m"
	}
	total := int(math.Round(seconds / 60))
	h, m := total/60, total%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

func formatCount(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
