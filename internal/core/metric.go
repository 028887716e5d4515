package core

import "strings"

// MetricKey names a quantity a heatmap or frequency matrix can be weighted by.
type MetricKey string

const (
	MetricActiveDays    MetricKey = "active_days"
	MetricDistance      MetricKey = "distance"
	MetricMovingTime    MetricKey = "moving_time"
	MetricElevationGain MetricKey = "elevation_gain"
)

var ValidMetrics = []MetricKey{
	MetricActiveDays,
	MetricDistance,
	MetricMovingTime,
	MetricElevationGain,
}

func (m MetricKey) Label() string {
	switch m {
	case MetricActiveDays:
		return "Active Days"
	case MetricDistance:
		return "Distance"
	case MetricMovingTime:
		return "Moving Time"
	case MetricElevationGain:
		return "Elevation"
	default:
		return string(m)
	}
}

// Weighted reports whether the metric splits a day total across activities
// rather than counting each activity once.
func (m MetricKey) Weighted() bool {
	return m == MetricDistance || m == MetricMovingTime || m == MetricElevationGain
}

func (m MetricKey) Valid() bool {
	for _, v := range ValidMetrics {
		if v == m {
			return true
		}
	}
	return false
}

// ParseMetricKey accepts the wire names plus a few common aliases.
func ParseMetricKey(s string) (MetricKey, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	switch key {
	case "days", "active", "count":
		return MetricActiveDays, true
	case "time":
		return MetricMovingTime, true
	case "elevation", "climb":
		return MetricElevationGain, true
	}
	m := MetricKey(key)
	if m.Valid() {
		return m, true
	}
	return "", false
}

// NextMetric returns the metric after current among the allowed ones, wrapping
// around. With no allowed metrics it returns MetricActiveDays.
func NextMetric(current MetricKey, allowed []MetricKey) MetricKey {
	if len(allowed) == 0 {
		return MetricActiveDays
	}
	for i, m := range allowed {
		if m == current {
			return allowed[(i+1)%len(allowed)]
		}
	}
	return allowed[0]
}
