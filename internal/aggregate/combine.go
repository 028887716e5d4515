// Package aggregate derives combined daily totals and frequency
// distributions from the dashboard dataset.
package aggregate

import (
	"sort"

	"github.com/samber/lo"

	"github.com/janekbaraniewski/openactivity/internal/core"
)

// CombinedEntry sums the daily aggregates of several activity types for one
// date. Types holds the selected types that recorded at least one activity.
type CombinedEntry struct {
	Count         int
	Distance      float64
	MovingTime    float64
	ElevationGain float64
	Types         map[string]struct{}
}

// Value returns the entry's quantity for a metric; ActiveDays is day presence.
func (e CombinedEntry) Value(metric core.MetricKey) float64 {
	switch metric {
	case core.MetricDistance:
		return e.Distance
	case core.MetricMovingTime:
		return e.MovingTime
	case core.MetricElevationGain:
		return e.ElevationGain
	default:
		if e.Count > 0 {
			return 1
		}
		return 0
	}
}

// TypeList returns the contributing types sorted by name.
func (e CombinedEntry) TypeList() []string {
	out := lo.Keys(e.Types)
	sort.Strings(out)
	return out
}

// Combine merges the per-type daily maps of one year for the chosen types.
// Dates missing from every chosen type are absent from the result; duplicate
// types are counted once.
func Combine(byType map[string]map[string]core.DailyAggregate, types []string) map[string]CombinedEntry {
	out := make(map[string]CombinedEntry)
	for _, activityType := range lo.Uniq(types) {
		for date, raw := range byType[activityType] {
			agg := raw.Sanitized()
			entry, ok := out[date]
			if !ok {
				entry.Types = make(map[string]struct{})
			}
			entry.Count += agg.Count
			entry.Distance += agg.Distance
			entry.MovingTime += agg.MovingTime
			entry.ElevationGain += agg.ElevationGain
			if agg.Count > 0 {
				entry.Types[activityType] = struct{}{}
			}
			out[date] = entry
		}
	}
	return out
}

// Totals summarizes a combined map.
type Totals struct {
	Count         int
	ActiveDays    int
	Distance      float64
	MovingTime    float64
	ElevationGain float64
}

// Value returns the total for a metric.
func (t Totals) Value(metric core.MetricKey) float64 {
	switch metric {
	case core.MetricDistance:
		return t.Distance
	case core.MetricMovingTime:
		return t.MovingTime
	case core.MetricElevationGain:
		return t.ElevationGain
	default:
		return float64(t.ActiveDays)
	}
}

func (t Totals) Add(other Totals) Totals {
	return Totals{
		Count:         t.Count + other.Count,
		ActiveDays:    t.ActiveDays + other.ActiveDays,
		Distance:      t.Distance + other.Distance,
		MovingTime:    t.MovingTime + other.MovingTime,
		ElevationGain: t.ElevationGain + other.ElevationGain,
	}
}

// Sum totals a combined map; a day is active when its count is positive.
func Sum(combined map[string]CombinedEntry) Totals {
	var t Totals
	for _, e := range combined {
		t.Count += e.Count
		t.Distance += e.Distance
		t.MovingTime += e.MovingTime
		t.ElevationGain += e.ElevationGain
		if e.Count > 0 {
			t.ActiveDays++
		}
	}
	return t
}

// CombineYears combines each year separately.
func CombineYears(aggs core.Aggregates, years []int, types []string) map[int]map[string]CombinedEntry {
	out := make(map[int]map[string]CombinedEntry, len(years))
	for _, year := range lo.Uniq(years) {
		out[year] = Combine(aggs[year], types)
	}
	return out
}

// SumYears totals several years, for multi-year summaries.
func SumYears(byYear map[int]map[string]CombinedEntry) Totals {
	var t Totals
	for _, combined := range byYear {
		t = t.Add(Sum(combined))
	}
	return t
}

// ValuesByDate projects a combined map onto one metric, keyed by date.
func ValuesByDate(combined map[string]CombinedEntry, metric core.MetricKey) map[string]float64 {
	return lo.MapValues(combined, func(e CombinedEntry, _ string) float64 {
		return e.Value(metric)
	})
}
