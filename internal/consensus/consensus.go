// Package consensus reconciles the metric chosen on each year card into a
// single dashboard-level metric.
package consensus

import (
	"github.com/samber/lo"

	"github.com/janekbaraniewski/openactivity/internal/core"
)

// Filterable lists, per year, the metrics a card allows filtering by.
type Filterable map[int][]core.MetricKey

func (f Filterable) allows(year int, metric core.MetricKey) bool {
	return lo.Contains(f[year], metric)
}

// Resolve returns the metric selected on every visible card where it is
// filterable. Partial agreement, disagreement, or a metric that no visible
// card can filter by all resolve to false.
func Resolve(visibleYears []int, selected map[int]core.MetricKey, filterable Filterable) (core.MetricKey, bool) {
	candidates := make(map[core.MetricKey]struct{})
	for _, year := range visibleYears {
		metric, ok := selected[year]
		if !ok || !filterable.allows(year, metric) {
			continue
		}
		candidates[metric] = struct{}{}
	}
	if len(candidates) != 1 {
		return "", false
	}
	candidate := lo.Keys(candidates)[0]

	seen := false
	for _, year := range visibleYears {
		if !filterable.allows(year, candidate) {
			continue
		}
		seen = true
		if selected[year] != candidate {
			return "", false
		}
	}
	if !seen {
		return "", false
	}
	return candidate, true
}

// FilterableMetrics returns the metrics worth filtering a card by: active days
// whenever there is any activity, and the other metrics when their total is
// positive.
func FilterableMetrics(totals map[core.MetricKey]float64) []core.MetricKey {
	if totals[core.MetricActiveDays] <= 0 {
		return nil
	}
	return lo.Filter(core.ValidMetrics, func(m core.MetricKey, _ int) bool {
		return totals[m] > 0
	})
}
