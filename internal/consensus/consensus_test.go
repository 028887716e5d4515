package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janekbaraniewski/openactivity/internal/core"
)

func TestResolve_Unanimous(t *testing.T) {
	visible := []int{2023, 2024}
	selected := map[int]core.MetricKey{2023: core.MetricDistance, 2024: core.MetricDistance}
	filterable := Filterable{
		2023: {core.MetricDistance},
		2024: {core.MetricDistance, core.MetricMovingTime},
	}

	got, ok := Resolve(visible, selected, filterable)
	assert.True(t, ok)
	assert.Equal(t, core.MetricDistance, got)

	selected[2024] = core.MetricMovingTime
	_, ok = Resolve(visible, selected, filterable)
	assert.False(t, ok)
}

func TestResolve_IgnoresYearsWhereMetricIsNotFilterable(t *testing.T) {
	visible := []int{2022, 2023}
	selected := map[int]core.MetricKey{2022: core.MetricActiveDays, 2023: core.MetricElevationGain}
	filterable := Filterable{
		2022: {core.MetricActiveDays, core.MetricDistance},
		2023: {core.MetricActiveDays, core.MetricElevationGain},
	}
	// Both selections are filterable and differ.
	_, ok := Resolve(visible, selected, filterable)
	assert.False(t, ok)

	// 2022 cannot filter by elevation, so only 2023 votes for it.
	selected[2022] = core.MetricElevationGain
	got, ok := Resolve(visible, selected, filterable)
	assert.True(t, ok)
	assert.Equal(t, core.MetricElevationGain, got)
}

func TestResolve_DisagreeingYearWithoutVote(t *testing.T) {
	// 2024 can filter by distance but has nothing selected: not unanimous.
	visible := []int{2023, 2024}
	selected := map[int]core.MetricKey{2023: core.MetricDistance}
	filterable := Filterable{
		2023: {core.MetricDistance},
		2024: {core.MetricDistance},
	}
	_, ok := Resolve(visible, selected, filterable)
	assert.False(t, ok)
}

func TestResolve_OnlyVisibleYearsCount(t *testing.T) {
	selected := map[int]core.MetricKey{2023: core.MetricDistance, 2024: core.MetricMovingTime}
	filterable := Filterable{
		2023: {core.MetricDistance},
		2024: {core.MetricMovingTime},
	}
	got, ok := Resolve([]int{2024}, selected, filterable)
	assert.True(t, ok)
	assert.Equal(t, core.MetricMovingTime, got)
}

func TestResolve_Empty(t *testing.T) {
	_, ok := Resolve(nil, nil, nil)
	assert.False(t, ok)

	_, ok = Resolve([]int{2024}, map[int]core.MetricKey{2024: core.MetricDistance}, Filterable{})
	assert.False(t, ok)
}

func TestFilterableMetrics(t *testing.T) {
	got := FilterableMetrics(map[core.MetricKey]float64{
		core.MetricActiveDays: 12,
		core.MetricDistance:   40000,
		core.MetricMovingTime: 3600,
	})
	assert.Equal(t, []core.MetricKey{core.MetricActiveDays, core.MetricDistance, core.MetricMovingTime}, got)

	assert.Nil(t, FilterableMetrics(map[core.MetricKey]float64{core.MetricDistance: 10}))
}
