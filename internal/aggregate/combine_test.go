package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janekbaraniewski/openactivity/internal/core"
)

func sampleYear() map[string]map[string]core.DailyAggregate {
	return map[string]map[string]core.DailyAggregate{
		"Run": {
			"2024-01-01": {Count: 1, Distance: 5000.1, MovingTime: 1500, ElevationGain: 20.3},
			"2024-01-02": {Count: 0},
			"2024-01-03": {Count: 2, Distance: 12000, MovingTime: 3600},
		},
		"Ride": {
			"2024-01-01": {Count: 1, Distance: 30000.7, MovingTime: 3600, ElevationGain: 250.1},
			"2024-01-04": {Count: 1, Distance: 20000},
		},
		"Swim": {
			"2024-01-05": {Count: 1, Distance: 1500},
		},
	}
}

func TestCombine_SumsAndTypes(t *testing.T) {
	out := Combine(sampleYear(), []string{"Run", "Ride"})

	require.Len(t, out, 4)
	jan1 := out["2024-01-01"]
	assert.Equal(t, 2, jan1.Count)
	assert.InDelta(t, 35000.8, jan1.Distance, 1e-9)
	assert.InDelta(t, 7100.0, jan1.MovingTime, 1e-9)
	assert.InDelta(t, 270.4, jan1.ElevationGain, 1e-9)
	assert.Equal(t, []string{"Ride", "Run"}, jan1.TypeList())

	jan2 := out["2024-01-02"]
	assert.Equal(t, 0, jan2.Count)
	assert.Empty(t, jan2.Types, "zero-count days are present but contribute no type")

	_, ok := out["2024-01-05"]
	assert.False(t, ok, "unselected types do not add dates")
}

func TestCombine_Commutative(t *testing.T) {
	data := sampleYear()
	pairs := [][2]string{{"Run", "Ride"}, {"Run", "Swim"}, {"Ride", "Swim"}}
	for _, p := range pairs {
		ab := Combine(data, []string{p[0], p[1]})
		ba := Combine(data, []string{p[1], p[0]})
		require.Equal(t, len(ab), len(ba))
		for date, x := range ab {
			y, ok := ba[date]
			require.True(t, ok, date)
			assert.Equal(t, x.Count, y.Count, date)
			assert.InDelta(t, x.Distance, y.Distance, 1e-9, date)
			assert.InDelta(t, x.MovingTime, y.MovingTime, 1e-9, date)
			assert.InDelta(t, x.ElevationGain, y.ElevationGain, 1e-9, date)
			assert.Equal(t, x.Types, y.Types, date)
		}
	}
}

func TestCombine_TypesIntersection(t *testing.T) {
	data := sampleYear()
	out := Combine(data, []string{"Run", "Ride"})
	for date, entry := range out {
		var want []string
		for _, typ := range []string{"Ride", "Run"} {
			if data[typ][date].Count > 0 {
				want = append(want, typ)
			}
		}
		if want == nil {
			assert.Empty(t, entry.TypeList(), date)
			continue
		}
		assert.Equal(t, want, entry.TypeList(), date)
	}
}

func TestCombine_DuplicateTypesCountOnce(t *testing.T) {
	out := Combine(sampleYear(), []string{"Run", "Run"})
	assert.Equal(t, 1, out["2024-01-01"].Count)
}

func TestCombine_MissingAndMalformed(t *testing.T) {
	data := map[string]map[string]core.DailyAggregate{
		"Run": {"2024-01-01": {Count: -3, Distance: -10}},
	}
	out := Combine(data, []string{"Run", "Hike"})
	assert.Equal(t, CombinedEntry{Types: map[string]struct{}{}}, out["2024-01-01"])
	assert.Empty(t, Combine(nil, []string{"Run"}))
	assert.Empty(t, Combine(data, nil))
}

func TestCombinedEntryValue(t *testing.T) {
	e := CombinedEntry{Count: 3, Distance: 10, MovingTime: 20, ElevationGain: 30}
	assert.Equal(t, 1.0, e.Value(core.MetricActiveDays))
	assert.Equal(t, 10.0, e.Value(core.MetricDistance))
	assert.Equal(t, 20.0, e.Value(core.MetricMovingTime))
	assert.Equal(t, 30.0, e.Value(core.MetricElevationGain))
	assert.Equal(t, 0.0, CombinedEntry{}.Value(core.MetricActiveDays))
}

func TestSumAndSumYears(t *testing.T) {
	aggs := core.Aggregates{
		2024: sampleYear(),
		2023: {"Run": {"2023-06-01": {Count: 1, Distance: 8000}}},
	}
	byYear := CombineYears(aggs, []int{2024, 2023, 2024}, []string{"Run"})
	require.Len(t, byYear, 2)

	y2024 := Sum(byYear[2024])
	assert.Equal(t, 3, y2024.Count)
	assert.Equal(t, 2, y2024.ActiveDays)
	assert.InDelta(t, 17000.1, y2024.Distance, 1e-9)

	all := SumYears(byYear)
	assert.Equal(t, 4, all.Count)
	assert.Equal(t, 3, all.ActiveDays)
	assert.InDelta(t, 25000.1, all.Distance, 1e-9)
	assert.Equal(t, 3.0, all.Value(core.MetricActiveDays))
}

func TestValuesByDate(t *testing.T) {
	combined := Combine(sampleYear(), []string{"Run"})
	values := ValuesByDate(combined, core.MetricDistance)
	assert.Equal(t, 12000.0, values["2024-01-03"])
	assert.Equal(t, 0.0, values["2024-01-02"])

	days := ValuesByDate(combined, core.MetricActiveDays)
	assert.Equal(t, 1.0, days["2024-01-03"])
}
