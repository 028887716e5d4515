package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janekbaraniewski/openactivity/internal/core"
)

const sample = `{
  "types": ["Run", "Ride", "", "Run", 7],
  "years": [2024, "2023", "soon"],
  "aggregates": {
    "2024": {
      "Run": {
        "2024-01-01": {"count": 1, "distance": 5000, "moving_time": 1800, "elevation_gain": 40},
        "2024-01-02": {"count": -3, "distance": "far", "moving_time": null}
      },
      "Ride": "broken"
    },
    "2023": {"Run": {"2023-06-05": [1, 2, 3]}},
    "later": {"Run": {}}
  },
  "activities": [
    {"type": "Run", "date": "2024-01-01", "year": 2024, "hour": 7},
    {"type": "Run", "date": "2024-01-02", "year": 2024, "hour": 7.5},
    {"type": "Ride", "date": "2024-01-03", "year": 2024, "hour": 31, "subtype": " Gravel "},
    {"date": "2024-01-04", "year": 2024},
    "nonsense"
  ],
  "units": {"distance": "MI", "elevation": "yards"},
  "week_start": "Monday",
  "type_meta": {"Ride": {"label": "Bike", "accent": "#fc4c02"}, "Swim": 3},
  "other_bucket": "Other"
}`

func TestParse_Lenient(t *testing.T) {
	ds, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"Run", "Ride"}, ds.Types)
	assert.Equal(t, []int{2024, 2023}, ds.Years)

	require.Contains(t, ds.Aggregates, 2024)
	assert.Equal(t, core.DailyAggregate{Count: 1, Distance: 5000, MovingTime: 1800, ElevationGain: 40},
		ds.Aggregates.Entry(2024, "Run", "2024-01-01"))
	assert.Equal(t, core.DailyAggregate{}, ds.Aggregates.Entry(2024, "Run", "2024-01-02"))
	assert.NotContains(t, ds.Aggregates[2024], "Ride")
	assert.Equal(t, core.DailyAggregate{}, ds.Aggregates.Entry(2023, "Run", "2023-06-05"))
	assert.Len(t, ds.Aggregates, 2)

	require.Len(t, ds.Activities, 3)
	h, ok := ds.Activities[0].ValidHour()
	assert.True(t, ok)
	assert.Equal(t, 7, h)
	_, ok = ds.Activities[1].ValidHour()
	assert.False(t, ok)
	_, ok = ds.Activities[2].ValidHour()
	assert.False(t, ok)
	assert.Equal(t, "Gravel", ds.Activities[2].Subtype)

	assert.Equal(t, core.Units{Distance: "mi", Elevation: "m"}, ds.Units)
	assert.Equal(t, core.WeekStartMonday, ds.WeekStart)
	assert.Equal(t, "Bike", ds.TypeLabel("Ride"))
	assert.Equal(t, "#fc4c02", ds.TypeAccent("Ride"))
	assert.NotContains(t, ds.TypeMeta, "Swim")
	assert.Equal(t, "Other", ds.OtherBucket)
}

func TestParse_YearsDerivedFromAggregates(t *testing.T) {
	ds, err := Parse([]byte(`{"aggregates": {"2022": {}, "2024": {}, "2023": {}}}`))
	require.NoError(t, err)
	assert.Equal(t, []int{2024, 2023, 2022}, ds.Years)
	assert.Equal(t, core.WeekStartSunday, ds.WeekStart)
	assert.Equal(t, core.Units{Distance: "km", Elevation: "m"}, ds.Units)
}

func TestParse_RejectsNonObject(t *testing.T) {
	_, err := Parse([]byte(`[1, 2]`))
	assert.Error(t, err)

	_, err = Parse([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	ds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Run", "Ride"}, ds.Types)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("  ")
	assert.ErrorIs(t, err, ErrNoDataPath)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), "reading dataset")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing dataset")
}
