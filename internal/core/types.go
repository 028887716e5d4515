package core

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// Activity is a single recorded workout as supplied by the dashboard data
// endpoint. Activities are never mutated by the engine.
type Activity struct {
	Type    string `json:"type"`
	Date    string `json:"date"` // "2024-01-15", local calendar date
	Year    int    `json:"year"`
	Hour    *int   `json:"hour,omitempty"`
	Subtype string `json:"subtype,omitempty"`
}

// ValidHour reports the activity's start hour when it is present and within 0..23.
func (a Activity) ValidHour() (int, bool) {
	if a.Hour == nil || *a.Hour < 0 || *a.Hour > 23 {
		return 0, false
	}
	return *a.Hour, true
}

// UnmarshalJSON accepts fractional, null or out-of-range hours and drops them
// instead of failing the whole dataset.
func (a *Activity) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    string          `json:"type"`
		Date    string          `json:"date"`
		Year    json.RawMessage `json:"year"`
		Hour    json.RawMessage `json:"hour"`
		Subtype *string         `json:"subtype"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*a = Activity{
		Type: raw.Type,
		Date: strings.TrimSpace(raw.Date),
	}
	if raw.Subtype != nil {
		a.Subtype = strings.TrimSpace(*raw.Subtype)
	}
	if y, ok := lenientNumber(raw.Year); ok && y == math.Trunc(y) {
		a.Year = int(y)
	}
	if h, ok := lenientNumber(raw.Hour); ok && h == math.Trunc(h) && h >= 0 && h <= 23 {
		hour := int(h)
		a.Hour = &hour
	}
	return nil
}

// DailyAggregate is one precomputed day total for a single activity type.
// Distances and elevation are meters, moving time is seconds.
type DailyAggregate struct {
	Count         int     `json:"count"`
	Distance      float64 `json:"distance"`
	MovingTime    float64 `json:"moving_time"`
	ElevationGain float64 `json:"elevation_gain"`
}

// UnmarshalJSON treats missing, malformed, negative or non-finite fields as zero.
func (d *DailyAggregate) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		*d = DailyAggregate{}
		return nil
	}
	count, _ := lenientNumber(fields["count"])
	distance, _ := lenientNumber(fields["distance"])
	movingTime, _ := lenientNumber(fields["moving_time"])
	elevation, _ := lenientNumber(fields["elevation_gain"])

	*d = DailyAggregate{
		Count:         int(count),
		Distance:      distance,
		MovingTime:    movingTime,
		ElevationGain: elevation,
	}.Sanitized()
	return nil
}

// Sanitized clamps negative and non-finite fields to zero.
func (d DailyAggregate) Sanitized() DailyAggregate {
	if d.Count < 0 {
		d.Count = 0
	}
	d.Distance = nonNegative(d.Distance)
	d.MovingTime = nonNegative(d.MovingTime)
	d.ElevationGain = nonNegative(d.ElevationGain)
	return d
}

// Value returns the aggregate's quantity for a metric. ActiveDays yields the
// activity count; callers interpret it as day presence.
func (d DailyAggregate) Value(metric MetricKey) float64 {
	switch metric {
	case MetricDistance:
		return d.Distance
	case MetricMovingTime:
		return d.MovingTime
	case MetricElevationGain:
		return d.ElevationGain
	default:
		return float64(d.Count)
	}
}

// Aggregates is keyed year -> activity type -> ISO date.
type Aggregates map[int]map[string]map[string]DailyAggregate

// Entry returns the sanitized aggregate for a day, or the zero value when
// any level of the lookup is missing.
func (a Aggregates) Entry(year int, activityType, date string) DailyAggregate {
	byType, ok := a[year]
	if !ok {
		return DailyAggregate{}
	}
	byDate, ok := byType[activityType]
	if !ok {
		return DailyAggregate{}
	}
	return byDate[date].Sanitized()
}

// Units controls display formatting only; stored values are always metric.
type Units struct {
	Distance  string `json:"distance"`  // "km" or "mi"
	Elevation string `json:"elevation"` // "m" or "ft"
}

// TypeMeta carries presentation hints for an activity type.
type TypeMeta struct {
	Label  string `json:"label"`
	Accent string `json:"accent"`
}

// Dataset is the full payload behind the dashboard.
type Dataset struct {
	Types       []string            `json:"types"`
	Years       []int               `json:"years"`
	Aggregates  Aggregates          `json:"aggregates"`
	Activities  []Activity          `json:"activities"`
	Units       Units               `json:"units"`
	WeekStart   WeekStart           `json:"week_start"`
	TypeMeta    map[string]TypeMeta `json:"type_meta"`
	OtherBucket string              `json:"other_bucket"`
}

// TypeLabel returns the display label for an activity type.
func (d Dataset) TypeLabel(activityType string) string {
	if meta, ok := d.TypeMeta[activityType]; ok && strings.TrimSpace(meta.Label) != "" {
		return meta.Label
	}
	return activityType
}

// TypeAccent returns the accent color configured for a type, if any.
func (d Dataset) TypeAccent(activityType string) string {
	return strings.TrimSpace(d.TypeMeta[activityType].Accent)
}

func lenientNumber(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
