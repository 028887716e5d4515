package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/janekbaraniewski/openactivity/internal/calendar"
	"github.com/janekbaraniewski/openactivity/internal/core"
)

const (
	// MaxWeekOfYear is the last week index that accumulates; index 0 is unused.
	MaxWeekOfYear = 53
)

// Breakdown counts which activity types, and which subtypes of the catch-all
// bucket, landed in a cell.
type Breakdown struct {
	TypeCounts         map[string]int
	OtherSubtypeCounts map[string]int
}

func (b *Breakdown) add(a core.Activity, otherBucket string) {
	if b.TypeCounts == nil {
		b.TypeCounts = make(map[string]int)
	}
	b.TypeCounts[a.Type]++
	if otherBucket == "" || a.Type != otherBucket || a.Subtype == "" {
		return
	}
	if b.OtherSubtypeCounts == nil {
		b.OtherSubtypeCounts = make(map[string]int)
	}
	b.OtherSubtypeCounts[a.Subtype]++
}

// SortedTypes returns the breakdown's types, most frequent first, ties by name.
func (b Breakdown) SortedTypes() []string { return sortedByCount(b.TypeCounts) }

// SortedSubtypes orders the catch-all subtypes like SortedTypes.
func (b Breakdown) SortedSubtypes() []string { return sortedByCount(b.OtherSubtypeCounts) }

func sortedByCount(counts map[string]int) []string {
	keys := lo.Keys(counts)
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Predicate selects activities, e.g. those behind a best-of fact.
type Predicate func(core.Activity) bool

// Options configure Build. Years fixes both the filter and the row order.
// A zero Metric counts activities.
type Options struct {
	Years       []int
	Predicate   Predicate
	Metric      core.MetricKey
	Aggregates  core.Aggregates
	OtherBucket string
}

// Matrix holds weekday, month and hour distributions split by year row, plus
// week-of-year totals across all rows.
type Matrix struct {
	Years  []int
	Metric core.MetricKey

	Day   [][7]float64
	Month [][12]float64
	Hour  [][24]float64

	DayBreakdown   [][7]Breakdown
	MonthBreakdown [][12]Breakdown
	HourBreakdown  [][24]Breakdown

	DayTotals   [7]float64
	MonthTotals [12]float64
	HourTotals  [24]float64
	WeekTotals  [MaxWeekOfYear + 1]float64

	// Activities counts the activities that passed the filters; HourSamples
	// those among them with a usable start hour.
	Activities  int
	HourSamples int
}

// TypeTotals sums the weekday breakdowns. Every counted activity lands in
// exactly one weekday cell, so the result covers the whole matrix.
func (m Matrix) TypeTotals() Breakdown {
	var total Breakdown
	for _, row := range m.DayBreakdown {
		for _, cell := range row {
			for typ, n := range cell.TypeCounts {
				if total.TypeCounts == nil {
					total.TypeCounts = make(map[string]int)
				}
				total.TypeCounts[typ] += n
			}
			for sub, n := range cell.OtherSubtypeCounts {
				if total.OtherSubtypeCounts == nil {
					total.OtherSubtypeCounts = make(map[string]int)
				}
				total.OtherSubtypeCounts[sub] += n
			}
		}
	}
	return total
}

func newMatrix(years []int, metric core.MetricKey) Matrix {
	n := len(years)
	return Matrix{
		Years:          append([]int(nil), years...),
		Metric:         metric,
		Day:            make([][7]float64, n),
		Month:          make([][12]float64, n),
		Hour:           make([][24]float64, n),
		DayBreakdown:   make([][7]Breakdown, n),
		MonthBreakdown: make([][12]Breakdown, n),
		HourBreakdown:  make([][24]Breakdown, n),
	}
}

// Build scans activities into a frequency matrix. Activities outside
// opts.Years, rejected by opts.Predicate, or with unparseable dates are
// skipped.
//
// For distance, moving time and elevation the day's (year, type) total is
// split evenly across that day's activity count, since per-activity values
// are not part of the dataset.
func Build(activities []core.Activity, opts Options) Matrix {
	m := newMatrix(opts.Years, opts.Metric)
	rowByYear := make(map[int]int, len(opts.Years))
	for i, y := range opts.Years {
		if _, dup := rowByYear[y]; !dup {
			rowByYear[y] = i
		}
	}

	for _, a := range activities {
		row, ok := rowByYear[a.Year]
		if !ok {
			continue
		}
		if opts.Predicate != nil && !opts.Predicate(a) {
			continue
		}
		date, ok := calendar.ParseDate(a.Date)
		if !ok {
			continue
		}

		w := weight(a, opts)
		m.Activities++

		weekday := int(date.Weekday())
		month := int(date.Month()) - 1

		m.Day[row][weekday] += w
		m.DayBreakdown[row][weekday].add(a, opts.OtherBucket)
		m.Month[row][month] += w
		m.MonthBreakdown[row][month].add(a, opts.OtherBucket)

		if hour, ok := a.ValidHour(); ok {
			m.HourSamples++
			m.Hour[row][hour] += w
			m.HourBreakdown[row][hour].add(a, opts.OtherBucket)
		}

		if week := calendar.WeekOfYear(date); week >= 1 && week <= MaxWeekOfYear {
			m.WeekTotals[week] += w
		}
	}

	for row := range m.Years {
		for i, v := range m.Day[row] {
			m.DayTotals[i] += v
		}
		for i, v := range m.Month[row] {
			m.MonthTotals[i] += v
		}
		for i, v := range m.Hour[row] {
			m.HourTotals[i] += v
		}
	}
	return m
}

func weight(a core.Activity, opts Options) float64 {
	if !opts.Metric.Weighted() {
		return 1
	}
	day := opts.Aggregates.Entry(a.Year, a.Type, a.Date)
	if day.Count <= 0 {
		return 0
	}
	return day.Value(opts.Metric) / float64(day.Count)
}

// FilterTypes keeps activities whose type is in types. A nil slice keeps all.
func FilterTypes(activities []core.Activity, types []string) []core.Activity {
	if types == nil {
		return activities
	}
	keep := lo.SliceToMap(types, func(t string) (string, struct{}) {
		return t, struct{}{}
	})
	return lo.Filter(activities, func(a core.Activity, _ int) bool {
		_, ok := keep[a.Type]
		return ok
	})
}

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// WeekdayName is the Sunday-first weekday label for a day index.
func WeekdayName(i int) string {
	if i < 0 || i >= len(weekdayNames) {
		return ""
	}
	return weekdayNames[i]
}

// MonthName is the label for a zero-based month index.
func MonthName(i int) string {
	if i < 0 || i > 11 {
		return ""
	}
	return time.Month(i + 1).String()
}

// HourLabel renders an hour index as "7 AM" / "12 PM".
func HourLabel(h int) string {
	if h < 0 || h > 23 {
		return ""
	}
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d %s", display, suffix)
}
