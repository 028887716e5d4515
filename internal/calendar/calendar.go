// Package calendar does heatmap date arithmetic on UTC day numbers so that
// daylight-saving transitions never shift a date into a neighboring cell.
package calendar

import (
	"strings"
	"time"

	"github.com/janekbaraniewski/openactivity/internal/core"
)

const (
	DateLayout  = "2006-01-02"
	daysPerWeek = 7
	secondsDay  = 86400
)

// ParseDate parses an ISO local date ("2024-01-15") as UTC midnight.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Date builds UTC midnight for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayNumber returns floor(UTC-midnight seconds / 86400) for t's calendar day.
func DayNumber(t time.Time) int64 {
	midnight := Date(t.Year(), t.Month(), t.Day())
	return floorDiv(midnight.Unix(), secondsDay)
}

// FromDayNumber is the inverse of DayNumber.
func FromDayNumber(n int64) time.Time {
	return time.Unix(n*secondsDay, 0).UTC()
}

// Format renders t's calendar day in ISO form.
func Format(t time.Time) string {
	return Date(t.Year(), t.Month(), t.Day()).Format(DateLayout)
}

// AddDays moves t by n calendar days using day numbers.
func AddDays(t time.Time, n int) time.Time {
	return FromDayNumber(DayNumber(t) + int64(n))
}

// RowIndex returns the grid row of a weekday: Sunday-first rows keep the
// weekday number, Monday-first rows shift it by six.
func RowIndex(weekday time.Weekday, ws core.WeekStart) int {
	d := int(weekday)
	if ws.Normalize() == core.WeekStartMonday {
		return (d + 6) % daysPerWeek
	}
	return d
}

// WeekStartOnOrBefore returns the first day of the week containing t.
func WeekStartOnOrBefore(t time.Time, ws core.WeekStart) time.Time {
	return AddDays(t, -RowIndex(t.Weekday(), ws))
}

// WeekEndOnOrAfter returns the last day of the week containing t.
func WeekEndOnOrAfter(t time.Time, ws core.WeekStart) time.Time {
	return AddDays(WeekStartOnOrBefore(t, ws), daysPerWeek-1)
}

// WeekIndex is the zero-based grid column of t relative to gridStart.
func WeekIndex(t, gridStart time.Time) int {
	return int(floorDiv(DayNumber(t)-DayNumber(gridStart), daysPerWeek))
}

// WeekOfYear numbers weeks from the Sunday on or before January 1, starting
// at 1. It ignores the user's week start preference.
func WeekOfYear(t time.Time) int {
	jan1 := Date(t.Year(), time.January, 1)
	return WeekIndex(t, WeekStartOnOrBefore(jan1, core.WeekStartSunday)) + 1
}

// Grid describes the columns of a year-long heatmap. Start and End are whole
// week boundaries, so leading and trailing cells may belong to adjacent years.
type Grid struct {
	Year      int
	WeekStart core.WeekStart
	Start     time.Time
	End       time.Time
	Weeks     int
}

// YearGrid lays out the weeks covering January 1 through December 31.
func YearGrid(year int, ws core.WeekStart) Grid {
	ws = ws.Normalize()
	start := WeekStartOnOrBefore(Date(year, time.January, 1), ws)
	end := WeekEndOnOrAfter(Date(year, time.December, 31), ws)
	return Grid{
		Year:      year,
		WeekStart: ws,
		Start:     start,
		End:       end,
		Weeks:     WeekIndex(end, start) + 1,
	}
}

// Position returns t's column and row within the grid.
func (g Grid) Position(t time.Time) (week, row int) {
	return WeekIndex(t, g.Start), RowIndex(t.Weekday(), g.WeekStart)
}

// Contains reports whether t falls in the grid's year (not merely its span).
func (g Grid) Contains(t time.Time) bool {
	return t.Year() == g.Year
}

// DateAt returns the date displayed at a column and row.
func (g Grid) DateAt(week, row int) time.Time {
	return AddDays(g.Start, week*daysPerWeek+row)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
