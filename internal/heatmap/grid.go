// Package heatmap turns per-date values into colored year grids.
package heatmap

import (
	"time"

	"github.com/janekbaraniewski/openactivity/internal/calendar"
	"github.com/janekbaraniewski/openactivity/internal/core"
)

// Cell is one day square. Outside cells belong to a neighboring year and are
// drawn blank.
type Cell struct {
	Date    time.Time
	Value   float64
	Color   string
	Outside bool
}

// YearGrid is a 7 x Weeks layout, Cells[row][week].
type YearGrid struct {
	Year      int
	WeekStart core.WeekStart
	Weeks     int
	Max       float64
	Cells     [7][]Cell
}

// BuildYearGrid places values (keyed by ISO date) onto the year's grid.
// Values for dates outside the year, or keys that do not parse, are ignored.
func BuildYearGrid(year int, ws core.WeekStart, values map[string]float64, accent string) YearGrid {
	layout := calendar.YearGrid(year, ws)
	grid := YearGrid{
		Year:      year,
		WeekStart: layout.WeekStart,
		Weeks:     layout.Weeks,
	}

	for date, v := range values {
		t, ok := calendar.ParseDate(date)
		if !ok || !layout.Contains(t) {
			continue
		}
		if v > grid.Max {
			grid.Max = v
		}
	}

	for row := 0; row < 7; row++ {
		grid.Cells[row] = make([]Cell, layout.Weeks)
		for week := 0; week < layout.Weeks; week++ {
			t := layout.DateAt(week, row)
			cell := Cell{Date: t}
			if !layout.Contains(t) {
				cell.Outside = true
				grid.Cells[row][week] = cell
				continue
			}
			cell.Value = values[calendar.Format(t)]
			cell.Color = Color(accent, cell.Value, grid.Max)
			grid.Cells[row][week] = cell
		}
	}
	return grid
}

// At returns the cell for a date inside the grid's year.
func (g YearGrid) At(t time.Time) (Cell, bool) {
	layout := calendar.YearGrid(g.Year, g.WeekStart)
	if !layout.Contains(t) {
		return Cell{}, false
	}
	week, row := layout.Position(t)
	if week < 0 || week >= len(g.Cells[row]) {
		return Cell{}, false
	}
	return g.Cells[row][week], true
}

// MonthStarts returns the column where each month's first day lands, for
// axis labels.
func (g YearGrid) MonthStarts() [12]int {
	layout := calendar.YearGrid(g.Year, g.WeekStart)
	var out [12]int
	for m := time.January; m <= time.December; m++ {
		out[m-1] = calendar.WeekIndex(calendar.Date(g.Year, m, 1), layout.Start)
	}
	return out
}
