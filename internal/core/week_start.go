package core

import "strings"

// WeekStart selects which weekday opens a heatmap column.
type WeekStart string

const (
	WeekStartSunday WeekStart = "sunday"
	WeekStartMonday WeekStart = "monday"
)

// ParseWeekStart defaults to Sunday for anything it does not recognize.
func ParseWeekStart(s string) WeekStart {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monday", "mon", "1":
		return WeekStartMonday
	default:
		return WeekStartSunday
	}
}

// Normalize maps unknown or empty values to Sunday.
func (w WeekStart) Normalize() WeekStart {
	return ParseWeekStart(string(w))
}
