package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/janekbaraniewski/openactivity/internal/core"
	"github.com/janekbaraniewski/openactivity/internal/heatmap"
)

const (
	heatGlyph   = "■"
	rowLabelW   = 4
	legendSteps = 5
)

// cellWidth picks two columns per week when the grid fits, one otherwise.
func cellWidth(weeks, width int) int {
	if rowLabelW+weeks*2 <= width {
		return 2
	}
	return 1
}

func heatCell(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(heatGlyph)
}

// renderHeatGrid draws a month axis plus seven weekday rows.
func renderHeatGrid(g heatmap.YearGrid, width int) []string {
	cw := cellWidth(g.Weeks, width)
	lines := []string{strings.Repeat(" ", rowLabelW) + dimStyle.Render(monthAxis(g, cw))}

	for row := 0; row < 7; row++ {
		var b strings.Builder
		b.WriteString(dimStyle.Render(padRight(rowLabel(row, g.WeekStart), rowLabelW)))
		for _, cell := range g.Cells[row] {
			if cell.Outside {
				b.WriteString(strings.Repeat(" ", cw))
				continue
			}
			b.WriteString(heatCell(cell.Color))
			if cw > 1 {
				b.WriteString(" ")
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

func monthAxis(g heatmap.YearGrid, cw int) string {
	axis := []rune(strings.Repeat(" ", g.Weeks*cw))
	next := 0
	for i, col := range g.MonthStarts() {
		pos := col * cw
		name := []rune(time.Month(i + 1).String()[:3])
		if pos < next || pos+len(name) > len(axis) {
			continue
		}
		copy(axis[pos:], name)
		next = pos + len(name) + 1
	}
	return string(axis)
}

// rowLabel names Monday, Wednesday and Friday rows.
func rowLabel(row int, ws core.WeekStart) string {
	weekday := time.Weekday(row)
	if ws.Normalize() == core.WeekStartMonday {
		weekday = time.Weekday((row + 1) % 7)
	}
	switch weekday {
	case time.Monday, time.Wednesday, time.Friday:
		return weekday.String()[:3]
	}
	return ""
}

func renderLegend(accent string) string {
	var b strings.Builder
	b.WriteString(dimStyle.Render("Less "))
	for _, c := range heatmap.Levels(accent, legendSteps) {
		b.WriteString(heatCell(c))
		b.WriteString(" ")
	}
	b.WriteString(dimStyle.Render("More"))
	return b.String()
}

// renderStrip draws one colored cell per bucket, scaled to the strip's max.
func renderStrip(values []float64, accent string) string {
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	var b strings.Builder
	for _, v := range values {
		b.WriteString(heatCell(heatmap.Color(accent, v, peak)))
	}
	return b.String()
}
