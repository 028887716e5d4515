package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janekbaraniewski/openactivity/internal/core"
	"github.com/janekbaraniewski/openactivity/internal/heatmap"
)

func TestRowLabel(t *testing.T) {
	sunday := []string{"", "Mon", "", "Wed", "", "Fri", ""}
	monday := []string{"Mon", "", "Wed", "", "Fri", "", ""}
	for row := 0; row < 7; row++ {
		assert.Equal(t, sunday[row], rowLabel(row, core.WeekStartSunday), "sunday row %d", row)
		assert.Equal(t, monday[row], rowLabel(row, core.WeekStartMonday), "monday row %d", row)
	}
}

func TestCellWidth(t *testing.T) {
	assert.Equal(t, 2, cellWidth(53, 120))
	assert.Equal(t, 1, cellWidth(53, 80))
}

func TestMonthAxis(t *testing.T) {
	g := heatmap.BuildYearGrid(2024, core.WeekStartSunday, nil, heatmap.DefaultAccent)
	axis := monthAxis(g, 2)
	assert.Len(t, []rune(axis), g.Weeks*2)
	assert.True(t, strings.HasPrefix(axis, "Jan"))
	// February 2024 starts in column 4.
	assert.Equal(t, "Feb", string([]rune(axis)[8:11]))
	assert.Contains(t, axis, "Dec")
}

func TestRenderHeatGrid(t *testing.T) {
	values := map[string]float64{"2024-01-01": 3, "2024-06-15": 1}
	g := heatmap.BuildYearGrid(2024, core.WeekStartSunday, values, heatmap.DefaultAccent)

	lines := renderHeatGrid(g, 200)
	require.Len(t, lines, 8)
	for _, line := range lines[1:] {
		assert.LessOrEqual(t, ansi.StringWidth(line), rowLabelW+g.Weeks*2)
	}
	assert.Contains(t, ansi.Strip(lines[2]), "Mon")
	// Sunday Dec 31 2023 belongs to the previous year and stays blank.
	assert.True(t, strings.HasPrefix(ansi.Strip(lines[1]), strings.Repeat(" ", rowLabelW+2)))
}

func TestRenderStripHandlesEmpty(t *testing.T) {
	out := ansi.Strip(renderStrip(make([]float64, 7), heatmap.DefaultAccent))
	assert.Equal(t, strings.Repeat(heatGlyph, 7), out)
}
