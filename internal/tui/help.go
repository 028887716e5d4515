package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelpOverlay draws a centered key reference. Any key dismisses it.
func (m Model) renderHelpOverlay(screenW, screenH int) string {
	headingStyle := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	descStyle := lipgloss.NewStyle().Foreground(colorText)
	hintStyle := lipgloss.NewStyle().Foreground(colorDim).Italic(true)

	sections := []struct {
		title string
		keys  []struct{ key, desc string }
	}{
		{"Selection", []struct{ key, desc string }{
			{"1-9", "Toggle an activity type"},
			{"a / 0", "All types"},
			{"t", "Open the activity type menu"},
			{"y", "Open the year menu"},
			{"space / x", "Toggle the row under the cursor (menu)"},
			{"enter / esc", "Apply / cancel the menu"},
		}},
		{"Cards", []struct{ key, desc string }{
			{"← → / h l", "Focus a year card"},
			{"m", "Next metric for the focused card"},
			{"M", "Use the focused card's metric everywhere"},
			{"f", "Drill into the next highlight"},
			{"esc", "Leave the drill-in"},
		}},
		{"Global", []struct{ key, desc string }{
			{"r", "Reload the dataset"},
			{"T", "Cycle theme (" + ThemeName() + ")"},
			{"?", "Toggle this help"},
			{"q / Ctrl+C", "Quit"},
		}},
	}

	lines := []string{headerStyle.Render("  OpenActivity Help"), ""}
	for _, s := range sections {
		lines = append(lines, headingStyle.Render("  "+s.title))
		for _, k := range s.keys {
			lines = append(lines, "    "+helpKeyStyle.Render(padRight(k.key, 14))+descStyle.Render(k.desc))
		}
		lines = append(lines, "")
	}
	lines = append(lines, "  "+hintStyle.Render("Press any key to dismiss"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	if screenH <= 0 {
		screenH = lipgloss.Height(box)
	}
	return lipgloss.Place(screenW, screenH, lipgloss.Center, lipgloss.Center, box)
}
