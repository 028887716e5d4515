package tui

import "github.com/charmbracelet/lipgloss"

// Palette of the active theme; applyTheme rewrites these and rebuilds the
// styles below.
var (
	colorBase      lipgloss.Color
	colorSurface   lipgloss.Color
	colorBorder    lipgloss.Color
	colorText      lipgloss.Color
	colorSubtext   lipgloss.Color
	colorDim       lipgloss.Color
	colorAccent    lipgloss.Color
	colorHighlight lipgloss.Color
	colorWarn      lipgloss.Color
	colorHeat      lipgloss.Color
)

var (
	brandStyle     lipgloss.Style
	headerStyle    lipgloss.Style
	labelStyle     lipgloss.Style
	valueStyle     lipgloss.Style
	dimStyle       lipgloss.Style
	helpStyle      lipgloss.Style
	helpKeyStyle   lipgloss.Style
	warnStyle      lipgloss.Style
	chipOnStyle    lipgloss.Style
	chipOffStyle   lipgloss.Style
	cardStyle      lipgloss.Style
	cardFocusStyle lipgloss.Style
	menuBoxStyle   lipgloss.Style
	cursorStyle    lipgloss.Style
	metricStyle    lipgloss.Style
)

func applyTheme(t Theme) {
	colorBase = t.Base
	colorSurface = t.Surface
	colorBorder = t.Border
	colorText = t.Text
	colorSubtext = t.Subtext
	colorDim = t.Dim
	colorAccent = t.Accent
	colorHighlight = t.Highlight
	colorWarn = t.Warn
	colorHeat = t.Heat

	brandStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorHighlight)
	labelStyle = lipgloss.NewStyle().Foreground(colorSubtext)
	valueStyle = lipgloss.NewStyle().Foreground(colorText)
	dimStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpKeyStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(colorWarn)

	chipOnStyle = lipgloss.NewStyle().
		Foreground(colorBase).
		Background(colorAccent).
		Bold(true).
		Padding(0, 1)
	chipOffStyle = lipgloss.NewStyle().
		Foreground(colorSubtext).
		Background(colorSurface).
		Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)
	cardFocusStyle = cardStyle.BorderForeground(colorAccent)

	menuBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorBase).
		Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	metricStyle = lipgloss.NewStyle().Foreground(colorHighlight).Bold(true)
}
