package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/janekbaraniewski/openactivity/internal/aggregate"
	"github.com/janekbaraniewski/openactivity/internal/core"
	"github.com/janekbaraniewski/openactivity/internal/dashboard"
)

const defaultWidth = 100

func (m Model) View() string {
	w := m.width
	if w <= 0 {
		w = defaultWidth
	}
	if m.showHelp {
		return m.renderHelpOverlay(w, m.height)
	}

	var lines []string
	lines = append(lines, m.renderHeader(w)...)
	lines = append(lines, m.renderTypeChips())
	if m.menu != menuNone {
		lines = append(lines, strings.Split(m.renderMenu(), "\n")...)
	}
	lines = append(lines, "")
	lines = append(lines, m.renderBody(w)...)
	lines = append(lines, "")
	lines = append(lines, strings.Split(m.renderFooter(w), "\n")...)

	for i, line := range lines {
		lines[i] = ansi.Truncate(line, w, "…")
	}
	if m.height > 0 && len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHeader(w int) []string {
	v := m.view
	left := brandStyle.Render("▦ OpenActivity") + "  " +
		valueStyle.Render(v.TypeSummary) + dimStyle.Render(" · ") + valueStyle.Render(v.YearSummary)

	metric := dimStyle.Render("metric: mixed")
	if v.MetricOK {
		metric = labelStyle.Render("metric: ") + metricStyle.Render(v.Metric.Label())
	}

	gap := max(w-lipgloss.Width(left)-lipgloss.Width(metric), 1)
	sep := lipgloss.NewStyle().Foreground(colorBorder).Render(strings.Repeat("━", w))
	return []string{left + strings.Repeat(" ", gap) + metric, sep}
}

func (m Model) renderTypeChips() string {
	domain := m.session.TypeDomain()
	live := m.session.TypeMenu().Live()
	data := m.session.Dataset()

	parts := make([]string, 0, len(domain))
	for i, t := range domain {
		label := data.TypeLabel(t)
		if i < 9 {
			label = strconv.Itoa(i+1) + " " + label
		}
		if live.Includes(t) {
			parts = append(parts, chipOnStyle.Render(label))
		} else {
			parts = append(parts, chipOffStyle.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderMenu() string {
	var title string
	var rows []string
	var checked []bool

	switch m.menu {
	case menuTypes:
		title = "Activity types"
		draft := m.session.TypeMenu().Draft()
		data := m.session.Dataset()
		rows = append(rows, "All types")
		checked = append(checked, draft.AllMode)
		for _, t := range m.session.TypeDomain() {
			rows = append(rows, data.TypeLabel(t))
			checked = append(checked, draft.Includes(t))
		}
	case menuYears:
		title = "Years"
		draft := m.session.YearMenu().Draft()
		rows = append(rows, "All years")
		checked = append(checked, draft.AllMode)
		for _, y := range m.session.YearDomain() {
			rows = append(rows, strconv.Itoa(y))
			checked = append(checked, draft.Includes(y))
		}
	}

	lines := []string{headerStyle.Render(title)}
	for i, row := range rows {
		box := "[ ]"
		if checked[i] {
			box = "[x]"
		}
		pointer := "  "
		if i == m.cursor {
			pointer = cursorStyle.Render("▸ ")
		}
		lines = append(lines, pointer+valueStyle.Render(box+" "+row))
	}
	lines = append(lines, dimStyle.Render("space toggle · a all · enter done · esc cancel"))
	return menuBoxStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderBody(w int) []string {
	v := m.view
	if v.Empty() {
		return []string{"", dimStyle.Render("  No activities match the current selection."),
			dimStyle.Render("  Press a for all types or y to pick years.")}
	}

	var lines []string
	for i, card := range v.Cards {
		lines = append(lines, strings.Split(m.renderCard(card, i == m.focus, w), "\n")...)
	}
	if len(v.Cards) > 1 {
		lines = append(lines, labelStyle.Render("All visible years  ")+valueStyle.Render(formatTotals(v.Totals, v.Units)))
	}
	lines = append(lines, "")
	lines = append(lines, m.renderFrequency()...)
	lines = append(lines, "")
	lines = append(lines, m.renderFacts()...)
	if v.Drill != nil {
		lines = append(lines, m.renderDrill(*v.Drill)...)
	}
	return lines
}

func (m Model) renderCard(card dashboard.YearCard, focused bool, w int) string {
	inner := max(w-4, 10)

	metrics := make([]string, 0, len(card.Filterable))
	for _, metric := range card.Filterable {
		if metric == card.Metric {
			metrics = append(metrics, metricStyle.Render(metric.Label()))
		} else {
			metrics = append(metrics, dimStyle.Render(metric.Label()))
		}
	}

	title := headerStyle.Render(strconv.Itoa(card.Year)) + "  " + strings.Join(metrics, dimStyle.Render(" | "))
	lines := []string{
		title,
		labelStyle.Render(formatTotals(card.Totals, m.view.Units)),
	}
	lines = append(lines, renderHeatGrid(card.Grid, inner)...)
	lines = append(lines, renderLegend(m.view.Accent))

	style := cardStyle
	if focused {
		style = cardFocusStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func formatTotals(t aggregate.Totals, u core.Units) string {
	parts := []string{
		fmt.Sprintf("%d activities", t.Count),
		fmt.Sprintf("%d active days", t.ActiveDays),
	}
	if t.Distance > 0 {
		parts = append(parts, u.FormatDistance(t.Distance))
	}
	if t.MovingTime > 0 {
		parts = append(parts, core.FormatDuration(t.MovingTime))
	}
	if t.ElevationGain > 0 {
		parts = append(parts, u.FormatElevation(t.ElevationGain))
	}
	return strings.Join(parts, " · ")
}

func (m Model) renderFrequency() []string {
	mx := m.view.Matrix
	accent := m.view.Accent
	return []string{
		headerStyle.Render("Rhythm"),
		labelStyle.Render(padRight("Weekday", 9)) + renderStrip(mx.DayTotals[:], accent) + dimStyle.Render("  S M T W T F S"),
		labelStyle.Render(padRight("Month", 9)) + renderStrip(mx.MonthTotals[:], accent) + dimStyle.Render("  J F M A M J J A S O N D"),
		labelStyle.Render(padRight("Hour", 9)) + renderStrip(mx.HourTotals[:], accent) + dimStyle.Render("  0h → 23h"),
		labelStyle.Render(padRight("Week", 9)) + renderStrip(mx.WeekTotals[1:], accent),
	}
}

func (m Model) renderFacts() []string {
	active := m.session.Fact()
	parts := make([]string, 0, len(m.view.Facts))
	for _, f := range m.view.Facts {
		text := f.Key.Label() + ": " + f.Label()
		if f.Key == active {
			parts = append(parts, cursorStyle.Render("▸ "+text))
			continue
		}
		if !f.OK {
			parts = append(parts, dimStyle.Render(text))
			continue
		}
		parts = append(parts, valueStyle.Render(text))
	}
	return []string{headerStyle.Render("Highlights"), strings.Join(parts, dimStyle.Render("  ·  "))}
}

func (m Model) renderDrill(d aggregate.Matrix) []string {
	totals := d.TypeTotals()
	data := m.session.Dataset()

	types := make([]string, 0, len(totals.TypeCounts))
	for _, t := range totals.SortedTypes() {
		types = append(types, fmt.Sprintf("%s %d", data.TypeLabel(t), totals.TypeCounts[t]))
	}
	lines := []string{
		labelStyle.Render(fmt.Sprintf("  %s · %d activities", m.view.Fact.Label(), d.Activities)),
		"  " + valueStyle.Render(strings.Join(types, " · ")),
	}
	if len(totals.OtherSubtypeCounts) > 0 {
		others := make([]string, 0, len(totals.OtherSubtypeCounts))
		for _, s := range totals.SortedSubtypes() {
			others = append(others, fmt.Sprintf("%s %d", s, totals.OtherSubtypeCounts[s]))
		}
		lines = append(lines, "  "+dimStyle.Render(data.TypeLabel(data.OtherBucket)+": "+strings.Join(others, " · ")))
	}
	return lines
}

func (m Model) renderFooter(w int) string {
	sep := lipgloss.NewStyle().Foreground(colorBorder).Render(strings.Repeat("━", w))
	if m.status != "" {
		return sep + "\n " + warnStyle.Render(m.status)
	}
	keys := []struct{ key, desc string }{
		{"1-9", "type"}, {"t/y", "menus"}, {"m", "metric"}, {"f", "fact"},
		{"T", "theme"}, {"r", "reload"}, {"?", "help"}, {"q", "quit"},
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, helpKeyStyle.Render(k.key)+" "+helpStyle.Render(k.desc))
	}
	return sep + "\n " + strings.Join(parts, "  ")
}

// padRight pads a plain string with spaces to the given width.
func padRight(s string, width int) string {
	if n := ansi.StringWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
