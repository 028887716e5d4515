package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/janekbaraniewski/openactivity/internal/core"
	"github.com/janekbaraniewski/openactivity/internal/dashboard"
)

func hourPtr(h int) *int { return &h }

func testDataset() core.Dataset {
	return core.Dataset{
		Types: []string{"Run", "Ride"},
		Years: []int{2024, 2023},
		Aggregates: core.Aggregates{
			2024: {
				"Run":  {"2024-01-01": {Count: 1, Distance: 5000, MovingTime: 1800}},
				"Ride": {"2024-01-02": {Count: 1, Distance: 20000, MovingTime: 3000, ElevationGain: 120}},
			},
			2023: {
				"Run": {"2023-06-05": {Count: 2, Distance: 8000, MovingTime: 2400}},
			},
		},
		Activities: []core.Activity{
			{Type: "Run", Date: "2024-01-01", Year: 2024, Hour: hourPtr(7)},
			{Type: "Ride", Date: "2024-01-02", Year: 2024, Hour: hourPtr(17)},
			{Type: "Run", Date: "2023-06-05", Year: 2023, Hour: hourPtr(6)},
			{Type: "Run", Date: "2023-06-05", Year: 2023, Hour: hourPtr(18)},
		},
		TypeMeta: map[string]core.TypeMeta{"Ride": {Label: "Bike"}},
	}
}

func newTestModel(opts dashboard.Options) Model {
	return NewModel(dashboard.NewSession(testDataset(), opts))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

func TestNumberKeyTogglesType(t *testing.T) {
	m := press(t, newTestModel(dashboard.Options{}), "2")
	assert.Equal(t, []string{"Ride"}, m.view.Types)
	assert.Equal(t, "Bike", m.view.TypeSummary)

	m = press(t, m, "2")
	assert.Equal(t, []string{"Run", "Ride"}, m.view.Types, "emptied selection collapses to all")

	m = press(t, m, "9")
	assert.Equal(t, []string{"Run", "Ride"}, m.view.Types)
}

func TestTypeMenuCommitAndDiscard(t *testing.T) {
	m := press(t, newTestModel(dashboard.Options{}), "t", "down", "space")
	require.Equal(t, menuTypes, m.menu)
	assert.Equal(t, []string{"Run", "Ride"}, m.view.Types, "draft does not touch the live view")
	assert.Contains(t, m.View(), "Activity types")

	m = press(t, m, "esc")
	assert.Equal(t, menuNone, m.menu)
	assert.True(t, m.session.TypeMenu().Live().AllMode)

	m = press(t, m, "t", "down", "space", "enter")
	assert.Equal(t, menuNone, m.menu)
	assert.Equal(t, []string{"Ride"}, m.view.Types)
	assert.Equal(t, []int{2024}, m.view.Years)
}

func TestYearMenuCanSelectNothing(t *testing.T) {
	m := press(t, newTestModel(dashboard.Options{AllowToggleOffAll: true}), "y", "a", "enter")
	assert.True(t, m.view.Empty())
	assert.Equal(t, "None", m.view.YearSummary)
	assert.Contains(t, m.View(), "No activities match")
}

func TestMenuCursorIsClamped(t *testing.T) {
	m := press(t, newTestModel(dashboard.Options{}), "y", "up", "down", "down", "down", "down")
	assert.Equal(t, 2, m.cursor)
}

func TestMetricKeysFollowFocus(t *testing.T) {
	m := press(t, newTestModel(dashboard.Options{}), "m")
	assert.Equal(t, core.MetricDistance, m.view.Cards[0].Metric)
	assert.Equal(t, core.MetricActiveDays, m.view.Cards[1].Metric)
	assert.False(t, m.view.MetricOK)

	m = press(t, m, "M")
	assert.True(t, m.view.MetricOK)
	assert.Equal(t, core.MetricDistance, m.view.Metric)

	m = press(t, m, "right", "m")
	assert.Equal(t, 1, m.focus)
	assert.Equal(t, core.MetricMovingTime, m.view.Cards[1].Metric)
}

func TestFactKeyDrillsIn(t *testing.T) {
	m := press(t, newTestModel(dashboard.Options{}), "f")
	assert.Equal(t, core.FactMostActiveDay, m.session.Fact())
	require.NotNil(t, m.view.Drill)
	assert.Equal(t, 3, m.view.Drill.Activities, "two runs on 2023-06-05 plus one in 2024")
	assert.Contains(t, m.View(), "Monday")

	m = press(t, m, "esc")
	assert.Nil(t, m.view.Drill)
}

func TestDatasetMsg(t *testing.T) {
	m := newTestModel(dashboard.Options{})

	updated, _ := m.Update(DatasetMsg{Err: errors.New("boom")})
	m = updated.(Model)
	assert.Contains(t, m.status, "reload failed")
	assert.Len(t, m.view.Cards, 2)

	next := testDataset()
	delete(next.Aggregates, 2023)
	next.Activities = next.Activities[:2]
	updated, _ = m.Update(DatasetMsg{Dataset: next})
	m = updated.(Model)
	assert.Len(t, m.view.Cards, 1)
	assert.Contains(t, m.status, "reloaded")
}

func TestReloadKeyRunsLoader(t *testing.T) {
	m := newTestModel(dashboard.Options{})
	calls := 0
	m.SetOnReload(func() (core.Dataset, error) {
		calls++
		return testDataset(), nil
	})

	updated, cmd := m.Update(keyMsg("r"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(DatasetMsg)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "reloading…", updated.(Model).status)
}

func TestThemeKeyUpdatesAccent(t *testing.T) {
	saved, idx := snapshotThemeState()
	defer restoreThemeState(saved, idx)

	var persisted string
	m := newTestModel(dashboard.Options{})
	m.SetOnThemeChange(func(name string) error {
		persisted = name
		return nil
	})

	updated, cmd := m.Update(keyMsg("T"))
	m = updated.(Model)
	require.NotNil(t, cmd)
	_, ok := cmd().(themePersistedMsg)
	assert.True(t, ok)
	assert.Equal(t, ActiveTheme().Name, persisted)
	assert.Equal(t, string(ActiveTheme().Heat), m.view.Accent)
}

func TestViewRendersCards(t *testing.T) {
	m := newTestModel(dashboard.Options{})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 200})
	out := updated.(Model).View()

	for _, want := range []string{"OpenActivity", "All types", "2024", "2023", "Rhythm", "Highlights", "Less", "Jan"} {
		assert.Contains(t, out, want)
	}
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 140)
	}
}

func TestHelpOverlayToggles(t *testing.T) {
	m := press(t, newTestModel(dashboard.Options{}), "?")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "OpenActivity Help")

	m = press(t, m, "x")
	assert.False(t, m.showHelp)
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(dashboard.Options{})
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = press(t, m, "t")
	_, cmd = m.Update(keyMsg("q"))
	assert.Nil(t, cmd, "q closes an open menu instead of quitting")
}
