package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/janekbaraniewski/openactivity/internal/core"
	"github.com/janekbaraniewski/openactivity/internal/dashboard"
	"github.com/janekbaraniewski/openactivity/internal/selection"
)

// DatasetMsg delivers a reloaded dataset, from the file watcher or a manual
// refresh. A failed reload keeps the current data on screen.
type DatasetMsg struct {
	Dataset core.Dataset
	Err     error
}

type themePersistedMsg struct {
	err error
}

type menuKind int

const (
	menuNone menuKind = iota
	menuTypes
	menuYears
)

type Model struct {
	session *dashboard.Session
	view    dashboard.View

	width  int
	height int

	focus    int // index of the focused year card
	menu     menuKind
	cursor   int // 0 is the "All" row of an open menu
	showHelp bool
	status   string

	onReload      func() (core.Dataset, error)
	onThemeChange func(name string) error
}

func NewModel(session *dashboard.Session) Model {
	m := Model{session: session}
	m.recompute()
	return m
}

// SetOnReload sets the loader used by the manual refresh key.
func (m *Model) SetOnReload(fn func() (core.Dataset, error)) {
	m.onReload = fn
}

// SetOnThemeChange sets a callback that persists the chosen theme.
func (m *Model) SetOnThemeChange(fn func(name string) error) {
	m.onThemeChange = fn
}

func (m *Model) recompute() {
	m.view = m.session.View()
	m.focus = clamp(m.focus, 0, max(len(m.view.Cards)-1, 0))
}

func (m Model) focusedYear() (int, bool) {
	if m.focus < 0 || m.focus >= len(m.view.Cards) {
		return 0, false
	}
	return m.view.Cards[m.focus].Year, true
}

func (m Model) reloadCmd() tea.Cmd {
	fn := m.onReload
	if fn == nil {
		return nil
	}
	return func() tea.Msg {
		ds, err := fn()
		return DatasetMsg{Dataset: ds, Err: err}
	}
}

func (m Model) persistThemeCmd(name string) tea.Cmd {
	fn := m.onThemeChange
	if fn == nil {
		return nil
	}
	return func() tea.Msg {
		err := fn(name)
		if err != nil {
			log.WithError(err).Debug("tui: theme persist failed")
		}
		return themePersistedMsg{err: err}
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case DatasetMsg:
		if msg.Err != nil {
			m.status = "reload failed: " + msg.Err.Error()
			return m, nil
		}
		m.session.SetDataset(msg.Dataset)
		m.recompute()
		m.status = fmt.Sprintf("reloaded · %d activities", len(msg.Dataset.Activities))
		return m, nil

	case themePersistedMsg:
		if msg.err != nil {
			m.status = "theme save failed"
		} else {
			m.status = "theme saved"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if key == "?" && m.menu == menuNone {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.menu != menuNone {
		return m.handleMenuKey(key)
	}

	var cmd tea.Cmd
	switch key {
	case "q":
		return m, tea.Quit
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		domain := m.session.TypeDomain()
		if i := int(key[0] - '1'); i < len(domain) {
			m.session.QuickToggleType(selection.ValueChoice(domain[i]))
		}
	case "0", "a":
		m.session.QuickToggleType(selection.AllChoice[string]())
	case "t":
		m.session.OpenTypeMenu()
		m.menu, m.cursor = menuTypes, 0
	case "y":
		m.session.OpenYearMenu()
		m.menu, m.cursor = menuYears, 0
	case "left", "h", "shift+tab":
		m.focus = clamp(m.focus-1, 0, max(len(m.view.Cards)-1, 0))
		return m, nil
	case "right", "l", "tab":
		m.focus = clamp(m.focus+1, 0, max(len(m.view.Cards)-1, 0))
		return m, nil
	case "m":
		if year, ok := m.focusedYear(); ok {
			m.session.CycleMetric(year)
		}
	case "M":
		if m.focus < len(m.view.Cards) {
			m.session.SetAllMetrics(m.view.Cards[m.focus].Metric)
		}
	case "f":
		m.session.CycleFact()
	case "esc":
		m.session.SetFact("")
	case "r":
		m.status = "reloading…"
		cmd = m.reloadCmd()
	case "T":
		name := CycleTheme()
		m.session.SetDefaultAccent(string(ActiveTheme().Heat))
		m.status = "theme: " + name
		cmd = m.persistThemeCmd(name)
	default:
		return m, nil
	}
	m.recompute()
	return m, cmd
}

func (m Model) menuLen() int {
	switch m.menu {
	case menuTypes:
		return len(m.session.TypeDomain())
	case menuYears:
		return len(m.session.YearDomain())
	}
	return 0
}

func (m Model) handleMenuKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		m.cursor = clamp(m.cursor-1, 0, m.menuLen())
		return m, nil
	case "down", "j":
		m.cursor = clamp(m.cursor+1, 0, m.menuLen())
		return m, nil
	case " ", "x":
		m.applyMenu(m.cursor)
	case "a":
		m.applyMenu(0)
	case "enter":
		if m.menu == menuTypes {
			m.session.CommitTypeMenu()
		} else {
			m.session.CommitYearMenu()
		}
		m.menu = menuNone
	case "esc", "q":
		m.session.DiscardMenus()
		m.menu = menuNone
	default:
		return m, nil
	}
	m.recompute()
	return m, nil
}

// applyMenu applies the row under the cursor to the open draft; row 0 is
// "All".
func (m Model) applyMenu(row int) {
	switch m.menu {
	case menuTypes:
		c := selection.AllChoice[string]()
		if domain := m.session.TypeDomain(); row > 0 && row <= len(domain) {
			c = selection.ValueChoice(domain[row-1])
		}
		m.session.ApplyTypeMenu(c)
	case menuYears:
		c := selection.AllChoice[int]()
		if domain := m.session.YearDomain(); row > 0 && row <= len(domain) {
			c = selection.ValueChoice(domain[row-1])
		}
		m.session.ApplyYearMenu(c)
	}
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
