package tui

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// OPENACTIVITY_THEME_DIR can point to one or more additional theme
// directories (path-list separated).
const themeDirEnvVar = "OPENACTIVITY_THEME_DIR"

// Theme is the visual token set of the dashboard. Heat is the accent that
// heat cells ramp towards when no activity type supplies its own.
//
// External themes are JSON files with matching snake_case fields, for
// example: {"name":"My Theme","base":"#111111","heat":"#39d353",...}.
type Theme struct {
	Name string `json:"name"`
	Icon string `json:"icon"`

	Base    lipgloss.Color `json:"base"`
	Surface lipgloss.Color `json:"surface"`
	Border  lipgloss.Color `json:"border"`

	Text    lipgloss.Color `json:"text"`
	Subtext lipgloss.Color `json:"subtext"`
	Dim     lipgloss.Color `json:"dim"`

	Accent    lipgloss.Color `json:"accent"`
	Highlight lipgloss.Color `json:"highlight"`
	Warn      lipgloss.Color `json:"warn"`
	Heat      lipgloss.Color `json:"heat"`
}

var (
	themeMu        sync.RWMutex
	themes         []Theme
	activeThemeIdx int
)

func init() {
	themes = builtinThemes()
	activeThemeIdx = defaultThemeIndex(themes)
	if len(themes) > 0 {
		applyTheme(themes[activeThemeIdx])
	}
}

func builtinThemes() []Theme {
	return []Theme{
		{
			Name: "GitHub Dark", Icon: "🟩",
			Base: "#0D1117", Surface: "#161B22", Border: "#30363D",
			Text: "#E6EDF3", Subtext: "#9198A1", Dim: "#6E7681",
			Accent: "#58A6FF", Highlight: "#D2A8FF", Warn: "#D29922", Heat: "#39D353",
		},
		{
			Name: "Strava", Icon: "🏃",
			Base: "#121212", Surface: "#1E1E1E", Border: "#333333",
			Text: "#F0F0F0", Subtext: "#BDBDBD", Dim: "#757575",
			Accent: "#FC4C02", Highlight: "#FF8A50", Warn: "#FFC107", Heat: "#FC4C02",
		},
		{
			Name: "Catppuccin Mocha", Icon: "🐱",
			Base: "#1E1E2E", Surface: "#313244", Border: "#45475A",
			Text: "#CDD6F4", Subtext: "#A6ADC8", Dim: "#585B70",
			Accent: "#CBA6F7", Highlight: "#B4BEFE", Warn: "#F9E2AF", Heat: "#A6E3A1",
		},
		{
			Name: "Dracula", Icon: "🧛",
			Base: "#282A36", Surface: "#44475A", Border: "#6272A4",
			Text: "#F8F8F2", Subtext: "#BFBFBF", Dim: "#6272A4",
			Accent: "#BD93F9", Highlight: "#FF79C6", Warn: "#F1FA8C", Heat: "#50FA7B",
		},
		{
			Name: "Nord", Icon: "❄",
			Base: "#2E3440", Surface: "#3B4252", Border: "#4C566A",
			Text: "#ECEFF4", Subtext: "#D8DEE9", Dim: "#4C566A",
			Accent: "#88C0D0", Highlight: "#B48EAD", Warn: "#EBCB8B", Heat: "#A3BE8C",
		},
		{
			Name: "Tokyo Night", Icon: "🌃",
			Base: "#1A1B26", Surface: "#24283B", Border: "#414868",
			Text: "#C0CAF5", Subtext: "#A9B1D6", Dim: "#565F89",
			Accent: "#7AA2F7", Highlight: "#BB9AF7", Warn: "#E0AF68", Heat: "#9ECE6A",
		},
		{
			Name: "Gruvbox", Icon: "🌻",
			Base: "#282828", Surface: "#3C3836", Border: "#504945",
			Text: "#EBDBB2", Subtext: "#D5C4A1", Dim: "#665C54",
			Accent: "#83A598", Highlight: "#D3869B", Warn: "#FABD2F", Heat: "#B8BB26",
		},
		{
			Name: "Grayscale", Icon: "⬛",
			Base: "#000000", Surface: "#181818", Border: "#3E3E3E",
			Text: "#F5F5F5", Subtext: "#D6D6D6", Dim: "#A8A8A8",
			Accent: "#FFFFFF", Highlight: "#D9D9D9", Warn: "#BEBEBE", Heat: "#FFFFFF",
		},
	}
}

func defaultThemeIndex(all []Theme) int {
	for i, t := range all {
		if strings.EqualFold(strings.TrimSpace(t.Name), "GitHub Dark") {
			return i
		}
	}
	return 0
}

func trimColor(c lipgloss.Color) lipgloss.Color {
	return lipgloss.Color(strings.TrimSpace(string(c)))
}

func normalizeTheme(in Theme) Theme {
	in.Name = strings.TrimSpace(in.Name)
	in.Icon = strings.TrimSpace(in.Icon)
	if in.Icon == "" {
		in.Icon = "🎨"
	}
	for _, c := range in.colors() {
		*c.value = trimColor(*c.value)
	}
	return in
}

type themeColor struct {
	name  string
	value *lipgloss.Color
}

func (t *Theme) colors() []themeColor {
	return []themeColor{
		{"base", &t.Base}, {"surface", &t.Surface}, {"border", &t.Border},
		{"text", &t.Text}, {"subtext", &t.Subtext}, {"dim", &t.Dim},
		{"accent", &t.Accent}, {"highlight", &t.Highlight}, {"warn", &t.Warn}, {"heat", &t.Heat},
	}
}

func (t Theme) validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("missing required field: name")
	}
	var missing []string
	for _, c := range t.colors() {
		if strings.TrimSpace(string(*c.value)) == "" {
			missing = append(missing, c.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required color fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func themeSearchDirs(configDir string) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(path string) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}

	if strings.TrimSpace(configDir) != "" {
		add(filepath.Join(configDir, "themes"))
	}
	if env := strings.TrimSpace(os.Getenv(themeDirEnvVar)); env != "" {
		for _, part := range strings.Split(env, string(os.PathListSeparator)) {
			add(part)
		}
	}
	return out
}

func loadThemesFromDir(dir string) ([]Theme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read theme dir %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})

	var loaded []Theme
	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			continue
		}
		var t Theme
		if err := json.Unmarshal(data, &t); err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", path, err))
			continue
		}
		t = normalizeTheme(t)
		if err := t.validate(); err != nil {
			errs = append(errs, fmt.Errorf("validate %s: %w", path, err))
			continue
		}
		loaded = append(loaded, t)
	}
	return loaded, errors.Join(errs...)
}

// mergeThemes appends extra themes, replacing built-ins with the same name.
func mergeThemes(base, extra []Theme) []Theme {
	if len(extra) == 0 {
		return base
	}
	merged := append([]Theme(nil), base...)
	indexByName := make(map[string]int, len(merged))
	for i, t := range merged {
		indexByName[strings.ToLower(t.Name)] = i
	}
	for _, t := range extra {
		k := strings.ToLower(t.Name)
		if i, ok := indexByName[k]; ok {
			merged[i] = t
			continue
		}
		indexByName[k] = len(merged)
		merged = append(merged, t)
	}
	return merged
}

func setActiveThemeByNameLocked(name string) bool {
	name = strings.TrimSpace(name)
	for i, t := range themes {
		if name != "" && strings.EqualFold(t.Name, name) {
			activeThemeIdx = i
			applyTheme(t)
			return true
		}
	}
	return false
}

// LoadThemes reloads the catalog from the built-ins plus <configDir>/themes
// and OPENACTIVITY_THEME_DIR. Invalid files are skipped and reported in the
// joined error; valid ones stay available.
func LoadThemes(configDir string) error {
	themeMu.Lock()
	defer themeMu.Unlock()

	current := ""
	if activeThemeIdx >= 0 && activeThemeIdx < len(themes) {
		current = themes[activeThemeIdx].Name
	}

	next := builtinThemes()
	var errs []error
	for _, dir := range themeSearchDirs(configDir) {
		loaded, err := loadThemesFromDir(dir)
		if err != nil {
			errs = append(errs, err)
		}
		next = mergeThemes(next, loaded)
	}

	themes = next
	if !setActiveThemeByNameLocked(current) {
		activeThemeIdx = defaultThemeIndex(themes)
		applyTheme(themes[activeThemeIdx])
	}
	return errors.Join(errs...)
}

func AvailableThemes() []Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return append([]Theme(nil), themes...)
}

func ActiveTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if activeThemeIdx < 0 || activeThemeIdx >= len(themes) {
		return themes[0]
	}
	return themes[activeThemeIdx]
}

// CycleTheme activates the next theme and returns its name.
func CycleTheme() string {
	themeMu.Lock()
	defer themeMu.Unlock()

	activeThemeIdx = (activeThemeIdx + 1) % len(themes)
	applyTheme(themes[activeThemeIdx])
	return themes[activeThemeIdx].Name
}

func ThemeName() string {
	t := ActiveTheme()
	if t.Icon == "" {
		return t.Name
	}
	return t.Icon + " " + t.Name
}

func SetThemeByName(name string) bool {
	themeMu.Lock()
	defer themeMu.Unlock()
	return setActiveThemeByNameLocked(name)
}
