// Package dashboard owns the selection state of one dashboard session and
// recomputes the derived view from scratch after every change.
package dashboard

import (
	"sort"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/janekbaraniewski/openactivity/internal/core"
	"github.com/janekbaraniewski/openactivity/internal/heatmap"
	"github.com/janekbaraniewski/openactivity/internal/selection"
)

type Options struct {
	// WeekStart overrides the dataset's preference when set.
	WeekStart     core.WeekStart
	DefaultMetric core.MetricKey
	DefaultAccent string
	// AllowToggleOffAll lets the menu's "All" entry clear the draft.
	AllowToggleOffAll bool
}

// Session is driven from a single update loop; it is not safe for concurrent
// use.
type Session struct {
	data core.Dataset
	opts Options

	types selection.Menu[string]
	years selection.Menu[int]

	metricByYear map[int]core.MetricKey
	fact         core.FactKey
}

func NewSession(data core.Dataset, opts Options) *Session {
	if !opts.DefaultMetric.Valid() {
		opts.DefaultMetric = core.MetricActiveDays
	}
	if opts.DefaultAccent == "" {
		opts.DefaultAccent = heatmap.DefaultAccent
	}
	s := &Session{
		data:         data,
		opts:         opts,
		types:        selection.NewMenu(selection.All[string]()),
		years:        selection.NewMenu(selection.All[int]()),
		metricByYear: make(map[int]core.MetricKey),
	}
	s.prune()
	return s
}

func (s *Session) Dataset() core.Dataset { return s.data }

// SetDataset swaps in a freshly loaded dataset, keeping the selections that
// still make sense.
func (s *Session) SetDataset(data core.Dataset) {
	s.data = data
	s.types = s.types.Prune(s.TypeDomain())
	s.prune()
	log.WithFields(log.Fields{
		"types":      len(s.TypeDomain()),
		"years":      len(s.YearDomain()),
		"activities": len(data.Activities),
	}).Debug("dashboard: dataset replaced")
}

// SetDefaultAccent changes the accent used when no single type supplies one,
// e.g. after a theme switch.
func (s *Session) SetDefaultAccent(accent string) {
	if accent == "" {
		accent = heatmap.DefaultAccent
	}
	s.opts.DefaultAccent = accent
}

// WeekStart is the option override, falling back to the dataset.
func (s *Session) WeekStart() core.WeekStart {
	if s.opts.WeekStart != "" {
		return s.opts.WeekStart.Normalize()
	}
	return s.data.WeekStart.Normalize()
}

// TypeDomain lists the known activity types in dataset order.
func (s *Session) TypeDomain() []string {
	if len(s.data.Types) > 0 {
		return lo.Uniq(s.data.Types)
	}
	var out []string
	for _, byType := range s.data.Aggregates {
		out = append(out, lo.Keys(byType)...)
	}
	out = lo.Uniq(out)
	sort.Strings(out)
	return out
}

// ActiveTypes are the types currently in view.
func (s *Session) ActiveTypes() []string {
	return selection.SelectedValues(s.types.Live(), s.TypeDomain())
}

// YearDomain lists the years that have activity for the active types, in
// dataset order (newest first when the dataset omits an order).
func (s *Session) YearDomain() []int {
	years := s.data.Years
	if len(years) == 0 {
		years = lo.Keys(s.data.Aggregates)
		sort.Sort(sort.Reverse(sort.IntSlice(years)))
	}
	active := s.ActiveTypes()
	return lo.Filter(lo.Uniq(years), func(year int, _ int) bool {
		return s.hasActivity(year, active)
	})
}

func (s *Session) hasActivity(year int, types []string) bool {
	for _, t := range types {
		for _, agg := range s.data.Aggregates[year][t] {
			if agg.Sanitized().Count > 0 {
				return true
			}
		}
	}
	return lo.SomeBy(s.data.Activities, func(a core.Activity) bool {
		return a.Year == year && lo.Contains(types, a.Type)
	})
}

// VisibleYears are the years currently in view.
func (s *Session) VisibleYears() []int {
	return selection.SelectedValues(s.years.Live(), s.YearDomain())
}

func (s *Session) TypeMenu() selection.Menu[string] { return s.types }
func (s *Session) YearMenu() selection.Menu[int]    { return s.years }

func (s *Session) QuickToggleType(c selection.Choice[string]) {
	s.types = s.types.QuickToggle(s.TypeDomain(), c)
	s.prune()
}

func (s *Session) OpenTypeMenu() { s.types = s.types.Open() }

func (s *Session) ApplyTypeMenu(c selection.Choice[string]) {
	s.types = s.types.Apply(s.TypeDomain(), c, s.opts.AllowToggleOffAll)
}

func (s *Session) CommitTypeMenu() {
	s.types = s.types.Commit(s.TypeDomain())
	s.prune()
}

func (s *Session) DiscardTypeMenu() { s.types = s.types.Discard() }

func (s *Session) QuickToggleYear(c selection.Choice[int]) {
	s.years = s.years.QuickToggle(s.YearDomain(), c)
	s.prune()
}

func (s *Session) OpenYearMenu() { s.years = s.years.Open() }

func (s *Session) ApplyYearMenu(c selection.Choice[int]) {
	s.years = s.years.Apply(s.YearDomain(), c, s.opts.AllowToggleOffAll)
}

func (s *Session) CommitYearMenu() {
	s.years = s.years.Commit(s.YearDomain())
	s.prune()
}

func (s *Session) DiscardYearMenu() { s.years = s.years.Discard() }

// DiscardMenus closes any open menu, as a click outside would.
func (s *Session) DiscardMenus() {
	s.types = s.types.Discard()
	s.years = s.years.Discard()
}

// SetMetric chooses the metric of one year card.
func (s *Session) SetMetric(year int, metric core.MetricKey) {
	if !metric.Valid() {
		return
	}
	s.metricByYear[year] = metric
}

// CycleMetric advances a year card to its next filterable metric.
func (s *Session) CycleMetric(year int) {
	totals := s.yearTotals(year)
	allowed := filterableFor(totals)
	s.metricByYear[year] = core.NextMetric(s.metricFor(year, allowed), allowed)
}

// SetAllMetrics applies one metric to every visible card that can filter by it.
func (s *Session) SetAllMetrics(metric core.MetricKey) {
	for _, year := range s.VisibleYears() {
		if lo.Contains(filterableFor(s.yearTotals(year)), metric) {
			s.metricByYear[year] = metric
		}
	}
}

func (s *Session) Fact() core.FactKey { return s.fact }

func (s *Session) SetFact(f core.FactKey) { s.fact = f }

func (s *Session) CycleFact() { s.fact = core.NextFact(s.fact) }

// prune drops years that are no longer visible from the year selection.
func (s *Session) prune() {
	s.years = s.years.Prune(s.YearDomain())
}

// metricFor returns the card's chosen metric if it is still filterable, else
// the default, else active days.
func (s *Session) metricFor(year int, allowed []core.MetricKey) core.MetricKey {
	if m, ok := s.metricByYear[year]; ok && lo.Contains(allowed, m) {
		return m
	}
	if lo.Contains(allowed, s.opts.DefaultMetric) {
		return s.opts.DefaultMetric
	}
	return core.MetricActiveDays
}

// accent is the single selected type's accent, or the default.
func (s *Session) accent() string {
	active := s.ActiveTypes()
	if len(active) == 1 {
		if a := s.data.TypeAccent(active[0]); a != "" {
			return a
		}
	}
	return s.opts.DefaultAccent
}
