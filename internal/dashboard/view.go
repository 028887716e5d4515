package dashboard

import (
	"strconv"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/janekbaraniewski/openactivity/internal/aggregate"
	"github.com/janekbaraniewski/openactivity/internal/consensus"
	"github.com/janekbaraniewski/openactivity/internal/core"
	"github.com/janekbaraniewski/openactivity/internal/heatmap"
	"github.com/janekbaraniewski/openactivity/internal/selection"
)

// YearCard is one year's heatmap with its own metric.
type YearCard struct {
	Year       int
	Combined   map[string]aggregate.CombinedEntry
	Totals     aggregate.Totals
	Metric     core.MetricKey
	Filterable []core.MetricKey
	Grid       heatmap.YearGrid
}

// View is everything a renderer needs for one frame.
type View struct {
	Types       []string
	Years       []int
	TypeSummary string
	YearSummary string
	Accent      string
	WeekStart   core.WeekStart
	Units       core.Units

	Cards  []YearCard
	Totals aggregate.Totals

	// Metric is the dashboard-wide metric when every card agrees on one.
	Metric   core.MetricKey
	MetricOK bool

	Matrix aggregate.Matrix
	Facts  []aggregate.Fact

	// Fact and Drill are set while a fact is being drilled into.
	Fact  aggregate.Fact
	Drill *aggregate.Matrix
}

// Empty reports whether nothing is selected or nothing matches.
func (v View) Empty() bool { return len(v.Cards) == 0 }

// View recomputes the whole dashboard from the current selections.
func (s *Session) View() View {
	s.prune()

	types := s.ActiveTypes()
	years := s.VisibleYears()
	label := s.data.TypeLabel

	v := View{
		Types:       types,
		Years:       years,
		TypeSummary: selection.Summary(s.types.Live(), s.TypeDomain(), "types", label),
		YearSummary: selection.Summary(s.years.Live(), s.YearDomain(), "years", strconv.Itoa),
		Accent:      s.accent(),
		WeekStart:   s.WeekStart(),
		Units:       s.data.Units,
	}

	filterable := make(consensus.Filterable, len(years))
	selected := make(map[int]core.MetricKey, len(years))
	for _, year := range years {
		card := s.card(year, types, v.Accent, v.WeekStart)
		v.Cards = append(v.Cards, card)
		v.Totals = v.Totals.Add(card.Totals)
		filterable[year] = card.Filterable
		selected[year] = card.Metric
	}
	v.Metric, v.MetricOK = consensus.Resolve(years, selected, filterable)

	opts := aggregate.Options{
		Years:       years,
		Aggregates:  s.data.Aggregates,
		OtherBucket: s.data.OtherBucket,
	}
	if v.MetricOK {
		opts.Metric = v.Metric
	}
	activities := aggregate.FilterTypes(s.data.Activities, types)
	v.Matrix = aggregate.Build(activities, opts)
	v.Facts = v.Matrix.Facts()

	if s.fact != "" {
		v.Fact = v.Matrix.Fact(s.fact)
		if v.Fact.OK {
			drill := aggregate.DrillIn(activities, opts, v.Fact)
			v.Drill = &drill
		}
	}

	log.WithFields(log.Fields{
		"types":     len(types),
		"years":     len(years),
		"metric":    v.Metric,
		"consensus": v.MetricOK,
		"fact":      s.fact,
	}).Debug("dashboard: view recomputed")
	return v
}

func (s *Session) card(year int, types []string, accent string, ws core.WeekStart) YearCard {
	combined := aggregate.Combine(s.data.Aggregates[year], types)
	totals := aggregate.Sum(combined)
	allowed := filterableFor(totals)
	metric := s.metricFor(year, allowed)
	return YearCard{
		Year:       year,
		Combined:   combined,
		Totals:     totals,
		Metric:     metric,
		Filterable: allowed,
		Grid:       heatmap.BuildYearGrid(year, ws, aggregate.ValuesByDate(combined, metric), accent),
	}
}

func (s *Session) yearTotals(year int) aggregate.Totals {
	return aggregate.Sum(aggregate.Combine(s.data.Aggregates[year], s.ActiveTypes()))
}

func filterableFor(t aggregate.Totals) []core.MetricKey {
	totals := lo.SliceToMap(core.ValidMetrics, func(m core.MetricKey) (core.MetricKey, float64) {
		return m, t.Value(m)
	})
	return consensus.FilterableMetrics(totals)
}
