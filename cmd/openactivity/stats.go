package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/janekbaraniewski/openactivity/internal/aggregate"
	"github.com/janekbaraniewski/openactivity/internal/core"
	"github.com/janekbaraniewski/openactivity/internal/dashboard"
	"github.com/janekbaraniewski/openactivity/internal/heatmap"
	"github.com/janekbaraniewski/openactivity/internal/selection"
)

type statsOptions struct {
	types  []string
	years  []int
	metric string
	fact   string
}

func newStatsCommand(root *rootOptions) *cobra.Command {
	opts := &statsOptions{}
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print yearly totals and highlights for the selected activities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ds, err := root.loadDataset()
			if err != nil {
				return err
			}
			session := dashboard.NewSession(ds, root.sessionOptions(heatmap.DefaultAccent))
			if err := opts.apply(session); err != nil {
				return err
			}
			return printStats(cmd.OutOrStdout(), session)
		},
	}
	cmd.Flags().StringSliceVar(&opts.types, "types", nil, "activity types to include (default all)")
	cmd.Flags().IntSliceVar(&opts.years, "years", nil, "years to include (default all with data)")
	cmd.Flags().StringVar(&opts.metric, "metric", "", "metric for every year: active_days, distance, moving_time, elevation_gain")
	cmd.Flags().StringVar(&opts.fact, "fact", "", "drill into a highlight: most-active-day, most-active-month, peak-hour, most-active-week")
	return cmd
}

// apply replays the flags as the clicks a user would make.
func (o *statsOptions) apply(s *dashboard.Session) error {
	for _, t := range o.types {
		t = strings.TrimSpace(t)
		if !lo.Contains(s.TypeDomain(), t) {
			return fmt.Errorf("unknown activity type %q (have %s)", t, strings.Join(s.TypeDomain(), ", "))
		}
		if !s.TypeMenu().Live().Has(t) {
			s.QuickToggleType(selection.ValueChoice(t))
		}
	}
	for _, y := range o.years {
		if !lo.Contains(s.YearDomain(), y) {
			return fmt.Errorf("no activity in %d for the selected types", y)
		}
		if !s.YearMenu().Live().Has(y) {
			s.QuickToggleYear(selection.ValueChoice(y))
		}
	}
	if o.metric != "" {
		m, ok := core.ParseMetricKey(o.metric)
		if !ok {
			return fmt.Errorf("unknown metric %q", o.metric)
		}
		s.SetAllMetrics(m)
	}
	if o.fact != "" {
		f, ok := core.ParseFactKey(o.fact)
		if !ok {
			return fmt.Errorf("unknown fact %q", o.fact)
		}
		s.SetFact(f)
	}
	return nil
}

func printStats(w io.Writer, s *dashboard.Session) error {
	v := s.View()
	fmt.Fprintf(w, "%s · %s\n", v.TypeSummary, v.YearSummary)
	if v.Empty() {
		fmt.Fprintln(w, "No activities match the current selection.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Year", "Activities", "Active days", "Distance", "Moving time", "Elevation", "Metric")
	for _, card := range v.Cards {
		t.Row(totalsRow(strconv.Itoa(card.Year), card.Totals, v.Units, card.Metric.Label())...)
	}
	if len(v.Cards) > 1 {
		t.Row(totalsRow("All", v.Totals, v.Units, "")...)
	}
	fmt.Fprintln(w, t.String())

	metric := core.MetricActiveDays
	if v.MetricOK {
		metric = v.Metric
		fmt.Fprintf(w, "Metric: %s\n", v.Metric.Label())
	} else {
		fmt.Fprintln(w, "Metric: mixed (highlights count activities)")
	}

	for _, f := range v.Facts {
		line := fmt.Sprintf("%-18s %s", f.Key.Label()+":", f.Label())
		if f.OK {
			line += " (" + factValue(f, metric, v.Units) + ")"
		}
		fmt.Fprintln(w, line)
	}

	if v.Drill != nil {
		fmt.Fprintf(w, "\n%s: %s · %d activities\n", v.Fact.Key.Label(), v.Fact.Label(), v.Drill.Activities)
		totals := v.Drill.TypeTotals()
		data := s.Dataset()
		for _, typ := range totals.SortedTypes() {
			fmt.Fprintf(w, "  %-16s %d\n", data.TypeLabel(typ), totals.TypeCounts[typ])
		}
	}
	return nil
}

func totalsRow(label string, t aggregate.Totals, u core.Units, metric string) []string {
	return []string{
		label,
		strconv.Itoa(t.Count),
		strconv.Itoa(t.ActiveDays),
		u.FormatDistance(t.Distance),
		core.FormatDuration(t.MovingTime),
		u.FormatElevation(t.ElevationGain),
		metric,
	}
}

func factValue(f aggregate.Fact, metric core.MetricKey, u core.Units) string {
	if metric == core.MetricActiveDays {
		n := int(f.Value)
		if n == 1 {
			return "1 activity"
		}
		return strconv.Itoa(n) + " activities"
	}
	return u.FormatMetric(metric, f.Value)
}
