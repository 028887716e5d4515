package aggregate

import (
	"fmt"

	"github.com/janekbaraniewski/openactivity/internal/calendar"
	"github.com/janekbaraniewski/openactivity/internal/core"
)

// Fact is a "best X" statistic. OK is false when there is not enough data to
// name a winner.
type Fact struct {
	Key   core.FactKey
	Index int
	Value float64
	OK    bool
}

// ArgMax returns the index of the largest value. Ties go to the lowest index;
// an empty slice yields -1.
func ArgMax(values []float64) (int, float64) {
	best, bestVal := -1, 0.0
	for i, v := range values {
		if best == -1 || v > bestVal {
			best, bestVal = i, v
		}
	}
	return best, bestVal
}

// Fact computes one best-of fact from the matrix totals.
func (m Matrix) Fact(key core.FactKey) Fact {
	var idx int
	var val float64
	switch key {
	case core.FactMostActiveDay:
		idx, val = ArgMax(m.DayTotals[:])
	case core.FactMostActiveMonth:
		idx, val = ArgMax(m.MonthTotals[:])
	case core.FactPeakHour:
		if m.HourSamples == 0 {
			return Fact{Key: key, Index: -1}
		}
		idx, val = ArgMax(m.HourTotals[:])
	case core.FactMostActiveWeek:
		idx, val = ArgMax(m.WeekTotals[1:])
		if idx >= 0 {
			idx++
		}
	default:
		return Fact{Key: key, Index: -1}
	}
	if idx < 0 || !(val > 0) {
		return Fact{Key: key, Index: -1}
	}
	return Fact{Key: key, Index: idx, Value: val, OK: true}
}

// Facts computes every fact in core.ValidFacts order.
func (m Matrix) Facts() []Fact {
	out := make([]Fact, 0, len(core.ValidFacts))
	for _, key := range core.ValidFacts {
		out = append(out, m.Fact(key))
	}
	return out
}

// Label names the winning bucket, e.g. "Monday", "March", "7 AM", "Week 12".
func (f Fact) Label() string {
	if !f.OK {
		return "Not enough data"
	}
	switch f.Key {
	case core.FactMostActiveDay:
		return WeekdayName(f.Index)
	case core.FactMostActiveMonth:
		return MonthName(f.Index)
	case core.FactPeakHour:
		return HourLabel(f.Index)
	case core.FactMostActiveWeek:
		return fmt.Sprintf("Week %d", f.Index)
	default:
		return ""
	}
}

// Predicate matches the activities that fall in the fact's winning bucket.
// A fact without data matches nothing.
func (f Fact) Predicate() Predicate {
	if !f.OK {
		return func(core.Activity) bool { return false }
	}
	return FactPredicate(f.Key, f.Index)
}

// FactPredicate matches activities whose weekday, month, hour or week of year
// equals index.
func FactPredicate(key core.FactKey, index int) Predicate {
	return func(a core.Activity) bool {
		if key == core.FactPeakHour {
			hour, ok := a.ValidHour()
			return ok && hour == index
		}
		date, ok := calendar.ParseDate(a.Date)
		if !ok {
			return false
		}
		switch key {
		case core.FactMostActiveDay:
			return int(date.Weekday()) == index
		case core.FactMostActiveMonth:
			return int(date.Month())-1 == index
		case core.FactMostActiveWeek:
			return calendar.WeekOfYear(date) == index
		default:
			return false
		}
	}
}

// DrillIn rebuilds the matrix restricted to the activities behind a fact,
// combined with any predicate already in opts.
func DrillIn(activities []core.Activity, opts Options, fact Fact) Matrix {
	factPred := fact.Predicate()
	outer := opts.Predicate
	opts.Predicate = func(a core.Activity) bool {
		if outer != nil && !outer(a) {
			return false
		}
		return factPred(a)
	}
	return Build(activities, opts)
}
