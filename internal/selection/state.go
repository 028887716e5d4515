// Package selection holds the type and year filters of the dashboard.
//
// A State is either "all known values" (AllMode) or exactly the values in
// Selected; the two meanings never mix. Reducers are pure: they return a new
// State and never write to the input's set.
package selection

import (
	"fmt"

	"github.com/samber/lo"
)

type State[T comparable] struct {
	AllMode  bool
	Selected map[T]struct{}
}

// All is the default state: every value in the domain is included.
func All[T comparable]() State[T] {
	return State[T]{AllMode: true, Selected: map[T]struct{}{}}
}

// Of is an explicit selection of exactly the given values.
func Of[T comparable](values ...T) State[T] {
	return State[T]{Selected: toSet(values)}
}

// None is an explicit empty selection. It only arises from menu edits and is
// never reinterpreted as All.
func None[T comparable]() State[T] {
	return State[T]{Selected: map[T]struct{}{}}
}

func (s State[T]) Has(v T) bool {
	_, ok := s.Selected[v]
	return ok
}

// Includes reports whether v is in view, honoring AllMode.
func (s State[T]) Includes(v T) bool {
	return s.AllMode || s.Has(v)
}

// IsNone reports an explicit "nothing selected" state.
func (s State[T]) IsNone() bool {
	return !s.AllMode && len(s.Selected) == 0
}

func (s State[T]) Clone() State[T] {
	out := State[T]{AllMode: s.AllMode, Selected: make(map[T]struct{}, len(s.Selected))}
	if s.AllMode {
		return out
	}
	for v := range s.Selected {
		out.Selected[v] = struct{}{}
	}
	return out
}

// Equal compares meaning, not storage: two AllMode states are equal whatever
// their sets hold.
func (s State[T]) Equal(other State[T]) bool {
	if s.AllMode || other.AllMode {
		return s.AllMode == other.AllMode
	}
	return setEqual(s.Selected, other.Selected)
}

func (s State[T]) String() string {
	if s.AllMode {
		return "all"
	}
	return fmt.Sprintf("%v", lo.Keys(s.Selected))
}

// IsEffectivelyAll is true in AllMode or when the explicit set is exactly the
// domain.
func IsEffectivelyAll[T comparable](s State[T], domain []T) bool {
	if s.AllMode {
		return true
	}
	return setEqual(s.Selected, toSet(domain))
}

// SelectedValues lists the values in view, in domain order.
func SelectedValues[T comparable](s State[T], domain []T) []T {
	if s.AllMode {
		return append([]T(nil), domain...)
	}
	return lo.Filter(domain, func(v T, _ int) bool {
		return s.Has(v)
	})
}

// Finalize collapses an explicit full-domain set into AllMode.
func Finalize[T comparable](s State[T], domain []T) State[T] {
	if !s.AllMode && setEqual(s.Selected, toSet(domain)) {
		return All[T]()
	}
	return s.Clone()
}

// Prune drops selected values outside visible. AllMode is left as is, and a
// prune that empties an explicit set leaves it explicitly empty.
func Prune[T comparable](s State[T], visible []T) State[T] {
	if s.AllMode {
		return All[T]()
	}
	keep := toSet(visible)
	out := None[T]()
	for v := range s.Selected {
		if _, ok := keep[v]; ok {
			out.Selected[v] = struct{}{}
		}
	}
	return out
}

// Summary renders a short label such as "All types", "None", "Run" or
// "2 of 5 types".
func Summary[T comparable](s State[T], domain []T, noun string, label func(T) string) string {
	if IsEffectivelyAll(s, domain) {
		return "All " + noun
	}
	values := SelectedValues(s, domain)
	switch len(values) {
	case 0:
		return "None"
	case 1:
		return label(values[0])
	default:
		return fmt.Sprintf("%d of %d %s", len(values), len(lo.Uniq(domain)), noun)
	}
}

func toSet[T comparable](values []T) map[T]struct{} {
	return lo.SliceToMap(values, func(v T) (T, struct{}) {
		return v, struct{}{}
	})
}

func setEqual[T comparable](a, b map[T]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if _, ok := b[v]; !ok {
			return false
		}
	}
	return true
}
