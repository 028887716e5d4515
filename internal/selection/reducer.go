package selection

import "github.com/samber/lo"

// Choice is one click: either the "all" button or a concrete value.
type Choice[T comparable] struct {
	all   bool
	value T
}

func AllChoice[T comparable]() Choice[T] {
	return Choice[T]{all: true}
}

func ValueChoice[T comparable](v T) Choice[T] {
	return Choice[T]{value: v}
}

func (c Choice[T]) IsAll() bool { return c.all }
func (c Choice[T]) Value() T    { return c.value }

// ReduceTopButton applies a quick-toggle click. It never leaves an explicit
// empty selection behind: removing the last value falls back to AllMode.
func ReduceTopButton[T comparable](s State[T], domain []T, c Choice[T]) State[T] {
	if c.IsAll() {
		if IsEffectivelyAll(s, domain) {
			return All[T]()
		}
		return Of(domain...)
	}

	v := c.Value()
	if !lo.Contains(domain, v) {
		return s.Clone()
	}
	if s.AllMode {
		return Of(v)
	}

	next := s.Clone()
	if next.Has(v) {
		delete(next.Selected, v)
		if len(next.Selected) == 0 {
			return All[T]()
		}
		return next
	}
	next.Selected[v] = struct{}{}
	return next
}

// ReduceMenu applies a click inside an open selection menu to its draft.
// Unlike ReduceTopButton it never collapses to or from an empty set, so the
// draft may reach "nothing selected".
func ReduceMenu[T comparable](s State[T], domain []T, c Choice[T], allowToggleOffAll bool) State[T] {
	if c.IsAll() {
		if allowToggleOffAll && IsEffectivelyAll(s, domain) {
			return None[T]()
		}
		return All[T]()
	}

	v := c.Value()
	if !lo.Contains(domain, v) {
		return s.Clone()
	}
	if s.AllMode {
		return Of(lo.Without(lo.Uniq(domain), v)...)
	}

	next := s.Clone()
	if next.Has(v) {
		delete(next.Selected, v)
	} else {
		next.Selected[v] = struct{}{}
	}
	return next
}
