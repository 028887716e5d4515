package selection

// Menu pairs the live selection with the draft edited while a selection menu
// is open. Methods return a new Menu; the receiver is never modified.
type Menu[T comparable] struct {
	live  State[T]
	draft State[T]
	open  bool
}

func NewMenu[T comparable](live State[T]) Menu[T] {
	return Menu[T]{live: live.Clone()}
}

// Live is the selection the dashboard renders.
func (m Menu[T]) Live() State[T] { return m.live.Clone() }

func (m Menu[T]) IsOpen() bool { return m.open }

// Draft returns the working copy, or the live state when no menu is open.
func (m Menu[T]) Draft() State[T] {
	if !m.open {
		return m.live.Clone()
	}
	return m.draft.Clone()
}

// Open starts a draft from the live state. Opening an open menu keeps the
// current draft.
func (m Menu[T]) Open() Menu[T] {
	if m.open {
		return m
	}
	return Menu[T]{live: m.live, draft: m.live.Clone(), open: true}
}

// Apply edits the draft. It is a no-op while the menu is closed.
func (m Menu[T]) Apply(domain []T, c Choice[T], allowToggleOffAll bool) Menu[T] {
	if !m.open {
		return m
	}
	return Menu[T]{live: m.live, draft: ReduceMenu(m.draft, domain, c, allowToggleOffAll), open: true}
}

// Commit ("Done") copies the draft into the live state and finalizes it. An
// explicit empty draft commits as "nothing selected".
func (m Menu[T]) Commit(domain []T) Menu[T] {
	if !m.open {
		return m
	}
	return Menu[T]{live: Finalize(m.draft, domain)}
}

// Discard closes the menu without touching the live state.
func (m Menu[T]) Discard() Menu[T] {
	return Menu[T]{live: m.live}
}

// QuickToggle applies a top-button click to the live state. Any open draft is
// discarded first, as a click outside the menu would.
func (m Menu[T]) QuickToggle(domain []T, c Choice[T]) Menu[T] {
	return Menu[T]{live: ReduceTopButton(m.live, domain, c)}
}

// Prune removes values outside visible from both the live state and an open
// draft.
func (m Menu[T]) Prune(visible []T) Menu[T] {
	out := Menu[T]{live: Prune(m.live, visible), open: m.open}
	if m.open {
		out.draft = Prune(m.draft, visible)
	}
	return out
}
