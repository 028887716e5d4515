package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenu_CommitFinalizesFullSet(t *testing.T) {
	// Reach the full set by removing then re-adding a value.
	m := NewMenu(All[string]()).Open()
	m = m.Apply(types, ValueChoice("Run"), true)
	require.False(t, m.Draft().AllMode)
	m = m.Apply(types, ValueChoice("Run"), true)

	m = m.Commit(types)
	assert.False(t, m.IsOpen())
	assert.True(t, m.Live().AllMode)
}

func TestMenu_CommitFinalizesFullSetBuiltFromNone(t *testing.T) {
	m := NewMenu(All[string]()).Open()
	m = m.Apply(types, AllChoice[string](), true)
	require.True(t, m.Draft().IsNone())
	for _, v := range types {
		m = m.Apply(types, ValueChoice(v), true)
	}
	assert.True(t, m.Commit(types).Live().AllMode)
}

func TestMenu_CommitExplicitEmpty(t *testing.T) {
	m := NewMenu(Of("Run")).Open()
	m = m.Apply(types, ValueChoice("Run"), true)
	require.True(t, m.Draft().IsNone())
	assert.True(t, m.Live().Equal(Of("Run")), "live untouched before commit")

	m = m.Commit(types)
	assert.True(t, m.Live().IsNone())
	assert.False(t, m.Live().AllMode)
}

func TestMenu_DiscardKeepsLive(t *testing.T) {
	m := NewMenu(Of("Ride")).Open()
	m = m.Apply(types, ValueChoice("Swim"), true)
	m = m.Apply(types, ValueChoice("Ride"), true)

	m = m.Discard()
	assert.False(t, m.IsOpen())
	assert.True(t, m.Live().Equal(Of("Ride")))
	assert.True(t, m.Draft().Equal(Of("Ride")))
}

func TestMenu_ApplyWhileClosedIsNoop(t *testing.T) {
	m := NewMenu(Of("Ride"))
	m = m.Apply(types, ValueChoice("Swim"), true)
	assert.True(t, m.Live().Equal(Of("Ride")))
	assert.False(t, m.Commit(types).IsOpen())
}

func TestMenu_ReopenKeepsDraft(t *testing.T) {
	m := NewMenu(All[string]()).Open()
	m = m.Apply(types, ValueChoice("Run"), true)
	m = m.Open()
	assert.Equal(t, []string{"Ride", "Swim"}, SelectedValues(m.Draft(), types))
}

func TestMenu_ValueSemantics(t *testing.T) {
	base := NewMenu(Of("Run")).Open()
	edited := base.Apply(types, ValueChoice("Ride"), true)

	assert.True(t, base.Draft().Equal(Of("Run")))
	assert.True(t, edited.Draft().Equal(Of("Run", "Ride")))
}

func TestMenu_QuickToggleDiscardsDraft(t *testing.T) {
	m := NewMenu(All[string]()).Open()
	m = m.Apply(types, AllChoice[string](), true)

	m = m.QuickToggle(types, ValueChoice("Swim"))
	assert.False(t, m.IsOpen())
	assert.True(t, m.Live().Equal(Of("Swim")))
}

func TestMenu_Prune(t *testing.T) {
	years := []int{2024, 2023, 2022}
	m := NewMenu(Of(2024, 2022)).Open()
	m = m.Apply(years, ValueChoice(2023), false)

	m = m.Prune([]int{2024, 2023})
	assert.True(t, m.Live().Equal(Of(2024)))
	assert.True(t, m.Draft().Equal(Of(2024, 2023)))
	assert.True(t, m.IsOpen())
}
