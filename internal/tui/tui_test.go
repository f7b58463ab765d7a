package tui

import (
	"testing"

	"github.com/N3moAhead/relmap/internal/network"
	"github.com/N3moAhead/relmap/internal/relation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(model)
	}
	return m
}

func newTestModel(t *testing.T, people ...string) (model, *network.Store) {
	t.Helper()
	store := network.New()
	for _, p := range people {
		require.NoError(t, store.AddPerson(p))
	}
	return newModel(store), store
}

func TestAddPerson(t *testing.T) {
	m, store := newTestModel(t)

	m = press(t, m, "n")
	assert.Equal(t, viewCreatePerson, m.state)

	m = press(t, m, "Alice", "enter")
	assert.Equal(t, viewList, m.state)
	assert.True(t, store.HasPerson("Alice"))
	assert.Len(t, m.list.Items(), 1)
	assert.False(t, m.msgError)
}

func TestAddPerson_DuplicateStaysInForm(t *testing.T) {
	m, _ := newTestModel(t, "Alice")

	m = press(t, m, "n", "Alice", "enter")
	assert.Equal(t, viewCreatePerson, m.state)
	assert.True(t, m.msgError)
	assert.Contains(t, m.message, "duplicate")

	m = press(t, m, "esc")
	assert.Equal(t, viewList, m.state)
}

func TestSetRelationshipFromDetail(t *testing.T) {
	m, store := newTestModel(t, "Alice", "Bob")

	m = press(t, m, "enter")
	require.Equal(t, viewDetail, m.state)
	assert.Equal(t, "Alice", m.selected)

	m = press(t, m, "r")
	require.Equal(t, viewCreateRelationSelectTarget, m.state)

	// Alice cannot pick herself.
	m = press(t, m, "enter")
	assert.Equal(t, viewCreateRelationSelectTarget, m.state)
	assert.True(t, m.msgError)

	m = press(t, m, "down", "enter")
	require.Equal(t, viewCreateRelationDetails, m.state)
	assert.Equal(t, "Bob", m.relTarget)

	m = press(t, m, "enter")
	assert.Equal(t, viewDetail, m.state)

	links, err := store.RelationshipsOf("Bob")
	require.NoError(t, err)
	assert.Equal(t, []relation.Link{{Other: "Alice", Status: relation.Friend}}, links)
	assert.Len(t, m.relList.Items(), 1)
}

func TestSetRelationship_CustomStatus(t *testing.T) {
	m, store := newTestModel(t, "Alice", "Bob")

	m = press(t, m, "enter", "r", "down", "enter", "tab", "Nemesis", "enter")
	assert.Equal(t, viewDetail, m.state)

	links, err := store.RelationshipsOf("Alice")
	require.NoError(t, err)
	assert.Equal(t, []relation.Link{{Other: "Bob", Status: "Nemesis"}}, links)
}

func TestRemoveRelationship(t *testing.T) {
	m, store := newTestModel(t, "Alice", "Bob")
	require.NoError(t, store.SetRelationship("Alice", "Bob", relation.Exes))
	m.refresh(store.Snapshot())

	m = press(t, m, "enter", "x")
	links, err := store.RelationshipsOf("Alice")
	require.NoError(t, err)
	assert.Empty(t, links)
	assert.Empty(t, m.relList.Items())
}

func TestRenamePerson(t *testing.T) {
	m, store := newTestModel(t, "Alice", "Bob")
	require.NoError(t, store.SetRelationship("Alice", "Bob", relation.Friend))
	m.refresh(store.Snapshot())

	m = press(t, m, "down", "e")
	require.Equal(t, viewRenamePerson, m.state)
	assert.Equal(t, "Bob", m.inputName.Value())

	m = press(t, m, "by", "enter")
	assert.Equal(t, viewList, m.state)
	assert.False(t, store.HasPerson("Bob"))

	links, err := store.RelationshipsOf("Alice")
	require.NoError(t, err)
	assert.Equal(t, []relation.Link{{Other: "Bobby", Status: relation.Friend}}, links)
}

func TestRenameSelectedPersonFollowsDetail(t *testing.T) {
	m, _ := newTestModel(t, "Bob")

	m = press(t, m, "enter", "e", "by", "enter")
	assert.Equal(t, viewDetail, m.state)
	assert.Equal(t, "Bobby", m.selected)
}

func TestRemovePerson(t *testing.T) {
	m, store := newTestModel(t, "Alice", "Bob")

	m = press(t, m, "d")
	require.Equal(t, viewConfirmRemove, m.state)
	m = press(t, m, "n")
	assert.Equal(t, viewList, m.state)
	assert.True(t, store.HasPerson("Alice"))

	m = press(t, m, "d", "y")
	assert.Equal(t, viewList, m.state)
	assert.False(t, store.HasPerson("Alice"))
	assert.Len(t, m.list.Items(), 1)
}

func TestRemoveSelectedPersonLeavesDetail(t *testing.T) {
	m, store := newTestModel(t, "Alice")

	m = press(t, m, "enter", "d", "y")
	assert.Equal(t, viewList, m.state)
	assert.Empty(t, m.selected)
	assert.False(t, store.HasPerson("Alice"))
}

func TestMapSelection(t *testing.T) {
	m, store := newTestModel(t, "Alice", "Bob")
	require.NoError(t, store.SetRelationship("Alice", "Bob", relation.Friend))
	m.refresh(store.Snapshot())

	m = press(t, m, "m")
	require.Equal(t, viewMap, m.state)
	assert.Empty(t, m.mapSelected)

	m = press(t, m, "tab")
	assert.Equal(t, "Alice", m.mapSelected)
	m = press(t, m, "tab")
	assert.Equal(t, "Bob", m.mapSelected)
	m = press(t, m, "r")
	assert.Empty(t, m.mapSelected)
	m = press(t, m, "shift+tab")
	assert.Equal(t, "Bob", m.mapSelected)
	assert.Contains(t, m.View(), "selected:")
	assert.Contains(t, m.View(), "zoom: n/a")

	m = press(t, m, "esc")
	assert.Equal(t, viewList, m.state)
}

func TestOpenDetailKeepsListCommand(t *testing.T) {
	m, _ := newTestModel(t, "Alice", "Bob")
	m.list.SetFilterText("Al")
	require.Len(t, m.list.VisibleItems(), 1)

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(model)
	require.Equal(t, viewDetail, m.state)
	assert.Equal(t, "Alice", m.selected)
	require.NotNil(t, cmd, "refiltering the people list must reach the runtime")
}

func TestExternalSnapshotRefreshes(t *testing.T) {
	m, store := newTestModel(t, "Alice")
	m = press(t, m, "enter")
	require.Equal(t, viewDetail, m.state)

	other := network.New()
	require.NoError(t, other.AddPerson("Zed"))

	next, _ := m.Update(snapshotMsg(other.Snapshot()))
	m = next.(model)
	assert.Equal(t, viewList, m.state, "selected person vanished")
	assert.Len(t, m.list.Items(), 1)
	assert.True(t, store.HasPerson("Alice"), "the TUI never writes snapshots back")
}

func TestPeopleFilterUsesStoreSearch(t *testing.T) {
	_, store := newTestModel(t, "Alice", "Bob", "Malice")
	ranks := peopleFilter(store)("ALI", []string{"Alice", "Bob", "Malice"})

	require.Len(t, ranks, 2)
	assert.Equal(t, 0, ranks[0].Index)
	assert.Equal(t, 2, ranks[1].Index)
}

func TestCycle(t *testing.T) {
	names := []string{"A", "B", "C"}
	assert.Equal(t, "A", cycle(names, "", 1))
	assert.Equal(t, "C", cycle(names, "", -1))
	assert.Equal(t, "B", cycle(names, "A", 1))
	assert.Equal(t, "", cycle(names, "C", 1))
	assert.Equal(t, "", cycle(names, "A", -1))
	assert.Equal(t, "", cycle(nil, "", 1))
}

func TestViews(t *testing.T) {
	m, _ := newTestModel(t, "Alice", "Bob")

	assert.Contains(t, m.View(), "Alice")
	m = press(t, m, "enter")
	assert.Contains(t, m.View(), "No relationships yet.")
	m = press(t, m, "r", "down", "enter")
	assert.Contains(t, m.View(), "Relationship between")
	m = press(t, m, "esc", "d")
	assert.Contains(t, m.View(), "Remove")
	m = press(t, m, "n", "e")
	assert.Contains(t, m.View(), "Rename")
}
