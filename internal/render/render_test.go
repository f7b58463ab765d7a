package render

import (
	"strings"
	"testing"

	"github.com/N3moAhead/relmap/internal/network"
	"github.com/N3moAhead/relmap/internal/relation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshot(t *testing.T) network.Snapshot {
	t.Helper()
	s := network.New()
	for _, p := range []string{"Alice", "Bob", "Carol", "Dave"} {
		require.NoError(t, s.AddPerson(p))
	}
	require.NoError(t, s.SetRelationship("Alice", "Bob", relation.Friend))
	require.NoError(t, s.SetRelationship("Bob", "Carol", relation.Exes))
	return s.Snapshot()
}

func TestDOT(t *testing.T) {
	out := DOT(snapshot(t), "")

	assert.True(t, strings.HasPrefix(out, "graph relationships {\n"))
	assert.Contains(t, out, `  "Dave";`)
	assert.Contains(t, out, `  "Alice" -- "Bob" [label="Friend", color="#008000", penwidth=1];`)
	assert.Contains(t, out, `  "Bob" -- "Carol" [label="Exes", color="#000000", penwidth=1];`)
}

func TestDOT_Selection(t *testing.T) {
	out := DOT(snapshot(t), "Alice")

	assert.Contains(t, out, `  "Alice" [fillcolor="#FFFF00", width=1.5, height=1];`)
	assert.Contains(t, out, `  "Alice" -- "Bob" [label="Friend", color="#008000", penwidth=3];`)
	assert.Contains(t, out, `  "Bob" -- "Carol" [label="Exes", color="#D3D3D3", penwidth=1];`)
}

func TestDOT_UnknownSelectionIsIgnored(t *testing.T) {
	assert.Equal(t, DOT(snapshot(t), ""), DOT(snapshot(t), "Zed"))
}

func TestDOT_QuotesNames(t *testing.T) {
	s := network.New()
	require.NoError(t, s.AddPerson(`Jo "JJ" Smith`))
	assert.Contains(t, DOT(s.Snapshot(), ""), `"Jo \"JJ\" Smith";`)
}

func TestMap(t *testing.T) {
	out := Map(snapshot(t), "Alice")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Alice")
	assert.Contains(t, lines[0], "Friend")
	assert.Contains(t, lines[1], "Exes")
	assert.Contains(t, lines[3], "Dave")
}

func TestMap_Empty(t *testing.T) {
	assert.Contains(t, Map(network.Snapshot{}, ""), "Nobody")
}

func TestLegend(t *testing.T) {
	out := Legend()
	assert.Len(t, strings.Split(out, "\n"), len(relation.Known))
	for _, s := range relation.Known {
		assert.Contains(t, out, string(s))
	}
}
