package relation

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#008000"), Friend.Color())
	assert.Equal(t, lipgloss.Color("#808080"), Distant.Color())
	assert.Equal(t, Fallback, Status("Nemesis").Color())
}

func TestKnownVocabulary(t *testing.T) {
	assert.Len(t, Known, 10)
	for _, s := range Known {
		assert.True(t, s.IsKnown(), s)
	}
	assert.False(t, Status("Nemesis").IsKnown())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Status("Best Friends"), Normalize("  Best Friends\t"))
	assert.Equal(t, Status(""), Normalize("   "))
}

func TestRelationOther(t *testing.T) {
	r := Relation{A: "Alice", B: "Bob", Status: Friend}
	assert.Equal(t, "Bob", r.Other("Alice"))
	assert.Equal(t, "Alice", r.Other("Bob"))
	assert.True(t, r.Touches("Bob"))
	assert.False(t, r.Touches("Carol"))
}

func TestLinkItem(t *testing.T) {
	item := LinkItem{Link{Other: "Bob", Status: Exes}}
	assert.Contains(t, item.Title(), "Bob")
	assert.Equal(t, "Exes", item.Description())
	assert.Equal(t, "Bob Exes", item.FilterValue())
}
