// Package render turns a network snapshot into something to look at. Nothing
// here mutates the store.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/N3moAhead/relmap/internal/network"
	"github.com/N3moAhead/relmap/internal/relation"
	"github.com/charmbracelet/lipgloss"
)

const (
	nodeColor     = "#D3D3D3" // lightgray
	selectedColor = "#FFFF00" // yellow
	dimmedColor   = "#D3D3D3"
)

var (
	nodeStyle     = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(selectedColor))
	dimmedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(dimmedColor))
	isolatedStyle = lipgloss.NewStyle().Faint(true)
)

// DOT renders snap as a Graphviz graph. Edges are colored by status. When
// selected names a person, that node is enlarged and highlighted and only
// its own relationships keep their color.
func DOT(snap network.Snapshot, selected string) string {
	var b strings.Builder
	b.WriteString("graph relationships {\n")
	b.WriteString("  label=\"Relationship Map\";\n")
	fmt.Fprintf(&b, "  node [style=filled, fillcolor=%q];\n", nodeColor)

	for _, name := range snap.People {
		if name == selected {
			fmt.Fprintf(&b, "  %s [fillcolor=%q, width=1.5, height=1];\n", strconv.Quote(name), selectedColor)
			continue
		}
		fmt.Fprintf(&b, "  %s;\n", strconv.Quote(name))
	}

	for _, r := range snap.Relations {
		color := string(r.Status.Color())
		width := 1
		if selected != "" && snap.Has(selected) {
			if r.Touches(selected) {
				width = 3
			} else {
				color = dimmedColor
			}
		}
		fmt.Fprintf(&b, "  %s -- %s [label=%s, color=%q, penwidth=%d];\n",
			strconv.Quote(r.A), strconv.Quote(r.B), strconv.Quote(string(r.Status)), color, width)
	}

	b.WriteString("}\n")
	return b.String()
}

// Legend lists the built-in statuses with their colors.
func Legend() string {
	lines := make([]string, len(relation.Known))
	for i, s := range relation.Known {
		box := lipgloss.NewStyle().Foreground(s.Color()).Render("■")
		lines[i] = box + " " + string(s)
	}
	return strings.Join(lines, "\n")
}

// Map renders snap as one line per relationship, followed by the people
// without any. A selection highlights that person and dims every
// relationship not touching them.
func Map(snap network.Snapshot, selected string) string {
	if len(snap.People) == 0 {
		return isolatedStyle.Render("Nobody here yet.")
	}
	highlight := selected != "" && snap.Has(selected)

	name := func(n string) string {
		if highlight && n == selected {
			return selectedStyle.Render(n)
		}
		return nodeStyle.Render(n)
	}

	var lines []string
	connected := make(map[string]bool)
	for _, r := range snap.Relations {
		connected[r.A] = true
		connected[r.B] = true

		edge := lipgloss.NewStyle().Foreground(r.Status.Color())
		if highlight && !r.Touches(selected) {
			lines = append(lines, dimmedStyle.Render(fmt.Sprintf("%s ──%s── %s", r.A, r.Status, r.B)))
			continue
		}
		if highlight {
			edge = edge.Bold(true)
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", name(r.A), edge.Render("──"+string(r.Status)+"──"), name(r.B)))
	}

	var isolated []string
	for _, p := range snap.People {
		if !connected[p] {
			isolated = append(isolated, name(p))
		}
	}
	if len(isolated) > 0 {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, isolatedStyle.Render("No relationships: ")+strings.Join(isolated, ", "))
	}
	return strings.Join(lines, "\n")
}
