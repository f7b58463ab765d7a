package relation

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status labels a relationship. The vocabulary is open; Known lists the
// labels that come with a legend color.
type Status string

const (
	Friend        Status = "Friend"
	Dislike       Status = "Dislike"
	Together      Status = "Together"
	Exes          Status = "Exes"
	BestFriends   Status = "Best Friends"
	Complicated   Status = "Complicated"
	Situationship Status = "Situationship"
	Acquaintances Status = "Acquaintances"
	Likes         Status = "Likes"
	Distant       Status = "Distant"
)

// Known is the built-in vocabulary in legend order.
var Known = []Status{
	Friend, Dislike, Together, Exes, BestFriends,
	Complicated, Situationship, Acquaintances, Likes, Distant,
}

// Fallback is used for statuses outside the built-in vocabulary.
const Fallback = lipgloss.Color("#000000")

var colors = map[Status]lipgloss.Color{
	Friend:        lipgloss.Color("#008000"), // green
	Dislike:       lipgloss.Color("#FF0000"), // red
	Together:      lipgloss.Color("#FFC0CB"), // pink
	Exes:          lipgloss.Color("#000000"), // black
	BestFriends:   lipgloss.Color("#0000FF"), // blue
	Complicated:   lipgloss.Color("#FFA500"), // orange
	Situationship: lipgloss.Color("#FFFF00"), // yellow
	Acquaintances: lipgloss.Color("#ADD8E6"), // lightblue
	Likes:         lipgloss.Color("#800080"), // purple
	Distant:       lipgloss.Color("#808080"), // gray
}

// Normalize trims surrounding whitespace from a status label.
func Normalize(s Status) Status {
	return Status(strings.TrimSpace(string(s)))
}

// Color returns the legend color for s.
func (s Status) Color() lipgloss.Color {
	if c, ok := colors[s]; ok {
		return c
	}
	return Fallback
}

// IsKnown reports whether s is part of the built-in vocabulary.
func (s Status) IsKnown() bool {
	_, ok := colors[s]
	return ok
}

func (s Status) String() string { return string(s) }

// Relation is one undirected edge. A and B carry no ordering meaning; stores
// hand them out with A < B.
type Relation struct {
	A      string `json:"a"`
	B      string `json:"b"`
	Status Status `json:"status"`
}

// Other returns the endpoint that is not name.
func (r Relation) Other(name string) string {
	if r.A == name {
		return r.B
	}
	return r.A
}

// Touches reports whether name is one of the endpoints.
func (r Relation) Touches(name string) bool {
	return r.A == name || r.B == name
}

// Link is a relationship seen from one endpoint.
type Link struct {
	Other  string `json:"other"`
	Status Status `json:"status"`
}

// Wrapper for Link to be used in bubbles/list
type LinkItem struct {
	Link
}

func (r LinkItem) Title() string {
	dot := lipgloss.NewStyle().Foreground(r.Status.Color()).Render("●")
	return fmt.Sprintf("%s %s", dot, r.Other)
}
func (r LinkItem) Description() string { return string(r.Status) }
func (r LinkItem) FilterValue() string { return r.Other + " " + string(r.Status) }

// StatusItem lets the status vocabulary be picked from a bubbles/list.
type StatusItem Status

func (s StatusItem) Title() string {
	dot := lipgloss.NewStyle().Foreground(Status(s).Color()).Render("■")
	return fmt.Sprintf("%s %s", dot, string(s))
}
func (s StatusItem) Description() string { return "" }
func (s StatusItem) FilterValue() string { return string(s) }
