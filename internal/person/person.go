package person

import (
	"fmt"
	"strings"
)

// Person is a node in the network. The name is its only identity.
type Person struct {
	Name string `json:"name"`
	// Degree is the number of relationships touching the person at the time
	// the value was taken from a snapshot.
	Degree int `json:"-"`
}

// Normalize trims surrounding whitespace. Callers treat an empty result as
// an invalid name.
func Normalize(name string) string {
	return strings.TrimSpace(name)
}

// Matches reports whether substr occurs in name, ignoring case.
func Matches(name, substr string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(substr))
}

// Implement list.Item interface
func (p Person) Title() string { return p.Name }
func (p Person) Description() string {
	switch p.Degree {
	case 0:
		return "no relationships"
	case 1:
		return "1 relationship"
	default:
		return fmt.Sprintf("%d relationships", p.Degree)
	}
}
func (p Person) FilterValue() string { return p.Name }

