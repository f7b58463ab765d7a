package network

import (
	"sort"

	"github.com/N3moAhead/relmap/internal/person"
	"github.com/N3moAhead/relmap/internal/relation"
)

// Snapshot is a read-only copy of the graph. People are sorted; every
// relation has A < B and relations are sorted by (A, B).
type Snapshot struct {
	People    []string
	Relations []relation.Relation
}

// Links returns the relationships touching name, sorted by the other person.
func (s Snapshot) Links(name string) []relation.Link {
	links := []relation.Link{}
	for _, r := range s.Relations {
		if r.Touches(name) {
			links = append(links, relation.Link{Other: r.Other(name), Status: r.Status})
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Other < links[j].Other })
	return links
}

// Persons returns the people with their degree filled in.
func (s Snapshot) Persons() []person.Person {
	degree := make(map[string]int, len(s.People))
	for _, r := range s.Relations {
		degree[r.A]++
		degree[r.B]++
	}
	out := make([]person.Person, len(s.People))
	for i, name := range s.People {
		out[i] = person.Person{Name: name, Degree: degree[name]}
	}
	return out
}

// Has reports whether name is a person in the snapshot.
func (s Snapshot) Has(name string) bool {
	i := sort.SearchStrings(s.People, name)
	return i < len(s.People) && s.People[i] == name
}
