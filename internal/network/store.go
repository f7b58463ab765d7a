// Package network holds the relationship graph: people, the undirected
// relationships between them, and the file they are persisted to.
package network

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/N3moAhead/relmap/internal/db"
	"github.com/N3moAhead/relmap/internal/migration"
	"github.com/N3moAhead/relmap/internal/person"
	"github.com/N3moAhead/relmap/internal/relation"
	"go.uber.org/zap"
)

// pairKey identifies an undirected edge; lo < hi always holds.
type pairKey struct {
	lo, hi string
}

func keyOf(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// Store is the single authoritative copy of the graph. It is safe to share
// between the presentation layer and background savers.
type Store struct {
	mu    sync.Mutex
	nodes map[string]struct{}
	edges map[pairKey]relation.Status

	// path is the bound file every mutation is saved to.
	path string
	// written holds the bytes last read from or written to path.
	written []byte

	logger   *zap.Logger
	onChange func(Snapshot)
}

type Option func(*Store)

// WithLogger sets the logger used for load and save events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithChangeHook registers fn to receive a snapshot after every successful
// mutation, load or reload. fn runs without the store lock held.
func WithChangeHook(fn func(Snapshot)) Option {
	return func(s *Store) { s.onChange = fn }
}

func New(opts ...Option) *Store {
	s := &Store{
		nodes:  make(map[string]struct{}),
		edges:  make(map[pairKey]relation.Status),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetChangeHook replaces the hook registered with WithChangeHook.
func (s *Store) SetChangeHook(fn func(Snapshot)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Bind makes path the file that every later mutation is saved to. The path
// is stored in absolute form so that a relative bind and an absolute reload
// name the same file.
func (s *Store) Bind(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.path = absPath(path)
	s.written = nil
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// isBoundLocked reports whether path names the bound file.
func (s *Store) isBoundLocked(path string) bool {
	return s.path != "" && absPath(path) == s.path
}

// Path returns the bound file, or "" when unbound.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// mutate runs fn under the lock and, when fn succeeds, saves to the bound
// file. A failed save does not roll back the mutation; it is reported as a
// KindIO error.
func (s *Store) mutate(op string, fn func() error) error {
	s.mu.Lock()
	if err := fn(); err != nil {
		s.mu.Unlock()
		return err
	}
	var saveErr error
	if s.path != "" {
		saveErr = s.saveLocked(op, s.path)
	}
	snap := s.snapshotLocked()
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
	return saveErr
}

// AddPerson adds name after trimming it. When a file is bound and cannot be
// written, the person stays added and a KindIO error is returned.
func (s *Store) AddPerson(name string) error {
	const op = "add person"
	name = person.Normalize(name)
	return s.mutate(op, func() error {
		if name == "" {
			return newError(op, KindInvalidArgument, errors.New("name is empty"), name)
		}
		if _, ok := s.nodes[name]; ok {
			return newError(op, KindDuplicate, nil, name)
		}
		s.nodes[name] = struct{}{}
		s.logger.Debug("person added", zap.String("name", name))
		return nil
	})
}

// RenamePerson relabels oldName and moves every relationship it has onto
// newName with the same status. A failed save to the bound file keeps the
// rename and returns a KindIO error.
func (s *Store) RenamePerson(oldName, newName string) error {
	const op = "rename person"
	newName = person.Normalize(newName)
	return s.mutate(op, func() error {
		if _, ok := s.nodes[oldName]; !ok {
			return newError(op, KindNotFound, nil, oldName)
		}
		if newName == "" {
			return newError(op, KindInvalidArgument, errors.New("new name is empty"), oldName)
		}
		if _, ok := s.nodes[newName]; ok {
			return newError(op, KindDuplicate, nil, newName)
		}

		moved := make(map[pairKey]relation.Status)
		for k, status := range s.edges {
			if k.lo == oldName || k.hi == oldName {
				moved[k] = status
			}
		}
		for k, status := range moved {
			delete(s.edges, k)
			other := k.hi
			if k.hi == oldName {
				other = k.lo
			}
			s.edges[keyOf(newName, other)] = status
		}
		delete(s.nodes, oldName)
		s.nodes[newName] = struct{}{}

		s.logger.Debug("person renamed",
			zap.String("from", oldName),
			zap.String("to", newName),
			zap.Int("relationships", len(moved)))
		return nil
	})
}

// RemovePerson deletes name and every relationship touching it. A failed
// save to the bound file keeps the removal and returns a KindIO error.
func (s *Store) RemovePerson(name string) error {
	const op = "remove person"
	return s.mutate(op, func() error {
		if _, ok := s.nodes[name]; !ok {
			return newError(op, KindNotFound, nil, name)
		}
		removed := 0
		for k := range s.edges {
			if k.lo == name || k.hi == name {
				delete(s.edges, k)
				removed++
			}
		}
		delete(s.nodes, name)
		s.logger.Debug("person removed", zap.String("name", name), zap.Int("relationships", removed))
		return nil
	})
}

// SetRelationship inserts or overwrites the single edge between a and b.
// A failed save to the bound file keeps the edge and returns a KindIO error.
func (s *Store) SetRelationship(a, b string, status relation.Status) error {
	const op = "set relationship"
	status = relation.Normalize(status)
	return s.mutate(op, func() error {
		var missing []string
		for _, name := range []string{a, b} {
			if _, ok := s.nodes[name]; !ok {
				missing = append(missing, name)
			}
		}
		if len(missing) > 0 {
			return newError(op, KindNotFound, nil, missing...)
		}
		if a == b {
			return newError(op, KindInvalidArgument, errors.New("a person cannot be related to themselves"), a)
		}
		if status == "" {
			return newError(op, KindInvalidArgument, errors.New("status is empty"), a, b)
		}
		s.edges[keyOf(a, b)] = status
		s.logger.Debug("relationship set",
			zap.String("a", a),
			zap.String("b", b),
			zap.String("status", string(status)))
		return nil
	})
}

// RemoveRelationship deletes the edge between a and b in either order. A
// failed save to the bound file keeps the deletion and returns a KindIO error.
func (s *Store) RemoveRelationship(a, b string) error {
	const op = "remove relationship"
	return s.mutate(op, func() error {
		k := keyOf(a, b)
		if _, ok := s.edges[k]; !ok {
			return newError(op, KindNotFound, nil, a, b)
		}
		delete(s.edges, k)
		s.logger.Debug("relationship removed", zap.String("a", a), zap.String("b", b))
		return nil
	})
}

// FindPeople returns the names containing substr, ignoring case, in
// ascending byte order. substr is trimmed like a name; an empty substr
// matches everyone.
func (s *Store) FindPeople(substr string) []string {
	substr = person.Normalize(substr)
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []string{}
	for name := range s.nodes {
		if person.Matches(name, substr) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// RelationshipsOf lists every relationship touching name, sorted by the
// other person's name.
func (s *Store) RelationshipsOf(name string) ([]relation.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.nodes[name]; !ok {
		return nil, newError("relationships of", KindNotFound, nil, name)
	}
	links := []relation.Link{}
	for k, status := range s.edges {
		switch name {
		case k.lo:
			links = append(links, relation.Link{Other: k.hi, Status: status})
		case k.hi:
			links = append(links, relation.Link{Other: k.lo, Status: status})
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].Other < links[j].Other })
	return links, nil
}

func (s *Store) HasPerson(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.nodes[name]
	return ok
}

// Len returns the number of people and relationships.
func (s *Store) Len() (people, relationships int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nodes), len(s.edges)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		People:    make([]string, 0, len(s.nodes)),
		Relations: make([]relation.Relation, 0, len(s.edges)),
	}
	for name := range s.nodes {
		snap.People = append(snap.People, name)
	}
	sort.Strings(snap.People)
	for k, status := range s.edges {
		snap.Relations = append(snap.Relations, relation.Relation{A: k.lo, B: k.hi, Status: status})
	}
	sort.Slice(snap.Relations, func(i, j int) bool {
		ri, rj := snap.Relations[i], snap.Relations[j]
		if ri.A != rj.A {
			return ri.A < rj.A
		}
		return ri.B < rj.B
	})
	return snap
}

// document builds the file layout. With mirrored set every relationship is
// written in both directions.
func (s *Store) documentLocked(mirrored bool) *db.Database {
	snap := s.snapshotLocked()
	doc := &db.Database{
		Version: migration.CurrentVersion,
		Nodes:   snap.People,
		Edges:   make([]db.Edge, 0, len(snap.Relations)),
	}
	for _, r := range snap.Relations {
		doc.Edges = append(doc.Edges, db.Edge{r.A, r.B, string(r.Status)})
		if mirrored {
			doc.Edges = append(doc.Edges, db.Edge{r.B, r.A, string(r.Status)})
		}
	}
	return doc
}

// Save writes the whole graph to path, one entry per relationship.
func (s *Store) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked("save", path)
}

// Flush saves to the bound file. It is a no-op when nothing is bound.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return nil
	}
	return s.saveLocked("flush", s.path)
}

func (s *Store) saveLocked(op, path string) error {
	content, err := db.Encode(s.documentLocked(false))
	if err != nil {
		return newError(op, KindIO, err, path)
	}
	if err := db.WriteFile(path, content); err != nil {
		return newError(op, KindIO, err, path)
	}
	if s.isBoundLocked(path) {
		s.written = content
	}
	s.logger.Debug("graph saved",
		zap.String("path", path),
		zap.Int("people", len(s.nodes)),
		zap.Int("relationships", len(s.edges)))
	return nil
}

// Export writes the whole graph to path. With mirrored set both directions
// of every relationship are emitted, matching older exports.
func (s *Store) Export(path string, mirrored bool) error {
	const op = "export"
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := db.Encode(s.documentLocked(mirrored))
	if err != nil {
		return newError(op, KindIO, err, path)
	}
	if err := db.WriteFile(path, content); err != nil {
		return newError(op, KindIO, err, path)
	}
	s.logger.Info("graph exported", zap.String("path", path), zap.Bool("mirrored", mirrored))
	return nil
}

// Load replaces the graph with the content of path. The file is decoded
// and validated into fresh structures first; on any error the current graph
// is left as it was.
func (s *Store) Load(path string) error {
	_, err := s.replace("load", path, false)
	return err
}

// Import loads path and saves the result to the bound file.
func (s *Store) Import(path string) error {
	const op = "import"
	if _, err := s.replace(op, path, false); err != nil {
		return err
	}
	return s.Flush()
}

// Reload loads path unless its content equals what this store last read
// from or wrote to it. It reports whether the graph was replaced.
func (s *Store) Reload(path string) (bool, error) {
	return s.replace("reload", path, true)
}

// replace reads, decodes and swaps in path under a single hold of the lock,
// so no mutation or save can land between the read and the swap. With
// skipOwn set, content equal to the last bytes seen on the bound file is
// ignored and false is returned.
func (s *Store) replace(op, path string, skipOwn bool) (bool, error) {
	s.mu.Lock()
	content, err := os.ReadFile(path)
	if err != nil {
		s.mu.Unlock()
		return false, newError(op, KindIO, err, path)
	}
	bound := s.isBoundLocked(path)
	if skipOwn && bound && s.written != nil && bytes.Equal(content, s.written) {
		s.mu.Unlock()
		return false, nil
	}
	doc, err := db.Decode(content)
	if err != nil {
		s.mu.Unlock()
		return false, newError(op, KindFormat, err, path)
	}
	nodes, edges, err := build(op, doc)
	if err != nil {
		s.mu.Unlock()
		return false, err
	}
	s.nodes = nodes
	s.edges = edges
	if bound {
		s.written = content
	}
	snap := s.snapshotLocked()
	hook := s.onChange
	s.mu.Unlock()

	s.logger.Info("graph loaded",
		zap.String("path", path),
		zap.Int("people", len(snap.People)),
		zap.Int("relationships", len(snap.Relations)))
	if hook != nil {
		hook(snap)
	}
	return true, nil
}

// build validates doc into new node and edge sets. Several entries for the
// same pair are allowed; the last one in file order wins.
func build(op string, doc *db.Database) (map[string]struct{}, map[pairKey]relation.Status, error) {
	nodes := make(map[string]struct{}, len(doc.Nodes))
	for _, name := range doc.Nodes {
		if person.Normalize(name) == "" {
			return nil, nil, newError(op, KindValidation, errors.New("blank person name"), name)
		}
		if person.Normalize(name) != name {
			return nil, nil, newError(op, KindValidation, errors.New("person name has surrounding whitespace"), name)
		}
		if _, ok := nodes[name]; ok {
			return nil, nil, newError(op, KindValidation, errors.New("duplicate person"), name)
		}
		nodes[name] = struct{}{}
	}

	edges := make(map[pairKey]relation.Status, len(doc.Edges))
	for i, e := range doc.Edges {
		a, b, status := e[0], e[1], relation.Status(e[2])
		for _, name := range []string{a, b} {
			if _, ok := nodes[name]; !ok {
				return nil, nil, newError(op, KindValidation, fmt.Errorf("edges[%d] references an unknown person", i), name)
			}
		}
		if a == b {
			return nil, nil, newError(op, KindValidation, fmt.Errorf("edges[%d] relates a person to themselves", i), a)
		}
		if relation.Normalize(status) == "" {
			return nil, nil, newError(op, KindValidation, fmt.Errorf("edges[%d] has an empty status", i), a, b)
		}
		if relation.Normalize(status) != status {
			return nil, nil, newError(op, KindValidation, fmt.Errorf("edges[%d] status has surrounding whitespace", i), a, b)
		}
		edges[keyOf(a, b)] = status
	}
	return nodes, edges, nil
}
