package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/N3moAhead/relmap/internal/migration"
	"github.com/google/uuid"
)

// ErrMalformed marks documents that are not valid JSON or do not follow the
// nodes/edges layout.
var ErrMalformed = errors.New("malformed relationship file")

// Edge is one [personA, personB, status] entry.
type Edge [3]string

// Database is the on-disk layout of the relationship file.
type Database struct {
	Version string   `json:"version,omitempty"`
	Nodes   []string `json:"nodes"`
	Edges   []Edge   `json:"edges"`
}

// Decode parses raw file content. Migrations are applied to the raw document
// before it is mapped onto Database, so older files decode into the current
// layout. Only the shape is checked here; graph invariants are the caller's.
func Decode(content []byte) (*Database, error) {
	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if data == nil {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformed)
	}

	data, err := migration.Apply(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	nodesRaw, ok := data["nodes"]
	if !ok {
		return nil, fmt.Errorf("%w: missing key %q", ErrMalformed, "nodes")
	}
	edgesRaw, ok := data["edges"]
	if !ok {
		return nil, fmt.Errorf("%w: missing key %q", ErrMalformed, "edges")
	}

	db := &Database{Nodes: []string{}, Edges: []Edge{}}
	if v, ok := data["version"].(string); ok {
		db.Version = v
	}

	nodes, ok := nodesRaw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: nodes must be an array", ErrMalformed)
	}
	for i, n := range nodes {
		name, ok := n.(string)
		if !ok {
			return nil, fmt.Errorf("%w: nodes[%d] is not a string", ErrMalformed, i)
		}
		db.Nodes = append(db.Nodes, name)
	}

	edges, ok := edgesRaw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: edges must be an array", ErrMalformed)
	}
	for i, e := range edges {
		parts, ok := e.([]any)
		if !ok || len(parts) != 3 {
			return nil, fmt.Errorf("%w: edges[%d] must be a 3-element array", ErrMalformed, i)
		}
		var edge Edge
		for j, p := range parts {
			s, ok := p.(string)
			if !ok {
				return nil, fmt.Errorf("%w: edges[%d][%d] is not a string", ErrMalformed, i, j)
			}
			edge[j] = s
		}
		db.Edges = append(db.Edges, edge)
	}

	return db, nil
}

// Encode renders db the way it is written to disk.
func Encode(db *Database) ([]byte, error) {
	out := *db
	if out.Nodes == nil {
		out.Nodes = []string{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	content, err := json.MarshalIndent(out, "", " ")
	if err != nil {
		return nil, err
	}
	return append(content, '\n'), nil
}

// WriteFile replaces path with content. The content is written to a sibling
// temp file first and renamed into place, so readers never see a torn file.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
