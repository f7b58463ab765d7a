package migration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &data))
	return data
}

func TestApply_CollapsesMirroredEdges(t *testing.T) {
	data := decode(t, `{
		"nodes": ["Alice", "Bob", "Carol"],
		"edges": [["Alice","Bob","Friend"], ["Bob","Alice","Friend"], ["Carol","Bob","Exes"], ["Bob","Carol","Distant"]]
	}`)

	out, err := Apply(data)
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, out["version"])
	assert.Equal(t, []any{
		[]any{"Alice", "Bob", "Friend"},
		[]any{"Carol", "Bob", "Distant"},
	}, out["edges"])
}

func TestApply_KeepsMalformedEntries(t *testing.T) {
	data := decode(t, `{"nodes": [], "edges": [["Alice"], 42]}`)

	out, err := Apply(data)
	require.NoError(t, err)
	assert.Len(t, out["edges"], 2)
}

func TestApply_CurrentVersionUntouched(t *testing.T) {
	data := decode(t, `{"version": "1", "nodes": ["A","B"], "edges": [["A","B","Friend"], ["B","A","Exes"]]}`)

	out, dirty, err := apply(data, nil)
	require.NoError(t, err)
	assert.False(t, dirty)
	assert.Len(t, out["edges"], 2)
}

func TestRunMigrations_RewritesLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relationships.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes":["A","B"],"edges":[["A","B","Friend"],["B","A","Friend"]]}`), 0644))

	require.NoError(t, RunMigrations(path, nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	data := decode(t, string(content))
	assert.Equal(t, "1", data["version"])
	assert.Len(t, data["edges"], 1)
}

func TestRunMigrations_MissingFile(t *testing.T) {
	assert.NoError(t, RunMigrations(filepath.Join(t.TempDir(), "nope.json"), nil))
}

func TestRunMigrations_LeavesGarbageAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relationships.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	require.NoError(t, RunMigrations(path, nil))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not json", string(content))
}
