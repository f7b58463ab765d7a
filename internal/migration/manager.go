package migration

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// CurrentVersion is the version stamped into files written today.
const CurrentVersion = "1"

type Migration struct {
	FromVersion string
	ToVersion   string
	Apply       func(data map[string]any) (map[string]any, error)
}

var migrations = []Migration{
	{
		FromVersion: "0",
		ToVersion:   "1",
		Apply:       migrate_0_to_1,
	},
}

// Apply runs every pending migration on an already decoded document and
// reports whether anything changed.
func Apply(data map[string]any) (map[string]any, error) {
	data, _, err := apply(data, zap.NewNop())
	return data, err
}

func apply(data map[string]any, logger *zap.Logger) (map[string]any, bool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Files written before versioning carry no version key at all.
	currentVer, ok := data["version"].(string)
	if !ok {
		currentVer = "0"
	}

	dirty := false

	for {
		var foundMigration *Migration
		for _, m := range migrations {
			if m.FromVersion == currentVer {
				foundMigration = &m
				break
			}
		}

		if foundMigration == nil {
			break
		}

		logger.Info("migrating relationship file",
			zap.String("from", currentVer),
			zap.String("to", foundMigration.ToVersion))

		newData, err := foundMigration.Apply(data)
		if err != nil {
			return nil, false, fmt.Errorf("migration %s -> %s failed: %w", currentVer, foundMigration.ToVersion, err)
		}

		data = newData
		currentVer = foundMigration.ToVersion

		data["version"] = currentVer
		dirty = true
	}

	return data, dirty, nil
}

// RunMigrations will always be called on startup. The file is rewritten only
// when a migration ran. Files that are not JSON objects are left for the
// loader to report.
func RunMigrations(dbPath string, logger *zap.Logger) error {
	content, err := os.ReadFile(dbPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var data map[string]any
	if err := json.Unmarshal(content, &data); err != nil || data == nil {
		logger.Warn("skipping migrations for unreadable file", zap.String("path", dbPath), zap.Error(err))
		return nil
	}

	data, dirty, err := apply(data, logger)
	if err != nil {
		return err
	}

	// Save the db if something changed...
	if dirty {
		newContent, err := json.MarshalIndent(data, "", " ")
		if err != nil {
			return err
		}
		return os.WriteFile(dbPath, append(newContent, '\n'), 0644)
	}

	return nil
}

// --- Migrations ---

// migrate_0_to_1 collapses the mirrored [a, b, s] / [b, a, s] entries that
// unversioned exports contain. The last entry seen for a pair decides its
// status; the pair keeps the position and orientation of its first entry.
// Entries that are not 3-element string arrays are kept untouched.
func migrate_0_to_1(data map[string]any) (map[string]any, error) {
	edgesRaw, ok := data["edges"].([]any)
	if !ok {
		return data, nil
	}

	type pair struct{ lo, hi string }
	index := make(map[pair]int)
	out := make([]any, 0, len(edgesRaw))

	for _, e := range edgesRaw {
		a, b, status, ok := edgeStrings(e)
		if !ok {
			out = append(out, e)
			continue
		}

		key := pair{a, b}
		if b < a {
			key = pair{b, a}
		}
		if i, seen := index[key]; seen {
			prev := out[i].([]any)
			out[i] = []any{prev[0], prev[1], status}
			continue
		}
		index[key] = len(out)
		out = append(out, []any{a, b, status})
	}

	data["edges"] = out
	return data, nil
}

func edgeStrings(e any) (a, b, status string, ok bool) {
	parts, isSlice := e.([]any)
	if !isSlice || len(parts) != 3 {
		return "", "", "", false
	}
	var s [3]string
	for i, p := range parts {
		v, isString := p.(string)
		if !isString {
			return "", "", "", false
		}
		s[i] = v
	}
	return s[0], s[1], s[2], true
}
