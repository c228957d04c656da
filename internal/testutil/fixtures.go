// Package testutil provides record and schema fixtures for tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/recordcheck/internal/fileutil"
)

// ConferencesSchemaURL is the $schema value of conference records.
const ConferencesSchemaURL = "https://inspirehep.net/schemas/records/conferences.json"

// NewConferenceRecord returns a small conference record that is valid
// against the built-in conferences schema. Each call returns a fresh copy
// that callers may modify.
func NewConferenceRecord() map[string]any {
	return map[string]any{
		"$schema":      ConferencesSchemaURL,
		"acronym":      "ICHEP 2024",
		"cnum":         "C24-07-17",
		"opening_date": "2024-07-17",
		"closing_date": "2024-07-24",
		"place":        "Prague, Czech Republic",
		"series": []any{
			map[string]any{"name": "ICHEP", "number": 42},
		},
		"titles": []any{
			map[string]any{"title": "42nd International Conference on High Energy Physics"},
		},
	}
}

// WriteFile writes content to name inside dir and returns the file path.
// An empty dir means a fresh t.TempDir(). name may contain slashes; missing
// parent directories are created.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), fileutil.OwnerDirectory))
	require.NoError(t, os.WriteFile(path, []byte(content), fileutil.OwnerReadWrite))
	return path
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()
	data, err := yaml.Marshal(doc)
	require.NoError(t, err, "marshaling document to YAML")
	return WriteFile(t, "", "record.yaml", string(data))
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()
	data, err := json.MarshalIndent(doc, "", "  ")
	require.NoError(t, err, "marshaling document to JSON")
	return WriteFile(t, "", "record.json", string(data))
}
