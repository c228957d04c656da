package mcpserver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/recordcheck/internal/testutil"
	"github.com/erraggy/recordcheck/recorderrors"
)

func TestRecordInput_Resolve(t *testing.T) {
	rec, err := recordInput{Content: `{"cnum": "C24-07-17"}`}.resolve()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"cnum": "C24-07-17"}, rec)

	path := filepath.Join("..", "..", "testdata", "conference.json")
	rec, err = recordInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Contains(t, rec, "titles")

	rec, err = recordInput{File: testutil.WriteTempYAML(t, testutil.NewConferenceRecord())}.resolve()
	require.NoError(t, err)
	assert.Equal(t, testutil.ConferencesSchemaURL, rec.(map[string]any)["$schema"])

	_, err = recordInput{}.resolve()
	assert.ErrorContains(t, err, "got 0")

	_, err = recordInput{File: path, Content: "{}"}.resolve()
	assert.ErrorContains(t, err, "got 2")

	_, err = recordInput{Content: "a: [1"}.resolve()
	assert.ErrorIs(t, err, recorderrors.ErrParse)
}

func TestRecordInput_SizeLimit(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.MaxInlineSize = 8 })

	_, err := recordInput{Content: `{"acronym": "ICHEP"}`}.resolve()
	assert.ErrorContains(t, err, "exceeds maximum")
}

func TestSchemaInput_Resolve(t *testing.T) {
	schemaCache.reset()
	t.Cleanup(schemaCache.reset)

	s, err := schemaInput{Name: "conferences"}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "conferences", s.Name())

	_, err = schemaInput{Name: "jobs"}.resolve()
	assert.ErrorIs(t, err, recorderrors.ErrSchemaNotFound)

	content := "type: object\nproperties:\n  a: {type: string}\n"
	first, err := schemaInput{Content: content}.resolve()
	require.NoError(t, err)
	second, err := schemaInput{Content: content}.resolve()
	require.NoError(t, err)
	assert.Same(t, first, second, "inline schemas are cached by content hash")
	assert.Equal(t, 1, schemaCache.size())

	_, err = schemaInput{}.resolve()
	assert.ErrorContains(t, err, "got 0")
	_, err = schemaInput{Name: "conferences", Content: content}.resolve()
	assert.ErrorContains(t, err, "got 2")
}

func TestSchemaInput_File(t *testing.T) {
	schemaCache.reset()
	t.Cleanup(schemaCache.reset)

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "events.yml", "type: object\nproperties:\n  name: {$ref: name.yml}\n")
	testutil.WriteFile(t, dir, "name.yml", "type: string\n")

	s, err := schemaInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "events", s.Name())
	assert.Equal(t, 1, schemaCache.size())
}

func TestSchemaInput_CacheDisabled(t *testing.T) {
	schemaCache.reset()
	t.Cleanup(schemaCache.reset)
	withConfig(t, func(c *serverConfig) { c.CacheEnabled = false })

	_, err := schemaInput{Content: "type: object\n"}.resolve()
	require.NoError(t, err)
	assert.Equal(t, 0, schemaCache.size())
}

func TestSchemaInput_FileReloadsChangedReference(t *testing.T) {
	schemaCache.reset()
	t.Cleanup(schemaCache.reset)

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "events.yml", "type: object\nproperties:\n  name: {$ref: elements/name.yml}\n")
	ref := testutil.WriteFile(t, dir, "elements/name.yml", "type: string\n")

	first, err := schemaInput{File: path}.resolve()
	require.NoError(t, err)
	again, err := schemaInput{File: path}.resolve()
	require.NoError(t, err)
	assert.Same(t, first, again)

	// only the referenced document changes; the root keeps its mtime
	testutil.WriteFile(t, dir, "elements/name.yml", "type: integer\n")
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(ref, later, later))

	second, err := schemaInput{File: path}.resolve()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	prop, ok := second.Root().Property("name")
	require.True(t, ok)
	assert.Equal(t, "integer", prop.TypeNames())
	assert.Equal(t, 1, schemaCache.size())
}
