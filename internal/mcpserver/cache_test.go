package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/recordcheck/internal/testutil"
	"github.com/erraggy/recordcheck/schema"
)

func testSchema(t *testing.T, name string) *schema.Schema {
	t.Helper()
	s, err := schema.New(name, nil)
	require.NoError(t, err)
	return s
}

func TestSchemaCache_GetPut(t *testing.T) {
	c := newSchemaCacheStore(4)
	s := testSchema(t, "a")

	assert.Nil(t, c.get("k"))
	c.put("k", s, nil, time.Minute)
	assert.Same(t, s, c.get("k"))
	assert.Equal(t, 1, c.size())

	c.reset()
	assert.Equal(t, 0, c.size())
}

func TestSchemaCache_Expiry(t *testing.T) {
	c := newSchemaCacheStore(4)
	c.put("old", testSchema(t, "old"), nil, -time.Second)
	c.put("new", testSchema(t, "new"), nil, time.Minute)

	c.sweep()
	assert.Equal(t, 1, c.size())
	assert.NotNil(t, c.get("new"))

	c.put("stale", testSchema(t, "stale"), nil, -time.Second)
	assert.Nil(t, c.get("stale"), "expired entries are removed on read")
	assert.Equal(t, 1, c.size())
}

func TestSchemaCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newSchemaCacheStore(2)
	c.put("a", testSchema(t, "a"), nil, time.Minute)
	c.put("b", testSchema(t, "b"), nil, time.Minute)
	require.NotNil(t, c.get("a")) // touch a
	c.put("c", testSchema(t, "c"), nil, time.Minute)

	assert.Equal(t, 2, c.size())
	assert.NotNil(t, c.get("a"))
	assert.Nil(t, c.get("b"))
	assert.NotNil(t, c.get("c"))
}

func TestSchemaCache_Sweeper(t *testing.T) {
	c := newSchemaCacheStore(4)
	c.put("old", testSchema(t, "old"), nil, -time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.startSweeper(ctx, 5*time.Millisecond)
	c.startSweeper(ctx, 5*time.Millisecond) // second call is a no-op

	assert.Eventually(t, func() bool { return c.size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestMakeCacheKey(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "s.yml", "type: object\n")

	fileKey := makeCacheKey(schemaInput{File: path})
	assert.Contains(t, fileKey, "file:")

	a := makeCacheKey(schemaInput{Content: "type: object\n"})
	b := makeCacheKey(schemaInput{Content: "type: object\n"})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, makeCacheKey(schemaInput{Content: "{}"}))

	assert.Empty(t, makeCacheKey(schemaInput{Name: "conferences"}))
	assert.Empty(t, makeCacheKey(schemaInput{File: filepath.Join(dir, "missing.yml")}))
}

func TestSchemaCache_StaleDependency(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "s.yml", "type: object\nproperties:\n  x: {$ref: x.yml}\n")
	ref := testutil.WriteFile(t, dir, "x.yml", "type: string\n")

	s, err := schema.Load(schema.WithFilePath(path))
	require.NoError(t, err)
	deps, err := fileDeps(path, s)
	require.NoError(t, err)
	assert.Len(t, deps, 2)

	c := newSchemaCacheStore(4)
	c.put("k", s, deps, time.Minute)
	assert.Same(t, s, c.get("k"))

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(ref, later, later))
	assert.Nil(t, c.get("k"), "a changed reference invalidates the entry")
	assert.Equal(t, 0, c.size())

	c.put("k", s, deps, time.Minute)
	require.NoError(t, os.Remove(ref))
	assert.Nil(t, c.get("k"), "a removed reference invalidates the entry")
}
