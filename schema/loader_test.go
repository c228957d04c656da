package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/recordcheck/recorderrors"
)

func propertyNames(spec *FieldSpec) []string {
	names := make([]string, 0, len(spec.Properties))
	for _, p := range spec.Properties {
		names = append(names, p.Name)
	}
	return names
}

func TestLoad_Conferences(t *testing.T) {
	s, err := Load(WithName(ConferencesName))
	require.NoError(t, err)
	assert.Equal(t, "conferences", s.Name())

	root := s.Root()
	assert.Equal(t, []Type{TypeObject}, root.Types)
	assert.Equal(t, []string{
		"$schema", "acronym", "address", "alternative_titles", "closing_date",
		"cnum", "contact_details", "deleted", "field_categories", "keywords",
		"nonpublic_note", "note", "opening_date", "place", "self", "series",
		"short_description", "titles", "urls",
	}, propertyNames(root), "properties keep declaration order")

	series, ok := root.Property("series")
	require.True(t, ok)
	assert.True(t, series.UniqueItems)
	require.NotNil(t, series.Items)
	assert.Equal(t, "elements/series.yml", series.Items.Ref)
	assert.True(t, series.Items.IsRequired("name"))
	assert.False(t, series.Items.IsRequired("number"))

	cnum, _ := root.Property("cnum")
	assert.True(t, cnum.MatchPattern("C12-34-56"))
	assert.True(t, cnum.MatchPattern("C24-07-17.1"))
	assert.False(t, cnum.MatchPattern("xC12-34-56"), "pattern must match the whole string")

	opening, _ := root.Property("opening_date")
	assert.Equal(t, FormatDate, opening.Format)

	assert.Contains(t, s.Documents(), "elements/title.yml")
	assert.Equal(t, "conferences.yml", s.Documents()[0])
}

func TestLoad_SharedReferences(t *testing.T) {
	s := Conferences()
	titles, _ := s.Root().Property("titles")
	alt, _ := s.Root().Property("alternative_titles")

	// both references resolve to the same converted properties
	require.NotEmpty(t, titles.Items.Properties)
	assert.Same(t, titles.Items.Properties[0].Spec, alt.Items.Properties[0].Spec)
}

func TestBuiltin(t *testing.T) {
	a, err := Builtin("conferences")
	require.NoError(t, err)
	b, err := Builtin("conferences")
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Same(t, a, Conferences())

	_, err = Builtin("jobs")
	assert.ErrorIs(t, err, recorderrors.ErrSchemaNotFound)

	assert.Equal(t, []string{"conferences"}, BuiltinNames())
}

func TestLoad_RequiredForms(t *testing.T) {
	doc := `
type: object
properties:
  a:
    type: string
    required: true
  b:
    type: string
  c:
    type: integer
required: [c]
`
	s, err := Load(WithBytes("mixed.yml", []byte(doc)))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, s.Root().Required)
	assert.True(t, s.Root().IsRequired("a"))
	assert.False(t, s.Root().IsRequired("b"))
}

func TestLoad_JSONDocument(t *testing.T) {
	doc := `{
  "type": "object",
  "properties": {
    "z": {"type": ["string", "null"]},
    "a": {"type": "array", "items": {"type": "integer"}, "minItems": 2}
  }
}`
	s, err := Load(WithBytes("inline.json", []byte(doc)))
	require.NoError(t, err)
	assert.Equal(t, "inline", s.Name())
	assert.Equal(t, []string{"z", "a"}, propertyNames(s.Root()))

	z, _ := s.Root().Property("z")
	assert.Equal(t, []Type{TypeString, TypeNull}, z.Types)
	a, _ := s.Root().Property("a")
	require.NotNil(t, a.MinItems)
	assert.Equal(t, 2, *a.MinItems)
}

func TestLoad_InferredTypes(t *testing.T) {
	doc := `
properties:
  tags:
    items:
      type: string
  anything: {}
`
	s, err := Load(WithBytes("infer.yml", []byte(doc)))
	require.NoError(t, err)
	assert.Equal(t, []Type{TypeObject}, s.Root().Types)

	tags, _ := s.Root().Property("tags")
	assert.Equal(t, []Type{TypeArray}, tags.Types)
	anything, _ := s.Root().Property("anything")
	assert.Empty(t, anything.Types)
	assert.Equal(t, "any", anything.TypeNames())
}

func TestLoad_PointerAndAliasReferences(t *testing.T) {
	fsys := fstest.MapFS{
		"root.yml": {Data: []byte(`
type: object
definitions:
  name: &name
    type: string
    minLength: 1
properties:
  first:
    $ref: '#/definitions/name'
  last: *name
  shared:
    $ref: lib/defs.yml#/definitions/code
`)},
		"lib/defs.yml": {Data: []byte(`
definitions:
  code:
    type: string
    pattern: '[A-Z]+'
`)},
	}
	s, err := Load(WithName("root"), WithFS(fsys))
	require.NoError(t, err)

	first, _ := s.Root().Property("first")
	assert.Equal(t, []Type{TypeString}, first.Types)
	assert.Equal(t, "#/definitions/name", first.Ref)

	last, _ := s.Root().Property("last")
	require.NotNil(t, last.MinLength)
	assert.Equal(t, 1, *last.MinLength)

	shared, _ := s.Root().Property("shared")
	assert.True(t, shared.MatchPattern("ABC"))
	assert.False(t, shared.MatchPattern("abc"))
}

func TestLoad_CircularReferences(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "two documents",
			fsys: fstest.MapFS{
				"a.yml": {Data: []byte("type: object\nproperties:\n  b:\n    $ref: b.yml\n")},
				"b.yml": {Data: []byte("type: object\nproperties:\n  a:\n    $ref: a.yml\n")},
			},
		},
		{
			name: "self reference",
			fsys: fstest.MapFS{
				"a.yml": {Data: []byte("type: object\nproperties:\n  child:\n    $ref: '#'\n")},
			},
		},
		{
			name: "pointer loop",
			fsys: fstest.MapFS{
				"a.yml": {Data: []byte(`
type: object
definitions:
  x: {$ref: '#/definitions/y'}
  y: {$ref: '#/definitions/x'}
properties:
  v: {$ref: '#/definitions/x'}
`)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(WithName("a"), WithFS(tt.fsys))
			require.Error(t, err)
			assert.ErrorIs(t, err, recorderrors.ErrCircularReference)
			assert.ErrorIs(t, err, recorderrors.ErrInvalidSchema)
		})
	}
}

func TestLoad_InvalidSchemas(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		message string
	}{
		{"unknown type", "type: object\nproperties:\n  a: {type: text}\n", `unknown type "text"`},
		{"bad pattern", "type: object\nproperties:\n  a: {type: string, pattern: '[a-'}\n", `keyword "pattern"`},
		{"root not object", "type: string\n", "root must be of type object"},
		{"root not mapping", "- a\n- b\n", "document root must be a mapping"},
		{"property not mapping", "type: object\nproperties:\n  a: 3\n", "schema must be a mapping"},
		{"bad uniqueItems", "type: object\nproperties:\n  a: {type: array, uniqueItems: maybe}\n", "must be a boolean"},
		{"negative minItems", "type: object\nproperties:\n  a: {type: array, minItems: -1}\n", "non-negative integer"},
		{"tuple items", "type: object\nproperties:\n  a: {type: array, items: [{type: string}]}\n", "tuple-form items"},
		{"remote ref", "type: object\nproperties:\n  a: {$ref: 'https://example.org/x.json'}\n", "remote references"},
		{"escaping ref", "type: object\nproperties:\n  a: {$ref: '../x.yml'}\n", "escapes the schema directory"},
		{"missing ref target", "type: object\nproperties:\n  a: {$ref: 'missing.yml'}\n", "cannot load referenced document"},
		{"bad pointer", "type: object\nproperties:\n  a: {$ref: '#/definitions/none'}\n", "does not resolve"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(WithBytes("bad.yml", []byte(tt.doc)), WithFS(fstest.MapFS{}))
			require.Error(t, err)
			assert.ErrorIs(t, err, recorderrors.ErrInvalidSchema)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoad_ParseError(t *testing.T) {
	_, err := Load(WithBytes("broken.yml", []byte("type: [object\n")))
	require.Error(t, err)
	assert.ErrorIs(t, err, recorderrors.ErrParse)
}

func TestLoad_RefWithoutFilesystem(t *testing.T) {
	_, err := Load(WithBytes("x.yml", []byte("type: object\nproperties:\n  a: {$ref: other.yml}\n")))
	require.Error(t, err)
	assert.ErrorIs(t, err, recorderrors.ErrInvalidSchema)
	assert.ErrorIs(t, err, recorderrors.ErrSchemaNotFound)
}

func TestLoad_FilePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "elements"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.yml"), []byte(`
type: object
properties:
  name: {$ref: elements/name.yml}
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "elements", "name.yml"), []byte("type: string\n"), 0o600))

	s, err := Load(WithFilePath(filepath.Join(dir, "events.yml")))
	require.NoError(t, err)
	assert.Equal(t, "events", s.Name())
	name, ok := s.Root().Property("name")
	require.True(t, ok)
	assert.Equal(t, []Type{TypeString}, name.Types)

	_, err = Load(WithFilePath(filepath.Join(dir, "nope.yml")))
	assert.ErrorIs(t, err, recorderrors.ErrSchemaNotFound)
}

func TestLoad_Options(t *testing.T) {
	_, err := Load()
	assert.ErrorIs(t, err, recorderrors.ErrConfig)

	_, err = Load(WithName("conferences"), WithBytes("x", []byte("{}")))
	assert.ErrorIs(t, err, recorderrors.ErrConfig)

	_, err = Load(WithName(""))
	assert.ErrorIs(t, err, recorderrors.ErrConfig)

	_, err = Load(WithFilePath(""))
	assert.ErrorIs(t, err, recorderrors.ErrConfig)

	_, err = Load(WithFS(nil))
	assert.ErrorIs(t, err, recorderrors.ErrConfig)
}

func TestMustLoad(t *testing.T) {
	assert.NotPanics(t, func() {
		MustLoad(WithBytes("ok.yml", []byte("type: object\n")))
	})
	assert.Panics(t, func() {
		MustLoad(WithBytes("bad.yml", []byte("type: string\n")))
	})
}

func TestLoad_MetaValidation(t *testing.T) {
	t.Run("built-in documents pass", func(t *testing.T) {
		_, err := Load(WithName(ConferencesName), WithMetaValidation(true))
		require.NoError(t, err)
	})

	t.Run("field-level required flag fails", func(t *testing.T) {
		doc := "type: object\nproperties:\n  a:\n    type: string\n    required: true\n"
		_, err := Load(WithBytes("flag.yml", []byte(doc)), WithMetaValidation(true))
		require.Error(t, err)
		assert.ErrorIs(t, err, recorderrors.ErrInvalidSchema)

		var schemaErr *recorderrors.SchemaError
		require.True(t, errors.As(err, &schemaErr))
		assert.Equal(t, "flag.yml", schemaErr.Schema)
	})
}

func TestNameFromRef(t *testing.T) {
	tests := map[string]string{
		"https://inspirehep.net/schemas/records/conferences.json": "conferences",
		"conferences.yml":              "conferences",
		"conferences":                  "conferences",
		"elements/title.yml#/x":        "title",
		"http://localhost/schemas/hep/": "hep",
	}
	for in, want := range tests {
		assert.Equal(t, want, NameFromRef(in), in)
	}
}
