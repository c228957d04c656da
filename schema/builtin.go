package schema

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed schemas
var builtinFS embed.FS

// ConferencesName is the name of the built-in Conference record schema.
const ConferencesName = "conferences"

var builtinRoot = sync.OnceValue(func() fs.FS {
	sub, err := fs.Sub(builtinFS, "schemas")
	if err != nil {
		panic("schema: embedded schemas missing: " + err.Error())
	}
	return sub
})

// BuiltinFS returns the filesystem holding the built-in schema documents.
// Record schemas live at the top level; shared sub-documents live under
// "elements/". Load resolves names against it when no other source is given.
func BuiltinFS() fs.FS {
	return builtinRoot()
}

var builtinCache sync.Map // name -> *Schema

// Builtin returns a built-in schema by name, loading it on first use.
// The returned Schema is shared and must not be modified.
func Builtin(name string) (*Schema, error) {
	if s, ok := builtinCache.Load(name); ok {
		return s.(*Schema), nil
	}
	s, err := Load(WithName(name))
	if err != nil {
		return nil, err
	}
	actual, _ := builtinCache.LoadOrStore(name, s)
	return actual.(*Schema), nil
}

// BuiltinNames lists the built-in record schemas in sorted order.
func BuiltinNames() []string {
	entries, err := fs.ReadDir(BuiltinFS(), ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch path.Ext(e.Name()) {
		case ".yml", ".yaml", ".json":
			names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
		}
	}
	sort.Strings(names)
	return names
}

var conferences = sync.OnceValue(func() *Schema {
	s, err := Builtin(ConferencesName)
	if err != nil {
		panic("schema: built-in conferences schema: " + err.Error())
	}
	return s
})

// Conferences returns the built-in Conference record schema.
func Conferences() *Schema {
	return conferences()
}
