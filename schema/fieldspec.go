package schema

import (
	"regexp"
	"slices"
	"strings"
)

// FieldSpec describes the allowed shape of one field. A loaded FieldSpec
// tree is acyclic and must not be modified.
type FieldSpec struct {
	// Types lists the accepted types. Empty means any type.
	Types []Type
	// Title and Description are informational.
	Title       string
	Description string
	// Ref is the $ref this spec was resolved from, if any.
	Ref string

	// Properties lists the declared object members in declaration order.
	Properties []Property
	// Required lists the names of properties that must be present.
	Required []string
	// AdditionalProperties is nil when unspecified; false closes the object.
	AdditionalProperties *bool

	// Items describes every element of an array.
	Items *FieldSpec
	// UniqueItems requires array elements to be pairwise distinct.
	UniqueItems bool
	// MinItems is the minimum array length (nil when unspecified).
	MinItems *int

	// Pattern is the source of the string constraint; it must match the
	// whole string.
	Pattern string
	// Format names a semantic string check (e.g., "date").
	Format string
	// MinLength is the minimum string length in characters (nil when unspecified).
	MinLength *int

	// Enum lists the allowed values (empty when unspecified).
	Enum []any

	pattern  *regexp.Regexp
	propIdx  map[string]int
	required map[string]bool
}

// Property is a named object member.
type Property struct {
	Name string
	Spec *FieldSpec
}

// Property returns the spec of a declared property.
func (f *FieldSpec) Property(name string) (*FieldSpec, bool) {
	i, ok := f.propIdx[name]
	if !ok {
		return nil, false
	}
	return f.Properties[i].Spec, true
}

// IsRequired reports whether the named property is required.
func (f *FieldSpec) IsRequired(name string) bool {
	return f.required[name]
}

// AllowsType reports whether t is among the declared types. A spec that
// declares no types allows everything.
func (f *FieldSpec) AllowsType(t Type) bool {
	return len(f.Types) == 0 || slices.Contains(f.Types, t)
}

// MatchPattern reports whether s satisfies the pattern. It returns true
// when no pattern is declared.
func (f *FieldSpec) MatchPattern(s string) bool {
	if f.pattern == nil {
		return true
	}
	return f.pattern.MatchString(s)
}

// Closed reports whether undeclared properties are rejected by the schema itself.
func (f *FieldSpec) Closed() bool {
	return f.AdditionalProperties != nil && !*f.AdditionalProperties
}

// TypeNames returns the declared types joined with " or ", or "any".
func (f *FieldSpec) TypeNames() string {
	if len(f.Types) == 0 {
		return "any"
	}
	names := make([]string, len(f.Types))
	for i, t := range f.Types {
		names[i] = string(t)
	}
	return strings.Join(names, " or ")
}

// finish builds the lookup indexes once conversion is complete.
func (f *FieldSpec) finish() {
	f.propIdx = make(map[string]int, len(f.Properties))
	for i, p := range f.Properties {
		f.propIdx[p.Name] = i
	}
	f.required = make(map[string]bool, len(f.Required))
	for _, r := range f.Required {
		f.required[r] = true
	}
}

// Schema is a named root FieldSpec of type object. Schemas are immutable
// and safe for concurrent use.
type Schema struct {
	name string
	root *FieldSpec
	docs []string
}

// Name returns the schema name (e.g., "conferences").
func (s *Schema) Name() string {
	return s.name
}

// Root returns the root FieldSpec.
func (s *Schema) Root() *FieldSpec {
	return s.root
}

// Documents returns the names of the schema documents composed into this
// schema, root document first.
func (s *Schema) Documents() []string {
	return slices.Clone(s.docs)
}

// FieldInfo is one row of a flattened schema description.
type FieldInfo struct {
	Path     string   `json:"path" yaml:"path"`
	Types    []string `json:"types,omitempty" yaml:"types,omitempty"`
	Required bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Unique   bool     `json:"unique,omitempty" yaml:"unique,omitempty"`
	Format   string   `json:"format,omitempty" yaml:"format,omitempty"`
	Pattern  string   `json:"pattern,omitempty" yaml:"pattern,omitempty"`
}

// Fields flattens the schema into an ordered field list. Array elements
// appear with a "[]" suffix (e.g., "series[].name").
func (s *Schema) Fields() []FieldInfo {
	var out []FieldInfo
	appendFields(&out, "", s.root)
	return out
}

func appendFields(out *[]FieldInfo, prefix string, spec *FieldSpec) {
	for _, p := range spec.Properties {
		path := p.Name
		if prefix != "" {
			path = prefix + "." + p.Name
		}
		*out = append(*out, describe(path, p.Spec, spec.IsRequired(p.Name)))
		appendNested(out, path, p.Spec)
	}
}

func appendNested(out *[]FieldInfo, path string, spec *FieldSpec) {
	if len(spec.Properties) > 0 {
		appendFields(out, path, spec)
	}
	if spec.Items != nil {
		itemPath := path + "[]"
		if len(spec.Items.Properties) == 0 {
			*out = append(*out, describe(itemPath, spec.Items, false))
		}
		appendNested(out, itemPath, spec.Items)
	}
}

func describe(path string, spec *FieldSpec, required bool) FieldInfo {
	info := FieldInfo{
		Path:     path,
		Required: required,
		Unique:   spec.UniqueItems,
		Format:   spec.Format,
		Pattern:  spec.Pattern,
	}
	for _, t := range spec.Types {
		info.Types = append(info.Types, string(t))
	}
	return info
}
