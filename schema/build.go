package schema

import (
	"fmt"
	"regexp"

	"github.com/erraggy/recordcheck/recorderrors"
)

// New builds a Schema from a FieldSpec tree constructed in code. New takes
// ownership of root: the tree must not be modified afterwards. Patterns are
// compiled and a spec reachable from itself is rejected with a
// *recorderrors.SchemaError.
func New(name string, root *FieldSpec) (*Schema, error) {
	if root == nil {
		root = &FieldSpec{}
	}
	if len(root.Types) == 0 {
		root.Types = []Type{TypeObject}
	} else if !root.AllowsType(TypeObject) {
		return nil, &recorderrors.SchemaError{
			Schema:  name,
			Message: fmt.Sprintf("root must be of type object, declared %s", root.TypeNames()),
		}
	}

	b := builder{schema: name, active: make(map[*FieldSpec]bool), done: make(map[*FieldSpec]bool)}
	if err := b.prepare(root, ""); err != nil {
		return nil, err
	}
	return &Schema{name: name, root: root}, nil
}

type builder struct {
	schema string
	active map[*FieldSpec]bool
	done   map[*FieldSpec]bool
}

func (b *builder) prepare(spec *FieldSpec, at string) error {
	if b.active[spec] {
		return &recorderrors.SchemaError{Schema: b.schema, Path: at, IsCircular: true, Message: "field spec contains itself"}
	}
	if b.done[spec] {
		return nil
	}
	b.active[spec] = true
	defer delete(b.active, spec)

	for _, t := range spec.Types {
		if !knownTypes[t] {
			return &recorderrors.SchemaError{Schema: b.schema, Path: at, Message: fmt.Sprintf("unknown type %q", t)}
		}
	}
	if spec.Pattern != "" && spec.pattern == nil {
		re, err := regexp.Compile("^(?:" + spec.Pattern + ")$")
		if err != nil {
			return &recorderrors.SchemaError{Schema: b.schema, Path: at, Message: "invalid pattern", Cause: err}
		}
		spec.pattern = re
	}
	for _, p := range spec.Properties {
		if p.Spec == nil {
			return &recorderrors.SchemaError{Schema: b.schema, Path: joinPath(at, "properties."+p.Name), Message: "property has no spec"}
		}
		if err := b.prepare(p.Spec, joinPath(at, "properties."+p.Name)); err != nil {
			return err
		}
	}
	if spec.Items != nil {
		if err := b.prepare(spec.Items, joinPath(at, "items")); err != nil {
			return err
		}
	}
	spec.finish()
	b.done[spec] = true
	return nil
}
