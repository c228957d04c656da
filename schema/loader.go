package schema

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/recordcheck/recorderrors"
)

const (
	// maxRefDepth bounds the length of a $ref resolution chain.
	maxRefDepth = 64
	// maxNestingDepth bounds the nesting of schema nodes within a document.
	maxNestingDepth = 100
)

// Load builds a Schema from the configured source. Every $ref is resolved
// once, here, into a single in-memory tree; validation never performs
// lookups. A malformed definition, including a $ref cycle, is reported as
// a *recorderrors.SchemaError.
func Load(opts ...Option) (*Schema, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}

	l := &loader{
		cfg:      cfg,
		fsys:     cfg.fsys,
		docs:     make(map[string]*document),
		resolved: make(map[string]*FieldSpec),
	}

	var rootName string
	switch {
	case cfg.filePath != nil:
		p := filepath.Clean(*cfg.filePath)
		if _, err := os.Stat(p); err != nil {
			return nil, &recorderrors.SchemaNotFoundError{Name: p, Cause: err}
		}
		l.fsys = os.DirFS(filepath.Dir(p))
		rootName = filepath.Base(p)
	case cfg.data != nil:
		rootName = cfg.dataName
		l.inline = map[string][]byte{rootName: cfg.data}
	default:
		if l.fsys == nil {
			l.fsys = BuiltinFS()
		}
		rootName, err = l.lookup(*cfg.name)
		if err != nil {
			return nil, err
		}
	}

	name := NameFromRef(rootName)
	l.logger = cfg.logger.With("schema", name)

	doc, err := l.document(rootName)
	if err != nil {
		return nil, err
	}
	root, err := l.resolve(doc, "")
	if err != nil {
		return nil, err
	}
	if len(root.Types) == 0 {
		cp := *root
		cp.Types = []Type{TypeObject}
		root = &cp
	} else if !root.AllowsType(TypeObject) {
		return nil, &recorderrors.SchemaError{
			Schema:  rootName,
			Message: fmt.Sprintf("root must be of type object, declared %s", root.TypeNames()),
		}
	}

	if cfg.metaValidation {
		if err := l.metaValidate(rootName); err != nil {
			return nil, err
		}
	}

	l.logger.Debug("schema loaded", "documents", len(l.order), "properties", len(root.Properties))
	return &Schema{name: name, root: root, docs: l.order}, nil
}

// MustLoad is like Load but panics on error. It is intended for schemas
// compiled into the program.
func MustLoad(opts ...Option) *Schema {
	s, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("schema: MustLoad: %v", err))
	}
	return s
}

// NameFromRef derives a schema name from a document name or $schema URL:
// "https://example.org/schemas/records/conferences.json" -> "conferences".
func NameFromRef(ref string) string {
	ref, _, _ = strings.Cut(ref, "#")
	ref = strings.TrimRight(ref, "/")
	base := path.Base(ref)
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}

type document struct {
	name string
	root *yaml.Node
}

type loader struct {
	cfg    *loadConfig
	fsys   fs.FS
	inline map[string][]byte
	logger Logger

	docs     map[string]*document
	order    []string
	resolved map[string]*FieldSpec
	stack    []string
}

// lookup finds a named document in the loader filesystem, trying the common
// schema file extensions when the name has none.
func (l *loader) lookup(name string) (string, error) {
	candidates := []string{name}
	if path.Ext(name) == "" {
		candidates = append(candidates, name+".yml", name+".yaml", name+".json")
	}
	for _, c := range candidates {
		if !fs.ValidPath(c) {
			continue
		}
		if info, err := fs.Stat(l.fsys, c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", &recorderrors.SchemaNotFoundError{Name: name}
}

func (l *loader) read(name string) ([]byte, error) {
	if data, ok := l.inline[name]; ok {
		return data, nil
	}
	if l.fsys == nil {
		return nil, fmt.Errorf("no filesystem configured to read %q", name)
	}
	return fs.ReadFile(l.fsys, name)
}

// document parses a schema document once and caches it by name.
func (l *loader) document(name string) (*document, error) {
	if d, ok := l.docs[name]; ok {
		return d, nil
	}

	data, err := l.read(name)
	if err != nil {
		return nil, &recorderrors.SchemaNotFoundError{Name: name, Cause: err}
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &recorderrors.ParseError{Path: name, Message: "decoding schema document", Cause: err}
	}
	root := &node
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, &recorderrors.SchemaError{Schema: name, Message: "document is empty"}
		}
		root = root.Content[0]
	}
	root = deref(root)
	if root.Kind != yaml.MappingNode {
		return nil, &recorderrors.SchemaError{Schema: name, Message: "document root must be a mapping"}
	}

	d := &document{name: name, root: root}
	l.docs[name] = d
	l.order = append(l.order, name)
	l.logger.Debug("loaded schema document", "document", name, "bytes", len(data))
	return d, nil
}

// resolve converts the node at a JSON pointer inside doc, memoizing the
// result so every reference to the same target shares one FieldSpec.
func (l *loader) resolve(doc *document, pointer string) (*FieldSpec, error) {
	key := doc.name + "#" + pointer
	if spec, ok := l.resolved[key]; ok {
		return spec, nil
	}
	if slices.Contains(l.stack, key) {
		return nil, &recorderrors.SchemaError{
			Schema:     doc.name,
			Ref:        key,
			IsCircular: true,
			Message:    "reference chain " + strings.Join(append(slices.Clone(l.stack), key), " -> "),
		}
	}
	if len(l.stack) >= maxRefDepth {
		return nil, &recorderrors.SchemaError{
			Schema:  doc.name,
			Ref:     key,
			Message: fmt.Sprintf("reference chain deeper than %d", maxRefDepth),
		}
	}

	l.stack = append(l.stack, key)
	defer func() { l.stack = l.stack[:len(l.stack)-1] }()

	node, err := lookupPointer(doc.root, pointer)
	if err != nil {
		return nil, &recorderrors.SchemaError{Schema: doc.name, Ref: key, Message: err.Error()}
	}
	spec, err := l.convert(doc, node, pointerPath(pointer), 0)
	if err != nil {
		return nil, err
	}
	l.resolved[key] = spec
	return spec, nil
}

// followRef resolves a $ref found in doc. File parts are relative to the
// referring document; fragments are JSON pointers.
func (l *loader) followRef(doc *document, ref, at string) (*FieldSpec, error) {
	file, fragment, _ := strings.Cut(ref, "#")
	target := doc
	if file != "" {
		if strings.Contains(file, "://") {
			return nil, &recorderrors.SchemaError{Schema: doc.name, Path: at, Ref: ref, Message: "remote references are not supported"}
		}
		name := path.Join(path.Dir(doc.name), file)
		if !fs.ValidPath(name) {
			return nil, &recorderrors.SchemaError{Schema: doc.name, Path: at, Ref: ref, Message: "reference escapes the schema directory"}
		}
		var err error
		target, err = l.document(name)
		if err != nil {
			return nil, &recorderrors.SchemaError{Schema: doc.name, Path: at, Ref: ref, Message: "cannot load referenced document", Cause: err}
		}
	}
	l.logger.Debug("resolving reference", "document", doc.name, "ref", ref)
	return l.resolve(target, fragment)
}

// convert turns a schema node into a FieldSpec.
func (l *loader) convert(doc *document, node *yaml.Node, at string, depth int) (*FieldSpec, error) {
	fail := func(format string, args ...any) error {
		return &recorderrors.SchemaError{Schema: doc.name, Path: at, Message: fmt.Sprintf(format, args...)}
	}

	if depth > maxNestingDepth {
		return nil, fail("schema nested deeper than %d levels", maxNestingDepth)
	}
	node = deref(node)
	if node.Kind != yaml.MappingNode {
		return nil, fail("schema must be a mapping (line %d)", node.Line)
	}

	spec := &FieldSpec{}
	var ref string
	var propsNode, itemsNode *yaml.Node
	var siblings []string

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := deref(node.Content[i+1])

		var err error
		switch key {
		case "$ref":
			ref, err = scalarString(val)
		case "type":
			spec.Types, err = parseTypes(val)
		case "title":
			spec.Title, err = scalarString(val)
		case "description":
			spec.Description, err = scalarString(val)
		case "properties":
			propsNode = val
		case "items":
			itemsNode = val
		case "required":
			if val.Kind == yaml.SequenceNode {
				spec.Required, err = stringList(val)
			}
			// a scalar is the field-level flag, read by the parent object
		case "uniqueItems":
			spec.UniqueItems, err = scalarBool(val)
		case "minItems":
			spec.MinItems, err = scalarCount(val)
		case "minLength":
			spec.MinLength, err = scalarCount(val)
		case "pattern":
			spec.Pattern, err = scalarString(val)
			if err == nil {
				spec.pattern, err = regexp.Compile("^(?:" + spec.Pattern + ")$")
			}
		case "format":
			spec.Format, err = scalarString(val)
			if err == nil && !IsKnownFormat(spec.Format) {
				l.logger.Warn("unknown format is not enforced", "document", doc.name, "path", at, "format", spec.Format)
			}
		case "enum":
			err = val.Decode(&spec.Enum)
		case "additionalProperties":
			if val.Kind == yaml.ScalarNode {
				var b bool
				b, err = scalarBool(val)
				spec.AdditionalProperties = &b
			} else {
				l.logger.Debug("schema-valued additionalProperties is treated as open", "document", doc.name, "path", at)
			}
		}
		if err != nil {
			return nil, fail("keyword %q (line %d): %v", key, val.Line, err)
		}
		if key != "$ref" && key != "title" && key != "description" {
			siblings = append(siblings, key)
		}
	}

	if ref != "" {
		target, err := l.followRef(doc, ref, at)
		if err != nil {
			return nil, err
		}
		if len(siblings) > 0 {
			l.logger.Debug("keywords next to $ref are ignored", "document", doc.name, "path", at, "keywords", siblings)
		}
		cp := *target
		cp.Ref = ref
		if spec.Title != "" {
			cp.Title = spec.Title
		}
		if spec.Description != "" {
			cp.Description = spec.Description
		}
		return &cp, nil
	}

	if propsNode != nil {
		if err := l.convertProperties(doc, spec, propsNode, at, depth); err != nil {
			return nil, err
		}
	}
	if itemsNode != nil {
		if itemsNode.Kind == yaml.SequenceNode {
			return nil, fail("tuple-form items are not supported")
		}
		items, err := l.convert(doc, itemsNode, joinPath(at, "items"), depth+1)
		if err != nil {
			return nil, err
		}
		spec.Items = items
	}

	if len(spec.Types) == 0 {
		switch {
		case len(spec.Properties) > 0:
			spec.Types = []Type{TypeObject}
		case spec.Items != nil:
			spec.Types = []Type{TypeArray}
		}
	}

	spec.finish()
	for _, name := range spec.Required {
		if _, ok := spec.Property(name); !ok {
			l.logger.Debug("required field is not declared", "document", doc.name, "path", at, "field", name)
		}
	}
	return spec, nil
}

func (l *loader) convertProperties(doc *document, spec *FieldSpec, node *yaml.Node, at string, depth int) error {
	if node.Kind != yaml.MappingNode {
		return &recorderrors.SchemaError{Schema: doc.name, Path: at, Message: "properties must be a mapping"}
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		valNode := deref(node.Content[i+1])
		child, err := l.convert(doc, valNode, joinPath(at, "properties."+name), depth+1)
		if err != nil {
			return err
		}
		spec.Properties = append(spec.Properties, Property{Name: name, Spec: child})
		if requiredFlag(valNode) && !slices.Contains(spec.Required, name) {
			spec.Required = append(spec.Required, name)
		}
	}
	return nil
}

// requiredFlag reports whether a property node carries `required: true`.
func requiredFlag(node *yaml.Node) bool {
	if node.Kind != yaml.MappingNode {
		return false
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "required" {
			continue
		}
		val := deref(node.Content[i+1])
		if val.Kind != yaml.ScalarNode {
			return false
		}
		b, err := scalarBool(val)
		return err == nil && b
	}
	return false
}

func parseTypes(node *yaml.Node) ([]Type, error) {
	var names []string
	switch node.Kind {
	case yaml.ScalarNode:
		names = []string{node.Value}
	case yaml.SequenceNode:
		var err error
		if names, err = stringList(node); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("must be a string or a list of strings")
	}

	types := make([]Type, 0, len(names))
	for _, n := range names {
		t := Type(n)
		if !knownTypes[t] {
			return nil, fmt.Errorf("unknown type %q", n)
		}
		if !slices.Contains(types, t) {
			types = append(types, t)
		}
	}
	return types, nil
}

func deref(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func scalarString(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("must be a string")
	}
	return node.Value, nil
}

func scalarBool(node *yaml.Node) (bool, error) {
	if node.Kind != yaml.ScalarNode {
		return false, fmt.Errorf("must be a boolean")
	}
	b, err := strconv.ParseBool(node.Value)
	if err != nil {
		return false, fmt.Errorf("must be a boolean, got %q", node.Value)
	}
	return b, nil
}

func scalarCount(node *yaml.Node) (*int, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, fmt.Errorf("must be a non-negative integer")
	}
	n, err := strconv.Atoi(node.Value)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("must be a non-negative integer, got %q", node.Value)
	}
	return &n, nil
}

func stringList(node *yaml.Node) ([]string, error) {
	out := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		item = deref(item)
		if item.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("list entries must be strings")
		}
		out = append(out, item.Value)
	}
	return out, nil
}

// lookupPointer walks an RFC 6901 JSON pointer ("" or "/definitions/x").
func lookupPointer(root *yaml.Node, pointer string) (*yaml.Node, error) {
	if pointer == "" || pointer == "/" {
		return root, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("unsupported fragment %q: only JSON pointers are resolved", pointer)
	}
	node := root
	for _, raw := range strings.Split(pointer[1:], "/") {
		token := strings.ReplaceAll(strings.ReplaceAll(raw, "~1", "/"), "~0", "~")
		node = deref(node)
		var next *yaml.Node
		switch node.Kind {
		case yaml.MappingNode:
			for i := 0; i+1 < len(node.Content); i += 2 {
				if node.Content[i].Value == token {
					next = node.Content[i+1]
					break
				}
			}
		case yaml.SequenceNode:
			if idx, err := strconv.Atoi(token); err == nil && idx >= 0 && idx < len(node.Content) {
				next = node.Content[idx]
			}
		}
		if next == nil {
			return nil, fmt.Errorf("pointer %q does not resolve", pointer)
		}
		node = next
	}
	return node, nil
}

// pointerPath renders a JSON pointer as a dotted schema path for messages.
func pointerPath(pointer string) string {
	return strings.ReplaceAll(strings.TrimPrefix(pointer, "/"), "/", ".")
}

func joinPath(at, segment string) string {
	if at == "" {
		return segment
	}
	return at + "." + segment
}
