package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/recordcheck/internal/options"
	"github.com/erraggy/recordcheck/recorderrors"
	"github.com/erraggy/recordcheck/schema"
)

// SchemaKey is the record member naming the record's schema.
const SchemaKey = "$schema"

// Option is a function that configures a validation operation
type Option func(*validateConfig) error

// validateConfig holds configuration for a validation operation
type validateConfig struct {
	// Record source (exactly one must be set)
	record     any
	hasRecord  bool
	data       []byte
	recordFile *string

	// Schema source (at most one; falls back to the record's $schema)
	schema     *schema.Schema
	schemaName *string

	includeWarnings bool
	strictMode      bool
	logger          schema.Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		logger: schema.NopLogger{},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.RequireExactlyOne("record source",
		options.Source{Name: "WithRecord", Set: cfg.hasRecord},
		options.Source{Name: "WithRecordBytes", Set: cfg.data != nil},
		options.Source{Name: "WithRecordFile", Set: cfg.recordFile != nil},
	); err != nil {
		return nil, err
	}
	if err := options.AllowAtMostOne("schema source",
		options.Source{Name: "WithSchema", Set: cfg.schema != nil},
		options.Source{Name: "WithSchemaName", Set: cfg.schemaName != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateWithOptions validates a record using functional options.
// When no schema is given, the record's "$schema" member selects a built-in
// schema by the base name of its value (e.g.,
// "https://example.org/schemas/records/conferences.json" -> "conferences").
//
// Example:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithRecordFile("conference.yaml"),
//	    validator.WithSchemaName("conferences"),
//	    validator.WithStrictMode(true),
//	)
//
// Errors are returned only for operational failures: bad options, an
// unreadable or malformed record, or a schema that cannot be resolved.
func ValidateWithOptions(opts ...Option) (*ValidationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	record, err := cfg.loadRecord()
	if err != nil {
		return nil, err
	}
	s, err := cfg.resolveSchema(record)
	if err != nil {
		return nil, err
	}

	v := &Validator{
		StrictMode:      cfg.strictMode,
		IncludeWarnings: cfg.includeWarnings,
		Logger:          cfg.logger,
	}
	return v.Validate(record, s), nil
}

func (cfg *validateConfig) loadRecord() (any, error) {
	switch {
	case cfg.hasRecord:
		return cfg.record, nil
	case cfg.data != nil:
		return DecodeRecord("record", cfg.data)
	default:
		data, err := os.ReadFile(*cfg.recordFile)
		if err != nil {
			return nil, fmt.Errorf("validator: reading record: %w", err)
		}
		return DecodeRecord(*cfg.recordFile, data)
	}
}

func (cfg *validateConfig) resolveSchema(record any) (*schema.Schema, error) {
	switch {
	case cfg.schema != nil:
		return cfg.schema, nil
	case cfg.schemaName != nil:
		return schema.Builtin(*cfg.schemaName)
	}

	name, err := SchemaNameOf(record)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("schema selected from record", "schema", name)
	return schema.Builtin(name)
}

// SchemaNameOf returns the schema name a record declares through its
// "$schema" member.
func SchemaNameOf(record any) (string, error) {
	obj, ok := record.(map[string]any)
	if !ok {
		return "", &recorderrors.SchemaKeyNotFoundError{Key: SchemaKey}
	}
	ref, ok := obj[SchemaKey].(string)
	if !ok || ref == "" {
		return "", &recorderrors.SchemaKeyNotFoundError{Key: SchemaKey}
	}
	return schema.NameFromRef(ref), nil
}

// DecodeRecord decodes a JSON or YAML document into generic values
// (map[string]any, []any, string, int, float64, bool, nil). Exactly one
// document is expected; name identifies the source in errors. Unquoted
// YAML timestamps stay strings so that date formats are checked on the
// text the record carries, and integers too large for int64 or uint64 are
// kept exact as json.Number. Aliases are expanded, but a document may not
// grow past aliasExpansionFactor times its own node count.
func DecodeRecord(name string, data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &recorderrors.ParseError{Path: name, Message: "record is empty"}
		}
		return nil, &recorderrors.ParseError{Path: name, Message: "decoding record", Cause: err}
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, &recorderrors.ParseError{Path: name, Message: "expected a single document"}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, &recorderrors.ParseError{Path: name, Message: "record is empty"}
		}
		root = root.Content[0]
	}

	d := recordDecoder{budget: max(minAliasBudget, aliasExpansionFactor*countNodes(root))}
	record, err := d.value(root, 0)
	if errors.Is(err, errAliasBudget) {
		return nil, &recorderrors.ParseError{Path: name, Line: root.Line, Message: "record expands too many aliases"}
	}
	if err != nil {
		return nil, &recorderrors.ParseError{Path: name, Line: root.Line, Message: "decoding record", Cause: err}
	}
	return record, nil
}

const (
	aliasExpansionFactor = 10
	minAliasBudget       = 10000
)

var errAliasBudget = errors.New("alias expansion budget exhausted")

// countNodes counts the nodes written in the document. Aliases count once.
func countNodes(root *yaml.Node) int {
	n := 0
	stack := []*yaml.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n++
		stack = append(stack, node.Content...)
	}
	return n
}

// recordDecoder converts a node tree into generic values, spending one unit
// of budget per value produced.
type recordDecoder struct {
	budget int
}

func (d *recordDecoder) value(node *yaml.Node, depth int) (any, error) {
	if depth > maxRecordDepth*2 {
		return nil, fmt.Errorf("record nested deeper than %d levels", maxRecordDepth*2)
	}
	if d.budget--; d.budget < 0 {
		return nil, errAliasBudget
	}
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	switch node.Kind {
	case yaml.MappingNode:
		obj := make(map[string]any, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			v, err := d.value(node.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			obj[node.Content[i].Value] = v
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := d.value(item, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return scalarValue(node)
	}
	return nil, fmt.Errorf("line %d: unsupported node", node.Line)
}

func scalarValue(node *yaml.Node) (any, error) {
	if node.ShortTag() == "!!timestamp" {
		return node.Value, nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("line %d: %w", node.Line, err)
	}
	// plain integers that overflow int64 and uint64 resolve as floats
	if _, isFloat := v.(float64); isFloat {
		digits := strings.TrimPrefix(node.Value, "+")
		if _, ok := new(big.Int).SetString(digits, 10); ok {
			return json.Number(digits), nil
		}
	}
	return v, nil
}

// WithRecord specifies an already decoded record
func WithRecord(record any) Option {
	return func(cfg *validateConfig) error {
		cfg.record = record
		cfg.hasRecord = true
		return nil
	}
}

// WithRecordBytes specifies a JSON or YAML encoded record
func WithRecordBytes(data []byte) Option {
	return func(cfg *validateConfig) error {
		if data == nil {
			return &recorderrors.ConfigError{Option: "WithRecordBytes", Message: "data cannot be nil"}
		}
		cfg.data = data
		return nil
	}
}

// WithRecordFile specifies a JSON or YAML file holding the record
func WithRecordFile(path string) Option {
	return func(cfg *validateConfig) error {
		if path == "" {
			return &recorderrors.ConfigError{Option: "WithRecordFile", Message: "path cannot be empty"}
		}
		cfg.recordFile = &path
		return nil
	}
}

// WithSchema specifies the schema to validate against
func WithSchema(s *schema.Schema) Option {
	return func(cfg *validateConfig) error {
		if s == nil {
			return &recorderrors.ConfigError{Option: "WithSchema", Message: "schema cannot be nil"}
		}
		cfg.schema = s
		return nil
	}
}

// WithSchemaName specifies a built-in schema by name (e.g., "conferences")
func WithSchemaName(name string) Option {
	return func(cfg *validateConfig) error {
		if name == "" {
			return &recorderrors.ConfigError{Option: "WithSchemaName", Message: "name cannot be empty"}
		}
		cfg.schemaName = &name
		return nil
	}
}

// WithIncludeWarnings reports undeclared fields as warnings
// Default: false
func WithIncludeWarnings(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.includeWarnings = enabled
		return nil
	}
}

// WithStrictMode reports undeclared fields as errors
// Default: false
func WithStrictMode(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.strictMode = enabled
		return nil
	}
}

// WithLogger sets a structured logger for validation diagnostics
// Default: schema.NopLogger
func WithLogger(l schema.Logger) Option {
	return func(cfg *validateConfig) error {
		if l == nil {
			l = schema.NopLogger{}
		}
		cfg.logger = l
		return nil
	}
}
