package validator

import (
	"fmt"
	"slices"
	"time"
	"unicode/utf8"

	"github.com/erraggy/recordcheck/internal/issues"
	"github.com/erraggy/recordcheck/internal/pathutil"
	"github.com/erraggy/recordcheck/internal/severity"
	"github.com/erraggy/recordcheck/internal/valueutil"
	"github.com/erraggy/recordcheck/schema"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError indicates a violation that makes the record invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates an observation that does not affect validity
	SeverityWarning = severity.SeverityWarning
)

const (
	// defaultErrorCapacity is the initial capacity for error slices
	defaultErrorCapacity = 8

	// maxRecordDepth bounds recursion into nested record values
	maxRecordDepth = valueutil.MaxDepth
)

// ValidationError represents a single validation issue
type ValidationError = issues.Issue

// ValidationResult contains the results of validating one record
type ValidationResult struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool `json:"valid" yaml:"valid"`
	// SchemaName is the name of the schema the record was checked against
	SchemaName string `json:"schema" yaml:"schema"`
	// Errors contains all violations, in schema declaration order
	Errors []ValidationError `json:"errors" yaml:"errors"`
	// Warnings contains undeclared fields when IncludeWarnings is set
	Warnings []ValidationError `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	// ErrorCount is the total number of errors
	ErrorCount int `json:"errorCount" yaml:"errorCount"`
	// WarningCount is the total number of warnings
	WarningCount int `json:"warningCount" yaml:"warningCount"`
	// Duration is the time taken by the validation walk
	Duration time.Duration `json:"-" yaml:"-"`
}

// CountByCode returns the number of errors per violation code.
func (r *ValidationResult) CountByCode() map[Code]int {
	counts := make(map[Code]int)
	for _, e := range r.Errors {
		counts[Code(e.Code)]++
	}
	return counts
}

// Validator checks records against schemas. It holds only configuration
// and is safe for concurrent use.
type Validator struct {
	// StrictMode reports undeclared fields as unknown_field errors
	StrictMode bool
	// IncludeWarnings reports undeclared fields as warnings when not in StrictMode
	IncludeWarnings bool
	// Logger receives a summary of each validation. Defaults to schema.NopLogger.
	Logger schema.Logger
}

// New creates a new Validator instance with default settings: open-world
// validation without warnings.
func New() *Validator {
	return &Validator{
		Logger: schema.NopLogger{},
	}
}

// Validate checks record against s and returns every violation found.
// Neither argument is modified. A nil schema is treated as an empty object
// schema.
func (v *Validator) Validate(record any, s *schema.Schema) *ValidationResult {
	start := time.Now()

	result := &ValidationResult{
		Errors: make([]ValidationError, 0, defaultErrorCapacity),
	}
	root := &schema.FieldSpec{Types: []schema.Type{schema.TypeObject}}
	if s != nil {
		result.SchemaName = s.Name()
		root = s.Root()
	}

	w := &walker{v: v, result: result, path: pathutil.Get()}
	defer pathutil.Put(w.path)
	w.value(record, root, 0)

	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0
	result.Duration = time.Since(start)

	v.logger().Debug("record validated",
		"schema", result.SchemaName,
		"valid", result.Valid,
		"errors", result.ErrorCount,
		"warnings", result.WarningCount,
		"duration", result.Duration,
	)
	return result
}

func (v *Validator) logger() schema.Logger {
	if v.Logger == nil {
		return schema.NopLogger{}
	}
	return v.Logger
}

// walker carries the state of one validation walk.
type walker struct {
	v      *Validator
	result *ValidationResult
	path   *pathutil.PathBuilder
}

func (w *walker) addError(path string, code Code, message string, opts ...func(*ValidationError)) {
	e := ValidationError{
		Path:     path,
		Code:     string(code),
		Message:  message,
		Severity: SeverityError,
	}
	for _, opt := range opts {
		opt(&e)
	}
	w.result.Errors = append(w.result.Errors, e)
}

func (w *walker) addWarning(path string, code Code, message string) {
	w.result.Warnings = append(w.result.Warnings, ValidationError{
		Path:     path,
		Code:     string(code),
		Message:  message,
		Severity: SeverityWarning,
	})
}

// withExpected sets the Expected and Actual fields on a ValidationError.
func withExpected(expected, actual string) func(*ValidationError) {
	return func(e *ValidationError) {
		e.Expected = expected
		e.Actual = actual
	}
}

// value checks one present value at the current path.
func (w *walker) value(val any, spec *schema.FieldSpec, depth int) {
	if depth > maxRecordDepth {
		w.addError(w.path.String(), CodeMaxDepthExceeded,
			fmt.Sprintf("value is nested deeper than %d levels", maxRecordDepth))
		return
	}

	kind := valueutil.KindOf(val)
	if !typeAllowed(spec, kind) {
		w.addError(w.path.String(), CodeTypeMismatch,
			fmt.Sprintf("expected %s, got %s", spec.TypeNames(), kind),
			withExpected(spec.TypeNames(), string(kind)))
		return
	}

	if len(spec.Enum) > 0 && !slices.ContainsFunc(spec.Enum, func(allowed any) bool {
		return valueutil.Equal(allowed, val)
	}) {
		w.addError(w.path.String(), CodeValueNotAllowed,
			fmt.Sprintf("value %v is not one of the allowed values", display(val)),
			withExpected(enumList(spec.Enum), display(val)))
	}

	switch kind {
	case valueutil.KindString:
		if s, ok := valueutil.AsString(val); ok {
			w.str(s, spec)
		}
	case valueutil.KindArray:
		items, _ := valueutil.AsArray(val)
		w.array(items, spec, depth)
	case valueutil.KindObject:
		obj, _ := valueutil.AsObject(val)
		w.object(obj, spec, depth)
	}
}

func typeAllowed(spec *schema.FieldSpec, kind valueutil.Kind) bool {
	if len(spec.Types) == 0 {
		return true
	}
	for _, t := range spec.Types {
		if t.Accepts(kind) {
			return true
		}
	}
	return false
}

func (w *walker) str(s string, spec *schema.FieldSpec) {
	if spec.MinLength != nil {
		if n := utf8.RuneCountInString(s); n < *spec.MinLength {
			w.addError(w.path.String(), CodeTooShort,
				fmt.Sprintf("string has %d characters, minimum is %d", n, *spec.MinLength),
				withExpected(fmt.Sprintf(">= %d characters", *spec.MinLength), fmt.Sprintf("%d characters", n)))
		}
	}
	if !spec.MatchPattern(s) {
		w.addError(w.path.String(), CodePatternMismatch,
			fmt.Sprintf("value %q does not match pattern %q", s, spec.Pattern),
			withExpected(spec.Pattern, s))
	}
	if spec.Format != "" && !checkFormat(spec.Format, s) {
		w.addError(w.path.String(), CodeFormatInvalid,
			fmt.Sprintf("value %q is not a valid %s", s, spec.Format),
			withExpected(spec.Format, s))
	}
}

func (w *walker) array(items []any, spec *schema.FieldSpec, depth int) {
	if spec.MinItems != nil && len(items) < *spec.MinItems {
		w.addError(w.path.String(), CodeTooFewItems,
			fmt.Sprintf("array has %d items, minimum is %d", len(items), *spec.MinItems),
			withExpected(fmt.Sprintf(">= %d items", *spec.MinItems), fmt.Sprintf("%d items", len(items))))
	}

	if spec.Items != nil {
		for i, item := range items {
			w.path.PushIndex(i)
			w.value(item, spec.Items, depth+1)
			w.path.Pop()
		}
	}

	if spec.UniqueItems && len(items) > 1 {
		w.duplicates(items)
	}
}

// duplicates reports the second and later occurrences of structurally equal
// elements. Elements are bucketed by hash and compared within a bucket.
func (w *walker) duplicates(items []any) {
	seen := make(map[uint64][]int, len(items))
	for i, item := range items {
		h := valueutil.Hash(item)
		first := -1
		for _, j := range seen[h] {
			if valueutil.Equal(items[j], item) {
				first = j
				break
			}
		}
		if first < 0 {
			seen[h] = append(seen[h], i)
			continue
		}
		w.path.PushIndex(i)
		w.addError(w.path.String(), CodeDuplicateItem,
			fmt.Sprintf("item duplicates item %d", first))
		w.path.Pop()
	}
}

func (w *walker) object(obj map[string]any, spec *schema.FieldSpec, depth int) {
	for _, p := range spec.Properties {
		val, present := obj[p.Name]
		if !present {
			if spec.IsRequired(p.Name) {
				w.missing(p.Name)
			}
			continue
		}
		w.path.Push(p.Name)
		w.value(val, p.Spec, depth+1)
		w.path.Pop()
	}

	// required names without a property declaration still have to be present
	for _, name := range spec.Required {
		if _, declared := spec.Property(name); declared {
			continue
		}
		if _, present := obj[name]; !present {
			w.missing(name)
		}
	}

	w.unknown(obj, spec)
}

func (w *walker) missing(name string) {
	w.addError(w.path.Child(name), CodeMissingRequiredField,
		fmt.Sprintf("required field %q is missing", name))
}

// unknown reports undeclared members of an object whose properties are
// declared. Objects without declared properties are free-form.
func (w *walker) unknown(obj map[string]any, spec *schema.FieldSpec) {
	closed := spec.Closed()
	if len(spec.Properties) == 0 && !closed {
		return
	}
	asError := closed || w.v.StrictMode
	if !asError && !w.v.IncludeWarnings {
		return
	}

	var extra []string
	for name := range obj {
		if _, ok := spec.Property(name); !ok {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)

	for _, name := range extra {
		msg := fmt.Sprintf("field %q is not declared in the schema", name)
		if asError {
			w.addError(w.path.Child(name), CodeUnknownField, msg)
		} else {
			w.addWarning(w.path.Child(name), CodeUnknownField, msg)
		}
	}
}

// display renders a scalar for messages. Arrays and objects are named by
// kind since they may be arbitrarily large or self-referencing.
func display(v any) string {
	switch kind := valueutil.KindOf(v); kind {
	case valueutil.KindString:
		s, _ := valueutil.AsString(v)
		return fmt.Sprintf("%q", s)
	case valueutil.KindArray, valueutil.KindObject, valueutil.KindUnknown:
		return string(kind)
	}
	return fmt.Sprintf("%v", valueutil.Deref(v))
}

func enumList(values []any) string {
	out := "one of ["
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += display(v)
	}
	return out + "]"
}
