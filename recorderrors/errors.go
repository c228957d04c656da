package recorderrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a document or record could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrInvalidSchema indicates a schema definition is malformed.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrCircularReference indicates a $ref chain that refers back to itself.
	ErrCircularReference = errors.New("circular reference")

	// ErrSchemaNotFound indicates no schema is registered under a name.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrSchemaKeyNotFound indicates a record has no $schema key.
	ErrSchemaKeyNotFound = errors.New("schema key not found")

	// ErrConfig indicates invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode JSON or YAML input.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// SchemaError represents a schema definition that cannot be turned into a
// FieldSpec tree. It is reported at load time, before any record is checked.
type SchemaError struct {
	// Schema is the name of the document being loaded
	Schema string
	// Path is the location inside the schema tree (e.g., "properties.series.items")
	Path string
	// Ref is the $ref value involved, if any
	Ref string
	// IsCircular is true if the error is due to a $ref cycle
	IsCircular bool
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "invalid schema"
	if e.IsCircular {
		msg = "circular reference"
	}
	if e.Schema != "" {
		msg += " " + e.Schema
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Ref != "" {
		msg += " ($ref " + e.Ref + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrInvalidSchema, and ErrCircularReference when IsCircular is set.
func (e *SchemaError) Is(target error) bool {
	if target == ErrInvalidSchema {
		return true
	}
	return target == ErrCircularReference && e.IsCircular
}

// SchemaNotFoundError is returned when a schema name has no definition.
type SchemaNotFoundError struct {
	// Name is the schema name that was requested
	Name string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaNotFoundError) Error() string {
	msg := fmt.Sprintf("schema %q not found", e.Name)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SchemaNotFoundError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaNotFoundError) Is(target error) bool {
	return target == ErrSchemaNotFound
}

// SchemaKeyNotFoundError is returned when no schema was given and the record
// does not name one in its $schema key.
type SchemaKeyNotFoundError struct {
	// Key is the record key that was looked up
	Key string
}

// Error returns a human-readable error message.
func (e *SchemaKeyNotFoundError) Error() string {
	key := e.Key
	if key == "" {
		key = "$schema"
	}
	return fmt.Sprintf("record has no %q key and no schema was specified", key)
}

// Is reports whether target matches this error type.
func (e *SchemaKeyNotFoundError) Is(target error) bool {
	return target == ErrSchemaKeyNotFound
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
