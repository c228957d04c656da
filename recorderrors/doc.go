// Package recorderrors provides structured error types for the recordcheck library.
//
// Import path: github.com/erraggy/recordcheck/recorderrors
//
// These errors describe operational failures: a schema that cannot be
// loaded, a record that cannot be decoded, a schema name that cannot be
// found. Structural problems inside a record are never returned as errors;
// they are reported as violations in a validator.ValidationResult.
//
// # Error Types
//
//   - [ParseError]: JSON/YAML decoding failures for records and schema documents
//   - [SchemaError]: malformed schema definitions (the invalid_schema condition)
//   - [SchemaNotFoundError]: a schema name with no registered definition
//   - [SchemaKeyNotFoundError]: a record without a $schema key when no schema was given
//   - [ConfigError]: invalid option combinations
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrInvalidSchema]: Matches any [SchemaError]
//   - [ErrCircularReference]: Matches [SchemaError] with IsCircular=true
//   - [ErrSchemaNotFound]: Matches any [SchemaNotFoundError]
//   - [ErrSchemaKeyNotFound]: Matches any [SchemaKeyNotFoundError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	s, err := schema.Load(schema.WithFilePath("conferences.yml"))
//	if errors.Is(err, recorderrors.ErrCircularReference) {
//	    // a $ref chain points back at itself
//	}
//
//	var schemaErr *recorderrors.SchemaError
//	if errors.As(err, &schemaErr) {
//	    fmt.Printf("bad schema %s at %s\n", schemaErr.Schema, schemaErr.Path)
//	}
package recorderrors
