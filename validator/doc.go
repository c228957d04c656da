// Package validator checks records against schemas loaded by the schema
// package.
//
// Validation is a pure recursive descent over the record, in the order the
// schema declares its fields. Every nonconformance is collected as a
// ValidationError with a field path (e.g., "address[0].place") and a Code;
// validation never stops at the first problem and never returns a Go error
// for a nonconforming record.
//
// # Quick Start
//
//	v := validator.New()
//	result := v.Validate(record, schema.Conferences())
//	if !result.Valid {
//	    for _, e := range result.Errors {
//	        fmt.Println(e)
//	    }
//	}
//
// Or, with functional options, letting the record's "$schema" key select the
// schema:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithRecordFile("conference.json"),
//	    validator.WithStrictMode(true),
//	)
//
// # Unknown fields
//
// Fields a record carries but the schema does not declare are permitted by
// default. StrictMode reports them as unknown_field errors, as does a schema
// object declared with `additionalProperties: false`. With IncludeWarnings
// (and without StrictMode) they are reported as warnings, which never affect
// Valid.
//
// # Concurrency
//
// A Validator holds only configuration and may be used from many
// goroutines. ValidateMany validates a batch with a bounded worker count.
package validator
