// Package recordcheck validates structured metadata records against
// declarative record schemas.
//
// A record is a JSON or YAML object such as a Conference record with
// titles, dates, place and series. A schema declares the record's fields
// with a subset of JSON Schema keywords (type, properties, required, items,
// uniqueItems, pattern, format, ...), possibly split over several documents
// joined by relative $refs.
//
// # Packages
//
//   - schema: load schema documents into immutable FieldSpec trees, resolving
//     every $ref once at load time; ships the built-in "conferences" schema
//   - validator: check a record against a schema and collect every
//     violation with its field path
//   - recorderrors: structured error types for operational failures
//
// # Quick Start
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithRecordFile("conference.json"),
//	    validator.WithSchemaName("conferences"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range result.Errors {
//	    fmt.Println(e) // ✗ series[0].name [missing_required_field]: required field "name" is missing
//	}
//
// # Command line
//
// The recordcheck command validates records (recordcheck validate), describes
// schemas (recordcheck schema) and serves the same operations as MCP tools
// (recordcheck mcp).
package recordcheck
