// Package schema loads declarative record schemas into immutable FieldSpec trees.
//
// A schema document is a JSON or YAML object using a subset of JSON Schema
// keywords: type, properties, required, items, uniqueItems, minItems,
// pattern, format, minLength, enum, additionalProperties and $ref.
// Documents may reference one another with relative $refs
// ("elements/title.yml", "#/definitions/x"); Load resolves every reference
// once into a single tree so that validation never performs lookups.
//
// # Loading
//
//	s, err := schema.Load(schema.WithFilePath("schemas/conferences.yml"))
//	if err != nil {
//	    var schemaErr *recorderrors.SchemaError
//	    if errors.As(err, &schemaErr) {
//	        // malformed definition, e.g. a $ref cycle
//	    }
//	}
//
// Built-in schemas are embedded in the package:
//
//	s := schema.Conferences()
//	s, err := schema.Builtin("conferences")
//
// # Required fields
//
// Required members are declared with a sibling list on the object
// (`required: [name]`) or with a field-level flag on the member itself
// (`required: true`). Both forms may be mixed.
//
// # Concurrency
//
// A loaded *Schema is never modified and may be shared by any number of
// goroutines.
package schema
