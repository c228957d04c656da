package validator_test

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/erraggy/recordcheck/schema"
	"github.com/erraggy/recordcheck/validator"
)

// ExampleValidator_Validate demonstrates validating a decoded record
func ExampleValidator_Validate() {
	record := map[string]any{
		"cnum":         "C24-07-17",
		"opening_date": "2024-13-40",
		"series":       []any{map[string]any{"number": 3}},
	}

	result := validator.New().Validate(record, schema.Conferences())
	fmt.Printf("Valid: %v\n", result.Valid)
	for _, e := range result.Errors {
		fmt.Println(e)
	}
	// Output:
	// Valid: false
	// ✗ opening_date [format_invalid]: value "2024-13-40" is not a valid date
	// ✗ series[0].name [missing_required_field]: required field "name" is missing
}

// ExampleValidator_Validate_strictMode demonstrates rejecting undeclared fields
func ExampleValidator_Validate_strictMode() {
	v := validator.New()
	v.StrictMode = true

	result := v.Validate(map[string]any{"acronym": "ICHEP", "sponsor": "ACME"}, schema.Conferences())
	fmt.Printf("Valid: %v\n", result.Valid)
	fmt.Println(result.Errors[0])
	// Output:
	// Valid: false
	// ✗ sponsor [unknown_field]: field "sponsor" is not declared in the schema
}

// ExampleValidateWithOptions demonstrates validating a record file whose
// "$schema" member selects the schema
func ExampleValidateWithOptions() {
	result, err := validator.ValidateWithOptions(
		validator.WithRecordFile(filepath.Join("..", "testdata", "conference.json")),
	)
	if err != nil {
		log.Fatalf("Validation failed: %v", err)
	}
	fmt.Printf("Schema: %s\n", result.SchemaName)
	fmt.Printf("Valid: %v\n", result.Valid)
	// Output:
	// Schema: conferences
	// Valid: true
}

// ExampleValidator_ValidateMany demonstrates validating a batch of records
func ExampleValidator_ValidateMany() {
	records := []any{
		map[string]any{"cnum": "C24-07-17"},
		map[string]any{"cnum": "24-07-17"},
	}
	results, err := validator.New().ValidateMany(context.Background(), records, schema.Conferences())
	if err != nil {
		log.Fatal(err)
	}
	for i, r := range results {
		fmt.Printf("%d: %v\n", i, r.Valid)
	}
	// Output:
	// 0: true
	// 1: false
}
