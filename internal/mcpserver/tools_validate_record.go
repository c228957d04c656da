package mcpserver

import (
	"context"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/recordcheck/validator"
)

type validateRecordInput struct {
	Record   recordInput `json:"record"             jsonschema:"The record to validate"`
	Schema   schemaInput `json:"schema,omitempty"   jsonschema:"The schema to validate against; defaults to the record's $schema"`
	Strict   *bool       `json:"strict,omitempty"   jsonschema:"Report undeclared fields as errors"`
	Warnings *bool       `json:"warnings,omitempty" jsonschema:"Report undeclared fields as warnings"`
	Offset   int         `json:"offset,omitempty"   jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit    int         `json:"limit,omitempty"    jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type violation struct {
	Path     string `json:"path"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

type codeCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

type validateRecordOutput struct {
	Valid        bool        `json:"valid"`
	Schema       string      `json:"schema"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Returned     int         `json:"returned"`
	ByCode       []codeCount `json:"by_code,omitempty"`
	Errors       []violation `json:"errors,omitempty"`
	Warnings     []violation `json:"warnings,omitempty"`
}

func handleValidateRecord(_ context.Context, _ *mcp.CallToolRequest, input validateRecordInput) (*mcp.CallToolResult, validateRecordOutput, error) {
	// Apply config defaults when input fields are omitted (nil).
	strict := cfg.ValidateStrict
	if input.Strict != nil {
		strict = *input.Strict
	}
	warnings := cfg.ValidateWarnings
	if input.Warnings != nil {
		warnings = *input.Warnings
	}

	record, err := input.Record.resolve()
	if err != nil {
		return errResult(err), validateRecordOutput{}, nil
	}

	opts := []validator.Option{
		validator.WithRecord(record),
		validator.WithStrictMode(strict),
		validator.WithIncludeWarnings(warnings),
		validator.WithLogger(logger),
	}
	if !input.Schema.isZero() {
		s, err := input.Schema.resolve()
		if err != nil {
			return errResult(err), validateRecordOutput{}, nil
		}
		opts = append(opts, validator.WithSchema(s))
	}

	result, err := validator.ValidateWithOptions(opts...)
	if err != nil {
		return errResult(err), validateRecordOutput{}, nil
	}

	output := validateRecordOutput{
		Valid:        result.Valid,
		Schema:       result.SchemaName,
		ErrorCount:   result.ErrorCount,
		WarningCount: result.WarningCount,
		ByCode:       codeCounts(result),
		Errors:       toViolations(paginate(result.Errors, input.Offset, input.Limit)),
		Warnings:     toViolations(paginate(result.Warnings, input.Offset, input.Limit)),
	}
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}

func toViolations(errs []validator.ValidationError) []violation {
	out := makeSlice[violation](len(errs))
	for _, e := range errs {
		out = append(out, violation{
			Path:     e.Path,
			Code:     e.Code,
			Message:  e.Message,
			Expected: e.Expected,
			Actual:   e.Actual,
		})
	}
	return out
}

// codeCounts returns error counts per code, most frequent first (ties
// broken alphabetically by code).
func codeCounts(result *validator.ValidationResult) []codeCount {
	counts := result.CountByCode()
	out := makeSlice[codeCount](len(counts))
	for code, n := range counts {
		out = append(out, codeCount{Code: string(code), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Code < out[j].Code
	})
	return out
}
