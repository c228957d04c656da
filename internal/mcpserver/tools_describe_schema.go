package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/recordcheck/schema"
)

type describeSchemaInput struct {
	Schema schemaInput `json:"schema"           jsonschema:"The schema to describe"`
	Offset int         `json:"offset,omitempty" jsonschema:"Skip the first N fields (for pagination)"`
	Limit  int         `json:"limit,omitempty"  jsonschema:"Maximum number of fields to return (default 100)"`
}

type describeSchemaOutput struct {
	Name       string             `json:"name"`
	Title      string             `json:"title,omitempty"`
	Documents  []string           `json:"documents,omitempty"`
	FieldCount int                `json:"field_count"`
	Returned   int                `json:"returned"`
	Fields     []schema.FieldInfo `json:"fields,omitempty"`
}

func handleDescribeSchema(_ context.Context, _ *mcp.CallToolRequest, input describeSchemaInput) (*mcp.CallToolResult, describeSchemaOutput, error) {
	s, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), describeSchemaOutput{}, nil
	}

	fields := s.Fields()
	output := describeSchemaOutput{
		Name:       s.Name(),
		Title:      s.Root().Title,
		Documents:  s.Documents(),
		FieldCount: len(fields),
		Fields:     paginate(fields, input.Offset, input.Limit),
	}
	output.Returned = len(output.Fields)
	return nil, output, nil
}
