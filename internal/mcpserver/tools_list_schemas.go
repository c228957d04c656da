package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/recordcheck/schema"
)

type listSchemasInput struct{}

type schemaSummary struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	FieldCount  int    `json:"field_count"`
}

type listSchemasOutput struct {
	Schemas []schemaSummary `json:"schemas"`
}

func handleListSchemas(_ context.Context, _ *mcp.CallToolRequest, _ listSchemasInput) (*mcp.CallToolResult, listSchemasOutput, error) {
	names := schema.BuiltinNames()
	output := listSchemasOutput{Schemas: make([]schemaSummary, 0, len(names))}
	for _, name := range names {
		s, err := schema.Builtin(name)
		if err != nil {
			return errResult(err), listSchemasOutput{}, nil
		}
		output.Schemas = append(output.Schemas, schemaSummary{
			Name:        name,
			Title:       s.Root().Title,
			Description: s.Root().Description,
			FieldCount:  len(s.Fields()),
		})
	}
	return nil, output, nil
}
