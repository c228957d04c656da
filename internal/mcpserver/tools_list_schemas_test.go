package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleListSchemas(t *testing.T) {
	result, output, err := handleListSchemas(context.Background(), nil, listSchemasInput{})
	require.NoError(t, err)
	assert.Nil(t, result)

	require.Len(t, output.Schemas, 1)
	s := output.Schemas[0]
	assert.Equal(t, "conferences", s.Name)
	assert.Equal(t, "Conference", s.Title)
	assert.NotEmpty(t, s.Description)
	assert.Positive(t, s.FieldCount)
}

// resultText returns the text of an error result.
func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}
