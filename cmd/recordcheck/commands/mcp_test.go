package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleMCP_Help(t *testing.T) {
	streams, _, errOut := testStreams("")
	require.NoError(t, HandleMCP([]string{"--help"}, streams))
	assert.Contains(t, errOut.String(), "Usage: recordcheck mcp")
}

func TestHandleMCP_RejectsArguments(t *testing.T) {
	streams, _, _ := testStreams("")
	err := HandleMCP([]string{"extra"}, streams)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no arguments")
}
