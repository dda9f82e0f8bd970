package remote

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/relay-ai/relay/internal/errors"
)

func TestCallTool_NotConnected(t *testing.T) {
	c := New("relay-server")

	_, err := c.CallTool(context.Background(), "list_directory", map[string]any{"path": "."})
	require.Error(t, err)
	assert.Equal(t, apperrors.CategoryTemporary, apperrors.GetCategory(err))
}

func TestPing_NotConnected(t *testing.T) {
	c := New("relay-server")

	assert.Error(t, c.Ping(context.Background()))
}

func TestClose_Idempotent(t *testing.T) {
	c := New("relay-server")

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestContentText_JoinsTextParts(t *testing.T) {
	text := contentText([]mcp.Content{
		&mcp.TextContent{Text: "line one"},
		&mcp.TextContent{Text: "line two"},
	})
	assert.Equal(t, "line one\nline two", text)
}

func TestContentText_EmptyContent(t *testing.T) {
	assert.Equal(t, "", contentText(nil))
}
