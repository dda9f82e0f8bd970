// Package remote connects to the tool server over the Model Context
// Protocol, spawning it as a subprocess and talking stdio.
package remote

import (
	"context"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/relay-ai/relay/internal/errors"
)

// Client is an MCP client bound to one spawned server process.
type Client struct {
	command string
	args    []string
	client  *mcp.Client
	session *mcp.ClientSession
}

// New creates a client that will spawn the given server command on
// Connect.
func New(command string, args ...string) *Client {
	return &Client{
		command: command,
		args:    args,
		client: mcp.NewClient(&mcp.Implementation{
			Name:    "relay",
			Version: "0.1.0",
		}, nil),
	}
}

// Connect spawns the server subprocess and performs the MCP handshake.
func (c *Client) Connect(ctx context.Context) error {
	if c.session != nil {
		return nil
	}

	cmd := exec.Command(c.command, c.args...)
	session, err := c.client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return apperrors.NewBuilder(apperrors.CodeServerUnavailable, "cannot start tool server").
			Wrap(err).
			Temporary().
			WithSuggestion("Check that " + c.command + " is installed and on PATH").
			Build()
	}

	c.session = session
	return nil
}

// CallTool invokes one named tool and returns its text output. A
// result flagged as a tool-level error comes back as an error with the
// server's message.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (string, error) {
	if c.session == nil {
		return "", apperrors.New(apperrors.CodeConnectionLost, "not connected to tool server", apperrors.CategoryTemporary)
	}

	res, err := c.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return "", apperrors.NewBuilder(apperrors.CodeToolExecutionFailed, "tool call failed: "+err.Error()).
			Wrap(err).
			Temporary().
			Build()
	}

	text := contentText(res.Content)
	if res.IsError {
		return "", apperrors.New(apperrors.CodeToolExecutionFailed, text, apperrors.CategoryUser)
	}

	return text, nil
}

// Ping probes liveness with a cheap directory listing.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.CallTool(ctx, "list_directory", map[string]any{"path": "."})
	return err
}

// Close shuts the session down; the subprocess exits with it.
func (c *Client) Close() error {
	if c.session == nil {
		return nil
	}
	err := c.session.Close()
	c.session = nil
	return err
}

// contentText flattens the text parts of a tool result.
func contentText(content []mcp.Content) string {
	var parts []string
	for _, item := range content {
		if tc, ok := item.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
