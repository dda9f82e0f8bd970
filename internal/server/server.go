// Package server implements the Relay tool server: file, shell, and
// system operations exposed over Model Context Protocol stdio.
package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/relay-ai/relay/internal/config"
)

// Server hosts the tool catalogue over one stdio MCP session.
type Server struct {
	cfg config.ServerConfig
}

// New creates a tool server with the given limits.
func New(cfg config.ServerConfig) *Server {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 100 * 1024 * 1024
	}
	if cfg.ShellTimeoutSec <= 0 {
		cfg.ShellTimeoutSec = 30
	}
	if cfg.DefaultEncoding == "" {
		cfg.DefaultEncoding = "utf-8"
	}
	return &Server{cfg: cfg}
}

// Run serves MCP over stdio until the context is cancelled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	impl := &mcp.Implementation{
		Name:    "relay-server",
		Version: "0.1.0",
	}

	srv := mcp.NewServer(impl, nil)
	s.register(srv)

	return srv.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) register(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_file",
		Description: "Create any type of file with appropriate content structure",
	}, s.createFile)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "create_folder",
		Description: "Create a directory, including parents",
	}, s.createFolder)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "read_file",
		Description: "Read a file's contents",
	}, s.readFile)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_directory",
		Description: "List directory contents with sizes",
	}, s.listDirectory)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "run_shell_command",
		Description: "Execute a shell command with a timeout",
	}, s.runShellCommand)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "launch_application",
		Description: "Launch an application, optionally with a file",
	}, s.launchApplication)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "list_processes",
		Description: "List running processes, optionally filtered by name",
	}, s.listProcesses)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "zip_folder",
		Description: "Create a zip archive of a folder",
	}, s.zipFolder)
}

// textResult wraps formatted text in a successful tool result.
func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

// errorResult wraps formatted text in a tool-level error result.
func errorResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

// resolvePath joins a relative path onto the working directory; absolute
// paths pass through.
func resolvePath(path, workingDir string) string {
	if workingDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workingDir, path)
}

// pathSafe rejects paths under any restricted prefix.
func (s *Server) pathSafe(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, restricted := range s.cfg.RestrictedPaths {
		if restricted != "" && strings.HasPrefix(abs, restricted) {
			return false
		}
	}
	return true
}

// formatFileSize renders a byte count the way humans read it.
func formatFileSize(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", value)
}

// statSize returns a file's size, zero on error.
func statSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
