package server

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type createFileInput struct {
	Path             string `json:"path"`
	Content          string `json:"content,omitempty"`
	FileType         string `json:"file_type,omitempty"`
	WorkingDirectory string `json:"working_directory,omitempty"`
	Encoding         string `json:"encoding,omitempty"`
}

func (s *Server) createFile(_ context.Context, _ *mcp.CallToolRequest, in createFileInput) (*mcp.CallToolResult, any, error) {
	if in.Path == "" {
		return errorResult("path parameter required"), nil, nil
	}

	encoding := in.Encoding
	if encoding == "" {
		encoding = s.cfg.DefaultEncoding
	}

	fullPath := resolvePath(in.Path, in.WorkingDirectory)
	if !s.pathSafe(fullPath) {
		return errorResult("Access denied: Path is in a restricted system directory"), nil, nil
	}

	if parent := filepath.Dir(fullPath); parent != "" && parent != "." {
		if err := os.MkdirAll(parent, 0755); err != nil {
			return errorResult("Failed to create file: %v", err), nil, nil
		}
	}

	fileType := in.FileType
	if fileType == "" || fileType == "auto" {
		fileType = strings.TrimPrefix(strings.ToLower(filepath.Ext(fullPath)), ".")
	}

	if int64(len(in.Content)) > s.cfg.MaxFileSize {
		return errorResult("Content exceeds maximum file size of %s", formatFileSize(s.cfg.MaxFileSize)), nil, nil
	}

	if err := writeByType(fullPath, in.Content, fileType); err != nil {
		return errorResult("Failed to create file: %v", err), nil, nil
	}

	abs, _ := filepath.Abs(fullPath)
	return textResult("File created successfully!\nPath: %s\nType: %s\nSize: %s\nContent length: %d characters\nEncoding: %s",
		abs, strings.ToUpper(fileType), formatFileSize(statSize(fullPath)), len(in.Content), encoding), nil, nil
}

// writeByType writes content with type-specific structure. Empty CSV
// files get a sample header and row so the result opens cleanly; every
// other type, recognized or not, is a plain text write.
func writeByType(path, content, fileType string) error {
	if fileType == "csv" && content == "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()

		w := csv.NewWriter(f)
		if err := w.Write([]string{"Column1", "Column2", "Column3"}); err != nil {
			return err
		}
		if err := w.Write([]string{"Value1", "Value2", "Value3"}); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	}

	return os.WriteFile(path, []byte(content), 0644)
}

type createFolderInput struct {
	Path             string `json:"path"`
	WorkingDirectory string `json:"working_directory,omitempty"`
}

func (s *Server) createFolder(_ context.Context, _ *mcp.CallToolRequest, in createFolderInput) (*mcp.CallToolResult, any, error) {
	if in.Path == "" {
		return errorResult("path parameter required"), nil, nil
	}

	fullPath := resolvePath(in.Path, in.WorkingDirectory)
	if !s.pathSafe(fullPath) {
		return errorResult("Access denied: Path is in a restricted system directory"), nil, nil
	}

	if err := os.MkdirAll(fullPath, 0755); err != nil {
		return errorResult("Failed to create folder: %v", err), nil, nil
	}

	abs, _ := filepath.Abs(fullPath)
	return textResult("Folder created successfully!\nPath: %s", abs), nil, nil
}

type readFileInput struct {
	Path             string `json:"path"`
	WorkingDirectory string `json:"working_directory,omitempty"`
}

func (s *Server) readFile(_ context.Context, _ *mcp.CallToolRequest, in readFileInput) (*mcp.CallToolResult, any, error) {
	if in.Path == "" {
		return errorResult("path parameter required"), nil, nil
	}

	fullPath := resolvePath(in.Path, in.WorkingDirectory)
	if !s.pathSafe(fullPath) {
		return errorResult("Access denied: Path is in a restricted system directory"), nil, nil
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return errorResult("Failed to read file: %v", err), nil, nil
	}
	if info.Size() > s.cfg.MaxFileSize {
		return errorResult("File exceeds maximum readable size of %s", formatFileSize(s.cfg.MaxFileSize)), nil, nil
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return errorResult("Failed to read file: %v", err), nil, nil
	}

	abs, _ := filepath.Abs(fullPath)
	return textResult("File: %s\nSize: %s\n\n%s", abs, formatFileSize(info.Size()), string(content)), nil, nil
}

type listDirectoryInput struct {
	Path             string `json:"path,omitempty"`
	WorkingDirectory string `json:"working_directory,omitempty"`
}

func (s *Server) listDirectory(_ context.Context, _ *mcp.CallToolRequest, in listDirectoryInput) (*mcp.CallToolResult, any, error) {
	path := in.Path
	if path == "" {
		path = "."
	}

	fullPath := resolvePath(path, in.WorkingDirectory)
	if !s.pathSafe(fullPath) {
		return errorResult("Access denied: Path is in a restricted system directory"), nil, nil
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return errorResult("Failed to list directory: %v", err), nil, nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	abs, _ := filepath.Abs(fullPath)
	var b strings.Builder
	fmt.Fprintf(&b, "Contents of %s (%d items):\n", abs, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			fmt.Fprintf(&b, "  [DIR]  %s\n", entry.Name())
			continue
		}
		size := int64(0)
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		fmt.Fprintf(&b, "  [FILE] %s (%s)\n", entry.Name(), formatFileSize(size))
	}

	return textResult("%s", strings.TrimRight(b.String(), "\n")), nil, nil
}
