package server

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type runShellCommandInput struct {
	Command          string `json:"command"`
	WorkingDirectory string `json:"working_directory,omitempty"`
}

func (s *Server) runShellCommand(ctx context.Context, _ *mcp.CallToolRequest, in runShellCommandInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(in.Command) == "" {
		return errorResult("command parameter required"), nil, nil
	}

	timeout := time.Duration(s.cfg.ShellTimeoutSec) * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", in.Command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", in.Command)
	}
	if in.WorkingDirectory != "" {
		cmd.Dir = in.WorkingDirectory
	}

	output, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return errorResult("Command timed out after %s", timeout), nil, nil
	}
	if err != nil {
		return errorResult("Command failed: %v\n%s", err, string(output)), nil, nil
	}

	text := strings.TrimRight(string(output), "\n")
	if text == "" {
		text = "(no output)"
	}
	return textResult("Command executed:\n%s", text), nil, nil
}

type launchApplicationInput struct {
	AppName  string `json:"app_name"`
	FilePath string `json:"file_path,omitempty"`
}

func (s *Server) launchApplication(_ context.Context, _ *mcp.CallToolRequest, in launchApplicationInput) (*mcp.CallToolResult, any, error) {
	if in.AppName == "" {
		return errorResult("app_name parameter required"), nil, nil
	}

	var cmd *exec.Cmd
	switch {
	case runtime.GOOS == "windows":
		args := []string{"/C", "start", "", in.AppName}
		if in.FilePath != "" {
			args = append(args, in.FilePath)
		}
		cmd = exec.Command("cmd", args...)
	case in.FilePath != "":
		cmd = exec.Command(in.AppName, in.FilePath)
	default:
		cmd = exec.Command(in.AppName)
	}

	if err := cmd.Start(); err != nil {
		return errorResult("Failed to launch %s: %v", in.AppName, err), nil, nil
	}
	// Detach; the app outlives this call.
	_ = cmd.Process.Release()

	return textResult("Launched %s", in.AppName), nil, nil
}

type listProcessesInput struct {
	FilterName string `json:"filter_name,omitempty"`
}

func (s *Server) listProcesses(ctx context.Context, _ *mcp.CallToolRequest, in listProcessesInput) (*mcp.CallToolResult, any, error) {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "tasklist")
	} else {
		cmd = exec.CommandContext(ctx, "ps", "aux")
	}

	output, err := cmd.Output()
	if err != nil {
		return errorResult("Failed to list processes: %v", err), nil, nil
	}

	lines := strings.Split(strings.TrimRight(string(output), "\n"), "\n")
	if in.FilterName != "" {
		filter := strings.ToLower(in.FilterName)
		filtered := lines[:0]
		for i, line := range lines {
			// Keep the header row.
			if i == 0 || strings.Contains(strings.ToLower(line), filter) {
				filtered = append(filtered, line)
			}
		}
		lines = filtered
	}

	const maxLines = 100
	if len(lines) > maxLines {
		lines = append(lines[:maxLines], fmt.Sprintf("... (%d more)", len(lines)-maxLines))
	}

	return textResult("%s", strings.Join(lines, "\n")), nil, nil
}

type zipFolderInput struct {
	FolderPath       string `json:"folder_path"`
	ArchiveName      string `json:"archive_name,omitempty"`
	WorkingDirectory string `json:"working_directory,omitempty"`
}

func (s *Server) zipFolder(_ context.Context, _ *mcp.CallToolRequest, in zipFolderInput) (*mcp.CallToolResult, any, error) {
	if in.FolderPath == "" {
		return errorResult("folder_path parameter required"), nil, nil
	}

	folder := resolvePath(in.FolderPath, in.WorkingDirectory)
	if !s.pathSafe(folder) {
		return errorResult("Access denied: Path is in a restricted system directory"), nil, nil
	}

	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return errorResult("Folder not found: %s", folder), nil, nil
	}

	archiveName := in.ArchiveName
	if archiveName == "" {
		base := filepath.Base(folder)
		if base == "." || base == string(filepath.Separator) {
			base = "archive"
		}
		archiveName = base + ".zip"
	}
	if !strings.HasSuffix(archiveName, ".zip") {
		archiveName += ".zip"
	}
	archivePath := resolvePath(archiveName, in.WorkingDirectory)

	count, err := writeZip(archivePath, folder)
	if err != nil {
		return errorResult("Failed to create archive: %v", err), nil, nil
	}

	abs, _ := filepath.Abs(archivePath)
	return textResult("Archive created successfully!\nPath: %s\nFiles: %d\nSize: %s",
		abs, count, formatFileSize(statSize(archivePath))), nil, nil
}

// writeZip archives the folder's contents, keeping the folder's base
// name as the top-level prefix inside the archive.
func writeZip(archivePath, folder string) (int, error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return 0, err
	}

	zw := zip.NewWriter(out)
	absArchive, _ := filepath.Abs(archivePath)
	base := filepath.Base(folder)
	count := 0

	err = filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		// Never zip the archive into itself.
		if abs, err := filepath.Abs(path); err == nil && abs == absArchive {
			return nil
		}

		rel, err := filepath.Rel(folder, path)
		if err != nil {
			return err
		}

		w, err := zw.Create(filepath.ToSlash(filepath.Join(base, rel)))
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if _, err := io.Copy(w, f); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		zw.Close()
		out.Close()
		return 0, err
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return 0, err
	}
	return count, out.Close()
}
