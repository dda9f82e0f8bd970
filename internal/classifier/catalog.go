package classifier

// Tool identifies one invocable capability in the catalogue.
//
// The zero value is ToolUnknown so a missed classification is always a
// first-class, explicit case rather than an empty string.
type Tool int

const (
	ToolUnknown Tool = iota
	ToolCreateFile
	ToolCreateFolder
	ToolReadFile
	ToolListDirectory
	ToolRunShellCommand
	ToolLaunchApplication
	ToolListProcesses
	ToolZipFolder
)

// String returns the tool's wire name as the tool server knows it.
func (t Tool) String() string {
	switch t {
	case ToolCreateFile:
		return "create_file"
	case ToolCreateFolder:
		return "create_folder"
	case ToolReadFile:
		return "read_file"
	case ToolListDirectory:
		return "list_directory"
	case ToolRunShellCommand:
		return "run_shell_command"
	case ToolLaunchApplication:
		return "launch_application"
	case ToolListProcesses:
		return "list_processes"
	case ToolZipFolder:
		return "zip_folder"
	default:
		return "unknown"
	}
}

// ToolFromName maps a wire name back to a Tool. Unrecognized names map
// to ToolUnknown.
func ToolFromName(name string) Tool {
	switch name {
	case "create_file":
		return ToolCreateFile
	case "create_folder":
		return ToolCreateFolder
	case "read_file":
		return ToolReadFile
	case "list_directory":
		return ToolListDirectory
	case "run_shell_command":
		return ToolRunShellCommand
	case "launch_application":
		return ToolLaunchApplication
	case "list_processes":
		return ToolListProcesses
	case "zip_folder":
		return ToolZipFolder
	default:
		return ToolUnknown
	}
}

// AcceptsWorkingDirectory reports whether the tool takes a
// working_directory parameter.
func (t Tool) AcceptsWorkingDirectory() bool {
	switch t {
	case ToolCreateFile, ToolCreateFolder, ToolReadFile, ToolListDirectory, ToolRunShellCommand, ToolZipFolder:
		return true
	default:
		return false
	}
}

// ToolSpec holds the lexical signals that suggest one tool.
//
// Scoring weights: keyword hit = 3, object hit = 2, indicator hit = 1,
// extension or app-name hit = 4. All checks are case-insensitive
// containment against the full lowercased utterance.
type ToolSpec struct {
	Tool       Tool
	Keywords   []string
	Objects    []string
	Indicators []string
	Extensions []string // file creation only
	AppNames   []string // application launch only
}

// Signal weights for the scored intent classifier.
const (
	keywordWeight   = 3
	objectWeight    = 2
	indicatorWeight = 1
	strongWeight    = 4 // extensions and app names

	// DefaultConfidenceFloor is the minimum intent score required
	// before the scored classifier trusts its top pick.
	DefaultConfidenceFloor = 3
)

// DefaultCatalog returns the pattern catalogue in its declared order.
// Order matters: score ties are broken by the earlier entry.
func DefaultCatalog() []ToolSpec {
	return []ToolSpec{
		{
			Tool:       ToolCreateFile,
			Keywords:   []string{"create", "make", "new", "generate", "build"},
			Objects:    []string{"file", "document", "text", "excel", "word", "csv", "json", "script", "code"},
			Indicators: []string{"called", "named", "titled", "with name"},
			Extensions: []string{".txt", ".xlsx", ".docx", ".csv", ".json", ".py", ".js", ".html", ".md", ".xml"},
		},
		{
			Tool:       ToolCreateFolder,
			Keywords:   []string{"create", "make", "new", "build", "setup"},
			Objects:    []string{"folder", "directory", "dir", "subfolder", "subdirectory"},
			Indicators: []string{"called", "named", "for", "to store", "to organize"},
		},
		{
			Tool:     ToolReadFile,
			Keywords: []string{"read", "show", "display", "view", "see", "check", "look"},
			Objects:  []string{"file", "content", "contents", "data"},
		},
		{
			Tool:     ToolListDirectory,
			Keywords: []string{"list", "show", "display", "see", "view", "check"},
			Objects:  []string{"files", "directories", "contents", "items", "stuff"},
		},
		{
			Tool:       ToolRunShellCommand,
			Keywords:   []string{"run", "execute", "cmd", "shell", "command"},
			Indicators: []string{"command", "script", "terminal"},
		},
		{
			Tool:     ToolLaunchApplication,
			Keywords: []string{"open", "launch", "start", "run"},
			Objects:  []string{"app", "application", "program", "software"},
			AppNames: []string{"notepad", "calculator", "chrome", "firefox", "excel", "word", "code"},
		},
		{
			Tool:     ToolZipFolder,
			Keywords: []string{"zip", "compress", "archive", "backup"},
			Objects:  []string{"folder", "directory", "files", "project"},
		},
	}
}
