package classifier

import (
	"regexp"
	"strings"
)

// normalize lowercases and trims an utterance for matching.
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// contains is case-sensitive containment over already-lowercased input.
func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// indexFold returns the byte offset in s of the first occurrence of
// the lowercase ASCII needle, compared case-insensitively. The offset
// indexes s itself, never a lowercased copy, so callers can slice s
// with it; ToLower does not preserve byte lengths.
func indexFold(s, needle string) int {
	for i := 0; i+len(needle) <= len(s); i++ {
		if foldMatch(s[i:], needle) {
			return i
		}
	}
	return -1
}

// foldMatch reports whether s starts with the lowercase ASCII needle
// under ASCII case folding.
func foldMatch(s, needle string) bool {
	if len(s) < len(needle) {
		return false
	}
	for i := 0; i < len(needle); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != needle[i] {
			return false
		}
	}
	return true
}

// ExtractParams extracts the parameters for a known tool. The switch is
// exhaustive over the catalogue; ToolUnknown yields the unknown command.
func ExtractParams(utterance string, tool Tool) Command {
	switch tool {
	case ToolCreateFile:
		return extractFileCreation(utterance)
	case ToolCreateFolder:
		return extractFolderCreation(utterance)
	case ToolReadFile:
		return extractFileReading(utterance)
	case ToolListDirectory:
		return extractDirectoryListing(utterance)
	case ToolRunShellCommand:
		return extractShellCommand(utterance)
	case ToolLaunchApplication:
		return extractAppLaunch(utterance)
	case ToolListProcesses:
		return Command{Tool: ToolListProcesses, Params: map[string]any{}}
	case ToolZipFolder:
		return extractZip(utterance)
	default:
		return unknownCommand()
	}
}

var (
	// fileTokenRegex matches a word.word token resembling a filename.
	fileTokenRegex = regexp.MustCompile(`\b\w+\.\w+\b`)

	// knownFileRegex matches a filename with a recognized extension.
	knownFileRegex = regexp.MustCompile(`\b\w+\.(txt|xlsx|docx|csv|json|py|js|html|md)\b`)

	doubleQuoted = regexp.MustCompile(`"([^"]*)"`)
	singleQuoted = regexp.MustCompile(`'([^']*)'`)
)

// contentPhrases introduce file content; everything after the first hit
// becomes the content.
var contentPhrases = []string{"with content", "containing", "that says", "with text"}

// knownFileTypes is the allow-list for file-type inference.
var knownFileTypes = map[string]bool{
	"txt": true, "xlsx": true, "docx": true, "csv": true, "json": true,
	"py": true, "js": true, "html": true, "md": true,
}

// nameStoplist removes command and filler words before the last-word
// name fallback.
var nameStoplist = map[string]bool{
	"create": true, "make": true, "new": true, "folder": true,
	"file": true, "called": true, "named": true, "a": true, "the": true,
}

func extractFileCreation(utterance string) Command {
	name := extractName(utterance, []string{"called", "named", "titled"})

	// No indicator or quote gave a usable name; fall back to any token
	// with a recognized extension.
	if name == "default" || strings.EqualFold(name, "file") {
		if m := knownFileRegex.FindString(strings.ToLower(utterance)); m != "" {
			name = m
		}
	}

	content := ""
	for _, phrase := range contentPhrases {
		if idx := indexFold(utterance, phrase); idx != -1 {
			content = strings.TrimSpace(utterance[idx+len(phrase):])
			break
		}
	}

	fileType := "auto"
	if dot := strings.LastIndex(name, "."); dot != -1 && dot < len(name)-1 {
		if ext := strings.ToLower(name[dot+1:]); knownFileTypes[ext] {
			fileType = ext
		}
	}

	params := map[string]any{"path": name}
	if content != "" {
		params["content"] = content
	}
	if fileType != "auto" {
		params["file_type"] = fileType
	}

	return Command{Tool: ToolCreateFile, Params: params}
}

func extractFolderCreation(utterance string) Command {
	name := extractName(utterance, []string{"called", "named", "for", "titled"})
	return Command{Tool: ToolCreateFolder, Params: map[string]any{"path": name}}
}

func extractFileReading(utterance string) Command {
	return Command{Tool: ToolReadFile, Params: map[string]any{"path": extractFilename(utterance)}}
}

// listingPhrases are the space-padded prepositions that precede a
// directory path.
var listingPhrases = []string{" in ", " inside ", " from ", " of "}

func extractDirectoryListing(utterance string) Command {
	trimmed := strings.TrimSpace(utterance)

	path := "."
	for _, phrase := range listingPhrases {
		if idx := indexFold(trimmed, phrase); idx != -1 {
			rest := strings.Fields(trimmed[idx+len(phrase):])
			if len(rest) > 0 {
				path = rest[0]
			}
			break
		}
	}

	return Command{Tool: ToolListDirectory, Params: map[string]any{"path": path}}
}

// shellVerbs are leading verbs stripped from shell requests.
var shellVerbs = []string{"run", "execute", "cmd", "shell", "command"}

func extractShellCommand(utterance string) Command {
	command := strings.TrimSpace(utterance)

	for _, verb := range shellVerbs {
		if foldMatch(command, verb) {
			command = strings.TrimSpace(command[len(verb):])
			break
		}
	}

	// Collapse the "the X command" filler to "X".
	if strings.Contains(strings.ToLower(command), " command") {
		command = strings.ReplaceAll(command, "the ", "")
		command = strings.ReplaceAll(command, " command", "")
		command = strings.TrimSpace(command)
	}

	return Command{Tool: ToolRunShellCommand, Params: map[string]any{"command": command}}
}

// knownApps is the fixed list of recognized application names.
var knownApps = []string{"notepad", "calculator", "chrome", "firefox", "excel", "word", "code", "cmd", "powershell"}

func extractAppLaunch(utterance string) Command {
	ui := normalize(utterance)

	appName := ""
	for _, app := range knownApps {
		if contains(ui, app) {
			appName = app
			break
		}
	}

	if appName == "" {
		if fields := strings.Fields(ui); len(fields) > 0 {
			appName = fields[len(fields)-1]
		} else {
			appName = "notepad"
		}
	}

	return Command{Tool: ToolLaunchApplication, Params: map[string]any{"app_name": appName}}
}

// zipStopwords never name the folder being archived.
var zipStopwords = map[string]bool{
	"zip": true, "compress": true, "archive": true, "backup": true,
	"folder": true, "directory": true, "the": true, "my": true,
}

func extractZip(utterance string) Command {
	folder := "."
	for _, word := range strings.Fields(normalize(utterance)) {
		if !zipStopwords[word] {
			folder = word
			break
		}
	}

	return Command{Tool: ToolZipFolder, Params: map[string]any{"folder_path": folder}}
}

// extractName extracts a file or folder name using ordered methods:
// the word after an indicator phrase, then the first quoted substring,
// then a filename-like token, then the last non-stoplist word. Returns
// "default" when everything fails.
func extractName(utterance string, indicators []string) string {
	// Method 1: first word after an indicator phrase, case preserved.
	// A word that opens a quote defers to the quoted-string method so
	// multi-word quoted names survive intact.
indicatorScan:
	for _, kw := range indicators {
		if idx := indexFold(utterance, kw); idx != -1 {
			after := strings.Fields(utterance[idx+len(kw):])
			if len(after) > 0 {
				word := after[0]
				if strings.HasPrefix(word, `"`) || strings.HasPrefix(word, `'`) {
					break indicatorScan
				}
				if name := strings.Trim(word, `"'`); name != "" {
					return name
				}
			}
		}
	}

	// Method 2: first quoted substring.
	if m := doubleQuoted.FindStringSubmatch(utterance); len(m) > 1 && m[1] != "" {
		return m[1]
	}
	if m := singleQuoted.FindStringSubmatch(utterance); len(m) > 1 && m[1] != "" {
		return m[1]
	}

	// Method 3: filename-like token.
	if m := fileTokenRegex.FindString(utterance); m != "" {
		return m
	}

	// Method 4: last word after removing command/filler words.
	var meaningful []string
	for _, word := range strings.Fields(utterance) {
		if !nameStoplist[strings.ToLower(word)] {
			meaningful = append(meaningful, word)
		}
	}
	if len(meaningful) > 0 {
		if name := strings.Trim(meaningful[len(meaningful)-1], `"'`); name != "" {
			return name
		}
	}

	return "default"
}

// filenameKeywords precede a filename in read requests.
var filenameKeywords = []string{"file", "in", "from", "of", "inside"}

// extractFilename pulls a filename from a read request: a filename-like
// token first, then the word after a positional keyword, then the last
// word. Defaults to "file.txt".
func extractFilename(utterance string) string {
	if m := fileTokenRegex.FindString(utterance); m != "" {
		return m
	}

	for _, kw := range filenameKeywords {
		if idx := indexFold(utterance, kw); idx != -1 {
			after := strings.Fields(utterance[idx+len(kw):])
			if len(after) > 0 {
				return after[0]
			}
		}
	}

	if fields := strings.Fields(utterance); len(fields) > 0 {
		return fields[len(fields)-1]
	}

	return "file.txt"
}
