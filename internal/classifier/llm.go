package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/relay-ai/relay/internal/model"
	"github.com/relay-ai/relay/internal/schemas"
)

// modelStrategy asks the language model to emit a structured tool call.
// Any backend or parse failure is a silent miss; the next tier takes over.
type modelStrategy struct {
	model  model.Model
	system string
}

func newModelStrategy(m model.Model, reg *schemas.Registry) *modelStrategy {
	return &modelStrategy{
		model:  m,
		system: fmt.Sprintf(parserSystemPrompt, reg.Describe()),
	}
}

func (s *modelStrategy) Name() string { return "model" }

func (s *modelStrategy) Parse(ctx context.Context, utterance string) (Command, bool) {
	if s.model == nil || !s.model.IsAvailable() {
		return unknownCommand(), false
	}

	resp, err := s.model.Generate(ctx, &model.Request{
		System: s.system,
		Prompt: utterance,
	})
	if err != nil {
		return unknownCommand(), false
	}

	jsonText := ExtractJSON(strings.TrimSpace(resp.Text))
	if jsonText == "" {
		return unknownCommand(), false
	}

	var parsed struct {
		Tool   string         `json:"tool"`
		Params map[string]any `json:"params"`
	}
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return unknownCommand(), false
	}

	tool := ToolFromName(parsed.Tool)
	if tool == ToolUnknown {
		return unknownCommand(), false
	}

	params := parsed.Params
	if params == nil {
		params = map[string]any{}
	}

	return Command{Tool: tool, Params: params}, true
}

// jsonObjectRegex anchors on the literal "tool" and "params" keys inside
// a single-level brace pair. Last-ditch extraction only.
var jsonObjectRegex = regexp.MustCompile(`\{[^{}]*"tool"[^{}]*"params"[^{}]*\}`)

// ExtractJSON pulls one JSON object out of free-form model output.
//
// Methods are tried strictly in order and the first non-empty candidate
// wins; the order is part of the contract since different methods can
// yield different candidates for the same response:
//  1. a fenced code block tagged as JSON
//  2. any fenced code block whose trimmed content is brace-delimited
//  3. the span from the first '{' to the last '}'
//  4. a regex anchored on the "tool" and "params" keys
func ExtractJSON(text string) string {
	// Method 1: tagged markdown code block
	if idx := strings.Index(text, "```json"); idx != -1 {
		start := idx + len("```json")
		if end := strings.Index(text[start:], "```"); end != -1 {
			return strings.TrimSpace(text[start : start+end])
		}
	}

	// Method 2: any code block that looks like an object
	if idx := strings.Index(text, "```"); idx != -1 {
		start := idx + len("```")
		if end := strings.Index(text[start:], "```"); end != -1 {
			candidate := strings.TrimSpace(text[start : start+end])
			if strings.HasPrefix(candidate, "{") && strings.HasSuffix(candidate, "}") {
				return candidate
			}
		}
	}

	// Method 3: outermost object boundaries
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first != -1 && last != -1 && last > first {
		return text[first : last+1]
	}

	// Method 4: anchored regex
	if match := jsonObjectRegex.FindString(text); match != "" {
		return match
	}

	return ""
}

// parserSystemPrompt instructs the model to map a request onto one tool
// call. The %s slot receives the rendered tool documentation.
const parserSystemPrompt = `You are a system orchestrator with deep natural language understanding. You interpret ANY conversational request and map it to exactly one of the available tools.

AVAILABLE TOOLS:
%s

PARAMETER EXTRACTION:
- Extract file/folder names from anywhere in the sentence
- Handle quoted names: "create folder 'my project'"
- Handle extensions: "make file report.xlsx"
- Handle content: "create file with some text content"
- Handle paths: "list files in Documents/work"
- Handle commands: "run dir /w" or "execute ls -la"

RESPOND ONLY WITH VALID JSON:
{"tool": "create_folder", "params": {"path": "extracted_name"}}

Examples:
"create a folder called my_project" -> {"tool": "create_folder", "params": {"path": "my_project"}}
"I need a text file named notes.txt" -> {"tool": "create_file", "params": {"path": "notes.txt", "file_type": "txt"}}
"show me files in Documents" -> {"tool": "list_directory", "params": {"path": "Documents"}}
"run dir command" -> {"tool": "run_shell_command", "params": {"command": "dir"}}`
