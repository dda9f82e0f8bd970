package classifier

import (
	"context"
	"regexp"
)

// patternStrategy tries an ordered list of regular expressions against
// the lowercased utterance; the first match wins. As the terminal
// fallback it must never fail for any input, including empty strings.
type patternStrategy struct {
	patterns []toolPattern
}

type toolPattern struct {
	re   *regexp.Regexp
	tool Tool
}

// fallbackPatterns are tried strictly in declaration order.
var fallbackPatterns = []toolPattern{
	{regexp.MustCompile(`\b(create|make|new|generate|build)\b.*\b(file|document|text|excel|word|csv|json|script)`), ToolCreateFile},
	{regexp.MustCompile(`\b(create|make|new|build|setup)\b.*\b(folder|directory|dir|subfolder)`), ToolCreateFolder},
	{regexp.MustCompile(`\b(read|show|display|view|see|check|look)\b.*\b(file|content|contents|data)`), ToolReadFile},
	{regexp.MustCompile(`\b(list|show|display|see|view)\b.*\b(files|directories|contents|items)`), ToolListDirectory},
	{regexp.MustCompile(`\b(run|execute|cmd|shell|command)\b`), ToolRunShellCommand},
	{regexp.MustCompile(`\b(open|launch|start)\b.*\b(app|application|program|notepad|calculator|chrome)`), ToolLaunchApplication},
	{regexp.MustCompile(`\b(zip|compress|archive|backup)\b`), ToolZipFolder},
}

func newPatternStrategy() *patternStrategy {
	return &patternStrategy{patterns: fallbackPatterns}
}

func (s *patternStrategy) Name() string { return "pattern" }

func (s *patternStrategy) Parse(_ context.Context, utterance string) (Command, bool) {
	ui := normalize(utterance)

	for _, p := range s.patterns {
		if p.re.MatchString(ui) {
			return ExtractParams(utterance, p.tool), true
		}
	}

	return unknownCommand(), false
}
