package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractParams_QuotedNameSurvivesIntact(t *testing.T) {
	cmd := ExtractParams(`create a file called "my notes.txt"`, ToolCreateFile)

	assert.Equal(t, ToolCreateFile, cmd.Tool)
	assert.Equal(t, "my notes.txt", cmd.Params["path"])
	assert.Equal(t, "txt", cmd.Params["file_type"])
}

func TestExtractParams_NameAfterIndicator(t *testing.T) {
	cmd := ExtractParams("create a folder called my_project", ToolCreateFolder)

	assert.Equal(t, ToolCreateFolder, cmd.Tool)
	assert.Equal(t, "my_project", cmd.Params["path"])
}

func TestExtractParams_NamePreservesCase(t *testing.T) {
	cmd := ExtractParams("make a folder named ProjectAlpha", ToolCreateFolder)

	assert.Equal(t, "ProjectAlpha", cmd.Params["path"])
}

func TestExtractParams_DefaultNameIsIdempotent(t *testing.T) {
	for i := 0; i < 3; i++ {
		cmd := ExtractParams("make a new", ToolCreateFolder)
		assert.Equal(t, "default", cmd.Params["path"], "call %d", i)
	}
}

func TestExtractParams_FileContentAndType(t *testing.T) {
	cmd := ExtractParams("create file notes.txt with content Hello World", ToolCreateFile)

	assert.Equal(t, "notes.txt", cmd.Params["path"])
	assert.Equal(t, "Hello World", cmd.Params["content"])
	assert.Equal(t, "txt", cmd.Params["file_type"])
}

func TestExtractParams_FileWithoutContentOmitsKeys(t *testing.T) {
	cmd := ExtractParams("create a file called report.csv", ToolCreateFile)

	assert.Equal(t, "report.csv", cmd.Params["path"])
	assert.NotContains(t, cmd.Params, "content")
	assert.Equal(t, "csv", cmd.Params["file_type"])
}

func TestExtractParams_UnrecognizedExtensionStaysAuto(t *testing.T) {
	cmd := ExtractParams("create a file called archive.tar", ToolCreateFile)

	assert.Equal(t, "archive.tar", cmd.Params["path"])
	assert.NotContains(t, cmd.Params, "file_type")
}

func TestExtractParams_ShellStripsVerbAndFiller(t *testing.T) {
	cases := map[string]string{
		"run dir command":     "dir",
		"run the dir command": "dir",
		"execute ls -la":      "ls -la",
		"cmd ipconfig":        "ipconfig",
	}
	for input, want := range cases {
		cmd := ExtractParams(input, ToolRunShellCommand)
		assert.Equal(t, want, cmd.Params["command"], "input %q", input)
	}
}

func TestExtractParams_ListingPathKeepsCase(t *testing.T) {
	cmd := ExtractParams("show me files in Documents", ToolListDirectory)

	assert.Equal(t, "Documents", cmd.Params["path"])
}

func TestExtractParams_ListingDefaultsToDot(t *testing.T) {
	cmd := ExtractParams("list files", ToolListDirectory)

	assert.Equal(t, ".", cmd.Params["path"])
}

func TestExtractParams_ReadFileFindsExtensionToken(t *testing.T) {
	cmd := ExtractParams("read data.csv for me", ToolReadFile)

	assert.Equal(t, "data.csv", cmd.Params["path"])
}

func TestExtractParams_KnownAppByContainment(t *testing.T) {
	cmd := ExtractParams("please open Chrome for me", ToolLaunchApplication)

	assert.Equal(t, "chrome", cmd.Params["app_name"])
}

func TestExtractParams_UnknownAppFallsBackToLastToken(t *testing.T) {
	cmd := ExtractParams("launch gimp", ToolLaunchApplication)

	assert.Equal(t, "gimp", cmd.Params["app_name"])
}

func TestExtractParams_EmptyLaunchDefaultsToNotepad(t *testing.T) {
	cmd := ExtractParams("", ToolLaunchApplication)

	assert.Equal(t, "notepad", cmd.Params["app_name"])
}

func TestExtractParams_ZipSkipsStopwords(t *testing.T) {
	cmd := ExtractParams("zip the my_project folder", ToolZipFolder)

	assert.Equal(t, "my_project", cmd.Params["folder_path"])
}

func TestExtractParams_ZipDefaultsToDot(t *testing.T) {
	cmd := ExtractParams("compress the folder", ToolZipFolder)

	assert.Equal(t, ".", cmd.Params["folder_path"])
}

func TestIndexFold(t *testing.T) {
	assert.Equal(t, 5, indexFold("make CALLED x", "called"))
	assert.Equal(t, 2, indexFold("a Called b", "called"))
	assert.Equal(t, -1, indexFold("make call x", "called"))
	assert.Equal(t, -1, indexFold("ab", "called"))
}

// U+023A grows from two bytes to three when lowercased, so offsets
// found in a lowercased copy do not index the original string.
func TestExtractParams_CaseChangingRunesStaySafe(t *testing.T) {
	inputs := []string{
		"create a new folder ȺȺȺȺȺȺȺȺcalled",
		"create Ⱥ file called log.txt with content Ⱥ data",
		"show me files ȺȺȺȺȺȺȺȺ in Documents",
		"read the ȺȺȺȺȺȺȺȺ file notes",
		"run ȺȺȺȺȺȺȺȺ the dir command",
	}
	tools := []Tool{
		ToolCreateFile, ToolCreateFolder, ToolReadFile, ToolListDirectory,
		ToolRunShellCommand, ToolLaunchApplication, ToolZipFolder,
	}
	for _, input := range inputs {
		for _, tool := range tools {
			assert.NotPanics(t, func() { ExtractParams(input, tool) },
				"input %q tool %s", input, tool)
		}
	}
}

func TestExtractParams_MultiByteLeadKeepsOffsets(t *testing.T) {
	cmd := ExtractParams("create Ⱥ file called log.txt with content Ⱥ data", ToolCreateFile)
	assert.Equal(t, "log.txt", cmd.Params["path"])
	assert.Equal(t, "Ⱥ data", cmd.Params["content"])

	cmd = ExtractParams("show me files ȺȺȺȺ in Documents", ToolListDirectory)
	assert.Equal(t, "Documents", cmd.Params["path"])
}

func TestExtractParams_UnknownToolYieldsUnknownCommand(t *testing.T) {
	cmd := ExtractParams("anything at all", ToolUnknown)

	require.True(t, cmd.IsUnknown())
	assert.NotNil(t, cmd.Params)
	assert.Empty(t, cmd.Params)
}
