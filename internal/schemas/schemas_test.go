package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature(t *testing.T) {
	s := NewSchema("create_file", "Create a file").
		AddParam("path", "string", "File path", true).
		AddParam("content", "string", "Content", false).
		Build()

	assert.Equal(t, "create_file(path, content=None)", s.Signature())
}

func TestSignature_NoParams(t *testing.T) {
	s := NewSchema("noop", "Does nothing").Build()
	assert.Equal(t, "noop()", s.Signature())
}

func TestRequired(t *testing.T) {
	s := NewSchema("read_file", "Read a file").
		AddParam("path", "string", "File path", true).
		AddParam("working_directory", "string", "Base dir", false).
		Build()

	assert.True(t, s.Required("path"))
	assert.False(t, s.Required("working_directory"))
	assert.False(t, s.Required("missing"))
	assert.Equal(t, []string{"path", "working_directory"}, s.ParamNames())
}

func TestRegistry_OrderAndLookup(t *testing.T) {
	r := NewRegistry()
	r.Register(NewSchema("beta", "second").Build())
	r.Register(NewSchema("alpha", "first").Build())

	assert.Equal(t, []string{"beta", "alpha"}, r.List())
	assert.Equal(t, []string{"alpha", "beta"}, r.ListSorted())

	s, ok := r.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "first", s.Description)

	_, ok = r.Get("gamma")
	assert.False(t, ok)
}

func TestRegistry_ReRegisterKeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(NewSchema("a", "one").Build())
	r.Register(NewSchema("b", "two").Build())
	r.Register(NewSchema("a", "updated").Build())

	assert.Equal(t, []string{"a", "b"}, r.List())
	s, _ := r.Get("a")
	assert.Equal(t, "updated", s.Description)
}

func TestRegistry_Describe(t *testing.T) {
	r := NewRegistry()
	r.Register(NewSchema("zip_folder", "Create a ZIP archive").
		AddParam("folder_path", "string", "Folder", true).
		AddParam("archive_name", "string", "Name", false).
		Build())

	assert.Equal(t, "- zip_folder(folder_path, archive_name=None) - Create a ZIP archive", r.Describe())
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	want := []string{
		"create_file", "create_folder", "read_file", "list_directory",
		"run_shell_command", "launch_application", "list_processes", "zip_folder",
	}
	assert.Equal(t, want, r.List())

	cf, ok := r.Get("create_file")
	require.True(t, ok)
	assert.True(t, cf.Required("path"))
	assert.False(t, cf.Required("content"))
}
