// Package schemas provides JSON Schema definitions for the Relay tool catalogue.
//
// The same schemas serve two consumers: the tool server registers them as MCP
// input schemas, and the command parser renders them into the natural-language
// tool documentation embedded in the model prompt.
package schemas

import (
	"fmt"
	"sort"
	"strings"
)

// Schema defines a tool's JSON schema.
type Schema struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`

	paramOrder []string
}

// SchemaBuilder provides a fluent interface for building tool schemas.
type SchemaBuilder struct {
	schema *Schema
}

// NewSchema creates a new schema builder with the given name and description.
func NewSchema(name, description string) *SchemaBuilder {
	return &SchemaBuilder{
		schema: &Schema{
			Name:        name,
			Description: description,
			Parameters: map[string]interface{}{
				"type":       "object",
				"properties": make(map[string]interface{}),
				"required":   make([]string, 0),
			},
		},
	}
}

// AddParam adds a parameter to the schema.
func (b *SchemaBuilder) AddParam(name, paramType, description string, required bool) *SchemaBuilder {
	props := b.schema.Parameters["properties"].(map[string]interface{})
	props[name] = map[string]interface{}{
		"type":        paramType,
		"description": description,
	}
	if required {
		req := b.schema.Parameters["required"].([]string)
		b.schema.Parameters["required"] = append(req, name)
	}
	b.schema.paramOrder = append(b.schema.paramOrder, name)
	return b
}

// Build returns the constructed schema.
func (b *SchemaBuilder) Build() *Schema {
	return b.schema
}

// ParamNames returns the parameter names in declaration order.
func (s *Schema) ParamNames() []string {
	return s.paramOrder
}

// Required reports whether the named parameter is required.
func (s *Schema) Required(name string) bool {
	req, ok := s.Parameters["required"].([]string)
	if !ok {
		return false
	}
	for _, r := range req {
		if r == name {
			return true
		}
	}
	return false
}

// Signature renders the schema as a compact call signature, e.g.
// "create_file(path, content="", file_type="auto", working_directory=None)".
func (s *Schema) Signature() string {
	parts := make([]string, 0, len(s.paramOrder))
	for _, name := range s.paramOrder {
		if s.Required(name) {
			parts = append(parts, name)
		} else {
			parts = append(parts, name+"=None")
		}
	}
	return fmt.Sprintf("%s(%s)", s.Name, strings.Join(parts, ", "))
}

// Registry holds all tool schemas in declaration order.
type Registry struct {
	order   []string
	schemas map[string]*Schema
}

// NewRegistry creates a new empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register adds a schema to the registry.
func (r *Registry) Register(schema *Schema) {
	if _, exists := r.schemas[schema.Name]; !exists {
		r.order = append(r.order, schema.Name)
	}
	r.schemas[schema.Name] = schema
}

// Get retrieves a schema by name.
func (r *Registry) Get(name string) (*Schema, bool) {
	s, ok := r.schemas[name]
	return s, ok
}

// List returns all registered schema names in declaration order.
func (r *Registry) List() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// ListSorted returns all registered schema names sorted alphabetically.
func (r *Registry) ListSorted() []string {
	names := r.List()
	sort.Strings(names)
	return names
}

// Describe renders every schema as one documentation line for model prompts.
func (r *Registry) Describe() string {
	var sb strings.Builder
	for _, name := range r.order {
		s := r.schemas[name]
		sb.WriteString("- ")
		sb.WriteString(s.Signature())
		sb.WriteString(" - ")
		sb.WriteString(s.Description)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// DefaultRegistry registers the schemas for every tool Relay dispatches to.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(NewSchema("create_file", "Create any file type with appropriate content structure").
		AddParam("path", "string", "File path, relative to the working directory unless absolute", true).
		AddParam("content", "string", "Initial file content", false).
		AddParam("file_type", "string", "File type; \"auto\" detects from the extension", false).
		AddParam("working_directory", "string", "Directory to resolve relative paths against", false).
		AddParam("encoding", "string", "Text encoding for the file content", false).
		Build())

	r.Register(NewSchema("create_folder", "Create a directory, including parents").
		AddParam("path", "string", "Directory path to create", true).
		AddParam("working_directory", "string", "Directory to resolve relative paths against", false).
		Build())

	r.Register(NewSchema("read_file", "Read file contents").
		AddParam("path", "string", "File path to read", true).
		AddParam("working_directory", "string", "Directory to resolve relative paths against", false).
		Build())

	r.Register(NewSchema("list_directory", "List directory contents").
		AddParam("path", "string", "Directory path to list", false).
		AddParam("working_directory", "string", "Directory to resolve relative paths against", false).
		Build())

	r.Register(NewSchema("run_shell_command", "Execute a shell command with a configured timeout").
		AddParam("command", "string", "Command line to execute", true).
		AddParam("working_directory", "string", "Directory to run the command in", false).
		Build())

	r.Register(NewSchema("launch_application", "Launch an application or open a file with it").
		AddParam("app_name", "string", "Application name to launch", true).
		AddParam("file_path", "string", "Optional file to open with the application", false).
		Build())

	r.Register(NewSchema("list_processes", "List running processes").
		AddParam("filter_name", "string", "Only list processes whose line matches this substring", false).
		Build())

	r.Register(NewSchema("zip_folder", "Create a ZIP archive of a folder").
		AddParam("folder_path", "string", "Folder to archive", true).
		AddParam("archive_name", "string", "Archive file name; derived from the folder when omitted", false).
		AddParam("working_directory", "string", "Directory to resolve relative paths against", false).
		Build())

	return r
}
