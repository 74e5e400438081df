// Package toolregistry holds the closed static tool set, the alias table, and
// the registry of ad-hoc custom tools. It is the name-resolution collaborator
// of the streaming parser.
package toolregistry

import (
	"fmt"
	"sort"
	"sync"

	"callstream/internal/logging"
	"callstream/internal/ports"
)

// staticTool describes one member of the closed static tool set. Args holds a
// zero value of the typed argument struct; its shape drives the generated
// provider-facing schema.
type staticTool struct {
	description string
	args        ports.ToolArguments
}

var staticTools = map[string]staticTool{
	ports.ToolFileRead:          {"Read a file from the workspace", ports.FileReadArgs{}},
	ports.ToolFileWrite:         {"Write content to a workspace file", ports.FileWriteArgs{}},
	ports.ToolFileEdit:          {"Replace a string within a workspace file", ports.FileEditArgs{}},
	ports.ToolListFiles:         {"List files under a directory", ports.ListFilesArgs{}},
	ports.ToolBash:              {"Execute a shell command", ports.BashArgs{}},
	ports.ToolGrep:              {"Search file contents for a pattern", ports.GrepArgs{}},
	ports.ToolWebSearch:         {"Search the web", ports.WebSearchArgs{}},
	ports.ToolWebFetch:          {"Fetch a URL and return its content", ports.WebFetchArgs{}},
	ports.ToolTodoUpdate:        {"Replace the task todo list", ports.TodoUpdateArgs{}},
	ports.ToolThink:             {"Record a reasoning step", ports.ThinkArgs{}},
	ports.ToolSubagent:          {"Delegate a task to a subagent", ports.SubagentArgs{}},
	ports.ToolBrowserNavigate:   {"Navigate the browser to a URL", ports.BrowserNavigateArgs{}},
	ports.ToolBrowserClick:      {"Click a page element", ports.BrowserClickArgs{}},
	ports.ToolBrowserScreenshot: {"Capture a browser screenshot", ports.BrowserScreenshotArgs{}},
	ports.ToolCanvasCreate:      {"Create a named canvas document", ports.CanvasCreateArgs{}},
	ports.ToolCanvasUpdate:      {"Update an existing canvas document", ports.CanvasUpdateArgs{}},
}

// UnknownToolError reports a name that resolves to neither a static nor a
// registered custom tool.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// CustomTool is an ad-hoc tool registered at runtime. Schema is optional; when
// present it is compiled lazily and used for post-finalize validation.
type CustomTool struct {
	Name        string
	Description string
	Schema      map[string]any
}

// Registry implements ports.NameResolver and owns the custom-tool namespace.
type Registry struct {
	mu      sync.RWMutex
	static  map[string]staticTool
	custom  map[string]CustomTool
	aliases map[string]string
	schemas *schemaCache
	logger  logging.Logger
}

var _ ports.NameResolver = (*Registry)(nil)

// NewRegistry builds a registry seeded with the closed static tool set.
func NewRegistry(logger logging.Logger) *Registry {
	cache, err := newSchemaCache(defaultSchemaCacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	return &Registry{
		static:  staticTools,
		custom:  make(map[string]CustomTool),
		aliases: make(map[string]string),
		schemas: cache,
		logger:  logging.OrNop(logger),
	}
}

// RegisterCustom adds an ad-hoc tool name. Names colliding with the static
// set are rejected; re-registering a custom name overwrites it.
func (r *Registry) RegisterCustom(tool CustomTool) error {
	if tool.Name == "" {
		return fmt.Errorf("custom tool name must not be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.static[tool.Name]; ok {
		return fmt.Errorf("custom tool %q collides with a static tool", tool.Name)
	}
	r.custom[tool.Name] = tool
	r.schemas.invalidate(tool.Name)
	r.logger.Debug("registered custom tool %q", tool.Name)
	return nil
}

// UnregisterCustom removes an ad-hoc tool name. Static tools cannot be
// removed.
func (r *Registry) UnregisterCustom(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.custom, name)
	r.schemas.invalidate(name)
}

// StaticNames returns the closed static tool-name set, sorted.
func (r *Registry) StaticNames() []string {
	names := make([]string, 0, len(staticTools))
	for name := range staticTools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns the provider-facing definition for a static or custom
// tool name.
func (r *Registry) Definition(name string) (ports.ToolDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if tool, ok := r.static[name]; ok {
		return ports.ToolDefinition{
			Name:        name,
			Description: tool.description,
			Parameters:  reflectToolSchema(tool.args),
		}, nil
	}
	if tool, ok := r.custom[name]; ok {
		return ports.ToolDefinition{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  tool.Schema,
		}, nil
	}
	return ports.ToolDefinition{}, &UnknownToolError{Name: name}
}

// List returns definitions for every static and custom tool, static first,
// each group sorted by name.
func (r *Registry) List() []ports.ToolDefinition {
	r.mu.RLock()
	customNames := make([]string, 0, len(r.custom))
	for name := range r.custom {
		customNames = append(customNames, name)
	}
	r.mu.RUnlock()
	sort.Strings(customNames)

	var defs []ports.ToolDefinition
	for _, name := range r.StaticNames() {
		def, err := r.Definition(name)
		if err != nil {
			continue
		}
		defs = append(defs, def)
	}
	for _, name := range customNames {
		def, err := r.Definition(name)
		if err != nil {
			continue
		}
		defs = append(defs, def)
	}
	return defs
}

// ValidateCustomArgs checks a finalized custom-tool argument object against
// the tool's declared schema, if any. Tools without a schema accept anything.
func (r *Registry) ValidateCustomArgs(name string, args map[string]any) error {
	r.mu.RLock()
	tool, ok := r.custom[name]
	r.mu.RUnlock()
	if !ok {
		return &UnknownToolError{Name: name}
	}
	if tool.Schema == nil {
		return nil
	}
	schema, err := r.schemas.compiled(name, tool.Schema)
	if err != nil {
		return fmt.Errorf("compile schema for %s: %w", name, err)
	}
	if args == nil {
		args = map[string]any{}
	}
	if err := schema.Validate(normalizeJSONValue(args)); err != nil {
		return fmt.Errorf("arguments for %s rejected by schema: %w", name, err)
	}
	return nil
}
