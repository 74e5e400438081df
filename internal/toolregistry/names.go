package toolregistry

import (
	"callstream/internal/mcp"
	"callstream/internal/ports"
)

// builtinAliases maps alternate spellings the models are known to emit onto
// canonical static tool names. The table is closed; runtime additions go
// through Registry.AddAlias.
var builtinAliases = map[string]string{
	"read_file":      ports.ToolFileRead,
	"cat":            ports.ToolFileRead,
	"write_file":     ports.ToolFileWrite,
	"create_file":    ports.ToolFileWrite,
	"edit_file":      ports.ToolFileEdit,
	"str_replace":    ports.ToolFileEdit,
	"ls":             ports.ToolListFiles,
	"list_dir":       ports.ToolListFiles,
	"shell":          ports.ToolBash,
	"run_command":    ports.ToolBash,
	"execute_bash":   ports.ToolBash,
	"search":         ports.ToolGrep,
	"ripgrep":        ports.ToolGrep,
	"fetch":          ports.ToolWebFetch,
	"browser_goto":   ports.ToolBrowserNavigate,
	"navigate":       ports.ToolBrowserNavigate,
	"create_canvas":  ports.ToolCanvasCreate,
	"update_canvas":  ports.ToolCanvasUpdate,
	"todo_write":     ports.ToolTodoUpdate,
	"update_todos":   ports.ToolTodoUpdate,
	"spawn_subagent": ports.ToolSubagent,
	"reasoning":      ports.ToolThink,
}

// Resolve maps an alias to its canonical static name. Unknown names pass
// through unchanged.
func (r *Registry) Resolve(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if canonical, ok := r.aliases[name]; ok {
		return canonical
	}
	if canonical, ok := builtinAliases[name]; ok {
		return canonical
	}
	return name
}

// Classify reports how a (resolved) name should be dispatched. Dynamic
// external names are recognized in either separator variant.
func (r *Registry) Classify(name string) ports.NameClass {
	if mcp.IsDynamic(name) {
		return ports.NameDynamicExternal
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.static[name]; ok {
		return ports.NameStatic
	}
	if _, ok := r.custom[name]; ok {
		return ports.NameStatic
	}
	return ports.NameUnknown
}

// IsCustom reports whether name was registered through the custom-tool
// registry rather than the closed static set.
func (r *Registry) IsCustom(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.custom[name]
	return ok
}

// AddAlias installs a runtime alias override. The canonical name must belong
// to the static set.
func (r *Registry) AddAlias(alias, canonical string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.static[canonical]; !ok {
		return &UnknownToolError{Name: canonical}
	}
	r.aliases[alias] = canonical
	return nil
}
