package ports

// ToolCall is the canonical record for one model-initiated tool invocation.
//
// Name always holds the canonical tool name after alias resolution.
// OriginalName is set only when resolution changed the name, so conversation
// history can echo back exactly what the model emitted.
type ToolCall struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	OriginalName string            `json:"original_name,omitempty"`
	RawParams    map[string]string `json:"raw_params,omitempty"`
	TypedArgs    ToolArguments     `json:"typed_args,omitempty"`
	Partial      bool              `json:"partial"`
}

// MCPToolCall is the sibling record for dynamically named external tools.
// Name preserves the full dynamic name verbatim; Server and ToolName are the
// components extracted from it. Arguments are opaque to the parser.
type MCPToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Server    string         `json:"server"`
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments,omitempty"`
	Partial   bool           `json:"partial"`
}

// FinalizedToolCall is the outcome of finalizing one streamed call. Exactly
// one of Tool or MCP is non-nil.
type FinalizedToolCall struct {
	Tool *ToolCall
	MCP  *MCPToolCall
}

// ToolDefinition is the provider-facing description of a tool.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// NameClass is the classification of a tool name after alias resolution.
type NameClass int

const (
	// NameUnknown means the name is neither a static tool nor a dynamic
	// external tool. Finalizing such a call is a hard failure.
	NameUnknown NameClass = iota
	// NameStatic means the name belongs to the closed static tool set or to
	// the injected registry of ad-hoc custom tools.
	NameStatic
	// NameDynamicExternal means the name carries the reserved MCP prefix and
	// addresses a plugin-provided tool.
	NameDynamicExternal
)

func (c NameClass) String() string {
	switch c {
	case NameStatic:
		return "static"
	case NameDynamicExternal:
		return "dynamic_external"
	default:
		return "unknown"
	}
}

// NameResolver resolves aliases and classifies tool names. Implemented by the
// tool registry collaborator.
type NameResolver interface {
	// Resolve maps an alias to its canonical name, returning the input
	// unchanged when no alias entry exists.
	Resolve(name string) string

	// Classify reports whether a name is a static tool, a dynamically named
	// external tool, or unknown.
	Classify(name string) NameClass

	// IsCustom reports whether a name was registered ad hoc through the
	// custom-tool registry. Custom tools bypass required-argument
	// enforcement and unknown-parameter warnings.
	IsCustom(name string) bool
}
