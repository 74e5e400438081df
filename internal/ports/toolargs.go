package ports

// Canonical names of the closed static tool set. The projection table and the
// registry both key off these constants so the two cannot drift apart.
const (
	ToolFileRead          = "file_read"
	ToolFileWrite         = "file_write"
	ToolFileEdit          = "file_edit"
	ToolListFiles         = "list_files"
	ToolBash              = "bash"
	ToolGrep              = "grep"
	ToolWebSearch         = "web_search"
	ToolWebFetch          = "web_fetch"
	ToolTodoUpdate        = "todo_update"
	ToolThink             = "think"
	ToolSubagent          = "subagent"
	ToolBrowserNavigate   = "browser_navigate"
	ToolBrowserClick      = "browser_click"
	ToolBrowserScreenshot = "browser_screenshot"
	ToolCanvasCreate      = "canvas_create"
	ToolCanvasUpdate      = "canvas_update"

	// ToolCustom is the synthetic designator used for registry-backed ad-hoc
	// tools whose argument shape is opaque to the parser.
	ToolCustom = "custom_tool"
)

// ToolArguments is the discriminated union of typed argument records. The
// concrete type is determined by ToolCall.Name; tool execution reads only
// this field, never RawParams.
type ToolArguments interface {
	// ArgsFor returns the canonical tool name this record belongs to.
	ArgsFor() string
}

type FileReadArgs struct {
	Path   string `json:"path"`
	Offset int    `json:"offset,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

func (FileReadArgs) ArgsFor() string { return ToolFileRead }

type FileWriteArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Append  bool   `json:"append,omitempty"`
}

func (FileWriteArgs) ArgsFor() string { return ToolFileWrite }

type FileEditArgs struct {
	Path       string `json:"path"`
	OldString  string `json:"old_string"`
	NewString  string `json:"new_string"`
	ReplaceAll bool   `json:"replace_all,omitempty"`
}

func (FileEditArgs) ArgsFor() string { return ToolFileEdit }

type ListFilesArgs struct {
	Path      string `json:"path,omitempty"`
	Recursive bool   `json:"recursive,omitempty"`
}

func (ListFilesArgs) ArgsFor() string { return ToolListFiles }

type BashArgs struct {
	Command    string `json:"command"`
	Timeout    int    `json:"timeout,omitempty"`
	Background bool   `json:"background,omitempty"`
}

func (BashArgs) ArgsFor() string { return ToolBash }

type GrepArgs struct {
	Pattern         string `json:"pattern"`
	Path            string `json:"path,omitempty"`
	CaseInsensitive bool   `json:"case_insensitive,omitempty"`
}

func (GrepArgs) ArgsFor() string { return ToolGrep }

type WebSearchArgs struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

func (WebSearchArgs) ArgsFor() string { return ToolWebSearch }

type WebFetchArgs struct {
	URL    string `json:"url"`
	Format string `json:"format,omitempty"`
}

func (WebFetchArgs) ArgsFor() string { return ToolWebFetch }

type TodoUpdateArgs struct {
	Todos []string `json:"todos"`
}

func (TodoUpdateArgs) ArgsFor() string { return ToolTodoUpdate }

type ThinkArgs struct {
	Thought string `json:"thought"`
}

func (ThinkArgs) ArgsFor() string { return ToolThink }

type SubagentArgs struct {
	Task    string `json:"task"`
	Context string `json:"context,omitempty"`
}

func (SubagentArgs) ArgsFor() string { return ToolSubagent }

type BrowserNavigateArgs struct {
	URL string `json:"url"`
}

func (BrowserNavigateArgs) ArgsFor() string { return ToolBrowserNavigate }

type BrowserClickArgs struct {
	Selector string `json:"selector"`
}

func (BrowserClickArgs) ArgsFor() string { return ToolBrowserClick }

type BrowserScreenshotArgs struct {
	FullPage bool `json:"full_page,omitempty"`
}

func (BrowserScreenshotArgs) ArgsFor() string { return ToolBrowserScreenshot }

type CanvasCreateArgs struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
	Kind    string `json:"kind,omitempty"`
}

func (CanvasCreateArgs) ArgsFor() string { return ToolCanvasCreate }

type CanvasUpdateArgs struct {
	Name    string `json:"name"`
	Content string `json:"content,omitempty"`
}

func (CanvasUpdateArgs) ArgsFor() string { return ToolCanvasUpdate }

// CustomToolArgs carries the unchecked argument object of a registry-backed
// ad-hoc tool.
type CustomToolArgs struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

func (CustomToolArgs) ArgsFor() string { return ToolCustom }
