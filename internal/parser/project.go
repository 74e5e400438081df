package parser

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"callstream/internal/ports"
)

// projection declares how one static tool's untyped argument object maps onto
// its typed record. The same entry drives both the partial and the strict
// pipeline; the only strict-mode addition is required-key enforcement, which
// guarantees a live preview never contradicts the finalized shape.
type projection struct {
	required []string
	keys     []string
	build    func(g getter) ports.ToolArguments
}

var projections = map[string]projection{
	ports.ToolFileRead: {
		required: []string{"path"},
		keys:     []string{"path", "offset", "limit"},
		build: func(g getter) ports.ToolArguments {
			return ports.FileReadArgs{
				Path:   g.str("path"),
				Offset: g.num("offset"),
				Limit:  g.num("limit"),
			}
		},
	},
	ports.ToolFileWrite: {
		required: []string{"path", "content"},
		keys:     []string{"path", "content", "append"},
		build: func(g getter) ports.ToolArguments {
			return ports.FileWriteArgs{
				Path:    g.str("path"),
				Content: g.str("content"),
				Append:  g.boolean("append"),
			}
		},
	},
	ports.ToolFileEdit: {
		required: []string{"path", "old_string", "new_string"},
		keys:     []string{"path", "old_string", "new_string", "replace_all"},
		build: func(g getter) ports.ToolArguments {
			return ports.FileEditArgs{
				Path:       g.str("path"),
				OldString:  g.str("old_string"),
				NewString:  g.str("new_string"),
				ReplaceAll: g.boolean("replace_all"),
			}
		},
	},
	ports.ToolListFiles: {
		keys: []string{"path", "recursive"},
		build: func(g getter) ports.ToolArguments {
			return ports.ListFilesArgs{
				Path:      g.str("path"),
				Recursive: g.boolean("recursive"),
			}
		},
	},
	ports.ToolBash: {
		required: []string{"command"},
		keys:     []string{"command", "timeout", "background"},
		build: func(g getter) ports.ToolArguments {
			return ports.BashArgs{
				Command:    g.str("command"),
				Timeout:    g.num("timeout"),
				Background: g.boolean("background"),
			}
		},
	},
	ports.ToolGrep: {
		required: []string{"pattern"},
		keys:     []string{"pattern", "path", "case_insensitive"},
		build: func(g getter) ports.ToolArguments {
			return ports.GrepArgs{
				Pattern:         g.str("pattern"),
				Path:            g.str("path"),
				CaseInsensitive: g.boolean("case_insensitive"),
			}
		},
	},
	ports.ToolWebSearch: {
		required: []string{"query"},
		keys:     []string{"query", "max_results"},
		build: func(g getter) ports.ToolArguments {
			return ports.WebSearchArgs{
				Query:      g.str("query"),
				MaxResults: g.num("max_results"),
			}
		},
	},
	ports.ToolWebFetch: {
		required: []string{"url"},
		keys:     []string{"url", "format"},
		build: func(g getter) ports.ToolArguments {
			return ports.WebFetchArgs{
				URL:    g.str("url"),
				Format: g.str("format"),
			}
		},
	},
	ports.ToolTodoUpdate: {
		required: []string{"todos"},
		keys:     []string{"todos"},
		build: func(g getter) ports.ToolArguments {
			return ports.TodoUpdateArgs{
				Todos: g.strList("todos"),
			}
		},
	},
	ports.ToolThink: {
		required: []string{"thought"},
		keys:     []string{"thought"},
		build: func(g getter) ports.ToolArguments {
			return ports.ThinkArgs{
				Thought: g.str("thought"),
			}
		},
	},
	ports.ToolSubagent: {
		required: []string{"task"},
		keys:     []string{"task", "context"},
		build: func(g getter) ports.ToolArguments {
			return ports.SubagentArgs{
				Task:    g.str("task"),
				Context: g.str("context"),
			}
		},
	},
	ports.ToolBrowserNavigate: {
		required: []string{"url"},
		keys:     []string{"url"},
		build: func(g getter) ports.ToolArguments {
			return ports.BrowserNavigateArgs{
				URL: g.str("url"),
			}
		},
	},
	ports.ToolBrowserClick: {
		required: []string{"selector"},
		keys:     []string{"selector"},
		build: func(g getter) ports.ToolArguments {
			return ports.BrowserClickArgs{
				Selector: g.str("selector"),
			}
		},
	},
	ports.ToolBrowserScreenshot: {
		keys: []string{"full_page"},
		build: func(g getter) ports.ToolArguments {
			return ports.BrowserScreenshotArgs{
				FullPage: g.boolean("full_page"),
			}
		},
	},
	ports.ToolCanvasCreate: {
		required: []string{"name"},
		keys:     []string{"name", "content", "kind"},
		build: func(g getter) ports.ToolArguments {
			return ports.CanvasCreateArgs{
				Name:    g.str("name"),
				Content: g.str("content"),
				Kind:    g.str("kind"),
			}
		},
	},
	ports.ToolCanvasUpdate: {
		required: []string{"name"},
		keys:     []string{"name", "content"},
		build: func(g getter) ports.ToolArguments {
			return ports.CanvasUpdateArgs{
				Name:    g.str("name"),
				Content: g.str("content"),
			}
		},
	},
}

// projectArgs maps an untyped argument object onto the typed record for a
// canonical static tool name. In strict mode every required key must be
// present and non-null. The returned unknown slice lists keys outside the
// tool's parameter vocabulary, for caller-side warnings. Names without a
// table entry yield a nil record and no error; the caller decides how to
// classify them.
func projectArgs(name string, args map[string]any, strict bool) (typed ports.ToolArguments, unknown []string, err error) {
	entry, ok := projections[name]
	if !ok {
		return nil, nil, nil
	}

	if strict {
		for _, key := range entry.required {
			value, present := args[key]
			if !present || value == nil {
				return nil, nil, fmt.Errorf("%w: %s requires %q", ErrMissingArgument, name, key)
			}
		}
	}

	known := make(map[string]bool, len(entry.keys))
	for _, key := range entry.keys {
		known[key] = true
	}
	for key := range args {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	return entry.build(getter{args: args}), unknown, nil
}

// rawParamVocabulary is the fixed set of parameter names mirrored into
// ToolCall.RawParams. RawParams exist for legacy display only; execution
// reads TypedArgs.
var rawParamVocabulary = []string{
	"append", "background", "case_insensitive", "command", "content",
	"context", "format", "full_page", "kind", "limit", "max_results", "name",
	"new_string", "offset", "old_string", "path", "pattern", "query",
	"recursive", "replace_all", "selector", "task", "thought", "timeout",
	"todos", "url",
}

// buildRawParams projects the argument object onto the fixed raw-parameter
// vocabulary, string-serializing every value.
func buildRawParams(args map[string]any) map[string]string {
	if len(args) == 0 {
		return nil
	}
	params := make(map[string]string)
	for _, key := range rawParamVocabulary {
		value, ok := args[key]
		if !ok {
			continue
		}
		params[key] = stringifyParam(value)
	}
	if len(params) == 0 {
		return nil
	}
	return params
}

func stringifyParam(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}

// getter reads fields out of a decoded argument object, applying the
// projection coercions: string literals to numbers, case-insensitive
// "true"/"false" literals to booleans, and JSON-array decoding for
// list-valued string parameters. Absent or uncoercible values yield zero
// values, which partial mode renders as absent fields.
type getter struct {
	args map[string]any
}

func (g getter) str(key string) string {
	value, ok := g.args[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	default:
		return stringifyParam(v)
	}
}

func (g getter) num(key string) int {
	value, ok := g.args[key]
	if !ok {
		return 0
	}
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return int(f)
		}
	}
	return 0
}

func (g getter) boolean(key string) bool {
	value, ok := g.args[key]
	if !ok {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return false
}

func (g getter) strList(key string) []string {
	value, ok := g.args[key]
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, stringifyParam(item))
		}
		return items
	case []string:
		return v
	case string:
		var decoded []any
		if err := json.Unmarshal([]byte(v), &decoded); err == nil {
			items := make([]string, 0, len(decoded))
			for _, item := range decoded {
				items = append(items, stringifyParam(item))
			}
			return items
		}
		return []string{v}
	}
	return nil
}
