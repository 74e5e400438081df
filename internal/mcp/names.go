// Package mcp implements naming for dynamically registered external tools.
//
// External tools are addressed as "mcp--<server>--<tool>". Some models cannot
// emit the canonical separator and send "mcp__<server>__<tool>" instead;
// Normalize rewrites that variant before parsing.
package mcp

import "strings"

const (
	// Prefix marks a tool name as dynamically named.
	Prefix = "mcp"

	// Separator is the canonical component separator.
	Separator = "--"

	// altSeparator is the variant emitted by models that cannot produce the
	// canonical separator.
	altSeparator = "__"
)

var (
	canonicalPrefix = Prefix + Separator
	altPrefix       = Prefix + altSeparator
)

// ToolName is a parsed dynamic tool name.
type ToolName struct {
	Server string
	Tool   string
}

// IsDynamic reports whether name carries the reserved dynamic-tool prefix,
// in either separator variant.
func IsDynamic(name string) bool {
	return strings.HasPrefix(name, canonicalPrefix) || strings.HasPrefix(name, altPrefix)
}

// Normalize rewrites the alternate separator variant into canonical form.
// Names without the dynamic prefix are returned unchanged.
func Normalize(name string) string {
	if !strings.HasPrefix(name, altPrefix) {
		return name
	}
	return strings.ReplaceAll(name, altSeparator, Separator)
}

// Parse splits a canonical dynamic name into its server and tool components.
// It returns nil unless the name has exactly two non-empty components after
// the prefix; callers must treat nil as a hard parse failure.
func Parse(name string) *ToolName {
	if !strings.HasPrefix(name, canonicalPrefix) {
		return nil
	}
	parts := strings.Split(name[len(canonicalPrefix):], Separator)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil
	}
	return &ToolName{Server: parts[0], Tool: parts[1]}
}

// Format builds the canonical dynamic name for a server/tool pair.
func Format(server, tool string) string {
	return canonicalPrefix + server + Separator + tool
}
