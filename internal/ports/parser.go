package ports

// StreamingToolCallParser converts incremental provider output into typed,
// validated tool invocations. All state is scoped to one active provider
// request; Reset must be called at every request boundary.
type StreamingToolCallParser interface {
	// Begin registers a new in-flight call. Calling Begin twice for the same
	// id overwrites the previous registration. When id is empty a fallback id
	// is generated; the effective id is returned.
	Begin(id, name string) string

	// AppendDelta appends a text fragment to the call's accumulated argument
	// text and attempts a lenient partial decode. It returns a Partial=true
	// preview when one is derivable and nil otherwise; nil is "no update
	// yet", never an error.
	AppendDelta(id, fragment string) *ToolCall

	// Finalize strictly parses the accumulated text and produces the
	// immutable completed record, or an error terminal to this call id. The
	// call's state is deleted regardless of outcome. An unknown id yields
	// (nil, nil).
	Finalize(id string) (*FinalizedToolCall, error)

	// Reset clears all in-flight state for a new provider request.
	Reset()
}
