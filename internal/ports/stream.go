package ports

// RawToolCallChunk is one provider-level fragment of a streamed tool call,
// addressed by stream index because some transports send fragments before a
// call id is known.
type RawToolCallChunk struct {
	Index          int    `json:"index"`
	ID             string `json:"id,omitempty"`
	Name           string `json:"name,omitempty"`
	ArgumentsDelta string `json:"arguments_delta,omitempty"`
}

// FinishReason describes why the provider ended a stream.
type FinishReason string

const (
	FinishReasonNone      FinishReason = ""
	FinishReasonStop      FinishReason = "stop"
	FinishReasonToolCalls FinishReason = "tool_calls"
	FinishReasonLength    FinishReason = "length"
)

// ToolCallStreamCallbacks captures optional hooks invoked as tool-call
// lifecycle events are derived from raw chunks. All callbacks are optional;
// nil functions are ignored. For a single call id, Start precedes every
// Delta, and deltas are delivered in arrival order.
type ToolCallStreamCallbacks struct {
	OnToolCallStart func(id, name string)
	OnToolCallDelta func(id, text string)
	OnToolCallEnd   func(id string)

	// OnPartialToolCall receives the lenient partial preview derived after a
	// delta, when one is available. Partial records are display-only.
	OnPartialToolCall func(call ToolCall)
}
