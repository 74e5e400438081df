// Package parser converts an LLM provider's incremental tool-call output into
// typed, validated tool invocations. It tolerates fragmented and truncated
// argument text while streaming, multiplexes concurrent in-flight calls, and
// performs a strict finalization pass per call.
//
// All state is scoped to one active provider request. The surrounding
// orchestration must call Reset at every request boundary, including after an
// abnormal end of the previous request.
package parser

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"callstream/internal/logging"
	"callstream/internal/mcp"
	"callstream/internal/observability"
	"callstream/internal/ports"
)

// streamingCall is the per-id state of one in-flight tool call. The
// accumulated text is append-only; fragments are applied in arrival order.
type streamingCall struct {
	id          string
	name        string
	accumulated strings.Builder
}

// Parser owns the streaming-call and raw-chunk state maps. It is not safe for
// concurrent use; the transport layer drives it from a single goroutine.
type Parser struct {
	resolver  ports.NameResolver
	logger    logging.Logger
	metrics   *observability.ParserMetrics
	callbacks ports.ToolCallStreamCallbacks

	calls   map[string]*streamingCall
	tracker *chunkTracker
}

var _ ports.StreamingToolCallParser = (*Parser)(nil)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the parser's logger.
func WithLogger(logger logging.Logger) Option {
	return func(p *Parser) { p.logger = logging.OrNop(logger) }
}

// WithMetrics attaches a prometheus recorder. Nil disables instrumentation.
func WithMetrics(metrics *observability.ParserMetrics) Option {
	return func(p *Parser) { p.metrics = metrics }
}

// WithCallbacks sets the lifecycle hooks invoked while consuming raw chunks.
func WithCallbacks(callbacks ports.ToolCallStreamCallbacks) Option {
	return func(p *Parser) { p.callbacks = callbacks }
}

// New builds a parser bound to a name resolver.
func New(resolver ports.NameResolver, opts ...Option) *Parser {
	p := &Parser{
		resolver: resolver,
		logger:   logging.Nop(),
		calls:    make(map[string]*streamingCall),
		tracker:  newChunkTracker(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Begin registers a new in-flight call with empty accumulated text. A second
// Begin for the same id overwrites the first; duplicate start signals from
// providers are tolerated this way. When id is empty a fallback id is
// generated, mirroring how complete provider responses with missing ids are
// handled. The effective id is returned.
func (p *Parser) Begin(id, name string) string {
	if id == "" {
		id = "call_" + uuid.NewString()
		p.logger.Warn("missing id for tool %q, generated %s", name, id)
	}
	p.calls[id] = &streamingCall{id: id, name: name}
	return id
}

// AppendDelta appends a fragment to the call's accumulated text and attempts
// a lenient partial decode. Nil means "no update yet", never an error. For
// dynamically named external tools partial decoding is suppressed entirely.
func (p *Parser) AppendDelta(id, fragment string) *ports.ToolCall {
	entry, ok := p.calls[id]
	if !ok {
		p.logger.Warn("delta for unknown call id %q dropped", id)
		p.metrics.RecordUnknownCallID()
		return nil
	}

	entry.accumulated.WriteString(fragment)

	if mcp.IsDynamic(entry.name) {
		return nil
	}

	args, repaired, ok := decodeLenient(entry.accumulated.String())
	if !ok {
		p.metrics.RecordPartialMiss()
		return nil
	}
	if repaired {
		p.metrics.RecordRepair()
	}

	p.metrics.RecordPartialDecode()
	call := p.buildPartial(entry, args)
	return &call
}

func (p *Parser) buildPartial(entry *streamingCall, args map[string]any) ports.ToolCall {
	resolved := p.resolver.Resolve(entry.name)

	call := ports.ToolCall{
		ID:        entry.id,
		Name:      resolved,
		RawParams: buildRawParams(args),
		Partial:   true,
	}
	if resolved != entry.name {
		call.OriginalName = entry.name
	}

	if p.resolver.IsCustom(resolved) {
		call.Name = ports.ToolCustom
		call.OriginalName = entry.name
		call.TypedArgs = ports.CustomToolArgs{Name: resolved, Arguments: args}
		return call
	}

	// Partial mode never fails: it populates whatever fields are derivable.
	typed, _, _ := projectArgs(resolved, args, false)
	call.TypedArgs = typed
	return call
}

// Finalize strictly parses the call's accumulated text and emits the
// immutable completed record. The call's state is deleted regardless of
// outcome; errors are terminal for this id only. An unknown (or already
// finalized) id yields (nil, nil).
func (p *Parser) Finalize(id string) (*ports.FinalizedToolCall, error) {
	entry, ok := p.calls[id]
	if !ok {
		p.logger.Warn("finalize for unknown call id %q ignored", id)
		p.metrics.RecordUnknownCallID()
		return nil, nil
	}
	delete(p.calls, id)

	args, err := decodeStrict(entry.accumulated.String())
	if err != nil {
		p.logger.Error("call %s: arguments unparseable: %v", id, err)
		p.metrics.RecordFinalizeFailure("malformed_arguments")
		return nil, fmt.Errorf("%w: call %s: %v", ErrMalformedArguments, id, err)
	}

	normalized := mcp.Normalize(entry.name)
	if mcp.IsDynamic(normalized) {
		parsed := mcp.Parse(normalized)
		if parsed == nil {
			p.metrics.RecordFinalizeFailure("malformed_name")
			return nil, fmt.Errorf("%w: %q", ErrMalformedName, entry.name)
		}
		p.metrics.RecordFinalized(ports.NameDynamicExternal.String())
		return &ports.FinalizedToolCall{MCP: &ports.MCPToolCall{
			ID:        entry.id,
			Name:      entry.name,
			Server:    parsed.Server,
			ToolName:  parsed.Tool,
			Arguments: args,
		}}, nil
	}

	resolved := p.resolver.Resolve(entry.name)
	switch p.resolver.Classify(resolved) {
	case ports.NameStatic:
		// handled below
	default:
		p.metrics.RecordFinalizeFailure("unknown_tool")
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, entry.name)
	}

	call := ports.ToolCall{
		ID:        entry.id,
		Name:      resolved,
		RawParams: buildRawParams(args),
	}
	if resolved != entry.name {
		call.OriginalName = entry.name
	}

	if p.resolver.IsCustom(resolved) {
		// Custom-tool arguments are opaque to this layer: no required-field
		// enforcement and no unknown-parameter warnings.
		call.Name = ports.ToolCustom
		call.OriginalName = entry.name
		call.TypedArgs = ports.CustomToolArgs{Name: resolved, Arguments: args}
		p.metrics.RecordFinalized("custom")
		return &ports.FinalizedToolCall{Tool: &call}, nil
	}

	typed, unknown, err := projectArgs(resolved, args, true)
	if err != nil {
		p.metrics.RecordFinalizeFailure("missing_argument")
		return nil, fmt.Errorf("call %s: %w", id, err)
	}
	if len(unknown) > 0 {
		p.logger.Warn("call %s: tool %s received unknown parameters %v", id, resolved, unknown)
	}
	call.TypedArgs = typed
	p.metrics.RecordFinalized(ports.NameStatic.String())
	return &ports.FinalizedToolCall{Tool: &call}, nil
}

// Reset clears all streaming-call and raw-chunk state. It must be called at
// the start of every provider request.
func (p *Parser) Reset() {
	p.calls = make(map[string]*streamingCall)
	p.tracker.reset()
}

// ConsumeRawChunk feeds one index-addressed provider chunk through the raw
// chunk tracker. Derived start events register the call, delta events extend
// its accumulated text, and both are forwarded to the configured callbacks
// along with any partial preview.
func (p *Parser) ConsumeRawChunk(chunk ports.RawToolCallChunk) {
	p.tracker.consume(chunk.Index, chunk.ID, chunk.Name, chunk.ArgumentsDelta, p.emit())
}

// SignalFinish handles the provider's finish-reason signal. Only
// finish-reason=tool_calls produces end events.
func (p *Parser) SignalFinish(reason ports.FinishReason) {
	if reason != ports.FinishReasonToolCalls {
		return
	}
	p.tracker.finishToolCalls(p.emit())
}

// FinalizeStream handles the hard end of the provider stream: end events for
// any started-but-unfinished indices, then the raw-chunk state is cleared.
func (p *Parser) FinalizeStream() {
	p.tracker.finalize(p.emit())
}

func (p *Parser) emit() trackerEmit {
	return trackerEmit{
		start: func(id, name string) {
			p.Begin(id, name)
			if p.callbacks.OnToolCallStart != nil {
				p.callbacks.OnToolCallStart(id, name)
			}
		},
		delta: func(id, text string) {
			partial := p.AppendDelta(id, text)
			if p.callbacks.OnToolCallDelta != nil {
				p.callbacks.OnToolCallDelta(id, text)
			}
			if partial != nil && p.callbacks.OnPartialToolCall != nil {
				p.callbacks.OnPartialToolCall(*partial)
			}
		},
		end: func(id string) {
			if p.callbacks.OnToolCallEnd != nil {
				p.callbacks.OnToolCallEnd(id)
			}
		},
	}
}
