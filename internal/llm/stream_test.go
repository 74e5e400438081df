package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"callstream/internal/parser"
	"callstream/internal/ports"
	"callstream/internal/toolregistry"
)

type fakeConsumer struct {
	chunks    []ports.RawToolCallChunk
	finishes  []ports.FinishReason
	finalized int
}

func (f *fakeConsumer) ConsumeRawChunk(chunk ports.RawToolCallChunk) {
	f.chunks = append(f.chunks, chunk)
}

func (f *fakeConsumer) SignalFinish(reason ports.FinishReason) {
	f.finishes = append(f.finishes, reason)
}

func (f *fakeConsumer) FinalizeStream() {
	f.finalized++
}

const sampleStream = `data: {"choices":[{"index":0,"delta":{"role":"assistant","content":"Let me check."}}]}

data: {"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"id":"call_1","type":"function","function":{"name":"browser_navigate","arguments":""}}]}}]}

data: {"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"arguments":"{\"ur"}}]}}]}

data: {"choices":[{"index":0,"delta":{"tool_calls":[{"index":0,"function":{"arguments":"l\":\"http://x\"}"}}]}}]}

data: {"choices":[{"index":0,"delta":{},"finish_reason":"tool_calls"}]}

data: [DONE]
`

func TestReaderExtractsChunks(t *testing.T) {
	consumer := &fakeConsumer{}
	var content strings.Builder

	reader := NewReader(consumer, StreamEvents{
		OnContent: func(text string) { content.WriteString(text) },
	}, nil)
	require.NoError(t, reader.Read(strings.NewReader(sampleStream)))

	assert.Equal(t, "Let me check.", content.String())
	require.Len(t, consumer.chunks, 3)
	assert.Equal(t, "call_1", consumer.chunks[0].ID)
	assert.Equal(t, "browser_navigate", consumer.chunks[0].Name)
	assert.Equal(t, `{"ur`, consumer.chunks[1].ArgumentsDelta)
	assert.Equal(t, `l":"http://x"}`, consumer.chunks[2].ArgumentsDelta)
	assert.Equal(t, []ports.FinishReason{ports.FinishReasonToolCalls}, consumer.finishes)
	assert.Equal(t, 1, consumer.finalized)
}

func TestReaderSkipsMalformedPayloads(t *testing.T) {
	consumer := &fakeConsumer{}
	reader := NewReader(consumer, StreamEvents{}, nil)

	stream := "data: {not json}\n\ndata: [DONE]\n"
	require.NoError(t, reader.Read(strings.NewReader(stream)))
	assert.Empty(t, consumer.chunks)
	assert.Equal(t, 1, consumer.finalized)
}

func TestReaderDrivesParserEndToEnd(t *testing.T) {
	registry := toolregistry.NewRegistry(nil)

	var finals []*ports.FinalizedToolCall
	var p *parser.Parser
	p = parser.New(registry, parser.WithCallbacks(ports.ToolCallStreamCallbacks{
		OnToolCallEnd: func(id string) {
			final, err := p.Finalize(id)
			require.NoError(t, err)
			finals = append(finals, final)
		},
	}))

	reader := NewReader(p, StreamEvents{}, nil)
	require.NoError(t, reader.Read(strings.NewReader(sampleStream)))

	require.Len(t, finals, 1)
	require.NotNil(t, finals[0].Tool)
	assert.Equal(t, "call_1", finals[0].Tool.ID)
	assert.Equal(t, ports.ToolBrowserNavigate, finals[0].Tool.Name)
	args, ok := finals[0].Tool.TypedArgs.(ports.BrowserNavigateArgs)
	require.True(t, ok)
	assert.Equal(t, "http://x", args.URL)
}

func TestMapFinishReason(t *testing.T) {
	assert.Equal(t, ports.FinishReasonToolCalls, mapFinishReason("tool_calls"))
	assert.Equal(t, ports.FinishReasonToolCalls, mapFinishReason("function_call"))
	assert.Equal(t, ports.FinishReasonStop, mapFinishReason("stop"))
	assert.Equal(t, ports.FinishReasonLength, mapFinishReason("length"))
	assert.Equal(t, ports.FinishReason("other"), mapFinishReason("other"))
}
