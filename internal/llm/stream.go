// Package llm adapts OpenAI-style chat completion streams to the tool-call
// parser. It understands the SSE framing and the SDK's chunk schema; all
// tool-call semantics live downstream in internal/parser.
package llm

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"callstream/internal/logging"
	"callstream/internal/ports"
)

// ChunkConsumer receives the provider events extracted from a stream. The
// parser implements it.
type ChunkConsumer interface {
	ConsumeRawChunk(chunk ports.RawToolCallChunk)
	SignalFinish(reason ports.FinishReason)
	FinalizeStream()
}

// StreamEvents captures optional hooks for non-tool-call stream content. All
// callbacks are optional; nil functions are ignored.
type StreamEvents struct {
	OnContent func(text string)
	OnFinish  func(reason ports.FinishReason)
}

// Reader pumps an SSE chat completion stream into a chunk consumer.
type Reader struct {
	consumer ChunkConsumer
	events   StreamEvents
	logger   logging.Logger
}

// NewReader builds a stream reader bound to a consumer.
func NewReader(consumer ChunkConsumer, events StreamEvents, logger logging.Logger) *Reader {
	return &Reader{
		consumer: consumer,
		events:   events,
		logger:   logging.OrNop(logger),
	}
}

// Read consumes SSE lines until [DONE] or EOF, forwarding tool-call chunks
// and finish-reason signals, then hard-finalizes the stream. Undecodable
// chunk payloads are logged and skipped; they are a transport concern, not a
// per-call failure.
func (r *Reader) Read(input io.Reader) error {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 2*1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || !strings.HasPrefix(line, "data:") {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if payload == "" {
			continue
		}
		if payload == "[DONE]" {
			break
		}

		var chunk openai.ChatCompletionStreamResponse
		if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
			r.logger.Debug("failed to decode stream chunk: %v", err)
			continue
		}
		r.handleChunk(chunk)
	}

	if err := scanner.Err(); err != nil {
		r.consumer.FinalizeStream()
		return fmt.Errorf("read response stream: %w", err)
	}

	r.consumer.FinalizeStream()
	return nil
}

func (r *Reader) handleChunk(chunk openai.ChatCompletionStreamResponse) {
	if len(chunk.Choices) == 0 {
		return
	}
	choice := chunk.Choices[0]

	if text := choice.Delta.Content; text != "" && r.events.OnContent != nil {
		r.events.OnContent(text)
	}

	for _, tc := range choice.Delta.ToolCalls {
		index := 0
		if tc.Index != nil {
			index = *tc.Index
		}
		r.consumer.ConsumeRawChunk(ports.RawToolCallChunk{
			Index:          index,
			ID:             tc.ID,
			Name:           tc.Function.Name,
			ArgumentsDelta: tc.Function.Arguments,
		})
	}

	if choice.FinishReason != "" {
		reason := mapFinishReason(choice.FinishReason)
		r.consumer.SignalFinish(reason)
		if r.events.OnFinish != nil {
			r.events.OnFinish(reason)
		}
	}
}

func mapFinishReason(reason openai.FinishReason) ports.FinishReason {
	switch reason {
	case openai.FinishReasonToolCalls, openai.FinishReasonFunctionCall:
		return ports.FinishReasonToolCalls
	case openai.FinishReasonLength:
		return ports.FinishReasonLength
	case openai.FinishReasonStop:
		return ports.FinishReasonStop
	default:
		return ports.FinishReason(reason)
	}
}
