package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"callstream/internal/llm"
	"callstream/internal/observability"
	"callstream/internal/parser"
	"callstream/internal/ports"
)

// replayRun accumulates finalized calls for the closing JSON report while the
// live event stream is rendered as it arrives.
type replayRun struct {
	out          io.Writer
	showPartials bool

	finalized []*ports.FinalizedToolCall
	failures  map[string]error
	order     []string
}

func newReplayCommand(configPath *string) *cobra.Command {
	var showPartials bool
	var showContent bool

	cmd := &cobra.Command{
		Use:   "replay [transcript]",
		Short: "Replay a recorded provider stream through the parser",
		Long: "Replay reads a recorded SSE transcript (a file, or stdin when no " +
			"argument is given), feeds every tool-call chunk through the streaming " +
			"parser, renders the call lifecycle live, and prints the finalized " +
			"calls as JSON.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, registry, err := buildEnvironment(*configPath)
			if err != nil {
				return err
			}

			input := io.ReadCloser(os.Stdin)
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open transcript: %w", err)
				}
				input = f
			}
			defer input.Close()

			requestID := uuid.NewString()
			logger.Info("replay %s starting", requestID)

			run := &replayRun{
				out:          cmd.OutOrStdout(),
				showPartials: showPartials,
				failures:     map[string]error{},
			}

			var p *parser.Parser
			p = parser.New(registry,
				parser.WithLogger(logger),
				parser.WithMetrics(observability.NewParserMetrics()),
				parser.WithCallbacks(ports.ToolCallStreamCallbacks{
					OnToolCallStart:   run.onStart,
					OnToolCallDelta:   run.onDelta,
					OnPartialToolCall: run.onPartial,
					OnToolCallEnd: func(id string) {
						run.onEnd(id)
						final, err := p.Finalize(id)
						if err != nil {
							run.failures[id] = err
							return
						}
						if final != nil {
							run.finalized = append(run.finalized, final)
						}
					},
				}))

			events := llm.StreamEvents{
				OnFinish: func(reason ports.FinishReason) {
					logger.Debug("replay %s finish reason: %s", requestID, reason)
				},
			}
			if showContent {
				events.OnContent = func(text string) {
					fmt.Fprint(cmd.OutOrStdout(), text)
				}
			}
			reader := llm.NewReader(p, events, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			done := make(chan struct{})
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				defer close(done)
				return reader.Read(input)
			})
			g.Go(func() error {
				select {
				case <-ctx.Done():
					input.Close()
					return ctx.Err()
				case <-done:
					return nil
				}
			})
			if err := g.Wait(); err != nil {
				return fmt.Errorf("replay %s: %w", requestID, err)
			}

			return run.report()
		},
	}
	cmd.Flags().BoolVar(&showPartials, "partials", false, "render partial previews as deltas arrive")
	cmd.Flags().BoolVar(&showContent, "content", false, "echo assistant text content to stdout")
	return cmd
}

var (
	startColor   = color.New(color.FgGreen, color.Bold)
	deltaColor   = color.New(color.Faint)
	endColor     = color.New(color.FgCyan)
	failColor    = color.New(color.FgRed, color.Bold)
	partialColor = color.New(color.FgYellow)
)

func (r *replayRun) onStart(id, name string) {
	r.order = append(r.order, id)
	startColor.Fprintf(r.out, "▶ %s", name)
	fmt.Fprintf(r.out, "  (%s)\n", id)
}

func (r *replayRun) onDelta(id, text string) {
	deltaColor.Fprintf(r.out, "  + %s: %d bytes\n", id, len(text))
}

func (r *replayRun) onPartial(call ports.ToolCall) {
	if !r.showPartials {
		return
	}
	preview, err := json.Marshal(call.RawParams)
	if err != nil {
		return
	}
	partialColor.Fprintf(r.out, "  ~ %s %s\n", call.Name, preview)
}

func (r *replayRun) onEnd(id string) {
	endColor.Fprintf(r.out, "■ %s done\n", id)
}

// report prints the finalized calls as an indented JSON array, then any
// per-call failures. Failures do not abort the replay; they surface here and
// in the exit status.
func (r *replayRun) report() error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.finalized); err != nil {
		return err
	}

	if len(r.failures) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.failures))
	for id := range r.failures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		failColor.Fprintf(r.out, "✗ %s: %v\n", id, r.failures[id])
	}
	return fmt.Errorf("%d tool call(s) failed to finalize", len(r.failures))
}
