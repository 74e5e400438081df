package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvents struct {
	starts []string
	deltas []string
	ends   []string
}

func (r *recordedEvents) emit() trackerEmit {
	return trackerEmit{
		start: func(id, name string) { r.starts = append(r.starts, id+":"+name) },
		delta: func(id, text string) { r.deltas = append(r.deltas, id+":"+text) },
		end:   func(id string) { r.ends = append(r.ends, id) },
	}
}

func TestTrackerStartRequiresIDAndName(t *testing.T) {
	tracker := newChunkTracker()
	events := &recordedEvents{}

	// No id yet: the chunk is dropped entirely.
	tracker.consume(0, "", "bash", `{"x":1}`, events.emit())
	assert.Empty(t, events.starts)
	assert.Empty(t, events.deltas)

	// Id without name: tracked, deltas buffered, still no start.
	tracker.consume(0, "c1", "", `{"a`, events.emit())
	assert.Empty(t, events.starts)
	assert.Empty(t, events.deltas)

	// Name arrives: start fires and the buffer flushes in order.
	tracker.consume(0, "", "bash", "", events.emit())
	assert.Equal(t, []string{"c1:bash"}, events.starts)
	assert.Equal(t, []string{`c1:{"a`}, events.deltas)
}

func TestTrackerImmediateStart(t *testing.T) {
	tracker := newChunkTracker()
	events := &recordedEvents{}

	tracker.consume(0, "c1", "bash", "", events.emit())
	require.Equal(t, []string{"c1:bash"}, events.starts)

	tracker.consume(0, "", "", `{"command":"ls"}`, events.emit())
	assert.Equal(t, []string{`c1:{"command":"ls"}`}, events.deltas)
}

func TestTrackerBufferedDeltaOrderPreserved(t *testing.T) {
	tracker := newChunkTracker()
	events := &recordedEvents{}

	fragments := []string{"one", "two", "three", "four"}
	tracker.consume(0, "c1", "", "", events.emit())
	for _, fragment := range fragments {
		tracker.consume(0, "", "", fragment, events.emit())
	}
	tracker.consume(0, "", "grep", "", events.emit())

	require.Len(t, events.deltas, len(fragments))
	for i, fragment := range fragments {
		assert.Equal(t, "c1:"+fragment, events.deltas[i])
	}
}

func TestTrackerIndependentIndices(t *testing.T) {
	tracker := newChunkTracker()
	events := &recordedEvents{}

	tracker.consume(0, "a", "bash", "first", events.emit())
	tracker.consume(1, "b", "grep", "second", events.emit())
	tracker.consume(0, "", "", "third", events.emit())

	assert.Equal(t, []string{"a:bash", "b:grep"}, events.starts)
	assert.Equal(t, []string{"a:first", "b:second", "a:third"}, events.deltas)
}

func TestTrackerNameArrivingAfterID(t *testing.T) {
	tracker := newChunkTracker()
	events := &recordedEvents{}

	tracker.consume(0, "c1", "", "", events.emit())
	tracker.consume(0, "", "file_read", "", events.emit())
	assert.Equal(t, []string{"c1:file_read"}, events.starts)
}

func TestTrackerIDFrozenAfterStart(t *testing.T) {
	tracker := newChunkTracker()
	events := &recordedEvents{}

	tracker.consume(0, "c1", "bash", "", events.emit())
	require.Equal(t, []string{"c1:bash"}, events.starts)

	// A conflicting id on a later chunk must not rekey the call.
	tracker.consume(0, "c2", "", `{"command":"ls"}`, events.emit())
	assert.Equal(t, []string{`c1:{"command":"ls"}`}, events.deltas)

	tracker.finishToolCalls(events.emit())
	assert.Equal(t, []string{"c1"}, events.ends)
}

func TestTrackerFinishToolCallsSkipsUnstarted(t *testing.T) {
	tracker := newChunkTracker()
	events := &recordedEvents{}

	tracker.consume(0, "started", "bash", "", events.emit())
	tracker.consume(1, "nameless", "", "buffered", events.emit())

	tracker.finishToolCalls(events.emit())
	assert.Equal(t, []string{"started"}, events.ends)

	// A second finish signal does not re-emit ends.
	tracker.finishToolCalls(events.emit())
	assert.Equal(t, []string{"started"}, events.ends)
}

func TestTrackerFinalizeEmitsRemainingEndsAndClears(t *testing.T) {
	tracker := newChunkTracker()
	events := &recordedEvents{}

	tracker.consume(0, "a", "bash", "", events.emit())
	tracker.consume(1, "b", "grep", "", events.emit())
	tracker.finishToolCalls(events.emit())
	require.Equal(t, []string{"a", "b"}, events.ends)

	tracker.finalize(events.emit())
	// Already-ended indices do not double-emit; state is cleared.
	assert.Equal(t, []string{"a", "b"}, events.ends)
	assert.Empty(t, tracker.entries)

	// After clearing, the same index starts fresh.
	tracker.consume(0, "c", "bash", "", events.emit())
	assert.Contains(t, events.starts, "c:bash")
}

func TestTrackerFinalizeSkipsNeverStarted(t *testing.T) {
	tracker := newChunkTracker()
	events := &recordedEvents{}

	tracker.consume(0, "nameless", "", "buffered", events.emit())
	tracker.finalize(events.emit())
	assert.Empty(t, events.ends)
	assert.Empty(t, tracker.entries)
}
