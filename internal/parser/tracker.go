package parser

// chunkTracking is the per-stream-index state used while reassembling raw
// provider chunks into ordered start/delta/end lifecycle events. Indices are
// a distinct key space from call ids: some transports address calls by
// position before an id is known.
type chunkTracking struct {
	id      string
	name    string
	started bool
	ended   bool

	// deltaBuffer holds argument fragments that arrived before the name was
	// known. It is flushed, in arrival order, the moment a start event can be
	// emitted.
	deltaBuffer []string
}

// chunkTracker reassembles index-addressed raw chunks. Events are delivered
// through emit callbacks supplied per call so the tracker itself stays free
// of downstream dependencies.
type chunkTracker struct {
	entries map[int]*chunkTracking
	order   []int
}

func newChunkTracker() *chunkTracker {
	return &chunkTracker{entries: make(map[int]*chunkTracking)}
}

// trackerEmit receives lifecycle events derived from raw chunks.
type trackerEmit struct {
	start func(id, name string)
	delta func(id, text string)
	end   func(id string)
}

// consume ingests one raw chunk. Chunks for an index with no id yet are
// dropped; argument fragments seen before a start are buffered so ordering is
// preserved across the start boundary.
func (t *chunkTracker) consume(index int, id, name, argumentsDelta string, emit trackerEmit) {
	entry, tracked := t.entries[index]
	if !tracked {
		if id == "" {
			// Degenerate transport: nothing to key the call on yet.
			return
		}
		entry = &chunkTracking{id: id, name: name}
		t.entries[index] = entry
		t.order = append(t.order, index)
	} else {
		// The id is frozen once the start event fired; downstream state is
		// keyed on it, so a late id change would orphan the call.
		if id != "" && !entry.started {
			entry.id = id
		}
		if name != "" {
			// Some providers send the id first and the name on a later chunk.
			entry.name = name
		}
	}

	if argumentsDelta != "" {
		if entry.started {
			emit.delta(entry.id, argumentsDelta)
		} else {
			entry.deltaBuffer = append(entry.deltaBuffer, argumentsDelta)
		}
	}

	t.maybeStart(entry, emit)
}

// maybeStart emits the start event and flushes buffered deltas once a tracked
// entry has a name.
func (t *chunkTracker) maybeStart(entry *chunkTracking, emit trackerEmit) {
	if entry.started || entry.name == "" {
		return
	}
	entry.started = true
	emit.start(entry.id, entry.name)
	for _, fragment := range entry.deltaBuffer {
		emit.delta(entry.id, fragment)
	}
	entry.deltaBuffer = nil
}

// finishToolCalls handles the provider's finish-reason=tool_calls signal,
// emitting one end event per started index. Indices that never started (no
// name ever arrived) are skipped: an end without a start would be a no-op
// downstream, so it is suppressed at the source.
func (t *chunkTracker) finishToolCalls(emit trackerEmit) {
	for _, index := range t.order {
		entry := t.entries[index]
		if entry == nil || !entry.started || entry.ended {
			continue
		}
		entry.ended = true
		emit.end(entry.id)
	}
}

// finalize handles the hard end of a stream: end events for started indices
// that have not yet ended, then all tracking state is cleared.
func (t *chunkTracker) finalize(emit trackerEmit) {
	for _, index := range t.order {
		entry := t.entries[index]
		if entry == nil || !entry.started || entry.ended {
			continue
		}
		entry.ended = true
		emit.end(entry.id)
	}
	t.reset()
}

func (t *chunkTracker) reset() {
	t.entries = make(map[int]*chunkTracking)
	t.order = nil
}
