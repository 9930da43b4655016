// Package mutate implements the debounced mutation queue that coalesces
// rapid note edits into infrequent durable writes. The in-memory collection
// is patched immediately on every call, so readers never see stale values;
// only the durable write is deferred.
//
// A single shared timer multiplexes all notes: every QueueUpdate re-arms it,
// so an edit to one note delays the pending flush of every other note by at
// most one debounce window. That latency trade-off is deliberate and pinned
// by the package tests; callers must Flush (or Close) before teardown so the
// last window's edits are not lost.
package mutate

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ingenium-notes/ingenium/internal/collection"
	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/store"
)

// DefaultInterval is the debounce window between the most recent edit and
// the coalesced durable write.
const DefaultInterval = 500 * time.Millisecond

type Queue struct {
	mu       sync.Mutex
	col      *collection.Collection
	store    store.Store
	interval time.Duration
	pending  map[string]models.NotePatch
	timer    *time.Timer
	flushing bool
	log      zerolog.Logger
}

func NewQueue(col *collection.Collection, st store.Store, interval time.Duration, log zerolog.Logger) *Queue {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Queue{
		col:      col,
		store:    st,
		interval: interval,
		pending:  make(map[string]models.NotePatch),
		log:      log.With().Str("component", "mutate").Logger(),
	}
}

// QueueUpdate merges the patch into the in-memory note right away and
// buffers it for the next flush, last writer wins per field. The shared
// timer is re-armed on every call. Unknown ids are a no-op.
//
// The returned note is the merged in-memory record, so callers can render
// the new value on the same turn.
func (q *Queue) QueueUpdate(id string, patch models.NotePatch) (models.Note, bool) {
	merged, ok := q.col.ApplyNotePatch(id, patch)
	if !ok {
		return models.Note{}, false
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if existing, ok := q.pending[id]; ok {
		existing.Merge(patch)
		q.pending[id] = existing
	} else {
		q.pending[id] = patch
	}

	if q.timer != nil {
		q.timer.Stop()
	}
	q.timer = time.AfterFunc(q.interval, func() {
		if err := q.Flush(context.Background()); err != nil {
			q.log.Error().Err(err).Msg("debounced flush failed")
		}
	})

	return merged, true
}

// Flush durably persists every pending coalesced edit. It is safe to call
// at any time: a flush already in progress or an empty pending map makes it
// a no-op, and updates queued while a flush runs start a fresh batch.
//
// Notes deleted between queuing and flush are silently skipped. A failed
// save is logged and reported but never re-queued; the in-memory record
// keeps the attempted value either way.
func (q *Queue) Flush(ctx context.Context) error {
	q.mu.Lock()
	if q.flushing || len(q.pending) == 0 {
		q.mu.Unlock()
		return nil
	}
	q.flushing = true
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	batch := q.pending
	q.pending = make(map[string]models.NotePatch)
	q.mu.Unlock()

	var firstErr error
	for id, patch := range batch {
		merged, ok := q.col.ApplyNotePatch(id, patch)
		if !ok {
			// Deleted while queued; nothing to persist.
			continue
		}
		if err := q.store.SaveNote(ctx, merged); err != nil {
			q.log.Error().Err(err).Str("note", id).Msg("save note failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	q.mu.Lock()
	q.flushing = false
	q.mu.Unlock()
	return firstErr
}

// UpdateImmediate applies a patch and persists it synchronously, for
// mutations that must be durable right away (folder moves, programmatic
// field changes). Any pending entry for the note is superseded, and the
// shared timer stops when the pending map empties as a result.
func (q *Queue) UpdateImmediate(ctx context.Context, id string, patch models.NotePatch) (models.Note, error) {
	q.mu.Lock()
	delete(q.pending, id)
	if len(q.pending) == 0 && q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.mu.Unlock()

	merged, ok := q.col.ApplyNotePatch(id, patch)
	if !ok {
		return models.Note{}, collection.ErrNoteMissing
	}

	if err := q.store.SaveNote(ctx, merged); err != nil {
		q.log.Error().Err(err).Str("note", id).Msg("immediate save failed")
		return merged, err
	}
	return merged, nil
}

// Pending reports how many notes have buffered edits, for instrumentation.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Close performs the final unconditional flush required before teardown and
// stops the shared timer.
func (q *Queue) Close(ctx context.Context) error {
	err := q.Flush(ctx)

	q.mu.Lock()
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.mu.Unlock()
	return err
}
