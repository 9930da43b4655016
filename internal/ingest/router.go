// Package ingest receives content shared into the application, holds it in
// a single pending slot while the user reviews it, and places it into the
// note collections.
package ingest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ingenium-notes/ingenium/internal/collection"
	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/mutate"
)

// SharedContentTitle is the fixed label for notes created from incoming
// content that carries no title hint.
const SharedContentTitle = "Shared Content"

// Separator sits between existing note content and appended incoming
// content.
const Separator = "\n\n---\n"

// ErrNoPending reports a placement call with no incoming content to place.
var ErrNoPending = errors.New("no pending incoming content")

// Router owns the pending incoming-content slot and the one-shot delivery
// latch. The latch is centralized here rather than duplicated per delivery
// source, so a share event and a deep link cannot double-deliver within the
// same foreground session; Reset releases it when a new session begins.
type Router struct {
	mu        sync.Mutex
	col       *collection.Collection
	queue     *mutate.Queue
	log       zerolog.Logger
	received  bool
	reviewing bool
	pending   Incoming
}

func NewRouter(col *collection.Collection, queue *mutate.Queue, log zerolog.Logger) *Router {
	return &Router{
		col:   col,
		queue: queue,
		log:   log.With().Str("component", "ingest").Logger(),
	}
}

// Receive stores the normalized delivery in the pending slot and flips the
// application into reviewing mode. It reports whether the delivery was
// accepted: blank content and duplicate deliveries within one session are
// dropped. Invoked from the event loop only.
func (r *Router) Receive(inc Incoming) bool {
	if strings.TrimSpace(inc.Content) == "" {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.received {
		r.log.Debug().Msg("duplicate delivery dropped by session latch")
		return false
	}
	r.received = true
	r.reviewing = true
	r.pending = inc
	return true
}

// Reviewing reports whether the application is in the
// reviewing-incoming-content mode.
func (r *Router) Reviewing() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reviewing
}

// Pending returns the held incoming content, if any.
func (r *Router) Pending() (Incoming, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending, r.reviewing
}

// Reset releases the one-shot latch and drops any unplaced content. Called
// when a new foreground session begins.
func (r *Router) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = false
	r.reviewing = false
	r.pending = Incoming{}
}

// SaveAsNewNote places the pending content as a new note in folderID (nil
// for root). The note title comes from the delivery's title hint when one
// exists, otherwise the fixed shared-content label. On success the pending
// slot is cleared and reviewing mode ends.
func (r *Router) SaveAsNewNote(ctx context.Context, folderID *string) (models.Note, error) {
	r.mu.Lock()
	if !r.reviewing {
		r.mu.Unlock()
		return models.Note{}, ErrNoPending
	}
	inc := r.pending
	r.mu.Unlock()

	note := models.NewNote(folderID)
	if inc.Title != "" {
		note.Title = strings.TrimSpace(inc.Title)
	} else {
		note.Title = SharedContentTitle
	}
	note.Content = inc.Content

	if err := r.col.InsertNote(ctx, note); err != nil {
		return note, err
	}

	r.clear()
	return note, nil
}

// AppendToExisting appends the pending content to the note with noteID,
// separated from non-empty existing content by the separator. Unknown ids
// fail without mutating anything and without clearing the pending slot. The
// write goes through the immediate-save path, not the debounce queue.
func (r *Router) AppendToExisting(ctx context.Context, noteID string) (models.Note, error) {
	r.mu.Lock()
	if !r.reviewing {
		r.mu.Unlock()
		return models.Note{}, ErrNoPending
	}
	inc := r.pending
	r.mu.Unlock()

	note, ok := r.col.Note(noteID)
	if !ok {
		return models.Note{}, collection.ErrNoteMissing
	}

	content := inc.Content
	if note.Content != "" {
		content = note.Content + Separator + inc.Content
	}

	updated, err := r.queue.UpdateImmediate(ctx, noteID, models.NotePatch{
		Content: models.StrPtr(content),
	})
	if err != nil {
		return updated, err
	}

	r.clear()
	return updated, nil
}

// clear empties the pending slot and leaves reviewing mode. The session
// latch stays set until Reset.
func (r *Router) clear() {
	r.mu.Lock()
	r.pending = Incoming{}
	r.reviewing = false
	r.mu.Unlock()
}
