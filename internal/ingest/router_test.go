package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ingenium-notes/ingenium/internal/collection"
	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/mutate"
	"github.com/ingenium-notes/ingenium/internal/store/memory"
)

func newTestRouter(t *testing.T) (*collection.Collection, *Router) {
	t.Helper()

	st := memory.New()
	col := collection.New(st, zerolog.Nop())
	if err := col.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	queue := mutate.NewQueue(col, st, time.Minute, zerolog.Nop())
	return col, NewRouter(col, queue, zerolog.Nop())
}

func TestRouterLatchIsOneShot(t *testing.T) {
	_, r := newTestRouter(t)

	if !r.Receive(Incoming{Content: "first"}) {
		t.Fatalf("first delivery rejected")
	}
	if r.Receive(Incoming{Content: "second"}) {
		t.Fatalf("second delivery must be dropped by the session latch")
	}

	if inc, ok := r.Pending(); !ok || inc.Content != "first" {
		t.Fatalf("pending slot overwritten: %+v, %v", inc, ok)
	}

	r.Reset()
	if !r.Receive(Incoming{Content: "next session"}) {
		t.Fatalf("delivery after Reset rejected")
	}
}

func TestRouterRejectsBlankContent(t *testing.T) {
	_, r := newTestRouter(t)

	if r.Receive(Incoming{Content: "   \n\t"}) {
		t.Fatalf("whitespace-only delivery accepted")
	}
	if r.Reviewing() {
		t.Fatalf("rejected delivery must not enter reviewing mode")
	}
	// The latch is untouched by a rejected delivery.
	if !r.Receive(Incoming{Content: "real"}) {
		t.Fatalf("delivery after blank reject should still be accepted")
	}
}

func TestSaveAsNewNote(t *testing.T) {
	col, r := newTestRouter(t)
	ctx := context.Background()

	r.Receive(Incoming{Content: "shared body"})
	note, err := r.SaveAsNewNote(ctx, nil)
	if err != nil {
		t.Fatalf("save as new: %v", err)
	}
	if note.Title != SharedContentTitle {
		t.Fatalf("expected fixed label, got %q", note.Title)
	}
	if note.Content != "shared body" {
		t.Fatalf("content = %q", note.Content)
	}
	if _, ok := col.Note(note.ID); !ok {
		t.Fatalf("note not inserted into the collection")
	}
	if r.Reviewing() {
		t.Fatalf("reviewing mode should end after placement")
	}

	// The latch survives placement; only Reset releases it.
	if r.Receive(Incoming{Content: "again"}) {
		t.Fatalf("latch released by placement")
	}
}

func TestSaveAsNewNoteUsesTitleHint(t *testing.T) {
	_, r := newTestRouter(t)

	r.Receive(Incoming{Content: "body", Title: "  Trip planning  "})
	note, err := r.SaveAsNewNote(context.Background(), nil)
	if err != nil {
		t.Fatalf("save as new: %v", err)
	}
	if note.Title != "Trip planning" {
		t.Fatalf("title hint not applied, got %q", note.Title)
	}
}

func TestSaveAsNewNoteIntoFolder(t *testing.T) {
	col, r := newTestRouter(t)
	ctx := context.Background()

	folder, err := col.CreateFolder(ctx, "Inbox", nil)
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	r.Receive(Incoming{Content: "filed"})
	note, err := r.SaveAsNewNote(ctx, &folder.ID)
	if err != nil {
		t.Fatalf("save as new: %v", err)
	}
	if note.FolderID == nil || *note.FolderID != folder.ID {
		t.Fatalf("note not placed in folder: %+v", note.FolderID)
	}
}

func TestAppendToExisting(t *testing.T) {
	col, r := newTestRouter(t)
	ctx := context.Background()

	target, err := col.CreateNote(ctx, nil)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if _, ok := col.ApplyNotePatch(target.ID, models.NotePatch{
		Content: models.StrPtr("existing"),
	}); !ok {
		t.Fatalf("seed patch rejected")
	}

	r.Receive(Incoming{Content: "appended"})
	updated, err := r.AppendToExisting(ctx, target.ID)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if want := "existing" + Separator + "appended"; updated.Content != want {
		t.Fatalf("content = %q, want %q", updated.Content, want)
	}
}

func TestAppendToEmptyNoteOmitsSeparator(t *testing.T) {
	col, r := newTestRouter(t)
	ctx := context.Background()

	target, err := col.CreateNote(ctx, nil)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	r.Receive(Incoming{Content: "only"})
	updated, err := r.AppendToExisting(ctx, target.ID)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if updated.Content != "only" {
		t.Fatalf("empty note should take bare content, got %q", updated.Content)
	}
}

func TestAppendToMissingNoteKeepsPending(t *testing.T) {
	_, r := newTestRouter(t)

	r.Receive(Incoming{Content: "held"})
	if _, err := r.AppendToExisting(context.Background(), "nope"); !errors.Is(err, collection.ErrNoteMissing) {
		t.Fatalf("expected ErrNoteMissing, got %v", err)
	}

	// The slot survives the failed placement for a retry.
	if inc, ok := r.Pending(); !ok || inc.Content != "held" {
		t.Fatalf("pending slot lost after failed append: %+v, %v", inc, ok)
	}
}

func TestPlacementWithoutPending(t *testing.T) {
	_, r := newTestRouter(t)
	ctx := context.Background()

	if _, err := r.SaveAsNewNote(ctx, nil); !errors.Is(err, ErrNoPending) {
		t.Fatalf("expected ErrNoPending, got %v", err)
	}
	if _, err := r.AppendToExisting(ctx, "any"); !errors.Is(err, ErrNoPending) {
		t.Fatalf("expected ErrNoPending, got %v", err)
	}
}
