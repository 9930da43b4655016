package sync

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ingenium-notes/ingenium/internal/collection"
	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/store/memory"
)

func newTestSyncer(t *testing.T) (*collection.Collection, *memory.Store, *Syncer) {
	t.Helper()

	st := memory.New()
	col := collection.New(st, zerolog.Nop())
	if err := col.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return col, st, New(col, st, zerolog.Nop())
}

func TestFullSyncSettlesPending(t *testing.T) {
	col, st, s := newTestSyncer(t)
	ctx := context.Background()

	folder, _ := col.CreateFolder(ctx, "Work", nil)
	note, _ := col.CreateNote(ctx, &folder.ID)

	if err := s.FullSync(ctx); err != nil {
		t.Fatalf("full sync: %v", err)
	}

	gotFolder, _ := col.Folder(folder.ID)
	gotNote, _ := col.Note(note.ID)
	if gotFolder.Sync != models.SyncSynced || gotNote.Sync != models.SyncSynced {
		t.Fatalf("records still pending: %q %q", gotFolder.Sync, gotNote.Sync)
	}

	items, err := st.ListPendingSync(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("pending queue not drained: %+v", items)
	}
}

func TestFullSyncPicksUpStoreChanges(t *testing.T) {
	col, st, s := newTestSyncer(t)
	ctx := context.Background()

	// Written behind the collection's back, as a remote would.
	external := models.NewNote(nil)
	external.Title = "External"
	if err := st.SaveNote(ctx, external); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if err := s.FullSync(ctx); err != nil {
		t.Fatalf("full sync: %v", err)
	}
	if _, ok := col.Note(external.ID); !ok {
		t.Fatalf("full sync should reload the collections")
	}
}

func TestQuickSyncSkipsReload(t *testing.T) {
	col, st, s := newTestSyncer(t)
	ctx := context.Background()

	note, _ := col.CreateNote(ctx, nil)

	external := models.NewNote(nil)
	if err := st.SaveNote(ctx, external); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if err := s.QuickSync(ctx); err != nil {
		t.Fatalf("quick sync: %v", err)
	}

	if _, ok := col.Note(external.ID); ok {
		t.Fatalf("quick sync must not reload the collections")
	}
	if got, _ := col.Note(note.ID); got.Sync != models.SyncSynced {
		t.Fatalf("quick sync should still settle pending, got %q", got.Sync)
	}
}

func TestSyncToleratesRecordsDeletedMidPass(t *testing.T) {
	col, st, s := newTestSyncer(t)
	ctx := context.Background()

	note, _ := col.CreateNote(ctx, nil)

	// Listed as pending in the store, gone from the collection.
	if err := col.DeleteNote(ctx, note.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.SaveNote(ctx, note); err != nil {
		t.Fatalf("reseed store: %v", err)
	}

	if err := s.QuickSync(ctx); err != nil {
		t.Fatalf("quick sync should treat missing records as benign: %v", err)
	}
}
