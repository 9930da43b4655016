package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/store"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := Open(filepath.Join(t.TempDir(), "notes.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	folder := models.NewFolder("Work", nil)
	nested := models.NewFolder("Nested", &folder.ID)
	note := models.NewNote(&folder.ID)
	note.Title = "Standup"
	note.Content = "agenda"

	for _, f := range []models.Folder{folder, nested} {
		if err := st.SaveFolder(ctx, f); err != nil {
			t.Fatalf("save folder: %v", err)
		}
	}
	if err := st.SaveNote(ctx, note); err != nil {
		t.Fatalf("save note: %v", err)
	}

	folders, err := st.ListFolders(ctx)
	if err != nil {
		t.Fatalf("list folders: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("got %d folders", len(folders))
	}

	notes, err := st.ListNotes(ctx)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("got %d notes", len(notes))
	}
	got := notes[0]
	if got.Title != "Standup" || got.Content != "agenda" {
		t.Fatalf("note fields lost: %+v", got)
	}
	if got.FolderID == nil || *got.FolderID != folder.ID {
		t.Fatalf("folder link lost: %+v", got.FolderID)
	}
	if got.Sync != models.SyncPending {
		t.Fatalf("sync status lost: %q", got.Sync)
	}
}

func TestUpsert(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	note := models.NewNote(nil)
	if err := st.SaveNote(ctx, note); err != nil {
		t.Fatalf("save: %v", err)
	}

	note.Content = "revised"
	note.Sync = models.SyncSynced
	if err := st.SaveNote(ctx, note); err != nil {
		t.Fatalf("resave: %v", err)
	}

	notes, err := st.ListNotes(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 1 || notes[0].Content != "revised" || notes[0].Sync != models.SyncSynced {
		t.Fatalf("upsert did not replace: %+v", notes)
	}
}

func TestDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	note := models.NewNote(nil)
	st.SaveNote(ctx, note)

	if err := st.DeleteNote(ctx, note.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.DeleteNote(ctx, note.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.DeleteFolder(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListPendingSync(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	folder := models.NewFolder("Pending", nil)
	settled := models.NewNote(nil)
	settled.Sync = models.SyncSynced
	pending := models.NewNote(nil)

	st.SaveFolder(ctx, folder)
	st.SaveNote(ctx, settled)
	st.SaveNote(ctx, pending)

	items, err := st.ListPendingSync(ctx)
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected folder and note pending, got %+v", items)
	}
	kinds := map[string]string{}
	for _, item := range items {
		kinds[item.Kind] = item.ID
	}
	if kinds["folder"] != folder.ID || kinds["note"] != pending.ID {
		t.Fatalf("wrong pending set: %+v", items)
	}
}
