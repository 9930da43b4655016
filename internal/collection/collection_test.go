package collection

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/store/memory"
)

func newTestCollection(t *testing.T) (*Collection, *memory.Store) {
	t.Helper()

	st := memory.New()
	col := New(st, zerolog.Nop())
	if err := col.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return col, st
}

func TestCreateFolderTrimsName(t *testing.T) {
	col, _ := newTestCollection(t)

	folder, err := col.CreateFolder(context.Background(), "  Work  ", nil)
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if folder.Name != "Work" {
		t.Fatalf("name = %q, want trimmed", folder.Name)
	}
	if folder.Sync != models.SyncPending {
		t.Fatalf("new folder should start pending, got %q", folder.Sync)
	}
}

func TestCreateFolderEmptyName(t *testing.T) {
	col, _ := newTestCollection(t)

	if _, err := col.CreateFolder(context.Background(), "   ", nil); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if len(col.Folders()) != 0 {
		t.Fatalf("rejected folder must not be stored")
	}
}

func TestCreateNoteDefaults(t *testing.T) {
	col, _ := newTestCollection(t)

	note, err := col.CreateNote(context.Background(), nil)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}
	if note.Title != models.DefaultNoteTitle {
		t.Fatalf("title = %q, want placeholder", note.Title)
	}
	if note.Content != "" || note.FolderID != nil {
		t.Fatalf("unexpected defaults: %+v", note)
	}
}

func TestRenameFolder(t *testing.T) {
	col, _ := newTestCollection(t)
	ctx := context.Background()

	folder, err := col.CreateFolder(ctx, "Old", nil)
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}

	if err := col.RenameFolder(ctx, folder.ID, "  New  "); err != nil {
		t.Fatalf("rename: %v", err)
	}
	renamed, _ := col.Folder(folder.ID)
	if renamed.Name != "New" {
		t.Fatalf("name = %q", renamed.Name)
	}

	if err := col.RenameFolder(ctx, folder.ID, " "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := col.RenameFolder(ctx, "missing", "X"); !errors.Is(err, ErrFolderMissing) {
		t.Fatalf("expected ErrFolderMissing, got %v", err)
	}
}

func TestUpdateFolderMove(t *testing.T) {
	col, _ := newTestCollection(t)
	ctx := context.Background()

	parent, _ := col.CreateFolder(ctx, "Parent", nil)
	child, _ := col.CreateFolder(ctx, "Child", nil)

	target := &parent.ID
	if err := col.UpdateFolder(ctx, child.ID, models.FolderPatch{ParentID: &target}); err != nil {
		t.Fatalf("move folder: %v", err)
	}

	moved, _ := col.Folder(child.ID)
	if moved.ParentID == nil || *moved.ParentID != parent.ID {
		t.Fatalf("parent link not updated: %+v", moved.ParentID)
	}
}

func TestApplyNotePatch(t *testing.T) {
	col, _ := newTestCollection(t)

	note, err := col.CreateNote(context.Background(), nil)
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	merged, ok := col.ApplyNotePatch(note.ID, models.NotePatch{
		Title:   models.StrPtr("  Renamed  "),
		Content: models.StrPtr("body"),
	})
	if !ok {
		t.Fatalf("patch rejected")
	}
	if merged.Title != "Renamed" || merged.Content != "body" {
		t.Fatalf("merge wrong: %+v", merged)
	}
	if merged.UpdatedAt < note.UpdatedAt {
		t.Fatalf("UpdatedAt moved backwards")
	}

	if _, ok := col.ApplyNotePatch("missing", models.NotePatch{}); ok {
		t.Fatalf("unknown id must be rejected")
	}
}

func TestDeleteFolderCascadesDirectNotesOnly(t *testing.T) {
	col, st := newTestCollection(t)
	ctx := context.Background()

	parent, _ := col.CreateFolder(ctx, "Parent", nil)
	child, _ := col.CreateFolder(ctx, "Child", &parent.ID)
	direct, _ := col.CreateNote(ctx, &parent.ID)
	nested, _ := col.CreateNote(ctx, &child.ID)
	rootNote, _ := col.CreateNote(ctx, nil)

	if err := col.DeleteFolder(ctx, parent.ID); err != nil {
		t.Fatalf("delete folder: %v", err)
	}

	if _, ok := col.Note(direct.ID); ok {
		t.Fatalf("direct note should cascade")
	}
	if _, ok := col.Note(nested.ID); !ok {
		t.Fatalf("note in child folder must survive")
	}
	if _, ok := col.Note(rootNote.ID); !ok {
		t.Fatalf("unrelated note must survive")
	}

	// The child folder is orphaned, not deleted.
	orphan, ok := col.Folder(child.ID)
	if !ok {
		t.Fatalf("child folder must survive the parent delete")
	}
	if orphan.ParentID == nil || *orphan.ParentID != parent.ID {
		t.Fatalf("child keeps its dangling parent link: %+v", orphan.ParentID)
	}

	// The durable copy agrees.
	notes, err := st.ListNotes(ctx)
	if err != nil {
		t.Fatalf("list notes: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("store should hold 2 notes, got %d", len(notes))
	}
}

func TestDeleteNote(t *testing.T) {
	col, _ := newTestCollection(t)
	ctx := context.Background()

	note, _ := col.CreateNote(ctx, nil)
	if err := col.DeleteNote(ctx, note.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := col.DeleteNote(ctx, note.ID); !errors.Is(err, ErrNoteMissing) {
		t.Fatalf("expected ErrNoteMissing, got %v", err)
	}
}

func TestLoadReplacesMemory(t *testing.T) {
	col, st := newTestCollection(t)
	ctx := context.Background()

	note := models.NewNote(nil)
	note.Title = "From storage"
	if err := st.SaveNote(ctx, note); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if _, err := col.CreateNote(ctx, nil); err != nil {
		t.Fatalf("create note: %v", err)
	}

	if err := col.Load(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}

	loaded, ok := col.Note(note.ID)
	if !ok || loaded.Title != "From storage" {
		t.Fatalf("durable copy not loaded: %+v, %v", loaded, ok)
	}
}
