// Package collection owns the process-wide in-memory folder and note
// collections. It is constructed explicitly and passed down through the
// state container, so tests can instantiate isolated instances. The store
// holds the durable copy and is the source of truth on cold start; after
// Load, every mutation merges in memory first and then writes through.
//
// Persistence failures are logged and surfaced to the caller, but the
// in-memory change is never rolled back. A failed durable save is not
// retried; on the next cold start the record reverts to the stored copy.
package collection

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/store"
)

// ErrEmptyName rejects folder creates and renames whose name trims to "".
// Callers treat it as a validation no-op, not a failure to report loudly.
var ErrEmptyName = errors.New("name is empty after trimming")

// ErrNoteMissing reports an operation against a note id that does not
// resolve to a live note.
var ErrNoteMissing = errors.New("note not found")

// ErrFolderMissing reports an operation against a folder id that does not
// resolve to a live folder.
var ErrFolderMissing = errors.New("folder not found")

type Collection struct {
	mu      sync.RWMutex
	store   store.Store
	folders map[string]models.Folder
	notes   map[string]models.Note
	log     zerolog.Logger
}

func New(st store.Store, log zerolog.Logger) *Collection {
	return &Collection{
		store:   st,
		folders: make(map[string]models.Folder),
		notes:   make(map[string]models.Note),
		log:     log.With().Str("component", "collection").Logger(),
	}
}

// Load replaces the in-memory collections with the durable copy.
func (c *Collection) Load(ctx context.Context) error {
	folders, err := c.store.ListFolders(ctx)
	if err != nil {
		return fmt.Errorf("load folders: %w", err)
	}
	notes, err := c.store.ListNotes(ctx)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.folders = make(map[string]models.Folder, len(folders))
	for _, f := range folders {
		c.folders[f.ID] = f
	}
	c.notes = make(map[string]models.Note, len(notes))
	for _, n := range notes {
		c.notes[n.ID] = n
	}
	return nil
}

// Folders returns a snapshot of every folder.
func (c *Collection) Folders() []models.Folder {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Folder, 0, len(c.folders))
	for _, f := range c.folders {
		out = append(out, f)
	}
	return out
}

// Notes returns a snapshot of every note.
func (c *Collection) Notes() []models.Note {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Note, 0, len(c.notes))
	for _, n := range c.notes {
		out = append(out, n)
	}
	return out
}

func (c *Collection) Folder(id string) (models.Folder, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.folders[id]
	return f, ok
}

func (c *Collection) Note(id string) (models.Note, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.notes[id]
	return n, ok
}

// CreateFolder creates a folder with the trimmed name under parentID.
// Folders are only ever created by an explicit caller action.
func (c *Collection) CreateFolder(ctx context.Context, name string, parentID *string) (models.Folder, error) {
	trimmed := trim(name)
	if trimmed == "" {
		return models.Folder{}, ErrEmptyName
	}

	folder := models.NewFolder(trimmed, parentID)

	c.mu.Lock()
	c.folders[folder.ID] = folder
	c.mu.Unlock()

	if err := c.store.SaveFolder(ctx, folder); err != nil {
		c.log.Error().Err(err).Str("folder", folder.ID).Msg("save folder failed")
		return folder, err
	}
	return folder, nil
}

// CreateNote creates a note in folderID (nil for root) with the placeholder
// title and empty content.
func (c *Collection) CreateNote(ctx context.Context, folderID *string) (models.Note, error) {
	note := models.NewNote(folderID)

	c.mu.Lock()
	c.notes[note.ID] = note
	c.mu.Unlock()

	if err := c.store.SaveNote(ctx, note); err != nil {
		c.log.Error().Err(err).Str("note", note.ID).Msg("save note failed")
		return note, err
	}
	return note, nil
}

// InsertNote adds a fully-formed note, used by the ingestion pipeline when
// placing shared content.
func (c *Collection) InsertNote(ctx context.Context, note models.Note) error {
	c.mu.Lock()
	c.notes[note.ID] = note
	c.mu.Unlock()

	if err := c.store.SaveNote(ctx, note); err != nil {
		c.log.Error().Err(err).Str("note", note.ID).Msg("save note failed")
		return err
	}
	return nil
}

// UpdateFolder applies a patch to a folder and writes it through. Folder
// updates are rare enough that they skip the debounce queue and persist
// immediately. A patch whose name trims to "" is a validation no-op.
func (c *Collection) UpdateFolder(ctx context.Context, id string, patch models.FolderPatch) error {
	if patch.Name != nil && trim(*patch.Name) == "" {
		return ErrEmptyName
	}

	c.mu.Lock()
	folder, ok := c.folders[id]
	if !ok {
		c.mu.Unlock()
		return ErrFolderMissing
	}
	patch.Apply(&folder, models.Timestamp())
	c.folders[id] = folder
	c.mu.Unlock()

	if err := c.store.SaveFolder(ctx, folder); err != nil {
		c.log.Error().Err(err).Str("folder", id).Msg("save folder failed")
		return err
	}
	return nil
}

// RenameFolder sets a folder's name in place.
func (c *Collection) RenameFolder(ctx context.Context, id, name string) error {
	return c.UpdateFolder(ctx, id, models.FolderPatch{Name: &name})
}

// ApplyNotePatch merges a patch into the in-memory note and returns the
// merged record. It does not touch the store; the mutation queue decides
// when the merged record becomes durable. Returns false if the note does
// not exist.
func (c *Collection) ApplyNotePatch(id string, patch models.NotePatch) (models.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	note, ok := c.notes[id]
	if !ok {
		return models.Note{}, false
	}
	patch.Apply(&note, models.Timestamp())
	c.notes[id] = note
	return note, true
}

// DeleteNote removes a note from the collection and the store.
func (c *Collection) DeleteNote(ctx context.Context, id string) error {
	c.mu.Lock()
	_, ok := c.notes[id]
	delete(c.notes, id)
	c.mu.Unlock()

	if !ok {
		return ErrNoteMissing
	}

	if err := c.store.DeleteNote(ctx, id); err != nil {
		c.log.Error().Err(err).Str("note", id).Msg("delete note failed")
		return err
	}
	return nil
}

// DeleteFolder removes a folder and cascades to the notes directly assigned
// to it. Child folders are NOT deleted; they are left with a dangling
// ParentID. That matches the documented behavior, and PathOf stays total in
// the presence of such orphans.
func (c *Collection) DeleteFolder(ctx context.Context, id string) error {
	c.mu.Lock()
	_, ok := c.folders[id]
	if !ok {
		c.mu.Unlock()
		return ErrFolderMissing
	}
	delete(c.folders, id)

	var cascade []string
	for noteID, note := range c.notes {
		if note.FolderID != nil && *note.FolderID == id {
			cascade = append(cascade, noteID)
		}
	}
	for _, noteID := range cascade {
		delete(c.notes, noteID)
	}
	c.mu.Unlock()

	var firstErr error
	if err := c.store.DeleteFolder(ctx, id); err != nil {
		c.log.Error().Err(err).Str("folder", id).Msg("delete folder failed")
		firstErr = err
	}
	for _, noteID := range cascade {
		if err := c.store.DeleteNote(ctx, noteID); err != nil {
			c.log.Error().Err(err).Str("note", noteID).Msg("cascade delete failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// MarkSynced flips a record's sync status to synced and writes it through.
func (c *Collection) MarkSynced(ctx context.Context, item store.PendingItem) error {
	switch item.Kind {
	case "folder":
		c.mu.Lock()
		folder, ok := c.folders[item.ID]
		if !ok {
			c.mu.Unlock()
			return ErrFolderMissing
		}
		folder.Sync = models.SyncSynced
		c.folders[item.ID] = folder
		c.mu.Unlock()
		return c.store.SaveFolder(ctx, folder)
	case "note":
		c.mu.Lock()
		note, ok := c.notes[item.ID]
		if !ok {
			c.mu.Unlock()
			return ErrNoteMissing
		}
		note.Sync = models.SyncSynced
		c.notes[item.ID] = note
		c.mu.Unlock()
		return c.store.SaveNote(ctx, note)
	default:
		return fmt.Errorf("unknown pending item kind %q", item.Kind)
	}
}

// Replace swaps in a full snapshot (import path) and writes every record
// through to the store.
func (c *Collection) Replace(ctx context.Context, folders []models.Folder, notes []models.Note) error {
	c.mu.Lock()
	c.folders = make(map[string]models.Folder, len(folders))
	for _, f := range folders {
		c.folders[f.ID] = f
	}
	c.notes = make(map[string]models.Note, len(notes))
	for _, n := range notes {
		c.notes[n.ID] = n
	}
	c.mu.Unlock()

	for _, f := range folders {
		if err := c.store.SaveFolder(ctx, f); err != nil {
			return fmt.Errorf("import folder %s: %w", f.ID, err)
		}
	}
	for _, n := range notes {
		if err := c.store.SaveNote(ctx, n); err != nil {
			return fmt.Errorf("import note %s: %w", n.ID, err)
		}
	}
	return nil
}

func trim(s string) string { return strings.TrimSpace(s) }
