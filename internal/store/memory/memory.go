// Package memory provides the in-memory store backend used by tests and the
// default profile. Records live in maps guarded by a mutex; nothing survives
// process exit.
package memory

import (
	"context"
	"sync"

	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/store"
)

type Store struct {
	mu      sync.RWMutex
	folders map[string]models.Folder
	notes   map[string]models.Note
}

func New() *Store {
	return &Store{
		folders: make(map[string]models.Folder),
		notes:   make(map[string]models.Note),
	}
}

func (s *Store) ListFolders(ctx context.Context) ([]models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Folder, 0, len(s.folders))
	for _, f := range s.folders {
		out = append(out, f)
	}
	return out, nil
}

func (s *Store) ListNotes(ctx context.Context) ([]models.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n)
	}
	return out, nil
}

func (s *Store) SaveFolder(ctx context.Context, f models.Folder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.folders[f.ID] = f
	return nil
}

func (s *Store) SaveNote(ctx context.Context, n models.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes[n.ID] = n
	return nil
}

func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.folders[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.folders, id)
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}

func (s *Store) ListPendingSync(ctx context.Context) ([]store.PendingItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []store.PendingItem
	for _, f := range s.folders {
		if f.Sync == models.SyncPending {
			items = append(items, store.PendingItem{ID: f.ID, Kind: "folder"})
		}
	}
	for _, n := range s.notes {
		if n.Sync == models.SyncPending {
			items = append(items, store.PendingItem{ID: n.ID, Kind: "note"})
		}
	}
	return items, nil
}

func (s *Store) Close() error { return nil }
