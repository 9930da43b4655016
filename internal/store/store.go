// Package store defines the persistence adapter consumed by the collection
// and the mutation queue. Backends live in subpackages; the durable copy is
// the source of truth on cold start.
package store

import (
	"context"
	"errors"

	"github.com/ingenium-notes/ingenium/internal/models"
)

// ErrNotFound is returned by delete operations targeting an unknown record.
var ErrNotFound = errors.New("record not found")

// PendingItem describes a record awaiting remote sync.
type PendingItem struct {
	ID   string
	Kind string // "folder" or "note"
}

// Store is the persistence adapter. Save operations are upserts. Every
// operation may fail; callers catch and log per the error-handling policy
// rather than letting failures escape the event loop.
type Store interface {
	ListFolders(ctx context.Context) ([]models.Folder, error)
	ListNotes(ctx context.Context) ([]models.Note, error)
	SaveFolder(ctx context.Context, f models.Folder) error
	SaveNote(ctx context.Context, n models.Note) error
	DeleteFolder(ctx context.Context, id string) error
	DeleteNote(ctx context.Context, id string) error
	ListPendingSync(ctx context.Context) ([]PendingItem, error)
	Close() error
}
