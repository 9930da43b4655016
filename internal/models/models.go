// Package models defines the folder and note records shared by the store,
// the in-memory collection, and the mutation queue.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SyncStatus is an advisory marker for the future remote-sync feature. It
// never gates a local operation.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
)

// DefaultNoteTitle is assigned to notes created without an explicit title.
const DefaultNoteTitle = "Untitled Note"

// Folder is a named container, optionally nested under another folder.
// A nil ParentID means the folder lives at the root.
type Folder struct {
	ID        string     `json:"id"         yaml:"id"`
	Name      string     `json:"name"       yaml:"name"`
	ParentID  *string    `json:"parentId"   yaml:"parent_id"`
	CreatedAt int64      `json:"createdAt"  yaml:"created_at"`
	UpdatedAt int64      `json:"updatedAt"  yaml:"updated_at"`
	Sync      SyncStatus `json:"syncStatus" yaml:"sync_status"`
}

// Note is a titled text document belonging to at most one folder.
// A nil FolderID means the note lives at the root.
type Note struct {
	ID        string     `json:"id"         yaml:"id"`
	FolderID  *string    `json:"folderId"   yaml:"folder_id"`
	Title     string     `json:"title"      yaml:"title"`
	Content   string     `json:"content"    yaml:"content"`
	CreatedAt int64      `json:"createdAt"  yaml:"created_at"`
	UpdatedAt int64      `json:"updatedAt"  yaml:"updated_at"`
	Sync      SyncStatus `json:"syncStatus" yaml:"sync_status"`
}

// NotePatch is a closed partial update for a note. Nil fields are left
// untouched; set fields win over earlier values at field granularity.
type NotePatch struct {
	Title    *string
	Content  *string
	FolderID **string
}

// Merge folds a later patch into p, last writer wins per field.
func (p *NotePatch) Merge(other NotePatch) {
	if other.Title != nil {
		p.Title = other.Title
	}
	if other.Content != nil {
		p.Content = other.Content
	}
	if other.FolderID != nil {
		p.FolderID = other.FolderID
	}
}

// Apply writes the patch onto a note, trimming the title and advancing
// UpdatedAt. UpdatedAt never moves backwards.
func (p NotePatch) Apply(n *Note, now int64) {
	if p.Title != nil {
		n.Title = strings.TrimSpace(*p.Title)
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.FolderID != nil {
		n.FolderID = *p.FolderID
	}
	if now > n.UpdatedAt {
		n.UpdatedAt = now
	}
	n.Sync = SyncPending
}

// FolderPatch is the folder counterpart of NotePatch.
type FolderPatch struct {
	Name     *string
	ParentID **string
}

// Merge folds a later patch into p, last writer wins per field.
func (p *FolderPatch) Merge(other FolderPatch) {
	if other.Name != nil {
		p.Name = other.Name
	}
	if other.ParentID != nil {
		p.ParentID = other.ParentID
	}
}

// Apply writes the patch onto a folder, trimming the name and advancing
// UpdatedAt. UpdatedAt never moves backwards.
func (p FolderPatch) Apply(f *Folder, now int64) {
	if p.Name != nil {
		f.Name = strings.TrimSpace(*p.Name)
	}
	if p.ParentID != nil {
		f.ParentID = *p.ParentID
	}
	if now > f.UpdatedAt {
		f.UpdatedAt = now
	}
	f.Sync = SyncPending
}

// NewFolder builds a folder record with a fresh id and timestamps. The name
// is trimmed by the caller; constructors do not validate.
func NewFolder(name string, parentID *string) Folder {
	now := Timestamp()
	return Folder{
		ID:        uuid.NewString(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
		Sync:      SyncPending,
	}
}

// NewNote builds a note record with a fresh id, the default placeholder
// title, and timestamps.
func NewNote(folderID *string) Note {
	now := Timestamp()
	return Note{
		ID:        uuid.NewString(),
		FolderID:  folderID,
		Title:     DefaultNoteTitle,
		Content:   "",
		CreatedAt: now,
		UpdatedAt: now,
		Sync:      SyncPending,
	}
}

// Timestamp returns the current time in milliseconds since the epoch, the
// unit every record carries.
func Timestamp() int64 {
	return time.Now().UnixMilli()
}

// StrPtr is a convenience for building patches.
func StrPtr(s string) *string { return &s }
