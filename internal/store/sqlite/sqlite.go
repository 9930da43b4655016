// Package sqlite provides the embedded relational store backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS folders (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    parent_id   TEXT,
    created_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL,
    sync_status TEXT NOT NULL DEFAULT 'pending'
);
CREATE TABLE IF NOT EXISTS notes (
    id          TEXT PRIMARY KEY,
    folder_id   TEXT,
    title       TEXT NOT NULL,
    content     TEXT NOT NULL DEFAULT '',
    created_at  INTEGER NOT NULL,
    updated_at  INTEGER NOT NULL,
    sync_status TEXT NOT NULL DEFAULT 'pending'
);
`

type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) ListFolders(ctx context.Context) ([]models.Folder, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, parent_id, created_at, updated_at, sync_status FROM folders`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		var parent sql.NullString
		var status string
		if err := rows.Scan(&f.ID, &f.Name, &parent, &f.CreatedAt, &f.UpdatedAt, &status); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		if parent.Valid {
			f.ParentID = &parent.String
		}
		f.Sync = models.SyncStatus(status)
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (s *Store) ListNotes(ctx context.Context) ([]models.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, folder_id, title, content, created_at, updated_at, sync_status FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		var folder sql.NullString
		var status string
		if err := rows.Scan(&n.ID, &folder, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt, &status); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		if folder.Valid {
			n.FolderID = &folder.String
		}
		n.Sync = models.SyncStatus(status)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) SaveFolder(ctx context.Context, f models.Folder) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO folders (id, name, parent_id, created_at, updated_at, sync_status)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             name = excluded.name,
             parent_id = excluded.parent_id,
             updated_at = excluded.updated_at,
             sync_status = excluded.sync_status`,
		f.ID, f.Name, nullable(f.ParentID), f.CreatedAt, f.UpdatedAt, string(f.Sync))
	if err != nil {
		return fmt.Errorf("save folder %s: %w", f.ID, err)
	}
	return nil
}

func (s *Store) SaveNote(ctx context.Context, n models.Note) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (id, folder_id, title, content, created_at, updated_at, sync_status)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             folder_id = excluded.folder_id,
             title = excluded.title,
             content = excluded.content,
             updated_at = excluded.updated_at,
             sync_status = excluded.sync_status`,
		n.ID, nullable(n.FolderID), n.Title, n.Content, n.CreatedAt, n.UpdatedAt, string(n.Sync))
	if err != nil {
		return fmt.Errorf("save note %s: %w", n.ID, err)
	}
	return nil
}

func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete folder %s: %w", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListPendingSync(ctx context.Context) ([]store.PendingItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, 'folder' FROM folders WHERE sync_status = 'pending'
         UNION ALL
         SELECT id, 'note' FROM notes WHERE sync_status = 'pending'`)
	if err != nil {
		return nil, fmt.Errorf("list pending sync: %w", err)
	}
	defer rows.Close()

	var items []store.PendingItem
	for rows.Next() {
		var item store.PendingItem
		if err := rows.Scan(&item.ID, &item.Kind); err != nil {
			return nil, fmt.Errorf("scan pending item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
