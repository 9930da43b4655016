// Package postgres provides the server-backed store backend for
// installations that point the app at a shared database instead of the
// bundled embedded one.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ingenium-notes/ingenium/internal/models"
	"github.com/ingenium-notes/ingenium/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS folders (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    parent_id   TEXT,
    created_at  BIGINT NOT NULL,
    updated_at  BIGINT NOT NULL,
    sync_status TEXT NOT NULL DEFAULT 'pending'
);
CREATE TABLE IF NOT EXISTS notes (
    id          TEXT PRIMARY KEY,
    folder_id   TEXT,
    title       TEXT NOT NULL,
    content     TEXT NOT NULL DEFAULT '',
    created_at  BIGINT NOT NULL,
    updated_at  BIGINT NOT NULL,
    sync_status TEXT NOT NULL DEFAULT 'pending'
);
`

type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database at dsn and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &Store{pool: pool}, nil
}

func (s *Store) ListFolders(ctx context.Context) ([]models.Folder, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, parent_id, created_at, updated_at, sync_status FROM folders`)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var f models.Folder
		var status string
		if err := rows.Scan(&f.ID, &f.Name, &f.ParentID, &f.CreatedAt, &f.UpdatedAt, &status); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		f.Sync = models.SyncStatus(status)
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (s *Store) ListNotes(ctx context.Context) ([]models.Note, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, folder_id, title, content, created_at, updated_at, sync_status FROM notes`)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []models.Note
	for rows.Next() {
		var n models.Note
		var status string
		if err := rows.Scan(&n.ID, &n.FolderID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt, &status); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		n.Sync = models.SyncStatus(status)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (s *Store) SaveFolder(ctx context.Context, f models.Folder) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO folders (id, name, parent_id, created_at, updated_at, sync_status)
         VALUES ($1, $2, $3, $4, $5, $6)
         ON CONFLICT (id) DO UPDATE SET
             name = EXCLUDED.name,
             parent_id = EXCLUDED.parent_id,
             updated_at = EXCLUDED.updated_at,
             sync_status = EXCLUDED.sync_status`,
		f.ID, f.Name, f.ParentID, f.CreatedAt, f.UpdatedAt, string(f.Sync))
	if err != nil {
		return fmt.Errorf("save folder %s: %w", f.ID, err)
	}
	return nil
}

func (s *Store) SaveNote(ctx context.Context, n models.Note) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO notes (id, folder_id, title, content, created_at, updated_at, sync_status)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         ON CONFLICT (id) DO UPDATE SET
             folder_id = EXCLUDED.folder_id,
             title = EXCLUDED.title,
             content = EXCLUDED.content,
             updated_at = EXCLUDED.updated_at,
             sync_status = EXCLUDED.sync_status`,
		n.ID, n.FolderID, n.Title, n.Content, n.CreatedAt, n.UpdatedAt, string(n.Sync))
	if err != nil {
		return fmt.Errorf("save note %s: %w", n.ID, err)
	}
	return nil
}

func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete folder %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete note %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListPendingSync(ctx context.Context) ([]store.PendingItem, error) {
	rows, err := s.pool.Query(ctx,
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
	s.pool.Close()
	return nil
}
