// Package sync walks the pending-sync queue and settles record sync
// statuses. No remote backend is wired yet; the pass marks pending records
// as synced so the advisory markers stay meaningful, exactly the behavior a
// future remote transport will replace.
package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ingenium-notes/ingenium/internal/collection"
	"github.com/ingenium-notes/ingenium/internal/store"
)

type Syncer struct {
	mu      sync.Mutex
	running bool

	col      *collection.Collection
	store    store.Store
	log      zerolog.Logger
	lastSync int64
}

func New(col *collection.Collection, st store.Store, log zerolog.Logger) *Syncer {
	return &Syncer{
		col:   col,
		store: st,
		log:   log.With().Str("component", "sync").Logger(),
	}
}

// FullSync reloads the collections from the store and settles every pending
// item. Single-flight: a sync already in progress makes this a no-op.
func (s *Syncer) FullSync(ctx context.Context) error {
	if !s.begin() {
		return nil
	}
	defer s.end()

	if err := s.col.Load(ctx); err != nil {
		return fmt.Errorf("reload collections: %w", err)
	}
	return s.settlePending(ctx)
}

// QuickSync settles pending items without reloading the collections.
func (s *Syncer) QuickSync(ctx context.Context) error {
	if !s.begin() {
		return nil
	}
	defer s.end()

	return s.settlePending(ctx)
}

func (s *Syncer) settlePending(ctx context.Context) error {
	items, err := s.store.ListPendingSync(ctx)
	if err != nil {
		return fmt.Errorf("list pending sync items: %w", err)
	}
	if len(items) == 0 {
		return nil
	}

	s.log.Debug().Int("pending", len(items)).Msg("settling pending sync items")

	var firstErr error
	for _, item := range items {
		if err := s.col.MarkSynced(ctx, item); err != nil {
			// A record deleted since listing is benign; anything else
			// is logged and reported without stopping the pass.
			if errors.Is(err, collection.ErrNoteMissing) ||
				errors.Is(err, collection.ErrFolderMissing) {
				continue
			}
			s.log.Error().Err(err).Str("id", item.ID).Str("kind", item.Kind).
				Msg("mark synced failed")
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (s *Syncer) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return false
	}
	s.running = true
	return true
}

func (s *Syncer) end() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}
