// Package state wires the application together: config, store backend,
// in-memory collections, mutation queue, ingestion router, sync, and view
// helpers. Everything downstream receives its dependencies from here, so
// tests can build isolated instances instead of sharing process globals.
package state

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/ingenium-notes/ingenium/internal/collection"
	"github.com/ingenium-notes/ingenium/internal/config"
	"github.com/ingenium-notes/ingenium/internal/gemini"
	"github.com/ingenium-notes/ingenium/internal/ingest"
	"github.com/ingenium-notes/ingenium/internal/mutate"
	"github.com/ingenium-notes/ingenium/internal/store"
	"github.com/ingenium-notes/ingenium/internal/store/memory"
	"github.com/ingenium-notes/ingenium/internal/store/postgres"
	"github.com/ingenium-notes/ingenium/internal/store/sqlite"
	syncsvc "github.com/ingenium-notes/ingenium/internal/sync"
	"github.com/ingenium-notes/ingenium/internal/views"
)

type State struct {
	Config     *config.Config
	Store      store.Store
	Collection *collection.Collection
	Queue      *mutate.Queue
	Router     *ingest.Router
	Syncer     *syncsvc.Syncer
	Sorter     *views.Sorter
	Gemini     *gemini.Client
	Home       string
	Log        zerolog.Logger

	closed bool
}

// NewState builds the full application state from the user's config,
// loading the collections from the durable copy.
func NewState(ctx context.Context, log zerolog.Logger) (*State, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}
	cfg, err := config.Load(home)
	if err != nil {
		return nil, err
	}

	st, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s, err := FromParts(ctx, cfg, st, log)
	if err != nil {
		st.Close()
		return nil, err
	}
	s.Home = home
	return s, nil
}

// FromParts assembles a state around an existing config and store. Tests
// use it with the memory backend.
func FromParts(ctx context.Context, cfg *config.Config, st store.Store, log zerolog.Logger) (*State, error) {
	col := collection.New(st, log)
	if err := col.Load(ctx); err != nil {
		return nil, err
	}

	queue := mutate.NewQueue(col, st, cfg.DebounceInterval(), log)
	router := ingest.NewRouter(col, queue, log)
	syncer := syncsvc.New(col, st, log)

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.English
	}

	return &State{
		Config:     cfg,
		Store:      st,
		Collection: col,
		Queue:      queue,
		Router:     router,
		Syncer:     syncer,
		Sorter:     views.NewSorter(tag),
		Gemini:     gemini.New(cfg.GeminiKey),
		Log:        log,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite, "":
		return sqlite.Open(cfg.Storage.SQLitePath)
	case config.BackendPostgres:
		if cfg.Storage.PostgresDSN == "" {
			return nil, errors.New("storage.postgres_dsn is required for the postgres backend")
		}
		return postgres.Open(ctx, cfg.Storage.PostgresDSN)
	case config.BackendMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Close flushes the mutation queue and releases the store. The flush is
// required, not optional cleanup: skipping it loses the last debounce
// window's edits.
func (s *State) Close(ctx context.Context) error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true

	var errs []error
	if s.Queue != nil {
		if err := s.Queue.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if s.Store != nil {
		if err := s.Store.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
