package dataset

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Store owns the dataset for the process lifetime. The first Snapshot call
// loads and cleans; every later call returns the same immutable snapshot.
// There is no invalidation: the inputs are static, so the snapshot lives
// until the process exits.
type Store struct {
	loader *Loader
	logger *slog.Logger

	once   sync.Once
	snap   *Snapshot
	err    error
	loaded atomic.Bool
}

// NewStore wraps a loader in the process wide cache.
func NewStore(loader *Loader, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		loader: loader,
		logger: logger.With(slog.String("component", "dataset_store")),
	}
}

// Snapshot returns the cleaned snapshot, loading it on first use. Concurrent
// first calls collapse into a single load. A load failure is cached too: the
// inputs do not change while the process runs, so retrying cannot succeed.
func (s *Store) Snapshot(ctx context.Context) (*Snapshot, error) {
	s.once.Do(func() {
		ds, err := s.loader.Load(ctx)
		if err != nil {
			s.err = err
			return
		}
		s.snap = Clean(ds)
		s.loaded.Store(true)
		s.logger.InfoContext(ctx, "snapshot ready",
			slog.Int("games", len(s.snap.Games)),
			slog.Int("lines", len(s.snap.Lines)),
			slog.Int("dropped_games", s.snap.DroppedGames),
			slog.Int("dropped_lines", s.snap.DroppedLines))
	})
	return s.snap, s.err
}

// Loaded reports whether a snapshot has been built successfully. Readiness
// probes use it without forcing a load.
func (s *Store) Loaded() bool {
	return s.loaded.Load()
}
