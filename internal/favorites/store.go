// Package favorites maintains the per-device set of bookmarked buses and
// stops: a SQLite-backed, owner-scoped document set with realtime
// subscriptions. Every add or remove pushes the refreshed list to all
// subscribers, newest first.
package favorites

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jinsol-dev/busango/internal/logging"
	"github.com/jinsol-dev/busango/internal/metrics"
	"github.com/jinsol-dev/busango/internal/models"
)

// ErrExists is returned by Add when the owner already bookmarked the same
// target.
var ErrExists = errors.New("favorites: already bookmarked")

// Store is the favorites set for one owner identity.
type Store struct {
	db      *sql.DB
	ownerID string
	logger  *slog.Logger
	metrics *metrics.Collector

	mu      sync.Mutex
	subs    map[int]chan []models.Favorite
	nextSub int
	closed  bool
}

// NewStore opens (or creates) the favorites database and binds it to the
// identity's owner id. An empty owner id yields an inert store: empty
// lists, no-op writes.
func NewStore(dbPath string, identity IdentityProvider, logger *slog.Logger, collector *metrics.Collector) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := initDB(dbPath)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:      db,
		ownerID: identity.OwnerID(),
		logger:  logger.With(slog.String("component", "favorites")),
		metrics: collector,
		subs:    make(map[int]chan []models.Favorite),
	}, nil
}

// initDB opens the SQLite database and creates the schema. There is
// deliberately no unique constraint on (owner_id, kind, target_id): the
// duplicate check is application-level, in Add.
func initDB(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("favorites: open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS favorites (
			id         TEXT PRIMARY KEY,
			owner_id   TEXT NOT NULL,
			kind       TEXT NOT NULL,
			target_id  TEXT NOT NULL,
			name       TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_favorites_owner ON favorites(owner_id);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("favorites: create schema: %w", err)
	}
	return db, nil
}

// OwnerID returns the bound owner identity, empty for an inert store.
func (s *Store) OwnerID() string { return s.ownerID }

// Inert reports whether the store has no durable identity and therefore
// performs no reads or writes.
func (s *Store) Inert() bool { return s.ownerID == "" }

// List returns the owner's live favorites, newest first. A record without a
// creation timestamp counts as oldest and sorts last.
func (s *Store) List(ctx context.Context) ([]models.Favorite, error) {
	if s.Inert() {
		return []models.Favorite{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, kind, target_id, name, created_at
		FROM favorites
		WHERE owner_id = ?
		ORDER BY created_at DESC, id
	`, s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("favorites: list: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, s.logger, "favorites_list_rows")

	favorites := []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		var kind string
		if err := rows.Scan(&f.ID, &f.OwnerID, &kind, &f.TargetID, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("favorites: scan: %w", err)
		}
		f.Kind = models.FavoriteKind(kind)
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorites: list: %w", err)
	}
	return favorites, nil
}

// Add bookmarks a target. It checks for an existing live record with the
// same (owner, kind, target) first and returns ErrExists on a match. On an
// inert store Add silently does nothing.
func (s *Store) Add(ctx context.Context, kind models.FavoriteKind, targetID, name string) (models.Favorite, error) {
	if s.Inert() {
		return models.Favorite{}, nil
	}

	if _, found, err := s.FavoriteID(ctx, kind, targetID); err != nil {
		return models.Favorite{}, err
	} else if found {
		return models.Favorite{}, ErrExists
	}

	favorite := models.Favorite{
		ID:        uuid.NewString(),
		OwnerID:   s.ownerID,
		Kind:      kind,
		TargetID:  targetID,
		Name:      name,
		CreatedAt: time.Now().UnixMilli(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, owner_id, kind, target_id, name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, favorite.ID, favorite.OwnerID, string(favorite.Kind), favorite.TargetID, favorite.Name, favorite.CreatedAt)
	if err != nil {
		return models.Favorite{}, fmt.Errorf("favorites: add: %w", err)
	}

	s.metrics.ObserveFavoriteWrite("add")
	s.publish(ctx)
	return favorite, nil
}

// Remove deletes a favorite by record id. Removing an absent id is a no-op.
func (s *Store) Remove(ctx context.Context, id string) error {
	if s.Inert() {
		return nil
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE id = ? AND owner_id = ?`, id, s.ownerID)
	if err != nil {
		return fmt.Errorf("favorites: remove: %w", err)
	}

	s.metrics.ObserveFavoriteWrite("remove")
	s.publish(ctx)
	return nil
}

// IsFavorite reports whether a live record matches kind and target exactly.
func (s *Store) IsFavorite(ctx context.Context, kind models.FavoriteKind, targetID string) (bool, error) {
	_, found, err := s.FavoriteID(ctx, kind, targetID)
	return found, err
}

// FavoriteID looks up the record id bookmarking the given target.
func (s *Store) FavoriteID(ctx context.Context, kind models.FavoriteKind, targetID string) (string, bool, error) {
	if s.Inert() {
		return "", false, nil
	}

	var id string
	err := s.db.QueryRowContext(ctx, `
		SELECT id FROM favorites
		WHERE owner_id = ? AND kind = ? AND target_id = ?
		LIMIT 1
	`, s.ownerID, string(kind), targetID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("favorites: lookup: %w", err)
	}
	return id, true, nil
}

// Subscribe delivers the current list immediately and again after every add
// or remove by this owner. The returned cancel function must be called on
// unmount; it closes the channel. A failed initial read returns the error
// instead of a subscription.
func (s *Store) Subscribe(ctx context.Context) (<-chan []models.Favorite, func(), error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, nil, errors.New("favorites: store closed")
	}

	id := s.nextSub
	s.nextSub++
	ch := make(chan []models.Favorite, 1)
	ch <- list
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel, nil
}

// publish pushes the refreshed list to every subscriber. Channels coalesce:
// a slow subscriber sees the newest list, not every intermediate one.
func (s *Store) publish(ctx context.Context) {
	list, err := s.List(ctx)
	if err != nil {
		logging.LogError(s.logger, "failed to refresh subscribers", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- list:
		default:
		}
	}
}

// Close closes all subscriptions and the database.
func (s *Store) Close() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		for id, ch := range s.subs {
			delete(s.subs, id)
			close(ch)
		}
	}
	s.mu.Unlock()

	return s.db.Close()
}
