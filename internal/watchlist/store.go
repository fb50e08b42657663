// Package watchlist persists the set of repositories the dashboard
// keeps warm and refreshes their snapshots on a schedule.
package watchlist

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/apperr"
	"github.com/Parth04Dalvi/Open-Source-Project-Health-Dashboard/internal/gateway"
)

const (
	maxOpenConns    = 10
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

const schema = `
CREATE TABLE IF NOT EXISTS watched_repos (
	id                BIGSERIAL PRIMARY KEY,
	owner             TEXT NOT NULL,
	name              TEXT NOT NULL,
	weeks             INT NOT NULL,
	note              TEXT NOT NULL DEFAULT '',
	created_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_refreshed_at TIMESTAMPTZ,
	UNIQUE (owner, name)
)`

// WatchedRepo is one row of the watchlist. LastRefreshedAt is nil until
// the first scheduled refresh completes.
type WatchedRepo struct {
	ID              int64      `db:"id" json:"id"`
	Owner           string     `db:"owner" json:"owner"`
	Name            string     `db:"name" json:"name"`
	Weeks           int        `db:"weeks" json:"weeks"`
	Note            string     `db:"note" json:"note,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	LastRefreshedAt *time.Time `db:"last_refreshed_at" json:"last_refreshed_at,omitempty"`
}

// Store is the Postgres-backed watchlist.
type Store struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewStore wraps an already-open database handle.
func NewStore(db *sqlx.DB, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Open connects to Postgres and configures the connection pool.
func Open(databaseURL string, logger *zap.Logger) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, apperr.UpstreamUnavailable("cannot connect to the watchlist database", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	logger.Info("watchlist database connected",
		zap.Int("max_open_conns", maxOpenConns),
		zap.Int("max_idle_conns", maxIdleConns))
	return NewStore(db, logger)
}

// EnsureSchema creates the watchlist table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return apperr.Internal("cannot create watchlist schema", err)
	}
	return nil
}

// Add puts a repository on the watchlist, updating the window and note
// when it is already watched. The target is validated with the same
// rules the providers apply.
func (s *Store) Add(ctx context.Context, owner, repo string, weeks int, note string) (*WatchedRepo, error) {
	if err := gateway.ValidateTarget(owner, repo); err != nil {
		return nil, err
	}
	weeks, err := gateway.ClampWeeks(weeks)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO watched_repos (owner, name, weeks, note)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner, name) DO UPDATE SET weeks = EXCLUDED.weeks, note = EXCLUDED.note
		RETURNING id, owner, name, weeks, note, created_at, last_refreshed_at
	`

	var watched WatchedRepo
	if err := s.db.GetContext(ctx, &watched, query, owner, repo, weeks, note); err != nil {
		return nil, apperr.Internal("cannot store watchlist entry", err)
	}

	s.logger.Info("repository watched",
		zap.String("owner", owner),
		zap.String("repo", repo),
		zap.Int("weeks", weeks))
	return &watched, nil
}

// List returns every watched repository ordered by full name.
func (s *Store) List(ctx context.Context) ([]WatchedRepo, error) {
	query := `
		SELECT id, owner, name, weeks, note, created_at, last_refreshed_at
		FROM watched_repos
		ORDER BY owner, name
	`

	watched := []WatchedRepo{}
	if err := s.db.SelectContext(ctx, &watched, query); err != nil {
		return nil, apperr.Internal("cannot list watchlist", err)
	}
	return watched, nil
}

// Remove drops a repository from the watchlist.
func (s *Store) Remove(ctx context.Context, owner, repo string) error {
	if err := gateway.ValidateTarget(owner, repo); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM watched_repos WHERE owner = $1 AND name = $2`, owner, repo)
	if err != nil {
		return apperr.Internal("cannot remove watchlist entry", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.Internal("cannot remove watchlist entry", err)
	}
	if affected == 0 {
		return apperr.NotFound("repository "+owner+"/"+repo+" is not watched", sql.ErrNoRows)
	}

	s.logger.Info("repository unwatched",
		zap.String("owner", owner),
		zap.String("repo", repo))
	return nil
}

// TouchRefreshed records when a watched repository's snapshot was last
// rebuilt.
func (s *Store) TouchRefreshed(ctx context.Context, id int64, at time.Time) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE watched_repos SET last_refreshed_at = $2 WHERE id = $1`, id, at); err != nil {
		return apperr.Internal("cannot mark watchlist entry refreshed", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}
