// Package postgres implements the ingestion repositories over PostgreSQL
// through sqlx and the shared query builder. Every repository runs against an
// ExtContext so the same code serves both the pooled connection and an open
// transaction.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pucktrack/nhl-ingest/internal/domain/draft"
	"github.com/pucktrack/nhl-ingest/internal/domain/player"
	"github.com/pucktrack/nhl-ingest/internal/domain/seasonstats"
	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
	"github.com/pucktrack/nhl-ingest/internal/domain/team"
	"github.com/pucktrack/nhl-ingest/internal/ingest"
)

type Store struct {
	db  *sqlx.DB
	ext sqlx.ExtContext

	teams   *TeamRepository
	players *PlayerRepository
	stints  *StintRepository
	stats   *SeasonStatsRepository
	drafts  *DraftRepository
}

func NewStore(db *sqlx.DB) *Store {
	return newStore(db, db)
}

func newStore(db *sqlx.DB, ext sqlx.ExtContext) *Store {
	return &Store{
		db:      db,
		ext:     ext,
		teams:   &TeamRepository{db: ext},
		players: &PlayerRepository{db: ext},
		stints:  &StintRepository{db: ext},
		stats:   &SeasonStatsRepository{db: ext},
		drafts:  &DraftRepository{db: ext},
	}
}

func (s *Store) Teams() team.Repository              { return s.teams }
func (s *Store) Players() player.Repository          { return s.players }
func (s *Store) Stints() stint.Repository            { return s.stints }
func (s *Store) SeasonStats() seasonstats.Repository { return s.stats }
func (s *Store) Drafts() draft.Repository            { return s.drafts }

// WithinTx runs fn against a Store bound to one transaction. Nested calls
// reuse the already-open transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ingest.Store) error) error {
	if _, open := s.ext.(*sqlx.Tx); open {
		return fn(s)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(newStore(s.db, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback after %v: %w", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
