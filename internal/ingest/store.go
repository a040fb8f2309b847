package ingest

import (
	"context"

	"github.com/pucktrack/nhl-ingest/internal/domain/draft"
	"github.com/pucktrack/nhl-ingest/internal/domain/player"
	"github.com/pucktrack/nhl-ingest/internal/domain/seasonstats"
	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
	"github.com/pucktrack/nhl-ingest/internal/domain/team"
)

// Store is the persistence gateway the ingestion engine writes through. The
// engine never sees SQL; it describes rows through the typed repositories.
//
// WithinTx runs fn against a Store whose writes commit or roll back as one
// unit. The coordinator wraps each prerequisite-then-dependent pair (stint +
// stats row) in one transactional scope so cancellation cannot strand a
// half-written record.
type Store interface {
	Teams() team.Repository
	Players() player.Repository
	Stints() stint.Repository
	SeasonStats() seasonstats.Repository
	Drafts() draft.Repository

	WithinTx(ctx context.Context, fn func(Store) error) error
}
