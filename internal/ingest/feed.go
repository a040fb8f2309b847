package ingest

import (
	"context"

	"github.com/pucktrack/nhl-ingest/internal/normalize"
)

// Feed is the fetch adapter: it delivers raw hierarchical records per entity
// type and knows nothing about the relational schema. Implementations bound
// every call with the configured timeout and retry transient failures a fixed
// number of times before giving up.
type Feed interface {
	Teams(ctx context.Context) ([]normalize.RawRecord, error)
	Roster(ctx context.Context, teamID int64) ([]normalize.RawRecord, error)
	Player(ctx context.Context, playerID int64) (normalize.RawRecord, error)
	SeasonSplits(ctx context.Context, playerID int64) ([]normalize.RawRecord, error)
	DraftPicks(ctx context.Context, year int) ([]normalize.RawRecord, error)
	Prospect(ctx context.Context, prospectID int64) (normalize.RawRecord, error)
}
