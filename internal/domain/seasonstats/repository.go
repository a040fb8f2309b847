package seasonstats

import (
	"context"

	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
)

// Repository describes season-stat persistence needs from the ingestion
// engine. Rows are read and written at the full composite key; the caller is
// responsible for writing the matching affiliation row first.
type Repository interface {
	GetSkater(ctx context.Context, key stint.Key) (SkaterSeason, bool, error)
	InsertSkater(ctx context.Context, item SkaterSeason) error
	UpdateSkater(ctx context.Context, item SkaterSeason) error

	GetGoalie(ctx context.Context, key stint.Key) (GoalieSeason, bool, error)
	InsertGoalie(ctx context.Context, item GoalieSeason) error
	UpdateGoalie(ctx context.Context, item GoalieSeason) error
}
