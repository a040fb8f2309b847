package stint

import "context"

// Repository describes affiliation persistence needs from the ingestion
// engine. ListByPlayerSeason spans all teams so the caller can enforce the
// single-active-stint invariant per (player, season).
type Repository interface {
	Get(ctx context.Context, key Key) (Stint, bool, error)
	ListByPlayerSeason(ctx context.Context, playerID int64, season string) ([]Stint, error)
	Insert(ctx context.Context, item Stint) error
	Update(ctx context.Context, item Stint) error
}
