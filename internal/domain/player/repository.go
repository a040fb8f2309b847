package player

import "context"

// Repository describes player persistence needs from the ingestion engine.
type Repository interface {
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	ListIDs(ctx context.Context) ([]int64, error)
	Insert(ctx context.Context, item Player) error
	Update(ctx context.Context, item Player) error
}
