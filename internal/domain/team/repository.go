package team

import "context"

// Repository describes team persistence needs from the ingestion engine.
// Update matches the row on FranchiseID, the stable identity, so a league id
// reassignment rewrites the existing row in place instead of duplicating the
// franchise.
type Repository interface {
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	GetByFranchiseID(ctx context.Context, franchiseID int64) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	Insert(ctx context.Context, item Team) error
	Update(ctx context.Context, item Team) error
}
