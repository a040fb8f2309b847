package draft

import "context"

// Repository describes draft and junior-stat persistence needs from the
// ingestion engine.
type Repository interface {
	GetRecord(ctx context.Context, playerID int64, draftYear int) (Record, bool, error)
	HasRecordForPlayer(ctx context.Context, playerID int64) (bool, error)
	InsertRecord(ctx context.Context, item Record) error
	UpdateRecord(ctx context.Context, item Record) error

	ListJuniorSeasons(ctx context.Context, playerID int64, season string) ([]JuniorSeason, error)
	InsertJuniorSeason(ctx context.Context, item JuniorSeason) error
	UpdateJuniorSeason(ctx context.Context, item JuniorSeason) error
}
