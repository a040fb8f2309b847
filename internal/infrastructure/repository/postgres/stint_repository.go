package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
	qb "github.com/pucktrack/nhl-ingest/internal/platform/querybuilder"
)

type stintTableModel struct {
	PlayerID  int64     `db:"player_id"`
	TeamID    int64     `db:"team_id"`
	Season    string    `db:"season"`
	Sequence  int       `db:"sequence"`
	Active    bool      `db:"active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type stintInsertModel struct {
	PlayerID int64  `db:"player_id"`
	TeamID   int64  `db:"team_id"`
	Season   string `db:"season"`
	Sequence int    `db:"sequence"`
	Active   bool   `db:"active"`
}

func (m stintTableModel) toDomain() stint.Stint {
	return stint.Stint{
		PlayerID: m.PlayerID,
		TeamID:   m.TeamID,
		Season:   m.Season,
		Sequence: m.Sequence,
		Active:   m.Active,
	}
}

type StintRepository struct {
	db sqlx.ExtContext
}

func NewStintRepository(db sqlx.ExtContext) *StintRepository {
	return &StintRepository{db: db}
}

func (r *StintRepository) Get(ctx context.Context, key stint.Key) (stint.Stint, bool, error) {
	query, args, err := qb.Select("*").From("team_players").
		Where(
			qb.Eq("player_id", key.PlayerID),
			qb.Eq("team_id", key.TeamID),
			qb.Eq("season", key.Season),
			qb.Eq("sequence", key.Sequence),
		).
		ToSQL()
	if err != nil {
		return stint.Stint{}, false, fmt.Errorf("build get stint query: %w", err)
	}

	var row stintTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stint.Stint{}, false, nil
		}
		return stint.Stint{}, false, fmt.Errorf("get stint: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *StintRepository) ListByPlayerSeason(ctx context.Context, playerID int64, season string) ([]stint.Stint, error) {
	query, args, err := qb.Select("*").From("team_players").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("season", season),
		).
		OrderBy("team_id", "sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stints by player season query: %w", err)
	}

	var rows []stintTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stints by player season: %w", err)
	}

	out := make([]stint.Stint, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StintRepository) Insert(ctx context.Context, item stint.Stint) error {
	insertModel := stintInsertModel{
		PlayerID: item.PlayerID,
		TeamID:   item.TeamID,
		Season:   item.Season,
		Sequence: item.Sequence,
		Active:   item.Active,
	}
	query, args, err := qb.InsertModel("team_players", insertModel)
	if err != nil {
		return fmt.Errorf("build insert stint query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert stint %s: %w", item.Key(), err)
	}
	return nil
}

func (r *StintRepository) Update(ctx context.Context, item stint.Stint) error {
	query, args, err := qb.Update("team_players").
		Set("active", item.Active).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("player_id", item.PlayerID),
			qb.Eq("team_id", item.TeamID),
			qb.Eq("season", item.Season),
			qb.Eq("sequence", item.Sequence),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update stint query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update stint %s: %w", item.Key(), err)
	}
	return nil
}
