package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pucktrack/nhl-ingest/internal/domain/player"
	qb "github.com/pucktrack/nhl-ingest/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db sqlx.ExtContext
}

func NewPlayerRepository(db sqlx.ExtContext) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID int64) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build get player by id query: %w", err)
	}

	var row playerTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListIDs(ctx context.Context) ([]int64, error) {
	query, args, err := qb.Select("id").From("players").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player ids query: %w", err)
	}

	var out []int64
	if err := sqlx.SelectContext(ctx, r.db, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select player ids: %w", err)
	}
	return out, nil
}

func (r *PlayerRepository) Insert(ctx context.Context, item player.Player) error {
	query, args, err := qb.InsertModel("players", newPlayerInsertModel(item))
	if err != nil {
		return fmt.Errorf("build insert player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert player %d: %w", item.ID, err)
	}
	return nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) error {
	query, args, err := qb.Update("players").
		Set("full_name", item.FullName).
		Set("birth_date", nullString(item.BirthDate)).
		Set("nationality", nullString(item.Nationality)).
		Set("height", nullString(item.Height)).
		Set("weight", nullInt64(item.Weight)).
		Set("shoots_catches", nullString(item.ShootsCatches)).
		Set("position_code", nullString(item.PositionCode)).
		Set("position_name", nullString(item.PositionName)).
		Set("position_type", nullString(string(item.PositionType))).
		Set("active", item.Active).
		Set("rookie", item.Rookie).
		Set("updated_at", time.Now().UTC()).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player %d: %w", item.ID, err)
	}
	return nil
}
