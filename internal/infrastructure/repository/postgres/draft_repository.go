package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pucktrack/nhl-ingest/internal/domain/draft"
	qb "github.com/pucktrack/nhl-ingest/internal/platform/querybuilder"
)

type DraftRepository struct {
	db sqlx.ExtContext
}

func NewDraftRepository(db sqlx.ExtContext) *DraftRepository {
	return &DraftRepository{db: db}
}

func (r *DraftRepository) GetRecord(ctx context.Context, playerID int64, draftYear int) (draft.Record, bool, error) {
	query, args, err := qb.Select("*").From("draft_records").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("draft_year", draftYear),
		).
		ToSQL()
	if err != nil {
		return draft.Record{}, false, fmt.Errorf("build get draft record query: %w", err)
	}

	var row draftRecordTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return draft.Record{}, false, nil
		}
		return draft.Record{}, false, fmt.Errorf("get draft record: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *DraftRepository) HasRecordForPlayer(ctx context.Context, playerID int64) (bool, error) {
	query, args, err := qb.Select("player_id").From("draft_records").
		Where(qb.Eq("player_id", playerID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build has draft record query: %w", err)
	}

	var ids []int64
	if err := sqlx.SelectContext(ctx, r.db, &ids, query, args...); err != nil {
		return false, fmt.Errorf("has draft record: %w", err)
	}
	return len(ids) > 0, nil
}

func (r *DraftRepository) InsertRecord(ctx context.Context, item draft.Record) error {
	query, args, err := qb.InsertModel("draft_records", newDraftRecordInsertModel(item))
	if err != nil {
		return fmt.Errorf("build insert draft record query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert draft record player=%d year=%d: %w", item.PlayerID, item.DraftYear, err)
	}
	return nil
}

func (r *DraftRepository) UpdateRecord(ctx context.Context, item draft.Record) error {
	query, args, err := qb.Update("draft_records").
		Set("round", item.Round).
		Set("round_pick", item.RoundPick).
		Set("overall_pick", item.OverallPick).
		Set("team_id", item.TeamID).
		Set("prospect_id", nullInt64(item.ProspectID)).
		Set("first_name", nullString(item.FirstName)).
		Set("last_name", nullString(item.LastName)).
		Set("birth_date", nullString(item.BirthDate)).
		Set("height", nullString(item.Height)).
		Set("weight", nullInt64(item.Weight)).
		Set("shoots_catches", nullString(item.ShootsCatches)).
		Set("position", nullString(item.Position)).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("player_id", item.PlayerID),
			qb.Eq("draft_year", item.DraftYear),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update draft record query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update draft record player=%d year=%d: %w", item.PlayerID, item.DraftYear, err)
	}
	return nil
}

func (r *DraftRepository) ListJuniorSeasons(ctx context.Context, playerID int64, season string) ([]draft.JuniorSeason, error) {
	query, args, err := qb.Select("*").From("junior_season_stats").
		Where(
			qb.Eq("player_id", playerID),
			qb.Eq("season", season),
		).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select junior seasons query: %w", err)
	}

	var rows []juniorSeasonTableModel
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select junior seasons: %w", err)
	}

	out := make([]draft.JuniorSeason, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *DraftRepository) InsertJuniorSeason(ctx context.Context, item draft.JuniorSeason) error {
	query, args, err := qb.InsertModel("junior_season_stats", newJuniorSeasonInsertModel(item))
	if err != nil {
		return fmt.Errorf("build insert junior season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert junior season player=%d season=%s: %w", item.PlayerID, item.Season, err)
	}
	return nil
}

func (r *DraftRepository) UpdateJuniorSeason(ctx context.Context, item draft.JuniorSeason) error {
	query, args, err := qb.Update("junior_season_stats").
		Set("league", item.League).
		Set("team_name", item.TeamName).
		Set("games", item.Games).
		Set("goals", item.Goals).
		Set("assists", item.Assists).
		Set("points", item.Points).
		Set("pim", item.PIM).
		Set("updated_at", time.Now().UTC()).
		Where(
			qb.Eq("player_id", item.PlayerID),
			qb.Eq("season", item.Season),
			qb.Eq("sequence", item.Sequence),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update junior season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update junior season player=%d season=%s: %w", item.PlayerID, item.Season, err)
	}
	return nil
}
