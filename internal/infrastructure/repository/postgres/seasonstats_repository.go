package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pucktrack/nhl-ingest/internal/domain/seasonstats"
	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
	qb "github.com/pucktrack/nhl-ingest/internal/platform/querybuilder"
)

type SeasonStatsRepository struct {
	db sqlx.ExtContext
}

func NewSeasonStatsRepository(db sqlx.ExtContext) *SeasonStatsRepository {
	return &SeasonStatsRepository{db: db}
}

func statKeyConditions(key stint.Key) []qb.Condition {
	return []qb.Condition{
		qb.Eq("player_id", key.PlayerID),
		qb.Eq("team_id", key.TeamID),
		qb.Eq("season", key.Season),
		qb.Eq("sequence", key.Sequence),
	}
}

func (r *SeasonStatsRepository) GetSkater(ctx context.Context, key stint.Key) (seasonstats.SkaterSeason, bool, error) {
	query, args, err := qb.Select("*").From("skater_season_stats").
		Where(statKeyConditions(key)...).
		ToSQL()
	if err != nil {
		return seasonstats.SkaterSeason{}, false, fmt.Errorf("build get skater season query: %w", err)
	}

	var row skaterSeasonTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return seasonstats.SkaterSeason{}, false, nil
		}
		return seasonstats.SkaterSeason{}, false, fmt.Errorf("get skater season: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonStatsRepository) InsertSkater(ctx context.Context, item seasonstats.SkaterSeason) error {
	query, args, err := qb.InsertModel("skater_season_stats", newSkaterSeasonInsertModel(item))
	if err != nil {
		return fmt.Errorf("build insert skater season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert skater season %s: %w", item.Key(), err)
	}
	return nil
}

func (r *SeasonStatsRepository) UpdateSkater(ctx context.Context, item seasonstats.SkaterSeason) error {
	query, args, err := qb.Update("skater_season_stats").
		Set("time_on_ice", item.TimeOnIce).
		Set("games", item.Games).
		Set("assists", item.Assists).
		Set("goals", item.Goals).
		Set("pim", item.PIM).
		Set("shots", item.Shots).
		Set("hits", item.Hits).
		Set("power_play_goals", item.PowerPlayGoals).
		Set("power_play_points", item.PowerPlayPoints).
		Set("power_play_time_on_ice", item.PowerPlayTimeOnIce).
		Set("even_time_on_ice", item.EvenTimeOnIce).
		Set("faceoff_pct", item.FaceoffPct).
		Set("shot_pct", item.ShotPct).
		Set("game_winning_goals", item.GameWinningGoals).
		Set("overtime_goals", item.OvertimeGoals).
		Set("shorthanded_goals", item.ShorthandedGoals).
		Set("shorthanded_points", item.ShorthandedPoints).
		Set("shorthanded_time_on_ice", item.ShorthandedTimeOnIce).
		Set("blocked_shots", item.BlockedShots).
		Set("plus_minus", item.PlusMinus).
		Set("points", item.Points).
		Set("shifts", item.Shifts).
		Set("updated_at", time.Now().UTC()).
		Where(statKeyConditions(item.Key())...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update skater season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update skater season %s: %w", item.Key(), err)
	}
	return nil
}

func (r *SeasonStatsRepository) GetGoalie(ctx context.Context, key stint.Key) (seasonstats.GoalieSeason, bool, error) {
	query, args, err := qb.Select("*").From("goalie_season_stats").
		Where(statKeyConditions(key)...).
		ToSQL()
	if err != nil {
		return seasonstats.GoalieSeason{}, false, fmt.Errorf("build get goalie season query: %w", err)
	}

	var row goalieSeasonTableModel
	if err := sqlx.GetContext(ctx, r.db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return seasonstats.GoalieSeason{}, false, nil
		}
		return seasonstats.GoalieSeason{}, false, fmt.Errorf("get goalie season: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeasonStatsRepository) InsertGoalie(ctx context.Context, item seasonstats.GoalieSeason) error {
	query, args, err := qb.InsertModel("goalie_season_stats", newGoalieSeasonInsertModel(item))
	if err != nil {
		return fmt.Errorf("build insert goalie season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert goalie season %s: %w", item.Key(), err)
	}
	return nil
}

func (r *SeasonStatsRepository) UpdateGoalie(ctx context.Context, item seasonstats.GoalieSeason) error {
	query, args, err := qb.Update("goalie_season_stats").
		Set("time_on_ice", item.TimeOnIce).
		Set("games", item.Games).
		Set("starts", item.Starts).
		Set("wins", item.Wins).
		Set("losses", item.Losses).
		Set("overtime_wins", item.OvertimeWins).
		Set("shutouts", item.Shutouts).
		Set("saves", item.Saves).
		Set("power_play_saves", item.PowerPlaySaves).
		Set("shorthanded_saves", item.ShorthandedSaves).
		Set("even_saves", item.EvenSaves).
		Set("shots_against", item.ShotsAgainst).
		Set("goals_against", item.GoalsAgainst).
		Set("power_play_shots", item.PowerPlayShots).
		Set("shorthanded_shots", item.ShorthandedShots).
		Set("even_shots", item.EvenShots).
		Set("save_pct", item.SavePct).
		Set("goals_against_average", item.GoalsAgainstAverage).
		Set("power_play_save_pct", item.PowerPlaySavePct).
		Set("shorthanded_save_pct", item.ShorthandedSavePct).
		Set("even_save_pct", item.EvenSavePct).
		Set("updated_at", time.Now().UTC()).
		Where(statKeyConditions(item.Key())...).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update goalie season query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update goalie season %s: %w", item.Key(), err)
	}
	return nil
}
