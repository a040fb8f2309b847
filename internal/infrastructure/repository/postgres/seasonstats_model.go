package postgres

import (
	"time"

	"github.com/pucktrack/nhl-ingest/internal/domain/seasonstats"
)

type skaterSeasonTableModel struct {
	PlayerID int64  `db:"player_id"`
	TeamID   int64  `db:"team_id"`
	Season   string `db:"season"`
	Sequence int    `db:"sequence"`

	TimeOnIce            string    `db:"time_on_ice"`
	Games                int       `db:"games"`
	Assists              int       `db:"assists"`
	Goals                int       `db:"goals"`
	PIM                  int       `db:"pim"`
	Shots                int       `db:"shots"`
	Hits                 int       `db:"hits"`
	PowerPlayGoals       int       `db:"power_play_goals"`
	PowerPlayPoints      int       `db:"power_play_points"`
	PowerPlayTimeOnIce   string    `db:"power_play_time_on_ice"`
	EvenTimeOnIce        string    `db:"even_time_on_ice"`
	FaceoffPct           float64   `db:"faceoff_pct"`
	ShotPct              float64   `db:"shot_pct"`
	GameWinningGoals     int       `db:"game_winning_goals"`
	OvertimeGoals        int       `db:"overtime_goals"`
	ShorthandedGoals     int       `db:"shorthanded_goals"`
	ShorthandedPoints    int       `db:"shorthanded_points"`
	ShorthandedTimeOnIce string    `db:"shorthanded_time_on_ice"`
	BlockedShots         int       `db:"blocked_shots"`
	PlusMinus            int       `db:"plus_minus"`
	Points               int       `db:"points"`
	Shifts               int       `db:"shifts"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

type skaterSeasonInsertModel struct {
	PlayerID int64  `db:"player_id"`
	TeamID   int64  `db:"team_id"`
	Season   string `db:"season"`
	Sequence int    `db:"sequence"`

	TimeOnIce            string  `db:"time_on_ice"`
	Games                int     `db:"games"`
	Assists              int     `db:"assists"`
	Goals                int     `db:"goals"`
	PIM                  int     `db:"pim"`
	Shots                int     `db:"shots"`
	Hits                 int     `db:"hits"`
	PowerPlayGoals       int     `db:"power_play_goals"`
	PowerPlayPoints      int     `db:"power_play_points"`
	PowerPlayTimeOnIce   string  `db:"power_play_time_on_ice"`
	EvenTimeOnIce        string  `db:"even_time_on_ice"`
	FaceoffPct           float64 `db:"faceoff_pct"`
	ShotPct              float64 `db:"shot_pct"`
	GameWinningGoals     int     `db:"game_winning_goals"`
	OvertimeGoals        int     `db:"overtime_goals"`
	ShorthandedGoals     int     `db:"shorthanded_goals"`
	ShorthandedPoints    int     `db:"shorthanded_points"`
	ShorthandedTimeOnIce string  `db:"shorthanded_time_on_ice"`
	BlockedShots         int     `db:"blocked_shots"`
	PlusMinus            int     `db:"plus_minus"`
	Points               int     `db:"points"`
	Shifts               int     `db:"shifts"`
}

func newSkaterSeasonInsertModel(item seasonstats.SkaterSeason) skaterSeasonInsertModel {
	return skaterSeasonInsertModel{
		PlayerID:             item.PlayerID,
		TeamID:               item.TeamID,
		Season:               item.Season,
		Sequence:             item.Sequence,
		TimeOnIce:            item.TimeOnIce,
		Games:                item.Games,
		Assists:              item.Assists,
		Goals:                item.Goals,
		PIM:                  item.PIM,
		Shots:                item.Shots,
		Hits:                 item.Hits,
		PowerPlayGoals:       item.PowerPlayGoals,
		PowerPlayPoints:      item.PowerPlayPoints,
		PowerPlayTimeOnIce:   item.PowerPlayTimeOnIce,
		EvenTimeOnIce:        item.EvenTimeOnIce,
		FaceoffPct:           item.FaceoffPct,
		ShotPct:              item.ShotPct,
		GameWinningGoals:     item.GameWinningGoals,
		OvertimeGoals:        item.OvertimeGoals,
		ShorthandedGoals:     item.ShorthandedGoals,
		ShorthandedPoints:    item.ShorthandedPoints,
		ShorthandedTimeOnIce: item.ShorthandedTimeOnIce,
		BlockedShots:         item.BlockedShots,
		PlusMinus:            item.PlusMinus,
		Points:               item.Points,
		Shifts:               item.Shifts,
	}
}

func (m skaterSeasonTableModel) toDomain() seasonstats.SkaterSeason {
	return seasonstats.SkaterSeason{
		PlayerID:             m.PlayerID,
		TeamID:               m.TeamID,
		Season:               m.Season,
		Sequence:             m.Sequence,
		TimeOnIce:            m.TimeOnIce,
		Games:                m.Games,
		Assists:              m.Assists,
		Goals:                m.Goals,
		PIM:                  m.PIM,
		Shots:                m.Shots,
		Hits:                 m.Hits,
		PowerPlayGoals:       m.PowerPlayGoals,
		PowerPlayPoints:      m.PowerPlayPoints,
		PowerPlayTimeOnIce:   m.PowerPlayTimeOnIce,
		EvenTimeOnIce:        m.EvenTimeOnIce,
		FaceoffPct:           m.FaceoffPct,
		ShotPct:              m.ShotPct,
		GameWinningGoals:     m.GameWinningGoals,
		OvertimeGoals:        m.OvertimeGoals,
		ShorthandedGoals:     m.ShorthandedGoals,
		ShorthandedPoints:    m.ShorthandedPoints,
		ShorthandedTimeOnIce: m.ShorthandedTimeOnIce,
		BlockedShots:         m.BlockedShots,
		PlusMinus:            m.PlusMinus,
		Points:               m.Points,
		Shifts:               m.Shifts,
	}
}

type goalieSeasonTableModel struct {
	PlayerID int64  `db:"player_id"`
	TeamID   int64  `db:"team_id"`
	Season   string `db:"season"`
	Sequence int    `db:"sequence"`

	TimeOnIce           string    `db:"time_on_ice"`
	Games               int       `db:"games"`
	Starts              int       `db:"starts"`
	Wins                int       `db:"wins"`
	Losses              int       `db:"losses"`
	OvertimeWins        int       `db:"overtime_wins"`
	Shutouts            int       `db:"shutouts"`
	Saves               int       `db:"saves"`
	PowerPlaySaves      int       `db:"power_play_saves"`
	ShorthandedSaves    int       `db:"shorthanded_saves"`
	EvenSaves           int       `db:"even_saves"`
	ShotsAgainst        int       `db:"shots_against"`
	GoalsAgainst        int       `db:"goals_against"`
	PowerPlayShots      int       `db:"power_play_shots"`
	ShorthandedShots    int       `db:"shorthanded_shots"`
	EvenShots           int       `db:"even_shots"`
	SavePct             float64   `db:"save_pct"`
	GoalsAgainstAverage float64   `db:"goals_against_average"`
	PowerPlaySavePct    float64   `db:"power_play_save_pct"`
	ShorthandedSavePct  float64   `db:"shorthanded_save_pct"`
	EvenSavePct         float64   `db:"even_save_pct"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

type goalieSeasonInsertModel struct {
	PlayerID int64  `db:"player_id"`
	TeamID   int64  `db:"team_id"`
	Season   string `db:"season"`
	Sequence int    `db:"sequence"`

	TimeOnIce           string  `db:"time_on_ice"`
	Games               int     `db:"games"`
	Starts              int     `db:"starts"`
	Wins                int     `db:"wins"`
	Losses              int     `db:"losses"`
	OvertimeWins        int     `db:"overtime_wins"`
	Shutouts            int     `db:"shutouts"`
	Saves               int     `db:"saves"`
	PowerPlaySaves      int     `db:"power_play_saves"`
	ShorthandedSaves    int     `db:"shorthanded_saves"`
	EvenSaves           int     `db:"even_saves"`
	ShotsAgainst        int     `db:"shots_against"`
	GoalsAgainst        int     `db:"goals_against"`
	PowerPlayShots      int     `db:"power_play_shots"`
	ShorthandedShots    int     `db:"shorthanded_shots"`
	EvenShots           int     `db:"even_shots"`
	SavePct             float64 `db:"save_pct"`
	GoalsAgainstAverage float64 `db:"goals_against_average"`
	PowerPlaySavePct    float64 `db:"power_play_save_pct"`
	ShorthandedSavePct  float64 `db:"shorthanded_save_pct"`
	EvenSavePct         float64 `db:"even_save_pct"`
}

func newGoalieSeasonInsertModel(item seasonstats.GoalieSeason) goalieSeasonInsertModel {
	return goalieSeasonInsertModel{
		PlayerID:            item.PlayerID,
		TeamID:              item.TeamID,
		Season:              item.Season,
		Sequence:            item.Sequence,
		TimeOnIce:           item.TimeOnIce,
		Games:               item.Games,
		Starts:              item.Starts,
		Wins:                item.Wins,
		Losses:              item.Losses,
		OvertimeWins:        item.OvertimeWins,
		Shutouts:            item.Shutouts,
		Saves:               item.Saves,
		PowerPlaySaves:      item.PowerPlaySaves,
		ShorthandedSaves:    item.ShorthandedSaves,
		EvenSaves:           item.EvenSaves,
		ShotsAgainst:        item.ShotsAgainst,
		GoalsAgainst:        item.GoalsAgainst,
		PowerPlayShots:      item.PowerPlayShots,
		ShorthandedShots:    item.ShorthandedShots,
		EvenShots:           item.EvenShots,
		SavePct:             item.SavePct,
		GoalsAgainstAverage: item.GoalsAgainstAverage,
		PowerPlaySavePct:    item.PowerPlaySavePct,
		ShorthandedSavePct:  item.ShorthandedSavePct,
		EvenSavePct:         item.EvenSavePct,
	}
}

func (m goalieSeasonTableModel) toDomain() seasonstats.GoalieSeason {
	return seasonstats.GoalieSeason{
		PlayerID:            m.PlayerID,
		TeamID:              m.TeamID,
		Season:              m.Season,
		Sequence:            m.Sequence,
		TimeOnIce:           m.TimeOnIce,
		Games:               m.Games,
		Starts:              m.Starts,
		Wins:                m.Wins,
		Losses:              m.Losses,
		OvertimeWins:        m.OvertimeWins,
		Shutouts:            m.Shutouts,
		Saves:               m.Saves,
		PowerPlaySaves:      m.PowerPlaySaves,
		ShorthandedSaves:    m.ShorthandedSaves,
		EvenSaves:           m.EvenSaves,
		ShotsAgainst:        m.ShotsAgainst,
		GoalsAgainst:        m.GoalsAgainst,
		PowerPlayShots:      m.PowerPlayShots,
		ShorthandedShots:    m.ShorthandedShots,
		EvenShots:           m.EvenShots,
		SavePct:             m.SavePct,
		GoalsAgainstAverage: m.GoalsAgainstAverage,
		PowerPlaySavePct:    m.PowerPlaySavePct,
		ShorthandedSavePct:  m.ShorthandedSavePct,
		EvenSavePct:         m.EvenSavePct,
	}
}
