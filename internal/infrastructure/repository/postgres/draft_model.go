package postgres

import (
	"database/sql"
	"time"

	"github.com/pucktrack/nhl-ingest/internal/domain/draft"
)

type draftRecordTableModel struct {
	PlayerID    int64 `db:"player_id"`
	DraftYear   int   `db:"draft_year"`
	Round       int   `db:"round"`
	RoundPick   int   `db:"round_pick"`
	OverallPick int   `db:"overall_pick"`
	TeamID      int64 `db:"team_id"`

	ProspectID    sql.NullInt64  `db:"prospect_id"`
	FirstName     sql.NullString `db:"first_name"`
	LastName      sql.NullString `db:"last_name"`
	BirthDate     sql.NullString `db:"birth_date"`
	Height        sql.NullString `db:"height"`
	Weight        sql.NullInt64  `db:"weight"`
	ShootsCatches sql.NullString `db:"shoots_catches"`
	Position      sql.NullString `db:"position"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type draftRecordInsertModel struct {
	PlayerID    int64 `db:"player_id"`
	DraftYear   int   `db:"draft_year"`
	Round       int   `db:"round"`
	RoundPick   int   `db:"round_pick"`
	OverallPick int   `db:"overall_pick"`
	TeamID      int64 `db:"team_id"`

	ProspectID    sql.NullInt64  `db:"prospect_id"`
	FirstName     sql.NullString `db:"first_name"`
	LastName      sql.NullString `db:"last_name"`
	BirthDate     sql.NullString `db:"birth_date"`
	Height        sql.NullString `db:"height"`
	Weight        sql.NullInt64  `db:"weight"`
	ShootsCatches sql.NullString `db:"shoots_catches"`
	Position      sql.NullString `db:"position"`
}

func newDraftRecordInsertModel(item draft.Record) draftRecordInsertModel {
	return draftRecordInsertModel{
		PlayerID:      item.PlayerID,
		DraftYear:     item.DraftYear,
		Round:         item.Round,
		RoundPick:     item.RoundPick,
		OverallPick:   item.OverallPick,
		TeamID:        item.TeamID,
		ProspectID:    nullInt64(item.ProspectID),
		FirstName:     nullString(item.FirstName),
		LastName:      nullString(item.LastName),
		BirthDate:     nullString(item.BirthDate),
		Height:        nullString(item.Height),
		Weight:        nullInt64(item.Weight),
		ShootsCatches: nullString(item.ShootsCatches),
		Position:      nullString(item.Position),
	}
}

func (m draftRecordTableModel) toDomain() draft.Record {
	return draft.Record{
		PlayerID:      m.PlayerID,
		DraftYear:     m.DraftYear,
		Round:         m.Round,
		RoundPick:     m.RoundPick,
		OverallPick:   m.OverallPick,
		TeamID:        m.TeamID,
		ProspectID:    nullInt64ToInt64(m.ProspectID),
		FirstName:     nullStringToStr(m.FirstName),
		LastName:      nullStringToStr(m.LastName),
		BirthDate:     nullStringToStr(m.BirthDate),
		Height:        nullStringToStr(m.Height),
		Weight:        nullInt64ToInt64(m.Weight),
		ShootsCatches: nullStringToStr(m.ShootsCatches),
		Position:      nullStringToStr(m.Position),
	}
}

type juniorSeasonTableModel struct {
	PlayerID int64  `db:"player_id"`
	Season   string `db:"season"`
	Sequence int    `db:"sequence"`
	League   string `db:"league"`
	TeamName string `db:"team_name"`

	Games     int       `db:"games"`
	Goals     int       `db:"goals"`
	Assists   int       `db:"assists"`
	Points    int       `db:"points"`
	PIM       int       `db:"pim"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type juniorSeasonInsertModel struct {
	PlayerID int64  `db:"player_id"`
	Season   string `db:"season"`
	Sequence int    `db:"sequence"`
	League   string `db:"league"`
	TeamName string `db:"team_name"`

	Games   int `db:"games"`
	Goals   int `db:"goals"`
	Assists int `db:"assists"`
	Points  int `db:"points"`
	PIM     int `db:"pim"`
}

func newJuniorSeasonInsertModel(item draft.JuniorSeason) juniorSeasonInsertModel {
	return juniorSeasonInsertModel{
		PlayerID: item.PlayerID,
		Season:   item.Season,
		Sequence: item.Sequence,
		League:   item.League,
		TeamName: item.TeamName,
		Games:    item.Games,
		Goals:    item.Goals,
		Assists:  item.Assists,
		Points:   item.Points,
		PIM:      item.PIM,
	}
}

func (m juniorSeasonTableModel) toDomain() draft.JuniorSeason {
	return draft.JuniorSeason{
		PlayerID: m.PlayerID,
		Season:   m.Season,
		Sequence: m.Sequence,
		League:   m.League,
		TeamName: m.TeamName,
		Games:    m.Games,
		Goals:    m.Goals,
		Assists:  m.Assists,
		Points:   m.Points,
		PIM:      m.PIM,
	}
}
