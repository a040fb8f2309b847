package postgres

import (
	"database/sql"
	"time"

	"github.com/pucktrack/nhl-ingest/internal/domain/team"
)

type teamTableModel struct {
	ID           int64         `db:"id"`
	Name         string        `db:"name"`
	Abbreviation string        `db:"abbreviation"`
	ConferenceID sql.NullInt64 `db:"conference_id"`
	DivisionID   sql.NullInt64 `db:"division_id"`
	FranchiseID  int64         `db:"franchise_id"`
	Active       bool          `db:"active"`
	CreatedAt    time.Time     `db:"created_at"`
	UpdatedAt    time.Time     `db:"updated_at"`
}

type teamInsertModel struct {
	ID           int64         `db:"id"`
	Name         string        `db:"name"`
	Abbreviation string        `db:"abbreviation"`
	ConferenceID sql.NullInt64 `db:"conference_id"`
	DivisionID   sql.NullInt64 `db:"division_id"`
	FranchiseID  int64         `db:"franchise_id"`
	Active       bool          `db:"active"`
}

func newTeamInsertModel(item team.Team) teamInsertModel {
	return teamInsertModel{
		ID:           item.ID,
		Name:         item.Name,
		Abbreviation: item.Abbreviation,
		ConferenceID: nullInt64(item.ConferenceID),
		DivisionID:   nullInt64(item.DivisionID),
		FranchiseID:  item.FranchiseID,
		Active:       item.Active,
	}
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:           m.ID,
		Name:         m.Name,
		Abbreviation: m.Abbreviation,
		ConferenceID: nullInt64ToInt64(m.ConferenceID),
		DivisionID:   nullInt64ToInt64(m.DivisionID),
		FranchiseID:  m.FranchiseID,
		Active:       m.Active,
	}
}
