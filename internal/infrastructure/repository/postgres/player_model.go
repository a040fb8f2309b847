package postgres

import (
	"database/sql"
	"time"

	"github.com/pucktrack/nhl-ingest/internal/domain/player"
)

type playerTableModel struct {
	ID            int64          `db:"id"`
	FullName      string         `db:"full_name"`
	BirthDate     sql.NullString `db:"birth_date"`
	Nationality   sql.NullString `db:"nationality"`
	Height        sql.NullString `db:"height"`
	Weight        sql.NullInt64  `db:"weight"`
	ShootsCatches sql.NullString `db:"shoots_catches"`
	PositionCode  sql.NullString `db:"position_code"`
	PositionName  sql.NullString `db:"position_name"`
	PositionType  sql.NullString `db:"position_type"`
	Active        bool           `db:"active"`
	Rookie        bool           `db:"rookie"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type playerInsertModel struct {
	ID            int64          `db:"id"`
	FullName      string         `db:"full_name"`
	BirthDate     sql.NullString `db:"birth_date"`
	Nationality   sql.NullString `db:"nationality"`
	Height        sql.NullString `db:"height"`
	Weight        sql.NullInt64  `db:"weight"`
	ShootsCatches sql.NullString `db:"shoots_catches"`
	PositionCode  sql.NullString `db:"position_code"`
	PositionName  sql.NullString `db:"position_name"`
	PositionType  sql.NullString `db:"position_type"`
	Active        bool           `db:"active"`
	Rookie        bool           `db:"rookie"`
}

func newPlayerInsertModel(item player.Player) playerInsertModel {
	return playerInsertModel{
		ID:            item.ID,
		FullName:      item.FullName,
		BirthDate:     nullString(item.BirthDate),
		Nationality:   nullString(item.Nationality),
		Height:        nullString(item.Height),
		Weight:        nullInt64(item.Weight),
		ShootsCatches: nullString(item.ShootsCatches),
		PositionCode:  nullString(item.PositionCode),
		PositionName:  nullString(item.PositionName),
		PositionType:  nullString(string(item.PositionType)),
		Active:        item.Active,
		Rookie:        item.Rookie,
	}
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:            m.ID,
		FullName:      m.FullName,
		BirthDate:     nullStringToStr(m.BirthDate),
		Nationality:   nullStringToStr(m.Nationality),
		Height:        nullStringToStr(m.Height),
		Weight:        nullInt64ToInt64(m.Weight),
		ShootsCatches: nullStringToStr(m.ShootsCatches),
		PositionCode:  nullStringToStr(m.PositionCode),
		PositionName:  nullStringToStr(m.PositionName),
		PositionType:  player.PositionType(nullStringToStr(m.PositionType)),
		Active:        m.Active,
		Rookie:        m.Rookie,
	}
}
