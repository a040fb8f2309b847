package normalize

import (
	"fmt"

	"github.com/pucktrack/nhl-ingest/internal/domain/draft"
)

type draftKeyFields struct {
	PlayerID    int64 `validate:"required,gt=0"`
	DraftYear   int   `validate:"required,gt=0"`
	OverallPick int   `validate:"required,gt=0"`
}

// DraftRecord joins one raw draft pick with the prospect detail record it
// points at. The pick carries position and team, the prospect carries the
// biographical snapshot and the NHL player id that keys everything else.
func (n *Normalizer) DraftRecord(draftYear int, pick, prospect RawRecord) (draft.Record, error) {
	out := draft.Record{
		PlayerID:      prospect.Int64("nhlPlayerId"),
		DraftYear:     draftYear,
		Round:         pick.Int("round"),
		RoundPick:     pick.Int("pickInRound"),
		OverallPick:   pick.Int("pickOverall"),
		TeamID:        pick.Child("team").Int64("id"),
		ProspectID:    prospect.Int64("id"),
		FirstName:     prospect.Str("firstName"),
		LastName:      prospect.Str("lastName"),
		BirthDate:     prospect.Str("birthDate"),
		Height:        prospect.Str("height"),
		Weight:        prospect.Int64("weight"),
		ShootsCatches: prospect.Str("shootsCatches"),
		Position:      prospect.Child("primaryPosition").Str("name"),
	}

	keys := draftKeyFields{PlayerID: out.PlayerID, DraftYear: out.DraftYear, OverallPick: out.OverallPick}
	if err := n.validate.Struct(keys); err != nil {
		return draft.Record{}, fmt.Errorf("%w: draft pick overall=%d year=%d: %v",
			ErrMalformedRecord, out.OverallPick, draftYear, err)
	}

	return out, nil
}

type juniorKeyFields struct {
	PlayerID int64  `validate:"required,gt=0"`
	Season   string `validate:"required,len=8,numeric"`
	League   string `validate:"required"`
}

// JuniorSeason flattens one junior-league year-by-year split for a drafted
// prospect. The caller filters splits by the configured junior league names;
// this only shapes the row.
func (n *Normalizer) JuniorSeason(playerID int64, rec RawRecord) (draft.JuniorSeason, error) {
	stat := rec.Child("stat")
	out := draft.JuniorSeason{
		PlayerID: playerID,
		Season:   rec.Str("season"),
		League:   rec.Child("league").Str("name"),
		TeamName: rec.Child("team").Str("name"),
		Games:    stat.Int("games"),
		Goals:    stat.Int("goals"),
		Assists:  stat.Int("assists"),
		Points:   stat.Int("points"),
		PIM:      stat.Int("pim"),
	}

	keys := juniorKeyFields{PlayerID: out.PlayerID, Season: out.Season, League: out.League}
	if err := n.validate.Struct(keys); err != nil {
		return draft.JuniorSeason{}, fmt.Errorf("%w: junior split for player %d: %v", ErrMalformedRecord, playerID, err)
	}

	return out, nil
}
