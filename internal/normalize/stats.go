package normalize

import (
	"fmt"

	"github.com/pucktrack/nhl-ingest/internal/domain/player"
	"github.com/pucktrack/nhl-ingest/internal/domain/seasonstats"
	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
)

// SeasonRow is the output of normalizing one year-by-year split: exactly one
// of Skater or Goalie is set, selected by the player's position type.
type SeasonRow struct {
	Skater *seasonstats.SkaterSeason
	Goalie *seasonstats.GoalieSeason
}

func (r SeasonRow) Key() stint.Key {
	if r.Skater != nil {
		return r.Skater.Key()
	}
	if r.Goalie != nil {
		return r.Goalie.Key()
	}
	return stint.Key{}
}

// goalie-only and skater-only markers in a stat block, used to detect payloads
// of the wrong kind before the player's role is even consulted.
var goalieOnlyStatKeys = []string{"saves", "savePercentage", "goalAgainstAverage", "shotsAgainst", "wins"}
var skaterOnlyStatKeys = []string{"plusMinus", "blocked", "shifts", "faceOffPct"}

type seasonKeyFields struct {
	PlayerID int64  `validate:"required,gt=0"`
	TeamID   int64  `validate:"required,gt=0"`
	Season   string `validate:"required,len=8,numeric"`
}

// IsNHLSplit reports whether a year-by-year split is NHL play. Junior and
// minor-league lines share the same shape and are handled separately.
func IsNHLSplit(rec RawRecord) bool {
	return rec.Child("league").Str("name") == NHLLeagueName
}

// SeasonStats flattens one NHL year-by-year split into either a skater or a
// goalie season row for the given player. The nested team reference becomes
// the team_id foreign key. Sequence is left at zero: discovery-order
// assignment belongs to the sequence resolver, not the payload.
func (n *Normalizer) SeasonStats(p player.Player, rec RawRecord) (SeasonRow, error) {
	season := rec.Str("season")
	teamID := rec.Child("team").Int64("id")
	stat := rec.Child("stat")

	keys := seasonKeyFields{PlayerID: p.ID, TeamID: teamID, Season: season}
	if err := n.validate.Struct(keys); err != nil {
		return SeasonRow{}, fmt.Errorf("%w: season split for player %d: %v", ErrMalformedRecord, p.ID, err)
	}

	if err := checkStatKind(p, stat); err != nil {
		return SeasonRow{}, err
	}

	if p.IsGoalie() {
		out := seasonstats.GoalieSeason{
			PlayerID:            p.ID,
			TeamID:              teamID,
			Season:              season,
			TimeOnIce:           stat.Str("timeOnIce"),
			Games:               stat.Int("games"),
			Starts:              stat.Int("gamesStarted"),
			Wins:                stat.Int("wins"),
			Losses:              stat.Int("losses"),
			OvertimeWins:        stat.Int("ot"),
			Shutouts:            stat.Int("shutouts"),
			Saves:               stat.Int("saves"),
			PowerPlaySaves:      stat.Int("powerPlaySaves"),
			ShorthandedSaves:    stat.Int("shortHandedSaves"),
			EvenSaves:           stat.Int("evenSaves"),
			ShotsAgainst:        stat.Int("shotsAgainst"),
			GoalsAgainst:        stat.Int("goalsAgainst"),
			PowerPlayShots:      stat.Int("powerPlayShots"),
			ShorthandedShots:    stat.Int("shortHandedShots"),
			EvenShots:           stat.Int("evenShots"),
			SavePct:             stat.Float("savePercentage"),
			GoalsAgainstAverage: stat.Float("goalAgainstAverage"),
			PowerPlaySavePct:    stat.Float("powerPlaySavePercentage"),
			ShorthandedSavePct:  stat.Float("shortHandedSavePercentage"),
			EvenSavePct:         stat.Float("evenStrengthSavePercentage"),
		}
		return SeasonRow{Goalie: &out}, nil
	}

	out := seasonstats.SkaterSeason{
		PlayerID:             p.ID,
		TeamID:               teamID,
		Season:               season,
		TimeOnIce:            stat.Str("timeOnIce"),
		Games:                stat.Int("games"),
		Assists:              stat.Int("assists"),
		Goals:                stat.Int("goals"),
		PIM:                  stat.Int("pim"),
		Shots:                stat.Int("shots"),
		Hits:                 stat.Int("hits"),
		PowerPlayGoals:       stat.Int("powerPlayGoals"),
		PowerPlayPoints:      stat.Int("powerPlayPoints"),
		PowerPlayTimeOnIce:   stat.Str("powerPlayTimeOnIce"),
		EvenTimeOnIce:        stat.Str("evenTimeOnIce"),
		FaceoffPct:           stat.Float("faceOffPct"),
		ShotPct:              stat.Float("shotPct"),
		GameWinningGoals:     stat.Int("gameWinningGoals"),
		OvertimeGoals:        stat.Int("overTimeGoals"),
		ShorthandedGoals:     stat.Int("shortHandedGoals"),
		ShorthandedPoints:    stat.Int("shortHandedPoints"),
		ShorthandedTimeOnIce: stat.Str("shortHandedTimeOnIce"),
		BlockedShots:         stat.Int("blocked"),
		PlusMinus:            stat.Int("plusMinus"),
		Points:               stat.Int("points"),
		Shifts:               stat.Int("shifts"),
	}
	return SeasonRow{Skater: &out}, nil
}

// checkStatKind rejects a stat block whose exclusive markers contradict the
// player's role, e.g. a save-percentage payload for a forward. A block with
// markers of neither kind is acceptable for both (sparse early-era data).
func checkStatKind(p player.Player, stat RawRecord) error {
	goalieKind := hasAny(stat, goalieOnlyStatKeys)
	skaterKind := hasAny(stat, skaterOnlyStatKeys)

	if p.IsGoalie() && skaterKind && !goalieKind {
		return fmt.Errorf("%w: skater payload for goalie %d (%s)", ErrRoleMismatch, p.ID, p.FullName)
	}
	if !p.IsGoalie() && goalieKind && !skaterKind {
		return fmt.Errorf("%w: goalie payload for %s %d (%s)", ErrRoleMismatch, p.PositionType, p.ID, p.FullName)
	}

	return nil
}

func hasAny(rec RawRecord, keys []string) bool {
	for _, key := range keys {
		if rec.Has(key) {
			return true
		}
	}
	return false
}
