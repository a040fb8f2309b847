package seasonstats

import (
	"fmt"

	"github.com/pucktrack/nhl-ingest/internal/domain/stint"
)

// SkaterSeason is one season aggregate for a forward or defenseman, keyed by
// the same composite key as the affiliation row it depends on.
type SkaterSeason struct {
	PlayerID int64
	TeamID   int64
	Season   string
	Sequence int

	TimeOnIce            string
	Games                int
	Assists              int
	Goals                int
	PIM                  int
	Shots                int
	Hits                 int
	PowerPlayGoals       int
	PowerPlayPoints      int
	PowerPlayTimeOnIce   string
	EvenTimeOnIce        string
	FaceoffPct           float64
	ShotPct              float64
	GameWinningGoals     int
	OvertimeGoals        int
	ShorthandedGoals     int
	ShorthandedPoints    int
	ShorthandedTimeOnIce string
	BlockedShots         int
	PlusMinus            int
	Points               int
	Shifts               int
}

func (s SkaterSeason) Key() stint.Key {
	return stint.Key{PlayerID: s.PlayerID, TeamID: s.TeamID, Season: s.Season, Sequence: s.Sequence}
}

func (s SkaterSeason) NaturalKey() stint.NaturalKey {
	return stint.NaturalKey{PlayerID: s.PlayerID, TeamID: s.TeamID, Season: s.Season}
}

// Identical reports whether two rows carry the same stat content. Sequence is
// excluded: content equality is what decides refresh-vs-new-stint, the
// sequence is assigned afterwards.
func (s SkaterSeason) Identical(other SkaterSeason) bool {
	s.Sequence = other.Sequence
	return s == other
}

// Accumulates reports whether this row reads as a later snapshot of the same
// stint as prior: every counting stat is at least what was already stored.
// A drop in games played means the feed is describing a different stint.
func (s SkaterSeason) Accumulates(prior SkaterSeason) bool {
	return s.Games >= prior.Games &&
		s.Goals >= prior.Goals &&
		s.Assists >= prior.Assists &&
		s.Points >= prior.Points &&
		s.PIM >= prior.PIM &&
		s.Shots >= prior.Shots
}

func (s SkaterSeason) Validate() error {
	return validateKey(s.PlayerID, s.TeamID, s.Season)
}

// GoalieSeason is one season aggregate for a goaltender. The column set is
// disjoint from SkaterSeason by design: a player produces rows of exactly one
// kind, selected by position type.
type GoalieSeason struct {
	PlayerID int64
	TeamID   int64
	Season   string
	Sequence int

	TimeOnIce           string
	Games               int
	Starts              int
	Wins                int
	Losses              int
	OvertimeWins        int
	Shutouts            int
	Saves               int
	PowerPlaySaves      int
	ShorthandedSaves    int
	EvenSaves           int
	ShotsAgainst        int
	GoalsAgainst        int
	PowerPlayShots      int
	ShorthandedShots    int
	EvenShots           int
	SavePct             float64
	GoalsAgainstAverage float64
	PowerPlaySavePct    float64
	ShorthandedSavePct  float64
	EvenSavePct         float64
}

func (g GoalieSeason) Key() stint.Key {
	return stint.Key{PlayerID: g.PlayerID, TeamID: g.TeamID, Season: g.Season, Sequence: g.Sequence}
}

func (g GoalieSeason) NaturalKey() stint.NaturalKey {
	return stint.NaturalKey{PlayerID: g.PlayerID, TeamID: g.TeamID, Season: g.Season}
}

func (g GoalieSeason) Identical(other GoalieSeason) bool {
	g.Sequence = other.Sequence
	return g == other
}

func (g GoalieSeason) Accumulates(prior GoalieSeason) bool {
	return g.Games >= prior.Games &&
		g.Wins >= prior.Wins &&
		g.Losses >= prior.Losses &&
		g.Saves >= prior.Saves &&
		g.ShotsAgainst >= prior.ShotsAgainst
}

func (g GoalieSeason) Validate() error {
	return validateKey(g.PlayerID, g.TeamID, g.Season)
}

func validateKey(playerID, teamID int64, season string) error {
	if playerID <= 0 {
		return fmt.Errorf("stats player id is required")
	}
	if teamID <= 0 {
		return fmt.Errorf("stats team id is required")
	}
	if season == "" {
		return fmt.Errorf("stats season is required")
	}

	return nil
}
