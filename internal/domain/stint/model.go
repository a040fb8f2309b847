package stint

import "fmt"

// NaturalKey identifies "the same real-world affiliation fact" across
// ingestion runs: one player on one team within one season. Multiple stints
// under the same natural key are told apart by Sequence.
type NaturalKey struct {
	PlayerID int64
	TeamID   int64
	Season   string
}

func (k NaturalKey) String() string {
	return fmt.Sprintf("player=%d team=%d season=%s", k.PlayerID, k.TeamID, k.Season)
}

// Key is the full composite key of one stint row.
type Key struct {
	PlayerID int64
	TeamID   int64
	Season   string
	Sequence int
}

func (k Key) Natural() NaturalKey {
	return NaturalKey{PlayerID: k.PlayerID, TeamID: k.TeamID, Season: k.Season}
}

func (k Key) String() string {
	return fmt.Sprintf("player=%d team=%d season=%s seq=%d", k.PlayerID, k.TeamID, k.Season, k.Sequence)
}

// Stint is one contiguous period a player spends on a team within a season
// (a team_players row). Stints are append-only: once superseded a stint is
// only ever flipped inactive, never rewritten to point at another team.
type Stint struct {
	PlayerID int64
	TeamID   int64
	Season   string
	Sequence int
	Active   bool
}

func (s Stint) Key() Key {
	return Key{PlayerID: s.PlayerID, TeamID: s.TeamID, Season: s.Season, Sequence: s.Sequence}
}

func (s Stint) NaturalKey() NaturalKey {
	return NaturalKey{PlayerID: s.PlayerID, TeamID: s.TeamID, Season: s.Season}
}

func (s Stint) Validate() error {
	if s.PlayerID <= 0 {
		return fmt.Errorf("stint player id is required")
	}
	if s.TeamID <= 0 {
		return fmt.Errorf("stint team id is required")
	}
	if s.Season == "" {
		return fmt.Errorf("stint season is required")
	}
	if s.Sequence < 1 {
		return fmt.Errorf("stint sequence must be >= 1")
	}

	return nil
}
